package models

import "time"

// ArtifactRecord is the audit entry persisted once per materialized
// document artifact. The archive itself is name-addressed; the SHA256
// here is what lets an operator detect two different contents uploaded
// under one slip number.
type ArtifactRecord struct {
	FileName   string    `bson:"file_name" json:"file_name"`
	URL        string    `bson:"url" json:"url"`
	SlipNumber string    `bson:"slip_number" json:"slip_number"`
	SlipType   string    `bson:"slip_type" json:"slip_type"`
	SizeBytes  int64     `bson:"size_bytes" json:"size_bytes"`
	SHA256     string    `bson:"sha256" json:"sha256"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
