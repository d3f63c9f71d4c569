// Package archive stores materialized document artifacts in an external
// object store, deduplicating by a deterministic file name and handing
// back a stable retrieval URL.
package archive

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/bmscold/slipdesk/internal/domain/models"
	"github.com/bmscold/slipdesk/pkg/clients/ledger"
)

// Artifact is one binary document headed for the archive.
type Artifact struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Gateway uploads an artifact and returns its retrieval URL. Storing the
// same name twice must return the existing URL without storing a second
// copy: the archive is idempotent by name, not by content.
type Gateway interface {
	Store(ctx context.Context, artifact Artifact) (string, error)
}

// ArtifactName derives the deterministic archive name for a record:
// "{kind}_{slipNumber}.pdf" with the kind's space removed. Two uploads
// for the same record always collide on purpose; two records collide
// only if they share a slip number, which the ledger treats as the same
// document.
func ArtifactName(kind models.SlipKind, slipNumber string) string {
	return fmt.Sprintf("%s_%s.pdf", strings.ReplaceAll(string(kind), " ", ""), slipNumber)
}

// LedgerGateway archives artifacts through the remote ledger endpoint's
// upload action. The remote performs the existence check by name and
// reports reuse via alreadyExists.
type LedgerGateway struct {
	client ledger.Client
}

// NewLedgerGateway wraps a ledger client as an archive gateway.
func NewLedgerGateway(client ledger.Client) *LedgerGateway {
	return &LedgerGateway{client: client}
}

// Store uploads the artifact base64-encoded and returns the remote URL.
func (g *LedgerGateway) Store(ctx context.Context, artifact Artifact) (string, error) {
	if artifact.Name == "" {
		return "", fmt.Errorf("archive: artifact name must not be empty")
	}
	if len(artifact.Data) == 0 {
		return "", fmt.Errorf("archive: refusing to store empty artifact %s", artifact.Name)
	}

	res, err := g.client.UploadFile(ctx, ledger.UploadRequest{
		Base64Data: base64.StdEncoding.EncodeToString(artifact.Data),
		FileName:   artifact.Name,
		MimeType:   artifact.MIMEType,
	})
	if err != nil {
		return "", fmt.Errorf("archive %s: %w", artifact.Name, err)
	}

	return res.URL, nil
}
