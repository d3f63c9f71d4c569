// Package slips owns the save-and-sync pipeline: it validates a record,
// derives its financial fields, materializes and archives the printable
// document, submits the row to the remote ledger and refreshes the
// local list from the ledger's authoritative copy.
package slips

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bmscold/slipdesk/internal/domain/models"
	"github.com/bmscold/slipdesk/internal/repository/mongodb"
	"github.com/bmscold/slipdesk/internal/service/archive"
	"github.com/bmscold/slipdesk/internal/service/charges"
	"github.com/bmscold/slipdesk/internal/service/pdf"
	"github.com/bmscold/slipdesk/internal/service/render"
	"github.com/bmscold/slipdesk/pkg/clients/ledger"
)

// ErrValidation marks input errors caught before any pipeline step runs.
var ErrValidation = errors.New("invalid slip")

// Service coordinates the slip pipeline against its collaborators.
type Service struct {
	ledger       ledger.Client
	store        *Store
	materializer pdf.Materializer
	gateway      archive.Gateway
	audit        mongodb.Repository // nil disables the audit trail
	logger       *zap.Logger

	now func() time.Time
}

// NewService wires a slips service. audit may be nil.
func NewService(ledgerClient ledger.Client, store *Store, materializer pdf.Materializer, gateway archive.Gateway, audit mongodb.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ledger:       ledgerClient,
		store:        store,
		materializer: materializer,
		gateway:      gateway,
		audit:        audit,
		logger:       logger,
		now:          time.Now,
	}
}

// Store exposes the in-memory list for read paths.
func (s *Service) Store() *Store {
	return s.store
}

// Refresh replaces the local list with the ledger's current rows. A
// failed fetch leaves the list at its last-known-good state. Rows with
// an unrecognized slip type are skipped; the sheet's header row travels
// as one.
func (s *Service) Refresh(ctx context.Context) error {
	wires, err := s.ledger.GetAllSlips(ctx)
	if err != nil {
		return fmt.Errorf("refresh slips: %w", err)
	}

	records := make([]models.SlipRecord, 0, len(wires))
	var nextID int64 = 1
	for _, w := range wires {
		rec := models.FromWire(w)
		if !rec.Kind.Valid() {
			continue
		}
		rec.ID = nextID
		nextID++
		records = append(records, rec)
	}

	s.store.Replace(records)
	s.logger.Debug("slip list refreshed", zap.Int("count", len(records)))
	return nil
}

// Save runs the full pipeline for a new record, strictly in order:
// validate, compute charges, render, materialize, archive, submit,
// refresh. No step begins before its predecessor's success; the first
// failure aborts the attempt with the local list untouched.
func (s *Service) Save(ctx context.Context, rec models.SlipRecord) (models.SlipRecord, error) {
	if err := Validate(rec); err != nil {
		return models.SlipRecord{}, err
	}

	if rec.Invoice != nil {
		// The calculator output is the only source of the submitted
		// financial fields; whatever derived values the caller sent are
		// discarded and re-derived from the rate/quantity inputs.
		rec.Invoice.Charges = charges.Compute(rec.Invoice.Charges)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}

	url, err := s.GenerateArchiveURL(ctx, rec)
	if err != nil {
		return models.SlipRecord{}, err
	}
	rec.ArchiveURL = url

	if err := s.ledger.AddSlipFull(ctx, models.ToWire(rec)); err != nil {
		return models.SlipRecord{}, fmt.Errorf("submit slip %s: %w", rec.SlipNumber, err)
	}

	// The ledger may assign fields the client did not supply, so the
	// list is always re-fetched rather than merged locally.
	if err := s.Refresh(ctx); err != nil {
		return rec, fmt.Errorf("slip %s saved but list refresh failed: %w", rec.SlipNumber, err)
	}

	s.logger.Info("slip saved",
		zap.String("kind", string(rec.Kind)),
		zap.String("slip_no", rec.SlipNumber),
		zap.String("archive_url", rec.ArchiveURL))

	return rec, nil
}

// GenerateArchiveURL renders, materializes and archives the record's
// document, returning the stable artifact URL. It is shared by the save
// pipeline and by the print orchestrator's lazy generation path.
func (s *Service) GenerateArchiveURL(ctx context.Context, rec models.SlipRecord) (string, error) {
	doc, err := render.Render(rec)
	if err != nil {
		return "", err
	}

	data, err := s.materializer.Materialize(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("materialize slip %s: %w", rec.SlipNumber, err)
	}

	artifact := archive.Artifact{
		Name:     archive.ArtifactName(rec.Kind, rec.SlipNumber),
		MIMEType: pdf.MIMEType,
		Data:     data,
	}

	url, err := s.gateway.Store(ctx, artifact)
	if err != nil {
		return "", err
	}

	s.auditArtifact(ctx, rec, artifact, url)
	return url, nil
}

// auditArtifact records the upload in the audit store. Best-effort: the
// audit trail observes the pipeline, it is not a stage of it.
func (s *Service) auditArtifact(ctx context.Context, rec models.SlipRecord, artifact archive.Artifact, url string) {
	if s.audit == nil {
		return
	}

	sum := sha256.Sum256(artifact.Data)
	err := s.audit.SaveArtifact(ctx, models.ArtifactRecord{
		FileName:   artifact.Name,
		URL:        url,
		SlipNumber: rec.SlipNumber,
		SlipType:   string(rec.Kind),
		SizeBytes:  int64(len(artifact.Data)),
		SHA256:     hex.EncodeToString(sum[:]),
		CreatedAt:  s.now(),
	})
	if err != nil {
		s.logger.Warn("artifact audit write failed", zap.String("file", artifact.Name), zap.Error(err))
	}
}

// Validate checks the record before any pipeline step runs.
func Validate(rec models.SlipRecord) error {
	if !rec.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrValidation, rec.Kind)
	}
	if rec.SlipNumber == "" {
		return fmt.Errorf("%w: slip number is required", ErrValidation)
	}
	if rec.Date == "" {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if rec.PartyName == "" {
		return fmt.Errorf("%w: party name is required", ErrValidation)
	}
	if !rec.DetailsMatchKind() {
		return fmt.Errorf("%w: details do not match kind %q", ErrValidation, rec.Kind)
	}
	return nil
}
