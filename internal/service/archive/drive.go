package archive

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/bmscold/slipdesk/internal/config"
)

// DriveGateway archives artifacts directly into a Google Drive folder.
// Unlike the ledger gateway, the name-based existence check happens on
// this side: the folder is probed for the exact name before uploading.
type DriveGateway struct {
	service  *drive.Service
	folderID string
	logger   *zap.Logger
}

// NewDriveGateway builds a Drive-backed archive gateway.
func NewDriveGateway(ctx context.Context, cfg config.ArchiveConfig, logger *zap.Logger) (*DriveGateway, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := drive.NewService(ctx,
		option.WithCredentialsFile(cfg.DriveCredentialsPath),
		option.WithScopes(drive.DriveScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize drive client: %w", err)
	}

	return &DriveGateway{
		service:  service,
		folderID: cfg.DriveFolderID,
		logger:   logger,
	}, nil
}

// Store uploads the artifact unless an object with the same name already
// exists in the destination folder, in which case the existing file's
// URL is returned untouched.
func (g *DriveGateway) Store(ctx context.Context, artifact Artifact) (string, error) {
	if artifact.Name == "" {
		return "", fmt.Errorf("archive: artifact name must not be empty")
	}
	if len(artifact.Data) == 0 {
		return "", fmt.Errorf("archive: refusing to store empty artifact %s", artifact.Name)
	}

	existing, err := g.findByName(ctx, artifact.Name)
	if err != nil {
		return "", fmt.Errorf("archive %s: probe: %w", artifact.Name, err)
	}
	if existing != "" {
		g.logger.Debug("artifact already archived", zap.String("name", artifact.Name))
		return existing, nil
	}

	file := &drive.File{
		Name:     artifact.Name,
		MimeType: artifact.MIMEType,
		Parents:  []string{g.folderID},
	}

	created, err := g.service.Files.Create(file).
		Media(bytes.NewReader(artifact.Data)).
		Fields("id, webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("archive %s: create: %w", artifact.Name, err)
	}

	// Viewer surfaces open the URL without credentials.
	_, err = g.service.Permissions.Create(created.Id, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("archive %s: share: %w", artifact.Name, err)
	}

	g.logger.Info("artifact archived", zap.String("name", artifact.Name), zap.String("file_id", created.Id))
	return created.WebViewLink, nil
}

func (g *DriveGateway) findByName(ctx context.Context, name string) (string, error) {
	query := fmt.Sprintf("name = '%s' and '%s' in parents and trashed = false",
		escapeQueryTerm(name), escapeQueryTerm(g.folderID))

	list, err := g.service.Files.List().
		Q(query).
		Fields("files(id, webViewLink)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	if len(list.Files) == 0 {
		return "", nil
	}

	return list.Files[0].WebViewLink, nil
}

func escapeQueryTerm(v string) string {
	return strings.ReplaceAll(strings.ReplaceAll(v, `\`, `\\`), `'`, `\'`)
}
