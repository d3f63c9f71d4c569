// Package ledger talks to the remote ledger endpoint that owns the
// authoritative slip rows and fronts the document archive. The endpoint
// is a single URL multiplexed by an "action" form field.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bmscold/slipdesk/internal/config"
	"github.com/bmscold/slipdesk/internal/domain/models"
)

// Client exposes the remote ledger operations used by the application.
type Client interface {
	GetAllSlips(ctx context.Context) ([]models.WireSlip, error)
	AddSlipFull(ctx context.Context, slip models.WireSlip) error
	UploadFile(ctx context.Context, req UploadRequest) (*UploadResult, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	folderID   string
}

// NewClient builds a ledger API client from the provided configuration.
func NewClient(cfg config.LedgerConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(cfg.Endpoint).
		SetTimeout(30 * time.Second)

	return &APIClient{
		httpClient: restyClient,
		folderID:   cfg.FolderID,
	}
}

// UploadRequest carries one archive upload. The binary payload travels
// base64-encoded next to explicit name/type/destination metadata.
type UploadRequest struct {
	Base64Data string
	FileName   string
	MimeType   string
	// FolderID overrides the configured destination folder when set.
	FolderID string
}

// UploadResult reports where the artifact lives. AlreadyExists is true
// when the remote found an object under the same name and returned its
// URL instead of storing a duplicate.
type UploadResult struct {
	URL           string
	AlreadyExists bool
}

type slipListResponse struct {
	Success bool              `json:"success"`
	Slips   []models.WireSlip `json:"slips"`
	Error   string            `json:"error"`
}

type submitResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type uploadResponse struct {
	Success       bool   `json:"success"`
	FileURL       string `json:"fileUrl"`
	AlreadyExists bool   `json:"alreadyExists"`
	Error         string `json:"error"`
}

// GetAllSlips fetches every denormalized slip row the ledger holds.
func (c *APIClient) GetAllSlips(ctx context.Context) ([]models.WireSlip, error) {
	result := new(slipListResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("action", "getAllSlips").
		SetResult(result).
		Get("")
	if err != nil {
		return nil, fmt.Errorf("fetch slips: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("ledger api error: status=%d", resp.StatusCode())
	}
	if !result.Success {
		return nil, fmt.Errorf("ledger rejected getAllSlips: %s", remoteMessage(result.Error))
	}

	return result.Slips, nil
}

// AddSlipFull writes one full denormalized record. An empty response
// body counts as success; that is part of the remote contract.
func (c *APIClient) AddSlipFull(ctx context.Context, slip models.WireSlip) error {
	payload, err := json.Marshal(slip)
	if err != nil {
		return fmt.Errorf("encode slip payload: %w", err)
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"action":  "addSlipFull",
			"payload": string(payload),
		}).
		Post("")
	if err != nil {
		return fmt.Errorf("submit slip: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("ledger api error: status=%d", resp.StatusCode())
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil
	}

	var result submitResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("decode submit response: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("ledger rejected slip: %s", remoteMessage(result.Error))
	}

	return nil
}

// UploadFile stores an artifact behind the ledger endpoint. The remote
// dedups by file name: a second upload under an existing name returns
// the existing URL untouched.
func (c *APIClient) UploadFile(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	folderID := req.FolderID
	if folderID == "" {
		folderID = c.folderID
	}

	result := new(uploadResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"action":     "handleFileUpload",
			"base64Data": req.Base64Data,
			"fileName":   req.FileName,
			"mimeType":   req.MimeType,
			"folderId":   folderID,
		}).
		SetResult(result).
		Post("")
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", req.FileName, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("ledger api error: status=%d", resp.StatusCode())
	}
	if !result.Success {
		return nil, fmt.Errorf("ledger rejected upload %s: %s", req.FileName, remoteMessage(result.Error))
	}
	if result.FileURL == "" {
		return nil, fmt.Errorf("ledger returned no url for %s", req.FileName)
	}

	return &UploadResult{URL: result.FileURL, AlreadyExists: result.AlreadyExists}, nil
}

func remoteMessage(msg string) string {
	if msg == "" {
		return "no error message provided"
	}
	return msg
}
