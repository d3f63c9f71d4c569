package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bmscold/slipdesk/internal/domain/models"
	"github.com/bmscold/slipdesk/internal/service/printing"
	"github.com/bmscold/slipdesk/internal/service/render"
	"github.com/bmscold/slipdesk/internal/service/slips"
)

// SlipHandler exposes the slip list, the save pipeline and the print
// action over HTTP.
type SlipHandler struct {
	svc          *slips.Service
	orchestrator *printing.Orchestrator
	logger       *zap.Logger
}

// NewSlipHandler constructs the HTTP handler adapter.
func NewSlipHandler(svc *slips.Service, orchestrator *printing.Orchestrator, logger *zap.Logger) *SlipHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlipHandler{svc: svc, orchestrator: orchestrator, logger: logger}
}

// List returns the current in-memory slip list.
func (h *SlipHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"slips":   h.svc.Store().Snapshot(),
	})
}

// Refresh forces a re-fetch from the ledger and returns the new list.
// A failed fetch leaves the previous list intact.
func (h *SlipHandler) Refresh(c *gin.Context) {
	if err := h.svc.Refresh(c.Request.Context()); err != nil {
		h.logger.Error("manual refresh failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not refresh slips from ledger"})
		return
	}
	h.List(c)
}

// Create runs the full save pipeline for one new slip record.
func (h *SlipHandler) Create(c *gin.Context) {
	var rec models.SlipRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		h.logger.Warn("invalid slip payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	saved, err := h.svc.Save(c.Request.Context(), rec)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"slip":    saved,
			"slips":   h.svc.Store().Snapshot(),
		})
	case errors.Is(err, slips.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		// The caller keeps its form state; nothing was cleared here.
		h.logger.Error("save pipeline failed",
			zap.String("slip_no", rec.SlipNumber),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

// Preview serves the record's printable markup directly, without
// materializing or archiving a PDF. This is the in-window print view;
// the archived artifact stays the durable copy.
func (h *SlipHandler) Preview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	rec, ok := h.svc.Store().Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "slip record not found"})
		return
	}

	doc, err := render.Render(rec)
	if err != nil {
		h.logger.Error("preview render failed", zap.Int64("record_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render document"})
		return
	}

	page, err := doc.HTML()
	if err != nil {
		h.logger.Error("preview markup failed", zap.Int64("record_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render document"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// Print opens a viewer for the record's document, generating it lazily
// when no archived artifact exists yet.
func (h *SlipHandler) Print(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	location, err := h.orchestrator.Print(id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "viewerUrl": location})
	case errors.Is(err, printing.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "slip record not found"})
	case errors.Is(err, printing.ErrPrintInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "a print for this record is already in progress"})
	default:
		h.logger.Error("print failed", zap.Int64("record_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not open document viewer"})
	}
}
