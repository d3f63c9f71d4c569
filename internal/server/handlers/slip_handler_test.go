package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/bmscold/slipdesk/internal/domain/models"
	"github.com/bmscold/slipdesk/internal/service/render"
	"github.com/bmscold/slipdesk/internal/service/slips"
)

func previewRouter(t *testing.T, records ...models.SlipRecord) *gin.Engine {
	t.Helper()

	store := slips.NewStore()
	store.Replace(records)
	// Preview only reads the store; the pipeline collaborators stay unset.
	svc := slips.NewService(nil, store, nil, nil, nil, nil)
	h := NewSlipHandler(svc, nil, nil)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/slips/:id/preview", h.Preview)
	return r
}

func TestPreviewServesPrintableMarkup(t *testing.T) {
	r := previewRouter(t, models.SlipRecord{
		ID:         1,
		Kind:       models.KindGetIn,
		SlipNumber: "101",
		Date:       "2026-02-03",
		PartyName:  "Verma Bros",
		GetIn:      &models.GetInDetails{MaterialName: "Potato"},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/slips/1/preview", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	body := w.Body.String()
	for _, want := range []string{render.CompanyName, "Verma Bros", "Potato", "03/02/2026"} {
		if !strings.Contains(body, want) {
			t.Errorf("preview missing %q", want)
		}
	}
	if strings.Contains(body, "href=") || strings.Contains(body, "src=") {
		t.Error("preview must be self-contained, found external reference")
	}
}

func TestPreviewUnknownRecord(t *testing.T) {
	r := previewRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/slips/9/preview", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestPreviewInvalidID(t *testing.T) {
	r := previewRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/slips/abc/preview", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
