package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bmscold/slipdesk/internal/service/printing"
)

// Viewer session states exposed to the polling page.
const (
	viewerPending = "pending"
	viewerReady   = "ready"
	viewerFailed  = "failed"
)

// sessionTTL is how long a finished or abandoned viewer session stays
// resolvable before the sweeper drops it.
const sessionTTL = time.Hour

type viewerSession struct {
	state     string
	url       string
	message   string
	createdAt time.Time
}

// ViewerRegistry is the web implementation of printing.Delivery: each
// Open creates a token-addressed session backing one placeholder page,
// which polls its status until the document URL arrives.
type ViewerRegistry struct {
	baseURL string

	mu       sync.Mutex
	sessions map[string]*viewerSession
}

// NewViewerRegistry builds a registry. baseURL prefixes the viewer
// locations handed back to API callers; it may be empty for
// relative paths.
func NewViewerRegistry(baseURL string) *ViewerRegistry {
	return &ViewerRegistry{
		baseURL:  baseURL,
		sessions: make(map[string]*viewerSession),
	}
}

// Open creates a pending session and returns its viewer handle.
func (r *ViewerRegistry) Open(recordID int64) (printing.Viewer, error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("open viewer for record %d: %w", recordID, err)
	}

	r.mu.Lock()
	r.sweepLocked()
	r.sessions[token] = &viewerSession{state: viewerPending, createdAt: time.Now()}
	r.mu.Unlock()

	return &webViewer{registry: r, token: token}, nil
}

func (r *ViewerRegistry) lookup(token string) (viewerSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok {
		return viewerSession{}, false
	}
	return *s, true
}

func (r *ViewerRegistry) resolve(token, state, url, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[token]; ok {
		s.state = state
		s.url = url
		s.message = message
	}
}

// sweepLocked drops stale sessions. Caller holds mu.
func (r *ViewerRegistry) sweepLocked() {
	cutoff := time.Now().Add(-sessionTTL)
	for token, s := range r.sessions {
		if s.createdAt.Before(cutoff) {
			delete(r.sessions, token)
		}
	}
}

// webViewer is one open placeholder page.
type webViewer struct {
	registry *ViewerRegistry
	token    string
}

func (v *webViewer) Location() string {
	return v.registry.baseURL + "/viewer/" + v.token
}

func (v *webViewer) Redirect(url string) {
	v.registry.resolve(v.token, viewerReady, url, "")
}

func (v *webViewer) Fail(message string) {
	v.registry.resolve(v.token, viewerFailed, "", message)
}

func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// placeholderPage shows an indeterminate spinner and polls the session
// status until the document is ready, then navigates to it.
const placeholderPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Preparing document…</title>
<style>
body { font-family: Arial, sans-serif; display: flex; flex-direction: column; align-items: center; margin-top: 15vh; color: #333; }
.spinner { width: 48px; height: 48px; border: 5px solid #ddd; border-top-color: #991b1b; border-radius: 50%; animation: spin 1s linear infinite; }
@keyframes spin { to { transform: rotate(360deg); } }
#message { margin-top: 24px; }
.error { color: #991b1b; font-weight: bold; }
</style>
</head>
<body>
<div class="spinner" id="spinner"></div>
<p id="message">Preparing your document…</p>
<script>
(function poll() {
  fetch(window.location.pathname + "/status")
    .then(function (res) { return res.json(); })
    .then(function (data) {
      if (data.state === "ready") {
        window.location.replace(data.url);
      } else if (data.state === "failed") {
        document.getElementById("spinner").style.display = "none";
        var msg = document.getElementById("message");
        msg.textContent = data.message || "Document generation failed.";
        msg.className = "error";
      } else {
        setTimeout(poll, 1000);
      }
    })
    .catch(function () { setTimeout(poll, 2000); });
})();
</script>
</body>
</html>
`

// ViewerHandler serves the placeholder pages and their status polls.
type ViewerHandler struct {
	registry *ViewerRegistry
}

// NewViewerHandler constructs the viewer HTTP adapter.
func NewViewerHandler(registry *ViewerRegistry) *ViewerHandler {
	return &ViewerHandler{registry: registry}
}

// Page serves the polling placeholder.
func (h *ViewerHandler) Page(c *gin.Context) {
	if _, ok := h.registry.lookup(c.Param("token")); !ok {
		c.String(http.StatusNotFound, "unknown or expired viewer session")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(placeholderPage))
}

// Status reports the session's current resolution state.
func (h *ViewerHandler) Status(c *gin.Context) {
	s, ok := h.registry.lookup(c.Param("token"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown or expired viewer session"})
		return
	}

	resp := gin.H{"state": s.state}
	if s.url != "" {
		resp["url"] = s.url
	}
	if s.message != "" {
		resp["message"] = s.message
	}
	c.JSON(http.StatusOK, resp)
}
