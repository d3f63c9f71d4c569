package archive

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bmscold/slipdesk/internal/config"
	"github.com/bmscold/slipdesk/internal/domain/models"
	"github.com/bmscold/slipdesk/pkg/clients/ledger"
)

func TestArtifactName(t *testing.T) {
	cases := []struct {
		kind models.SlipKind
		no   string
		want string
	}{
		{models.KindGetIn, "101", "GetIn_101.pdf"},
		{models.KindGetOut, "47", "GetOut_47.pdf"},
		{models.KindInvoice, "12", "Invoice_12.pdf"},
	}
	for _, tc := range cases {
		if got := ArtifactName(tc.kind, tc.no); got != tc.want {
			t.Errorf("ArtifactName(%s, %s) = %q, want %q", tc.kind, tc.no, got, tc.want)
		}
	}
}

// fakeArchiveServer mimics the remote upload action: first store wins,
// repeats return the original URL flagged alreadyExists.
func fakeArchiveServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	stored := map[string]string{}
	uploads := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		name := r.PostFormValue("fileName")
		w.Header().Set("Content-Type", "application/json")

		if url, ok := stored[name]; ok {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true, "fileUrl": url, "alreadyExists": true,
			})
			return
		}

		uploads++
		url := "https://files/" + name
		stored[name] = url
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true, "fileUrl": url, "alreadyExists": false,
		})
	}))
	t.Cleanup(srv.Close)

	return srv, &uploads
}

func TestLedgerGatewayStoreIsIdempotentByName(t *testing.T) {
	srv, uploads := fakeArchiveServer(t)
	gw := NewLedgerGateway(ledger.NewClient(config.LedgerConfig{Endpoint: srv.URL}))

	artifact := Artifact{
		Name:     ArtifactName(models.KindInvoice, "12"),
		MIMEType: "application/pdf",
		Data:     []byte("%PDF-1.7 first"),
	}

	first, err := gw.Store(context.Background(), artifact)
	if err != nil {
		t.Fatal(err)
	}

	// Same name, different content: name addressing means the second
	// store is a no-op returning the original URL.
	artifact.Data = []byte("%PDF-1.7 second")
	second, err := gw.Store(context.Background(), artifact)
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Errorf("urls differ: %q vs %q", first, second)
	}
	if *uploads != 1 {
		t.Errorf("uploads = %d, want 1", *uploads)
	}
}

func TestLedgerGatewayEncodesPayload(t *testing.T) {
	var gotBase64 string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		gotBase64 = r.PostFormValue("base64Data")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"fileUrl":"https://files/x.pdf"}`))
	}))
	t.Cleanup(srv.Close)

	gw := NewLedgerGateway(ledger.NewClient(config.LedgerConfig{Endpoint: srv.URL}))
	data := []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0xff}

	if _, err := gw.Store(context.Background(), Artifact{Name: "x.pdf", MIMEType: "application/pdf", Data: data}); err != nil {
		t.Fatal(err)
	}

	decoded, err := base64.StdEncoding.DecodeString(gotBase64)
	if err != nil {
		t.Fatalf("body was not valid base64: %v", err)
	}
	if string(decoded) != string(data) {
		t.Error("decoded payload differs from artifact data")
	}
}

func TestLedgerGatewayRejectsEmptyArtifacts(t *testing.T) {
	gw := NewLedgerGateway(nil)

	if _, err := gw.Store(context.Background(), Artifact{Name: "x.pdf"}); err == nil {
		t.Error("expected error for empty data")
	}
	if _, err := gw.Store(context.Background(), Artifact{Data: []byte("x")}); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestLedgerGatewayPropagatesRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"error":"quota exceeded"}`))
	}))
	t.Cleanup(srv.Close)

	gw := NewLedgerGateway(ledger.NewClient(config.LedgerConfig{Endpoint: srv.URL}))
	if _, err := gw.Store(context.Background(), Artifact{Name: "x.pdf", Data: []byte("x")}); err == nil {
		t.Fatal("expected error")
	}
}
