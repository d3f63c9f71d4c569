package ledger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bmscold/slipdesk/internal/config"
	"github.com/bmscold/slipdesk/internal/domain/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.LedgerConfig{Endpoint: srv.URL, FolderID: "folder-1"})
}

func TestGetAllSlips(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("action"); got != "getAllSlips" {
			t.Errorf("action = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"slips":[
			{"slipType":"Get In","slipNo":"101","partyName":"Verma Bros","material":"Potato"},
			{"slipType":"Invoice","slipNo":"12","grandTotal":"800","amountInWords":"Eight Hundred Only","pdfUrl":"https://files/Invoice_12.pdf"}
		]}`))
	})

	slips, err := client.GetAllSlips(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(slips) != 2 {
		t.Fatalf("len = %d, want 2", len(slips))
	}
	if slips[0].Material != "Potato" {
		t.Errorf("material = %q", slips[0].Material)
	}
	if slips[1].PDFURL != "https://files/Invoice_12.pdf" {
		t.Errorf("pdfUrl = %q", slips[1].PDFURL)
	}
}

func TestGetAllSlipsRemoteFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"error":"sheet unavailable"}`))
	})

	if _, err := client.GetAllSlips(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestAddSlipFullSendsDenormalizedPayload(t *testing.T) {
	var gotPayload string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if got := r.PostFormValue("action"); got != "addSlipFull" {
			t.Errorf("action = %q", got)
		}
		gotPayload = r.PostFormValue("payload")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	rec := models.SlipRecord{
		Kind:       models.KindGetOut,
		SlipNumber: "47",
		PartyName:  "Ramesh Traders",
		GetOut:     &models.GetOutDetails{Destination: "Raipur", BagCount: "200"},
	}
	if err := client.AddSlipFull(context.Background(), models.ToWire(rec)); err != nil {
		t.Fatal(err)
	}

	// The denormalized row must carry every kind's fields with exact
	// names; spot-check both a populated and an irrelevant-empty one.
	for _, want := range []string{`"placeOut":"Raipur"`, `"qtyOut":"200"`, `"material":""`, `"lotNumber":""`, `"pdfUrl":""`} {
		if !strings.Contains(gotPayload, want) {
			t.Errorf("payload missing %s\npayload: %s", want, gotPayload)
		}
	}
}

func TestAddSlipFullEmptyBodyIsSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if err := client.AddSlipFull(context.Background(), models.WireSlip{SlipType: "Get In"}); err != nil {
		t.Fatalf("empty body must be success, got %v", err)
	}
}

func TestAddSlipFullRejection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"error":"duplicate slipNo"}`))
	})

	err := client.AddSlipFull(context.Background(), models.WireSlip{SlipType: "Get In"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "duplicate slipNo") {
		t.Errorf("error should carry remote message, got %v", err)
	}
}

func TestUploadFile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if got := r.PostFormValue("action"); got != "handleFileUpload" {
			t.Errorf("action = %q", got)
		}
		if got := r.PostFormValue("fileName"); got != "GetIn_101.pdf" {
			t.Errorf("fileName = %q", got)
		}
		if got := r.PostFormValue("folderId"); got != "folder-1" {
			t.Errorf("folderId = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"fileUrl":"https://files/GetIn_101.pdf","alreadyExists":true}`))
	})

	res, err := client.UploadFile(context.Background(), UploadRequest{
		Base64Data: "aGVsbG8=",
		FileName:   "GetIn_101.pdf",
		MimeType:   "application/pdf",
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.URL != "https://files/GetIn_101.pdf" {
		t.Errorf("url = %q", res.URL)
	}
	if !res.AlreadyExists {
		t.Error("alreadyExists not propagated")
	}
}

