package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mailbrief/mailbrief/internal/assistant"
	"github.com/mailbrief/mailbrief/internal/config"
	"github.com/mailbrief/mailbrief/internal/delivery"
)

type fakeSender struct {
	err  error
	sent []*delivery.Message
}

func (f *fakeSender) Send(ctx context.Context, msg *delivery.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func testServer(t *testing.T, sender delivery.Sender) (*Server, *config.Config) {
	t.Helper()

	cfg := config.Default()
	cfg.Report.Account = "owner@example.com"
	cfg.Report.SenderName = "Mario Rossi"
	cfg.Report.CronSecret = "s3cret"
	cfg.Mail.FromAddress = "owner@example.com"
	cfg.Mail.ToAddress = "owner@example.com"

	logger := zerolog.Nop()
	svc := assistant.New(cfg, sender, nil, logger)
	return New(cfg, svc, nil, logger), cfg
}

func TestTriggered_WrongSecret(t *testing.T) {
	sender := &fakeSender{}
	srv, _ := testServer(t, sender)

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/api/email-assistant?secret=wrong", nil))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != 401 {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
	if len(sender.sent) != 0 {
		t.Error("no email must be sent on auth failure")
	}
}

func TestTriggered_MissingSecret(t *testing.T) {
	srv, _ := testServer(t, &fakeSender{})

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/api/email-assistant", nil))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != 401 {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestTriggered_Success(t *testing.T) {
	sender := &fakeSender{}
	srv, _ := testServer(t, sender)

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/api/email-assistant?secret=s3cret", nil), 5000)
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Success bool `json:"success"`
		Summary struct {
			Total      int            `json:"total"`
			Urgent     int            `json:"urgent"`
			Drafts     int            `json:"drafts"`
			Categories map[string]int `json:"categories"`
		} `json:"summary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if !body.Success {
		t.Error("expected success=true")
	}
	if body.Summary.Total != 5 {
		t.Errorf("total = %d, want 5 (demo batch)", body.Summary.Total)
	}
	if body.Summary.Categories["INVOICES"] == 0 {
		t.Errorf("expected INVOICES in categories, got %v", body.Summary.Categories)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sender.sent))
	}
	if !strings.Contains(sender.sent[0].HTMLBody, "Email Assistant Report") {
		t.Error("sent email does not carry the rendered report")
	}
}

func TestTriggered_DeliveryFailure(t *testing.T) {
	srv, _ := testServer(t, &fakeSender{err: errors.New("boom")})

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/api/email-assistant?secret=s3cret", nil), 5000)
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != 500 {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}

func TestAnalyze_InvalidBody(t *testing.T) {
	srv, _ := testServer(t, &fakeSender{})

	for _, payload := range []string{
		`{"emails": "not a list"}`,
		`{"emails": 42}`,
		`{}`,
		`not json`,
	} {
		req := httptest.NewRequest("POST", "/api/email-assistant", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")

		resp, err := srv.App().Test(req)
		if err != nil {
			t.Fatalf("Test() error = %v", err)
		}
		if resp.StatusCode != 400 {
			t.Errorf("payload %q: status = %d, want 400", payload, resp.StatusCode)
		}
	}
}

func TestAnalyze_ReturnsFullReport(t *testing.T) {
	sender := &fakeSender{}
	srv, _ := testServer(t, sender)

	payload := `{"emails": [
		{"id": "1", "subject": "Fattura Elettronica n. 42 - Scadenza pagamento", "from": "fatture@fornitore.it", "date": "2026-01-01", "body": "scadenza pagamento"},
		{"id": "2", "subject": "Newsletter settimanale", "from": "newsletter@negozio.com", "date": "2026-01-01"}
	]}`
	req := httptest.NewRequest("POST", "/api/email-assistant", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req, 5000)
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)

	var report struct {
		Account string `json:"account"`
		Summary struct {
			Total      int            `json:"total"`
			Categories map[string]int `json:"categories"`
			ByPriority struct {
				High []json.RawMessage `json:"HIGH"`
				Low  []json.RawMessage `json:"LOW"`
			} `json:"byPriority"`
		} `json:"summary"`
		Details []json.RawMessage `json:"details"`
		Actions struct {
			ToReview  []json.RawMessage `json:"toReview"`
			ToArchive []json.RawMessage `json:"toArchive"`
		} `json:"actions"`
	}
	if err := json.Unmarshal(raw, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}

	if report.Account != "owner@example.com" {
		t.Errorf("account = %q", report.Account)
	}
	if report.Summary.Total != 2 || len(report.Details) != 2 {
		t.Errorf("total = %d, details = %d, want 2", report.Summary.Total, len(report.Details))
	}
	if len(report.Actions.ToReview) != 1 || len(report.Actions.ToArchive) != 1 {
		t.Errorf("toReview = %d, toArchive = %d, want 1 each", len(report.Actions.ToReview), len(report.Actions.ToArchive))
	}
	if len(sender.sent) != 0 {
		t.Error("no send requested, but an email went out")
	}
}

func TestAnalyze_EmptyList(t *testing.T) {
	srv, _ := testServer(t, &fakeSender{})

	req := httptest.NewRequest("POST", "/api/email-assistant", strings.NewReader(`{"emails": []}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200 for an empty list", resp.StatusCode)
	}

	var report struct {
		Summary struct {
			Total int `json:"total"`
		} `json:"summary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Summary.Total != 0 {
		t.Errorf("total = %d, want 0", report.Summary.Total)
	}
}

func TestAnalyze_SendFlag(t *testing.T) {
	sender := &fakeSender{}
	srv, _ := testServer(t, sender)

	req := httptest.NewRequest("POST", "/api/email-assistant?send=true", strings.NewReader(`{"emails": []}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req, 5000)
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(sender.sent) != 1 {
		t.Errorf("sent %d emails, want 1", len(sender.sent))
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := testServer(t, &fakeSender{})

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/healthz", nil))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestReports_NoStore(t *testing.T) {
	srv, _ := testServer(t, &fakeSender{})

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/api/reports", nil))
	if err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	if strings.TrimSpace(string(raw)) != "[]" {
		t.Errorf("body = %s, want []", raw)
	}
}
