package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/task-assistant-team/task-assistant/errors"
	"github.com/task-assistant-team/task-assistant/internal/adapter/repository"
	"github.com/task-assistant-team/task-assistant/internal/domain/repositories"
	transcriptUsecase "github.com/task-assistant-team/task-assistant/internal/usecase/transcripts"
	"github.com/task-assistant-team/task-assistant/pkg/ai"
)

const webhookTestSecret = "whsec-test"

func newWebhookTestStack(secret string) (*WebhookHandler, repositories.TranscriptRepository, *fakeProcessor) {
	repo := repository.NewMemoryTranscriptRepository()
	svc := transcriptUsecase.NewTranscriptService(repo, nil, zap.NewNop())
	proc := &fakeProcessor{}
	return NewWebhookHandler(svc, proc, secret, zap.NewNop()), repo, proc
}

func postWebhook(t *testing.T, e *echo.Echo, h *WebhookHandler, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/transcripts", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	if err := h.HandleTranscriptWebhook(e.NewContext(req, rec)); err != nil {
		t.Fatalf("webhook handler returned error: %v", err)
	}
	return rec
}

func countStoredTranscripts(t *testing.T, repo repositories.TranscriptRepository) int {
	t.Helper()
	list, err := repo.ListUnprocessed(context.Background(), 0)
	if err != nil {
		t.Fatalf("failed to list transcripts: %v", err)
	}
	return len(list)
}

func TestWebhook_ValidSignatureIngests(t *testing.T) {
	e := newTestEcho()
	h, repo, proc := newWebhookTestStack(webhookTestSecret)

	body := `{"title":"Platform Push","content":"John Smith: ship it by Friday.","source":"api"}`
	rec := postWebhook(t, e, h, body, map[string]string{
		headerWebhookSignature: ai.SignHMAC(webhookTestSecret, []byte(body)),
		headerDeliveryID:       "dlv-001",
	})

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Transcript struct {
			Source string `json:"source"`
		} `json:"transcript"`
		Queued bool `json:"queued"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Transcript.Source != "webhook" {
		t.Fatalf("webhook deliveries must be stored with source webhook, got %q", resp.Transcript.Source)
	}
	if !resp.Queued {
		t.Fatalf("expected transcript to be queued")
	}
	if len(proc.submitted) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(proc.submitted))
	}
	if n := countStoredTranscripts(t, repo); n != 1 {
		t.Fatalf("expected 1 stored transcript, got %d", n)
	}
}

func TestWebhook_BadSignatureRejected(t *testing.T) {
	e := newTestEcho()
	h, repo, proc := newWebhookTestStack(webhookTestSecret)

	body := `{"title":"Platform Push","content":"John Smith: ship it."}`
	rec := postWebhook(t, e, h, body, map[string]string{
		headerWebhookSignature: "deadbeef",
	})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Code int `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != int(apperrors.ErrorCode_AUTH_SIGNATURE_INVALID) {
		t.Fatalf("unexpected error code %d", resp.Code)
	}
	if len(proc.submitted) != 0 {
		t.Fatalf("rejected delivery must not be queued")
	}
	if n := countStoredTranscripts(t, repo); n != 0 {
		t.Fatalf("rejected delivery must not be stored, found %d transcripts", n)
	}
}

func TestWebhook_MissingSignatureRejected(t *testing.T) {
	e := newTestEcho()
	h, repo, _ := newWebhookTestStack(webhookTestSecret)

	body := `{"title":"Platform Push","content":"John Smith: ship it."}`
	rec := postWebhook(t, e, h, body, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when signature header is absent, got %d", rec.Code)
	}
	if n := countStoredTranscripts(t, repo); n != 0 {
		t.Fatalf("unsigned delivery must not be stored, found %d transcripts", n)
	}
}

func TestWebhook_NoSecretSkipsVerification(t *testing.T) {
	e := newTestEcho()
	h, repo, _ := newWebhookTestStack("")

	body := `{"title":"Local Push","content":"John Smith: ship it."}`
	rec := postWebhook(t, e, h, body, nil)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202 when no secret is configured, got %d: %s", rec.Code, rec.Body.String())
	}
	if n := countStoredTranscripts(t, repo); n != 1 {
		t.Fatalf("expected 1 stored transcript, got %d", n)
	}
}

func TestWebhook_DuplicateDeliveryAcknowledged(t *testing.T) {
	e := newTestEcho()
	h, repo, proc := newWebhookTestStack(webhookTestSecret)

	body := `{"title":"Platform Push","content":"John Smith: ship it."}`
	headers := map[string]string{
		headerWebhookSignature: ai.SignHMAC(webhookTestSecret, []byte(body)),
		headerDeliveryID:       "dlv-redelivered",
	}

	first := postWebhook(t, e, h, body, headers)
	if first.Code != http.StatusAccepted {
		t.Fatalf("expected 202 on first delivery, got %d", first.Code)
	}

	second := postWebhook(t, e, h, body, headers)
	if second.Code != http.StatusOK {
		t.Fatalf("expected 200 ack on redelivery, got %d: %s", second.Code, second.Body.String())
	}

	var resp struct {
		Data struct {
			Duplicate bool `json:"duplicate"`
		} `json:"data"`
	}
	if err := json.Unmarshal(second.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Data.Duplicate {
		t.Fatalf("redelivery ack must flag duplicate")
	}
	if len(proc.submitted) != 1 {
		t.Fatalf("redelivery must not be queued again, got %d submissions", len(proc.submitted))
	}
	if n := countStoredTranscripts(t, repo); n != 1 {
		t.Fatalf("redelivery must not be stored again, found %d transcripts", n)
	}
}

func TestWebhook_InvalidJSONRejected(t *testing.T) {
	e := newTestEcho()
	h, repo, _ := newWebhookTestStack(webhookTestSecret)

	body := `{"title": unterminated`
	rec := postWebhook(t, e, h, body, map[string]string{
		headerWebhookSignature: ai.SignHMAC(webhookTestSecret, []byte(body)),
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if n := countStoredTranscripts(t, repo); n != 0 {
		t.Fatalf("malformed delivery must not be stored, found %d transcripts", n)
	}
}
