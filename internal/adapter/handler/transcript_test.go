package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/task-assistant-team/task-assistant/internal/adapter/repository"
	"github.com/task-assistant-team/task-assistant/internal/domain/entities"
	"github.com/task-assistant-team/task-assistant/internal/domain/repositories"
	usecaseErrors "github.com/task-assistant-team/task-assistant/internal/usecase/errors"
	"github.com/task-assistant-team/task-assistant/internal/usecase/extraction"
	"github.com/task-assistant-team/task-assistant/internal/usecase/processor"
	transcriptUsecase "github.com/task-assistant-team/task-assistant/internal/usecase/transcripts"
	pkgvalidator "github.com/task-assistant-team/task-assistant/pkg/validator"
)

// fakeProcessor records submissions and serves canned processing outcomes.
type fakeProcessor struct {
	result     *processor.Result
	processErr error
	submitErr  error
	submitted  []uuid.UUID
}

func (f *fakeProcessor) Process(ctx context.Context, t *entities.Transcript) (*processor.Result, error) {
	return f.ProcessByID(ctx, t.ID)
}

func (f *fakeProcessor) ProcessByID(ctx context.Context, transcriptID uuid.UUID) (*processor.Result, error) {
	if f.processErr != nil {
		return nil, f.processErr
	}
	if f.result != nil {
		return f.result, nil
	}
	return &processor.Result{TranscriptID: transcriptID}, nil
}

func (f *fakeProcessor) Submit(transcriptID uuid.UUID) error {
	if f.submitErr != nil {
		return f.submitErr
	}
	f.submitted = append(f.submitted, transcriptID)
	return nil
}

func (f *fakeProcessor) StartWorkers(ctx context.Context, workerCount int) error { return nil }

func (f *fakeProcessor) StopWorkers() error { return nil }

var _ processor.Service = (*fakeProcessor)(nil)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = pkgvalidator.New()
	return e
}

func newTranscriptTestStack() (*Transcript, repositories.TranscriptRepository, *fakeProcessor) {
	repo := repository.NewMemoryTranscriptRepository()
	svc := transcriptUsecase.NewTranscriptService(repo, nil, zap.NewNop())
	proc := &fakeProcessor{}
	return NewTranscriptHandler(svc, proc, zap.NewNop()), repo, proc
}

func TestIngestTranscript_AcceptsAndQueues(t *testing.T) {
	e := newTestEcho()
	h, repo, proc := newTranscriptTestStack()

	body := `{"title":"Weekly Team Sync","meeting_date":"2024-01-15T10:00:00Z","participants":["John Smith","Sarah Johnson"],"content":"John Smith: let us get started."}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcripts", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Ingest(e.NewContext(req, rec)); err != nil {
		t.Fatalf("ingest returned error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Transcript struct {
			ID     string `json:"id"`
			Source string `json:"source"`
		} `json:"transcript"`
		Queued bool `json:"queued"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Queued {
		t.Fatalf("expected transcript to be queued")
	}
	if resp.Transcript.Source != "api" {
		t.Fatalf("expected default source api, got %q", resp.Transcript.Source)
	}
	if len(proc.submitted) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(proc.submitted))
	}

	stored, err := repo.GetByID(context.Background(), uuid.MustParse(resp.Transcript.ID))
	if err != nil || stored == nil {
		t.Fatalf("transcript was not persisted: %v", err)
	}
	if stored.Title != "Weekly Team Sync" {
		t.Fatalf("unexpected stored title %q", stored.Title)
	}
}

func TestIngestTranscript_MissingTitleRejected(t *testing.T) {
	e := newTestEcho()
	h, _, proc := newTranscriptTestStack()

	body := `{"content":"John Smith: hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcripts", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Ingest(e.NewContext(req, rec)); err != nil {
		t.Fatalf("ingest returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(proc.submitted) != 0 {
		t.Fatalf("rejected request must not be queued")
	}
}

func TestIngestTranscript_QueueFullStillAccepted(t *testing.T) {
	e := newTestEcho()
	h, _, proc := newTranscriptTestStack()
	proc.submitErr = usecaseErrors.ErrQueueFull

	body := `{"title":"Weekly Team Sync","content":"John Smith: hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcripts", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Ingest(e.NewContext(req, rec)); err != nil {
		t.Fatalf("ingest returned error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202 even when the queue is full, got %d", rec.Code)
	}

	var resp struct {
		Queued bool `json:"queued"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Queued {
		t.Fatalf("expected queued=false when the queue rejects the transcript")
	}
}

func TestGetTranscript_ReturnsStored(t *testing.T) {
	e := newTestEcho()
	h, repo, _ := newTranscriptTestStack()

	tr := entities.NewTranscript("Weekly Team Sync", time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), []string{"John Smith"}, "John Smith: hello", "api")
	if err := repo.Insert(context.Background(), tr); err != nil {
		t.Fatalf("failed to seed transcript: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/transcripts/:id")
	c.SetParamNames("id")
	c.SetParamValues(tr.ID.String())

	if err := h.Get(c); err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != tr.ID.String() || resp.Title != "Weekly Team Sync" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestGetTranscript_NotFound(t *testing.T) {
	e := newTestEcho()
	h, _, _ := newTranscriptTestStack()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/transcripts/:id")
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	if err := h.Get(c); err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetTranscript_InvalidID(t *testing.T) {
	e := newTestEcho()
	h, _, _ := newTranscriptTestStack()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/transcripts/:id")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	if err := h.Get(c); err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetTranscriptContent_ServesStoredText(t *testing.T) {
	e := newTestEcho()
	h, repo, _ := newTranscriptTestStack()

	tr := entities.NewTranscript("Weekly Team Sync", time.Now(), nil, "John Smith: hello everyone", "api")
	if err := repo.Insert(context.Background(), tr); err != nil {
		t.Fatalf("failed to seed transcript: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/transcripts/:id/content")
	c.SetParamNames("id")
	c.SetParamValues(tr.ID.String())

	if err := h.Content(c); err != nil {
		t.Fatalf("content returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "John Smith: hello everyone" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestListTranscripts_ReturnsUnprocessed(t *testing.T) {
	e := newTestEcho()
	h, repo, _ := newTranscriptTestStack()

	for i := 0; i < 2; i++ {
		tr := entities.NewTranscript(fmt.Sprintf("Sync %d", i), time.Now(), nil, "content", "api")
		if err := repo.Insert(context.Background(), tr); err != nil {
			t.Fatalf("failed to seed transcript: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcripts", nil)
	rec := httptest.NewRecorder()

	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected 2 transcripts, got %d", resp.Total)
	}
}

func TestProcessTranscript_ReturnsResult(t *testing.T) {
	e := newTestEcho()
	h, _, proc := newTranscriptTestStack()

	transcriptID := uuid.New()
	item := entities.NewActionItem(transcriptID, "Sarah Johnson", "Send the updated NDA to Acme Corp")
	proc.result = &processor.Result{
		TranscriptID: transcriptID,
		Items:        []*entities.ActionItem{item},
		AutoStarted:  1,
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/transcripts/:id/process")
	c.SetParamNames("id")
	c.SetParamValues(transcriptID.String())

	if err := h.Process(c); err != nil {
		t.Fatalf("process returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		TranscriptID string `json:"transcript_id"`
		Items        []struct {
			Assignee string `json:"assignee"`
		} `json:"items"`
		AutoStarted int `json:"auto_started"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TranscriptID != transcriptID.String() {
		t.Fatalf("unexpected transcript id %q", resp.TranscriptID)
	}
	if len(resp.Items) != 1 || resp.Items[0].Assignee != "Sarah Johnson" {
		t.Fatalf("unexpected items %+v", resp.Items)
	}
	if resp.AutoStarted != 1 {
		t.Fatalf("expected auto_started 1, got %d", resp.AutoStarted)
	}
}

func TestProcessTranscript_NotFound(t *testing.T) {
	e := newTestEcho()
	h, _, proc := newTranscriptTestStack()
	proc.processErr = fmt.Errorf("load transcript: %w", entities.ErrTranscriptNotFound)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/transcripts/:id/process")
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	if err := h.Process(c); err != nil {
		t.Fatalf("process returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestProcessTranscript_ExtractionFailureIsBadGateway(t *testing.T) {
	e := newTestEcho()
	h, _, proc := newTranscriptTestStack()
	proc.processErr = &extraction.ExtractionFailedError{Attempts: 3, Err: errors.New("rate limited")}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/transcripts/:id/process")
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	if err := h.Process(c); err != nil {
		t.Fatalf("process returned error: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestProcessTranscript_LockHeldIsConflict(t *testing.T) {
	e := newTestEcho()
	h, _, proc := newTranscriptTestStack()
	proc.processErr = usecaseErrors.ErrLockUnavailable

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/transcripts/:id/process")
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	if err := h.Process(c); err != nil {
		t.Fatalf("process returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
