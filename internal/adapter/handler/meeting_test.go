package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/davidtran-dev/meeting-notes/internal/domain/entities"
	"github.com/davidtran-dev/meeting-notes/internal/usecase/notes"
	"github.com/davidtran-dev/meeting-notes/pkg/validator"
)

type fakeNotesService struct {
	processResult *notes.ProcessResult
	processErr    error
	lastInput     notes.ProcessInput
	meeting       *entities.Meeting
	items         []*entities.ActionItem
}

func (f *fakeNotesService) ProcessAudio(ctx context.Context, input notes.ProcessInput) (*notes.ProcessResult, error) {
	f.lastInput = input
	return f.processResult, f.processErr
}

func (f *fakeNotesService) GetMeeting(ctx context.Context, id uint) (*entities.Meeting, []*entities.ActionItem, error) {
	if f.meeting == nil || f.meeting.ID != id {
		return nil, nil, entities.ErrMeetingNotFound
	}
	return f.meeting, f.items, nil
}

func (f *fakeNotesService) ListMeetings(ctx context.Context) ([]*entities.Meeting, error) {
	if f.meeting == nil {
		return nil, nil
	}
	return []*entities.Meeting{f.meeting}, nil
}

func (f *fakeNotesService) SetItemCompleted(ctx context.Context, itemID uint, completed bool) (*entities.ActionItem, error) {
	for _, item := range f.items {
		if item.ID == itemID {
			item.Completed = completed
			return item, nil
		}
	}
	return nil, entities.ErrActionItemNotFound
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	return e
}

func newMeetingHandler(t *testing.T, svc notes.Service) *Meeting {
	t.Helper()
	return NewMeetingHandler(svc, t.TempDir(), []string{"mp3", "wav", "m4a", "flac", "aac", "webm"}, zap.NewNop())
}

func multipartRequest(t *testing.T, filename string, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if filename != "" {
		fw, err := w.CreateFormFile("audio_file", filename)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte("fake audio bytes"))
	}
	for k, v := range fields {
		w.WriteField(k, v)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/process_audio", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestProcessAudioHandler(t *testing.T) {
	svc := &fakeNotesService{
		processResult: &notes.ProcessResult{
			Meeting: &entities.Meeting{
				ID:            1,
				Title:         "Weekly Sync",
				Summary:       "# Meeting Summary\n\nShort.",
				Transcription: strings.Repeat("a", 600),
			},
			ActionItems: []*entities.ActionItem{
				{ID: 1, MeetingID: 1, Description: "Send report", Assignee: "Bob", DueDate: "2024-02-05", Priority: entities.PriorityHigh},
			},
		},
	}
	h := newMeetingHandler(t, svc)

	e := newTestEcho()
	req := multipartRequest(t, "standup.mp3", map[string]string{
		"meeting_title": "Weekly Sync",
		"meeting_date":  "2024-02-01",
		"attendees":     "Bob, Amy",
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ProcessAudio(c); err != nil {
		t.Fatalf("ProcessAudio: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success       bool   `json:"success"`
		MeetingID     uint   `json:"meeting_id"`
		Transcription string `json:"transcription"`
		ActionItems   []struct {
			Description string `json:"description"`
		} `json:"action_items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.MeetingID != 1 {
		t.Errorf("unexpected response %+v", resp)
	}
	if len(resp.Transcription) != 503 || !strings.HasSuffix(resp.Transcription, "...") {
		t.Errorf("transcription should be truncated to 500 chars plus ellipsis, got len %d", len(resp.Transcription))
	}
	if len(resp.ActionItems) != 1 || resp.ActionItems[0].Description != "Send report" {
		t.Errorf("action items = %+v", resp.ActionItems)
	}

	if svc.lastInput.Title != "Weekly Sync" || svc.lastInput.Date != "2024-02-01" || svc.lastInput.Participants != "Bob, Amy" {
		t.Errorf("form fields not forwarded: %+v", svc.lastInput)
	}
	if svc.lastInput.AudioPath == "" || !strings.HasSuffix(svc.lastInput.AudioPath, "standup.mp3") {
		t.Errorf("audio path = %q", svc.lastInput.AudioPath)
	}
}

func TestProcessAudioHandlerDefaults(t *testing.T) {
	svc := &fakeNotesService{
		processResult: &notes.ProcessResult{
			Meeting: &entities.Meeting{ID: 2, Transcription: "short"},
		},
	}
	h := newMeetingHandler(t, svc)

	e := newTestEcho()
	req := multipartRequest(t, "call.wav", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ProcessAudio(c); err != nil {
		t.Fatalf("ProcessAudio: %v", err)
	}
	if svc.lastInput.Title != "Untitled Meeting" {
		t.Errorf("title = %q, want default", svc.lastInput.Title)
	}
	if svc.lastInput.Date == "" {
		t.Error("date default not applied")
	}
}

func TestProcessAudioHandlerMissingFile(t *testing.T) {
	h := newMeetingHandler(t, &fakeNotesService{})

	e := newTestEcho()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	w.WriteField("meeting_title", "No file")
	w.Close()
	req := httptest.NewRequest(http.MethodPost, "/process_audio", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ProcessAudio(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No audio file provided") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestProcessAudioHandlerBadExtension(t *testing.T) {
	h := newMeetingHandler(t, &fakeNotesService{})

	e := newTestEcho()
	req := multipartRequest(t, "notes.txt", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ProcessAudio(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestViewMeeting(t *testing.T) {
	svc := &fakeNotesService{
		meeting: &entities.Meeting{ID: 3, Title: "Retro", Summary: "sum", Transcription: "text"},
		items: []*entities.ActionItem{
			{ID: 9, MeetingID: 3, Description: "Fix CI", Priority: entities.PriorityHigh},
		},
	}
	h := newMeetingHandler(t, svc)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/meeting/3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/meeting/:id")
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.ViewMeeting(c); err != nil {
		t.Fatalf("ViewMeeting: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Fix CI") {
		t.Errorf("body missing action item: %s", rec.Body.String())
	}
}

func TestViewMeetingNotFoundRedirects(t *testing.T) {
	h := newMeetingHandler(t, &fakeNotesService{})

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/meeting/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/meeting/:id")
	c.SetParamNames("id")
	c.SetParamValues("99")

	if err := h.ViewMeeting(c); err != nil {
		t.Fatalf("ViewMeeting: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/?error=") {
		t.Errorf("location = %q", location)
	}
}

func TestUpdateActionItem(t *testing.T) {
	svc := &fakeNotesService{
		items: []*entities.ActionItem{
			{ID: 4, MeetingID: 1, Description: "Review PR"},
		},
	}
	h := newMeetingHandler(t, svc)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPatch, "/action_items/4", strings.NewReader(`{"completed":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/action_items/:id")
	c.SetParamNames("id")
	c.SetParamValues("4")

	if err := h.UpdateActionItem(c); err != nil {
		t.Fatalf("UpdateActionItem: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !svc.items[0].Completed {
		t.Error("item not marked completed")
	}
}

func TestHealth(t *testing.T) {
	h := newMeetingHandler(t, &fakeNotesService{})

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Health(c); err != nil {
		t.Fatalf("Health: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("status = %q", resp["status"])
	}
	if resp["timestamp"] == "" {
		t.Error("timestamp missing")
	}
}
