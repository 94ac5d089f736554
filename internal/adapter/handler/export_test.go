package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/davidtran-dev/meeting-notes/internal/domain/entities"
	"github.com/davidtran-dev/meeting-notes/internal/usecase/export"
)

func newExportHandler(svc *fakeNotesService) *Export {
	return NewExportHandler(svc, export.NewRenderer(), zap.NewNop())
}

func exportRequest(t *testing.T, h *Export, id, format string) *httptest.ResponseRecorder {
	t.Helper()
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/export/"+id+"/"+format, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/export/:id/:format")
	c.SetParamNames("id", "format")
	c.SetParamValues(id, format)

	if err := h.ExportMeeting(c); err != nil {
		t.Fatalf("ExportMeeting: %v", err)
	}
	return rec
}

func TestExportTxt(t *testing.T) {
	svc := &fakeNotesService{
		meeting: &entities.Meeting{ID: 1, Title: "Planning", Date: "2024-02-01", Summary: "the summary"},
		items: []*entities.ActionItem{
			{ID: 1, MeetingID: 1, Description: "Draft roadmap", Assignee: "Amy", DueDate: "soon", Priority: entities.PriorityMedium},
		},
	}

	rec := exportRequest(t, newExportHandler(svc), "1", "txt")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "MEETING SUMMARY: PLANNING") {
		t.Errorf("body missing title banner: %s", body)
	}
	if !strings.Contains(body, "1. Draft roadmap") {
		t.Errorf("body missing action item: %s", body)
	}
}

func TestExportPDF(t *testing.T) {
	svc := &fakeNotesService{
		meeting: &entities.Meeting{ID: 1, Title: "Planning", Summary: "the summary"},
	}

	rec := exportRequest(t, newExportHandler(svc), "1", "pdf")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("content type = %q", got)
	}
	if disposition := rec.Header().Get("Content-Disposition"); !strings.Contains(disposition, "Planning_summary.pdf") {
		t.Errorf("disposition = %q", disposition)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Error("body is not a PDF document")
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	svc := &fakeNotesService{
		meeting: &entities.Meeting{ID: 1, Title: "Planning"},
	}

	rec := exportRequest(t, newExportHandler(svc), "1", "docx")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestExportMeetingMissing(t *testing.T) {
	rec := exportRequest(t, newExportHandler(&fakeNotesService{}), "5", "txt")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
