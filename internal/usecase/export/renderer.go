package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	apperrors "github.com/davidtran-dev/meeting-notes/errors"
	"github.com/davidtran-dev/meeting-notes/internal/domain/entities"
)

// Renderer turns a meeting and its action items into an export document
type Renderer struct {
	now func() time.Time
}

// NewRenderer creates a new Renderer
func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// RenderText produces the plain-text export of a meeting
func (r *Renderer) RenderText(meeting *entities.Meeting, items []*entities.ActionItem) string {
	banner := strings.Repeat("=", 60)
	rule := strings.Repeat("-", 20)

	var lines []string
	lines = append(lines, banner)
	lines = append(lines, fmt.Sprintf("MEETING SUMMARY: %s", strings.ToUpper(meeting.Title)))
	lines = append(lines, banner)
	lines = append(lines, "")

	lines = append(lines, "MEETING DETAILS:")
	lines = append(lines, fmt.Sprintf("Date: %s", meeting.Date))
	lines = append(lines, fmt.Sprintf("Attendees: %s", meeting.Participants))
	lines = append(lines, fmt.Sprintf("Generated: %s", r.now().Format("2006-01-02 15:04:05")))
	lines = append(lines, "")

	lines = append(lines, "MEETING SUMMARY:")
	lines = append(lines, rule)
	lines = append(lines, meeting.Summary)
	lines = append(lines, "")

	if len(items) > 0 {
		lines = append(lines, "ACTION ITEMS:")
		lines = append(lines, rule)
		for i, item := range items {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, item.Description))
			lines = append(lines, fmt.Sprintf("   Assignee: %s", item.Assignee))
			lines = append(lines, fmt.Sprintf("   Due Date: %s", item.DueDate))
			lines = append(lines, fmt.Sprintf("   Priority: %s", item.Priority))
			lines = append(lines, "")
		}
	}

	lines = append(lines, banner)
	lines = append(lines, "Generated by AI Meeting Notes Generator")
	lines = append(lines, banner)

	return strings.Join(lines, "\n")
}

// RenderPDF produces the PDF export of a meeting
func (r *Renderer) RenderPDF(meeting *entities.Meeting, items []*entities.ActionItem) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, fmt.Sprintf("Meeting Summary: %s", meeting.Title), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	// Meeting details
	pdf.SetFont("Helvetica", "", 10)
	details := [][2]string{
		{"Date:", meeting.Date},
		{"Attendees:", meeting.Participants},
		{"Generated:", r.now().Format("2006-01-02 15:04:05")},
	}
	for _, row := range details {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(38, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	// Summary
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Meeting Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, meeting.Summary, "", "L", false)
	pdf.Ln(8)

	// Action items table
	if len(items) > 0 {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, "Action Items", "", 1, "L", false, 0, "")

		widths := []float64{76, 38, 38, 25}
		headers := []string{"Description", "Assignee", "Due Date", "Priority"}

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(128, 128, 128)
		pdf.SetTextColor(245, 245, 245)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetFillColor(245, 245, 220)
		pdf.SetTextColor(0, 0, 0)
		for _, item := range items {
			desc := item.Description
			if len(desc) > 60 {
				desc = desc[:60] + "..."
			}
			row := []string{desc, item.Assignee, item.DueDate, string(item.Priority)}
			for i, cell := range row {
				pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", true, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.ErrExportFailed("pdf", err)
	}
	return buf.Bytes(), nil
}
