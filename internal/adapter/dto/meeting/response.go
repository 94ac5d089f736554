package meeting

import (
	"time"

	"github.com/davidtran-dev/meeting-notes/internal/domain/entities"
	"github.com/davidtran-dev/meeting-notes/internal/usecase/calendar"
)

// ActionItemResponse is the wire form of an action item
type ActionItemResponse struct {
	ID          uint   `json:"id"`
	MeetingID   uint   `json:"meeting_id"`
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
	Completed   bool   `json:"completed"`
}

// MeetingResponse is the wire form of a meeting
type MeetingResponse struct {
	ID            uint                 `json:"id"`
	Title         string               `json:"title"`
	Date          string               `json:"date"`
	Participants  string               `json:"participants"`
	Summary       string               `json:"summary"`
	Transcription string               `json:"transcription"`
	CreatedAt     time.Time            `json:"created_at"`
	ActionItems   []ActionItemResponse `json:"action_items,omitempty"`
}

// MeetingListItem is the compact meeting form used in list responses
type MeetingListItem struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// ProcessAudioResponse is returned after a successful pipeline run.
// Transcription is truncated for the response body; the full text is
// available via the meeting view.
type ProcessAudioResponse struct {
	Success       bool                 `json:"success"`
	MeetingID     uint                 `json:"meeting_id"`
	Summary       string               `json:"summary"`
	ActionItems   []ActionItemResponse `json:"action_items"`
	Transcription string               `json:"transcription"`
}

// CalendarIntegrationResponse reports per-item push outcomes
type CalendarIntegrationResponse struct {
	Success bool                  `json:"success"`
	Results []calendar.ItemResult `json:"results"`
}

// HealthResponse is the health check body
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewActionItemResponse maps an entity to its wire form
func NewActionItemResponse(item *entities.ActionItem) ActionItemResponse {
	return ActionItemResponse{
		ID:          item.ID,
		MeetingID:   item.MeetingID,
		Description: item.Description,
		Assignee:    item.Assignee,
		DueDate:     item.DueDate,
		Priority:    string(item.Priority),
		Completed:   item.Completed,
	}
}

// NewActionItemResponses maps a slice of entities to wire form
func NewActionItemResponses(items []*entities.ActionItem) []ActionItemResponse {
	out := make([]ActionItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewActionItemResponse(item))
	}
	return out
}

// NewMeetingResponse maps a meeting and its items to wire form
func NewMeetingResponse(m *entities.Meeting, items []*entities.ActionItem) MeetingResponse {
	return MeetingResponse{
		ID:            m.ID,
		Title:         m.Title,
		Date:          m.Date,
		Participants:  m.Participants,
		Summary:       m.Summary,
		Transcription: m.Transcription,
		CreatedAt:     m.CreatedAt,
		ActionItems:   NewActionItemResponses(items),
	}
}

// NewMeetingListItems maps meetings to their compact list form
func NewMeetingListItems(meetings []*entities.Meeting) []MeetingListItem {
	out := make([]MeetingListItem, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, MeetingListItem{
			ID:        m.ID,
			Title:     m.Title,
			Date:      m.Date,
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}
