package calendar

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	calendarapi "google.golang.org/api/calendar/v3"

	apperrors "github.com/davidtran-dev/meeting-notes/errors"
	"github.com/davidtran-dev/meeting-notes/internal/domain/entities"
)

type fakeItemRepo struct {
	items    map[uint]*entities.ActionItem
	eventIDs map[uint]string
}

func newFakeItemRepo(items ...*entities.ActionItem) *fakeItemRepo {
	repo := &fakeItemRepo{items: make(map[uint]*entities.ActionItem), eventIDs: make(map[uint]string)}
	for _, item := range items {
		repo.items[item.ID] = item
	}
	return repo
}

func (f *fakeItemRepo) CreateBatch(ctx context.Context, items []*entities.ActionItem) error {
	return nil
}

func (f *fakeItemRepo) FindByID(ctx context.Context, id uint) (*entities.ActionItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, entities.ErrActionItemNotFound
	}
	return item, nil
}

func (f *fakeItemRepo) FindByMeetingID(ctx context.Context, meetingID uint) ([]*entities.ActionItem, error) {
	return nil, nil
}

func (f *fakeItemRepo) SetCompleted(ctx context.Context, id uint, completed bool) error {
	return nil
}

func (f *fakeItemRepo) SetCalendarEventID(ctx context.Context, id uint, eventID string) error {
	f.eventIDs[id] = eventID
	return nil
}

type fakeCreator struct {
	events []*calendarapi.Event
	err    error
}

func (f *fakeCreator) InsertEvent(ctx context.Context, event *calendarapi.Event) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	f.events = append(f.events, event)
	return "evt-123", "https://calendar.google.com/event", nil
}

func newTestService(repo *fakeItemRepo, creator EventCreator) *Service {
	svc := NewService(
		repo,
		nil,
		nil,
		func(ctx context.Context) (EventCreator, error) { return creator, nil },
		"America/New_York",
		zap.NewNop(),
	)
	svc.now = func() time.Time {
		return time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestPushItems(t *testing.T) {
	item := &entities.ActionItem{
		ID:          5,
		MeetingID:   1,
		Description: "Send the quarterly report to the finance team before the next sync",
		Assignee:    "bob@example.com",
		DueDate:     "2024-02-05",
		Priority:    entities.PriorityHigh,
	}
	repo := newFakeItemRepo(item)
	creator := &fakeCreator{}

	results, err := newTestService(repo, creator).PushItems(context.Background(), []uint{5})
	if err != nil {
		t.Fatalf("PushItems: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].ItemID != 5 || results[0].EventID != "evt-123" || results[0].Status != "success" {
		t.Errorf("unexpected result %+v", results[0])
	}
	if repo.eventIDs[5] != "evt-123" {
		t.Error("event id not recorded on the action item")
	}

	event := creator.events[0]
	wantSummary := "Action Item: " + item.Description[:50] + "..."
	if event.Summary != wantSummary {
		t.Errorf("summary = %q, want %q", event.Summary, wantSummary)
	}
	if event.Start.DateTime != "2024-02-05T00:00:00" {
		t.Errorf("start = %q", event.Start.DateTime)
	}
	if event.End.DateTime != "2024-02-05T01:00:00" {
		t.Errorf("end = %q, want one hour after start", event.End.DateTime)
	}
	if event.Start.TimeZone != "America/New_York" {
		t.Errorf("timezone = %q", event.Start.TimeZone)
	}
	if len(event.Attendees) != 1 || event.Attendees[0].Email != "bob@example.com" {
		t.Errorf("attendees = %+v, want assignee email", event.Attendees)
	}
	if event.Reminders == nil || event.Reminders.UseDefault {
		t.Fatal("reminders should override defaults")
	}
	if len(event.Reminders.Overrides) != 2 {
		t.Fatalf("got %d reminder overrides, want 2", len(event.Reminders.Overrides))
	}
	if event.Reminders.Overrides[0].Method != "email" || event.Reminders.Overrides[0].Minutes != 1440 {
		t.Errorf("unexpected email reminder %+v", event.Reminders.Overrides[0])
	}
	if event.Reminders.Overrides[1].Method != "popup" || event.Reminders.Overrides[1].Minutes != 60 {
		t.Errorf("unexpected popup reminder %+v", event.Reminders.Overrides[1])
	}
	if !strings.Contains(event.Description, "Assignee: bob@example.com") {
		t.Errorf("description missing assignee: %q", event.Description)
	}
}

func TestPushItemsShortDescriptionStillAppendsEllipsis(t *testing.T) {
	item := &entities.ActionItem{ID: 1, Description: "Ping Bob", Assignee: "Unassigned", Priority: entities.PriorityLow}
	creator := &fakeCreator{}

	_, err := newTestService(newFakeItemRepo(item), creator).PushItems(context.Background(), []uint{1})
	if err != nil {
		t.Fatalf("PushItems: %v", err)
	}
	if creator.events[0].Summary != "Action Item: Ping Bob..." {
		t.Errorf("summary = %q", creator.events[0].Summary)
	}
	if len(creator.events[0].Attendees) != 0 {
		t.Error("non-email assignee should not become an attendee")
	}
}

func TestPushItemsInsertFailureAborts(t *testing.T) {
	items := []*entities.ActionItem{
		{ID: 1, Description: "A"},
		{ID: 2, Description: "B"},
	}
	creator := &fakeCreator{err: errors.New("quota exceeded")}

	_, err := newTestService(newFakeItemRepo(items...), creator).PushItems(context.Background(), []uint{1, 2})
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_CALENDAR_FAILED {
		t.Fatalf("expected calendar failure, got %v", err)
	}
}

func TestPushItemsUnknownItem(t *testing.T) {
	_, err := newTestService(newFakeItemRepo(), &fakeCreator{}).PushItems(context.Background(), []uint{99})
	if !errors.Is(err, entities.ErrActionItemNotFound) {
		t.Fatalf("got %v, want ErrActionItemNotFound", err)
	}
}

func TestParseDueDate(t *testing.T) {
	now := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-01-05", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"01/15/2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"2024-01-05 15:30", time.Date(2024, 1, 5, 15, 30, 0, 0, time.UTC)},
		{"No due date specified", now.AddDate(0, 0, 7)},
		{"", now.AddDate(0, 0, 7)},
		{"next Tuesday", now.AddDate(0, 0, 7)},
	}
	for _, tt := range tests {
		got := parseDueDate(tt.input, now)
		if !got.Equal(tt.want) {
			t.Errorf("parseDueDate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseDueDateDayFirstFormat(t *testing.T) {
	now := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	// 25/12/2024 cannot match the month-first layout, so the day-first
	// layout applies.
	got := parseDueDate("25/12/2024", now)
	want := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
