package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	calendarapi "google.golang.org/api/calendar/v3"

	apperrors "github.com/davidtran-dev/meeting-notes/errors"
	"github.com/davidtran-dev/meeting-notes/internal/domain/entities"
	"github.com/davidtran-dev/meeting-notes/internal/domain/repositories"
	"github.com/davidtran-dev/meeting-notes/internal/infrastructure/external/oauth"
)

// dueDateFormats are the accepted layouts for free-text due dates.
// Anything else falls back to one week from now.
var dueDateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2006-01-02 15:04",
}

// EventCreator inserts an event into the user's calendar
type EventCreator interface {
	InsertEvent(ctx context.Context, event *calendarapi.Event) (string, string, error)
}

// ItemResult records the outcome of pushing one action item
type ItemResult struct {
	ItemID  uint   `json:"item_id"`
	EventID string `json:"event_id"`
	Status  string `json:"status"`
}

// Service pushes action items to Google Calendar and drives the OAuth flow
type Service struct {
	itemRepo     repositories.ActionItemRepository
	provider     *oauth.GoogleProvider
	stateManager *oauth.StateManager
	newCreator   func(ctx context.Context) (EventCreator, error)
	timeZone     string
	logger       *zap.Logger
	now          func() time.Time
}

// NewService creates the calendar service. newCreator builds an event
// creator from the saved OAuth grant; it is called once per push so a
// revoked grant fails the push, not startup.
func NewService(
	itemRepo repositories.ActionItemRepository,
	provider *oauth.GoogleProvider,
	stateManager *oauth.StateManager,
	newCreator func(ctx context.Context) (EventCreator, error),
	timeZone string,
	logger *zap.Logger,
) *Service {
	return &Service{
		itemRepo:     itemRepo,
		provider:     provider,
		stateManager: stateManager,
		newCreator:   newCreator,
		timeZone:     timeZone,
		logger:       logger,
		now:          time.Now,
	}
}

// AuthURL generates a CSRF state token and returns the Google consent URL
func (s *Service) AuthURL() (string, error) {
	state, err := s.stateManager.GenerateState()
	if err != nil {
		return "", apperrors.ErrCalendarAuthFailed(err)
	}
	return s.provider.GetAuthURL(state), nil
}

// HandleCallback validates the OAuth state and exchanges the code for a
// token, persisting it for later pushes
func (s *Service) HandleCallback(ctx context.Context, state, code string) error {
	if !s.stateManager.ValidateState(state) {
		return apperrors.ErrCalendarAuthFailed(entities.ErrOAuthStateMismatch)
	}
	if code == "" {
		return apperrors.ErrCalendarAuthFailed(entities.ErrOAuthCodeInvalid)
	}

	if _, err := s.provider.ExchangeCode(ctx, code); err != nil {
		return apperrors.ErrCalendarAuthFailed(err)
	}

	s.logger.Info("✅ Google Calendar authorized")
	return nil
}

// Authorized reports whether a calendar grant has been saved
func (s *Service) Authorized() bool {
	return s.provider.HasToken()
}

// PushItems creates one calendar event per action item id. Any failure
// aborts the push and is returned as a single error.
func (s *Service) PushItems(ctx context.Context, itemIDs []uint) ([]ItemResult, error) {
	creator, err := s.newCreator(ctx)
	if err != nil {
		return nil, apperrors.ErrCalendarAuthFailed(err)
	}

	results := make([]ItemResult, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		item, err := s.itemRepo.FindByID(ctx, itemID)
		if err != nil {
			return nil, err
		}

		event := s.buildEvent(item)
		eventID, link, err := creator.InsertEvent(ctx, event)
		if err != nil {
			s.logger.Error("❌ Failed to create calendar event",
				zap.Uint("item_id", itemID),
				zap.Error(err),
			)
			return nil, apperrors.ErrCalendarFailed(err)
		}

		if err := s.itemRepo.SetCalendarEventID(ctx, itemID, eventID); err != nil {
			return nil, apperrors.ErrDBQueryFailed(err)
		}

		s.logger.Info("📅 Calendar event created",
			zap.Uint("item_id", itemID),
			zap.String("event_id", eventID),
			zap.String("link", link),
		)

		results = append(results, ItemResult{
			ItemID:  itemID,
			EventID: eventID,
			Status:  "success",
		})
	}

	return results, nil
}

// buildEvent maps an action item to a one-hour calendar event with
// email and popup reminders
func (s *Service) buildEvent(item *entities.ActionItem) *calendarapi.Event {
	due := parseDueDate(item.DueDate, s.now())
	end := due.Add(time.Hour)

	event := &calendarapi.Event{
		Summary: fmt.Sprintf("Action Item: %s...", truncate(item.Description, 50)),
		Description: fmt.Sprintf(
			"Action Item from Meeting\n\nDescription: %s\nAssignee: %s\nPriority: %s\nCreated: %s",
			item.Description,
			item.Assignee,
			item.Priority,
			s.now().Format("2006-01-02 15:04:05"),
		),
		Start: &calendarapi.EventDateTime{
			DateTime: due.Format("2006-01-02T15:04:05"),
			TimeZone: s.timeZone,
		},
		End: &calendarapi.EventDateTime{
			DateTime: end.Format("2006-01-02T15:04:05"),
			TimeZone: s.timeZone,
		},
		Reminders: &calendarapi.EventReminders{
			UseDefault: false,
			Overrides: []*calendarapi.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 60},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	if strings.Contains(item.Assignee, "@") {
		event.Attendees = []*calendarapi.EventAttendee{
			{Email: item.Assignee},
		}
	}

	return event
}

// parseDueDate turns a free-text due date into a start time, defaulting
// to one week from now when absent or unrecognized
func parseDueDate(dueDate string, now time.Time) time.Time {
	if dueDate == "" || dueDate == "No due date specified" {
		return now.AddDate(0, 0, 7)
	}

	for _, layout := range dueDateFormats {
		if t, err := time.Parse(layout, dueDate); err == nil {
			return t
		}
	}
	return now.AddDate(0, 0, 7)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
