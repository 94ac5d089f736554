package repositories

import (
	"context"

	"github.com/davidtran-dev/meeting-notes/internal/domain/entities"
)

// ActionItemRepository defines the interface for action item data access
type ActionItemRepository interface {
	// CreateBatch inserts a set of action items in one transaction
	CreateBatch(ctx context.Context, items []*entities.ActionItem) error

	// FindByID retrieves an action item by its ID
	FindByID(ctx context.Context, id uint) (*entities.ActionItem, error)

	// FindByMeetingID retrieves all action items for a meeting,
	// ordered by priority then creation time
	FindByMeetingID(ctx context.Context, meetingID uint) ([]*entities.ActionItem, error)

	// SetCompleted updates the completed flag of an action item
	SetCompleted(ctx context.Context, id uint, completed bool) error

	// SetCalendarEventID records the calendar event created for an item
	SetCalendarEventID(ctx context.Context, id uint, eventID string) error
}
