package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/davidtran-dev/meeting-notes/internal/domain/entities"
	"github.com/davidtran-dev/meeting-notes/internal/domain/repositories"
)

// actionItemRepository implements the ActionItemRepository interface
type actionItemRepository struct {
	db *gorm.DB
}

// NewActionItemRepository creates a new action item repository
func NewActionItemRepository(db *gorm.DB) repositories.ActionItemRepository {
	return &actionItemRepository{db: db}
}

// CreateBatch inserts a set of action items in one transaction
func (r *actionItemRepository) CreateBatch(ctx context.Context, items []*entities.ActionItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(items).Error
}

// FindByID retrieves an action item by its ID
func (r *actionItemRepository) FindByID(ctx context.Context, id uint) (*entities.ActionItem, error) {
	var item entities.ActionItem
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrActionItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByMeetingID retrieves all action items for a meeting,
// ordered by priority then creation time
func (r *actionItemRepository) FindByMeetingID(ctx context.Context, meetingID uint) ([]*entities.ActionItem, error) {
	var items []*entities.ActionItem
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("priority DESC, created_at ASC").
		Find(&items).Error

	if err != nil {
		return nil, err
	}
	return items, nil
}

// SetCompleted updates the completed flag of an action item
func (r *actionItemRepository) SetCompleted(ctx context.Context, id uint, completed bool) error {
	result := r.db.WithContext(ctx).
		Model(&entities.ActionItem{}).
		Where("id = ?", id).
		Update("completed", completed)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrActionItemNotFound
	}
	return nil
}

// SetCalendarEventID records the calendar event created for an item
func (r *actionItemRepository) SetCalendarEventID(ctx context.Context, id uint, eventID string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.ActionItem{}).
		Where("id = ?", id).
		Update("calendar_event_id", eventID)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrActionItemNotFound
	}
	return nil
}
