package repositories

import (
	"context"

	"github.com/davidtran-dev/meeting-notes/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create creates a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting by its ID
	FindByID(ctx context.Context, id uint) (*entities.Meeting, error)

	// FindAll retrieves all meetings ordered by creation time, newest first
	FindAll(ctx context.Context) ([]*entities.Meeting, error)
}
