package entities

import (
	"time"
)

// Priority represents the urgency of an action item
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Valid reports whether p is one of the recognized priority levels
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ActionItem represents a single task extracted from a meeting summary
type ActionItem struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MeetingID       uint      `gorm:"not null;index" json:"meeting_id"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	Assignee        string    `gorm:"type:varchar(100);default:'Unassigned'" json:"assignee"`
	DueDate         string    `gorm:"type:varchar(100);default:'No due date specified'" json:"due_date"`
	Priority        Priority  `gorm:"type:varchar(20);default:'Medium'" json:"priority"`
	Completed       bool      `gorm:"default:false" json:"completed"`
	CalendarEventID *string   `gorm:"type:varchar(255)" json:"calendar_event_id,omitempty"`
	CreatedAt       time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for ActionItem
func (ActionItem) TableName() string {
	return "action_items"
}
