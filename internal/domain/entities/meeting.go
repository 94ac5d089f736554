package entities

import (
	"time"
)

// Meeting represents a processed meeting with its transcription and summary
type Meeting struct {
	ID            uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Title         string       `gorm:"type:varchar(200);not null" json:"title"`
	Date          string       `gorm:"type:varchar(50);not null" json:"date"`
	Participants  string       `gorm:"type:text" json:"participants"`
	Transcription string       `gorm:"type:text" json:"transcription"`
	Summary       string       `gorm:"type:text" json:"summary"`
	AudioObject   *string      `gorm:"type:varchar(500)" json:"audio_object,omitempty"`
	CreatedAt     time.Time    `gorm:"default:now()" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"default:now()" json:"updated_at"`
	ActionItems   []ActionItem `gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE" json:"action_items,omitempty"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}
