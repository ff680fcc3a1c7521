package model

import "time"

type Event struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	// Date holds the calendar day only, normalized to midnight UTC.
	// StartTime is the wall-clock time of day in HH:MM form.
	Date      time.Time `gorm:"not null;index" json:"date"`
	StartTime string    `gorm:"not null" json:"time"`

	Location string `json:"location"`

	CategoryID uint     `gorm:"not null;index" json:"category_id"`
	Category   Category `gorm:"constraint:OnDelete:CASCADE" json:"category,omitempty"`

	// Object key of the uploaded event image, empty when none was
	// attached. The bytes live in the storage collaborator
	ImageKey string `json:"image_key,omitempty"`

	RSVPs []User `gorm:"many2many:event_rsvps" json:"rsvps,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
