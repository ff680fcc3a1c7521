package service

import (
	"fmt"

	"eventify/event-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RSVPLedger owns the user<->event relation. Only the acting user's
// own membership goes through here; no caller can touch someone
// else's rows.
type RSVPLedger struct {
	DB  *gorm.DB
	Bus *Bus
}

func NewRSVPLedger(db *gorm.DB, bus *Bus) *RSVPLedger {
	return &RSVPLedger{DB: db, Bus: bus}
}

// Add inserts the relation and reports whether a new row was created.
// The insert ignores conflicts on the composite key, so a duplicate
// add (including a concurrent one) comes back added=false instead of
// erroring, and the RSVPAdded notification fires only for the call
// that actually created the row.
func (l *RSVPLedger) Add(u *model.User, e *model.Event) (added bool, err error) {
	r := l.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.EventRSVP{
		EventID: e.ID,
		UserID:  u.ID,
	})
	if r.Error != nil {
		return false, fmt.Errorf("failed to insert RSVP, %w", r.Error)
	}

	if r.RowsAffected == 0 {
		return false, nil
	}

	l.Bus.RSVPAdded(u, e)
	return true, nil
}

// Remove deletes the relation and reports whether a row existed.
// Removing an absent relation is a no-op; no notification is sent on
// removal.
func (l *RSVPLedger) Remove(u *model.User, e *model.Event) (removed bool, err error) {
	r := l.DB.Where("event_id = ? AND user_id = ?", e.ID, u.ID).Delete(&model.EventRSVP{})
	if r.Error != nil {
		return false, fmt.Errorf("failed to delete RSVP, %w", r.Error)
	}

	return r.RowsAffected > 0, nil
}

// Count returns the number of RSVPs on an event.
func (l *RSVPLedger) Count(eventID uint) (int64, error) {
	var n int64
	err := l.DB.Model(&model.EventRSVP{}).Where("event_id = ?", eventID).Count(&n).Error
	return n, err
}
