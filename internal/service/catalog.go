package service

import (
	"fmt"

	"eventify/event-api/internal/model"

	"gorm.io/gorm"
)

// DeleteCategory removes a category together with all of its events
// and their RSVP rows, in one transaction. The cascade is intentional
// product behavior, not a storage accident, which is why it is spelled
// out here instead of relying on the FK alone (SQLite only honors it
// with the foreign_keys pragma on). Returns the number of events
// removed.
func DeleteCategory(db *gorm.DB, categoryID uint) (eventsDeleted int64, err error) {
	err = db.Transaction(func(tx *gorm.DB) error {
		var eventIDs []uint
		if err := tx.Model(&model.Event{}).
			Where("category_id = ?", categoryID).
			Pluck("id", &eventIDs).Error; err != nil {
			return err
		}

		if len(eventIDs) > 0 {
			if err := tx.Where("event_id IN ?", eventIDs).Delete(&model.EventRSVP{}).Error; err != nil {
				return err
			}

			r := tx.Where("category_id = ?", categoryID).Delete(&model.Event{})
			if r.Error != nil {
				return r.Error
			}
			eventsDeleted = r.RowsAffected
		}

		return tx.Delete(&model.Category{}, categoryID).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete category, %w", err)
	}

	return eventsDeleted, nil
}

// DeleteEvent removes an event and its RSVP rows so no orphaned
// relation edges survive.
func DeleteEvent(db *gorm.DB, eventID uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&model.EventRSVP{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Event{}, eventID).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete event, %w", err)
	}

	return nil
}
