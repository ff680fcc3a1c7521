// Package db opens the configured database and prepares the schema
package db

import (
	"fmt"

	"eventify/event-api/internal/model"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New() (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch viper.GetString("db.driver") {
	case "postgres":
		dialector = postgres.Open(viper.GetString("db.dsn"))
	default:
		// Foreign keys are off by default in SQLite and the
		// category -> event cascade depends on them
		dialector = sqlite.Open(viper.GetString("db.dsn") + "?_fk=1")
	}

	db, err := gorm.Open(dialector)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	if err := Prepare(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Prepare migrates the schema, registers the RSVP join table and seeds
// the role groups. Split out of New so tests can run it against an
// in-memory database.
func Prepare(db *gorm.DB) error {
	if err := db.SetupJoinTable(&model.Event{}, "RSVPs", &model.EventRSVP{}); err != nil {
		return fmt.Errorf("failed to set up RSVP join table, %w", err)
	}

	if err := db.SetupJoinTable(&model.User{}, "RSVPEvents", &model.EventRSVP{}); err != nil {
		return fmt.Errorf("failed to set up RSVP join table, %w", err)
	}

	err := db.AutoMigrate(model.Group{}, model.User{}, model.Category{}, model.Event{})
	if err != nil {
		return fmt.Errorf("failed to automigrate tables, %w", err)
	}

	// The signup hook assigns Participant, so the rows have to exist
	// before the first request
	for _, name := range []string{model.GroupAdmin, model.GroupOrganizer, model.GroupParticipant} {
		group := model.Group{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&group).Error; err != nil {
			return fmt.Errorf("failed to seed group %s, %w", name, err)
		}
	}

	return nil
}
