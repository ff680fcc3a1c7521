package service

import (
	"eventify/event-api/internal/model"
	"eventify/event-api/pkg/security"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterHooks wires the lifecycle side effects onto the bus:
// group auto-assignment and the activation mail for new accounts, and
// the confirmation mail for new RSVPs. Group assignment happens
// synchronously inside the signup request so a freshly created user is
// a Participant before the response is written. Mail handlers only log
// failures.
func RegisterHooks(bus *Bus, db *gorm.DB, tokens *security.ActivationTokens, mailer *Mailer) {
	bus.OnUserCreated(func(u *model.User) {
		if u.IsStaff {
			return
		}

		var participant model.Group
		if err := db.Where("name = ?", model.GroupParticipant).First(&participant).Error; err != nil {
			zap.L().Error("Participant group missing, user left without a group",
				zap.Uint("userID", u.ID), zap.Error(err))
			return
		}

		if err := db.Model(u).Association("Groups").Append(&participant); err != nil {
			zap.L().Error("Failed to assign Participant group",
				zap.Uint("userID", u.ID), zap.Error(err))
			return
		}
	})

	bus.OnUserCreated(func(u *model.User) {
		if u.IsStaff || u.IsActive {
			return
		}

		token := tokens.Generate(security.AccountState{
			UserID:       u.ID,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			IsActive:     u.IsActive,
		})

		if err := mailer.ActivationMail(u, token); err != nil {
			zap.L().Warn("Failed to send activation mail",
				zap.Uint("userID", u.ID), zap.Error(err))
		}
	})

	bus.OnRSVPAdded(func(u *model.User, e *model.Event) {
		if err := mailer.RSVPConfirmation(u, e); err != nil {
			zap.L().Warn("Failed to send RSVP confirmation",
				zap.Uint("userID", u.ID), zap.Uint("eventID", e.ID), zap.Error(err))
		}
	})
}
