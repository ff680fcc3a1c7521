package internal

import (
	"eventify/event-api/internal/service"
	"eventify/event-api/internal/storage"
	"eventify/event-api/pkg/security"

	"gorm.io/gorm"
)

// Deps carries everything the handlers need. S3 stays nil when no
// bucket is configured, in which case image uploads are rejected.
type Deps struct {
	DB     *gorm.DB
	Argon  *security.ArgonHash
	Tokens *security.ActivationTokens
	Bus    *service.Bus
	Mailer *service.Mailer
	RSVPs  *service.RSVPLedger
	S3     *storage.S3Client
}
