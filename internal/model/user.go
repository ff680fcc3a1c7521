// Package model defines database models
package model

import "time"

// Role group names. These are the only rows ever present in the
// groups table, seeded at migration time.
const (
	GroupAdmin       = "Admin"
	GroupOrganizer   = "Organizer"
	GroupParticipant = "Participant"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	IsActive     bool   `gorm:"default:false" json:"is_active"`
	IsStaff      bool   `gorm:"default:false" json:"-"`
	IsSuperuser  bool   `gorm:"default:false" json:"-"`

	Groups      []Group `gorm:"many2many:user_groups" json:"groups,omitempty"`
	RSVPEvents  []Event `gorm:"many2many:event_rsvps" json:"rsvp_events,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InGroup reports whether the user's loaded group memberships include
// the named group. Callers must have preloaded Groups.
func (u *User) InGroup(name string) bool {
	for _, g := range u.Groups {
		if g.Name == name {
			return true
		}
	}
	return false
}

type Group struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
