// Package policy is the pure role/permission decision layer. Nothing
// in here touches the database or the request context; callers hand in
// a user with preloaded group memberships and get a verdict back.
package policy

import "eventify/event-api/internal/model"

// Role is the closed set of effective roles. A user may sit in several
// groups at once; Resolve collapses that to one Role in fixed priority
// order so dashboard routing never depends on group ordering.
type Role int

const (
	RoleNone Role = iota
	RoleParticipant
	RoleOrganizer
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleOrganizer:
		return "organizer"
	case RoleParticipant:
		return "participant"
	default:
		return "none"
	}
}

// Action is the closed set of gated operations.
type Action int

const (
	ActionManageEvents Action = iota
	ActionManageCategories
	ActionViewAdminDashboard
	ActionViewOrganizerDashboard
)

// Resolve returns the effective role of a user. Priority order:
// superuser/Admin, then Organizer, then Participant. Users in no group
// still resolve to Participant so they always land on a dashboard.
// A nil user is unauthenticated and resolves to RoleNone.
func Resolve(u *model.User) Role {
	if u == nil {
		return RoleNone
	}

	if u.IsSuperuser || u.InGroup(model.GroupAdmin) {
		return RoleAdmin
	}

	if u.InGroup(model.GroupOrganizer) {
		return RoleOrganizer
	}

	return RoleParticipant
}

func IsAdmin(u *model.User) bool {
	return u != nil && (u.IsSuperuser || u.InGroup(model.GroupAdmin))
}

func IsOrganizer(u *model.User) bool {
	return u != nil && (u.IsSuperuser || u.InGroup(model.GroupOrganizer))
}

func IsAdminOrOrganizer(u *model.User) bool {
	return IsAdmin(u) || IsOrganizer(u)
}

// IsParticipant reports actual Participant group membership, unlike
// Resolve which treats Participant as the fallback role.
func IsParticipant(u *model.User) bool {
	return u != nil && u.InGroup(model.GroupParticipant)
}

// Can decides whether a user may perform a gated action. Unknown
// actions and unauthenticated users are always denied.
func Can(u *model.User, a Action) bool {
	if u == nil {
		return false
	}

	switch a {
	case ActionManageEvents, ActionManageCategories, ActionViewOrganizerDashboard:
		return IsAdminOrOrganizer(u)
	case ActionViewAdminDashboard:
		return IsAdmin(u)
	default:
		return false
	}
}
