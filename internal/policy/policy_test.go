package policy

import (
	"testing"

	"eventify/event-api/internal/model"

	"github.com/stretchr/testify/assert"
)

func userIn(groups ...string) *model.User {
	u := &model.User{ID: 1, Username: "u", IsActive: true}
	for _, g := range groups {
		u.Groups = append(u.Groups, model.Group{Name: g})
	}
	return u
}

func TestResolvePriorityOrder(t *testing.T) {
	assert.Equal(t, RoleAdmin, Resolve(userIn(model.GroupAdmin)))
	assert.Equal(t, RoleOrganizer, Resolve(userIn(model.GroupOrganizer)))
	assert.Equal(t, RoleParticipant, Resolve(userIn(model.GroupParticipant)))

	// Admin wins over any other membership
	assert.Equal(t, RoleAdmin, Resolve(userIn(model.GroupOrganizer, model.GroupAdmin)))
	assert.Equal(t, RoleOrganizer, Resolve(userIn(model.GroupParticipant, model.GroupOrganizer)))
}

func TestResolveSuperuser(t *testing.T) {
	u := userIn()
	u.IsSuperuser = true

	assert.Equal(t, RoleAdmin, Resolve(u))
}

func TestResolveDefaultsToParticipant(t *testing.T) {
	// A user in no group still lands on the participant dashboard
	assert.Equal(t, RoleParticipant, Resolve(userIn()))
}

func TestResolveNilUser(t *testing.T) {
	assert.Equal(t, RoleNone, Resolve(nil))
}

func TestGrouplessUserIsDeniedEverything(t *testing.T) {
	u := userIn()

	for _, a := range []Action{
		ActionManageEvents,
		ActionManageCategories,
		ActionViewAdminDashboard,
		ActionViewOrganizerDashboard,
	} {
		assert.False(t, Can(u, a), "action %d should be denied", a)
	}
}

func TestUnauthenticatedIsDeniedEverything(t *testing.T) {
	for _, a := range []Action{
		ActionManageEvents,
		ActionManageCategories,
		ActionViewAdminDashboard,
		ActionViewOrganizerDashboard,
	} {
		assert.False(t, Can(nil, a))
	}
}

func TestOrganizerPermissions(t *testing.T) {
	u := userIn(model.GroupOrganizer)

	assert.True(t, Can(u, ActionManageEvents))
	assert.True(t, Can(u, ActionManageCategories))
	assert.True(t, Can(u, ActionViewOrganizerDashboard))
	assert.False(t, Can(u, ActionViewAdminDashboard))
}

func TestAdminPermissions(t *testing.T) {
	u := userIn(model.GroupAdmin)

	assert.True(t, Can(u, ActionManageEvents))
	assert.True(t, Can(u, ActionManageCategories))
	assert.True(t, Can(u, ActionViewAdminDashboard))
	assert.True(t, Can(u, ActionViewOrganizerDashboard))
}

func TestParticipantIsMembershipNotFallback(t *testing.T) {
	assert.True(t, IsParticipant(userIn(model.GroupParticipant)))
	assert.False(t, IsParticipant(userIn()))
}
