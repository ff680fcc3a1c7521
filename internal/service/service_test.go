package service_test

import (
	"fmt"
	"testing"
	"time"

	"eventify/event-api/db"
	"eventify/event-api/internal/model"
	"eventify/event-api/internal/query"
	"eventify/event-api/internal/service"
	"eventify/event-api/pkg/security"
	"eventify/event-api/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())))
	require.NoError(t, err)
	require.NoError(t, db.Prepare(conn))

	return conn
}

func makeUser(t *testing.T, conn *gorm.DB, username string) *model.User {
	t.Helper()

	u := model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, conn.Create(&u).Error)

	return &u
}

func makeEvent(t *testing.T, conn *gorm.DB, name string, date time.Time) *model.Event {
	t.Helper()

	cat := model.Category{Name: "Cat for " + name}
	require.NoError(t, conn.Create(&cat).Error)

	e := model.Event{Name: name, Date: date, StartTime: "18:00", CategoryID: cat.ID}
	require.NoError(t, conn.Create(&e).Error)

	return &e
}

func TestRSVPAddIsIdempotent(t *testing.T) {
	conn := openTestDB(t)
	bus := service.NewBus()

	var notified int
	bus.OnRSVPAdded(func(*model.User, *model.Event) { notified++ })

	ledger := service.NewRSVPLedger(conn, bus)
	u := makeUser(t, conn, "alice")
	e := makeEvent(t, conn, "Concert", util.Today())

	added, err := ledger.Add(u, e)
	require.NoError(t, err)
	assert.True(t, added)

	// The second add must not create a row or fire a second
	// notification
	added, err = ledger.Add(u, e)
	require.NoError(t, err)
	assert.False(t, added)

	n, err := ledger.Count(e.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.Equal(t, 1, notified)
}

func TestRSVPRemove(t *testing.T) {
	conn := openTestDB(t)
	ledger := service.NewRSVPLedger(conn, service.NewBus())
	u := makeUser(t, conn, "bob")
	e := makeEvent(t, conn, "Meetup", util.Today())

	// Removing before any RSVP exists is a no-op
	removed, err := ledger.Remove(u, e)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = ledger.Add(u, e)
	require.NoError(t, err)

	removed, err = ledger.Remove(u, e)
	require.NoError(t, err)
	assert.True(t, removed)

	n, err := ledger.Count(e.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSignupHookAssignsParticipantOnly(t *testing.T) {
	conn := openTestDB(t)
	bus := service.NewBus()
	tokens := security.NewActivationTokens("secret", time.Hour)
	service.RegisterHooks(bus, conn, tokens, &service.Mailer{})

	u := model.User{Username: "carol", Email: "carol@example.com", PasswordHash: "x"}
	require.NoError(t, conn.Create(&u).Error)
	bus.UserCreated(&u)

	var got model.User
	require.NoError(t, conn.Preload("Groups").First(&got, u.ID).Error)

	require.Len(t, got.Groups, 1)
	assert.Equal(t, model.GroupParticipant, got.Groups[0].Name)
}

func TestSignupHookSkipsStaff(t *testing.T) {
	conn := openTestDB(t)
	bus := service.NewBus()
	tokens := security.NewActivationTokens("secret", time.Hour)
	service.RegisterHooks(bus, conn, tokens, &service.Mailer{})

	u := model.User{Username: "root", Email: "root@example.com", PasswordHash: "x", IsStaff: true}
	require.NoError(t, conn.Create(&u).Error)
	bus.UserCreated(&u)

	var got model.User
	require.NoError(t, conn.Preload("Groups").First(&got, u.ID).Error)
	assert.Empty(t, got.Groups)
}

func TestDeleteCategoryCascades(t *testing.T) {
	conn := openTestDB(t)
	today := util.Today()

	music := model.Category{Name: "Music"}
	require.NoError(t, conn.Create(&music).Error)

	concert := model.Event{Name: "Concert", Date: today, StartTime: "20:00", CategoryID: music.ID}
	require.NoError(t, conn.Create(&concert).Error)

	u := makeUser(t, conn, "dave")
	ledger := service.NewRSVPLedger(conn, service.NewBus())
	_, err := ledger.Add(u, &concert)
	require.NoError(t, err)

	// The event is visible in the today window before the delete
	var events []model.Event
	require.NoError(t, conn.Scopes(query.BySelector(query.SelectorToday, today)).Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, "Concert", events[0].Name)

	deleted, err := service.DeleteCategory(conn, music.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	var eventCount, rsvpCount, catCount int64
	require.NoError(t, conn.Model(&model.Event{}).Count(&eventCount).Error)
	require.NoError(t, conn.Model(&model.EventRSVP{}).Count(&rsvpCount).Error)
	require.NoError(t, conn.Model(&model.Category{}).Where("id = ?", music.ID).Count(&catCount).Error)

	assert.Zero(t, eventCount)
	assert.Zero(t, rsvpCount)
	assert.Zero(t, catCount)
}

func TestDeleteCategoryLeavesOthersAlone(t *testing.T) {
	conn := openTestDB(t)
	today := util.Today()

	music := model.Category{Name: "Music"}
	sports := model.Category{Name: "Sports"}
	require.NoError(t, conn.Create(&music).Error)
	require.NoError(t, conn.Create(&sports).Error)

	require.NoError(t, conn.Create(&model.Event{Name: "Concert", Date: today, StartTime: "20:00", CategoryID: music.ID}).Error)
	require.NoError(t, conn.Create(&model.Event{Name: "Marathon", Date: today, StartTime: "08:00", CategoryID: sports.ID}).Error)

	_, err := service.DeleteCategory(conn, music.ID)
	require.NoError(t, err)

	var events []model.Event
	require.NoError(t, conn.Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, "Marathon", events[0].Name)
}

func TestDeleteEventDropsRSVPRows(t *testing.T) {
	conn := openTestDB(t)
	e := makeEvent(t, conn, "Gala", util.Today())
	u := makeUser(t, conn, "erin")

	ledger := service.NewRSVPLedger(conn, service.NewBus())
	_, err := ledger.Add(u, e)
	require.NoError(t, err)

	require.NoError(t, service.DeleteEvent(conn, e.ID))

	var eventCount, rsvpCount int64
	require.NoError(t, conn.Model(&model.Event{}).Count(&eventCount).Error)
	require.NoError(t, conn.Model(&model.EventRSVP{}).Count(&rsvpCount).Error)
	assert.Zero(t, eventCount)
	assert.Zero(t, rsvpCount)
}

func TestBusRunsHandlersInOrder(t *testing.T) {
	bus := service.NewBus()

	var order []int
	bus.OnUserCreated(func(*model.User) { order = append(order, 1) })
	bus.OnUserCreated(func(*model.User) { order = append(order, 2) })

	bus.UserCreated(&model.User{})
	assert.Equal(t, []int{1, 2}, order)
}
