package query_test

import (
	"fmt"
	"testing"
	"time"

	"eventify/event-api/db"
	"eventify/event-api/internal/model"
	"eventify/event-api/internal/query"
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

// seedEvents creates one category and a small spread of events around
// today. Returns the category id.
func seedEvents(t *testing.T, conn *gorm.DB) uint {
	t.Helper()
	today := util.Today()

	cat := model.Category{Name: "General"}
	require.NoError(t, conn.Create(&cat).Error)

	events := []model.Event{
		{Name: "Annual Conference 2024", Location: "Berlin", Date: today.AddDate(0, 0, 7), StartTime: "09:00", CategoryID: cat.ID},
		{Name: "Company Picnic", Location: "City Park", Date: today, StartTime: "12:00", CategoryID: cat.ID},
		{Name: "Retro", Location: "Office", Date: today.AddDate(0, 0, -7), StartTime: "16:00", CategoryID: cat.ID},
	}
	require.NoError(t, conn.Create(&events).Error)

	return cat.ID
}

func names(events []model.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Name)
	}
	return out
}

func TestParseSelector(t *testing.T) {
	assert.Equal(t, query.SelectorUpcoming, query.ParseSelector(""))
	assert.Equal(t, query.SelectorUpcoming, query.ParseSelector("upcoming"))
	assert.Equal(t, query.SelectorPast, query.ParseSelector("past"))
	assert.Equal(t, query.SelectorAll, query.ParseSelector("all"))

	// Unknown values land on the today window
	assert.Equal(t, query.SelectorToday, query.ParseSelector("today"))
	assert.Equal(t, query.SelectorToday, query.ParseSelector("nonsense"))
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	conn := openTestDB(t)
	seedEvents(t, conn)

	var events []model.Event
	require.NoError(t, conn.Scopes(query.Search("CONF")).Find(&events).Error)
	assert.Equal(t, []string{"Annual Conference 2024"}, names(events))

	// Location matches too
	require.NoError(t, conn.Scopes(query.Search("park")).Find(&events).Error)
	assert.Equal(t, []string{"Company Picnic"}, names(events))

	require.NoError(t, conn.Scopes(query.Search("zzz")).Find(&events).Error)
	assert.Empty(t, events)
}

func TestSearchEmptyTermMatchesAll(t *testing.T) {
	conn := openTestDB(t)
	seedEvents(t, conn)

	var events []model.Event
	require.NoError(t, conn.Scopes(query.Search("")).Find(&events).Error)
	assert.Len(t, events, 3)
}

func TestInCategory(t *testing.T) {
	conn := openTestDB(t)
	catID := seedEvents(t, conn)

	other := model.Category{Name: "Other"}
	require.NoError(t, conn.Create(&other).Error)
	require.NoError(t, conn.Create(&model.Event{
		Name: "Workshop", Date: util.Today(), StartTime: "10:00", CategoryID: other.ID,
	}).Error)

	var events []model.Event
	require.NoError(t, conn.Scopes(query.InCategory(other.ID)).Find(&events).Error)
	assert.Equal(t, []string{"Workshop"}, names(events))

	require.NoError(t, conn.Scopes(query.InCategory(catID)).Find(&events).Error)
	assert.Len(t, events, 3)

	// Zero means no category filter
	require.NoError(t, conn.Scopes(query.InCategory(0)).Find(&events).Error)
	assert.Len(t, events, 4)
}

func TestBetweenDatesNeedsBothBounds(t *testing.T) {
	conn := openTestDB(t)
	seedEvents(t, conn)
	today := util.Today()

	var events []model.Event
	require.NoError(t, conn.
		Scopes(query.BetweenDates(today, today.AddDate(0, 0, 7))).
		Find(&events).
		Error)
	assert.ElementsMatch(t, []string{"Annual Conference 2024", "Company Picnic"}, names(events))

	// A single bound is ignored rather than applied half-open
	require.NoError(t, conn.Scopes(query.BetweenDates(today, time.Time{})).Find(&events).Error)
	assert.Len(t, events, 3)

	require.NoError(t, conn.Scopes(query.BetweenDates(time.Time{}, today)).Find(&events).Error)
	assert.Len(t, events, 3)
}

func TestBySelectorWindows(t *testing.T) {
	conn := openTestDB(t)
	seedEvents(t, conn)
	today := util.Today()

	cases := []struct {
		sel  query.Selector
		want []string
	}{
		{query.SelectorUpcoming, []string{"Annual Conference 2024", "Company Picnic"}},
		{query.SelectorPast, []string{"Retro"}},
		{query.SelectorToday, []string{"Company Picnic"}},
		{query.SelectorAll, []string{"Annual Conference 2024", "Company Picnic", "Retro"}},
	}

	for _, tc := range cases {
		var events []model.Event
		require.NoError(t, conn.Scopes(query.BySelector(tc.sel, today)).Find(&events).Error)
		assert.ElementsMatch(t, tc.want, names(events), "selector %s", tc.sel)
	}
}

func TestListingOrderNewestFirst(t *testing.T) {
	conn := openTestDB(t)
	seedEvents(t, conn)

	var events []model.Event
	require.NoError(t, conn.Scopes(query.ListingOrder).Find(&events).Error)
	assert.Equal(t, []string{"Annual Conference 2024", "Company Picnic", "Retro"}, names(events))
}

func TestDashboardOrderChronological(t *testing.T) {
	conn := openTestDB(t)
	seedEvents(t, conn)

	var events []model.Event
	require.NoError(t, conn.Scopes(query.DashboardOrder).Find(&events).Error)
	assert.Equal(t, []string{"Retro", "Company Picnic", "Annual Conference 2024"}, names(events))
}
