// Package query is the read-side filter composition over events.
// Everything here is a gorm scope so handlers can stack filters
// freely; none of it mutates state.
package query

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Selector is the dashboard time-window filter.
type Selector string

const (
	SelectorUpcoming Selector = "upcoming"
	SelectorPast     Selector = "past"
	SelectorAll      Selector = "all"
	SelectorToday    Selector = "today"
)

// ParseSelector maps the ?filter= query value to a Selector. An empty
// value means upcoming; any unrecognized value falls through to
// today, matching the original dashboard's branch order.
func ParseSelector(s string) Selector {
	switch Selector(s) {
	case "", SelectorUpcoming:
		return SelectorUpcoming
	case SelectorPast:
		return SelectorPast
	case SelectorAll:
		return SelectorAll
	default:
		return SelectorToday
	}
}

// Search matches the term as a case-insensitive substring of the
// event name or location. An empty term is a no-op.
func Search(term string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" {
			return db
		}

		pattern := "%" + strings.ToLower(term) + "%"
		return db.Where("LOWER(name) LIKE ? OR LOWER(location) LIKE ?", pattern, pattern)
	}
}

// InCategory filters on the exact category id. Zero is a no-op.
func InCategory(categoryID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if categoryID == 0 {
			return db
		}

		return db.Where("category_id = ?", categoryID)
	}
}

// BetweenDates filters on the inclusive [start, end] range. The filter
// only applies when both bounds are set; a single bound is ignored.
func BetweenDates(start, end time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if start.IsZero() || end.IsZero() {
			return db
		}

		return db.Where("date >= ? AND date <= ?", start, end)
	}
}

// BySelector applies the dashboard time window relative to today.
func BySelector(sel Selector, today time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch sel {
		case SelectorUpcoming:
			return db.Where("date >= ?", today)
		case SelectorPast:
			return db.Where("date < ?", today)
		case SelectorAll:
			return db
		default:
			return db.Where("date = ?", today)
		}
	}
}

// ListingOrder is the general listing sort: date descending, newest
// first, with id as the deterministic tiebreak.
func ListingOrder(db *gorm.DB) *gorm.DB {
	return db.Order("date DESC, id DESC")
}

// DashboardOrder is the stable order used by all dashboard lists.
func DashboardOrder(db *gorm.DB) *gorm.DB {
	return db.Order("date ASC, id ASC")
}
