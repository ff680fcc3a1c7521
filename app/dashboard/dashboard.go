// Package dashboard holds the role-scoped dashboard endpoints.
// /dashboard resolves the caller's role in fixed priority order and
// answers the matching variant; the explicit variants are also routed
// directly with their own gates.
package dashboard

import (
	"net/http"
	"time"

	"eventify/event-api/internal"
	"eventify/event-api/internal/model"
	"eventify/event-api/internal/policy"
	"eventify/event-api/internal/query"
	"eventify/event-api/pkg/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stats struct {
	TotalEvents       int64 `json:"total_events"`
	TotalCategories   int64 `json:"total_categories"`
	TotalParticipants int64 `json:"total_participants"`
	UpcomingEvents    int64 `json:"upcoming_events"`
	PastEvents        int64 `json:"past_events"`
}

// Home routes by resolved role: Admin first, then Organizer, then the
// participant view as the default for everyone else.
func Home(c *gin.Context, d *internal.Deps) {
	account := c.MustGet("user").(*model.User)

	switch policy.Resolve(account) {
	case policy.RoleAdmin:
		Admin(c, d)
	case policy.RoleOrganizer:
		Organizer(c, d)
	default:
		Participant(c, d)
	}
}

// Admin shows aggregate counts across all events plus the
// selector-filtered list.
func Admin(c *gin.Context, d *internal.Deps) {
	renderAggregate(c, d, policy.RoleAdmin)
}

// Organizer sees the same aggregates as Admin.
func Organizer(c *gin.Context, d *internal.Deps) {
	renderAggregate(c, d, policy.RoleOrganizer)
}

func renderAggregate(c *gin.Context, d *internal.Deps, role policy.Role) {
	requestID := c.MustGet("requestID").(string)
	today := util.Today()

	s, err := collectStats(d, today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to collect dashboard stats", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	sel := query.ParseSelector(c.Query("filter"))

	var events []model.Event
	err = d.DB.Preload("Category").
		Scopes(query.BySelector(sel, today), query.DashboardOrder).
		Find(&events).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list dashboard events", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role":   role.String(),
		"filter": sel,
		"stats":  s,
		"events": events,
	})
}

// Participant restricts the selector to the events the caller RSVP'd
// to.
func Participant(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	account := c.MustGet("user").(*model.User)
	today := util.Today()

	sel := query.ParseSelector(c.Query("filter"))

	var events []model.Event
	err := d.DB.Preload("Category").
		Joins("JOIN event_rsvps ON event_rsvps.event_id = events.id").
		Where("event_rsvps.user_id = ?", account.ID).
		Scopes(query.BySelector(sel, today), query.DashboardOrder).
		Find(&events).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list RSVP'd events", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var rsvpCount int64
	err = d.DB.Model(&model.EventRSVP{}).
		Where("user_id = ?", account.ID).
		Count(&rsvpCount).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count RSVPs", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role":       policy.RoleParticipant.String(),
		"filter":     sel,
		"rsvp_count": rsvpCount,
		"events":     events,
	})
}

func collectStats(d *internal.Deps, today time.Time) (*stats, error) {
	var s stats

	if err := d.DB.Model(&model.Event{}).Count(&s.TotalEvents).Error; err != nil {
		return nil, err
	}

	if err := d.DB.Model(&model.Category{}).Count(&s.TotalCategories).Error; err != nil {
		return nil, err
	}

	err := d.DB.Model(&model.User{}).
		Joins("JOIN user_groups ON user_groups.user_id = users.id").
		Joins("JOIN groups ON groups.id = user_groups.group_id").
		Where("groups.name = ?", model.GroupParticipant).
		Count(&s.TotalParticipants).
		Error
	if err != nil {
		return nil, err
	}

	if err := d.DB.Model(&model.Event{}).Where("date >= ?", today).Count(&s.UpcomingEvents).Error; err != nil {
		return nil, err
	}

	if err := d.DB.Model(&model.Event{}).Where("date < ?", today).Count(&s.PastEvents).Error; err != nil {
		return nil, err
	}

	return &s, nil
}
