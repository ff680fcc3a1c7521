package event

import (
	"net/http"
	"strconv"
	"time"

	"eventify/event-api/internal"
	"eventify/event-api/internal/model"
	"eventify/event-api/internal/query"
	"eventify/event-api/pkg/util"
	"eventify/event-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// List is the public event listing. It composes the q/category/
// start_date+end_date/filter query params, newest dates first. The
// date range only applies when both bounds are present.
func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var categoryID uint
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid category id",
				"requestID": requestID,
			})
			return
		}
		categoryID = uint(id)
	}

	var start, end time.Time
	if rawStart, rawEnd := c.Query("start_date"), c.Query("end_date"); rawStart != "" && rawEnd != "" {
		var err error
		if start, err = validators.ParseDate(rawStart); err == nil {
			end, err = validators.ParseDate(rawEnd)
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}
	}

	scopes := []func(*gorm.DB) *gorm.DB{
		query.Search(c.Query("q")),
		query.InCategory(categoryID),
		query.BetweenDates(util.DateOnly(start), util.DateOnly(end)),
	}

	// Unlike the dashboards the listing shows everything unless a
	// time window was asked for explicitly
	if raw := c.Query("filter"); raw != "" {
		scopes = append(scopes, query.BySelector(query.ParseSelector(raw), util.Today()))
	}

	var events []model.Event

	err := d.DB.Preload("Category").
		Scopes(scopes...).
		Scopes(query.ListingOrder).
		Find(&events).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list events", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, events)
}
