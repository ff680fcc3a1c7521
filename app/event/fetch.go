package event

import (
	"net/http"
	"strconv"

	"eventify/event-api/internal"
	"eventify/event-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// loadEvent resolves the :id path param. It writes the error response
// itself and returns nil when the caller should bail.
func loadEvent(c *gin.Context, d *internal.Deps, preload ...string) *model.Event {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid event id",
			"requestID": requestID,
		})
		return nil
	}

	tx := d.DB
	for _, p := range preload {
		tx = tx.Preload(p)
	}

	var ev model.Event
	if err := tx.Where("id = ?", uint(id)).First(&ev).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Event not found",
				"requestID": requestID,
			})
			return nil
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load event", zap.Error(err), zap.String("requestID", requestID))
		return nil
	}

	return &ev
}

// Fetch is the public event detail, category and RSVP count included.
func Fetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	ev := loadEvent(c, d, "Category")
	if ev == nil {
		return
	}

	count, err := d.RSVPs.Count(ev.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count RSVPs", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event":      ev,
		"rsvp_count": count,
	})
}
