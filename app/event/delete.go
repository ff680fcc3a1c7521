package event

import (
	"net/http"

	"eventify/event-api/internal"
	"eventify/event-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Delete removes an event together with its RSVP rows.
func Delete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	ev := loadEvent(c, d)
	if ev == nil {
		return
	}

	if err := service.DeleteEvent(d.DB, ev.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete event", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	dropImage(c, d, ev.ImageKey)

	c.JSON(http.StatusOK, gin.H{
		"message":   "Event deleted",
		"requestID": requestID,
	})
}
