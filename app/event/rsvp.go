package event

import (
	"net/http"

	"eventify/event-api/internal"
	"eventify/event-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RSVP adds the authenticated caller to the event's attendee set. The
// endpoint takes no target user on purpose: nobody can RSVP someone
// else. Adding twice reports the duplicate instead of silently
// no-opping, and only a genuinely new row triggers the confirmation
// mail.
func RSVP(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	account := c.MustGet("user").(*model.User)

	// Category preloaded for the confirmation mail body
	ev := loadEvent(c, d, "Category")
	if ev == nil {
		return
	}

	added, err := d.RSVPs.Add(account, ev)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to add RSVP", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !added {
		c.JSON(http.StatusOK, gin.H{
			"message":   "You have already RSVP'd to this event",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "You have successfully RSVP'd to this event",
		"requestID": requestID,
	})
}

// CancelRSVP removes the caller's RSVP. Cancelling one that doesn't
// exist is a reported no-op.
func CancelRSVP(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	account := c.MustGet("user").(*model.User)

	ev := loadEvent(c, d)
	if ev == nil {
		return
	}

	removed, err := d.RSVPs.Remove(account, ev)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to remove RSVP", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !removed {
		c.JSON(http.StatusOK, gin.H{
			"message":   "You have not RSVP'd to this event",
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Your RSVP has been cancelled",
		"requestID": requestID,
	})
}
