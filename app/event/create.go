package event

import (
	"net/http"

	"eventify/event-api/internal"
	"eventify/event-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Create adds a new event from a multipart form. Role gating happens
// in the router; by the time this runs the caller is an Admin or
// Organizer.
func Create(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	form, err := parseEventForm(c, d.DB)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	imageKey, err := storeImage(c, d)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})

		zap.L().Debug("Image upload rejected", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	ev := model.Event{
		Name:        form.Name,
		Description: form.Description,
		Date:        form.Date,
		StartTime:   form.StartTime,
		Location:    form.Location,
		CategoryID:  form.CategoryID,
		ImageKey:    imageKey,
	}

	if err := d.DB.Create(&ev).Error; err != nil {
		// The object is already durable, don't leak it
		dropImage(c, d, imageKey)

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create event", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, ev)
}
