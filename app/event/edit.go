package event

import (
	"net/http"

	"eventify/event-api/internal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Edit replaces an event's fields from a multipart form. A new image
// attachment swaps out the old one; omitting the attachment keeps it.
func Edit(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	ev := loadEvent(c, d)
	if ev == nil {
		return
	}

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

	oldImage := ev.ImageKey

	ev.Name = form.Name
	ev.Description = form.Description
	ev.Date = form.Date
	ev.StartTime = form.StartTime
	ev.Location = form.Location
	ev.CategoryID = form.CategoryID
	if imageKey != "" {
		ev.ImageKey = imageKey
	}

	if err := d.DB.Save(ev).Error; err != nil {
		dropImage(c, d, imageKey)

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update event", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if imageKey != "" && oldImage != "" {
		dropImage(c, d, oldImage)
	}

	c.JSON(http.StatusOK, ev)
}
