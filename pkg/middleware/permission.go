package middleware

import (
	"net/http"

	"eventify/event-api/internal/model"
	"eventify/event-api/internal/policy"

	"github.com/gin-gonic/gin"
)

// RequirePermission gates a route on the role policy. It must run
// after the auth middleware; an authenticated user lacking the role
// gets a 403.
func RequirePermission(action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		user, _ := c.MustGet("user").(*model.User)

		if !policy.Can(user, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "You don't have permission to do this",
				"requestID": requestID,
			})
			return
		}

		c.Next()
	}
}
