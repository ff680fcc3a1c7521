package user

import (
	"net/http"

	"eventify/event-api/internal/model"
	"eventify/event-api/internal/policy"

	"github.com/gin-gonic/gin"
)

// Me returns the authenticated user together with their resolved role,
// which the frontend uses to pick a dashboard.
func Me(c *gin.Context) {
	account := c.MustGet("user").(*model.User)

	c.JSON(http.StatusOK, gin.H{
		"user": account,
		"role": policy.Resolve(account).String(),
	})
}
