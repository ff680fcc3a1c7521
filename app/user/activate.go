package user

import (
	"net/http"
	"strconv"

	"eventify/event-api/internal"
	"eventify/event-api/internal/model"
	"eventify/event-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Every failure mode answers with this same message so the endpoint
// leaks nothing about whether the account exists or was already
// activated.
const invalidLinkMsg = "Activation link is invalid or has expired."

// Activate flips a pending account to active when the signed token
// checks out against the account's current state, then logs the user
// in. Activation is one-way: the flip changes the state fingerprint,
// so the link stops verifying the moment it has been used.
func Activate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     invalidLinkMsg,
			"requestID": requestID,
		})
		return
	}

	var account model.User

	if err := d.DB.Where("id = ?", uint(userID)).First(&account).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		}

		c.JSON(http.StatusBadRequest, gin.H{
			"error":     invalidLinkMsg,
			"requestID": requestID,
		})
		return
	}

	ok := d.Tokens.Verify(security.AccountState{
		UserID:       account.ID,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		IsActive:     account.IsActive,
	}, c.Param("token"))

	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     invalidLinkMsg,
			"requestID": requestID,
		})
		return
	}

	if err := d.DB.Model(&account).Update("is_active", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to activate user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	setSessionCookie(c, account.ID)
	c.JSON(http.StatusOK, gin.H{
		"message":   "Your account has been activated successfully! Welcome to Eventify!",
		"redirect":  "/dashboard",
		"requestID": requestID,
	})
}
