// Package user holds the account endpoints: signup, login, logout,
// activation and the current-user profile
package user

import (
	"net/http"

	"eventify/event-api/internal"
	"eventify/event-api/internal/model"
	"eventify/event-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type signupBody struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Signup registers a new account. The account starts inactive; the
// user-created hook assigns the Participant group and mails the
// activation link before the response goes out.
func Signup(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data signupBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	for _, err := range []error{
		validators.UsernameValidator(data.Username),
		validators.PersonNameValidator(data.FirstName, data.LastName),
		validators.EmailValidator(data.Email),
		validators.PasswordValidator(data.Password),
	} {
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}
	}

	var found bool

	r := d.DB.Model(model.User{}).
		Select("count(*) > 0").
		Where("username = ? OR email = ?", data.Username, data.Email).
		First(&found)
	if r.Error != nil && r.Error != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if user is registered", zap.Error(r.Error), zap.String("requestID", requestID))
		return
	}

	if found {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "This username or email is already registered. Please login or use different details",
			"requestID": requestID,
		})
		return
	}

	hash, err := d.Argon.GenerateFromPassword(data.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	newUser := model.User{
		Username:     data.Username,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Email:        data.Email,
		PasswordHash: hash,
		IsActive:     false,
	}

	if err := d.DB.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Post-commit side effects: Participant group + activation mail
	d.Bus.UserCreated(&newUser)

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Account created successfully! Please check your email to activate your account.",
		"userID":    newUser.ID,
		"requestID": requestID,
	})
}
