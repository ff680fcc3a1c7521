package user

import (
	"net/http"
	"time"

	"eventify/event-api/internal"
	"eventify/event-api/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const sessionDuration = time.Hour * 24 * 30

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Username == "" || data.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Username and password are required",
			"requestID": requestID,
		})
		return
	}

	var account model.User

	if err := d.DB.Where("username = ?", data.Username).First(&account).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		}

		// Same response as a wrong password so usernames can't be probed
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Invalid credentials",
			"requestID": requestID,
		})
		return
	}

	ok, err := d.Argon.VerifyPasswd(data.Password, account.PasswordHash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Invalid credentials",
			"requestID": requestID,
		})
		return
	}

	if !account.IsActive {
		c.JSON(http.StatusForbidden, gin.H{
			"error":     "This account is inactive. Please check your email for the activation link",
			"requestID": requestID,
		})
		return
	}

	setSessionCookie(c, account.ID)
	c.JSON(http.StatusOK, gin.H{
		"userID":    account.ID,
		"requestID": requestID,
	})
}

// setSessionCookie issues the signed session token. Also used after a
// successful activation so the user lands on their dashboard logged
// in.
func setSessionCookie(c *gin.Context, userID uint) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"type":    "auth",
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(sessionDuration).Unix(),
	})

	signed, err := token.SignedString([]byte(viper.GetString("jwt.secret")))
	if err != nil {
		zap.L().Error("Failed to sign session token", zap.Error(err))
		return
	}

	ssl := viper.GetBool("host.ssl.enabled")
	c.SetCookie("auth_token", signed, int(sessionDuration.Seconds()), "/", "", ssl, true)
	c.SetCookie("logged_in", "1", int(sessionDuration.Seconds()), "/", "", ssl, false)
}
