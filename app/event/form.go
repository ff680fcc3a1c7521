// Package event holds the event CRUD and RSVP endpoints
package event

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"eventify/event-api/internal"
	"eventify/event-api/internal/model"
	"eventify/event-api/pkg/util"
	"eventify/event-api/pkg/validators"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const keyCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var (
	errCategoryID      = errors.New("invalid category id")
	errCategoryMissing = errors.New("the selected category does not exist")
)

// eventForm is the parsed multipart create/edit payload.
type eventForm struct {
	Name        string
	Description string
	Date        time.Time
	StartTime   string
	Location    string
	CategoryID  uint
}

// parseEventForm validates the multipart form fields. The category
// must reference an existing row; events never exist without one.
func parseEventForm(c *gin.Context, db *gorm.DB) (*eventForm, error) {
	f := &eventForm{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Location:    c.PostForm("location"),
	}

	if err := validators.EventNameValidator(f.Name); err != nil {
		return nil, err
	}

	if err := validators.LocationValidator(f.Location); err != nil {
		return nil, err
	}

	date, err := validators.ParseDate(c.PostForm("date"))
	if err != nil {
		return nil, err
	}
	f.Date = util.DateOnly(date)

	f.StartTime, err = validators.ParseTimeOfDay(c.PostForm("time"))
	if err != nil {
		return nil, err
	}

	rawCategory := c.PostForm("category")
	if rawCategory == "" {
		return nil, validators.ErrCategoryRequired
	}

	categoryID, err := strconv.ParseUint(rawCategory, 10, 64)
	if err != nil {
		return nil, errCategoryID
	}
	f.CategoryID = uint(categoryID)

	var exists bool
	r := db.Model(model.Category{}).
		Select("count(*) > 0").
		Where("id = ?", f.CategoryID).
		First(&exists)
	if r.Error != nil && r.Error != gorm.ErrRecordNotFound {
		return nil, r.Error
	}
	if !exists {
		return nil, errCategoryMissing
	}

	return f, nil
}

// storeImage uploads the optional image attachment and returns its
// object key, or "" when the form carried none.
func storeImage(c *gin.Context, d *internal.Deps) (string, error) {
	header, err := c.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", err
	}

	if d.S3 == nil {
		return "", errors.New("image uploads are disabled")
	}

	contentType := header.Header.Get("Content-Type")

	ext, ok := imageExtensions[contentType]
	if !ok || !allowedType(contentType) {
		return "", errors.New("unsupported image type")
	}

	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	key, err := gonanoid.Generate(keyCharset, 16)
	if err != nil {
		return "", err
	}
	key += ext

	if err := d.S3.UploadImage(c.Request.Context(), file, key, contentType); err != nil {
		return "", err
	}

	return key, nil
}

func allowedType(contentType string) bool {
	for _, t := range viper.GetStringSlice("upload.allowed_types") {
		if t == contentType {
			return true
		}
	}
	return false
}

// dropImage deletes a stored image, best-effort.
func dropImage(c *gin.Context, d *internal.Deps, key string) {
	if key == "" || d.S3 == nil {
		return
	}

	if err := d.S3.DeleteImage(c.Request.Context(), key); err != nil {
		zap.L().Warn("Failed to delete event image", zap.String("key", key), zap.Error(err))
	}
}
