// Package category holds the category CRUD endpoints. Writes are
// gated to Admin/Organizer in the router; reads are public.
package category

import (
	"net/http"
	"strconv"

	"eventify/event-api/internal"
	"eventify/event-api/internal/model"
	"eventify/event-api/internal/service"
	"eventify/event-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type categoryBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func load(c *gin.Context, d *internal.Deps, preload ...string) *model.Category {
	requestID := c.MustGet("requestID").(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid category id",
			"requestID": requestID,
		})
		return nil
	}

	tx := d.DB
	for _, p := range preload {
		tx = tx.Preload(p)
	}

	var cat model.Category
	if err := tx.Where("id = ?", uint(id)).First(&cat).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Category not found",
				"requestID": requestID,
			})
			return nil
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load category", zap.Error(err), zap.String("requestID", requestID))
		return nil
	}

	return &cat
}

func List(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var categories []model.Category
	if err := d.DB.Order("name ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list categories", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, categories)
}

func Fetch(c *gin.Context, d *internal.Deps) {
	cat := load(c, d, "Events")
	if cat == nil {
		return
	}

	c.JSON(http.StatusOK, cat)
}

func Create(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data categoryBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.CategoryNameValidator(data.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	cat := model.Category{
		Name:        data.Name,
		Description: data.Description,
	}

	if err := d.DB.Create(&cat).Error; err != nil {
		// The unique index on name makes duplicate creates fail here
		c.JSON(http.StatusConflict, gin.H{
			"error":     "A category with this name already exists",
			"requestID": requestID,
		})

		zap.L().Debug("Failed to create category", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, cat)
}

func Edit(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	cat := load(c, d)
	if cat == nil {
		return
	}

	var data categoryBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.CategoryNameValidator(data.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	cat.Name = data.Name
	cat.Description = data.Description

	if err := d.DB.Save(cat).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "A category with this name already exists",
			"requestID": requestID,
		})

		zap.L().Debug("Failed to update category", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, cat)
}

// Delete removes the category and cascades to every event in it.
func Delete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	cat := load(c, d)
	if cat == nil {
		return
	}

	eventsDeleted, err := service.DeleteCategory(d.DB, cat.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete category", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Category deleted",
		"events_deleted": eventsDeleted,
		"requestID":      requestID,
	})
}
