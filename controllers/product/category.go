package productcontroller

import (
	"net/http"

	"github.com/Keerthims13/ecommerce-platform/apierror"
	"github.com/Keerthims13/ecommerce-platform/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func ListCategories(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	err := db.Order("id").Find(&categories).Error
	return categories, err
}

func CreateCategory(db *gorm.DB, in CategoryInput) (*models.Category, error) {
	if in.Name == "" {
		return nil, apierror.Validation("Category name is required")
	}

	category := models.Category{Name: in.Name, Description: in.Description}
	if err := db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func UpdateCategory(db *gorm.DB, id uint, in CategoryInput) error {
	result := db.Model(&models.Category{}).
		Where("id = ?", id).
		Select("name", "description").
		Updates(models.Category{Name: in.Name, Description: in.Description})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apierror.NotFound("Category not found")
	}
	return nil
}

func DeleteCategory(db *gorm.DB, id uint) error {
	result := db.Delete(&models.Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apierror.NotFound("Category not found")
	}
	return nil
}

// GET /api/categories and /api/admin/categories
func GetAllCategoriesHandler(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := ListCategories(db.WithContext(c.Request.Context()))
		if err != nil {
			apierror.Respond(c, logger, "get categories", err)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// POST /api/admin/categories
func CreateCategoryHandler(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in CategoryInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		category, err := CreateCategory(db.WithContext(c.Request.Context()), in)
		if err != nil {
			apierror.Respond(c, logger, "create category", err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":    "Category created successfully",
			"categoryId": category.ID,
		})
	}
}

// PUT /api/admin/categories/:id
func UpdateCategoryHandler(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}

		var in CategoryInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		if err := UpdateCategory(db.WithContext(c.Request.Context()), id, in); err != nil {
			apierror.Respond(c, logger, "update category", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully"})
	}
}

// DELETE /api/admin/categories/:id
func DeleteCategoryHandler(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}

		if err := DeleteCategory(db.WithContext(c.Request.Context()), id); err != nil {
			apierror.Respond(c, logger, "delete category", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}
