package userControllers

import (
	"net/http"
	"strconv"

	"github.com/Keerthims13/ecommerce-platform/apierror"
	"github.com/Keerthims13/ecommerce-platform/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UpdateRoleInput struct {
	Role string `json:"role"`
}

func GetAllUsers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	err := db.
		Select("id", "name", "email", "role", "created_at").
		Order("id").
		Find(&users).Error
	return users, err
}

func DeleteUser(db *gorm.DB, id uint) error {
	result := db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apierror.NotFound("User not found")
	}
	return nil
}

// UpdateUserRole accepts only "user" or "admin".
func UpdateUserRole(db *gorm.DB, id uint, role string) error {
	r, ok := models.ParseRole(role)
	if !ok {
		return apierror.Validation("Invalid role")
	}

	result := db.Model(&models.User{}).Where("id = ?", id).Update("role", r)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apierror.NotFound("User not found")
	}
	return nil
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// GET /api/admin/users
func GetAllUsersHandler(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := GetAllUsers(db.WithContext(c.Request.Context()))
		if err != nil {
			apierror.Respond(c, logger, "get users", err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// DELETE /api/admin/users/:id
func DeleteUserHandler(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		if err := DeleteUser(db.WithContext(c.Request.Context()), id); err != nil {
			apierror.Respond(c, logger, "delete user", err)
			return
		}

		logger.Info("user deleted", zap.Uint("user_id", id))
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}

// PUT /api/admin/users/:id/role
func UpdateUserRoleHandler(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateRoleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid role"})
			return
		}

		id, ok := parseID(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		if err := UpdateUserRole(db.WithContext(c.Request.Context()), id, input.Role); err != nil {
			apierror.Respond(c, logger, "update user role", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User role updated successfully"})
	}
}
