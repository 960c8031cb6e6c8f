package adminController

import (
	"net/http"

	"github.com/Keerthims13/ecommerce-platform/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DashboardStats struct {
	Users      int64 `json:"users"`
	Categories int64 `json:"categories"`
	Products   int64 `json:"products"`
	Orders     int64 `json:"orders"`
}

// GetDashboardStats counts each table on its own. A failed count is logged
// and reported as zero so one broken table does not blank the dashboard.
func GetDashboardStats(db *gorm.DB, logger *zap.Logger) DashboardStats {
	count := func(model interface{}, name string) int64 {
		var n int64
		if err := db.Model(model).Count(&n).Error; err != nil {
			logger.Warn("failed to count "+name, zap.Error(err))
			return 0
		}
		return n
	}

	return DashboardStats{
		Users:      count(&models.User{}, "users"),
		Categories: count(&models.Category{}, "categories"),
		Products:   count(&models.Product{}, "products"),
		Orders:     count(&models.Order{}, "orders"),
	}
}

// GetOrderStatusBreakdown returns a count for each of the four statuses;
// statuses with no orders are present with zero.
func GetOrderStatusBreakdown(db *gorm.DB) (map[models.OrderStatus]int64, error) {
	var rows []struct {
		Status models.OrderStatus
		Count  int64
	}
	if err := db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	breakdown := make(map[models.OrderStatus]int64, len(models.OrderStatuses))
	for _, s := range models.OrderStatuses {
		breakdown[s] = 0
	}
	for _, r := range rows {
		if _, ok := breakdown[r.Status]; ok {
			breakdown[r.Status] = r.Count
		}
	}
	return breakdown, nil
}

// GET /api/admin/dashboard/stats
func DashboardStatsHandler(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, GetDashboardStats(db.WithContext(c.Request.Context()), logger))
	}
}

// GET /api/admin/dashboard/order-status
func OrderStatusHandler(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		breakdown, err := GetOrderStatusBreakdown(db.WithContext(c.Request.Context()))
		if err != nil {
			logger.Error("❌ Failed to count orders by status", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		c.JSON(http.StatusOK, breakdown)
	}
}
