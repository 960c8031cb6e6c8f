package adminController

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Keerthims13/ecommerce-platform/internal/dbtest"
	"github.com/Keerthims13/ecommerce-platform/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func seedOrders(t *testing.T, db *gorm.DB, userID uint, statuses ...models.OrderStatus) {
	t.Helper()
	for _, s := range statuses {
		order := models.Order{UserID: userID, TotalAmount: 100, Status: s, PaymentMethod: "cod"}
		require.NoError(t, db.Create(&order).Error)
	}
}

func TestGetDashboardStats(t *testing.T) {
	db := dbtest.Open(t)
	u := dbtest.SeedUser(t, db, "Ravi", "ravi@example.com")
	cat := dbtest.SeedCategory(t, db, "Shoes")
	dbtest.SeedProduct(t, db, "Runner", 500, cat.ID)
	dbtest.SeedProduct(t, db, "Boot", 1500, cat.ID)
	seedOrders(t, db, u.ID,
		models.OrderStatusPending, models.OrderStatusShipped, models.OrderStatusShipped)

	got := GetDashboardStats(db, zap.NewNop())
	assert.Equal(t, DashboardStats{Users: 1, Categories: 1, Products: 2, Orders: 3}, got)

	breakdown, err := GetOrderStatusBreakdown(db)
	require.NoError(t, err)
	assert.Equal(t, map[models.OrderStatus]int64{
		models.OrderStatusPending:   1,
		models.OrderStatusConfirmed: 0,
		models.OrderStatusShipped:   2,
		models.OrderStatusDelivered: 0,
	}, breakdown)
}

func TestGetDashboardStats_FailedCountIsZero(t *testing.T) {
	db := dbtest.Open(t)
	dbtest.SeedUser(t, db, "Ravi", "ravi@example.com")
	require.NoError(t, db.Migrator().DropTable(&models.Product{}))

	core, logs := observer.New(zap.WarnLevel)
	got := GetDashboardStats(db, zap.New(core))

	assert.Equal(t, int64(1), got.Users)
	assert.Zero(t, got.Products)
	assert.Equal(t, 1, logs.FilterMessage("failed to count products").Len())
}

func TestDashboardHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := dbtest.Open(t)

	r := gin.New()
	r.GET("/stats", DashboardStatsHandler(db, zap.NewNop()))
	r.GET("/order-status", OrderStatusHandler(db, zap.NewNop()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"users":0,"categories":0,"products":0,"orders":0}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/order-status", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var breakdown map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &breakdown))
	assert.Len(t, breakdown, 4)
}
