package routes

import (
	adminController "github.com/Keerthims13/ecommerce-platform/controllers/admin"
	orderControllers "github.com/Keerthims13/ecommerce-platform/controllers/order"
	productcontroller "github.com/Keerthims13/ecommerce-platform/controllers/product"
	userControllers "github.com/Keerthims13/ecommerce-platform/controllers/user"
	"github.com/Keerthims13/ecommerce-platform/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers all "/api/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(api *gin.RouterGroup, d Deps) {
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(d.APIKey))
	{
		// ─────────── Dashboard ───────────
		adminGroup.GET("/dashboard/stats", adminController.DashboardStatsHandler(d.DB, d.Logger))
		adminGroup.GET("/dashboard/order-status", adminController.OrderStatusHandler(d.DB, d.Logger))

		// ─────────── User Management ───────────
		userAdmin := adminGroup.Group("/users")
		{
			userAdmin.GET("", userControllers.GetAllUsersHandler(d.DB, d.Logger))
			userAdmin.DELETE("/:id", userControllers.DeleteUserHandler(d.DB, d.Logger))
			userAdmin.PUT("/:id/role", userControllers.UpdateUserRoleHandler(d.DB, d.Logger))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.GET("", productcontroller.GetAllCategoriesHandler(d.DB, d.Logger))
			categoryAdmin.POST("", productcontroller.CreateCategoryHandler(d.DB, d.Logger))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategoryHandler(d.DB, d.Logger))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategoryHandler(d.DB, d.Logger))
		}

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.GET("", productcontroller.GetProductsHandler(d.DB, d.Logger))
			productAdmin.POST("", productcontroller.CreateProductHandler(d.DB, d.Logger))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(d.DB, d.Logger))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(d.DB, d.Logger))
			productAdmin.GET("/:id", productcontroller.GetProductHandler(d.DB, d.Logger))
			productAdmin.PUT("/:id", productcontroller.UpdateProductHandler(d.DB, d.Logger))
			productAdmin.DELETE("/:id", productcontroller.DeleteProductHandler(d.DB, d.Logger))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.POST("", orderControllers.CreateOrderHandler(d.DB, d.Publisher, d.Logger))
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(d.DB, d.Logger))
			orderAdmin.GET("/:id", orderControllers.GetOrderDetailsHandler(d.DB, d.Logger))
			orderAdmin.PUT("/:id/status", orderControllers.UpdateOrderStatusHandler(d.DB, d.Publisher, d.Logger))
		}
		adminGroup.GET("/user/:userId/orders", orderControllers.GetUserOrdersHandler(d.DB, d.Logger))

		// websocket endpoint for real-time order updates
		adminGroup.GET("/ws/orders", d.Hub.ServeWS)
	}
}
