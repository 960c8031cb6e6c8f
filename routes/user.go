package routes

import (
	orderControllers "github.com/Keerthims13/ecommerce-platform/controllers/order"
	"github.com/Keerthims13/ecommerce-platform/middleware"
	"github.com/gin-gonic/gin"
)

// SetupUserRoutes registers all "/api/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(api *gin.RouterGroup, d Deps) {
	userGroup := api.Group("/user")
	userGroup.Use(middleware.ValidateToken(d.JWTSecret))
	{
		userGroup.GET("/orders", orderControllers.GetMyOrdersHandler(d.DB, d.Logger))
	}
}
