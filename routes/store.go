package routes

import (
	cartControllers "github.com/Keerthims13/ecommerce-platform/controllers/cart"
	productcontroller "github.com/Keerthims13/ecommerce-platform/controllers/product"
	"github.com/Keerthims13/ecommerce-platform/middleware"
	"github.com/gin-gonic/gin"
)

func SetupStoreRoutes(api *gin.RouterGroup, d Deps) {
	api.GET("/products", productcontroller.BrowseProductsHandler(d.DB, d.Logger))
	api.GET("/categories", productcontroller.GetAllCategoriesHandler(d.DB, d.Logger))

	cartGroup := api.Group("/cart")
	{
		cartGroup.POST("", cartControllers.CreateCart(d.Carts))
		cartGroup.GET("/:session", cartControllers.GetCart(d.Carts))
		cartGroup.DELETE("/:session", cartControllers.DeleteCart(d.Carts))
		cartGroup.GET("/:session/ws", cartControllers.StreamCart(d.Carts, d.Logger))

		cartGroup.POST("/:session/items", cartControllers.AddCartItem(d.Carts, d.DB, d.Logger))
		cartGroup.PUT("/:session/items/:productId", cartControllers.UpdateCartItemQuantity(d.Carts))
		cartGroup.DELETE("/:session/items/:productId", cartControllers.RemoveCartItem(d.Carts))
		cartGroup.POST("/:session/promo", cartControllers.ApplyPromo(d.Carts))

		// placing the order needs a signed-in user
		cartGroup.POST("/:session/checkout",
			middleware.ValidateToken(d.JWTSecret),
			cartControllers.CheckoutCart(d.Carts, d.DB, d.Publisher, d.Logger),
		)
	}
}
