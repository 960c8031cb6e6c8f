package routes

import (
	"github.com/Keerthims13/ecommerce-platform/cart"
	"github.com/Keerthims13/ecommerce-platform/events"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps is everything the route groups hand to controllers.
type Deps struct {
	DB        *gorm.DB
	Logger    *zap.Logger
	Carts     *cart.Registry
	Hub       *events.Hub
	Publisher events.Publisher
	APIKey    string
	JWTSecret string
}

// SetupRoutes is the single entry-point that wires up the storefront, user
// and admin route groups under /api.
func SetupRoutes(r *gin.Engine, d Deps) {
	api := r.Group("/api")

	// 1️⃣ Public storefront (catalog + cart sessions)
	SetupStoreRoutes(api, d)

	// 2️⃣ User routes (JWT-protected)
	SetupUserRoutes(api, d)

	// 3️⃣ Admin routes (API-Key-protected)
	SetupAdminRoutes(api, d)
}
