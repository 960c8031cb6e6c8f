package cartControllers

import (
	"net/http"

	"github.com/Keerthims13/ecommerce-platform/apierror"
	"github.com/Keerthims13/ecommerce-platform/cart"
	orderControllers "github.com/Keerthims13/ecommerce-platform/controllers/order"
	"github.com/Keerthims13/ecommerce-platform/events"
	"github.com/Keerthims13/ecommerce-platform/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CheckoutInput struct {
	ShippingAddress *string `json:"shipping_address"`
	PaymentMethod   string  `json:"payment_method"`
}

// Checkout places an order for the cart's current lines, priced at the
// cart total. The lines are taken out of the cart before the order is
// written, so overlapping checkouts of one cart place a single order; they
// go back into the cart when the order cannot be stored.
func Checkout(db *gorm.DB, crt *cart.Cart, userID uint, in CheckoutInput) (*models.Order, error) {
	snap := crt.Take()
	if len(snap.Items) == 0 {
		return nil, apierror.Validation("Cart is empty")
	}

	req := orderControllers.CreateOrderRequest{
		UserID:          userID,
		Items:           make([]orderControllers.OrderItemInput, 0, len(snap.Items)),
		TotalAmount:     snap.Totals.Total.InexactFloat64(),
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
	}
	for _, it := range snap.Items {
		req.Items = append(req.Items, orderControllers.OrderItemInput{
			ID:       it.ProductID,
			Quantity: it.Quantity,
			Price:    it.UnitPrice.InexactFloat64(),
		})
	}

	order, err := orderControllers.CreateOrder(db, req)
	if err != nil {
		crt.Restore(snap)
		return nil, err
	}
	return order, nil
}

// POST /api/cart/:session/checkout (JWT)
func CheckoutCart(reg *cart.Registry, db *gorm.DB, pub events.Publisher, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		_, crt, ok := lookup(c, reg)
		if !ok {
			return
		}

		var input CheckoutInput
		// An empty body is fine: no address, cash on delivery.
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&input); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
				return
			}
		}

		order, err := Checkout(db.WithContext(c.Request.Context()), crt, userID, input)
		if err != nil {
			apierror.Respond(c, logger, "checkout", err)
			return
		}

		logger.Info("🛒 cart checked out",
			zap.String("session", c.Param("session")),
			zap.Uint("order_id", order.ID),
			zap.Uint("user_id", userID),
		)
		orderControllers.PublishCreated(c.Request.Context(), pub, logger, order)

		c.JSON(http.StatusCreated, gin.H{
			"message": "Order created successfully",
			"orderId": order.ID,
		})
	}
}
