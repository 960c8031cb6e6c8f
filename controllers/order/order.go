package orderControllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Keerthims13/ecommerce-platform/apierror"
	"github.com/Keerthims13/ecommerce-platform/events"
	"github.com/Keerthims13/ecommerce-platform/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type OrderItemInput struct {
	ID       uint    `json:"id"` // product id
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type CreateOrderRequest struct {
	UserID          uint             `json:"user_id"`
	Items           []OrderItemInput `json:"items"`
	TotalAmount     float64          `json:"total_amount"`
	ShippingAddress *string          `json:"shipping_address"`
	PaymentMethod   string           `json:"payment_method"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// -------- Core Logic --------

// CreateOrder stores the order header and one row per line item in a single
// transaction. TotalAmount is stored as given; it is not recomputed from the
// items.
func CreateOrder(db *gorm.DB, req CreateOrderRequest) (*models.Order, error) {
	if req.UserID == 0 || len(req.Items) == 0 || req.TotalAmount == 0 {
		return nil, apierror.Validation("Missing required fields")
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.DefaultPaymentMethod
	}

	order := models.Order{
		UserID:          req.UserID,
		TotalAmount:     req.TotalAmount,
		Status:          models.OrderStatusPending,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   paymentMethod,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(req.Items))
		for _, in := range req.Items {
			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: in.ID,
				Quantity:  in.Quantity,
				Price:     in.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			items = append(items, item)
		}
		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// UpdateOrderStatus overwrites the status of an order. Any of the four
// statuses may follow any other.
func UpdateOrderStatus(db *gorm.DB, orderID uint, status string) (models.OrderStatus, error) {
	newStatus, ok := models.ParseOrderStatus(status)
	if !ok {
		return "", apierror.Validation("Invalid status")
	}

	result := db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", newStatus)
	if result.Error != nil {
		return "", result.Error
	}
	if result.RowsAffected == 0 {
		return "", apierror.NotFound("Order not found")
	}
	return newStatus, nil
}

func GetAllOrders(db *gorm.DB) ([]models.Order, error) {
	var orders []models.Order
	err := db.Model(&models.Order{}).
		Select("orders.*, users.name AS user_name, users.email AS email").
		Joins("LEFT JOIN users ON orders.user_id = users.id").
		Order("orders.created_at DESC").
		Find(&orders).Error
	return orders, err
}

func GetOrderDetails(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Order not found")
		}
		return nil, err
	}

	if err := db.Model(&models.OrderItem{}).
		Select("order_items.*, products.name AS product_name").
		Joins("LEFT JOIN products ON order_items.product_id = products.id").
		Where("order_items.order_id = ?", orderID).
		Find(&order.Items).Error; err != nil {
		return nil, err
	}

	return &order, nil
}

func GetUserOrders(db *gorm.DB, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// -------- Helpers --------

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func publish(ctx context.Context, pub events.Publisher, logger *zap.Logger, e events.Event) {
	e.At = time.Now().UTC()
	if err := pub.Publish(ctx, e); err != nil {
		logger.Warn("failed to publish order event",
			zap.String("type", string(e.Type)),
			zap.Uint("order_id", e.OrderID),
			zap.Error(err),
		)
	}
}

// PublishCreated announces a newly placed order.
func PublishCreated(ctx context.Context, pub events.Publisher, logger *zap.Logger, order *models.Order) {
	publish(ctx, pub, logger, events.Event{
		Type:        events.OrderCreated,
		OrderID:     order.ID,
		UserID:      order.UserID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
	})
}

// -------- Handlers --------

// POST /api/admin/orders
func CreateOrderHandler(db *gorm.DB, pub events.Publisher, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		order, err := CreateOrder(db.WithContext(c.Request.Context()), req)
		if err != nil {
			apierror.Respond(c, logger, "create order", err)
			return
		}

		logger.Info("order created",
			zap.Uint("order_id", order.ID),
			zap.Uint("user_id", order.UserID),
			zap.Int("items", len(order.Items)),
		)
		PublishCreated(c.Request.Context(), pub, logger, order)

		c.JSON(http.StatusCreated, gin.H{
			"message": "Order created successfully",
			"orderId": order.ID,
		})
	}
}

// GET /api/admin/orders
func GetAllOrdersHandler(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := GetAllOrders(db.WithContext(c.Request.Context()))
		if err != nil {
			apierror.Respond(c, logger, "get orders", err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/admin/orders/:id
func GetOrderDetailsHandler(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseID(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}

		order, err := GetOrderDetails(db.WithContext(c.Request.Context()), orderID)
		if err != nil {
			apierror.Respond(c, logger, "get order details", err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /api/admin/user/:userId/orders
func GetUserOrdersHandler(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseID(c.Param("userId"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
			return
		}

		orders, err := GetUserOrders(db.WithContext(c.Request.Context()), userID)
		if err != nil {
			apierror.Respond(c, logger, "get user orders", err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/user/orders. The user id comes from the verified token.
func GetMyOrdersHandler(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		orders, err := GetUserOrders(db.WithContext(c.Request.Context()), userID)
		if err != nil {
			apierror.Respond(c, logger, "get my orders", err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /api/admin/orders/:id/status
func UpdateOrderStatusHandler(db *gorm.DB, pub events.Publisher, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
			return
		}
		if _, ok := models.ParseOrderStatus(req.Status); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
			return
		}

		orderID, ok := parseID(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}

		status, err := UpdateOrderStatus(db.WithContext(c.Request.Context()), orderID, req.Status)
		if err != nil {
			apierror.Respond(c, logger, "update order status", err)
			return
		}

		publish(c.Request.Context(), pub, logger, events.Event{
			Type:    events.OrderStatusUpdated,
			OrderID: orderID,
			Status:  status,
		})

		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}
