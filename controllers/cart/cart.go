package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Keerthims13/ecommerce-platform/cart"
	"github.com/Keerthims13/ecommerce-platform/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CartItemInput struct {
	ProductID       uint     `json:"product_id" binding:"required"`
	Quantity        int      `json:"quantity"`
	DiscountPercent *float64 `json:"discount_percent"` // nil means the 10% default
}

type QuantityInput struct {
	Quantity int `json:"quantity"`
}

type PromoInput struct {
	Code string `json:"code"`
}

// lookup resolves the :session param or writes a 404.
func lookup(c *gin.Context, reg *cart.Registry) (string, *cart.Cart, bool) {
	id := c.Param("session")
	crt, ok := reg.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Cart not found"})
		return "", nil, false
	}
	return id, crt, true
}

// POST /api/cart
func CreateCart(reg *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, crt := reg.Create()
		c.JSON(http.StatusCreated, toResponse(id, crt.Snapshot()))
	}
}

// GET /api/cart/:session
func GetCart(reg *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, crt, ok := lookup(c, reg)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, toResponse(id, crt.Snapshot()))
	}
}

// DELETE /api/cart/:session
func DeleteCart(reg *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, _, ok := lookup(c, reg); !ok {
			return
		}
		reg.Delete(c.Param("session"))
		c.JSON(http.StatusOK, gin.H{"message": "Cart deleted"})
	}
}

// POST /api/cart/:session/items
//
// Name and unit price are taken from the product row, not the request.
func AddCartItem(reg *cart.Registry, db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, crt, ok := lookup(c, reg)
		if !ok {
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		if d := input.DiscountPercent; d != nil && (*d < 0 || *d > 100) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Discount percent must be between 0 and 100"})
			return
		}

		var product models.Product
		if err := db.WithContext(c.Request.Context()).First(&product, input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Product does not exist"})
				return
			}
			logger.Error("❌ Failed to validate product", zap.Uint("product_id", input.ProductID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		discount := cart.DefaultDiscountPercent
		if input.DiscountPercent != nil {
			discount = decimal.NewFromFloat(*input.DiscountPercent)
		}

		crt.Add(cart.Item{
			ProductID:       product.ID,
			Name:            product.Name,
			UnitPrice:       decimal.NewFromFloat(product.Price),
			DiscountPercent: discount,
		}, input.Quantity)

		c.JSON(http.StatusOK, toResponse(id, crt.Snapshot()))
	}
}

// PUT /api/cart/:session/items/:productId
func UpdateCartItemQuantity(reg *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, crt, ok := lookup(c, reg)
		if !ok {
			return
		}

		productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
			return
		}

		var input QuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		if !crt.SetQuantity(uint(productID), input.Quantity) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Item not in cart"})
			return
		}
		c.JSON(http.StatusOK, toResponse(id, crt.Snapshot()))
	}
}

// DELETE /api/cart/:session/items/:productId
func RemoveCartItem(reg *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, crt, ok := lookup(c, reg)
		if !ok {
			return
		}

		productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
			return
		}

		if !crt.Remove(uint(productID)) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Item not in cart"})
			return
		}
		c.JSON(http.StatusOK, toResponse(id, crt.Snapshot()))
	}
}

// POST /api/cart/:session/promo
func ApplyPromo(reg *cart.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, crt, ok := lookup(c, reg)
		if !ok {
			return
		}

		var input PromoInput
		if err := c.ShouldBindJSON(&input); err != nil || !crt.ApplyPromo(input.Code) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Promo code is required"})
			return
		}
		c.JSON(http.StatusOK, toResponse(id, crt.Snapshot()))
	}
}
