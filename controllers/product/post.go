package productcontroller

import (
	"net/http"

	"github.com/Keerthims13/ecommerce-platform/apierror"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// POST /api/admin/products
func CreateProductHandler(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in ProductInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		product, err := CreateProduct(db.WithContext(c.Request.Context()), in)
		if err != nil {
			apierror.Respond(c, logger, "create product", err)
			return
		}

		logger.Info("product created", zap.Uint("product_id", product.ID), zap.String("name", product.Name))
		c.JSON(http.StatusCreated, gin.H{
			"message":   "Product created successfully",
			"productId": product.ID,
		})
	}
}
