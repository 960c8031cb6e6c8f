package productcontroller

import (
	"net/http"

	"github.com/Keerthims13/ecommerce-platform/apierror"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GET /api/admin/products/:id
func GetProductHandler(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}

		product, err := GetProduct(db.WithContext(c.Request.Context()), id)
		if err != nil {
			apierror.Respond(c, logger, "get product", err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
