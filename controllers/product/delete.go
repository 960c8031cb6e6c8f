package productcontroller

import (
	"net/http"

	"github.com/Keerthims13/ecommerce-platform/apierror"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DELETE /api/admin/products/:id
func DeleteProductHandler(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}

		if err := DeleteProduct(db.WithContext(c.Request.Context()), id); err != nil {
			apierror.Respond(c, logger, "delete product", err)
			return
		}

		logger.Info("product deleted", zap.Uint("product_id", id))
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
