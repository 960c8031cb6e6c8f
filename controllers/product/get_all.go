package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Keerthims13/ecommerce-platform/apierror"
	"github.com/Keerthims13/ecommerce-platform/catalog"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GET /api/admin/products
func GetProductsHandler(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := ListProducts(db.WithContext(c.Request.Context()))
		if err != nil {
			apierror.Respond(c, logger, "get products", err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /api/products?category=1,2&min_price=100&max_price=900&sort=price-low
//
// The storefront browser. Filtering and sorting run over the full product
// list, same as the product page did client side.
func BrowseProductsHandler(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := parseCatalogQuery(c)
		if err != nil {
			apierror.Respond(c, logger, "browse products", err)
			return
		}

		products, err := ListProducts(db.WithContext(c.Request.Context()))
		if err != nil {
			apierror.Respond(c, logger, "browse products", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products":  catalog.Apply(products, q),
			"max_price": catalog.MaxPrice(products),
		})
	}
}

func parseCatalogQuery(c *gin.Context) (catalog.Query, error) {
	var q catalog.Query

	sortKey, ok := catalog.ParseSort(c.Query("sort"))
	if !ok {
		return q, apierror.Validation("Invalid sort")
	}
	q.Sort = sortKey

	if raw := c.Query("category"); raw != "" {
		for _, tok := range strings.Split(raw, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			id, ok := parseID(tok)
			if !ok {
				return q, apierror.Validation("Invalid category")
			}
			q.CategoryIDs = append(q.CategoryIDs, id)
		}
	}

	if raw := c.Query("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return q, apierror.Validation("Invalid min_price")
		}
		q.MinPrice = &v
	}
	if raw := c.Query("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return q, apierror.Validation("Invalid max_price")
		}
		q.MaxPrice = &v
	}

	return q, nil
}
