package productcontroller

import (
	"github.com/Keerthims13/ecommerce-platform/apierror"
	"github.com/Keerthims13/ecommerce-platform/models"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// excelHeaders is the column layout shared by export and import.
var excelHeaders = []string{
	"ID", "Name", "Description", "Price", "CategoryID",
	"Image", "Rating", "Reviews", "Badge", "Stock", "CreatedAt",
}

// BuildProductsWorkbook renders products as a single "Products" sheet.
func BuildProductsWorkbook(products []models.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	headerRow := sheet.AddRow()
	for _, h := range excelHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()

		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.Price)
		row.AddCell().SetValue(p.CategoryID)
		row.AddCell().SetValue(p.Image)
		row.AddCell().SetValue(p.Rating)
		row.AddCell().SetValue(p.Reviews)
		row.AddCell().SetValue(p.Badge)
		row.AddCell().SetValue(p.Stock)
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return file, nil
}

// GET /api/admin/products/export-excel
func ExportProductsToExcel(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := ListProducts(db.WithContext(c.Request.Context()))
		if err != nil {
			apierror.Respond(c, logger, "export products", err)
			return
		}

		file, err := BuildProductsWorkbook(products)
		if err != nil {
			apierror.Respond(c, logger, "export products", err)
			return
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			logger.Error("failed to write excel file", zap.Error(err))
		}
	}
}
