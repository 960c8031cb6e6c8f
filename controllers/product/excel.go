package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Keerthims13/ecommerce-platform/apierror"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ImportResult struct {
	Created int `json:"created_count"`
	Updated int `json:"updated_count"`
	Skipped int `json:"skipped_count"`
}

// ImportProducts reads the first sheet laid out like the export. A row with
// an ID that exists updates that product; any other valid row is inserted.
// Rows without a name, a price or a category are skipped.
func ImportProducts(db *gorm.DB, xlFile *xlsx.File) (ImportResult, error) {
	var res ImportResult

	if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
		return res, apierror.Validation("Excel file is empty or missing header row")
	}

	sheet := xlFile.Sheets[0]
	for i := 1; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]
		if row == nil || len(row.Cells) < 5 {
			res.Skipped++
			continue
		}

		get := func(index int) string {
			if index < len(row.Cells) {
				return strings.TrimSpace(row.Cells[index].String())
			}
			return ""
		}

		price, errPrice := strconv.ParseFloat(get(3), 64)
		categoryID, errCat := strconv.ParseUint(get(4), 10, 64)
		rating, _ := strconv.ParseFloat(get(6), 64)
		reviews, _ := strconv.Atoi(get(7))
		stock, _ := strconv.Atoi(get(9))

		in := ProductInput{
			Name:        get(1),
			Description: get(2),
			Price:       price,
			CategoryID:  uint(categoryID),
			Image:       get(5),
			Rating:      rating,
			Reviews:     reviews,
			Badge:       get(8),
			Stock:       stock,
		}
		if in.Name == "" || errPrice != nil || errCat != nil || in.CategoryID == 0 {
			res.Skipped++
			continue
		}

		if id, ok := parseID(get(0)); ok {
			err := UpdateProduct(db, id, in)
			if err == nil {
				res.Updated++
				continue
			}
			if !apierror.IsNotFound(err) {
				res.Skipped++
				continue
			}
		}

		if _, err := CreateProduct(db, in); err != nil {
			res.Skipped++
			continue
		}
		res.Created++
	}

	return res, nil
}

// POST /api/admin/products/import-excel (multipart field "file")
func ImportProductsFromExcel(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			apierror.Respond(c, logger, "import products", err)
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to parse Excel file"})
			return
		}

		res, err := ImportProducts(db.WithContext(c.Request.Context()), xlFile)
		if err != nil {
			apierror.Respond(c, logger, "import products", err)
			return
		}

		logger.Info("products imported",
			zap.Int("created", res.Created),
			zap.Int("updated", res.Updated),
			zap.Int("skipped", res.Skipped),
		)
		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": res.Created,
			"updated_count": res.Updated,
			"skipped_count": res.Skipped,
		})
	}
}
