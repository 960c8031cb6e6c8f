package productcontroller

import (
	"errors"
	"strconv"

	"github.com/Keerthims13/ecommerce-platform/apierror"
	"github.com/Keerthims13/ecommerce-platform/models"
	"gorm.io/gorm"
)

// ProductInput is the JSON body for product create and update.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  uint    `json:"category_id"`
	Image       string  `json:"image"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
	Badge       string  `json:"badge"`
	Stock       int     `json:"stock"`
}

func (in ProductInput) toModel() models.Product {
	return models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		Image:       in.Image,
		Rating:      in.Rating,
		Reviews:     in.Reviews,
		Badge:       in.Badge,
		Stock:       in.Stock,
	}
}

// productColumns are written on update, zero values included.
var productColumns = []string{
	"name", "description", "price", "category_id", "image",
	"rating", "reviews", "badge", "stock",
}

func withCategoryName(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Product{}).
		Select("products.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON products.category_id = categories.id")
}

func ListProducts(db *gorm.DB) ([]models.Product, error) {
	var products []models.Product
	err := withCategoryName(db).Order("products.id").Find(&products).Error
	return products, err
}

func GetProduct(db *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	err := withCategoryName(db).Where("products.id = ?", id).Take(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NotFound("Product not found")
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func CreateProduct(db *gorm.DB, in ProductInput) (*models.Product, error) {
	if in.Name == "" || in.Price == 0 || in.CategoryID == 0 {
		return nil, apierror.Validation("Missing required fields")
	}

	product := in.toModel()
	if err := db.Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct overwrites every editable column of the product.
func UpdateProduct(db *gorm.DB, id uint, in ProductInput) error {
	result := db.Model(&models.Product{}).
		Where("id = ?", id).
		Select(productColumns).
		Updates(in.toModel())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apierror.NotFound("Product not found")
	}
	return nil
}

func DeleteProduct(db *gorm.DB, id uint) error {
	result := db.Delete(&models.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apierror.NotFound("Product not found")
	}
	return nil
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
