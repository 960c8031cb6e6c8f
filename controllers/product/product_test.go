package productcontroller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/Keerthims13/ecommerce-platform/apierror"
	"github.com/Keerthims13/ecommerce-platform/internal/dbtest"
	"github.com/Keerthims13/ecommerce-platform/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	r := gin.New()
	r.GET("/products", BrowseProductsHandler(db, logger))
	r.GET("/admin/products", GetProductsHandler(db, logger))
	r.POST("/admin/products", CreateProductHandler(db, logger))
	r.GET("/admin/products/:id", GetProductHandler(db, logger))
	r.PUT("/admin/products/:id", UpdateProductHandler(db, logger))
	r.DELETE("/admin/products/:id", DeleteProductHandler(db, logger))
	r.POST("/admin/categories", CreateCategoryHandler(db, logger))
	r.PUT("/admin/categories/:id", UpdateCategoryHandler(db, logger))
	r.DELETE("/admin/categories/:id", DeleteCategoryHandler(db, logger))
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	msg, _ := out["message"].(string)
	return msg
}

func TestCreateProduct_RequiredFields(t *testing.T) {
	db := dbtest.Open(t)
	cat := dbtest.SeedCategory(t, db, "Bags")

	tests := []struct {
		name string
		in   ProductInput
	}{
		{"no name", ProductInput{Price: 10, CategoryID: cat.ID}},
		{"no price", ProductInput{Name: "Tote", CategoryID: cat.ID}},
		{"no category", ProductInput{Name: "Tote", Price: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateProduct(db, tt.in)
			assert.True(t, apierror.IsValidation(err))
		})
	}

	p, err := CreateProduct(db, ProductInput{Name: "Tote", Price: 10, CategoryID: cat.ID})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
}

func TestProductHandlers_CRUD(t *testing.T) {
	db := dbtest.Open(t)
	cat := dbtest.SeedCategory(t, db, "Bags")
	r := newRouter(db)

	w := doJSON(t, r, http.MethodPost, "/admin/products", ProductInput{
		Name: "Tote", Price: 799, CategoryID: cat.ID, Stock: 5, Badge: "New",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Product created successfully", message(t, w))

	var created struct {
		ProductID uint `json:"productId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.ProductID

	w = doJSON(t, r, http.MethodGet, "/admin/products/"+itoa(id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Tote", got.Name)
	assert.Equal(t, "Bags", got.CategoryName)

	// update overwrites every column, so the badge goes away
	w = doJSON(t, r, http.MethodPut, "/admin/products/"+itoa(id), ProductInput{
		Name: "Big Tote", Price: 999, CategoryID: cat.ID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored, err := GetProduct(db, id)
	require.NoError(t, err)
	assert.Equal(t, "Big Tote", stored.Name)
	assert.Equal(t, 999.0, stored.Price)
	assert.Empty(t, stored.Badge)
	assert.Zero(t, stored.Stock)

	w = doJSON(t, r, http.MethodDelete, "/admin/products/"+itoa(id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w = doJSON(t, r, method, "/admin/products/"+itoa(id), ProductInput{Name: "x", Price: 1, CategoryID: cat.ID})
		assert.Equal(t, http.StatusNotFound, w.Code, method)
		assert.Equal(t, "Product not found", message(t, w))
	}
}

func TestCategoryHandlers(t *testing.T) {
	db := dbtest.Open(t)
	r := newRouter(db)

	w := doJSON(t, r, http.MethodPost, "/admin/categories", CategoryInput{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Category name is required", message(t, w))

	w = doJSON(t, r, http.MethodPost, "/admin/categories", CategoryInput{Name: "Shoes"})
	require.Equal(t, http.StatusCreated, w.Code)

	categories, err := ListCategories(db)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	id := categories[0].ID

	w = doJSON(t, r, http.MethodPut, "/admin/categories/"+itoa(id), CategoryInput{Name: "Footwear", Description: "All shoes"})
	require.Equal(t, http.StatusOK, w.Code)

	categories, err = ListCategories(db)
	require.NoError(t, err)
	assert.Equal(t, "Footwear", categories[0].Name)
	assert.Equal(t, "All shoes", categories[0].Description)

	w = doJSON(t, r, http.MethodDelete, "/admin/categories/"+itoa(id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/admin/categories/"+itoa(id), CategoryInput{Name: "Gone"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, r, http.MethodDelete, "/admin/categories/"+itoa(id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Category not found", message(t, w))
}

func TestBrowseProducts(t *testing.T) {
	db := dbtest.Open(t)
	shoes := dbtest.SeedCategory(t, db, "Shoes")
	bags := dbtest.SeedCategory(t, db, "Bags")
	dbtest.SeedProduct(t, db, "Runner", 500, shoes.ID)
	dbtest.SeedProduct(t, db, "Boot", 1500, shoes.ID)
	dbtest.SeedProduct(t, db, "Tote", 800, bags.ID)
	r := newRouter(db)

	type browse struct {
		Products []models.Product `json:"products"`
		MaxPrice float64          `json:"max_price"`
	}

	names := func(ps []models.Product) []string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.Name)
		}
		return out
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"default keeps insertion order", "", []string{"Runner", "Boot", "Tote"}},
		{"price low", "?sort=price-low", []string{"Runner", "Tote", "Boot"}},
		{"newest", "?sort=newest", []string{"Tote", "Boot", "Runner"}},
		{"category filter", "?category=" + itoa(shoes.ID) + "&sort=price-high", []string{"Boot", "Runner"}},
		{"price range", "?min_price=600&max_price=1000", []string{"Tote"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodGet, "/products"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var got browse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.want, names(got.Products))
			assert.Equal(t, 1500.0, got.MaxPrice)
		})
	}

	for _, q := range []string{"?sort=cheapest", "?min_price=abc", "?category=x"} {
		w := doJSON(t, r, http.MethodGet, "/products"+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestExcel_RoundTrip(t *testing.T) {
	db := dbtest.Open(t)
	cat := dbtest.SeedCategory(t, db, "Shoes")
	existing := dbtest.SeedProduct(t, db, "Runner", 500, cat.ID)

	products, err := ListProducts(db)
	require.NoError(t, err)
	file, err := BuildProductsWorkbook(products)
	require.NoError(t, err)

	sheet := file.Sheets[0]
	sheet.Rows[1].Cells[1].SetValue("Trail Runner") // rename the existing product

	added := sheet.AddRow()
	for _, v := range []interface{}{"", "Sandal", "Open toe", 300, cat.ID, "", 4.5, 12, "", 7} {
		added.AddCell().SetValue(v)
	}

	bad := sheet.AddRow()
	for _, v := range []interface{}{"", "", "no name", 100, cat.ID} {
		bad.AddCell().SetValue(v)
	}

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))
	reopened, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)

	res, err := ImportProducts(db, reopened)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Created: 1, Updated: 1, Skipped: 1}, res)

	renamed, err := GetProduct(db, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trail Runner", renamed.Name)

	var sandal models.Product
	require.NoError(t, db.Where("name = ?", "Sandal").First(&sandal).Error)
	assert.Equal(t, 300.0, sandal.Price)
	assert.Equal(t, 7, sandal.Stock)
	assert.Equal(t, 12, sandal.Reviews)
}

func TestImportProducts_EmptySheet(t *testing.T) {
	db := dbtest.Open(t)

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	require.NoError(t, err)
	sheet.AddRow().AddCell().SetValue("ID")

	_, err = ImportProducts(db, file)
	assert.True(t, apierror.IsValidation(err))
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
