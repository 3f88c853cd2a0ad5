package product

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/walner-prog/mitienda-backend/pkg/apperr"
	"github.com/walner-prog/mitienda-backend/pkg/database"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

type CreateProductRequest struct {
	Barcode       string  `json:"codigo_barras" binding:"required"`
	Name          string  `json:"nombre" binding:"required"`
	Brand         string  `json:"marca"`
	PurchasePrice float64 `json:"precio_compra"`
	SalePrice     float64 `json:"precio_venta"`
	Stock         int     `json:"stock"`
}

type UpdateProductRequest struct {
	Name          *string  `json:"nombre"`
	Brand         *string  `json:"marca"`
	PurchasePrice *float64 `json:"precio_compra"`
	SalePrice     *float64 `json:"precio_venta"`
	Stock         *int     `json:"stock"`
}

// List returns all products, optionally filtered by barcode or name
func (h *Handler) List(c *gin.Context) {
	query := h.db.Order("created_at ASC")

	if barcode := c.Query("codigo_barras"); barcode != "" {
		query = query.Where("barcode = ?", barcode)
	}
	if name := c.Query("nombre"); name != "" {
		query = query.Where("name ILIKE ?", "%"+name+"%")
	}

	var products []database.Product
	if err := query.Find(&products).Error; err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "productos": products})
}

// Create adds a new product; barcode must be unique
func (h *Handler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.Validation, apperr.CodeInvalidInput, "Código y nombre son requeridos"))
		return
	}

	var count int64
	if err := h.db.Model(&database.Product{}).Where("barcode = ?", req.Barcode).Count(&count).Error; err != nil {
		apperr.Respond(c, err)
		return
	}
	if count > 0 {
		apperr.Respond(c, apperr.New(apperr.Conflict, apperr.CodeDuplicate, "Producto con ese código ya existe"))
		return
	}

	product := database.Product{
		Barcode:       req.Barcode,
		Name:          req.Name,
		Brand:         req.Brand,
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
		Stock:         req.Stock,
	}
	if err := h.db.Create(&product).Error; err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "producto": product})
}

// Get returns a single product
func (h *Handler) Get(c *gin.Context) {
	var product database.Product
	if err := h.db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		apperr.Respond(c, apperr.New(apperr.NotFound, apperr.CodeProductNotFound, "Producto no encontrado"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "producto": product})
}

// Update modifies price, stock or naming of a product
func (h *Handler) Update(c *gin.Context) {
	var product database.Product
	if err := h.db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		apperr.Respond(c, apperr.New(apperr.NotFound, apperr.CodeProductNotFound, "Producto no encontrado"))
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.Validation, apperr.CodeInvalidInput, err.Error()))
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.PurchasePrice != nil {
		product.PurchasePrice = *req.PurchasePrice
	}
	if req.SalePrice != nil {
		product.SalePrice = *req.SalePrice
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			apperr.Respond(c, apperr.New(apperr.Validation, apperr.CodeInvalidInput, "El stock no puede ser negativo"))
			return
		}
		product.Stock = *req.Stock
	}

	if err := h.db.Save(&product).Error; err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "producto": product})
}
