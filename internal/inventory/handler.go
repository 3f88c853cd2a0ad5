package inventory

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/walner-prog/mitienda-backend/pkg/apperr"
	"github.com/walner-prog/mitienda-backend/pkg/database"
	"github.com/walner-prog/mitienda-backend/pkg/money"
	"gorm.io/gorm"
)

const lowStockThreshold = 10

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

type StockItem struct {
	ProductID  uuid.UUID `json:"producto_id"`
	Name       string    `json:"nombre"`
	Barcode    string    `json:"codigo_barras"`
	Stock      int       `json:"stock"`
	StockValue float64   `json:"valor_stock"`
	Status     string    `json:"status"` // ok, low, out
}

// List returns stock levels for every product
func (h *Handler) List(c *gin.Context) {
	filter := c.Query("filter") // all, low, out

	var products []database.Product
	if err := h.db.Order("name ASC").Find(&products).Error; err != nil {
		apperr.Respond(c, err)
		return
	}

	items := []StockItem{}
	for _, p := range products {
		status := "ok"
		if p.Stock <= 0 {
			status = "out"
		} else if p.Stock < lowStockThreshold {
			status = "low"
		}
		if filter == "low" && status != "low" {
			continue
		}
		if filter == "out" && status != "out" {
			continue
		}

		items = append(items, StockItem{
			ProductID:  p.ID,
			Name:       p.Name,
			Barcode:    p.Barcode,
			Stock:      p.Stock,
			StockValue: money.Round2(float64(p.Stock) * p.PurchasePrice),
			Status:     status,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "inventario": items})
}

// Alerts returns low and out-of-stock products
func (h *Handler) Alerts(c *gin.Context) {
	var low []database.Product
	if err := h.db.Where("stock > 0 AND stock < ?", lowStockThreshold).
		Order("stock ASC").
		Limit(20).
		Find(&low).Error; err != nil {
		apperr.Respond(c, err)
		return
	}

	var out []database.Product
	if err := h.db.Where("stock <= 0").
		Order("name ASC").
		Limit(20).
		Find(&out).Error; err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"stock_bajo": low,
		"agotados":   out,
	})
}

type AdjustStockRequest struct {
	Quantity int `json:"cantidad" binding:"required"` // can be negative
}

// AdjustStock applies a manual stock correction through the ledger so the
// non-negative invariant holds.
func (h *Handler) AdjustStock(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.Respond(c, apperr.New(apperr.Validation, apperr.CodeInvalidInput, "ID de producto inválido"))
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.Validation, apperr.CodeInvalidInput, err.Error()))
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		return Adjust(StoreFor(tx), productID, req.Quantity)
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	var product database.Product
	if err := h.db.First(&product, "id = ?", productID).Error; err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "producto": product})
}
