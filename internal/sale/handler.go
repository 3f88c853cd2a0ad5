package sale

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/walner-prog/mitienda-backend/pkg/apperr"
	"github.com/walner-prog/mitienda-backend/pkg/database"
	"gorm.io/gorm"
)

type Handler struct {
	db     *gorm.DB
	engine *Engine
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db, engine: NewEngine(NewStore(db))}
}

type LineRequest struct {
	ProductID uuid.UUID `json:"producto_id" binding:"required"`
	Quantity  int       `json:"cantidad" binding:"required,min=1"`
	UnitPrice *float64  `json:"precio_unitario"`
}

type CreateSaleRequest struct {
	CustomerID     *uuid.UUID    `json:"cliente_id"`
	PaymentType    string        `json:"tipo_pago"`
	Items          []LineRequest `json:"items"`
	Tax            float64       `json:"impuesto"`
	InitialPayment float64       `json:"abono_inicial"`
	TermDays       int           `json:"plazo_dias"`
	Installments   int           `json:"numero_abonos"`
}

// Create processes a new cash or credit sale
func (h *Handler) Create(c *gin.Context) {
	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.Validation, apperr.CodeInvalidInput, err.Error()))
		return
	}

	items := make([]LineInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, LineInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	sale, err := h.engine.CreateSale(CreateSaleInput{
		CustomerID:     req.CustomerID,
		UserID:         currentUserID(c),
		PaymentType:    req.PaymentType,
		Items:          items,
		Tax:            req.Tax,
		InitialPayment: req.InitialPayment,
		TermDays:       req.TermDays,
		Installments:   req.Installments,
	})
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"venta":          sale,
		"utilidad_total": sale.Profit,
	})
}

type PaymentRequest struct {
	Amount float64 `json:"monto" binding:"required"`
}

// RegisterPayment appends an installment against a credit sale
func (h *Handler) RegisterPayment(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.Respond(c, apperr.New(apperr.Validation, apperr.CodeInvalidInput, "ID de venta inválido"))
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.Validation, apperr.CodeInvalidAmount, "Monto inválido"))
		return
	}

	payment, sale, err := h.engine.RegisterPayment(saleID, req.Amount, currentUserID(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"abono":   payment,
		"venta":   sale,
	})
}

// Void reverses a sale: stock restored, lines and payments soft-deleted
func (h *Handler) Void(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.Respond(c, apperr.New(apperr.Validation, apperr.CodeInvalidInput, "ID de venta inválido"))
		return
	}

	sale, err := h.engine.VoidSale(saleID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Venta anulada correctamente",
		"venta":   sale,
	})
}

// List returns sales filtered by cliente_id, estado, tipo_pago and a date
// window (defaults to today), plus running totals per status.
func (h *Handler) List(c *gin.Context) {
	query := h.db.Model(&database.Sale{}).
		Preload("Lines").
		Preload("Lines.Product").
		Preload("Payments").
		Preload("Customer")

	if clienteID := c.Query("cliente_id"); clienteID != "" {
		query = query.Where("customer_id = ?", clienteID)
	}
	if estado := c.Query("estado"); estado != "" {
		query = query.Where("status = ?", estado)
	}
	if tipoPago := c.Query("tipo_pago"); tipoPago != "" {
		query = query.Where("payment_type = ?", tipoPago)
	}

	from, to := dateRange(c.Query("desde"), c.Query("hasta"))
	query = query.Where("sale_date BETWEEN ? AND ?", from, to)

	var sales []database.Sale
	if err := query.Order("sale_date DESC").Find(&sales).Error; err != nil {
		apperr.Respond(c, err)
		return
	}

	totalsByStatus := map[string]float64{}
	for _, s := range sales {
		totalsByStatus[s.Status] += s.Total
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"ventas":         sales,
		"totales_estado": totalsByStatus,
	})
}

// dateRange parses desde/hasta; desde defaults to today at midnight and
// hasta extends to the end of its day. Both bounds are anchored to the
// server's local zone so defaults and explicit dates never straddle zones.
func dateRange(desde, hasta string) (time.Time, time.Time) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	to := now

	if desde != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", desde, time.Local); err == nil {
			from = parsed
		}
	}
	if hasta != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", hasta, time.Local); err == nil {
			to = parsed
		}
	}
	to = time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, time.Local)
	return from, to
}

func currentUserID(c *gin.Context) *uuid.UUID {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		return nil
	}
	return &id
}
