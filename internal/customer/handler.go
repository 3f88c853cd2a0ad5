package customer

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/walner-prog/mitienda-backend/pkg/apperr"
	"github.com/walner-prog/mitienda-backend/pkg/database"
	"github.com/walner-prog/mitienda-backend/pkg/money"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

type CustomerRequest struct {
	Name    string `json:"nombre" binding:"required"`
	Phone   string `json:"telefono"`
	Address string `json:"direccion"`
	TaxID   string `json:"nit"`
}

// List returns all customers
func (h *Handler) List(c *gin.Context) {
	var customers []database.Customer
	query := h.db.Order("name ASC")

	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ? OR phone ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Find(&customers).Error; err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "clientes": customers})
}

// Create adds a new customer
func (h *Handler) Create(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.Validation, apperr.CodeInvalidInput, "El nombre es obligatorio"))
		return
	}

	customer := database.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		TaxID:   req.TaxID,
	}
	if err := h.db.Create(&customer).Error; err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "cliente": customer})
}

// Get returns a single customer
func (h *Handler) Get(c *gin.Context) {
	var customer database.Customer
	if err := h.db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		apperr.Respond(c, apperr.New(apperr.NotFound, apperr.CodeNotFound, "Cliente no encontrado"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "cliente": customer})
}

// Update modifies a customer
func (h *Handler) Update(c *gin.Context) {
	var customer database.Customer
	if err := h.db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		apperr.Respond(c, apperr.New(apperr.NotFound, apperr.CodeNotFound, "Cliente no encontrado"))
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.Validation, apperr.CodeInvalidInput, "El nombre es obligatorio"))
		return
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.Address = req.Address
	customer.TaxID = req.TaxID
	if err := h.db.Save(&customer).Error; err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "cliente": customer})
}

// Delete soft-deletes a customer; rejected while the customer has sales
func (h *Handler) Delete(c *gin.Context) {
	var customer database.Customer
	if err := h.db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		apperr.Respond(c, apperr.New(apperr.NotFound, apperr.CodeNotFound, "Cliente no encontrado"))
		return
	}

	var saleCount int64
	if err := h.db.Model(&database.Sale{}).Where("customer_id = ?", customer.ID).Count(&saleCount).Error; err != nil {
		apperr.Respond(c, err)
		return
	}
	if saleCount > 0 {
		apperr.Respond(c, apperr.New(apperr.Conflict, apperr.CodeHasSales,
			"No se puede eliminar: el cliente tiene ventas registradas"))
		return
	}

	if err := h.db.Delete(&customer).Error; err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cliente eliminado correctamente"})
}

type CreditCustomer struct {
	CustomerID  uuid.UUID       `json:"cliente_id"`
	Name        string          `json:"nombre"`
	TotalCredit float64         `json:"total_credito"`
	Sales       []database.Sale `json:"ventas"`
}

// ListCredit groups credit sales per customer with outstanding balances.
// GET /clientes/credito?estado=pending&desde=2025-01-01&hasta=2025-01-31
func (h *Handler) ListCredit(c *gin.Context) {
	query := h.db.Model(&database.Sale{}).
		Preload("Customer").
		Preload("Lines").
		Preload("Lines.Product").
		Preload("Payments").
		Where("payment_type = ?", database.PaymentCredit)

	if estado := c.Query("estado"); estado != "" {
		query = query.Where("status = ?", estado)
	}
	if desde := c.Query("desde"); desde != "" {
		query = query.Where("sale_date >= ?", desde)
	}
	if hasta := c.Query("hasta"); hasta != "" {
		query = query.Where("sale_date <= ?", hasta+" 23:59:59")
	}

	var sales []database.Sale
	if err := query.Order("sale_date DESC").Find(&sales).Error; err != nil {
		apperr.Respond(c, err)
		return
	}

	grouped := map[uuid.UUID]*CreditCustomer{}
	order := []uuid.UUID{}
	var totalBalance float64

	for _, s := range sales {
		if s.CustomerID == nil {
			continue
		}
		entry, ok := grouped[*s.CustomerID]
		if !ok {
			name := "Sin nombre"
			if s.Customer != nil {
				name = s.Customer.Name
			}
			entry = &CreditCustomer{CustomerID: *s.CustomerID, Name: name}
			grouped[*s.CustomerID] = entry
			order = append(order, *s.CustomerID)
		}
		entry.Sales = append(entry.Sales, s)
		entry.TotalCredit = money.Round2(entry.TotalCredit + s.Balance)
		totalBalance += s.Balance
	}

	customers := make([]CreditCustomer, 0, len(order))
	for _, id := range order {
		customers = append(customers, *grouped[id])
	}

	c.JSON(http.StatusOK, gin.H{
		"success":               true,
		"clientes":              customers,
		"total_clientes":        len(customers),
		"total_saldo_pendiente": money.Round2(totalBalance),
	})
}

// ListDebtors returns only customers holding non-voided credit sales with an
// outstanding balance.
func (h *Handler) ListDebtors(c *gin.Context) {
	var customers []database.Customer
	err := h.db.
		Joins("JOIN sales ON sales.customer_id = customers.id AND sales.deleted_at IS NULL").
		Where("sales.payment_type = ? AND sales.status <> ? AND sales.balance > 0",
			database.PaymentCredit, database.StatusVoided).
		Distinct("customers.*").
		Order("customers.name ASC").
		Find(&customers).Error
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "clientes": customers})
}
