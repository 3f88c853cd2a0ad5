package expense

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
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

type CreateExpenseRequest struct {
	Description string  `json:"descripcion" binding:"required"`
	Amount      float64 `json:"monto" binding:"required,gt=0"`
	Category    string  `json:"categoria"`
}

// Create registers an operating expense stamped with the acting user
func (h *Handler) Create(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.Validation, apperr.CodeInvalidInput, "Descripción y monto son requeridos"))
		return
	}

	var userID *uuid.UUID
	if id, err := uuid.Parse(c.GetString("user_id")); err == nil {
		userID = &id
	}

	expense := database.Expense{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		UserID:      userID,
		Date:        time.Now(),
	}
	if err := h.db.Create(&expense).Error; err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "gasto": expense})
}

// List returns expenses, newest first
func (h *Handler) List(c *gin.Context) {
	var expenses []database.Expense
	if err := h.db.Order("date DESC").Find(&expenses).Error; err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "gastos": expenses})
}
