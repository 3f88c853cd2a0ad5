package reports

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/walner-prog/mitienda-backend/pkg/apperr"
	"gorm.io/gorm"
)

type Handler struct {
	db         *gorm.DB
	aggregator *Aggregator
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db, aggregator: NewAggregator(NewStore(db))}
}

// GetProfit returns revenue, cost of goods, expenses and profit for a period.
// GET /reportes/ganancias?desde=2025-01-01&hasta=2025-12-31&tipoVentas=paid
func (h *Handler) GetProfit(c *gin.Context) {
	from, to := parsePeriod(c.Query("desde"), c.Query("hasta"))

	filter := c.Query("tipoVentas")
	if filter == "" {
		filter = FilterPaid
	}

	report, err := h.aggregator.ProfitForPeriod(from, to, filter)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"ingresos":       report.Revenue,
		"costo_ventas":   report.CostOfGoods,
		"total_gastos":   report.Expenses,
		"utilidad_bruta": report.GrossProfit,
		"utilidad_neta":  report.NetProfit,
	})
}

// parsePeriod defaults to everything up to now when bounds are missing.
func parsePeriod(desde, hasta string) (time.Time, time.Time) {
	from := time.Time{}
	to := time.Now()

	if desde != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", desde, time.Local); err == nil {
			from = parsed
		}
	}
	if hasta != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", hasta, time.Local); err == nil {
			to = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 23, 59, 59, 0, time.Local)
		}
	}
	return from, to
}
