package reports

import (
	"time"

	"github.com/walner-prog/mitienda-backend/pkg/apperr"
	"github.com/walner-prog/mitienda-backend/pkg/database"
	"github.com/walner-prog/mitienda-backend/pkg/money"
	"gorm.io/gorm"
)

// Sale filters for profit reports.
const (
	FilterAll     = "all"
	FilterPaid    = "paid"
	FilterPending = "pending"
)

// Store reads the persisted records the aggregator consumes. Sales come back
// with their active lines attached.
type Store interface {
	SalesInPeriod(from, to time.Time, filter string) ([]database.Sale, error)
	ExpensesInPeriod(from, to time.Time) ([]database.Expense, error)
}

// ProfitReport sums a period's revenue, cost of goods and expenses.
type ProfitReport struct {
	Revenue     float64 `json:"ingresos"`
	CostOfGoods float64 `json:"costo_ventas"`
	Expenses    float64 `json:"total_gastos"`
	GrossProfit float64 `json:"utilidad_bruta"`
	NetProfit   float64 `json:"utilidad_neta"`
}

type Aggregator struct {
	store Store
}

func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store}
}

// ProfitForPeriod sums sale totals as revenue and captured line costs as cost
// of goods over the matching sales; expenses are summed over the same period
// regardless of the sale filter.
func (a *Aggregator) ProfitForPeriod(from, to time.Time, filter string) (*ProfitReport, error) {
	switch filter {
	case "", FilterAll, FilterPaid, FilterPending:
	default:
		return nil, apperr.New(apperr.Validation, apperr.CodeInvalidInput, "Filtro de ventas inválido")
	}

	sales, err := a.store.SalesInPeriod(from, to, filter)
	if err != nil {
		return nil, apperr.Wrap(err)
	}

	var revenue, cogs float64
	for _, s := range sales {
		revenue += s.Total
		for _, line := range s.Lines {
			cogs += line.UnitCost * float64(line.Quantity)
		}
	}

	expenses, err := a.store.ExpensesInPeriod(from, to)
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	var totalExpenses float64
	for _, e := range expenses {
		totalExpenses += e.Amount
	}

	gross := money.Round2(revenue - cogs)
	return &ProfitReport{
		Revenue:     money.Round2(revenue),
		CostOfGoods: money.Round2(cogs),
		Expenses:    money.Round2(totalExpenses),
		GrossProfit: gross,
		NetProfit:   money.Round2(gross - totalExpenses),
	}, nil
}

type gormStore struct {
	db *gorm.DB
}

// NewStore wraps a gorm handle in the aggregator's Store interface.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) SalesInPeriod(from, to time.Time, filter string) ([]database.Sale, error) {
	query := s.db.Model(&database.Sale{}).
		Preload("Lines").
		Where("sale_date BETWEEN ? AND ?", from, to)

	switch filter {
	case FilterPaid:
		query = query.Where("status = ?", database.StatusPaid)
	case FilterPending:
		query = query.Where("status = ?", database.StatusPending)
	}

	var sales []database.Sale
	err := query.Find(&sales).Error
	return sales, err
}

func (s *gormStore) ExpensesInPeriod(from, to time.Time) ([]database.Expense, error) {
	var expenses []database.Expense
	err := s.db.Where("date BETWEEN ? AND ?", from, to).Find(&expenses).Error
	return expenses, err
}
