package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walner-prog/mitienda-backend/pkg/apperr"
	"github.com/walner-prog/mitienda-backend/pkg/database"
)

type fakeStore struct {
	sales    []database.Sale
	expenses []database.Expense
}

func (f *fakeStore) SalesInPeriod(from, to time.Time, filter string) ([]database.Sale, error) {
	var out []database.Sale
	for _, s := range f.sales {
		if s.SaleDate.Before(from) || s.SaleDate.After(to) {
			continue
		}
		if filter == FilterPaid && s.Status != database.StatusPaid {
			continue
		}
		if filter == FilterPending && s.Status != database.StatusPending {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStore) ExpensesInPeriod(from, to time.Time) ([]database.Expense, error) {
	var out []database.Expense
	for _, e := range f.expenses {
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 12, 0, 0, 0, time.UTC)
}

func testStore() *fakeStore {
	return &fakeStore{
		sales: []database.Sale{
			{
				Total:    100.00,
				Status:   database.StatusPaid,
				SaleDate: day(5),
				Lines: []database.SaleLine{
					{Quantity: 2, UnitCost: 20.00}, // cogs 40
				},
			},
			{
				Total:    50.00,
				Status:   database.StatusPending,
				SaleDate: day(10),
				Lines: []database.SaleLine{
					{Quantity: 1, UnitCost: 30.00},
				},
			},
			{
				// Outside the queried period.
				Total:    999.00,
				Status:   database.StatusPaid,
				SaleDate: day(25),
				Lines: []database.SaleLine{
					{Quantity: 1, UnitCost: 500.00},
				},
			},
		},
		expenses: []database.Expense{
			{Amount: 15.00, Date: day(6)},
			{Amount: 5.50, Date: day(11)},
			{Amount: 80.00, Date: day(28)},
		},
	}
}

func TestProfitForPeriodPaidOnly(t *testing.T) {
	agg := NewAggregator(testStore())

	report, err := agg.ProfitForPeriod(day(1), day(15), FilterPaid)
	require.NoError(t, err)

	assert.Equal(t, 100.00, report.Revenue)
	assert.Equal(t, 40.00, report.CostOfGoods)
	assert.Equal(t, 20.50, report.Expenses) // expenses ignore the sale filter
	assert.Equal(t, 60.00, report.GrossProfit)
	assert.Equal(t, 39.50, report.NetProfit)
}

func TestProfitForPeriodAll(t *testing.T) {
	agg := NewAggregator(testStore())

	report, err := agg.ProfitForPeriod(day(1), day(15), FilterAll)
	require.NoError(t, err)

	assert.Equal(t, 150.00, report.Revenue)
	assert.Equal(t, 70.00, report.CostOfGoods)
	assert.Equal(t, 80.00, report.GrossProfit)
	assert.Equal(t, 59.50, report.NetProfit)
}

func TestProfitForPeriodPending(t *testing.T) {
	agg := NewAggregator(testStore())

	report, err := agg.ProfitForPeriod(day(1), day(15), FilterPending)
	require.NoError(t, err)

	assert.Equal(t, 50.00, report.Revenue)
	assert.Equal(t, 30.00, report.CostOfGoods)
	assert.Equal(t, 20.00, report.GrossProfit)
}

func TestProfitForPeriodEmpty(t *testing.T) {
	agg := NewAggregator(&fakeStore{})

	report, err := agg.ProfitForPeriod(day(1), day(15), FilterAll)
	require.NoError(t, err)
	assert.Zero(t, report.Revenue)
	assert.Zero(t, report.NetProfit)
}

func TestProfitForPeriodInvalidFilter(t *testing.T) {
	agg := NewAggregator(testStore())

	_, err := agg.ProfitForPeriod(day(1), day(15), "anuladas")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalidInput, apperr.From(err).Code)
}
