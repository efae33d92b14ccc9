package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodiq/internal/business/entity"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleTransactions() []entity.Transaction {
	return []entity.Transaction{
		{Date: day("2024-01-15"), Item: "Pizza", Category: "Food", Price: 500, Cost: 200, Customer: "John"},
		{Date: day("2024-01-16"), Item: "Pizza", Category: "Food", Price: 500, Cost: 200, Customer: "Jane"},
		{Date: day("2024-02-01"), Item: "Coffee", Category: "Drinks", Price: 100, Cost: 40, Customer: "John"},
	}
}

func TestComputeTotals(t *testing.T) {
	stats := Compute(sampleTransactions(), []entity.Expense{
		{Date: day("2024-01-15"), Amount: 300},
	})

	assert.Equal(t, 1100.0, stats.TotalRevenue)
	assert.Equal(t, 300.0, stats.TotalExpenses)
	// 1100 - 440 - 300
	assert.Equal(t, 360.0, stats.NetProfit)
	assert.InDelta(t, 360.0/1100.0*100, stats.ProfitMargin, 0.001)
	assert.InDelta(t, 1100.0/3, stats.AvgOrderValue, 0.001)
}

func TestComputeMonthlySeries(t *testing.T) {
	stats := Compute(sampleTransactions(), nil)

	require.Equal(t, []string{"2024-01", "2024-02"}, stats.PeriodLabels)
	assert.Equal(t, []float64{1000, 100}, stats.PeriodValues)
}

func TestComputeRevenueByCategory(t *testing.T) {
	stats := Compute(sampleTransactions(), nil)

	assert.Equal(t, 1000.0, stats.RevenueByCategory["Food"])
	assert.Equal(t, 100.0, stats.RevenueByCategory["Drinks"])
}

func TestComputeTopProducts(t *testing.T) {
	stats := Compute(sampleTransactions(), nil)

	require.Len(t, stats.TopProducts, 2)
	assert.Equal(t, "Pizza", stats.TopProducts[0].Name)
	assert.Equal(t, 600.0, stats.TopProducts[0].Profit)
	assert.InDelta(t, 60.0, stats.TopProducts[0].Margin, 0.001)
	assert.Equal(t, "Coffee", stats.TopProducts[1].Name)
}

func TestComputeTopCustomers(t *testing.T) {
	stats := Compute(sampleTransactions(), nil)

	require.Len(t, stats.TopCustomers, 2)
	assert.Equal(t, "John", stats.TopCustomers[0].Name)
	assert.Equal(t, 600.0, stats.TopCustomers[0].Spend)
}

func TestComputeEmptyGuards(t *testing.T) {
	stats := Compute(nil, nil)

	assert.Equal(t, 0.0, stats.TotalRevenue)
	assert.Equal(t, 0.0, stats.ProfitMargin)
	assert.Equal(t, 0.0, stats.AvgOrderValue)
	assert.Empty(t, stats.PeriodLabels)
	assert.Empty(t, stats.TopProducts)
	assert.Empty(t, stats.TopCustomers)
}

type stubRepo struct {
	transactions    []entity.Transaction
	expenses        []entity.Expense
	transactionsErr error
	expensesErr     error
}

func (r *stubRepo) LoadTransactions(ctx context.Context) ([]entity.Transaction, error) {
	return r.transactions, r.transactionsErr
}

func (r *stubRepo) LoadExpenses(ctx context.Context) ([]entity.Expense, error) {
	return r.expenses, r.expensesErr
}

func TestStatsExpensesFailureDegrades(t *testing.T) {
	svc := NewBusinessService(&stubRepo{
		transactions: sampleTransactions(),
		expensesErr:  assert.AnError,
	})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.TotalExpenses)
	assert.Equal(t, 1100.0, stats.TotalRevenue)
}

func TestStatsTransactionsFailureIsFatal(t *testing.T) {
	svc := NewBusinessService(&stubRepo{transactionsErr: assert.AnError})

	_, err := svc.Stats(context.Background())
	assert.Error(t, err)
}
