package service

import (
	"context"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"foodiq/internal/business/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const (
	topProductLimit  = 20
	topCustomerLimit = 12
)

// BusinessRepository loads the rows the stats are computed from.
type BusinessRepository interface {
	LoadTransactions(ctx context.Context) ([]entity.Transaction, error)
	LoadExpenses(ctx context.Context) ([]entity.Expense, error)
}

// BusinessService computes revenue statistics over transactions and
// expenses.
type BusinessService struct {
	repo BusinessRepository
}

func NewBusinessService(repo BusinessRepository) *BusinessService {
	return &BusinessService{repo: repo}
}

// Stats loads transactions and expenses and computes the dashboard
// aggregate. A transactions load failure is an error; an expenses load
// failure degrades to an empty expense list.
func (s *BusinessService) Stats(ctx context.Context) (*entity.BusinessStats, error) {
	transactions, err := s.repo.LoadTransactions(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error loading transactions")
		return nil, err
	}

	expenses, err := s.repo.LoadExpenses(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error loading expenses, continuing without them")
		expenses = nil
	}

	return Compute(transactions, expenses), nil
}

// Compute aggregates transactions and expenses into the dashboard
// stats. All rate computations guard against zero denominators.
func Compute(transactions []entity.Transaction, expenses []entity.Expense) *entity.BusinessStats {
	stats := &entity.BusinessStats{
		PeriodLabels:      []string{},
		PeriodValues:      []float64{},
		RevenueByCategory: make(map[string]float64),
		TopProducts:       []entity.ProductProfit{},
		TopCustomers:      []entity.CustomerSpend{},
	}

	var totalCost float64
	for _, t := range transactions {
		stats.TotalRevenue += t.Price
		totalCost += t.Cost
	}
	for _, e := range expenses {
		stats.TotalExpenses += e.Amount
	}

	stats.NetProfit = stats.TotalRevenue - totalCost - stats.TotalExpenses
	if stats.TotalRevenue != 0 {
		stats.ProfitMargin = stats.NetProfit / stats.TotalRevenue * 100
	}
	if len(transactions) > 0 {
		stats.AvgOrderValue = stats.TotalRevenue / float64(len(transactions))
	}

	// Revenue over time, bucketed per month.
	monthly := make(map[string]float64)
	for _, t := range transactions {
		monthly[t.Date.Format("2006-01")] += t.Price
	}
	for label := range monthly {
		stats.PeriodLabels = append(stats.PeriodLabels, label)
	}
	sort.Strings(stats.PeriodLabels)
	for _, label := range stats.PeriodLabels {
		stats.PeriodValues = append(stats.PeriodValues, monthly[label])
	}

	for _, t := range transactions {
		stats.RevenueByCategory[t.Category] += t.Price
	}

	// Top products by profit.
	type revCost struct{ rev, cost float64 }
	productMap := make(map[string]*revCost)
	productOrder := make([]string, 0)
	for _, t := range transactions {
		rc, ok := productMap[t.Item]
		if !ok {
			rc = &revCost{}
			productMap[t.Item] = rc
			productOrder = append(productOrder, t.Item)
		}
		rc.rev += t.Price
		rc.cost += t.Cost
	}
	for _, name := range productOrder {
		rc := productMap[name]
		product := entity.ProductProfit{
			Name:    name,
			Revenue: rc.rev,
			Profit:  rc.rev - rc.cost,
		}
		if rc.rev != 0 {
			product.Margin = product.Profit / rc.rev * 100
		}
		stats.TopProducts = append(stats.TopProducts, product)
	}
	sort.SliceStable(stats.TopProducts, func(i, j int) bool {
		return stats.TopProducts[i].Profit > stats.TopProducts[j].Profit
	})
	if len(stats.TopProducts) > topProductLimit {
		stats.TopProducts = stats.TopProducts[:topProductLimit]
	}

	// Top customers by spend.
	customerMap := make(map[string]float64)
	customerOrder := make([]string, 0)
	for _, t := range transactions {
		if _, ok := customerMap[t.Customer]; !ok {
			customerOrder = append(customerOrder, t.Customer)
		}
		customerMap[t.Customer] += t.Price
	}
	for _, name := range customerOrder {
		stats.TopCustomers = append(stats.TopCustomers, entity.CustomerSpend{Name: name, Spend: customerMap[name]})
	}
	sort.SliceStable(stats.TopCustomers, func(i, j int) bool {
		return stats.TopCustomers[i].Spend > stats.TopCustomers[j].Spend
	})
	if len(stats.TopCustomers) > topCustomerLimit {
		stats.TopCustomers = stats.TopCustomers[:topCustomerLimit]
	}

	return stats
}
