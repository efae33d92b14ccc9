package entity

import "time"

// Transaction is one sale row. Dates are parsed at load time; rows with
// unparsable dates never reach the stats computation.
type Transaction struct {
	Date     time.Time
	Item     string
	Category string
	Price    float64
	Cost     float64
	Customer string
}

type Expense struct {
	Date   time.Time
	Amount float64
}

type ProductProfit struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
	Margin  float64 `json:"margin"`
}

type CustomerSpend struct {
	Name  string  `json:"name"`
	Spend float64 `json:"spend"`
}

type BusinessStats struct {
	TotalRevenue      float64            `json:"total_revenue"`
	TotalExpenses     float64            `json:"total_expenses"`
	NetProfit         float64            `json:"net_profit"`
	ProfitMargin      float64            `json:"profit_margin"`
	AvgOrderValue     float64            `json:"avg_order_value"`
	PeriodLabels      []string           `json:"period_labels"`
	PeriodValues      []float64          `json:"period_values"`
	RevenueByCategory map[string]float64 `json:"revenue_by_category"`
	TopProducts       []ProductProfit    `json:"top_products"`
	TopCustomers      []CustomerSpend    `json:"top_customers"`
}
