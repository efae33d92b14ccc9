package stats

import (
	"math"
	"sort"
	"time"
)

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

type Summary struct {
	TotalPrepared             int     `json:"total_prepared"`
	TotalConsumed             int     `json:"total_consumed"`
	TotalSurplus              int     `json:"total_surplus"`
	AvgSurplusPerDay          float64 `json:"avg_surplus_per_day"`
	AvgConsumptionRatePercent float64 `json:"avg_consumption_rate_percent"`
	DaysReported              int     `json:"days_reported"`
}

type DailyStat struct {
	Date     string  `json:"date"`
	Prepared float64 `json:"quantity_prepared"`
	Consumed float64 `json:"quantity_consumed"`
	Surplus  float64 `json:"surplus"`
}

type CategoryStat struct {
	Category         string  `json:"dish_name"`
	Prepared         float64 `json:"quantity_prepared"`
	Consumed         float64 `json:"quantity_consumed"`
	Surplus          float64 `json:"surplus"`
	WasteRatePercent float64 `json:"waste_rate_percent"`
}

type WeekdayTrend struct {
	Weekday          string  `json:"day_of_week"`
	DaysCount        int     `json:"days_count"`
	TotalPrepared    float64 `json:"total_prepared"`
	TotalConsumed    float64 `json:"total_consumed"`
	TotalSurplus     float64 `json:"total_surplus"`
	AvgSurplusPerDay float64 `json:"avg_surplus_per_day"`
}

type ThresholdRow struct {
	Category string  `json:"dish_name"`
	Prepared float64 `json:"quantity_prepared"`
	Consumed float64 `json:"quantity_consumed"`
	Surplus  float64 `json:"surplus"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// OverallSummary totals every record. Totals are truncated to whole
// units for display; rates are guarded against empty datasets.
func (d *Dataset) OverallSummary() Summary {
	var totalPrepared, totalConsumed, totalSurplus float64
	days := make(map[time.Time]struct{})

	for _, r := range d.records {
		totalPrepared += r.Prepared
		totalConsumed += r.Consumed
		totalSurplus += r.Surplus
		days[r.Date] = struct{}{}
	}

	avgSurplus := 0.0
	if len(d.records) > 0 {
		avgSurplus = totalSurplus / float64(len(d.records))
	}

	avgConsumptionRate := 0.0
	if totalPrepared > 0 {
		avgConsumptionRate = totalConsumed / totalPrepared * 100
	}

	return Summary{
		TotalPrepared:             int(totalPrepared),
		TotalConsumed:             int(totalConsumed),
		TotalSurplus:              int(totalSurplus),
		AvgSurplusPerDay:          round2(avgSurplus),
		AvgConsumptionRatePercent: round2(avgConsumptionRate),
		DaysReported:              len(days),
	}
}

// DailyStats sums records per date across categories, ascending by date.
func (d *Dataset) DailyStats() []DailyStat {
	byDate := make(map[time.Time]*DailyStat)
	dates := make([]time.Time, 0)

	for _, r := range d.records {
		stat, ok := byDate[r.Date]
		if !ok {
			stat = &DailyStat{Date: r.Date.Format("2006-01-02")}
			byDate[r.Date] = stat
			dates = append(dates, r.Date)
		}
		stat.Prepared += r.Prepared
		stat.Consumed += r.Consumed
		stat.Surplus += r.Surplus
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := make([]DailyStat, 0, len(dates))
	for _, date := range dates {
		out = append(out, *byDate[date])
	}
	return out
}

// CategoryStats sums records per category with a derived waste rate,
// descending by waste rate. A non-positive topN returns every category.
func (d *Dataset) CategoryStats(topN int) []CategoryStat {
	byCategory := make(map[string]*CategoryStat)
	order := make([]string, 0)

	for _, r := range d.records {
		stat, ok := byCategory[r.Category]
		if !ok {
			stat = &CategoryStat{Category: r.Category}
			byCategory[r.Category] = stat
			order = append(order, r.Category)
		}
		stat.Prepared += r.Prepared
		stat.Consumed += r.Consumed
		stat.Surplus += r.Surplus
	}

	out := make([]CategoryStat, 0, len(order))
	for _, category := range order {
		stat := byCategory[category]
		if stat.Prepared > 0 {
			stat.WasteRatePercent = round2(stat.Surplus / stat.Prepared * 100)
		}
		out = append(out, *stat)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WasteRatePercent > out[j].WasteRatePercent
	})

	if topN > 0 && topN < len(out) {
		out = out[:topN]
	}
	return out
}

// MostWasted returns the category with the highest waste rate, or nil
// when the dataset is empty.
func (d *Dataset) MostWasted() *CategoryStat {
	top := d.CategoryStats(1)
	if len(top) == 0 {
		return nil
	}
	return &top[0]
}

// WeekdayTrends always returns exactly 7 rows, Monday through Sunday,
// zero-filled for weekdays with no observed dates.
func (d *Dataset) WeekdayTrends() []WeekdayTrend {
	type bucket struct {
		prepared, consumed, surplus float64
		days                        map[time.Time]struct{}
	}

	buckets := make(map[time.Weekday]*bucket, 7)
	for _, wd := range weekdayOrder {
		buckets[wd] = &bucket{days: make(map[time.Time]struct{})}
	}

	for _, r := range d.records {
		b := buckets[r.Weekday]
		b.prepared += r.Prepared
		b.consumed += r.Consumed
		b.surplus += r.Surplus
		b.days[r.Date] = struct{}{}
	}

	out := make([]WeekdayTrend, 0, 7)
	for _, wd := range weekdayOrder {
		b := buckets[wd]
		trend := WeekdayTrend{
			Weekday:       wd.String(),
			DaysCount:     len(b.days),
			TotalPrepared: b.prepared,
			TotalConsumed: b.consumed,
			TotalSurplus:  b.surplus,
		}
		if trend.DaysCount > 0 {
			trend.AvgSurplusPerDay = round2(b.surplus / float64(trend.DaysCount))
		}
		out = append(out, trend)
	}
	return out
}

// SurplusExceedsThreshold returns the records for the given calendar
// date whose surplus is at least thresholdQty, descending by surplus.
func (d *Dataset) SurplusExceedsThreshold(date time.Time, thresholdQty float64) []ThresholdRow {
	out := make([]ThresholdRow, 0)
	for _, r := range d.records {
		if !r.Date.Equal(date) || r.Surplus < thresholdQty {
			continue
		}
		out = append(out, ThresholdRow{
			Category: r.Category,
			Prepared: r.Prepared,
			Consumed: r.Consumed,
			Surplus:  r.Surplus,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Surplus > out[j].Surplus })
	return out
}
