package stats

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Accepted date layouts, tried in order. ISO first, then day-first and
// slash-separated variants.
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"01/02/2006",
	"2006/01/02",
	"02/01/2006",
}

// ParseDate tries each accepted layout in order and reports whether any
// of them matched.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// RawRecord is one loosely-shaped input row, before parsing. Quantity
// fields are textual so the loader does not have to care about the
// source column types.
type RawRecord struct {
	Date     string
	Category string
	Prepared string
	Consumed string
}

// Record is a parsed, normalized aggregation row. Derived fields are
// computed once at ingestion and never change afterward.
type Record struct {
	Date     time.Time
	Category string
	Prepared float64
	Consumed float64
	Surplus  float64
	Weekday  time.Weekday
	Year     int
	Month    string // "2006-01" bucket
}

// Dataset is an immutable merged snapshot of records. Reports may be
// computed against it concurrently.
type Dataset struct {
	records []Record
	dropped int
}

func coerceFloat(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return f
}

// NewDataset parses and normalizes raw rows, drops rows whose date no
// accepted layout can parse, and merges rows sharing (date, category).
// Surplus is recomputed from the merged sums.
func NewDataset(raws []RawRecord) *Dataset {
	type key struct {
		date     time.Time
		category string
	}

	merged := make(map[key]*Record)
	order := make([]key, 0, len(raws))
	dropped := 0

	for _, raw := range raws {
		date, ok := ParseDate(raw.Date)
		if !ok {
			dropped++
			continue
		}

		category := strings.ToLower(strings.TrimSpace(raw.Category))
		k := key{date: date, category: category}

		rec, exists := merged[k]
		if !exists {
			rec = &Record{
				Date:     date,
				Category: category,
				Weekday:  date.Weekday(),
				Year:     date.Year(),
				Month:    date.Format("2006-01"),
			}
			merged[k] = rec
			order = append(order, k)
		}

		rec.Prepared += coerceFloat(raw.Prepared)
		rec.Consumed += coerceFloat(raw.Consumed)
		rec.Surplus = rec.Prepared - rec.Consumed
	}

	records := make([]Record, 0, len(order))
	for _, k := range order {
		records = append(records, *merged[k])
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].Category < records[j].Category
	})

	return &Dataset{records: records, dropped: dropped}
}

// Len returns the number of merged records.
func (d *Dataset) Len() int { return len(d.records) }

// Dropped returns how many input rows were discarded for unparsable
// dates.
func (d *Dataset) Dropped() int { return d.dropped }

// Records returns a copy of the merged records.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}
