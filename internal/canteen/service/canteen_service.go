package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"foodiq/internal/stats"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const reportCacheTTL = 60 * time.Second

// RecordRepository loads the raw rows the dataset is built from.
type RecordRepository interface {
	LoadRawRecords(ctx context.Context) ([]stats.RawRecord, error)
}

// CanteenService serves reports computed against one immutable dataset
// loaded at construction time. A load failure is fatal to the service,
// not to individual report calls.
type CanteenService struct {
	dataset *stats.Dataset
	rdb     *redis.Client
}

// NewCanteenService loads the dataset once and keeps it for the lifetime
// of the service.
func NewCanteenService(ctx context.Context, repo RecordRepository, rdb *redis.Client) (*CanteenService, error) {
	raws, err := repo.LoadRawRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load canteen records: %w", err)
	}

	dataset := stats.NewDataset(raws)
	logger.Info().Msgf("Canteen dataset loaded. rows=%d dropped=%d", dataset.Len(), dataset.Dropped())

	return &CanteenService{dataset: dataset, rdb: rdb}, nil
}

// DroppedRows reports how many input rows were discarded at load time.
func (s *CanteenService) DroppedRows() int {
	return s.dataset.Dropped()
}

func (s *CanteenService) fromCache(ctx context.Context, key string, dest interface{}) bool {
	if s.rdb == nil {
		return false
	}
	cached, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msgf("Error getting %s from cache", key)
		}
		return false
	}
	if err := json.Unmarshal([]byte(cached), dest); err != nil {
		logger.Error().Err(err).Msgf("Error unmarshalling cached %s", key)
		return false
	}
	return true
}

func (s *CanteenService) toCache(ctx context.Context, key string, v interface{}) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, data, reportCacheTTL).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error setting %s in cache", key)
	}
}

func (s *CanteenService) Overall(ctx context.Context) stats.Summary {
	var summary stats.Summary
	if s.fromCache(ctx, "canteen:overall", &summary) {
		return summary
	}
	summary = s.dataset.OverallSummary()
	s.toCache(ctx, "canteen:overall", summary)
	return summary
}

func (s *CanteenService) Daily(ctx context.Context) []stats.DailyStat {
	var daily []stats.DailyStat
	if s.fromCache(ctx, "canteen:daily", &daily) {
		return daily
	}
	daily = s.dataset.DailyStats()
	s.toCache(ctx, "canteen:daily", daily)
	return daily
}

func (s *CanteenService) Dishes(ctx context.Context, topN int) []stats.CategoryStat {
	key := fmt.Sprintf("canteen:dishes:%d", topN)
	var dishes []stats.CategoryStat
	if s.fromCache(ctx, key, &dishes) {
		return dishes
	}
	dishes = s.dataset.CategoryStats(topN)
	s.toCache(ctx, key, dishes)
	return dishes
}

func (s *CanteenService) Weekday(ctx context.Context) []stats.WeekdayTrend {
	var trends []stats.WeekdayTrend
	if s.fromCache(ctx, "canteen:weekday", &trends) {
		return trends
	}
	trends = s.dataset.WeekdayTrends()
	s.toCache(ctx, "canteen:weekday", trends)
	return trends
}

func (s *CanteenService) Threshold(date time.Time, thresholdQty float64) []stats.ThresholdRow {
	return s.dataset.SurplusExceedsThreshold(date, thresholdQty)
}
