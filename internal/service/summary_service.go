package service

import (
	"context"
	"habit_tracker_backend/internal/model"
	"habit_tracker_backend/internal/repository"
	"habit_tracker_backend/internal/util"
	"habit_tracker_backend/pkg/logger"
	"habit_tracker_backend/pkg/monitoring"
	"habit_tracker_backend/pkg/tracing"
	"sort"
	"time"

	"go.uber.org/zap"
)

// SummaryItem 热力图的一格
type SummaryItem struct {
	Date      time.Time `json:"date"`
	Completed int       `json:"completed"`
	Possible  int       `json:"possible"`
}

// weekdayIndex 按星期分组的习惯创建日，组内升序
type weekdayIndex [7][]time.Time

func buildWeekdayIndex(habits []model.Habit) weekdayIndex {
	var idx weekdayIndex
	for _, h := range habits {
		for _, wd := range h.WeekDayValues() {
			if wd < util.MinWeekDay || wd > util.MaxWeekDay {
				continue
			}
			idx[wd] = append(idx[wd], h.CreatedAt)
		}
	}
	for wd := range idx {
		created := idx[wd]
		sort.Slice(created, func(i, j int) bool { return created[i].Before(created[j]) })
	}
	return idx
}

// possible 统计 weekDay 组内 created_at <= day 的习惯数。
// 这是 model.Habit.PossibleOn 的批量版本，判定变化时需同步修改。
func (idx weekdayIndex) possible(day time.Time, weekDay int) int {
	if weekDay < util.MinWeekDay || weekDay > util.MaxWeekDay {
		return 0
	}
	created := idx[weekDay]
	return sort.Search(len(created), func(i int) bool { return created[i].After(day) })
}

type SummaryService struct {
	Store    *repository.Store
	Calendar *util.Calendar
	Cache    SummaryCache
	TTL      time.Duration
}

func NewSummaryService(store *repository.Store, calendar *util.Calendar, cache SummaryCache, ttl time.Duration) *SummaryService {
	return &SummaryService{Store: store, Calendar: calendar, Cache: cache, TTL: ttl}
}

// Summarize 对每个已存在的 Day 计算 (completed, possible)，按日期升序
func (s *SummaryService) Summarize(ctx context.Context) (items []SummaryItem, err error) {
	ctx, span := tracing.StartSpan(ctx, "SummaryService.Summarize")
	defer func() { tracing.EndSpan(span, err) }()

	if s.Cache != nil {
		cached, ok, cacheErr := s.Cache.Get(ctx)
		switch {
		case cacheErr != nil:
			monitoring.SummaryCacheLookups.WithLabelValues("error").Inc()
			logger.Log.Warn("Summary cache read failed", zap.Error(cacheErr))
		case ok:
			monitoring.SummaryCacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			monitoring.SummaryCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	items, err = s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if cacheErr := s.Cache.Set(ctx, items, s.TTL); cacheErr != nil {
			logger.Log.Warn("Summary cache write failed", zap.Error(cacheErr))
		}
	}
	return items, nil
}

func (s *SummaryService) compute(ctx context.Context) ([]SummaryItem, error) {
	habits, err := s.Store.Habits.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := buildWeekdayIndex(habits)

	days, err := s.Store.Days.ListWithCounts(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]SummaryItem, 0, len(days))
	for _, dc := range days {
		date := s.Calendar.Normalize(dc.Day.Date)
		items = append(items, SummaryItem{
			Date:      date,
			Completed: dc.Completed,
			Possible:  idx.possible(date, s.Calendar.WeekdayOf(date)),
		})
	}
	return items, nil
}
