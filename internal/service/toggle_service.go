package service

import (
	"context"
	"habit_tracker_backend/internal/model"
	"habit_tracker_backend/internal/repository"
	"habit_tracker_backend/internal/util"
	"habit_tracker_backend/pkg/logger"
	"habit_tracker_backend/pkg/monitoring"
	"habit_tracker_backend/pkg/tracing"
	"time"

	"go.uber.org/zap"
)

type ToggleResult struct {
	Completed bool `json:"completed"`
}

// ToggleService 切换某习惯在某规范日的完成状态
type ToggleService struct {
	Store    *repository.Store
	Calendar *util.Calendar
	Cache    SummaryCache
}

func NewToggleService(store *repository.Store, calendar *util.Calendar, cache SummaryCache) *ToggleService {
	return &ToggleService{Store: store, Calendar: calendar, Cache: cache}
}

// completionStore 切换所需的完成记录操作，事务内由 DayHabitRepository 提供
type completionStore interface {
	DeleteByPair(ctx context.Context, dayID, habitID string) (int64, error)
	Insert(ctx context.Context, dayID, habitID string) (*model.DayHabit, error)
}

// togglePair 按 (day, habit) 删除，未删除任何行时插入，返回切换后是否完成。
// 删除为 0 行说明记录不存在或已被并发切换删除，两种情况都应插入。
func togglePair(ctx context.Context, pairs completionStore, dayID, habitID string) (bool, error) {
	removed, err := pairs.DeleteByPair(ctx, dayID, habitID)
	if err != nil {
		return false, err
	}
	if removed > 0 {
		return false, nil
	}

	if _, err := pairs.Insert(ctx, dayID, habitID); err != nil {
		if !util.IsConflict(err) {
			return false, err
		}
		// 并发的切换先完成了插入，本次排在其后，结果为未完成
		logger.Log.Debug("Concurrent toggle detected",
			zap.String("day_id", dayID),
			zap.String("habit_id", habitID),
		)
		_, err := pairs.DeleteByPair(ctx, dayID, habitID)
		return false, err
	}
	return true, nil
}

// Toggle 存在完成记录则删除，否则插入。
// 习惯不存在时返回 NotFoundError，且不会创建 Day。
func (s *ToggleService) Toggle(ctx context.Context, date time.Time, habitID string) (result *ToggleResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "ToggleService.Toggle")
	defer func() { tracing.EndSpan(span, err) }()

	canonical := s.Calendar.Normalize(date)

	if _, err = s.Store.Habits.FindByID(ctx, habitID); err != nil {
		return nil, err
	}

	day, err := s.Store.Days.FindOrCreate(ctx, canonical)
	if err != nil {
		return nil, err
	}

	var completed bool
	err = s.Store.Transaction(ctx, func(tx *repository.Store) error {
		var txErr error
		completed, txErr = togglePair(ctx, tx.DayHabits, day.ID, habitID)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	monitoring.HabitToggles.WithLabelValues(monitoring.ToggleResultLabel(completed)).Inc()
	invalidateSummary(ctx, s.Cache)
	logger.Log.Info("Habit toggled",
		zap.String("habit_id", habitID),
		zap.String("date", canonical.Format(util.DateFormat)),
		zap.Bool("completed", completed),
	)

	return &ToggleResult{Completed: completed}, nil
}
