package service

import (
	"context"
	"fmt"
	"habit_tracker_backend/internal/model"
	"habit_tracker_backend/internal/repository"
	"habit_tracker_backend/internal/util"
	"habit_tracker_backend/pkg/logger"
	"habit_tracker_backend/pkg/monitoring"
	"habit_tracker_backend/pkg/tracing"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// HabitService 习惯的创建与查询
type HabitService struct {
	Store    *repository.Store
	Calendar *util.Calendar
	Cache    SummaryCache
}

func NewHabitService(store *repository.Store, calendar *util.Calendar, cache SummaryCache) *HabitService {
	return &HabitService{Store: store, Calendar: calendar, Cache: cache}
}

func validateHabitInput(title string, weekDays []int) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", util.NewValidationError("title", "must not be empty")
	}
	if utf8.RuneCountInString(title) > util.MaxHabitTitleLength {
		return "", util.NewValidationError("title", fmt.Sprintf("must be at most %d characters", util.MaxHabitTitleLength))
	}
	for _, wd := range weekDays {
		if wd < util.MinWeekDay || wd > util.MaxWeekDay {
			return "", util.NewValidationError("weekDays", fmt.Sprintf("weekday %d out of range [0,6]", wd))
		}
	}
	return title, nil
}

// CreateHabit created_at 取服务器当前时间所在的规范日
func (s *HabitService) CreateHabit(ctx context.Context, title string, weekDays []int) (habit *model.Habit, err error) {
	ctx, span := tracing.StartSpan(ctx, "HabitService.CreateHabit")
	defer func() { tracing.EndSpan(span, err) }()

	title, err = validateHabitInput(title, weekDays)
	if err != nil {
		return nil, err
	}

	habit, err = s.Store.Habits.Create(ctx, title, weekDays, s.Calendar.Today())
	if err != nil {
		return nil, err
	}

	monitoring.HabitsCreated.Inc()
	invalidateSummary(ctx, s.Cache)
	logger.Log.Info("Habit created",
		zap.String("habit_id", habit.ID),
		zap.Ints("week_days", habit.WeekDayValues()),
	)
	return habit, nil
}

func (s *HabitService) ListHabits(ctx context.Context) ([]model.Habit, error) {
	habits, err := s.Store.Habits.List(ctx)
	if err != nil {
		return nil, err
	}
	if habits == nil {
		habits = []model.Habit{}
	}
	return habits, nil
}
