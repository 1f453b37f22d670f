package service

import (
	"context"
	"habit_tracker_backend/internal/model"
	"habit_tracker_backend/internal/repository"
	"habit_tracker_backend/internal/util"
	"habit_tracker_backend/pkg/tracing"
	"time"
)

// DayView 某个规范日的可做习惯与已完成习惯
type DayView struct {
	PossibleHabits    []model.Habit `json:"possibleHabits"`
	CompletedHabitIDs []string      `json:"completedHabitIds"`
}

type DayService struct {
	Store    *repository.Store
	Calendar *util.Calendar
}

func NewDayService(store *repository.Store, calendar *util.Calendar) *DayService {
	return &DayService{Store: store, Calendar: calendar}
}

// GetDayView 没有 Day 记录时已完成集合为空
func (s *DayService) GetDayView(ctx context.Context, date time.Time) (view *DayView, err error) {
	ctx, span := tracing.StartSpan(ctx, "DayService.GetDayView")
	defer func() { tracing.EndSpan(span, err) }()

	day := s.Calendar.Normalize(date)

	possible, err := s.Store.Habits.ListActiveOn(ctx, day, s.Calendar.WeekdayOf(day))
	if err != nil {
		return nil, err
	}
	if possible == nil {
		possible = []model.Habit{}
	}

	view = &DayView{PossibleHabits: possible, CompletedHabitIDs: []string{}}

	record, err := s.Store.Days.FindByDate(ctx, day)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return view, nil
	}

	completed, err := s.Store.DayHabits.ListHabitIDsByDay(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	if completed != nil {
		view.CompletedHabitIDs = completed
	}
	return view, nil
}
