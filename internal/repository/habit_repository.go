package repository

import (
	"context"
	"errors"
	"habit_tracker_backend/internal/model"
	"habit_tracker_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type HabitRepository struct {
	DB *gorm.DB
}

func NewHabitRepository(db *gorm.DB) *HabitRepository {
	return &HabitRepository{DB: db}
}

func preloadWeekDays(db *gorm.DB) *gorm.DB {
	return db.Order("week_day ASC")
}

// Create 在同一事务中写入习惯及其重复星期
func (r *HabitRepository) Create(ctx context.Context, title string, weekDays []int, createdAt time.Time) (*model.Habit, error) {
	habit := &model.Habit{
		Title:     title,
		CreatedAt: createdAt.UTC(),
		WeekDays:  model.NewHabitWeekDays(weekDays),
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(habit).Error
	})
	if err != nil {
		return nil, err
	}
	return habit, nil
}

// FindByID 不存在时返回 NotFoundError
func (r *HabitRepository) FindByID(ctx context.Context, id string) (*model.Habit, error) {
	var habit model.Habit
	err := r.DB.WithContext(ctx).
		Preload("WeekDays", preloadWeekDays).
		Where("id = ?", id).
		First(&habit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &util.NotFoundError{Resource: "habit", ID: id, Err: util.ErrHabitNotFound}
	}
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

// List 按创建日、id 排序，结果稳定
func (r *HabitRepository) List(ctx context.Context) ([]model.Habit, error) {
	var habits []model.Habit
	err := r.DB.WithContext(ctx).
		Preload("WeekDays", preloadWeekDays).
		Order("created_at ASC, id ASC").
		Find(&habits).Error
	return habits, err
}

// ListActiveOn 返回在规范日 day 适用的习惯：created_at <= day 且 weekDay 属于重复集合。
// 查询条件是 model.Habit.PossibleOn 的 SQL 版本，两者需同步修改。
func (r *HabitRepository) ListActiveOn(ctx context.Context, day time.Time, weekDay int) ([]model.Habit, error) {
	var habits []model.Habit
	err := r.DB.WithContext(ctx).
		Preload("WeekDays", preloadWeekDays).
		Where("created_at <= ?", day.UTC()).
		Where("EXISTS (SELECT 1 FROM habit_week_days hwd WHERE hwd.habit_id = habits.id AND hwd.week_day = ?)", weekDay).
		Order("created_at ASC, id ASC").
		Find(&habits).Error
	return habits, err
}
