package repository

import (
	"context"
	"habit_tracker_backend/internal/model"
	"habit_tracker_backend/internal/util"

	"gorm.io/gorm"
)

type DayHabitRepository struct {
	DB *gorm.DB
}

func NewDayHabitRepository(db *gorm.DB) *DayHabitRepository {
	return &DayHabitRepository{DB: db}
}

// Insert (day_id, habit_id) 已存在时返回 ConflictError
func (r *DayHabitRepository) Insert(ctx context.Context, dayID, habitID string) (*model.DayHabit, error) {
	dh := &model.DayHabit{DayID: dayID, HabitID: habitID}
	err := r.DB.WithContext(ctx).Create(dh).Error
	if isDuplicateKey(err) {
		return nil, &util.ConflictError{Resource: "day_habit", Err: err}
	}
	if err != nil {
		return nil, err
	}
	return dh, nil
}

// DeleteByPair 返回删除的行数，记录不存在时为 0
func (r *DayHabitRepository) DeleteByPair(ctx context.Context, dayID, habitID string) (int64, error) {
	result := r.DB.WithContext(ctx).
		Where("day_id = ? AND habit_id = ?", dayID, habitID).
		Delete(&model.DayHabit{})
	return result.RowsAffected, result.Error
}

func (r *DayHabitRepository) ListHabitIDsByDay(ctx context.Context, dayID string) ([]string, error) {
	ids := []string{}
	err := r.DB.WithContext(ctx).
		Model(&model.DayHabit{}).
		Where("day_id = ?", dayID).
		Order("habit_id ASC").
		Pluck("habit_id", &ids).Error
	return ids, err
}
