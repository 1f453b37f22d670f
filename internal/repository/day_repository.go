package repository

import (
	"context"
	"errors"
	"habit_tracker_backend/internal/model"
	"habit_tracker_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type DayRepository struct {
	DB *gorm.DB
}

func NewDayRepository(db *gorm.DB) *DayRepository {
	return &DayRepository{DB: db}
}

// FindByDate 不存在时返回 nil, nil
func (r *DayRepository) FindByDate(ctx context.Context, date time.Time) (*model.Day, error) {
	var day model.Day
	err := r.DB.WithContext(ctx).Where("date = ?", date.UTC()).First(&day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// Create 日期已存在时返回 ConflictError
func (r *DayRepository) Create(ctx context.Context, date time.Time) (*model.Day, error) {
	day := &model.Day{Date: date.UTC()}
	err := r.DB.WithContext(ctx).Create(day).Error
	if isDuplicateKey(err) {
		return nil, &util.ConflictError{Resource: "day", Err: err}
	}
	if err != nil {
		return nil, err
	}
	return day, nil
}

type dayFinderCreator interface {
	FindByDate(ctx context.Context, date time.Time) (*model.Day, error)
	Create(ctx context.Context, date time.Time) (*model.Day, error)
}

// findOrCreateDay 并发创建同一日期时，冲突的一方重读一次胜者的记录
func findOrCreateDay(ctx context.Context, days dayFinderCreator, date time.Time) (*model.Day, error) {
	day, err := days.FindByDate(ctx, date)
	if err != nil || day != nil {
		return day, err
	}

	day, err = days.Create(ctx, date)
	if err == nil {
		return day, nil
	}
	if !util.IsConflict(err) {
		return nil, err
	}

	existing, rereadErr := days.FindByDate(ctx, date)
	if rereadErr != nil {
		return nil, rereadErr
	}
	if existing == nil {
		return nil, err
	}
	return existing, nil
}

func (r *DayRepository) FindOrCreate(ctx context.Context, date time.Time) (*model.Day, error) {
	return findOrCreateDay(ctx, r, date)
}

// ListWithCounts 返回所有日期及其完成数，按日期升序
func (r *DayRepository) ListWithCounts(ctx context.Context) ([]model.DayCount, error) {
	var days []model.Day
	if err := r.DB.WithContext(ctx).Order("date ASC").Find(&days).Error; err != nil {
		return nil, err
	}

	type countRow struct {
		DayID     string
		Completed int
	}
	var rows []countRow
	err := r.DB.WithContext(ctx).
		Model(&model.DayHabit{}).
		Select("day_id, COUNT(*) AS completed").
		Group("day_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.DayID] = row.Completed
	}

	result := make([]model.DayCount, 0, len(days))
	for _, day := range days {
		result = append(result, model.DayCount{Day: day, Completed: counts[day.ID]})
	}
	return result, nil
}
