package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store 习惯存储的统一入口，由进程启动时创建并注入各服务
type Store struct {
	DB        *gorm.DB
	Habits    *HabitRepository
	Days      *DayRepository
	DayHabits *DayHabitRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		DB:        db,
		Habits:    NewHabitRepository(db),
		Days:      NewDayRepository(db),
		DayHabits: NewDayHabitRepository(db),
	}
}

// Transaction fn 中的所有仓库都绑定到同一个事务
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
