package model

import "time"

// Day 至少有一次切换操作的日期才会存在，每个规范日最多一条
// swagger:model Day
type Day struct {
	UUIDBase
	Date      time.Time  `gorm:"not null;uniqueIndex" json:"date"`
	DayHabits []DayHabit `gorm:"foreignKey:DayID" json:"dayHabits,omitempty"`
}

func (Day) TableName() string {
	return "days"
}

// DayHabit 完成记录，存在即完成；(day_id, habit_id) 唯一
// swagger:model DayHabit
type DayHabit struct {
	UUIDBase
	DayID   string `gorm:"type:varchar(36);not null;uniqueIndex:idx_day_habit" json:"day_id"`
	HabitID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_day_habit;index" json:"habit_id"`

	Day   *Day   `gorm:"foreignKey:DayID" json:"-"`
	Habit *Habit `gorm:"foreignKey:HabitID" json:"-"`
}

func (DayHabit) TableName() string {
	return "day_habits"
}

// DayCount 某日的完成数
type DayCount struct {
	Day       Day
	Completed int
}
