package model

import (
	"sort"
	"time"

	"gorm.io/gorm"
)

// Habit 习惯，创建后不可修改
// swagger:model Habit
type Habit struct {
	UUIDBase
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
	WeekDays  []HabitWeekDay `gorm:"foreignKey:HabitID;constraint:OnDelete:CASCADE" json:"weekDays"`
}

func (Habit) TableName() string {
	return "habits"
}

// HabitWeekDay 习惯的重复星期，(habit_id, week_day) 唯一
// swagger:model HabitWeekDay
type HabitWeekDay struct {
	ID      string `gorm:"primaryKey;type:varchar(36)" json:"-"`
	HabitID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_habit_week_day" json:"-"`
	WeekDay int    `gorm:"not null;uniqueIndex:idx_habit_week_day;index" json:"week_day"`
}

func (w *HabitWeekDay) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == "" {
		w.ID = GenerateUUID()
	}
	return
}

func (HabitWeekDay) TableName() string {
	return "habit_week_days"
}

func NewHabitWeekDays(weekDays []int) []HabitWeekDay {
	rows := make([]HabitWeekDay, 0, len(weekDays))
	for _, wd := range UniqueWeekDays(weekDays) {
		rows = append(rows, HabitWeekDay{WeekDay: wd})
	}
	return rows
}

// UniqueWeekDays 去重并升序
func UniqueWeekDays(weekDays []int) []int {
	seen := make(map[int]struct{}, len(weekDays))
	out := make([]int, 0, len(weekDays))
	for _, wd := range weekDays {
		if _, ok := seen[wd]; ok {
			continue
		}
		seen[wd] = struct{}{}
		out = append(out, wd)
	}
	sort.Ints(out)
	return out
}

func (h *Habit) HasWeekDay(weekDay int) bool {
	for _, wd := range h.WeekDays {
		if wd.WeekDay == weekDay {
			return true
		}
	}
	return false
}

// PossibleOn 习惯在规范日 day 是否适用：星期命中且 created_at <= day。
// HabitRepository.ListActiveOn 与汇总的 weekdayIndex 是它的两个镜像实现，需与此保持一致。
func (h *Habit) PossibleOn(day time.Time, weekDay int) bool {
	return !h.CreatedAt.After(day) && h.HasWeekDay(weekDay)
}

func (h *Habit) WeekDayValues() []int {
	values := make([]int, 0, len(h.WeekDays))
	for _, wd := range h.WeekDays {
		values = append(values, wd.WeekDay)
	}
	sort.Ints(values)
	return values
}
