package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	MinWeekDay = 0
	MaxWeekDay = 6
)

const (
	MaxHabitTitleLength = 255
)
