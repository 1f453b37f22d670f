package util

import (
	"strings"
	"time"
)

// Calendar 把任意时间戳归一为参考时区的零点（规范日）
type Calendar struct {
	Location *time.Location
	Now      func() time.Time
}

func NewCalendar(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{Location: loc, Now: time.Now}
}

// Normalize 截断到参考时区的当日零点
func (c *Calendar) Normalize(t time.Time) time.Time {
	t = t.In(c.Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.Location)
}

// WeekdayOf 返回 0..6，周日为 0
func (c *Calendar) WeekdayOf(day time.Time) int {
	return int(day.In(c.Location).Weekday())
}

func (c *Calendar) Today() time.Time {
	return c.Normalize(c.Now())
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDate 解析 ISO8601 日期或时间戳并返回规范日。
// 纯日期按参考时区解释；不带时区的时间戳同样按参考时区解释。
func (c *Calendar) ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, NewValidationError("date", "is required")
	}

	if t, err := time.ParseInLocation(DateFormat, s, c.Location); err == nil {
		return t, nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, c.Location); err == nil {
			return c.Normalize(t), nil
		}
	}

	return time.Time{}, NewValidationError("date", "must be an ISO8601 date or timestamp")
}
