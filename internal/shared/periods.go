package shared

import (
	"fmt"
	"time"
)

// Window is an inclusive [From, To] date range used by report aggregations.
type Window struct {
	From time.Time
	To   time.Time
}

// DayWindow covers a single calendar day.
func DayWindow(day time.Time) Window {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return Window{From: start, To: start}
}

// WeekWindow covers seven days starting at weekStart.
func WeekWindow(weekStart time.Time) Window {
	start := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())
	return Window{From: start, To: start.AddDate(0, 0, 6)}
}

// MonthWindow covers the calendar month given as "2006-01".
func MonthWindow(month string) (Window, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return Window{}, fmt.Errorf("parse month: %w", err)
	}
	return Window{From: start, To: start.AddDate(0, 1, -1)}, nil
}

// RangeWindow covers an arbitrary inclusive range; To must not precede From.
func RangeWindow(from, to time.Time) (Window, error) {
	if to.Before(from) {
		return Window{}, fmt.Errorf("%w: end date before start date", ErrValidation)
	}
	return Window{From: from, To: to}, nil
}

// Days reports the number of calendar days the window spans.
func (w Window) Days() int {
	return int(w.To.Sub(w.From).Hours()/24) + 1
}
