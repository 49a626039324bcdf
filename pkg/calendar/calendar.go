package calendar

import (
	"fmt"
	"time"
)

// Direction selects which way NavigateMonth moves.
type Direction string

const (
	Prev Direction = "prev"
	Next Direction = "next"
)

// ParseDirection converts "prev"/"next" into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Prev, Next:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("unknown direction %q", s)
	}
}

var monthDays = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether year is a leap year in the proleptic Gregorian calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days of month in year.
// It returns 0 for a month outside January..December.
func DaysInMonth(month time.Month, year int) int {
	if month < time.January || month > time.December {
		return 0
	}
	if month == time.February && IsLeapYear(year) {
		return 29
	}
	return monthDays[month-1]
}

// FirstWeekdayOfMonth returns the weekday of the first day of month.
func FirstWeekdayOfMonth(month time.Month, year int) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// NavigateMonth moves one month in dir, wrapping December and January
// across year boundaries.
func NavigateMonth(month time.Month, year int, dir Direction) (time.Month, int) {
	switch dir {
	case Prev:
		if month == time.January {
			return time.December, year - 1
		}
		return month - 1, year
	case Next:
		if month == time.December {
			return time.January, year + 1
		}
		return month + 1, year
	}
	return month, year
}

// ValidDate reports whether day/month/year names a real calendar date.
func ValidDate(day int, month time.Month, year int) bool {
	return day >= 1 && day <= DaysInMonth(month, year)
}

// MonthGrid lays the month out in Sunday-first weeks. Cells outside the
// month are 0.
func MonthGrid(month time.Month, year int) [][7]int {
	days := DaysInMonth(month, year)
	if days == 0 {
		return nil
	}

	offset := int(FirstWeekdayOfMonth(month, year))
	weeks := make([][7]int, 0, 6)

	var week [7]int
	col := offset
	for day := 1; day <= days; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}

	return weeks
}
