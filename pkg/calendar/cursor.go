package calendar

import "time"

// Cursor is the month currently shown by one calendar widget.
type Cursor struct {
	Month time.Month
	Year  int
}

// CursorAt returns a cursor positioned on t's month.
func CursorAt(t time.Time) Cursor {
	return Cursor{Month: t.Month(), Year: t.Year()}
}

func (c *Cursor) Prev() {
	c.Month, c.Year = NavigateMonth(c.Month, c.Year, Prev)
}

func (c *Cursor) Next() {
	c.Month, c.Year = NavigateMonth(c.Month, c.Year, Next)
}

// Move navigates in dir.
func (c *Cursor) Move(dir Direction) {
	c.Month, c.Year = NavigateMonth(c.Month, c.Year, dir)
}

func (c Cursor) DaysInMonth() int {
	return DaysInMonth(c.Month, c.Year)
}

func (c Cursor) Grid() [][7]int {
	return MonthGrid(c.Month, c.Year)
}

// Contains reports whether day is a valid day of the cursor's month.
func (c Cursor) Contains(day int) bool {
	return ValidDate(day, c.Month, c.Year)
}
