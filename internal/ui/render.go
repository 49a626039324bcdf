package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/jwalitptl/clinic-agenda/internal/locale"
	"github.com/jwalitptl/clinic-agenda/internal/model"
	"github.com/jwalitptl/clinic-agenda/pkg/calendar"
)

type Renderer struct {
	catalog *locale.Catalog
}

func NewRenderer(catalog *locale.Catalog) *Renderer {
	return &Renderer{catalog: catalog}
}

func (r *Renderer) Catalog() *locale.Catalog {
	return r.catalog
}

// MonthHeader renders e.g. "Junho 2024".
func (r *Renderer) MonthHeader(c calendar.Cursor) string {
	return fmt.Sprintf("%s %d", r.catalog.MonthName(c.Month), c.Year)
}

func (r *Renderer) StatusLabel(status model.AppointmentStatus) string {
	return r.catalog.StatusLabel(status)
}

// Grid renders the month of c as a Sunday-first table. Days for which
// marked returns true get a trailing '*'; the selected day is bracketed.
func (r *Renderer) Grid(c calendar.Cursor, selected int, marked func(day int) bool) string {
	var b strings.Builder

	b.WriteString(r.MonthHeader(c))
	b.WriteByte('\n')

	for d := time.Sunday; d <= time.Saturday; d++ {
		fmt.Fprintf(&b, "%-5s", r.catalog.WeekdayShort(d))
	}
	b.WriteByte('\n')

	for _, week := range c.Grid() {
		for _, day := range week {
			b.WriteString(r.cell(day, selected, marked))
		}
		b.WriteByte('\n')
	}

	return strings.TrimRight(b.String(), "\n")
}

func (r *Renderer) cell(day, selected int, marked func(int) bool) string {
	if day == 0 {
		return "     "
	}

	mark := " "
	if marked != nil && marked(day) {
		mark = "*"
	}
	if day == selected {
		return fmt.Sprintf("[%2d]%s", day, mark)
	}
	return fmt.Sprintf(" %2d %s", day, mark)
}
