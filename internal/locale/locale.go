// Package locale holds the fixed user-facing strings of the dashboard,
// keyed by locale.
package locale

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"

	"github.com/jwalitptl/clinic-agenda/internal/model"
)

// Default is the locale used when nothing better matches.
const Default = "pt-BR"

// Catalog is the string table of one locale. Fields ending in a verb
// (%d, %s) are fmt formats.
type Catalog struct {
	Tag           language.Tag
	Months        [12]string
	WeekdaysShort [7]string
	Statuses      map[model.AppointmentStatus]string

	JustNow    string
	MinutesAgo string
	HoursAgo   string
	DaysAgo    string

	PatientRegisteredTitle    string
	PatientRegisteredMessage  string
	AppointmentCreatedTitle   string
	AppointmentCreatedMessage string

	TodayHeading     string
	UpcomingHeading  string
	NoAppointments   string
	NoNotifications  string
	NoSearchResults  string
	AppointmentSaved string
	RecoverySent     string
}

// MonthName returns the localized name of m.
func (c *Catalog) MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return m.String()
	}
	return c.Months[m-1]
}

func (c *Catalog) WeekdayShort(d time.Weekday) string {
	return c.WeekdaysShort[d%7]
}

// StatusLabel returns the localized status, or the raw value when unknown.
func (c *Catalog) StatusLabel(s model.AppointmentStatus) string {
	if label, ok := c.Statuses[s]; ok {
		return label
	}
	return string(s)
}

// Elapsed buckets d into now / minutes / hours / days, truncating toward
// the smaller unit. Negative durations read as now.
func (c *Catalog) Elapsed(d time.Duration) string {
	minutes := int(math.Floor(d.Minutes()))

	switch {
	case minutes < 1:
		return c.JustNow
	case minutes < 60:
		return fmt.Sprintf(c.MinutesAgo, minutes)
	case minutes < 24*60:
		return fmt.Sprintf(c.HoursAgo, minutes/60)
	default:
		return fmt.Sprintf(c.DaysAgo, minutes/(24*60))
	}
}

// PatientRegistered renders the title and message posted when a patient
// is registered.
func (c *Catalog) PatientRegistered(name string) (string, string) {
	return c.PatientRegisteredTitle, fmt.Sprintf(c.PatientRegisteredMessage, name)
}

// AppointmentCreated renders the title and message posted when an
// appointment is booked.
func (c *Catalog) AppointmentCreated(a *model.Appointment) (string, string) {
	return c.AppointmentCreatedTitle,
		fmt.Sprintf(c.AppointmentCreatedMessage, a.Patient, a.Day, int(a.Month), a.Year, a.Time)
}

var (
	supported = []language.Tag{language.BrazilianPortuguese, language.AmericanEnglish}
	matcher   = language.NewMatcher(supported)
	catalogs  = []*Catalog{ptBR, enUS}
)

// Lookup returns the catalog best matching id (a BCP 47 tag such as
// "pt-BR" or "en"), falling back to pt-BR.
func Lookup(id string) *Catalog {
	tag, err := language.Parse(id)
	if err != nil {
		return ptBR
	}

	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return ptBR
	}
	return catalogs[idx]
}
