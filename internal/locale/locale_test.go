package locale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/clinic-agenda/internal/model"
)

func TestLookup(t *testing.T) {
	assert.Same(t, ptBR, Lookup("pt-BR"))
	assert.Same(t, enUS, Lookup("en-US"))
	assert.Same(t, enUS, Lookup("en"))
	assert.Same(t, ptBR, Lookup(""))
	assert.Same(t, ptBR, Lookup("not a tag!"))
}

func TestElapsed(t *testing.T) {
	c := Lookup("en-US")

	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{-5 * time.Minute, "now"},
		{0, "now"},
		{59 * time.Second, "now"},
		{time.Minute, "1min ago"},
		{59*time.Minute + 59*time.Second, "59min ago"},
		{time.Hour, "1h ago"},
		{23*time.Hour + 59*time.Minute, "23h ago"},
		{24 * time.Hour, "1d ago"},
		{71 * time.Hour, "2d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.elapsed.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, c.Elapsed(tt.elapsed))
		})
	}

	assert.Equal(t, "Agora", ptBR.Elapsed(10*time.Second))
	assert.Equal(t, "5min atrás", ptBR.Elapsed(5*time.Minute))
	assert.Equal(t, "3d atrás", ptBR.Elapsed(80*time.Hour))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Março", ptBR.MonthName(time.March))
	assert.Equal(t, "December", enUS.MonthName(time.December))
	assert.Equal(t, "Sáb", ptBR.WeekdayShort(time.Saturday))
	assert.Equal(t, "Pendente", ptBR.StatusLabel(model.AppointmentStatusPending))
	assert.Equal(t, "archived", ptBR.StatusLabel(model.AppointmentStatus("archived")))
}

func TestNotificationTemplates(t *testing.T) {
	title, msg := ptBR.PatientRegistered("Ana Silva")
	assert.Equal(t, "Novo Paciente Cadastrado", title)
	assert.Equal(t, "Ana Silva foi cadastrado com sucesso no sistema.", msg)

	title, msg = enUS.AppointmentCreated(&model.Appointment{Patient: "Maria", Day: 5, Month: time.June, Year: 2024, Time: "08:00"})
	assert.Equal(t, "New Appointment", title)
	assert.Equal(t, "Appointment for Maria booked on 05/06/2024 at 08:00.", msg)
}
