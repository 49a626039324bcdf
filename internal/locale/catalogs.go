package locale

import (
	"golang.org/x/text/language"

	"github.com/jwalitptl/clinic-agenda/internal/model"
)

var ptBR = &Catalog{
	Tag: language.BrazilianPortuguese,
	Months: [12]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	},
	WeekdaysShort: [7]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"},
	Statuses: map[model.AppointmentStatus]string{
		model.AppointmentStatusConfirmed: "Confirmado",
		model.AppointmentStatusPending:   "Pendente",
		model.AppointmentStatusCompleted: "Concluído",
	},

	JustNow:    "Agora",
	MinutesAgo: "%dmin atrás",
	HoursAgo:   "%dh atrás",
	DaysAgo:    "%dd atrás",

	PatientRegisteredTitle:    "Novo Paciente Cadastrado",
	PatientRegisteredMessage:  "%s foi cadastrado com sucesso no sistema.",
	AppointmentCreatedTitle:   "Novo Agendamento",
	AppointmentCreatedMessage: "Consulta de %s agendada para %02d/%02d/%d às %s.",

	TodayHeading:     "Agendamentos de Hoje (Dia %d)",
	UpcomingHeading:  "Próximos Agendamentos",
	NoAppointments:   "Nenhum agendamento para este dia",
	NoNotifications:  "Nenhuma notificação",
	NoSearchResults:  "Nenhum paciente encontrado",
	AppointmentSaved: "Seu agendamento foi criado com sucesso. Um e-mail de confirmação será enviado ao paciente em breve.",
	RecoverySent:     "E-mail de recuperação enviado para %s",
}

var enUS = &Catalog{
	Tag: language.AmericanEnglish,
	Months: [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	WeekdaysShort: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	Statuses: map[model.AppointmentStatus]string{
		model.AppointmentStatusConfirmed: "Confirmed",
		model.AppointmentStatusPending:   "Pending",
		model.AppointmentStatusCompleted: "Completed",
	},

	JustNow:    "now",
	MinutesAgo: "%dmin ago",
	HoursAgo:   "%dh ago",
	DaysAgo:    "%dd ago",

	PatientRegisteredTitle:    "New Patient Registered",
	PatientRegisteredMessage:  "%s was successfully registered.",
	AppointmentCreatedTitle:   "New Appointment",
	AppointmentCreatedMessage: "Appointment for %s booked on %02d/%02d/%d at %s.",

	TodayHeading:     "Today's Appointments (Day %d)",
	UpcomingHeading:  "Upcoming Appointments",
	NoAppointments:   "No appointments on this day",
	NoNotifications:  "No notifications",
	NoSearchResults:  "No patients found",
	AppointmentSaved: "Your appointment was created. A confirmation e-mail will be sent to the patient shortly.",
	RecoverySent:     "Recovery e-mail sent to %s",
}
