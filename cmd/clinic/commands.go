package main

import (
	"strings"
	"time"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/clinic-agenda/internal/model"
	"github.com/jwalitptl/clinic-agenda/internal/ui"
	"github.com/jwalitptl/clinic-agenda/pkg/calendar"
	apperrors "github.com/jwalitptl/clinic-agenda/pkg/errors"
)

// publicAnnotation marks commands usable before signing in.
const publicAnnotation = "public"

var public = map[string]string{publicAnnotation: "true"}

// commands builds the command tree for one shell line.
func (s *shell) commands() *cobra.Command {
	root := &cobra.Command{
		Use:           "clinic",
		Short:         "Clinic dashboard commands",
		Long:          "Clinic dashboard commands. Quote arguments containing spaces: patient add \"Ana Silva\" 119 ana@x.com",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if isPublic(cmd) || s.app.State.View() == ui.ViewDashboard {
				return nil
			}
			return apperrors.NewBadRequest("sign in first", nil)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(s.out)
	root.SetErr(s.out)

	root.AddCommand(
		s.loginCmd(),
		s.forgotCmd(),
		s.logoutCmd(),
		s.patientCmd(),
		s.appointmentCmd(),
		s.pickerCmd(),
		s.agendaCmd(),
		s.notificationCmd(),
		s.summaryCmd(),
		s.metricsCmd(),
		&cobra.Command{
			Use:         "quit",
			Aliases:     []string{"exit"},
			Short:       "Leave the shell",
			Args:        cobra.NoArgs,
			Annotations: public,
			RunE: func(cmd *cobra.Command, args []string) error {
				return errQuit
			},
		},
	)

	return root
}

func isPublic(cmd *cobra.Command) bool {
	if cmd.Name() == "help" {
		return true
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[publicAnnotation] == "true" {
			return true
		}
	}
	return false
}

func (s *shell) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "login <email> <password>",
		Short:       "Sign in (any non-empty pair)",
		Args:        cobra.MaximumNArgs(2),
		Annotations: public,
		RunE: func(cmd *cobra.Command, args []string) error {
			args = append(args, "", "")
			return s.app.State.SignIn(cmd.Context(), args[0], args[1])
		},
	}
}

func (s *shell) forgotCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "forgot <email>",
		Short:       "Request a password recovery notice",
		Args:        cobra.MaximumNArgs(1),
		Annotations: public,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := s.app.State
			if state.View() == ui.ViewDashboard {
				return apperrors.NewBadRequest("already signed in", nil)
			}

			state.ForgotPassword()
			args = append(args, "")
			if err := state.RequestRecovery(args[0]); err != nil {
				return err
			}

			if sent, ok := state.RecoveryNotice(); ok {
				s.printf(s.catalog().RecoverySent+"\n", sent)
			}
			return nil
		},
	}
}

func (s *shell) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s.feed = nil
			return s.app.State.SignOut(cmd.Context())
		},
	}
}

func (s *shell) patientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patient",
		Short: "Register and find patients",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name> <phone> <email>",
			Short: "Register a patient",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				state := s.app.State
				state.OpenModal(ui.ModalNewPatient)

				p, err := s.app.Patients.Register(cmd.Context(), &model.CreatePatientRequest{
					Name:  args[0],
					Phone: args[1],
					Email: args[2],
				})
				if err != nil {
					return err
				}

				state.CloseModal()
				s.printf("%s (%s)\n", p.Name, p.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "search <term>",
			Short: "Find patients by name or email",
			Args:  cobra.ArbitraryArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				state := s.app.State
				state.OpenModal(ui.ModalPatientSearch)
				state.SearchTerm = strings.Join(args, " ")

				found, err := s.app.Patients.Search(cmd.Context(), state.SearchTerm)
				if err != nil {
					return err
				}
				if len(found) == 0 {
					if state.SearchTerm != "" {
						s.printf("%s\n", s.catalog().NoSearchResults)
					}
					return nil
				}
				s.printPatients(found)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List patients in registration order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				all, err := s.app.Patients.List(cmd.Context())
				if err != nil {
					return err
				}
				s.printPatients(all)
				return nil
			},
		},
	)

	return cmd
}

func (s *shell) printPatients(patients []*model.PatientProfile) {
	for _, p := range patients {
		s.printf("  %-24s %-16s %s\n", p.Name, p.Phone, p.Email)
	}
}

func (s *shell) appointmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appt",
		Short: "Book and list appointments",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <patient> <HH:MM> <type> [day]",
			Short: "Book on the picker month; day defaults to the last cal pick",
			Args:  cobra.RangeArgs(3, 4),
			RunE: func(cmd *cobra.Command, args []string) error {
				return s.book(cmd, args)
			},
		},
		&cobra.Command{
			Use:   "today",
			Short: "List today's appointments",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				now := s.now()
				apts, err := s.app.Appointments.ListToday(cmd.Context(), now)
				if err != nil {
					return err
				}
				s.printf(s.catalog().TodayHeading+"\n", now.Day())
				s.printAppointments(apts)
				return nil
			},
		},
		&cobra.Command{
			Use:   "upcoming",
			Short: "List appointments that have not started",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				apts, err := s.app.Appointments.ListUpcoming(cmd.Context(), s.now())
				if err != nil {
					return err
				}
				s.printf("%s\n", s.catalog().UpcomingHeading)
				s.printAppointments(apts)
				return nil
			},
		},
		&cobra.Command{
			Use:   "day <day> <month> <year>",
			Short: "List one calendar day",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				nums := make([]int, len(args))
				for i, name := range []string{"day", "month", "year"} {
					n, err := atoi(name, args[i])
					if err != nil {
						return err
					}
					nums[i] = n
				}
				return s.printDay(cmd, nums[0], time.Month(nums[1]), nums[2])
			},
		},
	)

	return cmd
}

// book creates an appointment on the picker month. The day comes from
// the argument or from the last "cal pick".
func (s *shell) book(cmd *cobra.Command, args []string) error {
	state := s.app.State
	state.OpenModal(ui.ModalNewAppointment)

	if len(args) > 3 {
		day, err := atoi("day", args[3])
		if err != nil {
			return err
		}
		if err := state.PickDay(day); err != nil {
			return err
		}
	}

	apt, err := s.app.Appointments.Create(cmd.Context(), &model.CreateAppointmentRequest{
		Patient: args[0],
		Time:    args[1],
		Type:    args[2],
		Day:     state.PickedDay,
		Month:   state.Picker.Month,
		Year:    state.Picker.Year,
	})
	if err != nil {
		return err
	}

	state.AppointmentSaved()
	s.printf("#%d %02d/%02d/%d %s %s\n", apt.ID, apt.Day, int(apt.Month), apt.Year, apt.Time, apt.Patient)
	s.printf("%s\n", s.catalog().AppointmentSaved)
	state.CloseModal()
	return nil
}

func (s *shell) printAppointments(apts []*model.Appointment) {
	if len(apts) == 0 {
		s.printf("  %s\n", s.catalog().NoAppointments)
		return
	}
	for _, a := range apts {
		s.printf("  %02d/%02d/%d %s  %-20s %-14s %s\n",
			a.Day, int(a.Month), a.Year, a.Time, a.Patient, a.Type, s.app.Renderer.StatusLabel(a.Status))
	}
}

func (s *shell) printDay(cmd *cobra.Command, day int, month time.Month, year int) error {
	apts, err := s.app.Appointments.ListForDay(cmd.Context(), day, month, year)
	if err != nil {
		return err
	}
	if len(apts) == 0 {
		s.printf("  %s\n", s.catalog().NoAppointments)
		return nil
	}
	for _, a := range apts {
		s.printf("  %s  %-20s %-14s %s\n", a.Time, a.Patient, a.Type, s.app.Renderer.StatusLabel(a.Status))
	}
	return nil
}

// moveCmds returns prev and next commands moving c, then running after.
func moveCmds(c *calendar.Cursor, after func(cmd *cobra.Command) error) []*cobra.Command {
	cmds := make([]*cobra.Command, 0, 2)
	for _, dir := range []calendar.Direction{calendar.Prev, calendar.Next} {
		dir := dir
		cmds = append(cmds, &cobra.Command{
			Use:   string(dir),
			Short: "Show the " + string(dir) + " month",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				c.Move(dir)
				return after(cmd)
			},
		})
	}
	return cmds
}

func (s *shell) pickerCmd() *cobra.Command {
	state := s.app.State
	show := func(cmd *cobra.Command) error {
		return s.printGrid(cmd, state.Picker, state.PickedDay)
	}

	cmd := &cobra.Command{
		Use:   "cal",
		Short: "Appointment day picker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cmd)
		},
	}

	cmd.AddCommand(moveCmds(&state.Picker, func(cmd *cobra.Command) error {
		state.PickedDay = 0
		return show(cmd)
	})...)
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the picker month",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return show(cmd)
			},
		},
		&cobra.Command{
			Use:   "pick <day>",
			Short: "Choose the day for the next appt add",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				day, err := atoi("day", args[0])
				if err != nil {
					return err
				}
				if err := state.PickDay(day); err != nil {
					return err
				}
				return show(cmd)
			},
		},
	)

	return cmd
}

func (s *shell) agendaCmd() *cobra.Command {
	state := s.app.State
	show := func(cmd *cobra.Command) error {
		selected := 0
		if sel := state.Selected; sel != nil && sel.Month == state.Agenda.Month && sel.Year == state.Agenda.Year {
			selected = sel.Day
		}
		return s.printGrid(cmd, state.Agenda, selected)
	}
	open := func(cmd *cobra.Command, args []string) error {
		state.OpenAgenda(s.now())
		return show(cmd)
	}

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Month agenda",
		Args:  cobra.NoArgs,
		RunE:  open,
	}

	cmd.AddCommand(moveCmds(&state.Agenda, show)...)
	cmd.AddCommand(
		&cobra.Command{
			Use:   "open",
			Short: "Open the agenda on the current month",
			Args:  cobra.NoArgs,
			RunE:  open,
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the agenda month",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return show(cmd)
			},
		},
		&cobra.Command{
			Use:   "day <day>",
			Short: "List the appointments of a day in the agenda month",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				day, err := atoi("day", args[0])
				if err != nil {
					return err
				}
				if err := state.SelectDay(day); err != nil {
					return err
				}
				sel := state.Selected
				return s.printDay(cmd, sel.Day, sel.Month, sel.Year)
			},
		},
	)

	return cmd
}

// printGrid draws the month of c marking days that have appointments.
func (s *shell) printGrid(cmd *cobra.Command, c calendar.Cursor, selected int) error {
	apts, err := s.app.Appointments.List(cmd.Context())
	if err != nil {
		return err
	}

	booked := make(map[int]bool)
	for _, a := range apts {
		if a.Month == c.Month && a.Year == c.Year {
			booked[a.Day] = true
		}
	}

	s.printf("%s\n", s.app.Renderer.Grid(c, selected, func(day int) bool { return booked[day] }))
	return nil
}

func (s *shell) notificationCmd() *cobra.Command {
	list := func(cmd *cobra.Command, args []string) error {
		s.app.State.OpenModal(ui.ModalNotifications)

		feed, err := s.app.Notifications.List(cmd.Context())
		if err != nil {
			return err
		}
		s.feed = s.feed[:0]
		if len(feed) == 0 {
			s.printf("  %s\n", s.catalog().NoNotifications)
			return nil
		}

		now := s.now()
		for i, n := range feed {
			s.feed = append(s.feed, n.ID)
			mark := " "
			if !n.Read {
				mark = "*"
			}
			s.printf("%s %2d. %s (%s)\n      %s\n", mark, i+1, n.Title, s.app.Notifications.RelativeAge(n, now), n.Message)
		}
		return nil
	}

	cmd := &cobra.Command{
		Use:   "notif",
		Short: "Notification feed",
		Args:  cobra.NoArgs,
		RunE:  list,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List notifications, newest first",
			Args:  cobra.NoArgs,
			RunE:  list,
		},
		&cobra.Command{
			Use:   "read <n|id>",
			Short: "Mark a notification as read",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := s.notificationID(args[0])
				if err != nil {
					return err
				}
				return s.app.Notifications.MarkRead(cmd.Context(), id)
			},
		},
		&cobra.Command{
			Use:   "rm <n|id>",
			Short: "Remove a notification",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := s.notificationID(args[0])
				if err != nil {
					return err
				}
				return s.app.Notifications.Remove(cmd.Context(), id)
			},
		},
		&cobra.Command{
			Use:   "close",
			Short: "Close the notification panel",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s.app.State.CloseModal()
				return nil
			},
		},
	)

	return cmd
}

func (s *shell) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Dashboard counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := s.app.Dashboard.Summary(cmd.Context(), s.now())
			if err != nil {
				return err
			}

			s.printf("today: %d  upcoming: %d  pending: %d  patients: %d  unread: %d\n",
				sum.Today, sum.Upcoming, sum.Pending, sum.Patients, sum.UnreadNotifications)
			return nil
		},
	}
}

func (s *shell) metricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Dump metrics in the Prometheus text format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			families, err := s.app.Registry.Gather()
			if err != nil {
				return apperrors.NewInternal(err)
			}

			for _, mf := range families {
				if _, err := expfmt.MetricFamilyToText(s.out, mf); err != nil {
					return apperrors.NewInternal(err)
				}
			}
			return nil
		},
	}
}
