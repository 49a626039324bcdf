package notification

import (
	"context"
	"fmt"

	"github.com/jwalitptl/clinic-agenda/internal/locale"
	"github.com/jwalitptl/clinic-agenda/internal/model"
	"github.com/jwalitptl/clinic-agenda/internal/service/event"
)

// Subscribe connects the feed to the domain events it reports on.
// Patient registrations always produce a notice; appointment bookings
// only when opts.AppointmentCreated is set.
func Subscribe(bus event.EventService, feed Service, catalog *locale.Catalog, opts SubscribeOptions) {
	bus.Subscribe(event.PatientRegistered, func(ctx context.Context, evt event.Event) error {
		p, ok := evt.Payload.(*model.PatientProfile)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", evt.Payload, evt.Type)
		}

		title, msg := catalog.PatientRegistered(p.Name)
		_, err := feed.Post(ctx, model.NotificationKindPatientRegistered, title, msg)
		return err
	})

	if !opts.AppointmentCreated {
		return
	}

	bus.Subscribe(event.AppointmentCreated, func(ctx context.Context, evt event.Event) error {
		a, ok := evt.Payload.(*model.Appointment)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", evt.Payload, evt.Type)
		}

		title, msg := catalog.AppointmentCreated(a)
		_, err := feed.Post(ctx, model.NotificationKindAppointmentCreated, title, msg)
		return err
	})
}
