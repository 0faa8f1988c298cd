package application

import (
	"context"

	"golang.org/x/sync/errgroup"

	"storefront/pkg/api"
	"storefront/pkg/domain/model"
)

// ProfileOverview is everything the profile page shows at once.
type ProfileOverview struct {
	Patient       *api.Patient
	Orders        []model.Order
	Prescriptions []api.Prescription
	Appointments  []api.Appointment
}

// LoadProfileOverview fans out the profile page's reads concurrently.
// Any single failure fails the whole load; the page either renders a
// complete overview or an error.
func (a *App) LoadProfileOverview(ctx context.Context, patientID string) (*ProfileOverview, error) {
	overview := &ProfileOverview{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		patient, err := a.Patients.GetPatient(ctx, patientID)
		if err != nil {
			return err
		}
		overview.Patient = patient
		return nil
	})
	g.Go(func() error {
		page, err := a.Orders.ListOrders(ctx, patientID, api.OrderFilter{})
		if err != nil {
			return err
		}
		overview.Orders = page.Orders
		return nil
	})
	g.Go(func() error {
		page, err := a.Prescriptions.ListPrescriptions(ctx, patientID, api.PrescriptionFilter{})
		if err != nil {
			return err
		}
		overview.Prescriptions = page.Prescriptions
		return nil
	})
	g.Go(func() error {
		page, err := a.Appointments.ListAppointments(ctx, patientID, api.AppointmentFilter{})
		if err != nil {
			return err
		}
		overview.Appointments = page.Appointments
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}
