package api

import (
	"context"
	"net/url"

	"storefront/pkg/infrastructure/transport"
)

type AppointmentsAPI struct {
	client *transport.Client
}

func NewAppointmentsAPI(client *transport.Client) *AppointmentsAPI {
	return &AppointmentsAPI{client: client}
}

type Appointment struct {
	ID         string `json:"id"`
	PatientID  string `json:"patientId"`
	DoctorID   string `json:"doctorId"`
	DoctorName string `json:"doctorName"`
	Specialty  string `json:"specialty"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     string `json:"status"`
	Reason     string `json:"reason"`
	Notes      string `json:"notes,omitempty"`
}

type CreateAppointmentRequest struct {
	DoctorID string `json:"doctorId"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Reason   string `json:"reason"`
	Notes    string `json:"notes,omitempty"`
}

type UpdateAppointmentRequest struct {
	Date   *string `json:"date,omitempty"`
	Time   *string `json:"time,omitempty"`
	Reason *string `json:"reason,omitempty"`
	Notes  *string `json:"notes,omitempty"`
	Status *string `json:"status,omitempty"`
}

type AppointmentFilter struct {
	ListOptions
	Status   string
	FromDate string
	ToDate   string
}

type AppointmentPage struct {
	Appointments []Appointment
	Total        int
	Page         int
	Limit        int
}

func (a *AppointmentsAPI) ListAppointments(ctx context.Context, patientID string, filter AppointmentFilter) (*AppointmentPage, error) {
	query := filter.query()
	setIfPresent(query, "status", filter.Status)
	setIfPresent(query, "fromDate", filter.FromDate)
	setIfPresent(query, "toDate", filter.ToDate)

	var payload envelope[page[Appointment]]
	if err := a.client.Get(ctx, "/patients/"+patientID+"/appointments", query, &payload); err != nil {
		return nil, err
	}
	return &AppointmentPage{
		Appointments: payload.Data.Data,
		Total:        payload.Data.Total,
		Page:         payload.Data.Page,
		Limit:        payload.Data.Limit,
	}, nil
}

func (a *AppointmentsAPI) GetAppointment(ctx context.Context, appointmentID string) (*Appointment, error) {
	var payload envelope[Appointment]
	if err := a.client.Get(ctx, "/appointments/"+appointmentID, nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Data, nil
}

func (a *AppointmentsAPI) CreateAppointment(ctx context.Context, patientID string, req CreateAppointmentRequest) (*Appointment, error) {
	var payload envelope[Appointment]
	if err := a.client.Post(ctx, "/patients/"+patientID+"/appointments", req, &payload); err != nil {
		return nil, err
	}
	return &payload.Data, nil
}

func (a *AppointmentsAPI) UpdateAppointment(ctx context.Context, appointmentID string, req UpdateAppointmentRequest) (*Appointment, error) {
	var payload envelope[Appointment]
	if err := a.client.Put(ctx, "/appointments/"+appointmentID, req, &payload); err != nil {
		return nil, err
	}
	return &payload.Data, nil
}

func (a *AppointmentsAPI) CancelAppointment(ctx context.Context, appointmentID string) (*Appointment, error) {
	var payload envelope[Appointment]
	if err := a.client.Patch(ctx, "/appointments/"+appointmentID+"/cancel", nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Data, nil
}

func (a *AppointmentsAPI) DeleteAppointment(ctx context.Context, appointmentID string) error {
	var payload envelope[messagePayload]
	return a.client.Delete(ctx, "/appointments/"+appointmentID, &payload)
}

func (a *AppointmentsAPI) AvailableSlots(ctx context.Context, doctorID, date string) ([]string, error) {
	query := url.Values{}
	query.Set("date", date)

	var payload envelope[[]string]
	if err := a.client.Get(ctx, "/doctors/"+doctorID+"/available-slots", query, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

func setIfPresent(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}
