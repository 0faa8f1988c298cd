package api

import (
	"context"

	"storefront/pkg/infrastructure/transport"
)

type PrescriptionsAPI struct {
	client *transport.Client
}

func NewPrescriptionsAPI(client *transport.Client) *PrescriptionsAPI {
	return &PrescriptionsAPI{client: client}
}

type Prescription struct {
	ID               string `json:"id"`
	PatientID        string `json:"patientId"`
	DoctorID         string `json:"doctorId"`
	DoctorName       string `json:"doctorName"`
	Medication       string `json:"medication"`
	Dosage           string `json:"dosage"`
	Frequency        string `json:"frequency"`
	Duration         string `json:"duration"`
	Instructions     string `json:"instructions"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	Status           string `json:"status"`
	RefillsRemaining int    `json:"refillsRemaining"`
	CreatedAt        string `json:"createdAt"`
}

type PrescriptionFilter struct {
	ListOptions
	Status string
}

type PrescriptionPage struct {
	Prescriptions []Prescription
	Total         int
	Page          int
	Limit         int
}

func (a *PrescriptionsAPI) ListPrescriptions(ctx context.Context, patientID string, filter PrescriptionFilter) (*PrescriptionPage, error) {
	query := filter.query()
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}

	var payload envelope[page[Prescription]]
	if err := a.client.Get(ctx, "/patients/"+patientID+"/prescriptions", query, &payload); err != nil {
		return nil, err
	}
	return &PrescriptionPage{
		Prescriptions: payload.Data.Data,
		Total:         payload.Data.Total,
		Page:          payload.Data.Page,
		Limit:         payload.Data.Limit,
	}, nil
}

func (a *PrescriptionsAPI) GetPrescription(ctx context.Context, prescriptionID string) (*Prescription, error) {
	var payload envelope[Prescription]
	if err := a.client.Get(ctx, "/prescriptions/"+prescriptionID, nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Data, nil
}

func (a *PrescriptionsAPI) RequestRefill(ctx context.Context, prescriptionID string) (*Prescription, error) {
	var payload envelope[Prescription]
	if err := a.client.Post(ctx, "/prescriptions/"+prescriptionID+"/refill", nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Data, nil
}

func (a *PrescriptionsAPI) ActivePrescriptions(ctx context.Context, patientID string) ([]Prescription, error) {
	var payload envelope[[]Prescription]
	if err := a.client.Get(ctx, "/patients/"+patientID+"/prescriptions/active", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// DownloadPrescription fetches the prescription document as raw bytes.
func (a *PrescriptionsAPI) DownloadPrescription(ctx context.Context, prescriptionID string) ([]byte, error) {
	return a.client.GetBytes(ctx, "/prescriptions/"+prescriptionID+"/download")
}
