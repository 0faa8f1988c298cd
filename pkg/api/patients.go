package api

import (
	"context"

	"storefront/pkg/infrastructure/transport"
)

// PatientsAPI serves the profile pages. Patient records are opaque to
// the storefront core and passed through to rendering unchanged.
type PatientsAPI struct {
	client *transport.Client
}

func NewPatientsAPI(client *transport.Client) *PatientsAPI {
	return &PatientsAPI{client: client}
}

type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

type Patient struct {
	ID             string   `json:"id"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone,omitempty"`
	DateOfBirth    string   `json:"dateOfBirth,omitempty"`
	Avatar         string   `json:"avatar,omitempty"`
	Address        *Address `json:"address,omitempty"`
	MedicalHistory []string `json:"medicalHistory,omitempty"`
	Allergies      []string `json:"allergies,omitempty"`
	Medications    []string `json:"medications,omitempty"`
}

// PatientUpdate is a partial update; nil fields are left untouched.
type PatientUpdate struct {
	FirstName   *string  `json:"firstName,omitempty"`
	LastName    *string  `json:"lastName,omitempty"`
	Email       *string  `json:"email,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	DateOfBirth *string  `json:"dateOfBirth,omitempty"`
	Avatar      *string  `json:"avatar,omitempty"`
	Address     *Address `json:"address,omitempty"`
}

func (a *PatientsAPI) GetPatient(ctx context.Context, patientID string) (*Patient, error) {
	var payload envelope[Patient]
	if err := a.client.Get(ctx, "/patients/"+patientID, nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Data, nil
}

func (a *PatientsAPI) UpdatePatient(ctx context.Context, patientID string, update PatientUpdate) (*Patient, error) {
	var payload envelope[Patient]
	if err := a.client.Put(ctx, "/patients/"+patientID, update, &payload); err != nil {
		return nil, err
	}
	return &payload.Data, nil
}

func (a *PatientsAPI) UploadAvatar(ctx context.Context, patientID, filename string, content []byte) (string, error) {
	var payload envelope[struct {
		AvatarURL string `json:"avatarUrl"`
	}]
	if err := a.client.PostMultipart(ctx, "/patients/"+patientID+"/avatar", "avatar", filename, content, &payload); err != nil {
		return "", err
	}
	return payload.Data.AvatarURL, nil
}

func (a *PatientsAPI) MedicalHistory(ctx context.Context, patientID string) ([]string, error) {
	return a.listStrings(ctx, "/patients/"+patientID+"/medical-history")
}

func (a *PatientsAPI) AddMedicalHistory(ctx context.Context, patientID, condition string) ([]string, error) {
	return a.appendString(ctx, "/patients/"+patientID+"/medical-history", map[string]string{"condition": condition})
}

func (a *PatientsAPI) Allergies(ctx context.Context, patientID string) ([]string, error) {
	return a.listStrings(ctx, "/patients/"+patientID+"/allergies")
}

func (a *PatientsAPI) AddAllergy(ctx context.Context, patientID, allergy string) ([]string, error) {
	return a.appendString(ctx, "/patients/"+patientID+"/allergies", map[string]string{"allergy": allergy})
}

func (a *PatientsAPI) Medications(ctx context.Context, patientID string) ([]string, error) {
	return a.listStrings(ctx, "/patients/"+patientID+"/medications")
}

func (a *PatientsAPI) AddMedication(ctx context.Context, patientID, medication string) ([]string, error) {
	return a.appendString(ctx, "/patients/"+patientID+"/medications", map[string]string{"medication": medication})
}

func (a *PatientsAPI) DeletePatient(ctx context.Context, patientID string) error {
	var payload envelope[messagePayload]
	return a.client.Delete(ctx, "/patients/"+patientID, &payload)
}

func (a *PatientsAPI) listStrings(ctx context.Context, path string) ([]string, error) {
	var payload envelope[[]string]
	if err := a.client.Get(ctx, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

func (a *PatientsAPI) appendString(ctx context.Context, path string, body map[string]string) ([]string, error) {
	var payload envelope[[]string]
	if err := a.client.Post(ctx, path, body, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}
