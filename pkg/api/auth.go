package api

import (
	"context"

	"storefront/pkg/domain/model"
	"storefront/pkg/infrastructure/transport"
)

// AuthAPI speaks the identity provider's redirect handshake endpoints.
// Field casing on this surface follows the auth backend (PascalCase),
// unlike the rest of the API.
type AuthAPI struct {
	client *transport.Client
}

func NewAuthAPI(client *transport.Client) *AuthAPI {
	return &AuthAPI{client: client}
}

var _ model.AuthGateway = (*AuthAPI)(nil)

type loginPayload struct {
	Username string `json:"Username"`
}

type redirectPayload struct {
	IsSuccess   bool   `json:"IsSuccess"`
	RedirectURL string `json:"RedirectURL"`
}

type profilePayload struct {
	ID             string `json:"Id"`
	ExternalUserID string `json:"ExternalUserId"`
	Username       string `json:"Username"`
	Email          string `json:"Email"`
	FirstName      string `json:"FirstName"`
	LastName       string `json:"LastName"`
	Gender         string `json:"Gender"`
}

func (a *AuthAPI) Login(ctx context.Context, req model.LoginRequest) (model.RedirectResponse, error) {
	var payload redirectPayload
	if err := a.client.Post(ctx, "/auth/Login", loginPayload{Username: req.Username}, &payload); err != nil {
		return model.RedirectResponse{}, err
	}
	return model.RedirectResponse{IsSuccess: payload.IsSuccess, RedirectURL: payload.RedirectURL}, nil
}

func (a *AuthAPI) Logout(ctx context.Context) (model.RedirectResponse, error) {
	var payload redirectPayload
	if err := a.client.Post(ctx, "/auth/Logout", struct{}{}, &payload); err != nil {
		return model.RedirectResponse{}, err
	}
	return model.RedirectResponse{IsSuccess: payload.IsSuccess, RedirectURL: payload.RedirectURL}, nil
}

// MyProfile is the "who am I" query. An answer without an id means no
// session is established, reported as (nil, nil).
func (a *AuthAPI) MyProfile(ctx context.Context) (*model.Identity, error) {
	var payload profilePayload
	if err := a.client.Post(ctx, "/auth/GetMyProfile", struct{}{}, &payload); err != nil {
		return nil, err
	}
	if payload.ID == "" {
		return nil, nil
	}
	return &model.Identity{
		ID:             payload.ID,
		ExternalUserID: payload.ExternalUserID,
		Username:       payload.Username,
		Email:          payload.Email,
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		Gender:         payload.Gender,
	}, nil
}
