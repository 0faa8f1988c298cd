package model

import (
	"context"
	"errors"
)

var (
	ErrNotAuthenticated = errors.New("no authenticated session")
	ErrSessionResolving = errors.New("session is still being resolved")
)

type SessionState int

const (
	Resolving SessionState = iota
	Anonymous
	Authenticated
)

func (s SessionState) String() string {
	switch s {
	case Resolving:
		return "resolving"
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Identity is the signed-in user's profile as reported by the identity
// provider. It is owned by the session service and read-only elsewhere.
type Identity struct {
	ID             string
	ExternalUserID string
	Username       string
	Email          string
	FirstName      string
	LastName       string
	Gender         string
}

type LoginRequest struct {
	Username string
}

// RedirectResponse is the provider's answer to a sign-in or sign-out
// request. A non-empty RedirectURL means the handshake continues on the
// provider's pages, not locally.
type RedirectResponse struct {
	IsSuccess   bool
	RedirectURL string
}

// AuthGateway is the backend boundary for the redirect-based handshake.
// MyProfile returns (nil, nil) when the backend reports no session.
type AuthGateway interface {
	Login(ctx context.Context, req LoginRequest) (RedirectResponse, error)
	Logout(ctx context.Context) (RedirectResponse, error)
	MyProfile(ctx context.Context) (*Identity, error)
}

// Navigator performs the full-page navigation that completes a redirect
// handshake. Navigation is terminal for the current page context.
type Navigator interface {
	Navigate(url string)
}
