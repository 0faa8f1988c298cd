package service

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"storefront/pkg/domain/model"
)

// SessionService tracks authentication state and mediates the
// redirect-based sign-in/sign-out handshake with the identity provider.
//
// The state machine is Resolving -> Anonymous | Authenticated. Resolution
// happens once per application load; a failed or empty profile lookup
// falls open to Anonymous, never to Authenticated.
type SessionService interface {
	Resolve(ctx context.Context) model.SessionState
	SignIn(ctx context.Context, req model.LoginRequest) (model.RedirectResponse, error)
	SignOut(ctx context.Context) error
	State() model.SessionState
	Identity() (model.Identity, bool)
	IsAuthenticated() bool
}

func NewSessionService(gateway model.AuthGateway, navigator model.Navigator, dispatcher EventDispatcher) SessionService {
	return &sessionService{
		gateway:    gateway,
		navigator:  navigator,
		dispatcher: dispatcher,
		state:      model.Resolving,
	}
}

type sessionService struct {
	gateway    model.AuthGateway
	navigator  model.Navigator
	dispatcher EventDispatcher

	mu       sync.Mutex
	state    model.SessionState
	identity *model.Identity
	resolved bool
}

// Resolve performs the startup "who am I" query. It runs at most once;
// later calls return the current state without touching the backend.
func (s *sessionService) Resolve(ctx context.Context) model.SessionState {
	s.mu.Lock()
	if s.resolved {
		state := s.state
		s.mu.Unlock()
		return state
	}
	s.resolved = true
	s.mu.Unlock()

	return s.refreshIdentity(ctx)
}

func (s *sessionService) refreshIdentity(ctx context.Context) model.SessionState {
	identity, err := s.gateway.MyProfile(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil || identity == nil {
		if err != nil {
			log.WithError(err).Warn("session resolution failed, falling back to anonymous")
		}
		s.state = model.Anonymous
		s.identity = nil
		_ = s.dispatcher.Dispatch(model.SessionResolved{Authenticated: false})
		return s.state
	}

	s.state = model.Authenticated
	s.identity = identity
	_ = s.dispatcher.Dispatch(model.SessionResolved{Authenticated: true, UserID: identity.ID})
	return s.state
}

// SignIn asks the provider to start a login. When the provider answers
// with a redirect target the navigator takes over and no local identity
// changes; the session is picked up by a fresh Resolve after the browser
// returns. A success without a redirect is treated as new session data.
func (s *sessionService) SignIn(ctx context.Context, req model.LoginRequest) (model.RedirectResponse, error) {
	if s.State() == model.Resolving {
		return model.RedirectResponse{}, model.ErrSessionResolving
	}

	resp, err := s.gateway.Login(ctx, req)
	if err != nil {
		return model.RedirectResponse{}, err
	}

	if resp.RedirectURL != "" {
		_ = s.dispatcher.Dispatch(model.SignInRedirected{RedirectURL: resp.RedirectURL})
		s.navigator.Navigate(resp.RedirectURL)
		return resp, nil
	}

	if resp.IsSuccess {
		s.refreshIdentity(ctx)
	}
	return resp, nil
}

// SignOut asks the provider to end the session. On failure the local
// state is kept: signed-out is never claimed unless the provider
// confirmed it or a fresh resolution says so.
func (s *sessionService) SignOut(ctx context.Context) error {
	if s.State() != model.Authenticated {
		return model.ErrNotAuthenticated
	}

	resp, err := s.gateway.Logout(ctx)
	if err != nil {
		log.WithError(err).Error("logout request failed, keeping local session state")
		return err
	}

	if resp.RedirectURL != "" {
		_ = s.dispatcher.Dispatch(model.SignOutRedirected{RedirectURL: resp.RedirectURL})
		s.navigator.Navigate(resp.RedirectURL)
	}
	return nil
}

func (s *sessionService) State() model.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *sessionService) Identity() (model.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return model.Identity{}, false
	}
	return *s.identity, true
}

func (s *sessionService) IsAuthenticated() bool {
	return s.State() == model.Authenticated
}
