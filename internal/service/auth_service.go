package service

import (
	"context"
	"fmt"

	"entity-journal-cli/internal/dto"
	"entity-journal-cli/internal/gateway"
	"entity-journal-cli/internal/model"
	"entity-journal-cli/internal/pkg/logger"
	"entity-journal-cli/internal/session"
)

type IAuthService interface {
	Login(ctx context.Context, email, password string) (*model.User, error)
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Hydrate(ctx context.Context) error
	RefreshUser(ctx context.Context) (*model.User, error)
	Logout()
}

type authService struct {
	api   *gateway.Gateway
	store *session.Store
	log   logger.ILogger
}

func NewAuthService(api *gateway.Gateway, store *session.Store, log logger.ILogger) IAuthService {
	return &authService{api: api, store: store, log: log}
}

// Login exchanges credentials for a token, then fetches the profile. On any
// failure before the token is issued the session keeps its prior state.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	var res dto.AuthResponse
	err := s.api.Post(ctx, "/auth/login", dto.LoginRequest{Email: email, Password: password}, &res)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return s.completeAuth(ctx, res.Token)
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	var res dto.AuthResponse
	err := s.api.Post(ctx, "/auth/register", dto.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, &res)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return s.completeAuth(ctx, res.Token)
}

func (s *authService) completeAuth(ctx context.Context, token string) (*model.User, error) {
	// Store the credential first so the profile fetch carries it.
	s.store.SetAuthenticated(token, nil)

	var user model.User
	if err := s.api.Get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	s.store.UpdateUser(&user)
	return &user, nil
}

// Hydrate restores the session at process start from the persisted
// credential. Failures are silent: the credential is cleared and the
// session simply starts anonymous.
func (s *authService) Hydrate(ctx context.Context) error {
	if s.store.CredentialExpired() {
		s.log.Info(logModule, "persisted credential expired, skipping hydration", nil)
		s.store.HydrationFailed()
		return nil
	}
	if !s.store.BeginHydration() {
		return nil
	}

	var user model.User
	if err := s.api.Get(ctx, "/auth/me", nil, &user); err != nil {
		s.log.Warn(logModule, "hydration failed", map[string]interface{}{"error": err.Error()})
		s.store.HydrationFailed()
		return nil
	}

	token, _ := s.store.Credential()
	s.store.SetAuthenticated(token, &user)
	return nil
}

func (s *authService) RefreshUser(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := s.api.Get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, fmt.Errorf("refresh user: %w", err)
	}
	s.store.UpdateUser(&user)
	return &user, nil
}

func (s *authService) Logout() {
	s.store.Logout()
}
