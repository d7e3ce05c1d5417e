package service

import (
	"context"
	"fmt"

	"entity-journal-cli/internal/dto"
	"entity-journal-cli/internal/gateway"
)

type IAccountService interface {
	Update(ctx context.Context, req dto.UpdateAccountRequest) error
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type accountService struct {
	api *gateway.Gateway
}

func NewAccountService(api *gateway.Gateway) IAccountService {
	return &accountService{api: api}
}

func (s *accountService) Update(ctx context.Context, req dto.UpdateAccountRequest) error {
	if err := s.api.Patch(ctx, "/api/account/me", req, nil); err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

func (s *accountService) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	err := s.api.Post(ctx, "/api/account/password/change", dto.ChangePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}, nil)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

func (s *accountService) ForgotPassword(ctx context.Context, email string) error {
	err := s.api.Post(ctx, "/api/account/password/forgot", dto.ForgotPasswordRequest{Email: email}, nil)
	if err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	return nil
}

func (s *accountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	err := s.api.Post(ctx, "/api/account/password/reset", dto.ResetPasswordRequest{
		Token:       token,
		NewPassword: newPassword,
	}, nil)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}
