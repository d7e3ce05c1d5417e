package dto

import "entity-journal-cli/internal/model"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both /auth/login and /auth/register.
type AuthResponse struct {
	Token    string         `json:"token"`
	UserId   string         `json:"userId"`
	Username string         `json:"username"`
	Email    string         `json:"email"`
	Plan     model.PlanType `json:"plan"`
}
