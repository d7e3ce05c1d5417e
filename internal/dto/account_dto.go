package dto

type UpdateAccountRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type CheckoutRequest struct {
	PriceId string `json:"priceId"`
}

type CheckoutResponse struct {
	SessionId string `json:"sessionId"`
	Url       string `json:"url"`
}
