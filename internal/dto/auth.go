package dto

import "time"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"omitempty,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the refresh token when the client cannot use
// the cookie (mobile clients, tests). The cookie wins when both exist.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// FieldErrors reports cross-field problems single-field tags cannot
// express.
func (r *ResetPasswordRequest) FieldErrors() []string {
	var errs []string
	if r.Password != r.ConfirmPassword {
		errs = append(errs, "confirm_password does not match password")
	}
	return errs
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func (r *ChangePasswordRequest) FieldErrors() []string {
	var errs []string
	if r.NewPassword != r.ConfirmPassword {
		errs = append(errs, "confirm_password does not match new_password")
	}
	return errs
}

type UpdateProfileRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=255"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone" binding:"omitempty,max=50"`
	Photo *string `json:"photo" binding:"omitempty,max=512"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    time.Time    `json:"expires_at"`
}

type TokenPairResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type CleanupResponse struct {
	RefreshTokensRemoved int64 `json:"refresh_tokens_removed"`
	ResetTokensRemoved   int64 `json:"reset_tokens_removed"`
}
