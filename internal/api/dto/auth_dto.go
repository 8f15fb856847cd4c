package dto

import (
	"strings"
	"time"

	"github.com/manyinyire/Outleads-sub001/internal/domain"
	apperrors "github.com/manyinyire/Outleads-sub001/pkg/util"
)

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks required fields.
func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return apperrors.NewValidationError("email is required", nil)
	}
	if r.Password == "" {
		return apperrors.NewValidationError("password is required", nil)
	}
	return nil
}

// OnboardRequest payload for first-contact signup.
type OnboardRequest struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	SBU      *string `json:"sbu"`
}

// Validate checks required fields and the closed role set.
func (r *OnboardRequest) Validate() error {
	if strings.TrimSpace(r.FullName) == "" {
		return apperrors.NewValidationError("full_name is required", nil)
	}
	if strings.TrimSpace(r.Email) == "" {
		return apperrors.NewValidationError("email is required", nil)
	}
	if !domain.ValidRole(domain.Role(r.Role)) {
		return apperrors.NewValidationError("unknown role", nil)
	}
	return nil
}

// CompleteRegistrationRequest payload for finishing an approved signup.
type CompleteRegistrationRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Validate checks required fields.
func (r *CompleteRegistrationRequest) Validate() error {
	if strings.TrimSpace(r.Token) == "" {
		return apperrors.NewValidationError("token is required", nil)
	}
	if len(r.Password) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	return nil
}

// AuthResponse carries the access token. Refresh tokens travel only in the
// HTTP-only cookie.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
