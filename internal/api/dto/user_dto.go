package dto

import (
	"strings"
	"time"

	"github.com/manyinyire/Outleads-sub001/internal/domain"
	apperrors "github.com/manyinyire/Outleads-sub001/pkg/util"
)

// UpdateUserRequest payload; all fields optional.
type UpdateUserRequest struct {
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	SBU      *string `json:"sbu"`
}

// Validate rejects blank names and unknown roles.
func (r *UpdateUserRequest) Validate() error {
	if r.FullName != nil && strings.TrimSpace(*r.FullName) == "" {
		return apperrors.NewValidationError("full_name must not be empty", nil)
	}
	if r.Role != nil && !domain.ValidRole(domain.Role(*r.Role)) {
		return apperrors.NewValidationError("unknown role", nil)
	}
	return nil
}

// UserResponse is the API shape for an operator account. Credential and
// registration-token fields never leave the server.
type UserResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	SBU       *string   `json:"sbu"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse maps the domain row.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      string(u.Role),
		Status:    string(u.Status),
		SBU:       u.SBU,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
