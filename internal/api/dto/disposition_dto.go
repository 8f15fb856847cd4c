package dto

import (
	"strings"

	"github.com/manyinyire/Outleads-sub001/internal/domain"
	apperrors "github.com/manyinyire/Outleads-sub001/pkg/util"
)

// CreateSecondDispositionRequest payload.
type CreateSecondDispositionRequest struct {
	Name    string `json:"name"`
	FirstID string `json:"first_id"`
}

// Validate checks required fields.
func (r *CreateSecondDispositionRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	if strings.TrimSpace(r.FirstID) == "" {
		return apperrors.NewValidationError("first_id is required", nil)
	}
	return nil
}

// UpdateSecondDispositionRequest payload; all fields optional.
type UpdateSecondDispositionRequest struct {
	Name    *string `json:"name"`
	FirstID *string `json:"first_id"`
}

// Validate rejects blank names.
func (r *UpdateSecondDispositionRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return apperrors.NewValidationError("name must not be empty", nil)
	}
	return nil
}

// CreateThirdDispositionRequest payload.
type CreateThirdDispositionRequest struct {
	Name     string `json:"name"`
	SecondID string `json:"second_id"`
	Category string `json:"category"`
}

// Validate checks required fields and the category enum.
func (r *CreateThirdDispositionRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	if strings.TrimSpace(r.SecondID) == "" {
		return apperrors.NewValidationError("second_id is required", nil)
	}
	if !domain.ValidDispositionCategory(domain.DispositionCategory(r.Category)) {
		return apperrors.NewValidationError("unknown disposition category", nil)
	}
	return nil
}

// UpdateThirdDispositionRequest payload; all fields optional.
type UpdateThirdDispositionRequest struct {
	Name     *string `json:"name"`
	SecondID *string `json:"second_id"`
	Category *string `json:"category"`
}

// Validate rejects blank names and unknown categories.
func (r *UpdateThirdDispositionRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return apperrors.NewValidationError("name must not be empty", nil)
	}
	if r.Category != nil && !domain.ValidDispositionCategory(domain.DispositionCategory(*r.Category)) {
		return apperrors.NewValidationError("unknown disposition category", nil)
	}
	return nil
}

// RolePermissionsRequest replaces a role's permission set.
type RolePermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

// Validate requires the list to be present (an empty list clears the set).
func (r *RolePermissionsRequest) Validate() error {
	if r.Permissions == nil {
		return apperrors.NewValidationError("permissions is required", nil)
	}
	return nil
}
