package dto

import (
	"strings"

	apperrors "github.com/manyinyire/Outleads-sub001/pkg/util"
)

// CreatePoolRequest payload.
type CreatePoolRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// Validate checks required fields.
func (r *CreatePoolRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	return nil
}

// UpdatePoolRequest payload; all fields optional.
type UpdatePoolRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Validate rejects blank names.
func (r *UpdatePoolRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return apperrors.NewValidationError("name must not be empty", nil)
	}
	return nil
}
