package dto

import (
	"strings"
	"time"

	"github.com/manyinyire/Outleads-sub001/internal/domain"
	apperrors "github.com/manyinyire/Outleads-sub001/pkg/util"
)

// CreateCampaignRequest payload. Field names mirror the public API contract.
type CreateCampaignRequest struct {
	CampaignName     string  `json:"campaign_name"`
	OrganizationName string  `json:"organization_name"`
	AssignedToID     *string `json:"assignedToId"`
}

// Validate checks required fields.
func (r *CreateCampaignRequest) Validate() error {
	if strings.TrimSpace(r.CampaignName) == "" {
		return apperrors.NewValidationError("campaign_name is required", nil)
	}
	if strings.TrimSpace(r.OrganizationName) == "" {
		return apperrors.NewValidationError("organization_name is required", nil)
	}
	return nil
}

// UpdateCampaignRequest payload; all fields optional.
type UpdateCampaignRequest struct {
	CampaignName     *string `json:"campaign_name"`
	OrganizationName *string `json:"organization_name"`
	AssignedToID     *string `json:"assignedToId"`
	Active           *bool   `json:"active"`
}

// Validate rejects blank values on provided fields.
func (r *UpdateCampaignRequest) Validate() error {
	if r.CampaignName != nil && strings.TrimSpace(*r.CampaignName) == "" {
		return apperrors.NewValidationError("campaign_name must not be empty", nil)
	}
	if r.OrganizationName != nil && strings.TrimSpace(*r.OrganizationName) == "" {
		return apperrors.NewValidationError("organization_name must not be empty", nil)
	}
	return nil
}

// CampaignStatusRequest payload for the status flip endpoint.
type CampaignStatusRequest struct {
	Active *bool `json:"active"`
}

// Validate requires the flag.
func (r *CampaignStatusRequest) Validate() error {
	if r.Active == nil {
		return apperrors.NewValidationError("active is required", nil)
	}
	return nil
}

// CampaignResponse is the API shape for a campaign.
type CampaignResponse struct {
	ID               string    `json:"id"`
	CampaignName     string    `json:"campaign_name"`
	OrganizationName string    `json:"organization_name"`
	UniqueLink       string    `json:"uniqueLink"`
	Active           bool      `json:"active"`
	ClickCount       int64     `json:"click_count"`
	AssignedToID     *string   `json:"assignedToId"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewCampaignResponse maps the domain row.
func NewCampaignResponse(c *domain.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:               c.ID,
		CampaignName:     c.Name,
		OrganizationName: c.Organization,
		UniqueLink:       c.UniqueLink,
		Active:           c.Active,
		ClickCount:       c.ClickCount,
		AssignedToID:     c.AssignedToID,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
