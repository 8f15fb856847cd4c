package dto

import (
	"strings"
	"time"

	"github.com/manyinyire/Outleads-sub001/internal/domain"
	apperrors "github.com/manyinyire/Outleads-sub001/pkg/util"
)

// CaptureLeadRequest is the public submission payload.
type CaptureLeadRequest struct {
	FullName     string   `json:"full_name"`
	Phone        string   `json:"phone"`
	Email        *string  `json:"email"`
	Sector       *string  `json:"sector"`
	Products     []string `json:"products"`
	CampaignLink string   `json:"campaign_link"`
}

// Validate checks required contact fields.
func (r *CaptureLeadRequest) Validate() error {
	if strings.TrimSpace(r.FullName) == "" {
		return apperrors.NewValidationError("full_name is required", nil)
	}
	if strings.TrimSpace(r.Phone) == "" {
		return apperrors.NewValidationError("phone is required", nil)
	}
	return nil
}

// UpdateLeadRequest payload; all fields optional.
type UpdateLeadRequest struct {
	FullName *string  `json:"full_name"`
	Phone    *string  `json:"phone"`
	Email    *string  `json:"email"`
	Sector   *string  `json:"sector"`
	Products []string `json:"products"`
	PoolID   *string  `json:"pool_id"`
}

// Validate rejects blank values on provided fields.
func (r *UpdateLeadRequest) Validate() error {
	if r.FullName != nil && strings.TrimSpace(*r.FullName) == "" {
		return apperrors.NewValidationError("full_name must not be empty", nil)
	}
	if r.Phone != nil && strings.TrimSpace(*r.Phone) == "" {
		return apperrors.NewValidationError("phone must not be empty", nil)
	}
	return nil
}

// AssignLeadsRequest is the batch distribution payload.
type AssignLeadsRequest struct {
	PoolID  string   `json:"pool_id"`
	AgentID string   `json:"agent_id"`
	LeadIDs []string `json:"lead_ids"`
}

// Validate checks the batch shape.
func (r *AssignLeadsRequest) Validate() error {
	if strings.TrimSpace(r.PoolID) == "" {
		return apperrors.NewValidationError("pool_id is required", nil)
	}
	if strings.TrimSpace(r.AgentID) == "" {
		return apperrors.NewValidationError("agent_id is required", nil)
	}
	if len(r.LeadIDs) == 0 {
		return apperrors.NewValidationError("lead_ids is required", nil)
	}
	return nil
}

// DispositionRequest sets a lead's disposition chain.
type DispositionRequest struct {
	FirstDispositionID  *string `json:"first_disposition_id"`
	SecondDispositionID *string `json:"second_disposition_id"`
	ThirdDispositionID  *string `json:"third_disposition_id"`
}

// Validate requires at least one level.
func (r *DispositionRequest) Validate() error {
	if r.FirstDispositionID == nil && r.SecondDispositionID == nil && r.ThirdDispositionID == nil {
		return apperrors.NewValidationError("at least one disposition level is required", nil)
	}
	return nil
}

// LeadResponse is the API shape for a lead.
type LeadResponse struct {
	ID                  string    `json:"id"`
	FullName            string    `json:"full_name"`
	Phone               string    `json:"phone"`
	Email               *string   `json:"email"`
	Sector              *string   `json:"sector"`
	Products            []string  `json:"products"`
	CampaignID          *string   `json:"campaign_id"`
	PoolID              *string   `json:"pool_id"`
	AssignedToID        *string   `json:"assigned_to"`
	FirstDispositionID  *string   `json:"first_disposition_id"`
	SecondDispositionID *string   `json:"second_disposition_id"`
	ThirdDispositionID  *string   `json:"third_disposition_id"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// NewLeadResponse maps the domain row.
func NewLeadResponse(l *domain.Lead) LeadResponse {
	return LeadResponse{
		ID:                  l.ID,
		FullName:            l.FullName,
		Phone:               l.Phone,
		Email:               l.Email,
		Sector:              l.Sector,
		Products:            l.Products,
		CampaignID:          l.CampaignID,
		PoolID:              l.PoolID,
		AssignedToID:        l.AssignedToID,
		FirstDispositionID:  l.FirstDispositionID,
		SecondDispositionID: l.SecondDispositionID,
		ThirdDispositionID:  l.ThirdDispositionID,
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
	}
}

// DispositionHistoryResponse is one audit entry.
type DispositionHistoryResponse struct {
	ID                  string    `json:"id"`
	LeadID              string    `json:"lead_id"`
	FirstDispositionID  *string   `json:"first_disposition_id"`
	SecondDispositionID *string   `json:"second_disposition_id"`
	ThirdDispositionID  *string   `json:"third_disposition_id"`
	ChangedByID         string    `json:"changed_by"`
	CreatedAt           time.Time `json:"created_at"`
}

// NewDispositionHistoryResponse maps the audit row.
func NewDispositionHistoryResponse(h *domain.DispositionHistory) DispositionHistoryResponse {
	return DispositionHistoryResponse{
		ID:                  h.ID,
		LeadID:              h.LeadID,
		FirstDispositionID:  h.FirstDispositionID,
		SecondDispositionID: h.SecondDispositionID,
		ThirdDispositionID:  h.ThirdDispositionID,
		ChangedByID:         h.ChangedByID,
		CreatedAt:           h.CreatedAt,
	}
}
