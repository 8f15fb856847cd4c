package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/manyinyire/Outleads-sub001/internal/domain"
	"github.com/manyinyire/Outleads-sub001/internal/events"
	"github.com/manyinyire/Outleads-sub001/internal/observability"
	"github.com/manyinyire/Outleads-sub001/internal/repository"
	apperrors "github.com/manyinyire/Outleads-sub001/pkg/util"
)

// LeadService handles public capture, pool distribution and disposition
// workflows.
type LeadService struct {
	leads      repository.LeadRepository
	pools      repository.LeadPoolRepository
	users      repository.UserRepository
	campaigns  repository.CampaignRepository
	seconds    repository.SecondDispositionRepository
	thirds     repository.ThirdDispositionRepository
	history    repository.DispositionHistoryRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
}

// LeadDependencies bundles repository requirements for the lead service.
type LeadDependencies struct {
	LeadRepo        repository.LeadRepository
	PoolRepo        repository.LeadPoolRepository
	UserRepo        repository.UserRepository
	CampaignRepo    repository.CampaignRepository
	SecondDispoRepo repository.SecondDispositionRepository
	ThirdDispoRepo  repository.ThirdDispositionRepository
	HistoryRepo     repository.DispositionHistoryRepository
}

// NewLeadService builds the service.
func NewLeadService(deps LeadDependencies, dispatcher events.Dispatcher, metrics *observability.Metrics) *LeadService {
	return &LeadService{
		leads:      deps.LeadRepo,
		pools:      deps.PoolRepo,
		users:      deps.UserRepo,
		campaigns:  deps.CampaignRepo,
		seconds:    deps.SecondDispoRepo,
		thirds:     deps.ThirdDispoRepo,
		history:    deps.HistoryRepo,
		dispatcher: dispatcher,
		metrics:    metrics,
	}
}

// CaptureInput carries a public lead submission.
type CaptureInput struct {
	FullName     string
	Phone        string
	Email        *string
	Sector       *string
	Products     []string
	CampaignLink string
	PoolID       *string
}

// Capture records a lead submitted through a public campaign link or a pool
// import. Submissions against inactive or unknown links are rejected.
func (s *LeadService) Capture(ctx context.Context, in CaptureInput) (*domain.Lead, error) {
	lead := &domain.Lead{
		FullName: in.FullName,
		Phone:    in.Phone,
		Email:    in.Email,
		Sector:   in.Sector,
		Products: in.Products,
		PoolID:   in.PoolID,
	}

	if in.CampaignLink != "" {
		campaign, err := s.campaigns.GetByLink(ctx, in.CampaignLink)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("unknown campaign link", nil)
			}
			return nil, apperrors.MapError(err)
		}
		if !campaign.Active {
			return nil, apperrors.NewValidationError("campaign is inactive", nil)
		}
		lead.CampaignID = &campaign.ID
	}

	if err := s.leads.Insert(ctx, lead); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.metrics != nil {
		s.metrics.LeadsCaptured.Inc()
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventLeadCaptured,
			Timestamp: time.Now(),
			Payload: events.LeadCapturedPayload{
				LeadID:     lead.ID,
				CampaignID: lead.CampaignID,
				Phone:      lead.Phone,
			},
		})
	}
	return lead, nil
}

// Distribute assigns a batch of pooled leads to an agent, all or nothing.
// Any offending lead (wrong pool, already assigned) aborts the whole batch.
func (s *LeadService) Distribute(ctx context.Context, poolID, agentID string, leadIDs []string, actorID string) (int64, error) {
	if len(leadIDs) == 0 {
		return 0, apperrors.NewValidationError("lead_ids required", nil)
	}

	if _, err := s.pools.GetByID(ctx, poolID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewNotFound("lead pool", nil)
		}
		return 0, apperrors.MapError(err)
	}

	agent, err := s.users.GetByID(ctx, agentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewValidationError("target agent not found", nil)
		}
		return 0, apperrors.MapError(err)
	}
	if agent.Role != domain.RoleAgent {
		return 0, apperrors.NewValidationError("target user is not an agent", nil)
	}
	if agent.Status != domain.UserStatusActive {
		return 0, apperrors.NewValidationError("target agent is not active", nil)
	}

	assigned, err := s.leads.AssignBatch(ctx, poolID, agentID, leadIDs)
	if err != nil {
		var partial *repository.PartialAssignmentError
		if errors.As(err, &partial) {
			return 0, apperrors.NewValidationError(
				"batch contains leads that cannot be assigned",
				map[string]any{"offending_leads": partial.Offending()},
			)
		}
		return 0, apperrors.MapError(err)
	}

	if s.metrics != nil {
		s.metrics.LeadsAssigned.Add(float64(assigned))
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventLeadsAssigned,
			ActorID:   actorID,
			Timestamp: time.Now(),
			Payload: events.LeadsAssignedPayload{
				PoolID:  poolID,
				AgentID: agentID,
				LeadIDs: leadIDs,
			},
		})
	}
	return assigned, nil
}

// DispositionInput carries a disposition change request.
type DispositionInput struct {
	FirstID  *string
	SecondID *string
	ThirdID  *string
}

// UpdateDisposition validates the hierarchy chain, writes the lead change
// and appends the history row in one transaction.
func (s *LeadService) UpdateDisposition(ctx context.Context, leadID string, in DispositionInput, actorID string) (*domain.Lead, error) {
	if in.SecondID != nil {
		second, err := s.seconds.GetByID(ctx, *in.SecondID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("unknown second-level disposition", nil)
			}
			return nil, apperrors.MapError(err)
		}
		if in.FirstID != nil && second.FirstID != *in.FirstID {
			return nil, apperrors.NewValidationError("second-level disposition does not belong to the first level", nil)
		}
		if in.FirstID == nil {
			firstID := second.FirstID
			in.FirstID = &firstID
		}
	}

	if in.ThirdID != nil {
		if in.SecondID == nil {
			return nil, apperrors.NewValidationError("third-level disposition requires a second level", nil)
		}
		third, err := s.thirds.GetByID(ctx, *in.ThirdID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("unknown third-level disposition", nil)
			}
			return nil, apperrors.MapError(err)
		}
		if third.SecondID != *in.SecondID {
			return nil, apperrors.NewValidationError("third-level disposition does not belong to the second level", nil)
		}
	}

	lead, err := s.leads.UpdateDisposition(ctx, leadID, in.FirstID, in.SecondID, in.ThirdID, actorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lead", nil)
		}
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventDispositionChanged,
			ActorID:   actorID,
			Timestamp: time.Now(),
			Payload: events.DispositionChangedPayload{
				LeadID:              lead.ID,
				FirstDispositionID:  lead.FirstDispositionID,
				SecondDispositionID: lead.SecondDispositionID,
				ThirdDispositionID:  lead.ThirdDispositionID,
			},
		})
	}
	return lead, nil
}

// DispositionHistory returns the append-only audit trail for a lead.
func (s *LeadService) DispositionHistory(ctx context.Context, leadID string) ([]domain.DispositionHistory, error) {
	if _, err := s.leads.GetByID(ctx, leadID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lead", nil)
		}
		return nil, apperrors.MapError(err)
	}
	entries, err := s.history.ListByLead(ctx, leadID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}
