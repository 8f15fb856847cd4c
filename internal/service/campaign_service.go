package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/manyinyire/Outleads-sub001/internal/domain"
	"github.com/manyinyire/Outleads-sub001/internal/events"
	"github.com/manyinyire/Outleads-sub001/internal/observability"
	"github.com/manyinyire/Outleads-sub001/internal/persistence"
	"github.com/manyinyire/Outleads-sub001/internal/repository"
)

const linkCacheTTL = 5 * time.Minute

// CampaignService handles link resolution and click tracking for the public
// redirect path, with a Redis cache in front of the campaign lookup.
type CampaignService struct {
	campaigns  repository.CampaignRepository
	redis      *persistence.Redis
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	baseURL    string
}

// NewCampaignService builds the service.
func NewCampaignService(
	campaigns repository.CampaignRepository,
	redis *persistence.Redis,
	dispatcher events.Dispatcher,
	metrics *observability.Metrics,
	logger *zap.Logger,
	publicBaseURL string,
) *CampaignService {
	return &CampaignService{
		campaigns:  campaigns,
		redis:      redis,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
		baseURL:    publicBaseURL,
	}
}

// NewLink generates a shareable campaign link token.
func (s *CampaignService) NewLink() string {
	return uuid.NewString()
}

// DefaultURL is the landing page used when a link is missing or inactive.
func (s *CampaignService) DefaultURL() string {
	return s.baseURL
}

// RedirectURL attaches the campaign id to the landing page.
func (s *CampaignService) RedirectURL(campaign *domain.Campaign) string {
	return s.baseURL + "?campaign=" + campaign.ID
}

// ResolveLink looks up a campaign by its link token, consulting the cache
// first. Cache failures fall through to the database.
func (s *CampaignService) ResolveLink(ctx context.Context, link string) (*domain.Campaign, error) {
	if cached := s.cacheGet(ctx, link); cached != nil {
		return cached, nil
	}

	campaign, err := s.campaigns.GetByLink(ctx, link)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, campaign)
	return campaign, nil
}

// TrackClick increments the click counter in a single atomic statement. The
// counter is at-least-once across clients that lose their dedup cookie.
func (s *CampaignService) TrackClick(ctx context.Context, campaign *domain.Campaign) error {
	if err := s.campaigns.IncrementClicks(ctx, campaign.ID); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.CampaignClicks.Inc()
	}
	s.invalidate(ctx, campaign.UniqueLink)

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventCampaignClicked,
			Timestamp: time.Now(),
			Payload: events.CampaignClickedPayload{
				CampaignID: campaign.ID,
				UniqueLink: campaign.UniqueLink,
			},
		})
	}
	return nil
}

// SetStatus flips the active flag; deactivation is a status flip, never a
// deletion.
func (s *CampaignService) SetStatus(ctx context.Context, id string, active bool) (*domain.Campaign, error) {
	campaign, err := s.campaigns.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, campaign.UniqueLink)
	return campaign, nil
}

// Invalidate drops the cached entry for a campaign, used as a CRUD hook.
func (s *CampaignService) Invalidate(ctx context.Context, campaign *domain.Campaign) {
	s.invalidate(ctx, campaign.UniqueLink)
}

func (s *CampaignService) cacheGet(ctx context.Context, link string) *domain.Campaign {
	if s.redis == nil || s.redis.Client == nil {
		return nil
	}
	raw, err := s.redis.Client.Get(ctx, linkCacheKey(link)).Bytes()
	if err != nil {
		return nil
	}
	var campaign domain.Campaign
	if err := json.Unmarshal(raw, &campaign); err != nil {
		return nil
	}
	return &campaign
}

func (s *CampaignService) cacheSet(ctx context.Context, campaign *domain.Campaign) {
	if s.redis == nil || s.redis.Client == nil {
		return
	}
	raw, err := json.Marshal(campaign)
	if err != nil {
		return
	}
	if err := s.redis.Client.Set(ctx, linkCacheKey(campaign.UniqueLink), raw, linkCacheTTL).Err(); err != nil {
		s.logger.Debug("campaign cache set failed", zap.Error(err))
	}
}

func (s *CampaignService) invalidate(ctx context.Context, link string) {
	if s.redis == nil || s.redis.Client == nil {
		return
	}
	if err := s.redis.Client.Del(ctx, linkCacheKey(link)).Err(); err != nil {
		s.logger.Debug("campaign cache invalidation failed", zap.Error(err))
	}
}

func linkCacheKey(link string) string {
	return "campaign:link:" + link
}
