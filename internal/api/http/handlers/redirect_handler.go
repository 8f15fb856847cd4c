package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/manyinyire/Outleads-sub001/internal/service"
)

// RedirectHandler serves public campaign links: resolve the token, count the
// click once per visitor per day, then bounce to the landing page.
type RedirectHandler struct {
	svc    *service.CampaignService
	logger *zap.Logger
}

// NewRedirectHandler constructs the handler.
func NewRedirectHandler(svc *service.CampaignService, logger *zap.Logger) *RedirectHandler {
	return &RedirectHandler{svc: svc, logger: logger}
}

// Track handles GET /api/campaign/:link. Unknown or inactive links still
// redirect to the default landing page so shared links never dead-end.
func (h *RedirectHandler) Track(c *fiber.Ctx) error {
	campaign, err := h.svc.ResolveLink(c.UserContext(), c.Params("link"))
	if err != nil || !campaign.Active {
		return c.Redirect(h.svc.DefaultURL(), http.StatusFound)
	}

	cookieName := "cmp_" + campaign.ID
	if c.Cookies(cookieName) == "" {
		if err := h.svc.TrackClick(c.UserContext(), campaign); err != nil {
			// Counting must never block the visitor.
			h.logger.Warn("click count failed",
				zap.String("campaign_id", campaign.ID),
				zap.Error(err))
		} else {
			c.Cookie(&fiber.Cookie{
				Name:     cookieName,
				Value:    "1",
				Expires:  time.Now().Add(24 * time.Hour),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
	}

	return c.Redirect(h.svc.RedirectURL(campaign), http.StatusFound)
}
