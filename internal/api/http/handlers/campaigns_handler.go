package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/manyinyire/Outleads-sub001/internal/api/dto"
	"github.com/manyinyire/Outleads-sub001/internal/crud"
	"github.com/manyinyire/Outleads-sub001/internal/domain"
	"github.com/manyinyire/Outleads-sub001/internal/repository"
	"github.com/manyinyire/Outleads-sub001/internal/service"
	apperrors "github.com/manyinyire/Outleads-sub001/pkg/util"
)

// CampaignHandler wires the campaign collection. Creation mints the unique
// tracking link; mutations invalidate the redirect cache.
type CampaignHandler struct {
	crud *crud.Handlers[domain.Campaign]
	svc  *service.CampaignService
}

// NewCampaignHandler constructs the handler.
func NewCampaignHandler(repo repository.CampaignRepository, svc *service.CampaignService) *CampaignHandler {
	h := &CampaignHandler{svc: svc}
	h.crud = crud.New(crud.Config[domain.Campaign]{
		EntityName:   "campaign",
		Store:        repo,
		FilterFields: []string{"active", "assigned_to"},
		Present: func(row *domain.Campaign) any {
			return dto.NewCampaignResponse(row)
		},
		DecodeCreate: func(c *fiber.Ctx) (*domain.Campaign, error) {
			var req dto.CreateCampaignRequest
			if err := c.BodyParser(&req); err != nil {
				return nil, apperrors.NewValidationError("invalid payload", nil)
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			return &domain.Campaign{
				Name:         req.CampaignName,
				Organization: req.OrganizationName,
				UniqueLink:   svc.NewLink(),
				Active:       true,
				AssignedToID: req.AssignedToID,
			}, nil
		},
		DecodeUpdate: func(c *fiber.Ctx, row *domain.Campaign) error {
			var req dto.UpdateCampaignRequest
			if err := c.BodyParser(&req); err != nil {
				return apperrors.NewValidationError("invalid payload", nil)
			}
			if err := req.Validate(); err != nil {
				return err
			}
			if req.CampaignName != nil {
				row.Name = *req.CampaignName
			}
			if req.OrganizationName != nil {
				row.Organization = *req.OrganizationName
			}
			if req.AssignedToID != nil {
				row.AssignedToID = req.AssignedToID
			}
			if req.Active != nil {
				row.Active = *req.Active
			}
			return nil
		},
		AfterUpdate: svc.Invalidate,
		AfterDelete: svc.Invalidate,
	})
	return h
}

func (h *CampaignHandler) List(c *fiber.Ctx) error   { return h.crud.List(c) }
func (h *CampaignHandler) Get(c *fiber.Ctx) error    { return h.crud.Get(c) }
func (h *CampaignHandler) Create(c *fiber.Ctx) error { return h.crud.Create(c) }
func (h *CampaignHandler) Update(c *fiber.Ctx) error { return h.crud.Update(c) }
func (h *CampaignHandler) Delete(c *fiber.Ctx) error { return h.crud.Delete(c) }

// SetStatus handles PATCH /api/campaigns/:id/status.
func (h *CampaignHandler) SetStatus(c *fiber.Ctx) error {
	var req dto.CampaignStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	campaign, err := h.svc.SetStatus(c.UserContext(), c.Params("id"), *req.Active)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCampaignResponse(campaign)})
}
