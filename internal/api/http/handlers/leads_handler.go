package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/manyinyire/Outleads-sub001/internal/api/dto"
	"github.com/manyinyire/Outleads-sub001/internal/auth"
	"github.com/manyinyire/Outleads-sub001/internal/crud"
	"github.com/manyinyire/Outleads-sub001/internal/domain"
	"github.com/manyinyire/Outleads-sub001/internal/repository"
	"github.com/manyinyire/Outleads-sub001/internal/service"
	apperrors "github.com/manyinyire/Outleads-sub001/pkg/util"
)

// LeadHandler wires the lead collection plus the public capture endpoint,
// batch assignment and the disposition workflow.
type LeadHandler struct {
	crud *crud.Handlers[domain.Lead]
	svc  *service.LeadService
}

// NewLeadHandler constructs the handler. Leads are never created through the
// generic collection; they enter via Capture.
func NewLeadHandler(repo repository.LeadRepository, svc *service.LeadService) *LeadHandler {
	h := &LeadHandler{svc: svc}
	h.crud = crud.New(crud.Config[domain.Lead]{
		EntityName:   "lead",
		Store:        repo,
		FilterFields: []string{"pool_id", "campaign_id", "assigned_to", "sector", "unassigned"},
		Present: func(row *domain.Lead) any {
			return dto.NewLeadResponse(row)
		},
		DecodeUpdate: func(c *fiber.Ctx, row *domain.Lead) error {
			var req dto.UpdateLeadRequest
			if err := c.BodyParser(&req); err != nil {
				return apperrors.NewValidationError("invalid payload", nil)
			}
			if err := req.Validate(); err != nil {
				return err
			}
			if req.FullName != nil {
				row.FullName = *req.FullName
			}
			if req.Phone != nil {
				row.Phone = *req.Phone
			}
			if req.Email != nil {
				row.Email = req.Email
			}
			if req.Sector != nil {
				row.Sector = req.Sector
			}
			if req.Products != nil {
				row.Products = req.Products
			}
			if req.PoolID != nil {
				row.PoolID = req.PoolID
			}
			return nil
		},
	})
	return h
}

func (h *LeadHandler) List(c *fiber.Ctx) error   { return h.crud.List(c) }
func (h *LeadHandler) Get(c *fiber.Ctx) error    { return h.crud.Get(c) }
func (h *LeadHandler) Update(c *fiber.Ctx) error { return h.crud.Update(c) }
func (h *LeadHandler) Delete(c *fiber.Ctx) error { return h.crud.Delete(c) }

// Capture handles POST /api/leads, the unauthenticated public submission.
func (h *LeadHandler) Capture(c *fiber.Ctx) error {
	var req dto.CaptureLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	lead, err := h.svc.Capture(c.UserContext(), service.CaptureInput{
		FullName:     req.FullName,
		Phone:        req.Phone,
		Email:        req.Email,
		Sector:       req.Sector,
		Products:     req.Products,
		CampaignLink: req.CampaignLink,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewLeadResponse(lead)})
}

// Assign handles POST /api/leads/assign, all-or-nothing batch distribution.
func (h *LeadHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignLeadsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	principal, _ := auth.PrincipalFromContext(c)
	actorID := ""
	if principal != nil {
		actorID = principal.User.ID
	}

	assigned, err := h.svc.Distribute(c.UserContext(), req.PoolID, req.AgentID, req.LeadIDs, actorID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"assigned": assigned}})
}

// Disposition handles PATCH /api/leads/:id/disposition.
func (h *LeadHandler) Disposition(c *fiber.Ctx) error {
	var req dto.DispositionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	principal, _ := auth.PrincipalFromContext(c)
	actorID := ""
	if principal != nil {
		actorID = principal.User.ID
	}

	lead, err := h.svc.UpdateDisposition(c.UserContext(), c.Params("id"), service.DispositionInput{
		FirstID:  req.FirstDispositionID,
		SecondID: req.SecondDispositionID,
		ThirdID:  req.ThirdDispositionID,
	}, actorID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeadResponse(lead)})
}

// History handles GET /api/leads/:id/disposition-history.
func (h *LeadHandler) History(c *fiber.Ctx) error {
	entries, err := h.svc.DispositionHistory(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	out := make([]dto.DispositionHistoryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, dto.NewDispositionHistoryResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}
