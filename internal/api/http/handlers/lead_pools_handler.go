package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/manyinyire/Outleads-sub001/internal/api/dto"
	"github.com/manyinyire/Outleads-sub001/internal/crud"
	"github.com/manyinyire/Outleads-sub001/internal/domain"
	"github.com/manyinyire/Outleads-sub001/internal/repository"
	apperrors "github.com/manyinyire/Outleads-sub001/pkg/util"
)

// LeadPoolHandler wires the pool collection plus the pool membership listing.
type LeadPoolHandler struct {
	crud  *crud.Handlers[domain.LeadPool]
	pools repository.LeadPoolRepository
	leads repository.LeadRepository
}

// NewLeadPoolHandler constructs the handler.
func NewLeadPoolHandler(pools repository.LeadPoolRepository, leads repository.LeadRepository) *LeadPoolHandler {
	h := &LeadPoolHandler{pools: pools, leads: leads}
	h.crud = crud.New(crud.Config[domain.LeadPool]{
		EntityName: "lead pool",
		Store:      pools,
		Present: func(row *domain.LeadPool) any {
			return fiber.Map{
				"id":          row.ID,
				"name":        row.Name,
				"description": row.Description,
				"created_at":  row.CreatedAt,
				"updated_at":  row.UpdatedAt,
			}
		},
		DecodeCreate: func(c *fiber.Ctx) (*domain.LeadPool, error) {
			var req dto.CreatePoolRequest
			if err := c.BodyParser(&req); err != nil {
				return nil, apperrors.NewValidationError("invalid payload", nil)
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			return &domain.LeadPool{Name: req.Name, Description: req.Description}, nil
		},
		DecodeUpdate: func(c *fiber.Ctx, row *domain.LeadPool) error {
			var req dto.UpdatePoolRequest
			if err := c.BodyParser(&req); err != nil {
				return apperrors.NewValidationError("invalid payload", nil)
			}
			if err := req.Validate(); err != nil {
				return err
			}
			if req.Name != nil {
				row.Name = *req.Name
			}
			if req.Description != nil {
				row.Description = req.Description
			}
			return nil
		},
	})
	return h
}

func (h *LeadPoolHandler) List(c *fiber.Ctx) error   { return h.crud.List(c) }
func (h *LeadPoolHandler) Get(c *fiber.Ctx) error    { return h.crud.Get(c) }
func (h *LeadPoolHandler) Create(c *fiber.Ctx) error { return h.crud.Create(c) }
func (h *LeadPoolHandler) Update(c *fiber.Ctx) error { return h.crud.Update(c) }
func (h *LeadPoolHandler) Delete(c *fiber.Ctx) error { return h.crud.Delete(c) }

// Leads handles GET /api/lead-pools/:id/leads, a paginated listing of the
// pool's members. Unknown pools are 404.
func (h *LeadPoolHandler) Leads(c *fiber.Ctx) error {
	poolID := c.Params("id")
	if _, err := h.pools.GetByID(c.UserContext(), poolID); err != nil {
		if apperrors.ToDomainError(err).HTTPStatus == http.StatusNotFound {
			return apperrors.NewNotFound("lead pool", nil)
		}
		return apperrors.MapError(err)
	}

	q := crud.ParseListQuery(c, []string{"assigned_to", "unassigned"})
	if q.Filters == nil {
		q.Filters = make(map[string]string)
	}
	q.Filters["pool_id"] = poolID

	rows, total, err := h.leads.List(c.UserContext(), q)
	if err != nil {
		return apperrors.MapError(err)
	}

	items := make([]dto.LeadResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.NewLeadResponse(&rows[i]))
	}
	return c.JSON(fiber.Map{
		"data": items,
		"meta": crud.NewMeta(total, q.Page, q.Limit),
	})
}
