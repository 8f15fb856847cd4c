package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/manyinyire/Outleads-sub001/internal/api/dto"
	"github.com/manyinyire/Outleads-sub001/internal/crud"
	"github.com/manyinyire/Outleads-sub001/internal/domain"
	"github.com/manyinyire/Outleads-sub001/internal/repository"
	apperrors "github.com/manyinyire/Outleads-sub001/pkg/util"
)

// DispositionHandler wires the three disposition levels. The first level is
// seeded and read-only; the second and third are user managed.
type DispositionHandler struct {
	firsts  repository.FirstDispositionRepository
	seconds *crud.Handlers[domain.SecondDisposition]
	thirds  *crud.Handlers[domain.ThirdDisposition]
}

// NewDispositionHandler constructs the handler.
func NewDispositionHandler(
	firsts repository.FirstDispositionRepository,
	seconds repository.SecondDispositionRepository,
	thirds repository.ThirdDispositionRepository,
) *DispositionHandler {
	h := &DispositionHandler{firsts: firsts}

	h.seconds = crud.New(crud.Config[domain.SecondDisposition]{
		EntityName:   "second disposition",
		Store:        seconds,
		FilterFields: []string{"first_id"},
		Present: func(row *domain.SecondDisposition) any {
			return fiber.Map{
				"id":         row.ID,
				"name":       row.Name,
				"first_id":   row.FirstID,
				"created_at": row.CreatedAt,
				"updated_at": row.UpdatedAt,
			}
		},
		DecodeCreate: func(c *fiber.Ctx) (*domain.SecondDisposition, error) {
			var req dto.CreateSecondDispositionRequest
			if err := c.BodyParser(&req); err != nil {
				return nil, apperrors.NewValidationError("invalid payload", nil)
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			return &domain.SecondDisposition{Name: req.Name, FirstID: req.FirstID}, nil
		},
		DecodeUpdate: func(c *fiber.Ctx, row *domain.SecondDisposition) error {
			var req dto.UpdateSecondDispositionRequest
			if err := c.BodyParser(&req); err != nil {
				return apperrors.NewValidationError("invalid payload", nil)
			}
			if err := req.Validate(); err != nil {
				return err
			}
			if req.Name != nil {
				row.Name = *req.Name
			}
			if req.FirstID != nil {
				row.FirstID = *req.FirstID
			}
			return nil
		},
	})

	h.thirds = crud.New(crud.Config[domain.ThirdDisposition]{
		EntityName:   "third disposition",
		Store:        thirds,
		FilterFields: []string{"second_id", "category"},
		Present: func(row *domain.ThirdDisposition) any {
			return fiber.Map{
				"id":         row.ID,
				"name":       row.Name,
				"second_id":  row.SecondID,
				"category":   row.Category,
				"created_at": row.CreatedAt,
				"updated_at": row.UpdatedAt,
			}
		},
		DecodeCreate: func(c *fiber.Ctx) (*domain.ThirdDisposition, error) {
			var req dto.CreateThirdDispositionRequest
			if err := c.BodyParser(&req); err != nil {
				return nil, apperrors.NewValidationError("invalid payload", nil)
			}
			if err := req.Validate(); err != nil {
				return nil, err
			}
			return &domain.ThirdDisposition{
				Name:     req.Name,
				SecondID: req.SecondID,
				Category: domain.DispositionCategory(req.Category),
			}, nil
		},
		DecodeUpdate: func(c *fiber.Ctx, row *domain.ThirdDisposition) error {
			var req dto.UpdateThirdDispositionRequest
			if err := c.BodyParser(&req); err != nil {
				return apperrors.NewValidationError("invalid payload", nil)
			}
			if err := req.Validate(); err != nil {
				return err
			}
			if req.Name != nil {
				row.Name = *req.Name
			}
			if req.SecondID != nil {
				row.SecondID = *req.SecondID
			}
			if req.Category != nil {
				row.Category = domain.DispositionCategory(*req.Category)
			}
			return nil
		},
	})

	return h
}

// ListFirst handles GET /api/dispositions/first. The seeded set is small, so
// it is returned unpaginated.
func (h *DispositionHandler) ListFirst(c *fiber.Ctx) error {
	rows, err := h.firsts.List(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	items := make([]fiber.Map, 0, len(rows))
	for _, row := range rows {
		items = append(items, fiber.Map{"id": row.ID, "name": row.Name})
	}
	return c.JSON(fiber.Map{"data": items})
}

func (h *DispositionHandler) ListSecond(c *fiber.Ctx) error   { return h.seconds.List(c) }
func (h *DispositionHandler) GetSecond(c *fiber.Ctx) error    { return h.seconds.Get(c) }
func (h *DispositionHandler) CreateSecond(c *fiber.Ctx) error { return h.seconds.Create(c) }
func (h *DispositionHandler) UpdateSecond(c *fiber.Ctx) error { return h.seconds.Update(c) }
func (h *DispositionHandler) DeleteSecond(c *fiber.Ctx) error { return h.seconds.Delete(c) }

func (h *DispositionHandler) ListThird(c *fiber.Ctx) error   { return h.thirds.List(c) }
func (h *DispositionHandler) GetThird(c *fiber.Ctx) error    { return h.thirds.Get(c) }
func (h *DispositionHandler) CreateThird(c *fiber.Ctx) error { return h.thirds.Create(c) }
func (h *DispositionHandler) UpdateThird(c *fiber.Ctx) error { return h.thirds.Update(c) }
func (h *DispositionHandler) DeleteThird(c *fiber.Ctx) error { return h.thirds.Delete(c) }
