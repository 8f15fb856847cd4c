package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/manyinyire/Outleads-sub001/internal/api/dto"
	"github.com/manyinyire/Outleads-sub001/internal/crud"
	"github.com/manyinyire/Outleads-sub001/internal/domain"
	"github.com/manyinyire/Outleads-sub001/internal/repository"
	"github.com/manyinyire/Outleads-sub001/internal/service"
	apperrors "github.com/manyinyire/Outleads-sub001/pkg/util"
)

// UserHandler wires the user collection plus the approval workflow and the
// CSV export. Accounts are created through onboarding, never through POST
// on the collection.
type UserHandler struct {
	crud *crud.Handlers[domain.User]
	svc  *service.UserService
}

// NewUserHandler constructs the handler.
func NewUserHandler(repo repository.UserRepository, svc *service.UserService) *UserHandler {
	h := &UserHandler{svc: svc}
	h.crud = crud.New(crud.Config[domain.User]{
		EntityName:   "user",
		Store:        repo,
		FilterFields: []string{"role", "status", "sbu"},
		Present: func(row *domain.User) any {
			return dto.NewUserResponse(row)
		},
		DecodeUpdate: func(c *fiber.Ctx, row *domain.User) error {
			var req dto.UpdateUserRequest
			if err := c.BodyParser(&req); err != nil {
				return apperrors.NewValidationError("invalid payload", nil)
			}
			if err := req.Validate(); err != nil {
				return err
			}
			if req.FullName != nil {
				row.FullName = *req.FullName
			}
			if req.Role != nil {
				row.Role = domain.Role(*req.Role)
			}
			if req.SBU != nil {
				row.SBU = req.SBU
			}
			return nil
		},
	})
	return h
}

func (h *UserHandler) List(c *fiber.Ctx) error   { return h.crud.List(c) }
func (h *UserHandler) Get(c *fiber.Ctx) error    { return h.crud.Get(c) }
func (h *UserHandler) Update(c *fiber.Ctx) error { return h.crud.Update(c) }
func (h *UserHandler) Delete(c *fiber.Ctx) error { return h.crud.Delete(c) }

// Approve handles POST /api/users/:id/approve, moving a PENDING account to
// APPROVED and minting its registration token.
func (h *UserHandler) Approve(c *fiber.Ctx) error {
	user, err := h.svc.Approve(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Reject handles POST /api/users/:id/reject.
func (h *UserHandler) Reject(c *fiber.Ctx) error {
	user, err := h.svc.Reject(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Export handles GET /api/users/export, streaming the full account list as
// a CSV attachment.
func (h *UserHandler) Export(c *fiber.Ctx) error {
	data, filename, err := h.svc.ExportCSV(c.UserContext())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
