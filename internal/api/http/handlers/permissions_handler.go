package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/manyinyire/Outleads-sub001/internal/api/dto"
	"github.com/manyinyire/Outleads-sub001/internal/domain"
	"github.com/manyinyire/Outleads-sub001/internal/service"
	apperrors "github.com/manyinyire/Outleads-sub001/pkg/util"
)

// PermissionHandler exposes per-role permission sets.
type PermissionHandler struct {
	svc *service.PermissionService
}

// NewPermissionHandler constructs the handler.
func NewPermissionHandler(svc *service.PermissionService) *PermissionHandler {
	return &PermissionHandler{svc: svc}
}

// Get handles GET /api/permissions/:role.
func (h *PermissionHandler) Get(c *fiber.Ctx) error {
	role := c.Params("role")
	perms, err := h.svc.Get(c.UserContext(), role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": presentPermissions(role, perms)})
}

// Replace handles PUT /api/permissions/:role, swapping the role's full set.
func (h *PermissionHandler) Replace(c *fiber.Ctx) error {
	var req dto.RolePermissionsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	role := c.Params("role")
	perms, err := h.svc.Replace(c.UserContext(), role, req.Permissions)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": presentPermissions(role, perms)})
}

func presentPermissions(role string, perms []domain.RolePermission) fiber.Map {
	names := make([]string, 0, len(perms))
	for _, p := range perms {
		names = append(names, p.Permission)
	}
	return fiber.Map{"role": role, "permissions": names}
}
