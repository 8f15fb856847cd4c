package service

import (
	"context"
	"strings"

	"github.com/manyinyire/Outleads-sub001/internal/domain"
	"github.com/manyinyire/Outleads-sub001/internal/repository"
	apperrors "github.com/manyinyire/Outleads-sub001/pkg/util"
)

// PermissionService manages role-permission sets.
type PermissionService struct {
	perms repository.RolePermissionRepository
}

// NewPermissionService builds the service.
func NewPermissionService(perms repository.RolePermissionRepository) *PermissionService {
	return &PermissionService{perms: perms}
}

// Get lists the permission set for a role.
func (s *PermissionService) Get(ctx context.Context, role string) ([]domain.RolePermission, error) {
	r, err := parseRole(role)
	if err != nil {
		return nil, err
	}
	result, err := s.perms.ListByRole(ctx, r)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// Replace swaps the role's permission set wholesale.
func (s *PermissionService) Replace(ctx context.Context, role string, permissions []string) ([]domain.RolePermission, error) {
	r, err := parseRole(role)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(permissions))
	cleaned := make([]string, 0, len(permissions))
	for _, perm := range permissions {
		perm = strings.TrimSpace(perm)
		if perm == "" {
			return nil, apperrors.NewValidationError("permissions must not be empty", nil)
		}
		if _, ok := seen[perm]; ok {
			continue
		}
		seen[perm] = struct{}{}
		cleaned = append(cleaned, perm)
	}

	result, err := s.perms.Replace(ctx, r, cleaned)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

func parseRole(role string) (domain.Role, error) {
	r := domain.Role(strings.ToUpper(strings.TrimSpace(role)))
	if !domain.ValidRole(r) {
		return "", apperrors.NewValidationError("unknown role", nil)
	}
	return r, nil
}
