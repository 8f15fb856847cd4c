package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manyinyire/Outleads-sub001/internal/domain"
)

// RolePermissionRepository manages role-permission rows.
type RolePermissionRepository interface {
	ListByRole(ctx context.Context, role domain.Role) ([]domain.RolePermission, error)
	Replace(ctx context.Context, role domain.Role, permissions []string) ([]domain.RolePermission, error)
}

type rolePermissionRepository struct {
	pool *pgxpool.Pool
}

// NewRolePermissionRepository instantiates the repository.
func NewRolePermissionRepository(pool *pgxpool.Pool) RolePermissionRepository {
	return &rolePermissionRepository{pool: pool}
}

func (r *rolePermissionRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.RolePermission, error) {
	const query = `
        SELECT id, role, permission, created_at
        FROM role_permissions WHERE role=$1 ORDER BY permission`

	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RolePermission
	for rows.Next() {
		var rp domain.RolePermission
		if err := rows.Scan(&rp.ID, &rp.Role, &rp.Permission, &rp.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, rp)
	}
	return result, rows.Err()
}

// Replace swaps the role's permission set in one transaction: delete then
// recreate, never an incremental patch.
func (r *rolePermissionRepository) Replace(ctx context.Context, role domain.Role, permissions []string) ([]domain.RolePermission, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role=$1`, role); err != nil {
		return nil, err
	}

	result := make([]domain.RolePermission, 0, len(permissions))
	for _, perm := range permissions {
		var rp domain.RolePermission
		if err := tx.QueryRow(ctx,
			`INSERT INTO role_permissions (role, permission) VALUES ($1,$2) RETURNING id, role, permission, created_at`,
			role, perm,
		).Scan(&rp.ID, &rp.Role, &rp.Permission, &rp.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, rp)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return result, nil
}
