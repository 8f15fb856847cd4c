package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manyinyire/Outleads-sub001/internal/crud"
	"github.com/manyinyire/Outleads-sub001/internal/domain"
)

// LeadPoolRepository encapsulates pool persistence.
type LeadPoolRepository interface {
	crud.Store[domain.LeadPool]
}

type leadPoolRepository struct {
	pool *pgxpool.Pool
}

// NewLeadPoolRepository instantiates the repository.
func NewLeadPoolRepository(pool *pgxpool.Pool) LeadPoolRepository {
	return &leadPoolRepository{pool: pool}
}

func (r *leadPoolRepository) List(ctx context.Context, q crud.ListQuery) ([]domain.LeadPool, int64, error) {
	b := &queryBuilder{}
	b.applySearch(q.Search, []string{"name"})

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM lead_pools"+b.whereClause(), b.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT id, name, description, created_at, updated_at FROM lead_pools" + b.whereClause() +
		orderClause(q, map[string]string{
			"name":       "name",
			"created_at": "created_at",
		}, "name ASC") + limitOffset(q)

	rows, err := r.pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.LeadPool
	for rows.Next() {
		var pool domain.LeadPool
		if err := rows.Scan(&pool.ID, &pool.Name, &pool.Description, &pool.CreatedAt, &pool.UpdatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, pool)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *leadPoolRepository) GetByID(ctx context.Context, id string) (*domain.LeadPool, error) {
	var pool domain.LeadPool
	if err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at FROM lead_pools WHERE id=$1`, id,
	).Scan(&pool.ID, &pool.Name, &pool.Description, &pool.CreatedAt, &pool.UpdatedAt); err != nil {
		return nil, err
	}
	return &pool, nil
}

func (r *leadPoolRepository) Insert(ctx context.Context, pool *domain.LeadPool) error {
	const query = `
        INSERT INTO lead_pools (name, description)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, pool.Name, pool.Description).
		Scan(&pool.ID, &pool.CreatedAt, &pool.UpdatedAt)
}

func (r *leadPoolRepository) Save(ctx context.Context, pool *domain.LeadPool) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE lead_pools SET name=$1, description=$2, updated_at=NOW() WHERE id=$3`,
		pool.Name, pool.Description, pool.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leadPoolRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM lead_pools WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
