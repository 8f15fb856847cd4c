package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manyinyire/Outleads-sub001/internal/crud"
	"github.com/manyinyire/Outleads-sub001/internal/domain"
)

// FirstDispositionRepository reads the seeded top-level outcomes.
type FirstDispositionRepository interface {
	List(ctx context.Context) ([]domain.FirstDisposition, error)
	GetByID(ctx context.Context, id string) (*domain.FirstDisposition, error)
}

type firstDispositionRepository struct {
	pool *pgxpool.Pool
}

// NewFirstDispositionRepository instantiates the repository.
func NewFirstDispositionRepository(pool *pgxpool.Pool) FirstDispositionRepository {
	return &firstDispositionRepository{pool: pool}
}

func (r *firstDispositionRepository) List(ctx context.Context) ([]domain.FirstDisposition, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM first_dispositions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FirstDisposition
	for rows.Next() {
		var d domain.FirstDisposition
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func (r *firstDispositionRepository) GetByID(ctx context.Context, id string) (*domain.FirstDisposition, error) {
	var d domain.FirstDisposition
	if err := r.pool.QueryRow(ctx, `SELECT id, name FROM first_dispositions WHERE id=$1`, id).
		Scan(&d.ID, &d.Name); err != nil {
		return nil, err
	}
	return &d, nil
}

// SecondDispositionRepository encapsulates second-level persistence.
type SecondDispositionRepository interface {
	crud.Store[domain.SecondDisposition]
}

type secondDispositionRepository struct {
	pool *pgxpool.Pool
}

// NewSecondDispositionRepository instantiates the repository.
func NewSecondDispositionRepository(pool *pgxpool.Pool) SecondDispositionRepository {
	return &secondDispositionRepository{pool: pool}
}

func (r *secondDispositionRepository) List(ctx context.Context, q crud.ListQuery) ([]domain.SecondDisposition, int64, error) {
	b := &queryBuilder{}
	b.applySearch(q.Search, []string{"name"})
	b.applyFilters(q.Filters, map[string]string{"first_id": "first_id"})

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM second_dispositions"+b.whereClause(), b.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT id, name, first_id, created_at, updated_at FROM second_dispositions" + b.whereClause() +
		orderClause(q, map[string]string{"name": "name", "created_at": "created_at"}, "name ASC") +
		limitOffset(q)

	rows, err := r.pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.SecondDisposition
	for rows.Next() {
		var d domain.SecondDisposition
		if err := rows.Scan(&d.ID, &d.Name, &d.FirstID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *secondDispositionRepository) GetByID(ctx context.Context, id string) (*domain.SecondDisposition, error) {
	var d domain.SecondDisposition
	if err := r.pool.QueryRow(ctx,
		`SELECT id, name, first_id, created_at, updated_at FROM second_dispositions WHERE id=$1`, id,
	).Scan(&d.ID, &d.Name, &d.FirstID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *secondDispositionRepository) Insert(ctx context.Context, d *domain.SecondDisposition) error {
	const query = `
        INSERT INTO second_dispositions (name, first_id)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, d.Name, d.FirstID).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *secondDispositionRepository) Save(ctx context.Context, d *domain.SecondDisposition) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE second_dispositions SET name=$1, first_id=$2, updated_at=NOW() WHERE id=$3`,
		d.Name, d.FirstID, d.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *secondDispositionRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM second_dispositions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ThirdDispositionRepository encapsulates third-level persistence.
type ThirdDispositionRepository interface {
	crud.Store[domain.ThirdDisposition]
}

type thirdDispositionRepository struct {
	pool *pgxpool.Pool
}

// NewThirdDispositionRepository instantiates the repository.
func NewThirdDispositionRepository(pool *pgxpool.Pool) ThirdDispositionRepository {
	return &thirdDispositionRepository{pool: pool}
}

func (r *thirdDispositionRepository) List(ctx context.Context, q crud.ListQuery) ([]domain.ThirdDisposition, int64, error) {
	b := &queryBuilder{}
	b.applySearch(q.Search, []string{"name"})
	b.applyFilters(q.Filters, map[string]string{
		"second_id": "second_id",
		"category":  "category",
	})

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM third_dispositions"+b.whereClause(), b.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT id, name, second_id, category, created_at, updated_at FROM third_dispositions" + b.whereClause() +
		orderClause(q, map[string]string{"name": "name", "created_at": "created_at"}, "name ASC") +
		limitOffset(q)

	rows, err := r.pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.ThirdDisposition
	for rows.Next() {
		var d domain.ThirdDisposition
		if err := rows.Scan(&d.ID, &d.Name, &d.SecondID, &d.Category, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *thirdDispositionRepository) GetByID(ctx context.Context, id string) (*domain.ThirdDisposition, error) {
	var d domain.ThirdDisposition
	if err := r.pool.QueryRow(ctx,
		`SELECT id, name, second_id, category, created_at, updated_at FROM third_dispositions WHERE id=$1`, id,
	).Scan(&d.ID, &d.Name, &d.SecondID, &d.Category, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *thirdDispositionRepository) Insert(ctx context.Context, d *domain.ThirdDisposition) error {
	const query = `
        INSERT INTO third_dispositions (name, second_id, category)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, d.Name, d.SecondID, d.Category).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *thirdDispositionRepository) Save(ctx context.Context, d *domain.ThirdDisposition) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE third_dispositions SET name=$1, second_id=$2, category=$3, updated_at=NOW() WHERE id=$4`,
		d.Name, d.SecondID, d.Category, d.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *thirdDispositionRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM third_dispositions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
