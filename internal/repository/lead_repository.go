package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manyinyire/Outleads-sub001/internal/crud"
	"github.com/manyinyire/Outleads-sub001/internal/domain"
)

const leadColumns = `id, full_name, phone, email, sector, products, campaign_id, pool_id, assigned_to,
       first_disposition_id, second_disposition_id, third_disposition_id, created_at, updated_at`

// PartialAssignmentError reports a batch assignment where some leads were
// not assignable (wrong pool or already assigned). The batch is rolled back.
type PartialAssignmentError struct {
	Requested  int
	Assignable int
}

func (e *PartialAssignmentError) Error() string {
	return fmt.Sprintf("%d of %d leads are not assignable", e.Requested-e.Assignable, e.Requested)
}

// Offending returns the number of leads that blocked the batch.
func (e *PartialAssignmentError) Offending() int {
	return e.Requested - e.Assignable
}

// LeadRepository encapsulates lead persistence.
type LeadRepository interface {
	crud.Store[domain.Lead]
	AssignBatch(ctx context.Context, poolID, agentID string, leadIDs []string) (int64, error)
	UpdateDisposition(ctx context.Context, leadID string, firstID, secondID, thirdID *string, actorID string) (*domain.Lead, error)
}

type leadRepository struct {
	pool *pgxpool.Pool
}

// NewLeadRepository instantiates the repository.
func NewLeadRepository(pool *pgxpool.Pool) LeadRepository {
	return &leadRepository{pool: pool}
}

func (r *leadRepository) List(ctx context.Context, q crud.ListQuery) ([]domain.Lead, int64, error) {
	b := &queryBuilder{}
	b.applySearch(q.Search, []string{"full_name", "phone", "email"})
	b.applyFilters(q.Filters, map[string]string{
		"pool_id":     "pool_id",
		"campaign_id": "campaign_id",
		"assigned_to": "assigned_to",
		"sector":      "sector",
	})
	if _, ok := q.Filters["unassigned"]; ok {
		b.where("assigned_to IS NULL")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM leads"+b.whereClause(), b.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + leadColumns + " FROM leads" + b.whereClause() +
		orderClause(q, map[string]string{
			"full_name":  "full_name",
			"created_at": "created_at",
			"updated_at": "updated_at",
		}, "created_at DESC") + limitOffset(q)

	rows, err := r.pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	leads, err := scanLeads(rows)
	if err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

func (r *leadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	var lead domain.Lead
	if err := r.pool.QueryRow(ctx, "SELECT "+leadColumns+" FROM leads WHERE id=$1", id).Scan(leadFields(&lead)...); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) Insert(ctx context.Context, lead *domain.Lead) error {
	const query = `
        INSERT INTO leads (full_name, phone, email, sector, products, campaign_id, pool_id, assigned_to)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		lead.FullName,
		lead.Phone,
		lead.Email,
		lead.Sector,
		lead.Products,
		lead.CampaignID,
		lead.PoolID,
		lead.AssignedToID,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
}

func (r *leadRepository) Save(ctx context.Context, lead *domain.Lead) error {
	const query = `
        UPDATE leads SET full_name=$1, phone=$2, email=$3, sector=$4, products=$5,
            pool_id=$6, assigned_to=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		lead.FullName,
		lead.Phone,
		lead.Email,
		lead.Sector,
		lead.Products,
		lead.PoolID,
		lead.AssignedToID,
		lead.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leadRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AssignBatch assigns every given lead to the agent in one conditional
// update: a lead only matches while it belongs to the pool and is still
// unassigned, so concurrent batches cannot double-assign. If any lead does
// not match, the whole batch rolls back.
func (r *leadRepository) AssignBatch(ctx context.Context, poolID, agentID string, leadIDs []string) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        UPDATE leads SET assigned_to=$1, updated_at=NOW()
        WHERE id = ANY($2) AND pool_id=$3 AND assigned_to IS NULL`
	cmd, err := tx.Exec(ctx, query, agentID, leadIDs, poolID)
	if err != nil {
		return 0, err
	}

	affected := cmd.RowsAffected()
	if affected != int64(len(leadIDs)) {
		return 0, &PartialAssignmentError{Requested: len(leadIDs), Assignable: int(affected)}
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return affected, nil
}

// UpdateDisposition sets the three disposition levels and appends the
// immutable history row in the same transaction.
func (r *leadRepository) UpdateDisposition(ctx context.Context, leadID string, firstID, secondID, thirdID *string, actorID string) (*domain.Lead, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const update = `
        UPDATE leads SET first_disposition_id=$1, second_disposition_id=$2, third_disposition_id=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING ` + leadColumns
	var lead domain.Lead
	if err := tx.QueryRow(ctx, update, firstID, secondID, thirdID, leadID).Scan(leadFields(&lead)...); err != nil {
		return nil, err
	}

	const insert = `
        INSERT INTO disposition_history (lead_id, first_disposition_id, second_disposition_id, third_disposition_id, changed_by)
        VALUES ($1,$2,$3,$4,$5)`
	if _, err := tx.Exec(ctx, insert, leadID, firstID, secondID, thirdID, actorID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &lead, nil
}

func leadFields(lead *domain.Lead) []any {
	return []any{
		&lead.ID,
		&lead.FullName,
		&lead.Phone,
		&lead.Email,
		&lead.Sector,
		&lead.Products,
		&lead.CampaignID,
		&lead.PoolID,
		&lead.AssignedToID,
		&lead.FirstDispositionID,
		&lead.SecondDispositionID,
		&lead.ThirdDispositionID,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	}
}

func scanLeads(rows pgx.Rows) ([]domain.Lead, error) {
	var result []domain.Lead
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(leadFields(&lead)...); err != nil {
			return nil, err
		}
		result = append(result, lead)
	}
	return result, rows.Err()
}
