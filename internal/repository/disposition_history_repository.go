package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manyinyire/Outleads-sub001/internal/domain"
)

// DispositionHistoryRepository reads the append-only disposition audit trail.
// Rows are written inside the lead disposition transaction; there is no
// update or delete path.
type DispositionHistoryRepository interface {
	ListByLead(ctx context.Context, leadID string) ([]domain.DispositionHistory, error)
}

type dispositionHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewDispositionHistoryRepository instantiates the repository.
func NewDispositionHistoryRepository(pool *pgxpool.Pool) DispositionHistoryRepository {
	return &dispositionHistoryRepository{pool: pool}
}

func (r *dispositionHistoryRepository) ListByLead(ctx context.Context, leadID string) ([]domain.DispositionHistory, error) {
	const query = `
        SELECT id, lead_id, first_disposition_id, second_disposition_id, third_disposition_id, changed_by, created_at
        FROM disposition_history
        WHERE lead_id=$1
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DispositionHistory
	for rows.Next() {
		var entry domain.DispositionHistory
		if err := rows.Scan(
			&entry.ID,
			&entry.LeadID,
			&entry.FirstDispositionID,
			&entry.SecondDispositionID,
			&entry.ThirdDispositionID,
			&entry.ChangedByID,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
