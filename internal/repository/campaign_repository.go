package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manyinyire/Outleads-sub001/internal/crud"
	"github.com/manyinyire/Outleads-sub001/internal/domain"
)

const campaignColumns = `id, name, organization, unique_link, active, click_count, assigned_to, created_at, updated_at`

// CampaignRepository encapsulates campaign persistence.
type CampaignRepository interface {
	crud.Store[domain.Campaign]
	GetByLink(ctx context.Context, link string) (*domain.Campaign, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.Campaign, error)
	IncrementClicks(ctx context.Context, id string) error
}

type campaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository instantiates the repository.
func NewCampaignRepository(pool *pgxpool.Pool) CampaignRepository {
	return &campaignRepository{pool: pool}
}

func (r *campaignRepository) List(ctx context.Context, q crud.ListQuery) ([]domain.Campaign, int64, error) {
	b := &queryBuilder{}
	b.applySearch(q.Search, []string{"name", "organization"})
	b.applyFilters(q.Filters, map[string]string{
		"active":      "active",
		"assigned_to": "assigned_to",
	})

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM campaigns"+b.whereClause(), b.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + campaignColumns + " FROM campaigns" + b.whereClause() +
		orderClause(q, map[string]string{
			"name":        "name",
			"click_count": "click_count",
			"created_at":  "created_at",
		}, "created_at DESC") + limitOffset(q)

	rows, err := r.pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	campaigns, err := scanCampaigns(rows)
	if err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	return r.fetchSingle(ctx, "SELECT "+campaignColumns+" FROM campaigns WHERE id=$1", id)
}

func (r *campaignRepository) GetByLink(ctx context.Context, link string) (*domain.Campaign, error) {
	return r.fetchSingle(ctx, "SELECT "+campaignColumns+" FROM campaigns WHERE unique_link=$1", link)
}

func (r *campaignRepository) Insert(ctx context.Context, campaign *domain.Campaign) error {
	const query = `
        INSERT INTO campaigns (name, organization, unique_link, active, assigned_to)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, click_count, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		campaign.Name,
		campaign.Organization,
		campaign.UniqueLink,
		campaign.Active,
		campaign.AssignedToID,
	).Scan(&campaign.ID, &campaign.ClickCount, &campaign.CreatedAt, &campaign.UpdatedAt)
}

func (r *campaignRepository) Save(ctx context.Context, campaign *domain.Campaign) error {
	const query = `
        UPDATE campaigns SET name=$1, organization=$2, active=$3, assigned_to=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		campaign.Name,
		campaign.Organization,
		campaign.Active,
		campaign.AssignedToID,
		campaign.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *campaignRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SetActive flips the active flag and returns the updated row.
func (r *campaignRepository) SetActive(ctx context.Context, id string, active bool) (*domain.Campaign, error) {
	query := `UPDATE campaigns SET active=$1, updated_at=NOW() WHERE id=$2 RETURNING ` + campaignColumns
	var campaign domain.Campaign
	if err := r.pool.QueryRow(ctx, query, active, id).Scan(
		&campaign.ID,
		&campaign.Name,
		&campaign.Organization,
		&campaign.UniqueLink,
		&campaign.Active,
		&campaign.ClickCount,
		&campaign.AssignedToID,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &campaign, nil
}

// IncrementClicks bumps the counter in a single atomic statement.
func (r *campaignRepository) IncrementClicks(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET click_count = click_count + 1, updated_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *campaignRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Campaign, error) {
	var campaign domain.Campaign
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&campaign.ID,
		&campaign.Name,
		&campaign.Organization,
		&campaign.UniqueLink,
		&campaign.Active,
		&campaign.ClickCount,
		&campaign.AssignedToID,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &campaign, nil
}

func scanCampaigns(rows pgx.Rows) ([]domain.Campaign, error) {
	var result []domain.Campaign
	for rows.Next() {
		var campaign domain.Campaign
		if err := rows.Scan(
			&campaign.ID,
			&campaign.Name,
			&campaign.Organization,
			&campaign.UniqueLink,
			&campaign.Active,
			&campaign.ClickCount,
			&campaign.AssignedToID,
			&campaign.CreatedAt,
			&campaign.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, campaign)
	}
	return result, rows.Err()
}
