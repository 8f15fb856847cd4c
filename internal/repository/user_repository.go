package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manyinyire/Outleads-sub001/internal/crud"
	"github.com/manyinyire/Outleads-sub001/internal/domain"
)

const userColumns = `id, full_name, email, password_hash, role, status, sbu,
       registration_token, registration_expires, created_at, updated_at`

// UserRepository defines persistence access for operator accounts.
type UserRepository interface {
	crud.Store[domain.User]
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByRegistrationToken(ctx context.Context, token string) (*domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

// List excludes DELETED rows unless an explicit status filter is given, so
// soft-deleted users stay retrievable without polluting default listings.
func (r *userRepository) List(ctx context.Context, q crud.ListQuery) ([]domain.User, int64, error) {
	b := &queryBuilder{}
	b.applySearch(q.Search, []string{"full_name", "email"})
	b.applyFilters(q.Filters, map[string]string{
		"status": "status",
		"role":   "role",
		"sbu":    "sbu",
	})
	if _, ok := q.Filters["status"]; !ok {
		b.where("status <> 'DELETED'")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users"+b.whereClause(), b.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + userColumns + " FROM users" + b.whereClause() +
		orderClause(q, map[string]string{
			"full_name":  "full_name",
			"email":      "email",
			"created_at": "created_at",
		}, "created_at DESC") + limitOffset(q)

	rows, err := r.pool.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users, err := scanUsers(rows)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// ListAll returns every non-deleted user, used by the CSV export.
func (r *userRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+userColumns+" FROM users WHERE status <> 'DELETED' ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.fetchSingle(ctx, "SELECT "+userColumns+" FROM users WHERE id=$1", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetchSingle(ctx, "SELECT "+userColumns+" FROM users WHERE email=$1 AND status <> 'DELETED'", email)
}

func (r *userRepository) GetByRegistrationToken(ctx context.Context, token string) (*domain.User, error) {
	return r.fetchSingle(ctx, "SELECT "+userColumns+" FROM users WHERE registration_token=$1", token)
}

func (r *userRepository) Insert(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (full_name, email, password_hash, role, status, sbu, registration_token, registration_expires)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.SBU,
		user.RegistrationToken,
		user.RegistrationExpires,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Save(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET full_name=$1, email=$2, password_hash=$3, role=$4, status=$5, sbu=$6,
            registration_token=$7, registration_expires=$8, updated_at=NOW()
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.SBU,
		user.RegistrationToken,
		user.RegistrationExpires,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete soft-deletes by flipping status; the row stays in place.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE users SET status='DELETED', updated_at=NOW() WHERE id=$1 AND status <> 'DELETED'`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Status,
		&user.SBU,
		&user.RegistrationToken,
		&user.RegistrationExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func scanUsers(rows pgx.Rows) ([]domain.User, error) {
	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.FullName,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.Status,
			&user.SBU,
			&user.RegistrationToken,
			&user.RegistrationExpires,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}
