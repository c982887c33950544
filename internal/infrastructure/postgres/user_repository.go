package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexvolt/evretail-api/internal/domain"
	"github.com/nexvolt/evretail-api/internal/domain/entity"
	"github.com/nexvolt/evretail-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, name, phone, role, branch_code, referrer_id, status, created_at, updated_at`

// UserRepo UserRepository over PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository builds the user adapter.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persists a new user. Returns ErrEmailAlreadyExists on a taken email.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, phone, role, branch_code, referrer_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name, nullIfEmpty(user.Phone),
		user.Role, nullIfEmpty(user.BranchCode), nullIfEmpty(user.ReferrerID), user.Status,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID returns a user, or nil.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return r.getOne(query, id)
}

// GetByEmail returns a user by email, or nil.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1 LIMIT 1`, userColumns)
	return r.getOne(query, email)
}

func (r *UserRepo) getOne(query string, arg any) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Update rewrites a user.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET email = $2, password_hash = $3, name = $4, phone = $5, role = $6,
			branch_code = $7, referrer_id = $8, status = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name, nullIfEmpty(user.Phone),
		user.Role, nullIfEmpty(user.BranchCode), nullIfEmpty(user.ReferrerID), user.Status,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// List pages through users, newest first.
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`, userColumns)
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

// Delete removes a user by ID.
func (r *UserRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// ListByReferrer returns the direct referrals of a user.
func (r *UserRepo) ListByReferrer(referrerID string) ([]*entity.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM users WHERE referrer_id = $1 ORDER BY created_at`, userColumns)
	rows, err := r.pool.Query(context.Background(), query, referrerID)
	if err != nil {
		return nil, fmt.Errorf("list referrals: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

// Downline walks the referral subtree under rootID with a recursive CTE, breadth-first
// (shallower levels first), the root itself excluded.
func (r *UserRepo) Downline(rootID string) ([]*entity.User, error) {
	query := fmt.Sprintf(`
		WITH RECURSIVE team AS (
			SELECT u.*, 1 AS depth FROM users u WHERE u.referrer_id = $1
			UNION ALL
			SELECT u.*, t.depth + 1 FROM users u
			JOIN team t ON u.referrer_id = t.id
		)
		SELECT %s FROM team ORDER BY depth, created_at`, userColumns)
	rows, err := r.pool.Query(context.Background(), query, rootID)
	if err != nil {
		return nil, fmt.Errorf("downline: %w", err)
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows pgx.Rows) ([]*entity.User, error) {
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var phone, branchCode, referrerID *string
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &phone, &u.Role,
		&branchCode, &referrerID, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Phone = deref(phone)
	u.BranchCode = deref(branchCode)
	u.ReferrerID = deref(referrerID)
	return &u, nil
}
