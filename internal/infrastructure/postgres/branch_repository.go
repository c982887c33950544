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

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo BranchRepository over PostgreSQL.
type BranchRepo struct {
	pool *pgxpool.Pool
}

// NewBranchRepository builds the branch adapter.
func NewBranchRepository(pool *pgxpool.Pool) *BranchRepo {
	return &BranchRepo{pool: pool}
}

// Create persists a branch. Returns ErrDuplicate on a taken code.
func (r *BranchRepo) Create(branch *entity.Branch) error {
	query := `
		INSERT INTO branches (code, name, address, city, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(context.Background(), query,
		branch.Code, branch.Name, nullIfEmpty(branch.Address), nullIfEmpty(branch.City),
		nullIfEmpty(branch.Phone), branch.CreatedAt, branch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

// GetByCode returns a branch, or nil.
func (r *BranchRepo) GetByCode(code string) (*entity.Branch, error) {
	query := `
		SELECT code, name, address, city, phone, created_at, updated_at
		FROM branches WHERE code = $1`
	b, err := scanBranch(r.pool.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return b, nil
}

// Update rewrites a branch's mutable fields.
func (r *BranchRepo) Update(branch *entity.Branch) error {
	query := `
		UPDATE branches SET name = $2, address = $3, city = $4, phone = $5, updated_at = $6
		WHERE code = $1`
	_, err := r.pool.Exec(context.Background(), query,
		branch.Code, branch.Name, nullIfEmpty(branch.Address), nullIfEmpty(branch.City),
		nullIfEmpty(branch.Phone), branch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update branch: %w", err)
	}
	return nil
}

// List pages through branches ordered by code.
func (r *BranchRepo) List(limit, offset int) ([]*entity.Branch, error) {
	query := `
		SELECT code, name, address, city, phone, created_at, updated_at
		FROM branches ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// Delete removes a branch by code.
func (r *BranchRepo) Delete(code string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM branches WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	return nil
}

func scanBranch(row pgx.Row) (*entity.Branch, error) {
	var b entity.Branch
	var address, city, phone *string
	err := row.Scan(&b.Code, &b.Name, &address, &city, &phone, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Address = deref(address)
	b.City = deref(city)
	b.Phone = deref(phone)
	return &b, nil
}
