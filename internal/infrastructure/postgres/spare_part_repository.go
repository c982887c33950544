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

var _ repository.SparePartRepository = (*SparePartRepo)(nil)

// SparePartRepo SparePartRepository over PostgreSQL.
type SparePartRepo struct {
	pool *pgxpool.Pool
}

// NewSparePartRepository builds the spare-part catalog adapter.
func NewSparePartRepository(pool *pgxpool.Pool) *SparePartRepo {
	return &SparePartRepo{pool: pool}
}

// Create persists a part. Returns ErrDuplicate on a taken part code.
func (r *SparePartRepo) Create(p *entity.SparePart) error {
	query := `
		INSERT INTO spare_parts (id, part_code, name, hsn_code, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(context.Background(), query,
		p.ID, p.PartCode, p.Name, nullIfEmpty(p.HSNCode), p.Price, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert spare part: %w", err)
	}
	return nil
}

// GetByID returns a part, or nil.
func (r *SparePartRepo) GetByID(id string) (*entity.SparePart, error) {
	return r.getOne(`WHERE id = $1`, id)
}

// GetByPartCode returns a part by its unique code, or nil.
func (r *SparePartRepo) GetByPartCode(code string) (*entity.SparePart, error) {
	return r.getOne(`WHERE part_code = $1`, code)
}

func (r *SparePartRepo) getOne(where string, arg any) (*entity.SparePart, error) {
	query := `
		SELECT id, part_code, name, hsn_code, price, created_at, updated_at
		FROM spare_parts ` + where
	p, err := scanSparePart(r.pool.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get spare part: %w", err)
	}
	return p, nil
}

// Update rewrites a part's mutable fields.
func (r *SparePartRepo) Update(p *entity.SparePart) error {
	query := `
		UPDATE spare_parts SET name = $2, hsn_code = $3, price = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		p.ID, p.Name, nullIfEmpty(p.HSNCode), p.Price, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update spare part: %w", err)
	}
	return nil
}

// List pages through the catalog ordered by part code.
func (r *SparePartRepo) List(limit, offset int) ([]*entity.SparePart, error) {
	query := `
		SELECT id, part_code, name, hsn_code, price, created_at, updated_at
		FROM spare_parts ORDER BY part_code LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list spare parts: %w", err)
	}
	defer rows.Close()
	var list []*entity.SparePart
	for rows.Next() {
		p, err := scanSparePart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan spare part: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete removes a part by ID.
func (r *SparePartRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM spare_parts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete spare part: %w", err)
	}
	return nil
}

func scanSparePart(row pgx.Row) (*entity.SparePart, error) {
	var p entity.SparePart
	var hsnCode *string
	err := row.Scan(&p.ID, &p.PartCode, &p.Name, &hsnCode, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.HSNCode = deref(hsnCode)
	return &p, nil
}
