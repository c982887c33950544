package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nexvolt/evretail-api/internal/domain/entity"
	"github.com/nexvolt/evretail-api/internal/domain/repository"
)

var _ repository.PaymentRequestRepository = (*PaymentRequestRepo)(nil)

const paymentRequestColumns = `id, user_id, amount, note, status, decided_by, decided_at, created_at`

// PaymentRequestRepo PaymentRequestRepository over PostgreSQL (usable with pool or tx).
type PaymentRequestRepo struct {
	q Querier
}

// NewPaymentRequestRepository builds the payment-request adapter. Pass a pool or a tx.
func NewPaymentRequestRepository(q Querier) *PaymentRequestRepo {
	return &PaymentRequestRepo{q: q}
}

// Create persists a new request.
func (r *PaymentRequestRepo) Create(pr *entity.PaymentRequest) error {
	query := `
		INSERT INTO payment_requests (id, user_id, amount, note, status, decided_by, decided_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		pr.ID, pr.UserID, pr.Amount, nullIfEmpty(pr.Note), pr.Status,
		nullIfEmpty(pr.DecidedBy), pr.DecidedAt, pr.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment request: %w", err)
	}
	return nil
}

// GetByID returns a request, or nil.
func (r *PaymentRequestRepo) GetByID(id string) (*entity.PaymentRequest, error) {
	return r.get(id, false)
}

// GetByIDForUpdate locks the row so two admins cannot decide the same request twice.
func (r *PaymentRequestRepo) GetByIDForUpdate(id string) (*entity.PaymentRequest, error) {
	return r.get(id, true)
}

func (r *PaymentRequestRepo) get(id string, lock bool) (*entity.PaymentRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM payment_requests WHERE id = $1`, paymentRequestColumns)
	if lock {
		query += " FOR UPDATE"
	}
	pr, err := scanPaymentRequest(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment request: %w", err)
	}
	return pr, nil
}

// Update rewrites a request's decision fields.
func (r *PaymentRequestRepo) Update(pr *entity.PaymentRequest) error {
	query := `
		UPDATE payment_requests SET status = $2, decided_by = $3, decided_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		pr.ID, pr.Status, nullIfEmpty(pr.DecidedBy), pr.DecidedAt,
	)
	if err != nil {
		return fmt.Errorf("update payment request: %w", err)
	}
	return nil
}

// ListByUser pages through one user's requests, newest first.
func (r *PaymentRequestRepo) ListByUser(userID string, limit, offset int) ([]*entity.PaymentRequest, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM payment_requests
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, paymentRequestColumns)
	return r.list(query, userID, limit, offset)
}

// ListByStatus pages through requests in one state, oldest first so the admin queue
// is reviewed in arrival order.
func (r *PaymentRequestRepo) ListByStatus(status string, limit, offset int) ([]*entity.PaymentRequest, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM payment_requests
		WHERE status = $1 ORDER BY created_at LIMIT $2 OFFSET $3`, paymentRequestColumns)
	return r.list(query, status, limit, offset)
}

func (r *PaymentRequestRepo) list(query string, arg any, limit, offset int) ([]*entity.PaymentRequest, error) {
	rows, err := r.q.Query(context.Background(), query, arg, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payment requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentRequest
	for rows.Next() {
		pr, err := scanPaymentRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment request: %w", err)
		}
		list = append(list, pr)
	}
	return list, rows.Err()
}

func scanPaymentRequest(row pgx.Row) (*entity.PaymentRequest, error) {
	var pr entity.PaymentRequest
	var note, decidedBy *string
	err := row.Scan(&pr.ID, &pr.UserID, &pr.Amount, &note, &pr.Status,
		&decidedBy, &pr.DecidedAt, &pr.CreatedAt)
	if err != nil {
		return nil, err
	}
	pr.Note = deref(note)
	pr.DecidedBy = deref(decidedBy)
	return &pr, nil
}
