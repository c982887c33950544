package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nexvolt/evretail-api/internal/domain"
	"github.com/nexvolt/evretail-api/internal/domain/entity"
	"github.com/nexvolt/evretail-api/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

const stockRecordColumns = `serial, kind, txn_type, location_code, item_name,
	chassis_no, part_code, hsn_code, unit_price,
	opening_stock, units_sold, added_qty, closing_stock,
	record_date, created_at, created_by`

// StockRecordRepo StockRecordRepository over PostgreSQL (usable with pool or tx).
type StockRecordRepo struct {
	q Querier
}

// NewStockRecordRepository builds the ledger adapter. Pass a pool or a tx (Querier).
func NewStockRecordRepository(q Querier) *StockRecordRepo {
	return &StockRecordRepo{q: q}
}

// Latest returns the newest record of the (kind, location, item) pair, or nil.
func (r *StockRecordRepo) Latest(kind, locationCode, itemName string) (*entity.StockRecord, error) {
	return r.latest(kind, locationCode, itemName, false)
}

// LatestForUpdate is Latest with the row locked. Only meaningful inside a transaction.
func (r *StockRecordRepo) LatestForUpdate(kind, locationCode, itemName string) (*entity.StockRecord, error) {
	return r.latest(kind, locationCode, itemName, true)
}

func (r *StockRecordRepo) latest(kind, locationCode, itemName string, lock bool) (*entity.StockRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM stock_records
		WHERE kind = $1 AND location_code = $2 AND item_name = $3
		ORDER BY record_date DESC, serial DESC
		LIMIT 1`, stockRecordColumns)
	if lock {
		query += " FOR UPDATE"
	}
	rec, err := scanStockRecord(r.q.QueryRow(context.Background(), query, kind, locationCode, itemName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest stock record: %w", err)
	}
	return rec, nil
}

// NextSerial draws the next serial from the kind's sequence. Sequences never go
// backwards, so serials are not reused even after deletes.
func (r *StockRecordRepo) NextSerial(kind string) (int64, error) {
	seq, err := serialSequence(kind)
	if err != nil {
		return 0, err
	}
	var serial int64
	if err := r.q.QueryRow(context.Background(), `SELECT nextval($1)`, seq).Scan(&serial); err != nil {
		return 0, fmt.Errorf("next serial: %w", err)
	}
	return serial, nil
}

func serialSequence(kind string) (string, error) {
	switch kind {
	case entity.KindVehicle:
		return "vehicle_serial_seq", nil
	case entity.KindSparePart:
		return "spare_part_serial_seq", nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// Create appends a ledger record.
func (r *StockRecordRepo) Create(rec *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (serial, kind, txn_type, location_code, item_name,
			chassis_no, part_code, hsn_code, unit_price,
			opening_stock, units_sold, added_qty, closing_stock,
			record_date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		rec.Serial, rec.Kind, rec.TxnType, rec.LocationCode, rec.ItemName,
		nullIfEmpty(rec.ChassisNo), nullIfEmpty(rec.PartCode), nullIfEmpty(rec.HSNCode), rec.UnitPrice,
		rec.OpeningStock, rec.UnitsSold, rec.AddedQty, rec.ClosingStock,
		rec.RecordDate, rec.CreatedAt, rec.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock record: %w", err)
	}
	return nil
}

// GetBySerial returns one record of the kind's ledger, or nil.
func (r *StockRecordRepo) GetBySerial(kind string, serial int64) (*entity.StockRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM stock_records WHERE kind = $1 AND serial = $2`, stockRecordColumns)
	rec, err := scanStockRecord(r.q.QueryRow(context.Background(), query, kind, serial))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record: %w", err)
	}
	return rec, nil
}

// List pages through the ledger, newest first. Zero filter fields mean "any".
func (r *StockRecordRepo) List(filter repository.StockFilter) ([]*entity.StockRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM stock_records
		WHERE ($1 = '' OR kind = $1)
		  AND ($2 = '' OR location_code = $2)
		  AND ($3 = '' OR item_name = $3)
		ORDER BY record_date DESC, serial DESC
		LIMIT $4 OFFSET $5`, stockRecordColumns)
	rows, err := r.q.Query(context.Background(), query,
		filter.Kind, filter.LocationCode, filter.ItemName, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list stock records: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockRecord
	for rows.Next() {
		rec, err := scanStockRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// Delete hard-removes a record from the kind's ledger.
func (r *StockRecordRepo) Delete(kind string, serial int64) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_records WHERE kind = $1 AND serial = $2`, kind, serial)
	if err != nil {
		return fmt.Errorf("delete stock record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanStockRecord(row pgx.Row) (*entity.StockRecord, error) {
	var rec entity.StockRecord
	var chassisNo, partCode, hsnCode *string
	err := row.Scan(
		&rec.Serial, &rec.Kind, &rec.TxnType, &rec.LocationCode, &rec.ItemName,
		&chassisNo, &partCode, &hsnCode, &rec.UnitPrice,
		&rec.OpeningStock, &rec.UnitsSold, &rec.AddedQty, &rec.ClosingStock,
		&rec.RecordDate, &rec.CreatedAt, &rec.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	if chassisNo != nil {
		rec.ChassisNo = *chassisNo
	}
	if partCode != nil {
		rec.PartCode = *partCode
	}
	if hsnCode != nil {
		rec.HSNCode = *hsnCode
	}
	return &rec, nil
}
