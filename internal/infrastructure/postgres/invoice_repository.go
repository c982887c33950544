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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, number, kind, location_code, item_name,
	quantity, unit_rate, total,
	buyer_type, buyer_branch_code, customer_name, customer_phone, customer_address,
	chassis_no, motor_no, controller_no, charger_no, battery_no,
	ledger_serial, issue_date, created_at, created_by`

// InvoiceRepo InvoiceRepository over PostgreSQL (usable with pool or tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the invoice adapter. Pass a pool or a tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create inserts an invoice. Returns ErrDuplicate when the number is already taken,
// which the issuer uses to retry with a fresh suffix.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, number, kind, location_code, item_name,
			quantity, unit_rate, total,
			buyer_type, buyer_branch_code, customer_name, customer_phone, customer_address,
			chassis_no, motor_no, controller_no, charger_no, battery_no,
			ledger_serial, issue_date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.Number, inv.Kind, inv.LocationCode, inv.ItemName,
		inv.Quantity, inv.UnitRate, inv.Total,
		inv.BuyerType, nullIfEmpty(inv.BuyerBranchCode), nullIfEmpty(inv.CustomerName),
		nullIfEmpty(inv.CustomerPhone), nullIfEmpty(inv.CustomerAddress),
		nullIfEmpty(inv.Specs.ChassisNo), nullIfEmpty(inv.Specs.MotorNo), nullIfEmpty(inv.Specs.ControllerNo),
		nullIfEmpty(inv.Specs.ChargerNo), nullIfEmpty(inv.Specs.BatteryNo),
		inv.LedgerSerial, inv.IssueDate, inv.CreatedAt, inv.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID returns an invoice, or nil.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE id = $1`, invoiceColumns)
	return r.getOne(query, id)
}

// GetByNumber returns an invoice by its printed number, or nil.
func (r *InvoiceRepo) GetByNumber(number string) (*entity.Invoice, error) {
	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE number = $1`, invoiceColumns)
	return r.getOne(query, number)
}

func (r *InvoiceRepo) getOne(query string, arg any) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// List pages through invoices, newest first. Zero filter fields mean "any".
func (r *InvoiceRepo) List(filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM invoices
		WHERE ($1 = '' OR kind = $1)
		  AND ($2 = '' OR location_code = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`, invoiceColumns)
	rows, err := r.q.Query(context.Background(), query,
		filter.Kind, filter.LocationCode, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var buyerBranchCode, customerName, customerPhone, customerAddress *string
	var chassisNo, motorNo, controllerNo, chargerNo, batteryNo *string
	err := row.Scan(
		&inv.ID, &inv.Number, &inv.Kind, &inv.LocationCode, &inv.ItemName,
		&inv.Quantity, &inv.UnitRate, &inv.Total,
		&inv.BuyerType, &buyerBranchCode, &customerName, &customerPhone, &customerAddress,
		&chassisNo, &motorNo, &controllerNo, &chargerNo, &batteryNo,
		&inv.LedgerSerial, &inv.IssueDate, &inv.CreatedAt, &inv.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	inv.BuyerBranchCode = deref(buyerBranchCode)
	inv.CustomerName = deref(customerName)
	inv.CustomerPhone = deref(customerPhone)
	inv.CustomerAddress = deref(customerAddress)
	inv.Specs = entity.VehicleSpecs{
		ChassisNo:    deref(chassisNo),
		MotorNo:      deref(motorNo),
		ControllerNo: deref(controllerNo),
		ChargerNo:    deref(chargerNo),
		BatteryNo:    deref(batteryNo),
	}
	return &inv, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
