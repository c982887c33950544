package billing_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexvolt/evretail-api/internal/application/billing"
	"github.com/nexvolt/evretail-api/internal/application/dto"
	"github.com/nexvolt/evretail-api/internal/application/ledger"
	"github.com/nexvolt/evretail-api/internal/domain"
	"github.com/nexvolt/evretail-api/internal/domain/entity"
	"github.com/nexvolt/evretail-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes with rollback semantics
// ──────────────────────────────────────────────────────────────────────────────

type fakeRecordRepo struct {
	records    []*entity.StockRecord
	nextSerial map[string]int64
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{nextSerial: map[string]int64{}}
}

func (r *fakeRecordRepo) Latest(kind, loc, item string) (*entity.StockRecord, error) {
	var out []*entity.StockRecord
	for _, rec := range r.records {
		if rec.Kind == kind && rec.LocationCode == loc && rec.ItemName == item {
			out = append(out, rec)
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RecordDate.Equal(out[j].RecordDate) {
			return out[i].RecordDate.After(out[j].RecordDate)
		}
		return out[i].Serial > out[j].Serial
	})
	return out[0], nil
}

func (r *fakeRecordRepo) LatestForUpdate(kind, loc, item string) (*entity.StockRecord, error) {
	return r.Latest(kind, loc, item)
}

func (r *fakeRecordRepo) NextSerial(kind string) (int64, error) {
	r.nextSerial[kind]++
	return r.nextSerial[kind], nil
}

func (r *fakeRecordRepo) Create(rec *entity.StockRecord) error {
	cp := *rec
	r.records = append(r.records, &cp)
	return nil
}

func (r *fakeRecordRepo) GetBySerial(kind string, serial int64) (*entity.StockRecord, error) {
	for _, rec := range r.records {
		if rec.Kind == kind && rec.Serial == serial {
			return rec, nil
		}
	}
	return nil, nil
}

func (r *fakeRecordRepo) List(repository.StockFilter) ([]*entity.StockRecord, error) {
	return r.records, nil
}

func (r *fakeRecordRepo) Delete(kind string, serial int64) error { return nil }

type fakeInvoiceRepo struct {
	byID     map[string]*entity.Invoice
	byNumber map[string]*entity.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{byID: map[string]*entity.Invoice{}, byNumber: map[string]*entity.Invoice{}}
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	if _, ok := r.byNumber[inv.Number]; ok {
		return domain.ErrDuplicate
	}
	cp := *inv
	r.byID[inv.ID] = &cp
	r.byNumber[inv.Number] = &cp
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) { return r.byID[id], nil }
func (r *fakeInvoiceRepo) GetByNumber(n string) (*entity.Invoice, error) {
	return r.byNumber[n], nil
}
func (r *fakeInvoiceRepo) List(repository.InvoiceFilter) ([]*entity.Invoice, error) {
	out := make([]*entity.Invoice, 0, len(r.byID))
	for _, inv := range r.byID {
		out = append(out, inv)
	}
	return out, nil
}

// fakeBillingTx snapshots both stores before the callback and restores them when it
// fails, emulating a database rollback.
type fakeBillingTx struct {
	recordRepo  *fakeRecordRepo
	invoiceRepo *fakeInvoiceRepo
}

func (t *fakeBillingTx) RunBilling(_ context.Context, fn func(
	repository.StockRecordRepository,
	repository.InvoiceRepository,
) error) error {
	records := append([]*entity.StockRecord(nil), t.recordRepo.records...)
	byID := map[string]*entity.Invoice{}
	for k, v := range t.invoiceRepo.byID {
		byID[k] = v
	}
	byNumber := map[string]*entity.Invoice{}
	for k, v := range t.invoiceRepo.byNumber {
		byNumber[k] = v
	}

	if err := fn(t.recordRepo, t.invoiceRepo); err != nil {
		t.recordRepo.records = records
		t.invoiceRepo.byID = byID
		t.invoiceRepo.byNumber = byNumber
		return err
	}
	return nil
}

type fakeBranchRepo struct{ codes map[string]bool }

func (r *fakeBranchRepo) Create(*entity.Branch) error { return nil }
func (r *fakeBranchRepo) GetByCode(code string) (*entity.Branch, error) {
	if r.codes[code] {
		return &entity.Branch{Code: code, Name: "Branch " + code}, nil
	}
	return nil, nil
}
func (r *fakeBranchRepo) Update(*entity.Branch) error             { return nil }
func (r *fakeBranchRepo) List(int, int) ([]*entity.Branch, error) { return nil, nil }
func (r *fakeBranchRepo) Delete(string) error                     { return nil }

type fakeLedgerTx struct{ repo *fakeRecordRepo }

func (t *fakeLedgerTx) Run(_ context.Context, fn func(repository.StockRecordRepository) error) error {
	return fn(t.repo)
}

// harness wires a real ledger use case to the fakes so billing tests exercise the
// same append path production uses.
type harness struct {
	uc          *billing.IssueInvoiceUseCase
	ledgerUC    *ledger.UseCase
	recordRepo  *fakeRecordRepo
	invoiceRepo *fakeInvoiceRepo
}

func newHarness() *harness {
	recordRepo := newFakeRecordRepo()
	invoiceRepo := newFakeInvoiceRepo()
	branches := &fakeBranchRepo{codes: map[string]bool{"BLR-01": true, "PUN-02": true}}
	ledgerUC := ledger.NewUseCase(&fakeLedgerTx{repo: recordRepo}, recordRepo, branches)
	uc := billing.NewIssueInvoiceUseCase(
		&fakeBillingTx{recordRepo: recordRepo, invoiceRepo: invoiceRepo},
		ledgerUC, branches, invoiceRepo, "NXV",
	)
	return &harness{uc: uc, ledgerUC: ledgerUC, recordRepo: recordRepo, invoiceRepo: invoiceRepo}
}

func (h *harness) stockIn(t *testing.T, kind, loc, item string, qty int64, unitPrice string) {
	t.Helper()
	in := dto.StockInRequest{Kind: kind, LocationCode: loc, ItemName: item, AddedQty: qty}
	if unitPrice != "" {
		d := decimal.RequireFromString(unitPrice)
		in.UnitPrice = &d
	}
	_, err := h.ledgerUC.AppendStockIn(context.Background(), "admin", in)
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Issue invoice
// ──────────────────────────────────────────────────────────────────────────────

func TestIssueInvoice_HappyPath(t *testing.T) {
	h := newHarness()
	h.stockIn(t, entity.KindVehicle, "BLR-01", "Volt X1", 10, "64999.50")

	resp, err := h.uc.IssueInvoice(context.Background(), "dealer1", dto.IssueInvoiceRequest{
		Kind: entity.KindVehicle, LocationCode: "BLR-01", ItemName: "Volt X1", Quantity: 2,
		BuyerType: entity.BuyerCustomer, CustomerName: "Asha Verma", CustomerPhone: "9876500001",
		Specs: &dto.VehicleSpecsDTO{ChassisNo: "CH-9001", MotorNo: "MT-4411"},
	})
	require.NoError(t, err)

	// Rate resolved from the ledger, total exact.
	assert.True(t, resp.UnitRate.Equal(decimal.RequireFromString("64999.50")))
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("129999.00")),
		"total must be quantity * unit rate with no drift, got %s", resp.Total)
	assert.True(t, strings.HasPrefix(resp.Number, "NXV-"))
	assert.Contains(t, resp.InWords, "lakh")

	// The sale landed in the ledger and the invoice points at it.
	sale, err := h.recordRepo.GetBySerial(entity.KindVehicle, resp.LedgerSerial)
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.Equal(t, entity.TxnSale, sale.TxnType)
	assert.Equal(t, int64(2), sale.UnitsSold)
	assert.Equal(t, int64(8), sale.ClosingStock)
	assert.Equal(t, "CH-9001", sale.ChassisNo)
}

// Requested quantity above current stock: OutOfStock, and neither collection grows.
func TestIssueInvoice_OutOfStock(t *testing.T) {
	h := newHarness()
	h.stockIn(t, entity.KindVehicle, "BLR-01", "Volt X1", 3, "64999.50")

	_, err := h.uc.IssueInvoice(context.Background(), "dealer1", dto.IssueInvoiceRequest{
		Kind: entity.KindVehicle, LocationCode: "BLR-01", ItemName: "Volt X1", Quantity: 4,
		BuyerType: entity.BuyerCustomer, CustomerName: "Asha Verma",
	})
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
	assert.Len(t, h.recordRepo.records, 1, "failed issuance must not append to the ledger")
	assert.Empty(t, h.invoiceRepo.byID, "failed issuance must not create an invoice")
}

func TestIssueInvoice_RateOverride(t *testing.T) {
	h := newHarness()
	h.stockIn(t, entity.KindSparePart, "BLR-01", "Controller 48V", 50, "1450")

	override := decimal.RequireFromString("1399")
	resp, err := h.uc.IssueInvoice(context.Background(), "dealer1", dto.IssueInvoiceRequest{
		Kind: entity.KindSparePart, LocationCode: "BLR-01", ItemName: "Controller 48V",
		Quantity: 3, UnitRate: &override,
		BuyerType: entity.BuyerBranch, BuyerBranchCode: "PUN-02",
	})
	require.NoError(t, err)

	assert.True(t, resp.UnitRate.Equal(override))
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("4197")))
}

// No rate on the request and none ever recorded: issuance aborts and the sale append
// rolls back with it.
func TestIssueInvoice_NoResolvableRate(t *testing.T) {
	h := newHarness()
	h.stockIn(t, entity.KindSparePart, "BLR-01", "Controller 48V", 50, "")

	_, err := h.uc.IssueInvoice(context.Background(), "dealer1", dto.IssueInvoiceRequest{
		Kind: entity.KindSparePart, LocationCode: "BLR-01", ItemName: "Controller 48V", Quantity: 1,
		BuyerType: entity.BuyerCustomer, CustomerName: "Asha Verma",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, h.recordRepo.records, 1, "rolled-back issuance must not leave a sale record")
}

func TestIssueInvoice_BuyerValidation(t *testing.T) {
	h := newHarness()
	h.stockIn(t, entity.KindVehicle, "BLR-01", "Volt X1", 5, "64999.50")
	ctx := context.Background()

	_, err := h.uc.IssueInvoice(ctx, "u1", dto.IssueInvoiceRequest{
		Kind: entity.KindVehicle, LocationCode: "BLR-01", ItemName: "Volt X1", Quantity: 1,
		BuyerType: entity.BuyerBranch, BuyerBranchCode: "NOPE-99",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "unknown buyer branch")

	_, err = h.uc.IssueInvoice(ctx, "u1", dto.IssueInvoiceRequest{
		Kind: entity.KindVehicle, LocationCode: "BLR-01", ItemName: "Volt X1", Quantity: 1,
		BuyerType: entity.BuyerCustomer,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "customer sale without a name")

	_, err = h.uc.IssueInvoice(ctx, "u1", dto.IssueInvoiceRequest{
		Kind: entity.KindVehicle, LocationCode: "BLR-01", ItemName: "Volt X1", Quantity: 1,
		BuyerType: "WHOLESALE", CustomerName: "X",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "unknown buyer type")
}

// Repeated issuance with integer rate and quantity never drifts: total is exactly
// quantity * rate every time.
func TestIssueInvoice_NoRoundingDriftAcrossRuns(t *testing.T) {
	h := newHarness()
	h.stockIn(t, entity.KindSparePart, "BLR-01", "Brake Pad", 1000, "275")

	want := decimal.RequireFromString("825")
	for i := 0; i < 25; i++ {
		resp, err := h.uc.IssueInvoice(context.Background(), "dealer1", dto.IssueInvoiceRequest{
			Kind: entity.KindSparePart, LocationCode: "BLR-01", ItemName: "Brake Pad", Quantity: 3,
			BuyerType: entity.BuyerCustomer, CustomerName: "Walk-in",
		})
		require.NoError(t, err)
		assert.True(t, resp.Total.Equal(want), "run %d: got %s", i, resp.Total)
	}
}

func TestGetInvoice_NotFound(t *testing.T) {
	h := newHarness()
	_, err := h.uc.GetInvoice(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
