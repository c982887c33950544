package ledger_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexvolt/evretail-api/internal/application/dto"
	"github.com/nexvolt/evretail-api/internal/application/ledger"
	"github.com/nexvolt/evretail-api/internal/domain"
	"github.com/nexvolt/evretail-api/internal/domain/entity"
	"github.com/nexvolt/evretail-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeRecordRepo keeps ledger records in a slice. Serials come from a counter that
// only moves forward, matching the per-kind database sequences: a deleted record's
// serial is never handed out again.
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

func (r *fakeRecordRepo) List(filter repository.StockFilter) ([]*entity.StockRecord, error) {
	var out []*entity.StockRecord
	for _, rec := range r.records {
		if filter.Kind != "" && rec.Kind != filter.Kind {
			continue
		}
		if filter.LocationCode != "" && rec.LocationCode != filter.LocationCode {
			continue
		}
		if filter.ItemName != "" && rec.ItemName != filter.ItemName {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeRecordRepo) Delete(kind string, serial int64) error {
	for i, rec := range r.records {
		if rec.Kind == kind && rec.Serial == serial {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeTxRunner hands the fake repo straight to the callback; a returned error
// discards nothing because the fakes only mutate on Create, which the use case
// always calls last.
type fakeTxRunner struct{ repo *fakeRecordRepo }

func (t *fakeTxRunner) Run(_ context.Context, fn func(repository.StockRecordRepository) error) error {
	return fn(t.repo)
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

func newUseCase() (*ledger.UseCase, *fakeRecordRepo) {
	repo := newFakeRecordRepo()
	branches := &fakeBranchRepo{codes: map[string]bool{"BLR-01": true, "PUN-02": true}}
	return ledger.NewUseCase(&fakeTxRunner{repo: repo}, repo, branches), repo
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Current stock
// ──────────────────────────────────────────────────────────────────────────────

// After N stock-ins and M sales, current stock must equal sum(added) − sum(sold).
func TestCurrentStock_SumsAdditionsAndSales(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	adds := []int64{10, 5, 7}
	for _, qty := range adds {
		_, err := uc.AppendStockIn(ctx, "u1", dto.StockInRequest{
			Kind: entity.KindVehicle, LocationCode: "BLR-01", ItemName: "Volt X1",
			AddedQty: qty, UnitPrice: price("64999.50"),
		})
		require.NoError(t, err)
	}
	sales := []int64{3, 4}
	for _, qty := range sales {
		_, err := uc.AppendSale(ctx, "u1", entity.KindVehicle, "BLR-01", "Volt X1", qty)
		require.NoError(t, err)
	}

	got, err := uc.CurrentStock(ctx, entity.KindVehicle, "BLR-01", "Volt X1")
	require.NoError(t, err)
	assert.Equal(t, int64(10+5+7-3-4), got)
}

func TestCurrentStock_ZeroWhenNoRecords(t *testing.T) {
	uc, _ := newUseCase()
	got, err := uc.CurrentStock(context.Background(), entity.KindSparePart, "BLR-01", "SP-CTRL-48V")
	require.NoError(t, err)
	assert.Zero(t, got)
}

// Stock at one location never bleeds into another.
func TestCurrentStock_ScopedPerLocation(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.AppendStockIn(ctx, "u1", dto.StockInRequest{
		Kind: entity.KindVehicle, LocationCode: "BLR-01", ItemName: "Volt X1", AddedQty: 8,
	})
	require.NoError(t, err)

	got, err := uc.CurrentStock(ctx, entity.KindVehicle, "PUN-02", "Volt X1")
	require.NoError(t, err)
	assert.Zero(t, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Appends
// ──────────────────────────────────────────────────────────────────────────────

func TestAppendStockIn_FirstRecord(t *testing.T) {
	uc, _ := newUseCase()

	rec, err := uc.AppendStockIn(context.Background(), "u1", dto.StockInRequest{
		Kind: entity.KindSparePart, LocationCode: "BLR-01", ItemName: "Controller 48V",
		PartCode: "SP-CTRL-48V", HSNCode: "8708", AddedQty: 20, UnitPrice: price("1450"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), rec.Serial)
	assert.Equal(t, entity.TxnStockIn, rec.TxnType)
	assert.Zero(t, rec.OpeningStock)
	assert.Equal(t, int64(20), rec.AddedQty)
	assert.Equal(t, int64(20), rec.ClosingStock)
	assert.Zero(t, rec.UnitsSold)
}

// A stock-in without a price inherits the latest recorded price for the pair.
func TestAppendStockIn_CarriesPriceForward(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.AppendStockIn(ctx, "u1", dto.StockInRequest{
		Kind: entity.KindVehicle, LocationCode: "BLR-01", ItemName: "Volt X1",
		AddedQty: 5, UnitPrice: price("64999.50"),
	})
	require.NoError(t, err)

	rec, err := uc.AppendStockIn(ctx, "u1", dto.StockInRequest{
		Kind: entity.KindVehicle, LocationCode: "BLR-01", ItemName: "Volt X1", AddedQty: 3,
	})
	require.NoError(t, err)
	require.NotNil(t, rec.UnitPrice)
	assert.True(t, rec.UnitPrice.Equal(decimal.RequireFromString("64999.50")))
}

func TestAppendStockIn_UnknownBranch(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.AppendStockIn(context.Background(), "u1", dto.StockInRequest{
		Kind: entity.KindVehicle, LocationCode: "NOPE-99", ItemName: "Volt X1", AddedQty: 5,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAppendSale_DecrementsClosingStock(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.AppendStockIn(ctx, "u1", dto.StockInRequest{
		Kind: entity.KindVehicle, LocationCode: "BLR-01", ItemName: "Volt X1",
		AddedQty: 5, UnitPrice: price("64999.50"),
	})
	require.NoError(t, err)

	rec, err := uc.AppendSale(ctx, "u1", entity.KindVehicle, "BLR-01", "Volt X1", 2)
	require.NoError(t, err)

	assert.Equal(t, entity.TxnSale, rec.TxnType)
	assert.Equal(t, int64(5), rec.OpeningStock)
	assert.Equal(t, int64(2), rec.UnitsSold)
	assert.Equal(t, int64(3), rec.ClosingStock)
}

// No prior record for the pair means nothing to sell.
func TestAppendSale_NoPriorRecord(t *testing.T) {
	uc, repo := newUseCase()

	_, err := uc.AppendSale(context.Background(), "u1", entity.KindVehicle, "BLR-01", "Volt X1", 1)
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
	assert.Empty(t, repo.records)
}

func TestAppendSale_QuantityExceedsStock(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()

	_, err := uc.AppendStockIn(ctx, "u1", dto.StockInRequest{
		Kind: entity.KindVehicle, LocationCode: "BLR-01", ItemName: "Volt X1", AddedQty: 5,
	})
	require.NoError(t, err)

	_, err = uc.AppendSale(ctx, "u1", entity.KindVehicle, "BLR-01", "Volt X1", 6)
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
	assert.Len(t, repo.records, 1, "a failed sale must not append a ledger record")
}

// Because appends serialize on the locked latest row, a second sale sees the first
// one's decrement — combined overselling cannot happen.
func TestAppendSale_SequentialSalesCannotOversell(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.AppendStockIn(ctx, "u1", dto.StockInRequest{
		Kind: entity.KindVehicle, LocationCode: "BLR-01", ItemName: "Volt X1", AddedQty: 5,
	})
	require.NoError(t, err)

	_, err = uc.AppendSale(ctx, "u1", entity.KindVehicle, "BLR-01", "Volt X1", 3)
	require.NoError(t, err)

	_, err = uc.AppendSale(ctx, "u2", entity.KindVehicle, "BLR-01", "Volt X1", 3)
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
}

func TestAppendReport_ComputesClosing(t *testing.T) {
	uc, _ := newUseCase()

	rec, err := uc.AppendReport(context.Background(), "u1", dto.StockReportRequest{
		Kind: entity.KindSparePart, LocationCode: "PUN-02", ItemName: "Brake Pad",
		OpeningStock: 40, UnitsSold: 12,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TxnReport, rec.TxnType)
	assert.Equal(t, int64(28), rec.ClosingStock)
}

func TestAppendReport_SoldExceedsOpening(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.AppendReport(context.Background(), "u1", dto.StockReportRequest{
		Kind: entity.KindSparePart, LocationCode: "PUN-02", ItemName: "Brake Pad",
		OpeningStock: 5, UnitsSold: 6,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Serial assignment
// ──────────────────────────────────────────────────────────────────────────────

// Serials keep increasing after a delete; a removed record's serial is never reused.
func TestSerial_NoReuseAfterDelete(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := uc.AppendStockIn(ctx, "u1", dto.StockInRequest{
			Kind: entity.KindVehicle, LocationCode: "BLR-01", ItemName: "Volt X1", AddedQty: 1,
		})
		require.NoError(t, err)
	}

	require.NoError(t, uc.DeleteRecord(ctx, entity.KindVehicle, 3))

	rec, err := uc.AppendStockIn(ctx, "u1", dto.StockInRequest{
		Kind: entity.KindVehicle, LocationCode: "BLR-01", ItemName: "Volt X1", AddedQty: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), rec.Serial)
}

// Each kind has an independent serial sequence.
func TestSerial_PerKindSequence(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	v, err := uc.AppendStockIn(ctx, "u1", dto.StockInRequest{
		Kind: entity.KindVehicle, LocationCode: "BLR-01", ItemName: "Volt X1", AddedQty: 1,
	})
	require.NoError(t, err)
	p, err := uc.AppendStockIn(ctx, "u1", dto.StockInRequest{
		Kind: entity.KindSparePart, LocationCode: "BLR-01", ItemName: "Controller 48V", AddedQty: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), v.Serial)
	assert.Equal(t, int64(1), p.Serial)
}

func TestDeleteRecord_NotFound(t *testing.T) {
	uc, _ := newUseCase()
	err := uc.DeleteRecord(context.Background(), entity.KindVehicle, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Record dates carry no time component.
func TestAppend_RecordDateIsDayGranular(t *testing.T) {
	uc, _ := newUseCase()

	rec, err := uc.AppendStockIn(context.Background(), "u1", dto.StockInRequest{
		Kind: entity.KindVehicle, LocationCode: "BLR-01", ItemName: "Volt X1", AddedQty: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, rec.RecordDate, rec.RecordDate.Truncate(24*time.Hour))
}
