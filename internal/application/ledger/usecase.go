package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexvolt/evretail-api/internal/application/dto"
	"github.com/nexvolt/evretail-api/internal/domain"
	"github.com/nexvolt/evretail-api/internal/domain/entity"
	"github.com/nexvolt/evretail-api/internal/domain/repository"
)

// UseCase implements the stock ledger operations: current stock lookup and the three
// append transactions (stock-in, sale, manual report). All appends run inside a
// database transaction with the latest ledger row locked.
type UseCase struct {
	txRunner   TxRunner
	recordRepo repository.StockRecordRepository
	branchRepo repository.BranchRepository
}

// NewUseCase builds the ledger use case. recordRepo is the pool-bound repository used
// for reads outside transactions.
func NewUseCase(txRunner TxRunner, recordRepo repository.StockRecordRepository, branchRepo repository.BranchRepository) *UseCase {
	return &UseCase{txRunner: txRunner, recordRepo: recordRepo, branchRepo: branchRepo}
}

// dateOnly truncates t to day granularity; record dates carry no time component.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CurrentStock returns the closing stock of the latest record for the pair, or 0 when
// the pair has no records.
func (uc *UseCase) CurrentStock(ctx context.Context, kind, locationCode, itemName string) (int64, error) {
	if !entity.ValidKind(kind) || locationCode == "" || itemName == "" {
		return 0, domain.ErrInvalidInput
	}
	latest, err := uc.recordRepo.Latest(kind, locationCode, itemName)
	if err != nil {
		return 0, err
	}
	if latest == nil {
		return 0, nil
	}
	return latest.ClosingStock, nil
}

// AppendStockIn records a stock addition: opening = current stock (0 when none),
// closing = opening + added, units sold = 0. The unit price carries forward from the
// previous record when the request does not supply one.
func (uc *UseCase) AppendStockIn(ctx context.Context, userID string, in dto.StockInRequest) (*entity.StockRecord, error) {
	if !entity.ValidKind(in.Kind) || in.LocationCode == "" || in.ItemName == "" || in.AddedQty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice != nil && in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.branchExists(in.LocationCode); err != nil {
		return nil, err
	}

	now := time.Now()
	var rec *entity.StockRecord
	err := uc.txRunner.Run(ctx, func(recordRepo repository.StockRecordRepository) error {
		latest, err := recordRepo.LatestForUpdate(in.Kind, in.LocationCode, in.ItemName)
		if err != nil {
			return err
		}
		var opening int64
		price := in.UnitPrice
		if latest != nil {
			opening = latest.ClosingStock
			if price == nil {
				price = latest.UnitPrice
			}
		}
		serial, err := recordRepo.NextSerial(in.Kind)
		if err != nil {
			return err
		}
		rec = &entity.StockRecord{
			Serial:       serial,
			Kind:         in.Kind,
			TxnType:      entity.TxnStockIn,
			LocationCode: in.LocationCode,
			ItemName:     in.ItemName,
			ChassisNo:    in.ChassisNo,
			PartCode:     in.PartCode,
			HSNCode:      in.HSNCode,
			UnitPrice:    price,
			OpeningStock: opening,
			AddedQty:     in.AddedQty,
			ClosingStock: opening + in.AddedQty,
			RecordDate:   dateOnly(now),
			CreatedAt:    now,
			CreatedBy:    userID,
		}
		return recordRepo.Create(rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// AppendSale records a sale as a standalone ledger transaction.
func (uc *UseCase) AppendSale(ctx context.Context, userID, kind, locationCode, itemName string, quantity int64) (*entity.StockRecord, error) {
	if !entity.ValidKind(kind) || locationCode == "" || itemName == "" {
		return nil, domain.ErrInvalidInput
	}
	var rec *entity.StockRecord
	err := uc.txRunner.Run(ctx, func(recordRepo repository.StockRecordRepository) error {
		var err error
		rec, err = uc.AppendSaleInTx(recordRepo, kind, locationCode, itemName, quantity, "", time.Now(), userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// AppendSaleInTx records a sale using the caller's transaction-bound repository.
// Implements the billing.LedgerUseCase port so invoice issuance and the ledger append
// commit or roll back together. Fails with ErrOutOfStock when the pair has no prior
// record or quantity exceeds the current closing stock.
func (uc *UseCase) AppendSaleInTx(
	recordRepo repository.StockRecordRepository,
	kind, locationCode, itemName string,
	quantity int64,
	chassisNo string,
	now time.Time,
	userID string,
) (*entity.StockRecord, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	latest, err := recordRepo.LatestForUpdate(kind, locationCode, itemName)
	if err != nil {
		return nil, err
	}
	if latest == nil || latest.ClosingStock < quantity {
		return nil, domain.ErrOutOfStock
	}
	serial, err := recordRepo.NextSerial(kind)
	if err != nil {
		return nil, err
	}
	rec := &entity.StockRecord{
		Serial:       serial,
		Kind:         kind,
		TxnType:      entity.TxnSale,
		LocationCode: locationCode,
		ItemName:     itemName,
		ChassisNo:    chassisNo,
		PartCode:     latest.PartCode,
		HSNCode:      latest.HSNCode,
		UnitPrice:    latest.UnitPrice,
		OpeningStock: latest.ClosingStock,
		UnitsSold:    quantity,
		ClosingStock: latest.ClosingStock - quantity,
		RecordDate:   dateOnly(now),
		CreatedAt:    now,
		CreatedBy:    userID,
	}
	if err := recordRepo.Create(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// AppendReport records a manual stock report: the caller supplies opening stock and
// units sold, closing is computed. Used for day-end reconciliation entries.
func (uc *UseCase) AppendReport(ctx context.Context, userID string, in dto.StockReportRequest) (*entity.StockRecord, error) {
	if !entity.ValidKind(in.Kind) || in.LocationCode == "" || in.ItemName == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.OpeningStock < 0 || in.UnitsSold < 0 || in.UnitsSold > in.OpeningStock {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.branchExists(in.LocationCode); err != nil {
		return nil, err
	}

	now := time.Now()
	var rec *entity.StockRecord
	err := uc.txRunner.Run(ctx, func(recordRepo repository.StockRecordRepository) error {
		latest, err := recordRepo.LatestForUpdate(in.Kind, in.LocationCode, in.ItemName)
		if err != nil {
			return err
		}
		price := in.UnitPrice
		if price == nil && latest != nil {
			price = latest.UnitPrice
		}
		serial, err := recordRepo.NextSerial(in.Kind)
		if err != nil {
			return err
		}
		rec = &entity.StockRecord{
			Serial:       serial,
			Kind:         in.Kind,
			TxnType:      entity.TxnReport,
			LocationCode: in.LocationCode,
			ItemName:     in.ItemName,
			PartCode:     in.PartCode,
			HSNCode:      in.HSNCode,
			UnitPrice:    price,
			OpeningStock: in.OpeningStock,
			UnitsSold:    in.UnitsSold,
			ClosingStock: in.OpeningStock - in.UnitsSold,
			RecordDate:   dateOnly(now),
			CreatedAt:    now,
			CreatedBy:    userID,
		}
		return recordRepo.Create(rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Ledger lists ledger records, newest first.
func (uc *UseCase) Ledger(ctx context.Context, filter repository.StockFilter) ([]*entity.StockRecord, error) {
	if filter.Kind != "" && !entity.ValidKind(filter.Kind) {
		return nil, domain.ErrInvalidInput
	}
	return uc.recordRepo.List(filter)
}

// DeleteRecord hard-removes a ledger record. The serial is not reused afterwards.
func (uc *UseCase) DeleteRecord(ctx context.Context, kind string, serial int64) error {
	if !entity.ValidKind(kind) || serial <= 0 {
		return domain.ErrInvalidInput
	}
	rec, err := uc.recordRepo.GetBySerial(kind, serial)
	if err != nil {
		return err
	}
	if rec == nil {
		return domain.ErrNotFound
	}
	return uc.recordRepo.Delete(kind, serial)
}

func (uc *UseCase) branchExists(code string) error {
	branch, err := uc.branchRepo.GetByCode(code)
	if err != nil {
		return err
	}
	if branch == nil {
		return domain.ErrNotFound
	}
	return nil
}

// ToRecordResponse maps a ledger record to its response DTO.
func ToRecordResponse(rec *entity.StockRecord) dto.StockRecordResponse {
	return dto.StockRecordResponse{
		Serial:       rec.Serial,
		Kind:         rec.Kind,
		TxnType:      rec.TxnType,
		LocationCode: rec.LocationCode,
		ItemName:     rec.ItemName,
		ChassisNo:    rec.ChassisNo,
		PartCode:     rec.PartCode,
		HSNCode:      rec.HSNCode,
		UnitPrice:    rec.UnitPrice,
		OpeningStock: rec.OpeningStock,
		UnitsSold:    rec.UnitsSold,
		AddedQty:     rec.AddedQty,
		ClosingStock: rec.ClosingStock,
		RecordDate:   rec.RecordDate.Format("2006-01-02"),
	}
}
