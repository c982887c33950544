package billing

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nexvolt/evretail-api/internal/application/dto"
	"github.com/nexvolt/evretail-api/internal/domain"
	"github.com/nexvolt/evretail-api/internal/domain/entity"
	"github.com/nexvolt/evretail-api/internal/domain/numword"
	"github.com/nexvolt/evretail-api/internal/domain/repository"
)

// Invoice numbers are prefix plus a random 4-digit suffix. A unique index backs the
// number, so a collision surfaces as ErrDuplicate and issuance retries with a fresh
// suffix instead of accepting a duplicate.
const numberAttempts = 3

// IssueInvoiceUseCase validates a sale against the stock ledger and, in one
// transaction, appends the SALE record and persists the invoice.
type IssueInvoiceUseCase struct {
	txRunner    BillingTxRunner
	ledgerUC    LedgerUseCase
	branchRepo  repository.BranchRepository
	invoiceRepo repository.InvoiceRepository
	prefix      string
}

// NewIssueInvoiceUseCase builds the use case. prefix is the invoice number prefix,
// e.g. "NXV".
func NewIssueInvoiceUseCase(
	txRunner BillingTxRunner,
	ledgerUC LedgerUseCase,
	branchRepo repository.BranchRepository,
	invoiceRepo repository.InvoiceRepository,
	prefix string,
) *IssueInvoiceUseCase {
	return &IssueInvoiceUseCase{
		txRunner:    txRunner,
		ledgerUC:    ledgerUC,
		branchRepo:  branchRepo,
		invoiceRepo: invoiceRepo,
		prefix:      prefix,
	}
}

// IssueInvoice issues an invoice for a sale. The unit rate comes from the request when
// supplied, otherwise from the unit price carried on the latest ledger record of the
// pair. Total = quantity × rate, exact. On ErrOutOfStock nothing is persisted.
func (uc *IssueInvoiceUseCase) IssueInvoice(ctx context.Context, userID string, in dto.IssueInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}

	var inv *entity.Invoice
	var err error
	for attempt := 0; attempt < numberAttempts; attempt++ {
		inv, err = uc.issueOnce(ctx, userID, in)
		if err == nil || !errors.Is(err, domain.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

func (uc *IssueInvoiceUseCase) validate(in dto.IssueInvoiceRequest) error {
	if !entity.ValidKind(in.Kind) || in.LocationCode == "" || in.ItemName == "" || in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if in.UnitRate != nil && in.UnitRate.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidInput
	}

	switch in.BuyerType {
	case entity.BuyerBranch:
		if in.BuyerBranchCode == "" {
			return domain.ErrInvalidInput
		}
		buyer, err := uc.branchRepo.GetByCode(in.BuyerBranchCode)
		if err != nil {
			return err
		}
		if buyer == nil {
			return domain.ErrNotFound
		}
	case entity.BuyerCustomer:
		if in.CustomerName == "" {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}

	seller, err := uc.branchRepo.GetByCode(in.LocationCode)
	if err != nil {
		return err
	}
	if seller == nil {
		return domain.ErrNotFound
	}
	return nil
}

// issueOnce runs one transactional attempt: ledger append, then invoice insert.
func (uc *IssueInvoiceUseCase) issueOnce(ctx context.Context, userID string, in dto.IssueInvoiceRequest) (*entity.Invoice, error) {
	now := time.Now()
	number := fmt.Sprintf("%s-%04d", uc.prefix, rand.IntN(10000))

	chassisNo := ""
	if in.Specs != nil {
		chassisNo = in.Specs.ChassisNo
	}

	var inv *entity.Invoice
	err := uc.txRunner.RunBilling(ctx, func(
		recordRepo repository.StockRecordRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		sale, err := uc.ledgerUC.AppendSaleInTx(
			recordRepo,
			in.Kind, in.LocationCode, in.ItemName,
			in.Quantity,
			chassisNo,
			now,
			userID,
		)
		if err != nil {
			return err
		}

		rate := in.UnitRate
		if rate == nil {
			rate = sale.UnitPrice
		}
		if rate == nil {
			// No rate on the request and none ever recorded for the pair.
			return domain.ErrInvalidInput
		}

		inv = &entity.Invoice{
			ID:              uuid.New().String(),
			Number:          number,
			Kind:            in.Kind,
			LocationCode:    in.LocationCode,
			ItemName:        in.ItemName,
			Quantity:        in.Quantity,
			UnitRate:        *rate,
			Total:           rate.Mul(decimal.NewFromInt(in.Quantity)),
			BuyerType:       in.BuyerType,
			BuyerBranchCode: in.BuyerBranchCode,
			CustomerName:    in.CustomerName,
			CustomerPhone:   in.CustomerPhone,
			CustomerAddress: in.CustomerAddress,
			LedgerSerial:    sale.Serial,
			IssueDate:       sale.RecordDate,
			CreatedAt:       now,
			CreatedBy:       userID,
		}
		if in.Specs != nil {
			inv.Specs = entity.VehicleSpecs{
				ChassisNo:    in.Specs.ChassisNo,
				MotorNo:      in.Specs.MotorNo,
				ControllerNo: in.Specs.ControllerNo,
				ChargerNo:    in.Specs.ChargerNo,
				BatteryNo:    in.Specs.BatteryNo,
			}
		}
		return invoiceRepo.Create(inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// GetInvoice returns an invoice by ID.
func (uc *IssueInvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return ToInvoiceResponse(inv), nil
}

// ListInvoices lists invoices, newest first.
func (uc *IssueInvoiceUseCase) ListInvoices(ctx context.Context, filter repository.InvoiceFilter) (*dto.InvoiceListResponse, error) {
	if filter.Kind != "" && !entity.ValidKind(filter.Kind) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.invoiceRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *ToInvoiceResponse(inv))
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// ToInvoiceResponse maps an invoice to its response DTO, including the amount in
// words (Indian numbering).
func ToInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	if inv == nil {
		return nil
	}
	resp := &dto.InvoiceResponse{
		ID:              inv.ID,
		Number:          inv.Number,
		Kind:            inv.Kind,
		LocationCode:    inv.LocationCode,
		ItemName:        inv.ItemName,
		Quantity:        inv.Quantity,
		UnitRate:        inv.UnitRate,
		Total:           inv.Total,
		InWords:         numword.Rupees(inv.Total),
		BuyerType:       inv.BuyerType,
		BuyerBranchCode: inv.BuyerBranchCode,
		CustomerName:    inv.CustomerName,
		CustomerPhone:   inv.CustomerPhone,
		CustomerAddress: inv.CustomerAddress,
		LedgerSerial:    inv.LedgerSerial,
		IssueDate:       inv.IssueDate.Format("2006-01-02"),
	}
	if inv.Kind == entity.KindVehicle && inv.Specs != (entity.VehicleSpecs{}) {
		resp.Specs = &dto.VehicleSpecsDTO{
			ChassisNo:    inv.Specs.ChassisNo,
			MotorNo:      inv.Specs.MotorNo,
			ControllerNo: inv.Specs.ControllerNo,
			ChargerNo:    inv.Specs.ChargerNo,
			BatteryNo:    inv.Specs.BatteryNo,
		}
	}
	return resp
}
