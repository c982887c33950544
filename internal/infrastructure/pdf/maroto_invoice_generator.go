// Package pdf renders the printable sale invoice.
//
// A5-ish layout on A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Branch name + city   │  Invoice no. + Date          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILLED TO: branch code, or customer name + phone + address  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Qty | Item | Rate | Amount                           │
//	│  SPECS: chassis / motor / controller / charger / battery     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL + amount in words (Indian numbering)                  │
//	│  SIGNATURE: authorised signatory                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	appbilling "github.com/nexvolt/evretail-api/internal/application/billing"
	"github.com/nexvolt/evretail-api/internal/domain/entity"
	"github.com/nexvolt/evretail-api/internal/domain/numword"
)

var _ appbilling.InvoicePDFGenerator = (*MarotoInvoiceGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 16, Green: 98, Blue: 70}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// inr formats amounts with Indian digit grouping, e.g. 129999.00 -> "1,29,999.00".
var inr = message.NewPrinter(language.MustParse("en-IN"))

// MarotoInvoiceGenerator implements billing.InvoicePDFGenerator with Maroto v2.
type MarotoInvoiceGenerator struct{}

// NewMarotoInvoiceGenerator builds the generator.
func NewMarotoInvoiceGenerator() *MarotoInvoiceGenerator { return &MarotoInvoiceGenerator{} }

// GenerateInvoicePDF renders the invoice and returns the PDF bytes. seller may be nil
// when the branch was deleted after issuance; the location code is printed instead.
func (g *MarotoInvoiceGenerator) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice, seller *entity.Branch) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Tax Invoice "+inv.Number, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv, seller))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(billedToRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRow(inv))
	if inv.Kind == entity.KindVehicle {
		for _, r := range specsRows(inv.Specs) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(inv))
	m.AddRows(inWordsRow(inv.Total))

	m.AddRows(line.NewRow(8))
	m.AddRows(signatureRow(inv, seller))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: seller identity left, invoice number and date right.
func headerRow(inv *entity.Invoice, seller *entity.Branch) core.Row {
	name := inv.LocationCode
	detail := ""
	if seller != nil {
		name = seller.Name
		detail = joinNonEmpty(seller.Address, seller.City, seller.Phone)
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(detail, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("TAX INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(inv.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+inv.IssueDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// billedToRow: receiving branch or end customer.
func billedToRow(inv *entity.Invoice) core.Row {
	name := inv.CustomerName
	detail := joinNonEmpty(inv.CustomerPhone, inv.CustomerAddress)
	if inv.BuyerType == entity.BuyerBranch {
		name = "Branch " + inv.BuyerBranchCode
		detail = "Inter-branch transfer"
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("BILLED TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(detail, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Item", 6, align.Left),
		h("Rate", 2, align.Right),
		h("Amount", 3, align.Right),
	)
}

func itemRow(inv *entity.Invoice) core.Row {
	return row.New(7).Add(
		col.New(1).Add(text.New(
			fmt.Sprintf("%d", inv.Quantity),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(6).Add(text.New(
			inv.ItemName,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			formatINR(inv.UnitRate),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(3).Add(text.New(
			formatINR(inv.Total),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// specsRows: per-unit serial numbers printed under the item line for vehicles.
func specsRows(s entity.VehicleSpecs) []core.Row {
	pairs := []struct{ label, value string }{
		{"Chassis No.", s.ChassisNo},
		{"Motor No.", s.MotorNo},
		{"Controller No.", s.ControllerNo},
		{"Charger No.", s.ChargerNo},
		{"Battery No.", s.BatteryNo},
	}
	var rows []core.Row
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		rows = append(rows, row.New(4).Add(
			col.New(1),
			col.New(11).Add(text.New(
				p.label+": "+p.value,
				props.Text{Size: 7, Color: colorGray, Top: 0.5, Left: 1},
			)),
		))
	}
	return rows
}

func totalRow(inv *entity.Invoice) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New("Rs. "+formatINR(inv.Total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

func inWordsRow(total decimal.Decimal) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Amount in words: "+numword.Rupees(total), props.Text{
			Size: 8, Top: 1, Color: colorGray,
		}),
	))
}

func signatureRow(inv *entity.Invoice, seller *entity.Branch) core.Row {
	sellerName := inv.LocationCode
	if seller != nil {
		sellerName = seller.Name
	}
	return row.New(16).Add(
		col.New(7),
		col.New(5).Add(
			text.New("For "+sellerName, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New("Authorised Signatory", props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatINR renders an amount with two decimals and lakh/crore digit grouping.
func formatINR(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return inr.Sprintf("%v", number.Decimal(f,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += "   |   "
		}
		out += p
	}
	return out
}
