// Package render turns a finalized slip record into a printable
// document: a structured layout consumed by the PDF materializer plus a
// self-contained HTML rendering for the viewer surface. Rendering is
// total over any valid record; missing optional fields come out empty,
// never as an error.
package render

import (
	"fmt"

	"github.com/bmscold/slipdesk/internal/domain/models"
)

// Company identity block printed at the top of every document.
const (
	CompanyName    = "BMS COLD STORAGE"
	CompanyUnit    = "(A UNIT OF CHANDAN TRADING COMPANY PVT. LTD.)"
	CompanyAddress = "Village - BANA (DHARSIWA) RAIPUR 492099"
	CompanyPhone   = "Mob.: 7024566009, 7024066009"
	CompanyEmail   = "E-mail: bmscoldstorage@gmail.com"
)

// FieldRow is one labeled line of a slip document.
type FieldRow struct {
	Label string
	Value string
}

// ChargeRow is one category line of the invoice charge table.
type ChargeRow struct {
	Description string
	JanRate     string
	FebRate     string
	MonthlyRate string
	Quantity    string
	Amount      string
}

// Document is the renderer's output: everything a layout backend needs
// to produce the printable artifact, independent of that backend.
type Document struct {
	Kind       models.SlipKind
	Title      string // bilingual document heading
	SlipNumber string

	Fields []FieldRow

	// Invoice-only charge table and totals. Empty for slips.
	ChargeRows    []ChargeRow
	GrandTotal    string
	AmountInWords string

	FooterNote string
}

// Render maps a slip record onto its document layout. One fixed template
// per kind.
func Render(rec models.SlipRecord) (*Document, error) {
	switch rec.Kind {
	case models.KindGetIn:
		return renderGetIn(rec), nil
	case models.KindGetOut:
		return renderGetOut(rec), nil
	case models.KindInvoice:
		return renderInvoice(rec), nil
	}
	return nil, fmt.Errorf("render: unknown slip kind %q", rec.Kind)
}

func renderGetIn(rec models.SlipRecord) *Document {
	in := rec.GetIn
	if in == nil {
		in = &models.GetInDetails{}
	}

	return &Document{
		Kind:       rec.Kind,
		Title:      "आवक पर्ची / Provisional Receipt",
		SlipNumber: rec.SlipNumber,
		Fields: []FieldRow{
			{"क्र.:", rec.SlipNumber},
			{"दिनांक:", formatSlipDate(rec.Date)},
			{"पार्टी का नाम:", rec.PartyName},
			{"मार्फत / एजेंट:", in.SourceAgent},
			{"जिन्स:", in.MaterialName},
			{"भरती:", in.BhartiCount},
			{"किल्ला:", in.KillaCount},
			{"धरमकाँटा वजन:", in.WeighbridgeWeight},
			{"ताड़ वजन:", joinNonEmpty(in.Quantity, in.Rate)},
			{"ट्रक नं.:", in.VehicleNumber},
			{"ड्राइवर:", in.DriverName},
			{"मोबाइल नं.:", in.MobileNumber},
			{"रिमार्क्स:", in.Remarks},
		},
		FooterNote: "प्रतिनिधि / ड्राइवर के हस्ताक्षर __________ प्रबंधक",
	}
}

func renderGetOut(rec models.SlipRecord) *Document {
	out := rec.GetOut
	if out == nil {
		out = &models.GetOutDetails{}
	}

	return &Document{
		Kind:       rec.Kind,
		Title:      "गेट पास / Gate Pass",
		SlipNumber: rec.SlipNumber,
		Fields: []FieldRow{
			{"क्र.:", rec.SlipNumber},
			{"दिनांक:", formatSlipDate(rec.Date)},
			{"पार्टी का नाम:", rec.PartyName},
			{"स्थान:", out.Destination},
			{"मार्फत / माल प्राप्तकर्ता:", out.MaterialReceiver},
			{"जिन्स:", out.MaterialKind},
			{"माल नंबर / रसीद नं.:", out.ReceiptNumber},
			{"बोरा:", out.BagCount},
			{"धरमकाँटा वजन:", out.WeighbridgeWeight},
			{"ट्रक नं.:", out.VehicleNumber},
			{"ड्राइवर:", out.DriverName},
			{"रिमार्क्स:", out.Remarks},
		},
		FooterNote: "प्रतिनिधि / ड्राइवर के हस्ताक्षर __________ प्रबंधक",
	}
}

func renderInvoice(rec models.SlipRecord) *Document {
	inv := rec.Invoice
	if inv == nil {
		inv = &models.InvoiceDetails{}
	}
	ch := inv.Charges

	return &Document{
		Kind:       rec.Kind,
		Title:      "INVOICE",
		SlipNumber: rec.SlipNumber,
		Fields: []FieldRow{
			{"Invoice No.", rec.SlipNumber},
			{"Date", formatSlipDate(rec.Date)},
			{"Party Name", rec.PartyName},
			{"Lot Number", inv.LotNumber},
			{"Vehicle Number", inv.VehicleNumber},
			{"Storage Period", periodValue(inv.StoragePeriodStart, inv.StoragePeriodEnd)},
			{"Total Storage Days", inv.TotalStorageDays},
		},
		ChargeRows: []ChargeRow{
			{
				Description: "Storage Charges",
				MonthlyRate: ch.Storage.MonthlyRate,
				Quantity:    ch.Storage.Quantity,
				Amount:      ch.StorageAmount,
			},
			{
				Description: "Hamali Charges",
				MonthlyRate: ch.Hamali.MonthlyRate,
				Quantity:    ch.Hamali.Quantity,
				Amount:      ch.HamaliAmount,
			},
			{
				Description: "Off-Season Charges",
				JanRate:     ch.OffSeason.JanuaryRate,
				FebRate:     ch.OffSeason.FebruaryRate,
				MonthlyRate: ch.OffSeasonMonthlyRate,
				Quantity:    ch.OffSeason.Quantity,
				Amount:      ch.OffSeasonAmount,
			},
			{
				Description: "Other Charges",
				MonthlyRate: ch.Other.MonthlyRate,
				Quantity:    ch.Other.Quantity,
				Amount:      ch.OtherAmount,
			},
		},
		GrandTotal:    ch.GrandTotal,
		AmountInWords: ch.AmountInWords,
		FooterNote:    "Authorized Signatory (For BMS Cold Storage)",
	}
}

// formatSlipDate rewrites yyyy-mm-dd into dd/mm/yyyy for print; anything
// else passes through untouched.
func formatSlipDate(d string) string {
	if len(d) != 10 || d[4] != '-' || d[7] != '-' {
		return d
	}
	return d[8:10] + "/" + d[5:7] + "/" + d[0:4]
}

func periodValue(from, to string) string {
	if from == "" && to == "" {
		return ""
	}
	return fmt.Sprintf("%s To %s", formatSlipDate(from), formatSlipDate(to))
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " / " + b
}
