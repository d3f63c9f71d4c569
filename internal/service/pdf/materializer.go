// Package pdf materializes rendered slip documents into PDF artifacts.
package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/bmscold/slipdesk/internal/service/render"
)

// MIMEType of every artifact this package produces.
const MIMEType = "application/pdf"

// Materializer converts a rendered document into a binary artifact.
// This is the first pipeline step that can fail recoverably; a failure
// must abort the whole attempt with no partial side effects.
type Materializer interface {
	Materialize(ctx context.Context, doc *render.Document) ([]byte, error)
}

// Maroto is the production Materializer backed by maroto's layout engine.
type Maroto struct{}

// NewMaroto returns a ready-to-use PDF materializer.
func NewMaroto() *Maroto {
	return &Maroto{}
}

// Materialize lays out the document and returns the PDF bytes.
//
// TODO: embed a Devanagari-capable TTF so the Hindi labels render with
// the correct glyphs; the built-in core fonts only cover Latin.
func (g *Maroto) Materialize(ctx context.Context, doc *render.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("materialize: nil document")
	}

	cfg := config.NewBuilder().
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		Build()

	m := maroto.New(cfg)

	addHeader(m, doc)
	addFieldRows(m, doc)
	if len(doc.ChargeRows) > 0 {
		addChargeTable(m, doc)
	}
	addFooter(m, doc)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf for slip %s: %w", doc.SlipNumber, err)
	}

	return out.GetBytes(), nil
}

func addHeader(m core.Maroto, doc *render.Document) {
	m.AddRow(8, col.New(12).Add(
		text.New(doc.Title, props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Center}),
	))
	m.AddRow(10, col.New(12).Add(
		text.New(render.CompanyName, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center}),
	))
	m.AddRow(16, col.New(12).Add(
		text.New(render.CompanyUnit, props.Text{Size: 8, Align: align.Center}),
		text.New(render.CompanyAddress, props.Text{Size: 8, Top: 4, Align: align.Center}),
		text.New(render.CompanyPhone+"  "+render.CompanyEmail, props.Text{Size: 8, Top: 8, Align: align.Center}),
	))
	m.AddRow(4, line.NewCol(12))
}

func addFieldRows(m core.Maroto, doc *render.Document) {
	for _, f := range doc.Fields {
		m.AddRow(7,
			col.New(4).Add(
				text.New(f.Label, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left}),
			),
			col.New(8).Add(
				text.New(f.Value, props.Text{Size: 10, Align: align.Left}),
			),
		)
	}
}

func addChargeTable(m core.Maroto, doc *render.Document) {
	m.AddRow(3, line.NewCol(12))

	header := []string{"Description", "Jan (Rate)", "Feb (Rate)", "Other Months (Rate)", "Quantity", "Amount (INR)"}
	widths := []int{3, 1, 1, 3, 2, 2}

	headerCols := make([]core.Col, 0, len(header))
	for i, h := range header {
		headerCols = append(headerCols, col.New(widths[i]).Add(
			text.New(h, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}),
		))
	}
	m.AddRow(8, headerCols...)
	m.AddRow(2, line.NewCol(12))

	for _, row := range doc.ChargeRows {
		cells := []string{row.Description, row.JanRate, row.FebRate, row.MonthlyRate, row.Quantity, row.Amount}
		rowCols := make([]core.Col, 0, len(cells))
		for i, v := range cells {
			rowCols = append(rowCols, col.New(widths[i]).Add(
				text.New(v, props.Text{Size: 9, Align: align.Left}),
			))
		}
		m.AddRow(7, rowCols...)
	}

	m.AddRow(2, line.NewCol(12))
	m.AddRow(8,
		col.New(8).Add(
			text.New("Grand Total (INR)", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left}),
		),
		col.New(4).Add(
			text.New(doc.GrandTotal, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		),
	)
	m.AddRow(8,
		col.New(4).Add(
			text.New("Amount in Words", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left}),
		),
		col.New(8).Add(
			text.New(doc.AmountInWords, props.Text{Size: 10, Align: align.Left}),
		),
	)
}

func addFooter(m core.Maroto, doc *render.Document) {
	m.AddRow(20, col.New(12).Add(
		text.New(doc.FooterNote, props.Text{Size: 9, Top: 12, Align: align.Right}),
	))
}
