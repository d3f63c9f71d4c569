package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/bmscold/slipdesk/internal/domain/models"
)

// documentTemplate mirrors the original printed slips: inline styling
// only, so the markup stays consumable standalone by whatever opens it.
var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Arial, sans-serif; padding: 20px; background: {{.Background}}; }
.header { text-align: center; margin-bottom: 20px; }
.header h2 { margin: 5px 0; }
.content { border: 2px solid #000; padding: 15px; }
.row { display: flex; margin-bottom: 10px; }
.label { width: 200px; font-weight: bold; }
.value { flex: 1; border-bottom: 1px solid #000; }
table { width: 100%; border-collapse: collapse; margin: 15px 0; }
table, th, td { border: 1px solid #000; }
th, td { padding: 8px; text-align: left; }
.footer { text-align: right; margin-top: 30px; }
</style>
</head>
<body>
<div class="header">
<h3>{{.Title}}</h3>
<h2>{{.CompanyName}}</h2>
<p>{{.CompanyUnit}}</p>
<p>{{.CompanyAddress}}</p>
<p>{{.CompanyPhone}}</p>
<p>{{.CompanyEmail}}</p>
</div>
<div class="content">
{{- range .Fields}}
<div class="row"><div class="label">{{.Label}}</div><div class="value">{{.Value}}</div></div>
{{- end}}
{{- if .ChargeRows}}
<table>
<thead>
<tr><th>Description</th><th>Jan (Rate)</th><th>Feb (Rate)</th><th>Other Months (Rate)</th><th>Quantity</th><th>Amount (INR)</th></tr>
</thead>
<tbody>
{{- range .ChargeRows}}
<tr><td>{{.Description}}</td><td>{{.JanRate}}</td><td>{{.FebRate}}</td><td>{{.MonthlyRate}}</td><td>{{.Quantity}}</td><td>{{.Amount}}</td></tr>
{{- end}}
<tr><td><strong>Total Amount</strong></td><td></td><td></td><td></td><td></td><td><strong>{{.GrandTotal}}</strong></td></tr>
</tbody>
</table>
<div class="row"><div class="label">Grand Total (INR)</div><div class="value">{{.GrandTotal}}</div></div>
<div class="row"><div class="label">Amount in Words</div><div class="value">{{.AmountInWords}}</div></div>
{{- end}}
</div>
<div class="footer"><p>{{.FooterNote}}</p></div>
</body>
</html>
`))

type htmlContext struct {
	*Document
	Background     template.CSS
	CompanyName    string
	CompanyUnit    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string
}

// HTML renders the document as a single self-contained page.
func (d *Document) HTML() (string, error) {
	var buf strings.Builder

	err := documentTemplate.Execute(&buf, htmlContext{
		Document:       d,
		Background:     backgroundFor(d.Kind),
		CompanyName:    CompanyName,
		CompanyUnit:    CompanyUnit,
		CompanyAddress: CompanyAddress,
		CompanyPhone:   CompanyPhone,
		CompanyEmail:   CompanyEmail,
	})
	if err != nil {
		return "", fmt.Errorf("execute document template: %w", err)
	}

	return buf.String(), nil
}

// The original slips are printed on colored paper stock; the background
// keeps the kinds visually distinct on screen.
func backgroundFor(kind models.SlipKind) template.CSS {
	switch kind {
	case models.KindGetIn:
		return "#ffffcc"
	case models.KindGetOut:
		return "#ffccff"
	}
	return "#ffffff"
}
