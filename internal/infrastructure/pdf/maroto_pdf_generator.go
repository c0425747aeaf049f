// Package pdf implementa la representación gráfica del documento fiscal.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo + Número          │  Fecha                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Descripción | Imponible | IVA | Rivalsa | Ritenuta  │
//	│         | Total                                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Rivalsa / IVA / Ritenute / Contribuciones /       │
//	│           Bollo / NETO A PAGAR                              │
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

	appbilling "github.com/tu-usuario/invoicing-pro/internal/application/billing"
	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Formato de importes con separadores de miles estilo italiano (1.234,56).
var amountPrinter = message.NewPrinter(language.Italian)

var _ appbilling.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.DocumentPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateDocumentPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDocumentPDF(
	_ context.Context,
	doc *entity.Document,
	rows []appbilling.RowForPDF,
	totals appbilling.TotalsForPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Documento fiscal", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc, totals))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tipo + número (izq) y fecha (der).
func headerRow(doc *entity.Document) core.Row {
	title := "FACTURA EMITIDA"
	number := doc.Number
	if doc.Direction == entity.DirectionInbound {
		title = "FACTURA RECIBIDA"
		number = doc.ExternalNumber
	}
	if number == "" {
		number = "(sin numerar)"
	}

	return row.New(16).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(number, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 6,
			}),
		),
		col.New(5).Add(
			text.New("Fecha: "+doc.Date.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de filas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Descripción", 4, align.Left),
		h("Imponible", 2, align.Right),
		h("IVA", 1, align.Right),
		h("Rivalsa", 2, align.Right),
		h("Ritenuta", 1, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableRows: una fila por línea del documento.
func tableRows(rows []appbilling.RowForPDF) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(7).Add(
			cell(r.Description, 4, align.Left),
			cell(formatAmount(r.TaxableBase), 2, align.Right),
			cell(formatAmount(r.VAT), 1, align.Right),
			cell(formatAmount(r.Surcharge), 2, align.Right),
			cell(formatAmount(r.WithholdingTax), 1, align.Right),
			cell(formatAmount(r.Total), 2, align.Right),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha; el neto resaltado.
func totalsRow(doc *entity.Document, totals appbilling.TotalsForPDF) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	labels := []core.Component{
		label("Rivalsa:"),
		label("IVA:"),
		label("Ritenuta d'acconto:"),
		label("Ritenuta contributi:"),
		label("Bollo:"),
		grandLabel("NETO A PAGAR:"),
	}
	values := []core.Component{
		value(formatAmount(totals.SurchargeTotal)),
		value(formatAmount(totals.VATTotal)),
		value(formatAmount(totals.WithholdingTaxTotal)),
		value(formatAmount(totals.ContributionWithholdingTotal)),
		value(formatAmount(totals.StampDuty)),
		grandValue(formatAmount(totals.Net)),
	}

	return row.New(40).Add(
		col.New(4), // espacio izquierdo
		col.New(4).Add(labels...),
		col.New(4).Add(values...),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

var centsFactor = decimal.NewFromInt(100)

// formatAmount renderiza un importe con dos decimales y separadores de miles
// según la convención italiana (1.234,56). El valor se mantiene en decimal de
// punta a punta: la parte entera pasa localizada por el printer y los
// céntimos se anexan en exacto.
func formatAmount(d decimal.Decimal) string {
	r := d.Round(2)
	units := r.IntPart()
	cents := r.Sub(decimal.NewFromInt(units)).Abs().Mul(centsFactor).IntPart()
	sign := ""
	if r.IsNegative() && units == 0 {
		// -0,xx: el signo no sobrevive a IntPart.
		sign = "-"
	}
	return "€ " + sign + amountPrinter.Sprintf("%d", units) + fmt.Sprintf(",%02d", cents)
}
