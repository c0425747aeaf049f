package billing

import (
	"context"
)

// DocumentPDFUseCase calcula los importes del documento y delega el render
// al generador configurado.
type DocumentPDFUseCase struct {
	totals    *ComputeTotalsUseCase
	generator DocumentPDFGenerator
}

// NewDocumentPDFUseCase construye el caso de uso.
func NewDocumentPDFUseCase(totals *ComputeTotalsUseCase, generator DocumentPDFGenerator) *DocumentPDFUseCase {
	return &DocumentPDFUseCase{totals: totals, generator: generator}
}

// Generate devuelve el PDF del documento con sus filas e importes derivados.
func (uc *DocumentPDFUseCase) Generate(ctx context.Context, documentID string) ([]byte, error) {
	doc, totals, computations, err := uc.totals.ComputeByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	rows := make([]RowForPDF, len(computations))
	for i, c := range computations {
		rows[i] = RowForPDF{
			Description:    c.Description,
			TaxableBase:    c.Input.TaxableBase,
			VAT:            c.Input.VAT,
			Surcharge:      c.Result.Surcharge,
			WithholdingTax: c.Result.WithholdingTax,
			Total:          c.Result.Total,
		}
	}

	return uc.generator.GenerateDocumentPDF(ctx, doc, rows, TotalsForPDF{
		Net:                          totals.Net,
		VATTotal:                     totals.VATTotal,
		SurchargeTotal:               totals.SurchargeTotal,
		WithholdingTaxTotal:          totals.WithholdingTaxTotal,
		ContributionWithholdingTotal: totals.ContributionWithholdingTotal,
		StampDuty:                    doc.StampDuty,
	})
}
