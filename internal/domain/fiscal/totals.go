package fiscal

import "github.com/shopspring/decimal"

// DocumentTotals son los totales del documento, derivados por suma de los
// resultados de fila más el bollo. La suma decimal es asociativa: el orden de
// las filas no altera el resultado.
type DocumentTotals struct {
	Net                          decimal.Decimal // neto a pagar: Σ neto fila + bollo
	SurchargeTotal               decimal.Decimal
	VATTotal                     decimal.Decimal // Σ IVA fila + Σ IVA sobre rivalsa
	VATOnSurchargeTotal          decimal.Decimal
	WithholdingTaxTotal          decimal.Decimal
	ContributionWithholdingTotal decimal.Decimal
}

// RowComputation empareja la entrada resuelta de una fila con su resultado.
type RowComputation struct {
	RowID       string
	Description string
	Input       RowInput
	Result      RowResult
}

// Aggregate suma los resultados de fila y aplica el bollo al neto.
func Aggregate(rows []RowComputation, stampDuty decimal.Decimal) DocumentTotals {
	var t DocumentTotals
	for _, r := range rows {
		t.Net = t.Net.Add(r.Result.Net)
		t.SurchargeTotal = t.SurchargeTotal.Add(r.Result.Surcharge)
		t.VATTotal = t.VATTotal.Add(r.Input.VAT).Add(r.Result.VATOnSurcharge)
		t.VATOnSurchargeTotal = t.VATOnSurchargeTotal.Add(r.Result.VATOnSurcharge)
		t.WithholdingTaxTotal = t.WithholdingTaxTotal.Add(r.Result.WithholdingTax)
		t.ContributionWithholdingTotal = t.ContributionWithholdingTotal.Add(r.Result.ContributionWithholding)
	}
	t.Net = t.Net.Add(stampDuty)
	return t
}
