// Package fiscal implementa la cascada monetaria del documento: los importes
// derivados de cada fila y su agregación a nivel documento. Es un servicio de
// dominio puro: recibe un snapshot inmutable de entradas ya resueltas (tasas
// incluidas) y devuelve un resultado estructurado, en un orden de evaluación
// fijo. Toda la aritmética usa decimal de precisión fija; nunca float64.
package fiscal

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
)

var oneHundred = decimal.NewFromInt(100)

// RowInput es el snapshot de entrada de una fila. Los porcentajes llegan ya
// resueltos por el caller (cero cuando la fila no referencia la tasa); la
// verificación de referencias rotas ocurre antes, en la resolución.
type RowInput struct {
	TaxableBase decimal.Decimal // imponible descontado
	VAT         decimal.Decimal // IVA sobre el imponible, calculada fuera de la cascada
	VATRatePct  decimal.Decimal // alícuota IVA (para la IVA sobre rivalsa)

	SurchargeRatePct   decimal.Decimal // rivalsa
	WithholdingRatePct decimal.Decimal // ritenuta d'acconto
	WithholdingMode    string          // entity.WithholdingModeIMP | entity.WithholdingModeIMPRIV

	// Ritenuta contributi: la regla viene SIEMPRE del documento padre; el flag
	// de la fila sólo habilita el cálculo.
	ContributionEnabled bool
	ContributionBasePct decimal.Decimal
	ContributionRatePct decimal.Decimal

	SplitPayment bool // flag del documento padre
}

// RowResult son los importes derivados de una fila.
type RowResult struct {
	Surcharge               decimal.Decimal // rivalsa
	VATOnSurcharge          decimal.Decimal // IVA sobre la rivalsa
	WithholdingTax          decimal.Decimal // ritenuta d'acconto
	ContributionWithholding decimal.Decimal // ritenuta contributi
	Total                   decimal.Decimal // imponible + IVA + rivalsa + IVA rivalsa
	Net                     decimal.Decimal // total - ritenute (- IVA si split payment)
}

// ComputeRow ejecuta la cascada en orden fijo:
//
//  1. rivalsa            = imponible * %rivalsa / 100
//  2. IVA sobre rivalsa  = rivalsa * %IVA / 100
//  3. ritenuta d'acconto = base * %ritenuta / 100, con base = imponible
//     (modo IMP) o imponible + rivalsa (modo IMP+RIV)
//  4. ritenuta contributi = (imponible * %base / 100) * %tasa / 100,
//     sólo si el flag está activo; si no, cero (política documentada, no error)
//  5. total = imponible + IVA + rivalsa + IVA rivalsa
//  6. neto  = total - ritenuta d'acconto - ritenuta contributi;
//     con split payment se resta además la IVA de la fila (una sola vez)
func ComputeRow(in RowInput) RowResult {
	var out RowResult

	out.Surcharge = in.TaxableBase.Mul(in.SurchargeRatePct).Div(oneHundred)
	out.VATOnSurcharge = out.Surcharge.Mul(in.VATRatePct).Div(oneHundred)

	withholdingBase := in.TaxableBase
	if in.WithholdingMode == entity.WithholdingModeIMPRIV {
		withholdingBase = withholdingBase.Add(out.Surcharge)
	}
	out.WithholdingTax = withholdingBase.Mul(in.WithholdingRatePct).Div(oneHundred)

	if in.ContributionEnabled {
		contributionBase := in.TaxableBase.Mul(in.ContributionBasePct).Div(oneHundred)
		out.ContributionWithholding = contributionBase.Mul(in.ContributionRatePct).Div(oneHundred)
	} else {
		out.ContributionWithholding = decimal.Zero
	}

	out.Total = in.TaxableBase.Add(in.VAT).Add(out.Surcharge).Add(out.VATOnSurcharge)

	out.Net = out.Total.Sub(out.WithholdingTax).Sub(out.ContributionWithholding)
	if in.SplitPayment {
		out.Net = out.Net.Sub(in.VAT)
	}

	return out
}
