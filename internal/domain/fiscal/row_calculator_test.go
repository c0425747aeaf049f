package fiscal_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
	"github.com/tu-usuario/invoicing-pro/internal/domain/fiscal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertDec compara decimales por valor (no por representación interna).
func assertDec(t *testing.T, expected string, actual decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual),
		"%s: esperado %s, obtenido %s", msg, expected, actual)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cascada completa: imponible 1000, rivalsa 4%, IVA 22%, ritenuta 20% IMP
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeRow_CascadaCompleta(t *testing.T) {
	out := fiscal.ComputeRow(fiscal.RowInput{
		TaxableBase:        dec("1000"),
		VAT:                dec("220"),
		VATRatePct:         dec("22"),
		SurchargeRatePct:   dec("4"),
		WithholdingRatePct: dec("20"),
		WithholdingMode:    entity.WithholdingModeIMP,
	})

	assertDec(t, "40", out.Surcharge, "rivalsa = 1000 * 4%")
	assertDec(t, "8.8", out.VATOnSurcharge, "IVA sobre rivalsa = 40 * 22%")
	assertDec(t, "200", out.WithholdingTax, "ritenuta IMP = 1000 * 20%")
	assertDec(t, "0", out.ContributionWithholding, "sin flag de contribuciones")
	assertDec(t, "1268.8", out.Total, "total = 1000 + 220 + 40 + 8.8")
	assertDec(t, "1068.8", out.Net, "neto = total - ritenuta")
}

func TestComputeRow_RitenutaModoIMPRIV(t *testing.T) {
	out := fiscal.ComputeRow(fiscal.RowInput{
		TaxableBase:        dec("1000"),
		VAT:                dec("220"),
		VATRatePct:         dec("22"),
		SurchargeRatePct:   dec("4"),
		WithholdingRatePct: dec("20"),
		WithholdingMode:    entity.WithholdingModeIMPRIV,
	})

	// Base de ritenuta = imponible + rivalsa = 1040
	assertDec(t, "208", out.WithholdingTax, "ritenuta IMP+RIV = (1000+40) * 20%")
	assertDec(t, "1268.8", out.Total, "el total no depende del modo de ritenuta")
	assertDec(t, "1060.8", out.Net, "neto = 1268.8 - 208")
}

func TestComputeRow_SplitPayment_RestaIVAUnaVez(t *testing.T) {
	in := fiscal.RowInput{
		TaxableBase:        dec("1000"),
		VAT:                dec("220"),
		VATRatePct:         dec("22"),
		WithholdingRatePct: dec("20"),
		WithholdingMode:    entity.WithholdingModeIMP,
	}

	plain := fiscal.ComputeRow(in)
	in.SplitPayment = true
	split := fiscal.ComputeRow(in)

	assert.True(t, plain.Total.Equal(split.Total),
		"split payment no altera el total, sólo el neto")
	assertDec(t, "220", plain.Net.Sub(split.Net), "con split payment el neto baja en la IVA de la fila")
}

func TestComputeRow_ContribucionesGatedPorFlag(t *testing.T) {
	in := fiscal.RowInput{
		TaxableBase:         dec("1000"),
		ContributionBasePct: dec("100"),
		ContributionRatePct: dec("4"),
		WithholdingMode:     entity.WithholdingModeIMP,
	}

	sinFlag := fiscal.ComputeRow(in)
	assertDec(t, "0", sinFlag.ContributionWithholding, "flag apagado: contribución cero, no error")

	in.ContributionEnabled = true
	conFlag := fiscal.ComputeRow(in)
	assertDec(t, "40", conFlag.ContributionWithholding, "contribución = (1000 * 100%) * 4%")
	assertDec(t, "960", conFlag.Net, "neto = 1000 - 40")
}

func TestComputeRow_ContribucionConBaseParcial(t *testing.T) {
	out := fiscal.ComputeRow(fiscal.RowInput{
		TaxableBase:         dec("2000"),
		ContributionEnabled: true,
		ContributionBasePct: dec("50"),
		ContributionRatePct: dec("10"),
		WithholdingMode:     entity.WithholdingModeIMP,
	})

	// (2000 * 50%) * 10% = 100
	assertDec(t, "100", out.ContributionWithholding, "la base parcial se aplica antes de la tasa")
}

func TestComputeRow_SinTasas_TodoCero(t *testing.T) {
	out := fiscal.ComputeRow(fiscal.RowInput{
		TaxableBase:     dec("500"),
		VAT:             dec("110"),
		WithholdingMode: entity.WithholdingModeIMP,
	})

	assertDec(t, "0", out.Surcharge, "sin rivalsa")
	assertDec(t, "0", out.VATOnSurcharge, "sin IVA sobre rivalsa")
	assertDec(t, "0", out.WithholdingTax, "sin ritenuta")
	assertDec(t, "610", out.Total, "total = imponible + IVA")
	assertDec(t, "610", out.Net, "neto = total")
}
