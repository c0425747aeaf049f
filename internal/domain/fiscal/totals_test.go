package fiscal_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
	"github.com/tu-usuario/invoicing-pro/internal/domain/fiscal"
)

func computation(in fiscal.RowInput) fiscal.RowComputation {
	return fiscal.RowComputation{Input: in, Result: fiscal.ComputeRow(in)}
}

func TestAggregate_SumaFilasYBollo(t *testing.T) {
	rows := []fiscal.RowComputation{
		computation(fiscal.RowInput{
			TaxableBase:        dec("1000"),
			VAT:                dec("220"),
			VATRatePct:         dec("22"),
			SurchargeRatePct:   dec("4"),
			WithholdingRatePct: dec("20"),
			WithholdingMode:    entity.WithholdingModeIMP,
		}),
		computation(fiscal.RowInput{
			TaxableBase:     dec("500"),
			VAT:             dec("110"),
			WithholdingMode: entity.WithholdingModeIMP,
		}),
	}

	totals := fiscal.Aggregate(rows, dec("2"))

	// fila 1: neto 1068.8; fila 2: neto 610; bollo 2
	assertDec(t, "1680.8", totals.Net, "neto documento = Σ neto fila + bollo")
	assertDec(t, "40", totals.SurchargeTotal, "total rivalsa")
	// IVA total incluye la IVA sobre rivalsa: 220 + 8.8 + 110
	assertDec(t, "338.8", totals.VATTotal, "IVA total = Σ IVA fila + Σ IVA rivalsa")
	assertDec(t, "8.8", totals.VATOnSurchargeTotal, "total IVA sobre rivalsa")
	assertDec(t, "200", totals.WithholdingTaxTotal, "total ritenuta d'acconto")
	assertDec(t, "0", totals.ContributionWithholdingTotal, "sin contribuciones")
}

func TestAggregate_SinFilas_SoloBollo(t *testing.T) {
	totals := fiscal.Aggregate(nil, dec("2"))
	assertDec(t, "2", totals.Net, "documento vacío: el neto es el bollo")
}

func TestAggregate_OrdenDeFilasIrrelevante(t *testing.T) {
	a := computation(fiscal.RowInput{TaxableBase: dec("100"), VAT: dec("22"), WithholdingMode: entity.WithholdingModeIMP})
	b := computation(fiscal.RowInput{TaxableBase: dec("300"), VAT: dec("66"), WithholdingMode: entity.WithholdingModeIMP})

	t1 := fiscal.Aggregate([]fiscal.RowComputation{a, b}, decimal.Zero)
	t2 := fiscal.Aggregate([]fiscal.RowComputation{b, a}, decimal.Zero)

	assert.True(t, t1.Net.Equal(t2.Net), "la suma decimal es asociativa")
	assert.True(t, t1.VATTotal.Equal(t2.VATTotal))
}
