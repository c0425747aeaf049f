package billing_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/invoicing-pro/internal/application/billing"
	"github.com/tu-usuario/invoicing-pro/internal/domain"
	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
)

// scheduleFixture arma el caso de uso completo con fakes y un motor de
// condiciones de pago real sobre un repositorio fake.
type scheduleFixture struct {
	docRepo  *fakeDocRepo
	rowRepo  *fakeRowRepo
	rateRepo *fakeRateRepo
	instRepo *fakeInstallmentRepo
	termRepo *fakeTermRepo
	feSource *fakeFESource
}

func newScheduleFixture(feFallback bool) (*scheduleFixture, *billing.ScheduleInstallmentsUseCase) {
	f := &scheduleFixture{
		docRepo:  newFakeDocRepo(),
		rowRepo:  &fakeRowRepo{},
		rateRepo: newFakeRateRepo(),
		instRepo: &fakeInstallmentRepo{},
		termRepo: &fakeTermRepo{terms: make(map[string]*entity.PaymentTerm)},
		feSource: &fakeFESource{},
	}
	f.rateRepo.withholdings["w20"] = &entity.WithholdingRate{ID: "w20", Percentage: dec("20")}
	f.termRepo.terms["contado"] = &entity.PaymentTerm{
		ID:     "contado",
		Slices: []entity.PaymentTermSlice{{Percentage: dec("100"), Days: 30}},
	}

	runner := &fakeTxRunner{
		docRepo:     f.docRepo,
		rowRepo:     f.rowRepo,
		instRepo:    f.instRepo,
		segmentRepo: newFakeSegmentRepo(),
	}
	totals := billing.NewComputeTotalsUseCase(f.docRepo, f.rowRepo, f.rateRepo)
	uc := billing.NewScheduleInstallmentsUseCase(
		runner, totals, f.feSource, billing.NewTermEngine(f.termRepo), feFallback,
	)
	return f, uc
}

var fechaDoc = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

func (f *scheduleFixture) addDoc(direction, termID, feRef string) *entity.Document {
	doc := &entity.Document{
		ID:            uuid.New().String(),
		Direction:     direction,
		Date:          fechaDoc,
		PaymentTermID: termID,
		Status:        entity.DocumentStatusDraft,
		FEReference:   feRef,
	}
	f.docRepo.put(doc)
	return doc
}

func (f *scheduleFixture) addRow(doc *entity.Document, base, vat, withholdingRateID string) {
	f.rowRepo.rows = append(f.rowRepo.rows, &entity.Row{
		ID:                uuid.New().String(),
		DocumentID:        doc.ID,
		TaxableBase:       dec(base),
		VAT:               dec(vat),
		WithholdingRateID: withholdingRateID,
		WithholdingMode:   entity.WithholdingModeIMP,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Condición de pago tradicional
// ──────────────────────────────────────────────────────────────────────────────

func TestSchedule_OutboundConCondicionDePago(t *testing.T) {
	f, uc := newScheduleFixture(false)
	doc := f.addDoc(entity.DirectionOutbound, "contado", "")
	f.addRow(doc, "1000", "220", "")

	out, err := uc.Schedule(context.Background(), doc.ID, false, false)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.True(t, dec("1220").Equal(out[0].AmountDue), "outbound: importe positivo (cobro)")
	assert.Equal(t, fechaDoc.AddDate(0, 0, 30), out[0].DueDate)
	assert.Equal(t, entity.InstallmentKindInvoice, out[0].Kind)
	assert.Equal(t, fechaDoc, out[0].IssueDate)
	assert.True(t, out[0].AmountPaid.IsZero())
	assert.Nil(t, out[0].PaymentDate)
}

func TestSchedule_InboundNiegaImportes(t *testing.T) {
	f, uc := newScheduleFixture(false)
	doc := f.addDoc(entity.DirectionInbound, "contado", "")
	f.addRow(doc, "1000", "220", "")

	out, err := uc.Schedule(context.Background(), doc.ID, false, false)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, dec("-1220").Equal(out[0].AmountDue), "inbound: importe negativo (pago)")
}

func TestSchedule_InboundConRitenuta_AnadeVencimientoExtra(t *testing.T) {
	f, uc := newScheduleFixture(false)
	doc := f.addDoc(entity.DirectionInbound, "contado", "")
	f.addRow(doc, "1000", "220", "w20") // ritenuta 200, neto 1020

	out, err := uc.Schedule(context.Background(), doc.ID, false, false)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.True(t, dec("-1020").Equal(out[0].AmountDue), "cuota principal sobre el neto")

	ritenuta := out[1]
	assert.Equal(t, entity.InstallmentKindWithholdingTax, ritenuta.Kind)
	assert.True(t, dec("-200").Equal(ritenuta.AmountDue), "la ritenuta se paga aparte, en negativo")
	assert.Equal(t, time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), ritenuta.DueDate,
		"vence el 15 del mes siguiente a la fecha del documento")
}

func TestSchedule_OutboundConRitenuta_SinVencimientoExtra(t *testing.T) {
	f, uc := newScheduleFixture(false)
	doc := f.addDoc(entity.DirectionOutbound, "contado", "")
	f.addRow(doc, "1000", "220", "w20")

	out, err := uc.Schedule(context.Background(), doc.ID, false, false)
	require.NoError(t, err)
	require.Len(t, out, 1, "la ritenuta extra sólo aplica a documentos inbound")
}

func TestSchedule_SinCondicionNiFE_CeroVencimientos(t *testing.T) {
	f, uc := newScheduleFixture(false)
	doc := f.addDoc(entity.DirectionOutbound, "", "")
	f.addRow(doc, "1000", "220", "")

	out, err := uc.Schedule(context.Background(), doc.ID, false, false)
	require.NoError(t, err, "cero vencimientos es un resultado válido")
	assert.Empty(t, out)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fuente FE
// ──────────────────────────────────────────────────────────────────────────────

func TestSchedule_InboundConFE_PrefiereElDetalleElectronico(t *testing.T) {
	f, uc := newScheduleFixture(false)
	doc := f.addDoc(entity.DirectionInbound, "contado", "fe-001.xml")
	f.addRow(doc, "1000", "220", "")

	due := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	f.feSource.lines = []billing.ScheduleLine{
		{DueDate: due, Amount: dec("600")},
		{DueDate: due.AddDate(0, 1, 0), Amount: dec("620")},
	}

	out, err := uc.Schedule(context.Background(), doc.ID, false, false)
	require.NoError(t, err)
	require.Len(t, out, 2, "el detalle FE sustituye a la condición de pago")

	assert.True(t, dec("-600").Equal(out[0].AmountDue), "los importes FE se niegan a la convención interna")
	assert.True(t, dec("-620").Equal(out[1].AmountDue))
	assert.Equal(t, due, out[0].DueDate)
}

func TestSchedule_IgnoreElectronic_UsaCondicionDePago(t *testing.T) {
	f, uc := newScheduleFixture(false)
	doc := f.addDoc(entity.DirectionInbound, "contado", "fe-001.xml")
	f.addRow(doc, "1000", "220", "")
	f.feSource.lines = []billing.ScheduleLine{{DueDate: fechaDoc, Amount: dec("999")}}

	out, err := uc.Schedule(context.Background(), doc.ID, false, true)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, dec("-1220").Equal(out[0].AmountDue), "ignoreElectronic fuerza la condición de pago")
}

func TestSchedule_OutboundIgnoraFE(t *testing.T) {
	f, uc := newScheduleFixture(false)
	doc := f.addDoc(entity.DirectionOutbound, "contado", "fe-001.xml")
	f.addRow(doc, "1000", "220", "")
	f.feSource.lines = []billing.ScheduleLine{{DueDate: fechaDoc, Amount: dec("999")}}

	out, err := uc.Schedule(context.Background(), doc.ID, false, false)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, dec("1220").Equal(out[0].AmountDue), "la fuente FE sólo aplica a inbound")
}

func TestSchedule_FEMalformada_PropagaElError(t *testing.T) {
	f, uc := newScheduleFixture(false)
	doc := f.addDoc(entity.DirectionInbound, "contado", "fe-rota.xml")
	f.addRow(doc, "1000", "220", "")
	f.feSource.err = fmt.Errorf("FE fe-rota.xml: %w", domain.ErrMalformedSchedule)

	_, err := uc.Schedule(context.Background(), doc.ID, false, false)
	assert.ErrorIs(t, err, domain.ErrMalformedSchedule)
	assert.Empty(t, f.instRepo.installments, "un fallo no deja vencimientos a medias")
}

func TestSchedule_FEMalformadaConFallback_DegradaACondicion(t *testing.T) {
	f, uc := newScheduleFixture(true)
	doc := f.addDoc(entity.DirectionInbound, "contado", "fe-rota.xml")
	f.addRow(doc, "1000", "220", "")
	f.feSource.err = fmt.Errorf("FE fe-rota.xml: %w", domain.ErrMalformedSchedule)

	out, err := uc.Schedule(context.Background(), doc.ID, false, false)
	require.NoError(t, err, "con fallback la FE rota degrada a la condición de pago")
	require.Len(t, out, 1)
	assert.True(t, dec("-1220").Equal(out[0].AmountDue))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reemplazo completo y alreadyPaid
// ──────────────────────────────────────────────────────────────────────────────

func TestSchedule_ReemplazaElConjuntoAnterior(t *testing.T) {
	f, uc := newScheduleFixture(false)
	doc := f.addDoc(entity.DirectionOutbound, "contado", "")
	f.addRow(doc, "1000", "220", "")

	// Scadenzario previo que debe desaparecer.
	f.instRepo.installments = append(f.instRepo.installments, &entity.Installment{
		ID: "viejo", DocumentID: doc.ID, AmountDue: dec("1"), Kind: entity.InstallmentKindInvoice,
	})

	out, err := uc.Schedule(context.Background(), doc.ID, false, false)
	require.NoError(t, err)

	persisted, err := f.instRepo.ListByDocument(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, out[0].ID, persisted[0].ID, "sólo sobrevive el conjunto nuevo")
}

func TestSchedule_Idempotente(t *testing.T) {
	f, uc := newScheduleFixture(false)
	doc := f.addDoc(entity.DirectionOutbound, "contado", "")
	f.addRow(doc, "1000", "220", "")

	_, err := uc.Schedule(context.Background(), doc.ID, false, false)
	require.NoError(t, err)
	segunda, err := uc.Schedule(context.Background(), doc.ID, false, false)
	require.NoError(t, err)

	persisted, _ := f.instRepo.ListByDocument(context.Background(), doc.ID)
	require.Len(t, persisted, 1, "regenerar no acumula vencimientos")
	assert.True(t, segunda[0].AmountDue.Equal(persisted[0].AmountDue))
}

func TestSchedule_AlreadyPaid(t *testing.T) {
	f, uc := newScheduleFixture(false)
	doc := f.addDoc(entity.DirectionInbound, "contado", "")
	f.addRow(doc, "1000", "220", "w20")

	out, err := uc.Schedule(context.Background(), doc.ID, true, false)
	require.NoError(t, err)
	require.Len(t, out, 2)

	for _, inst := range out {
		assert.True(t, inst.AmountDue.Equal(inst.AmountPaid), "alreadyPaid: pagado = debido")
		require.NotNil(t, inst.PaymentDate)
		assert.Equal(t, inst.DueDate, *inst.PaymentDate, "alreadyPaid: fecha de pago = vencimiento")
	}
}

func TestSchedule_DocumentoInexistente(t *testing.T) {
	_, uc := newScheduleFixture(false)
	_, err := uc.Schedule(context.Background(), "nope", false, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSchedule_SumaDeCuotasIgualAlNeto(t *testing.T) {
	f, uc := newScheduleFixture(false)
	f.termRepo.terms["tercios"] = &entity.PaymentTerm{
		ID: "tercios",
		Slices: []entity.PaymentTermSlice{
			{Percentage: dec("33.33"), Days: 30},
			{Percentage: dec("33.33"), Days: 60},
			{Percentage: dec("33.34"), Days: 90},
		},
	}
	doc := f.addDoc(entity.DirectionOutbound, "tercios", "")
	f.addRow(doc, "1000", "220", "")

	out, err := uc.Schedule(context.Background(), doc.ID, false, false)
	require.NoError(t, err)
	require.Len(t, out, 3)

	sum := decimal.Zero
	for _, inst := range out {
		sum = sum.Add(inst.AmountDue)
	}
	assert.True(t, dec("1220").Equal(sum), "la suma de cuotas es exactamente el neto: %s", sum)
}
