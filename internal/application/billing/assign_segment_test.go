package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/invoicing-pro/internal/application/billing"
	"github.com/tu-usuario/invoicing-pro/internal/domain"
	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
)

func newSegmentFixture() (*fakeDocRepo, *fakeSegmentRepo, *billing.AssignSegmentUseCase) {
	docRepo := newFakeDocRepo()
	segmentRepo := newFakeSegmentRepo()
	segmentRepo.segments["seg-ft"] = &entity.Segment{
		ID:   "seg-ft",
		Name: "Facturas",
		Mask: "FT-{counter}/{year}",
	}
	runner := &fakeTxRunner{
		docRepo:     docRepo,
		rowRepo:     &fakeRowRepo{},
		instRepo:    &fakeInstallmentRepo{},
		segmentRepo: segmentRepo,
	}
	return docRepo, segmentRepo, billing.NewAssignSegmentUseCase(runner, 3)
}

func draftDoc(id, direction string) *entity.Document {
	return &entity.Document{
		ID:        id,
		Direction: direction,
		Date:      time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		Status:    entity.DocumentStatusDraft,
	}
}

func TestAssign_PrimerDocumentoDelAmbito(t *testing.T) {
	docRepo, segmentRepo, uc := newSegmentFixture()
	docRepo.put(draftDoc("d1", entity.DirectionOutbound))

	doc, err := uc.Assign(context.Background(), "d1", "seg-ft")
	require.NoError(t, err)

	assert.Equal(t, "FT-1/2024", doc.Number, "ámbito vacío: el consecutivo empieza en 1")
	assert.Empty(t, doc.ExternalNumber, "outbound no recibe número secundario")
	assert.Equal(t, "seg-ft", doc.SegmentID)
	assert.Equal(t, 1, segmentRepo.locks, "la asignación bloquea el segmento")
}

func TestAssign_ContinuaLaSerieExistente(t *testing.T) {
	docRepo, _, uc := newSegmentFixture()

	previo := draftDoc("d0", entity.DirectionOutbound)
	previo.SegmentID = "seg-ft"
	previo.Number = "FT-4/2024"
	docRepo.put(previo)
	docRepo.put(draftDoc("d1", entity.DirectionOutbound))

	doc, err := uc.Assign(context.Background(), "d1", "seg-ft")
	require.NoError(t, err)
	assert.Equal(t, "FT-5/2024", doc.Number)
}

func TestAssign_InboundRecibeNumeroSecundario(t *testing.T) {
	docRepo, _, uc := newSegmentFixture()
	docRepo.put(draftDoc("d1", entity.DirectionInbound))

	doc, err := uc.Assign(context.Background(), "d1", "seg-ft")
	require.NoError(t, err)

	assert.Empty(t, doc.Number, "inbound no recibe número primario")
	assert.Equal(t, "FT-1/2024", doc.ExternalNumber)
}

func TestAssign_MismoSegmentoEsNoOp(t *testing.T) {
	docRepo, segmentRepo, uc := newSegmentFixture()

	numerado := draftDoc("d1", entity.DirectionOutbound)
	numerado.SegmentID = "seg-ft"
	numerado.Number = "FT-9/2024"
	docRepo.put(numerado)

	doc, err := uc.Assign(context.Background(), "d1", "seg-ft")
	require.NoError(t, err)

	assert.Equal(t, "FT-9/2024", doc.Number, "reasignar el mismo segmento no renumera")
	assert.Zero(t, docRepo.updates, "el no-op no persiste nada")
	assert.Zero(t, segmentRepo.locks, "el no-op no bloquea el segmento")
}

func TestAssign_CambioDeSegmentoRenumera(t *testing.T) {
	docRepo, segmentRepo, uc := newSegmentFixture()
	segmentRepo.segments["seg-nc"] = &entity.Segment{
		ID:   "seg-nc",
		Name: "Notas",
		Mask: "NC{yy}-{counter:3}",
	}

	numerado := draftDoc("d1", entity.DirectionOutbound)
	numerado.SegmentID = "seg-ft"
	numerado.Number = "FT-9/2024"
	docRepo.put(numerado)

	doc, err := uc.Assign(context.Background(), "d1", "seg-nc")
	require.NoError(t, err)

	assert.Equal(t, "NC24-001", doc.Number, "el nuevo segmento genera con su propia máscara")
	assert.Equal(t, "seg-nc", doc.SegmentID)
}

func TestAssign_SinFecha_Error(t *testing.T) {
	docRepo, _, uc := newSegmentFixture()
	docRepo.put(&entity.Document{ID: "d1", Direction: entity.DirectionOutbound})

	_, err := uc.Assign(context.Background(), "d1", "seg-ft")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin fecha no hay año de ámbito")
}

func TestAssign_DocumentoInexistente(t *testing.T) {
	_, _, uc := newSegmentFixture()
	_, err := uc.Assign(context.Background(), "nope", "seg-ft")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssign_ReintentaTrasConflicto(t *testing.T) {
	docRepo, _, uc := newSegmentFixture()
	docRepo.put(draftDoc("d1", entity.DirectionOutbound))
	docRepo.updateConflicts = 2 // los dos primeros Update chocan con el índice único

	doc, err := uc.Assign(context.Background(), "d1", "seg-ft")
	require.NoError(t, err, "el conflicto de numeración se reintenta")
	assert.Equal(t, "FT-1/2024", doc.Number)
	assert.Equal(t, 3, docRepo.updates, "dos conflictos + un éxito")
}

func TestAssign_ReintentosAgotados(t *testing.T) {
	docRepo, _, uc := newSegmentFixture()
	docRepo.put(draftDoc("d1", entity.DirectionOutbound))
	docRepo.updateConflicts = 10

	_, err := uc.Assign(context.Background(), "d1", "seg-ft")
	assert.ErrorIs(t, err, domain.ErrNumberingConflict, "agotados los reintentos el conflicto se propaga")
	assert.Equal(t, 3, docRepo.updates)
}
