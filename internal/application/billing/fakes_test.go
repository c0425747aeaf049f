package billing_test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/invoicing-pro/internal/application/billing"
	"github.com/tu-usuario/invoicing-pro/internal/domain"
	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
	"github.com/tu-usuario/invoicing-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (sin framework de mocks, igual que el resto de la suite)
// ──────────────────────────────────────────────────────────────────────────────

type fakeDocRepo struct {
	docs map[string]*entity.Document

	// updateConflicts hace fallar los primeros N Update con
	// ErrNumberingConflict para simular la carrera del índice único.
	updateConflicts int
	updates         int
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{docs: make(map[string]*entity.Document)}
}

func (r *fakeDocRepo) put(doc *entity.Document) {
	copia := *doc
	r.docs[doc.ID] = &copia
}

func (r *fakeDocRepo) Create(_ context.Context, doc *entity.Document) error {
	r.put(doc)
	return nil
}

// GetByID devuelve una copia: una tx con rollback no debe dejar mutaciones
// visibles, igual que la base de datos real.
func (r *fakeDocRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	copia := *doc
	return &copia, nil
}

func (r *fakeDocRepo) Update(_ context.Context, doc *entity.Document) error {
	r.updates++
	if r.updateConflicts > 0 {
		r.updateConflicts--
		return domain.ErrNumberingConflict
	}
	r.put(doc)
	return nil
}

func (r *fakeDocRepo) Delete(_ context.Context, id string) error {
	delete(r.docs, id)
	return nil
}

func (r *fakeDocRepo) NumbersInScope(_ context.Context, field repository.NumberField, year int, segmentID string) ([]string, error) {
	var out []string
	for _, doc := range r.docs {
		if doc.SegmentID != segmentID || doc.Date.Year() != year {
			continue
		}
		var v string
		if field == repository.FieldNumber {
			v = doc.Number
		} else {
			v = doc.ExternalNumber
		}
		if v != "" {
			out = append(out, v)
		}
	}
	return out, nil
}

type fakeRowRepo struct {
	rows []*entity.Row
}

func (r *fakeRowRepo) Create(_ context.Context, row *entity.Row) error {
	copia := *row
	r.rows = append(r.rows, &copia)
	return nil
}

func (r *fakeRowRepo) GetByID(_ context.Context, id string) (*entity.Row, error) {
	for _, row := range r.rows {
		if row.ID == id {
			copia := *row
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *fakeRowRepo) Update(_ context.Context, row *entity.Row) error {
	for i, existing := range r.rows {
		if existing.ID == row.ID {
			copia := *row
			r.rows[i] = &copia
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeRowRepo) ListByDocument(_ context.Context, documentID string) ([]*entity.Row, error) {
	var out []*entity.Row
	for _, row := range r.rows {
		if row.DocumentID == documentID {
			copia := *row
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (r *fakeRowRepo) DeleteByDocument(_ context.Context, documentID string) error {
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.DocumentID != documentID {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

type fakeRateRepo struct {
	surcharges   map[string]*entity.SurchargeRate
	withholdings map[string]*entity.WithholdingRate
	vats         map[string]*entity.VATRate
	rules        map[string]*entity.ContributionRule
}

func newFakeRateRepo() *fakeRateRepo {
	return &fakeRateRepo{
		surcharges:   make(map[string]*entity.SurchargeRate),
		withholdings: make(map[string]*entity.WithholdingRate),
		vats:         make(map[string]*entity.VATRate),
		rules:        make(map[string]*entity.ContributionRule),
	}
}

func (r *fakeRateRepo) GetSurchargeRate(_ context.Context, id string) (*entity.SurchargeRate, error) {
	return r.surcharges[id], nil
}

func (r *fakeRateRepo) GetWithholdingRate(_ context.Context, id string) (*entity.WithholdingRate, error) {
	return r.withholdings[id], nil
}

func (r *fakeRateRepo) GetVATRate(_ context.Context, id string) (*entity.VATRate, error) {
	return r.vats[id], nil
}

func (r *fakeRateRepo) GetContributionRule(_ context.Context, id string) (*entity.ContributionRule, error) {
	return r.rules[id], nil
}

type fakeInstallmentRepo struct {
	installments []*entity.Installment
}

func (r *fakeInstallmentRepo) DeleteByDocument(_ context.Context, documentID string) error {
	kept := r.installments[:0]
	for _, inst := range r.installments {
		if inst.DocumentID != documentID {
			kept = append(kept, inst)
		}
	}
	r.installments = kept
	return nil
}

func (r *fakeInstallmentRepo) InsertMany(_ context.Context, installments []*entity.Installment) error {
	r.installments = append(r.installments, installments...)
	return nil
}

func (r *fakeInstallmentRepo) ListByDocument(_ context.Context, documentID string) ([]*entity.Installment, error) {
	var out []*entity.Installment
	for _, inst := range r.installments {
		if inst.DocumentID == documentID {
			out = append(out, inst)
		}
	}
	return out, nil
}

type fakeSegmentRepo struct {
	segments map[string]*entity.Segment
	locks    int
}

func newFakeSegmentRepo() *fakeSegmentRepo {
	return &fakeSegmentRepo{segments: make(map[string]*entity.Segment)}
}

func (r *fakeSegmentRepo) GetByID(_ context.Context, id string) (*entity.Segment, error) {
	return r.segments[id], nil
}

func (r *fakeSegmentRepo) Lock(_ context.Context, id string) (*entity.Segment, error) {
	r.locks++
	return r.segments[id], nil
}

type fakeTermRepo struct {
	terms map[string]*entity.PaymentTerm
}

func (r *fakeTermRepo) GetByID(_ context.Context, id string) (*entity.PaymentTerm, error) {
	return r.terms[id], nil
}

// fakeTxRunner ejecuta el callback directamente contra los fakes (sin tx real).
type fakeTxRunner struct {
	docRepo     *fakeDocRepo
	rowRepo     *fakeRowRepo
	instRepo    *fakeInstallmentRepo
	segmentRepo *fakeSegmentRepo
}

func (r *fakeTxRunner) RunBilling(ctx context.Context, fn func(
	docRepo repository.DocumentRepository,
	rowRepo repository.RowRepository,
	instRepo repository.InstallmentRepository,
	segmentRepo repository.SegmentRepository,
) error) error {
	return fn(r.docRepo, r.rowRepo, r.instRepo, r.segmentRepo)
}

// fakeFESource devuelve líneas fijas o un error configurado.
type fakeFESource struct {
	lines []billing.ScheduleLine
	err   error
}

func (s *fakeFESource) PaymentLines(_ context.Context, _ *entity.Document) ([]billing.ScheduleLine, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.lines, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
