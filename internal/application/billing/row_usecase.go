package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/invoicing-pro/internal/application/dto"
	"github.com/tu-usuario/invoicing-pro/internal/domain"
	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
	"github.com/tu-usuario/invoicing-pro/internal/domain/fiscal"
	"github.com/tu-usuario/invoicing-pro/internal/domain/repository"
)

// RowUseCase gestiona las filas del documento. Al persistir, la ritenuta y la
// rivalsa calculadas se congelan en los snapshots de la fila; la asignación
// de tasas es atómica: carga el registro, lo ata a la fila y lo devuelve, de
// modo que la dependencia queda visible en el call site.
type RowUseCase struct {
	docRepo  repository.DocumentRepository
	rowRepo  repository.RowRepository
	rateRepo repository.RateRepository
	totals   *ComputeTotalsUseCase
}

// NewRowUseCase construye el caso de uso.
func NewRowUseCase(
	docRepo repository.DocumentRepository,
	rowRepo repository.RowRepository,
	rateRepo repository.RateRepository,
	totals *ComputeTotalsUseCase,
) *RowUseCase {
	return &RowUseCase{docRepo: docRepo, rowRepo: rowRepo, rateRepo: rateRepo, totals: totals}
}

// Add crea una fila en el documento y congela sus snapshots.
func (uc *RowUseCase) Add(ctx context.Context, documentID string, in dto.RowRequest) (*entity.Row, error) {
	doc, err := uc.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if in.WithholdingMode == "" {
		in.WithholdingMode = entity.WithholdingModeIMP
	}
	if in.WithholdingMode != entity.WithholdingModeIMP && in.WithholdingMode != entity.WithholdingModeIMPRIV {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	row := &entity.Row{
		ID:                uuid.New().String(),
		DocumentID:        doc.ID,
		Description:       in.Description,
		TaxableBase:       in.TaxableBase,
		VAT:               in.VAT,
		VATRateID:         in.VATRateID,
		SurchargeRateID:   in.SurchargeRateID,
		WithholdingRateID: in.WithholdingRateID,
		WithholdingMode:   in.WithholdingMode,
		ContributionFlag:  in.ContributionFlag,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.freezeSnapshots(ctx, doc, row); err != nil {
		return nil, err
	}
	if err := uc.rowRepo.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("crear fila: %w", err)
	}
	return row, nil
}

// Update modifica una fila existente y recongela sus snapshots.
func (uc *RowUseCase) Update(ctx context.Context, rowID string, in dto.RowRequest) (*entity.Row, error) {
	row, doc, err := uc.rowWithDocument(ctx, rowID)
	if err != nil {
		return nil, err
	}
	if in.WithholdingMode != "" &&
		in.WithholdingMode != entity.WithholdingModeIMP &&
		in.WithholdingMode != entity.WithholdingModeIMPRIV {
		return nil, domain.ErrInvalidInput
	}

	row.Description = in.Description
	row.TaxableBase = in.TaxableBase
	row.VAT = in.VAT
	row.VATRateID = in.VATRateID
	row.SurchargeRateID = in.SurchargeRateID
	row.WithholdingRateID = in.WithholdingRateID
	if in.WithholdingMode != "" {
		row.WithholdingMode = in.WithholdingMode
	}
	row.ContributionFlag = in.ContributionFlag

	return uc.saveRow(ctx, doc, row)
}

// AssignSurchargeRate ata la rivalsa a la fila en una sola operación y
// devuelve el registro cargado.
func (uc *RowUseCase) AssignSurchargeRate(ctx context.Context, rowID, rateID string) (*entity.SurchargeRate, error) {
	row, doc, err := uc.rowWithDocument(ctx, rowID)
	if err != nil {
		return nil, err
	}
	rate, err := uc.rateRepo.GetSurchargeRate(ctx, rateID)
	if err != nil {
		return nil, fmt.Errorf("rivalsa %s: %w", rateID, err)
	}
	if rate == nil {
		return nil, domain.ErrNotFound
	}
	row.SurchargeRateID = rate.ID
	if _, err := uc.saveRow(ctx, doc, row); err != nil {
		return nil, err
	}
	return rate, nil
}

// AssignWithholdingRate ata la ritenuta d'acconto a la fila en una sola
// operación y devuelve el registro cargado.
func (uc *RowUseCase) AssignWithholdingRate(ctx context.Context, rowID, rateID string) (*entity.WithholdingRate, error) {
	row, doc, err := uc.rowWithDocument(ctx, rowID)
	if err != nil {
		return nil, err
	}
	rate, err := uc.rateRepo.GetWithholdingRate(ctx, rateID)
	if err != nil {
		return nil, fmt.Errorf("ritenuta %s: %w", rateID, err)
	}
	if rate == nil {
		return nil, domain.ErrNotFound
	}
	row.WithholdingRateID = rate.ID
	if _, err := uc.saveRow(ctx, doc, row); err != nil {
		return nil, err
	}
	return rate, nil
}

// Compute devuelve los importes derivados de una fila sin persistir nada.
func (uc *RowUseCase) Compute(ctx context.Context, rowID string) (*entity.Row, fiscal.RowResult, error) {
	row, doc, err := uc.rowWithDocument(ctx, rowID)
	if err != nil {
		return nil, fiscal.RowResult{}, err
	}
	result, err := uc.computeRow(ctx, doc, row)
	if err != nil {
		return nil, fiscal.RowResult{}, err
	}
	return row, result, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (uc *RowUseCase) rowWithDocument(ctx context.Context, rowID string) (*entity.Row, *entity.Document, error) {
	row, err := uc.rowRepo.GetByID(ctx, rowID)
	if err != nil {
		return nil, nil, err
	}
	if row == nil {
		return nil, nil, domain.ErrNotFound
	}
	doc, err := uc.docRepo.GetByID(ctx, row.DocumentID)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, domain.ErrNotFound
	}
	return row, doc, nil
}

func (uc *RowUseCase) saveRow(ctx context.Context, doc *entity.Document, row *entity.Row) (*entity.Row, error) {
	if err := uc.freezeSnapshots(ctx, doc, row); err != nil {
		return nil, err
	}
	row.UpdatedAt = time.Now()
	if err := uc.rowRepo.Update(ctx, row); err != nil {
		return nil, fmt.Errorf("guardar fila: %w", err)
	}
	return row, nil
}

// freezeSnapshots calcula la fila y congela ritenuta y rivalsa en los campos
// almacenados. Es el punto único donde el valor computado pasa a histórico.
func (uc *RowUseCase) freezeSnapshots(ctx context.Context, doc *entity.Document, row *entity.Row) error {
	result, err := uc.computeRow(ctx, doc, row)
	if err != nil {
		return err
	}
	row.WithholdingSnapshot = result.WithholdingTax
	row.SurchargeSnapshot = result.Surcharge
	return nil
}

func (uc *RowUseCase) computeRow(ctx context.Context, doc *entity.Document, row *entity.Row) (fiscal.RowResult, error) {
	var rule *entity.ContributionRule
	if row.ContributionFlag && doc.ContributionRuleID != "" {
		r, err := uc.rateRepo.GetContributionRule(ctx, doc.ContributionRuleID)
		if err != nil {
			return fiscal.RowResult{}, fmt.Errorf("regla de contribuciones %s: %w", doc.ContributionRuleID, err)
		}
		rule = r
	}
	in, err := uc.totals.ResolveRow(ctx, doc, row, rule)
	if err != nil {
		return fiscal.RowResult{}, err
	}
	return fiscal.ComputeRow(in), nil
}
