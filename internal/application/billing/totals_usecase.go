package billing

import (
	"context"
	"fmt"

	"github.com/tu-usuario/invoicing-pro/internal/domain"
	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
	"github.com/tu-usuario/invoicing-pro/internal/domain/fiscal"
	"github.com/tu-usuario/invoicing-pro/internal/domain/repository"
)

// ComputeTotalsUseCase resuelve las tasas referenciadas por las filas de un
// documento, ejecuta la cascada fiscal y agrega los totales. Una referencia a
// una tasa inexistente aborta el cálculo completo con ErrMissingRateReference
// (nunca se degrada a cero en silencio).
type ComputeTotalsUseCase struct {
	docRepo  repository.DocumentRepository
	rowRepo  repository.RowRepository
	rateRepo repository.RateRepository
}

// NewComputeTotalsUseCase construye el caso de uso.
func NewComputeTotalsUseCase(
	docRepo repository.DocumentRepository,
	rowRepo repository.RowRepository,
	rateRepo repository.RateRepository,
) *ComputeTotalsUseCase {
	return &ComputeTotalsUseCase{docRepo: docRepo, rowRepo: rowRepo, rateRepo: rateRepo}
}

// Compute carga las filas del documento y devuelve totales + resultados por fila.
func (uc *ComputeTotalsUseCase) Compute(ctx context.Context, doc *entity.Document) (fiscal.DocumentTotals, []fiscal.RowComputation, error) {
	rows, err := uc.rowRepo.ListByDocument(ctx, doc.ID)
	if err != nil {
		return fiscal.DocumentTotals{}, nil, fmt.Errorf("cargar filas: %w", err)
	}

	rule, err := uc.contributionRule(ctx, doc)
	if err != nil {
		return fiscal.DocumentTotals{}, nil, err
	}

	computations := make([]fiscal.RowComputation, 0, len(rows))
	for _, row := range rows {
		in, err := uc.ResolveRow(ctx, doc, row, rule)
		if err != nil {
			return fiscal.DocumentTotals{}, nil, err
		}
		computations = append(computations, fiscal.RowComputation{
			RowID:       row.ID,
			Description: row.Description,
			Input:       in,
			Result:      fiscal.ComputeRow(in),
		})
	}

	return fiscal.Aggregate(computations, doc.StampDuty), computations, nil
}

// ComputeByID variante que parte del id del documento.
func (uc *ComputeTotalsUseCase) ComputeByID(ctx context.Context, documentID string) (*entity.Document, fiscal.DocumentTotals, []fiscal.RowComputation, error) {
	doc, err := uc.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fiscal.DocumentTotals{}, nil, err
	}
	if doc == nil {
		return nil, fiscal.DocumentTotals{}, nil, domain.ErrNotFound
	}
	totals, computations, err := uc.Compute(ctx, doc)
	return doc, totals, computations, err
}

// ResolveRow arma el snapshot de entrada de una fila: porcentajes resueltos
// (cero cuando la fila no referencia la tasa) y flags del documento padre.
func (uc *ComputeTotalsUseCase) ResolveRow(ctx context.Context, doc *entity.Document, row *entity.Row, rule *entity.ContributionRule) (fiscal.RowInput, error) {
	in := fiscal.RowInput{
		TaxableBase:     row.TaxableBase,
		VAT:             row.VAT,
		WithholdingMode: row.WithholdingMode,
		SplitPayment:    doc.SplitPayment,
	}

	if row.VATRateID != "" {
		rate, err := uc.rateRepo.GetVATRate(ctx, row.VATRateID)
		if err != nil {
			return fiscal.RowInput{}, fmt.Errorf("alícuota IVA %s: %w", row.VATRateID, err)
		}
		if rate == nil {
			return fiscal.RowInput{}, fmt.Errorf("alícuota IVA %s: %w", row.VATRateID, domain.ErrMissingRateReference)
		}
		in.VATRatePct = rate.Percentage
	}

	if row.SurchargeRateID != "" {
		rate, err := uc.rateRepo.GetSurchargeRate(ctx, row.SurchargeRateID)
		if err != nil {
			return fiscal.RowInput{}, fmt.Errorf("rivalsa %s: %w", row.SurchargeRateID, err)
		}
		if rate == nil {
			return fiscal.RowInput{}, fmt.Errorf("rivalsa %s: %w", row.SurchargeRateID, domain.ErrMissingRateReference)
		}
		in.SurchargeRatePct = rate.Percentage
	}

	if row.WithholdingRateID != "" {
		rate, err := uc.rateRepo.GetWithholdingRate(ctx, row.WithholdingRateID)
		if err != nil {
			return fiscal.RowInput{}, fmt.Errorf("ritenuta %s: %w", row.WithholdingRateID, err)
		}
		if rate == nil {
			return fiscal.RowInput{}, fmt.Errorf("ritenuta %s: %w", row.WithholdingRateID, domain.ErrMissingRateReference)
		}
		in.WithholdingRatePct = rate.Percentage
	}

	if row.ContributionFlag {
		if rule == nil {
			// Flag activo sin regla en el documento padre: referencia rota.
			return fiscal.RowInput{}, fmt.Errorf("regla de contribuciones del documento %s: %w", doc.ID, domain.ErrMissingRateReference)
		}
		in.ContributionEnabled = true
		in.ContributionBasePct = rule.BasePercentage
		in.ContributionRatePct = rule.Percentage
	}

	return in, nil
}

// contributionRule carga la regla del documento; "" significa sin regla.
func (uc *ComputeTotalsUseCase) contributionRule(ctx context.Context, doc *entity.Document) (*entity.ContributionRule, error) {
	if doc.ContributionRuleID == "" {
		return nil, nil
	}
	rule, err := uc.rateRepo.GetContributionRule(ctx, doc.ContributionRuleID)
	if err != nil {
		return nil, fmt.Errorf("regla de contribuciones %s: %w", doc.ContributionRuleID, err)
	}
	if rule == nil {
		return nil, fmt.Errorf("regla de contribuciones %s: %w", doc.ContributionRuleID, domain.ErrMissingRateReference)
	}
	return rule, nil
}
