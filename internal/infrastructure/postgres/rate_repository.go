package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
	"github.com/tu-usuario/invoicing-pro/internal/domain/repository"
)

var _ repository.RateRepository = (*RateRepo)(nil)

// RateRepo acceso de sólo lectura a las tasas fiscales (usable con pool o tx).
type RateRepo struct {
	q Querier
}

// NewRateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRateRepository(q Querier) *RateRepo {
	return &RateRepo{q: q}
}

// GetSurchargeRate obtiene una tasa de rivalsa. nil, nil si no existe.
func (r *RateRepo) GetSurchargeRate(ctx context.Context, id string) (*entity.SurchargeRate, error) {
	query := `SELECT id, description, percentage FROM surcharge_rates WHERE id = $1`
	var rate entity.SurchargeRate
	err := r.q.QueryRow(ctx, query, id).Scan(&rate.ID, &rate.Description, &rate.Percentage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get surcharge rate: %w", err)
	}
	return &rate, nil
}

// GetWithholdingRate obtiene una tasa de ritenuta. nil, nil si no existe.
func (r *RateRepo) GetWithholdingRate(ctx context.Context, id string) (*entity.WithholdingRate, error) {
	query := `SELECT id, description, percentage FROM withholding_rates WHERE id = $1`
	var rate entity.WithholdingRate
	err := r.q.QueryRow(ctx, query, id).Scan(&rate.ID, &rate.Description, &rate.Percentage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get withholding rate: %w", err)
	}
	return &rate, nil
}

// GetVATRate obtiene una alícuota de IVA. nil, nil si no existe.
func (r *RateRepo) GetVATRate(ctx context.Context, id string) (*entity.VATRate, error) {
	query := `SELECT id, description, percentage FROM vat_rates WHERE id = $1`
	var rate entity.VATRate
	err := r.q.QueryRow(ctx, query, id).Scan(&rate.ID, &rate.Description, &rate.Percentage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vat rate: %w", err)
	}
	return &rate, nil
}

// GetContributionRule obtiene una regla de contribuciones. nil, nil si no existe.
func (r *RateRepo) GetContributionRule(ctx context.Context, id string) (*entity.ContributionRule, error) {
	query := `SELECT id, description, base_percentage, percentage FROM contribution_rules WHERE id = $1`
	var rule entity.ContributionRule
	err := r.q.QueryRow(ctx, query, id).Scan(&rule.ID, &rule.Description, &rule.BasePercentage, &rule.Percentage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contribution rule: %w", err)
	}
	return &rule, nil
}
