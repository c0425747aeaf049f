package repository

import (
	"context"

	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
)

// RateRepository es el RateLookup: acceso de sólo lectura a las tasas.
// Todos los métodos devuelven nil, nil cuando el id no existe; decidir si eso
// es ErrNotFound o ErrMissingRateReference corresponde al caso de uso.
type RateRepository interface {
	GetSurchargeRate(ctx context.Context, id string) (*entity.SurchargeRate, error)
	GetWithholdingRate(ctx context.Context, id string) (*entity.WithholdingRate, error)
	GetVATRate(ctx context.Context, id string) (*entity.VATRate, error)
	GetContributionRule(ctx context.Context, id string) (*entity.ContributionRule, error)
}
