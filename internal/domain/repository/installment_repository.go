package repository

import (
	"context"

	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
)

// InstallmentRepository define el puerto de persistencia de los vencimientos.
// El scheduler sólo usa el par DeleteByDocument + InsertMany, siempre dentro
// de la misma transacción (reemplazo completo del conjunto).
type InstallmentRepository interface {
	DeleteByDocument(ctx context.Context, documentID string) error
	InsertMany(ctx context.Context, installments []*entity.Installment) error
	ListByDocument(ctx context.Context, documentID string) ([]*entity.Installment, error)
}
