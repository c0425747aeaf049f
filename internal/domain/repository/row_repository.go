package repository

import (
	"context"

	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
)

// RowRepository define el puerto de persistencia de las filas. Las filas
// pertenecen en exclusiva a su documento y se eliminan con él.
type RowRepository interface {
	Create(ctx context.Context, row *entity.Row) error
	GetByID(ctx context.Context, id string) (*entity.Row, error)
	// Update persiste la fila incluyendo los snapshots de ritenuta y rivalsa.
	Update(ctx context.Context, row *entity.Row) error
	ListByDocument(ctx context.Context, documentID string) ([]*entity.Row, error)
	DeleteByDocument(ctx context.Context, documentID string) error
}
