package repository

import (
	"context"

	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
)

// SegmentRepository acceso a los sezionali de numeración.
type SegmentRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Segment, error)
	// Lock carga el segmento con SELECT ... FOR UPDATE. Sólo tiene sentido en
	// un repositorio atado a una transacción: serializa la asignación de
	// números por ámbito mientras la tx esté abierta.
	Lock(ctx context.Context, id string) (*entity.Segment, error)
}
