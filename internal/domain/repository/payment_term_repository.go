package repository

import (
	"context"

	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
)

// PaymentTermRepository acceso de sólo lectura a condiciones de pago
// (el CRUD de condiciones vive fuera de este servicio).
type PaymentTermRepository interface {
	// GetByID devuelve la condición con sus cuotas ordenadas por días.
	GetByID(ctx context.Context, id string) (*entity.PaymentTerm, error)
}
