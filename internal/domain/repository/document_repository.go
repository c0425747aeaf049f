package repository

import (
	"context"

	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
)

// NumberField identifica qué número del documento se consulta/genera.
type NumberField string

const (
	FieldNumber         NumberField = "number"          // primario (outbound)
	FieldExternalNumber NumberField = "external_number" // secundario (inbound)
)

// DocumentRepository define el puerto de persistencia de la cabecera.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	// Update persiste la cabecera completa. Una violación del índice único de
	// numeración (segmento, año, número) se mapea a domain.ErrNumberingConflict.
	Update(ctx context.Context, doc *entity.Document) error
	Delete(ctx context.Context, id string) error
	// NumbersInScope devuelve los valores no vacíos de field para los
	// documentos con YEAR(date) = year y segment = segmentID. Es el escaneo de
	// ámbito del generador de numeración; debe ejecutarse con el segmento
	// bloqueado (SegmentRepository.Lock) dentro de la misma transacción.
	NumbersInScope(ctx context.Context, field NumberField, year int, segmentID string) ([]string, error)
}
