package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tu-usuario/invoicing-pro/internal/domain"
	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
	"github.com/tu-usuario/invoicing-pro/internal/domain/numbering"
	"github.com/tu-usuario/invoicing-pro/internal/domain/repository"
)

// AssignSegmentUseCase asigna el sezionale de un documento y calcula sus
// números. La fecha y la dirección deben estar fijadas antes; cambiar de
// segmento renumera, reasignar el mismo segmento es un no-op.
//
// Serialización del ámbito: dentro de la tx se bloquea la fila del segmento
// (FOR UPDATE) antes de escanear los números existentes, de modo que dos
// creaciones concurrentes en el mismo (segmento, año) se ordenan. El índice
// único (segmento, año, número) es el respaldo: si aun así dos escrituras
// compiten, el Update devuelve ErrNumberingConflict y se reintenta la
// operación completa un número acotado de veces.
type AssignSegmentUseCase struct {
	txRunner   BillingTxRunner
	maxRetries int
}

// NewAssignSegmentUseCase construye el caso de uso. maxRetries <= 0 usa 3.
func NewAssignSegmentUseCase(txRunner BillingTxRunner, maxRetries int) *AssignSegmentUseCase {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &AssignSegmentUseCase{txRunner: txRunner, maxRetries: maxRetries}
}

// Assign asigna segmentID al documento y devuelve la cabecera renumerada.
func (uc *AssignSegmentUseCase) Assign(ctx context.Context, documentID, segmentID string) (*entity.Document, error) {
	if documentID == "" || segmentID == "" {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.Document
	var lastErr error
	for attempt := 0; attempt < uc.maxRetries; attempt++ {
		err := uc.txRunner.RunBilling(ctx, func(
			docRepo repository.DocumentRepository,
			_ repository.RowRepository,
			_ repository.InstallmentRepository,
			segmentRepo repository.SegmentRepository,
		) error {
			doc, err := docRepo.GetByID(ctx, documentID)
			if err != nil {
				return err
			}
			if doc == nil {
				return domain.ErrNotFound
			}
			if doc.Date.IsZero() || doc.Direction == "" {
				// La numeración depende del año y de la dirección.
				return domain.ErrInvalidInput
			}
			// Mismo segmento y números ya calculados: no renumerar.
			if doc.SegmentID == segmentID && (doc.Number != "" || doc.ExternalNumber != "") {
				result = doc
				return nil
			}

			segment, err := segmentRepo.Lock(ctx, segmentID)
			if err != nil {
				return err
			}
			if segment == nil {
				return domain.ErrNotFound
			}

			number, externalNumber, err := uc.nextNumbers(ctx, docRepo, doc, segment)
			if err != nil {
				return err
			}

			doc.SegmentID = segmentID
			doc.Number = number
			doc.ExternalNumber = externalNumber
			doc.UpdatedAt = time.Now()
			if err := docRepo.Update(ctx, doc); err != nil {
				return err
			}
			result = doc
			return nil
		})
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !errors.Is(err, domain.ErrNumberingConflict) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("numeración del documento %s: %w", documentID, lastErr)
}

// nextNumbers genera los números según la dirección: el primario sólo para
// outbound, el secundario sólo para inbound; el no aplicable queda vacío.
func (uc *AssignSegmentUseCase) nextNumbers(
	ctx context.Context,
	docRepo repository.DocumentRepository,
	doc *entity.Document,
	segment *entity.Segment,
) (number, externalNumber string, err error) {
	year := doc.Date.Year()

	switch doc.Direction {
	case entity.DirectionOutbound:
		existing, err := docRepo.NumbersInScope(ctx, repository.FieldNumber, year, segment.ID)
		if err != nil {
			return "", "", fmt.Errorf("escanear ámbito %s/%d: %w", segment.ID, year, err)
		}
		number, err = numbering.Next(segment.Mask, existing, doc.Date)
		if err != nil {
			return "", "", err
		}
	case entity.DirectionInbound:
		existing, err := docRepo.NumbersInScope(ctx, repository.FieldExternalNumber, year, segment.ID)
		if err != nil {
			return "", "", fmt.Errorf("escanear ámbito %s/%d: %w", segment.ID, year, err)
		}
		externalNumber, err = numbering.Next(segment.Mask, existing, doc.Date)
		if err != nil {
			return "", "", err
		}
	default:
		return "", "", domain.ErrInvalidInput
	}

	return number, externalNumber, nil
}
