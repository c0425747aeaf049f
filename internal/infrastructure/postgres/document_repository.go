package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/invoicing-pro/internal/domain"
	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
	"github.com/tu-usuario/invoicing-pro/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación sobre PostgreSQL (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, direction, date, segment_id, number, external_number,
	split_payment, stamp_duty, payment_term_id, contribution_rule_id, status,
	fe_reference, created_at, updated_at`

// Create persiste la cabecera del documento.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.Direction, doc.Date, doc.SegmentID, doc.Number, doc.ExternalNumber,
		doc.SplitPayment, doc.StampDuty, doc.PaymentTermID, doc.ContributionRuleID, doc.Status,
		doc.FEReference, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNumberingConflict
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera por ID. nil, nil si no existe.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	var d entity.Document
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Direction, &d.Date, &d.SegmentID, &d.Number, &d.ExternalNumber,
		&d.SplitPayment, &d.StampDuty, &d.PaymentTermID, &d.ContributionRuleID, &d.Status,
		&d.FEReference, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document by id: %w", err)
	}
	return &d, nil
}

// Update persiste la cabecera completa. Una violación del índice único de
// numeración (segmento, año, número) se mapea a ErrNumberingConflict.
func (r *DocumentRepo) Update(ctx context.Context, doc *entity.Document) error {
	query := `
		UPDATE documents SET direction = $2, date = $3, segment_id = $4, number = $5,
			external_number = $6, split_payment = $7, stamp_duty = $8, payment_term_id = $9,
			contribution_rule_id = $10, status = $11, fe_reference = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.Direction, doc.Date, doc.SegmentID, doc.Number,
		doc.ExternalNumber, doc.SplitPayment, doc.StampDuty, doc.PaymentTermID,
		doc.ContributionRuleID, doc.Status, doc.FEReference, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNumberingConflict
		}
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

// Delete elimina el documento (filas y vencimientos caen por FK ON DELETE CASCADE).
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// NumbersInScope devuelve los números no vacíos del campo pedido para el
// ámbito (segmento, año). El caller debe tener bloqueado el segmento.
func (r *DocumentRepo) NumbersInScope(ctx context.Context, field repository.NumberField, year int, segmentID string) ([]string, error) {
	// field viene de las constantes del puerto, nunca de input de usuario.
	var column string
	switch field {
	case repository.FieldNumber:
		column = "number"
	case repository.FieldExternalNumber:
		column = "external_number"
	default:
		return nil, fmt.Errorf("campo de numeración desconocido: %q", field)
	}

	query := `
		SELECT ` + column + ` FROM documents
		WHERE segment_id = $1 AND EXTRACT(YEAR FROM date) = $2 AND ` + column + ` <> ''`
	rows, err := r.q.Query(ctx, query, segmentID, year)
	if err != nil {
		return nil, fmt.Errorf("scan numbering scope: %w", err)
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan number: %w", err)
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}
