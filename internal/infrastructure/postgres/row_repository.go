package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
	"github.com/tu-usuario/invoicing-pro/internal/domain/repository"
)

var _ repository.RowRepository = (*RowRepo)(nil)

// RowRepo implementación sobre PostgreSQL (usable con pool o tx).
type RowRepo struct {
	q Querier
}

// NewRowRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRowRepository(q Querier) *RowRepo {
	return &RowRepo{q: q}
}

const rowColumns = `id, document_id, description, taxable_base, vat, vat_rate_id,
	surcharge_rate_id, withholding_rate_id, withholding_mode, contribution_flag,
	withholding_snapshot, surcharge_snapshot, created_at, updated_at`

// Create persiste una fila con sus snapshots ya congelados.
func (r *RowRepo) Create(ctx context.Context, row *entity.Row) error {
	query := `
		INSERT INTO document_rows (` + rowColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		row.ID, row.DocumentID, row.Description, row.TaxableBase, row.VAT, row.VATRateID,
		row.SurchargeRateID, row.WithholdingRateID, row.WithholdingMode, row.ContributionFlag,
		row.WithholdingSnapshot, row.SurchargeSnapshot, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert row: %w", err)
	}
	return nil
}

// GetByID obtiene una fila por ID. nil, nil si no existe.
func (r *RowRepo) GetByID(ctx context.Context, id string) (*entity.Row, error) {
	query := `SELECT ` + rowColumns + ` FROM document_rows WHERE id = $1`
	var row entity.Row
	err := r.q.QueryRow(ctx, query, id).Scan(
		&row.ID, &row.DocumentID, &row.Description, &row.TaxableBase, &row.VAT, &row.VATRateID,
		&row.SurchargeRateID, &row.WithholdingRateID, &row.WithholdingMode, &row.ContributionFlag,
		&row.WithholdingSnapshot, &row.SurchargeSnapshot, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get row by id: %w", err)
	}
	return &row, nil
}

// Update persiste la fila incluyendo los snapshots.
func (r *RowRepo) Update(ctx context.Context, row *entity.Row) error {
	query := `
		UPDATE document_rows SET description = $2, taxable_base = $3, vat = $4,
			vat_rate_id = $5, surcharge_rate_id = $6, withholding_rate_id = $7,
			withholding_mode = $8, contribution_flag = $9, withholding_snapshot = $10,
			surcharge_snapshot = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		row.ID, row.Description, row.TaxableBase, row.VAT,
		row.VATRateID, row.SurchargeRateID, row.WithholdingRateID,
		row.WithholdingMode, row.ContributionFlag, row.WithholdingSnapshot,
		row.SurchargeSnapshot, row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update row: %w", err)
	}
	return nil
}

// ListByDocument lista las filas del documento en orden de creación.
func (r *RowRepo) ListByDocument(ctx context.Context, documentID string) ([]*entity.Row, error) {
	query := `SELECT ` + rowColumns + ` FROM document_rows WHERE document_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list rows: %w", err)
	}
	defer rows.Close()

	var list []*entity.Row
	for rows.Next() {
		var row entity.Row
		if err := rows.Scan(
			&row.ID, &row.DocumentID, &row.Description, &row.TaxableBase, &row.VAT, &row.VATRateID,
			&row.SurchargeRateID, &row.WithholdingRateID, &row.WithholdingMode, &row.ContributionFlag,
			&row.WithholdingSnapshot, &row.SurchargeSnapshot, &row.CreatedAt, &row.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// DeleteByDocument elimina todas las filas del documento.
func (r *RowRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM document_rows WHERE document_id = $1`, documentID)
	if err != nil {
		return fmt.Errorf("delete rows: %w", err)
	}
	return nil
}
