package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
	"github.com/tu-usuario/invoicing-pro/internal/domain/repository"
)

var _ repository.InstallmentRepository = (*InstallmentRepo)(nil)

// InstallmentRepo implementación sobre PostgreSQL (usable con pool o tx).
type InstallmentRepo struct {
	q Querier
}

// NewInstallmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInstallmentRepository(q Querier) *InstallmentRepo {
	return &InstallmentRepo{q: q}
}

// DeleteByDocument elimina todos los vencimientos del documento.
func (r *InstallmentRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM installments WHERE document_id = $1`, documentID)
	if err != nil {
		return fmt.Errorf("delete installments: %w", err)
	}
	return nil
}

// InsertMany inserta el conjunto completo de vencimientos.
func (r *InstallmentRepo) InsertMany(ctx context.Context, installments []*entity.Installment) error {
	query := `
		INSERT INTO installments (id, document_id, issue_date, due_date, amount_due,
			amount_paid, payment_date, kind, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, inst := range installments {
		_, err := r.q.Exec(ctx, query,
			inst.ID, inst.DocumentID, inst.IssueDate, inst.DueDate, inst.AmountDue,
			inst.AmountPaid, inst.PaymentDate, inst.Kind, inst.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert installment: %w", err)
		}
	}
	return nil
}

// ListByDocument lista los vencimientos ordenados por fecha.
func (r *InstallmentRepo) ListByDocument(ctx context.Context, documentID string) ([]*entity.Installment, error) {
	query := `
		SELECT id, document_id, issue_date, due_date, amount_due, amount_paid, payment_date, kind, created_at
		FROM installments WHERE document_id = $1 ORDER BY due_date, id`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list installments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Installment
	for rows.Next() {
		var inst entity.Installment
		if err := rows.Scan(
			&inst.ID, &inst.DocumentID, &inst.IssueDate, &inst.DueDate, &inst.AmountDue,
			&inst.AmountPaid, &inst.PaymentDate, &inst.Kind, &inst.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan installment: %w", err)
		}
		list = append(list, &inst)
	}
	return list, rows.Err()
}
