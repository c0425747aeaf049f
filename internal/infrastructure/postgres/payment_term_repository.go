package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
	"github.com/tu-usuario/invoicing-pro/internal/domain/repository"
)

var _ repository.PaymentTermRepository = (*PaymentTermRepo)(nil)

// PaymentTermRepo acceso de sólo lectura a condiciones de pago (usable con pool o tx).
type PaymentTermRepo struct {
	q Querier
}

// NewPaymentTermRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentTermRepository(q Querier) *PaymentTermRepo {
	return &PaymentTermRepo{q: q}
}

// GetByID obtiene la condición con sus cuotas ordenadas por días. nil, nil si no existe.
func (r *PaymentTermRepo) GetByID(ctx context.Context, id string) (*entity.PaymentTerm, error) {
	query := `SELECT id, description FROM payment_terms WHERE id = $1`
	var term entity.PaymentTerm
	err := r.q.QueryRow(ctx, query, id).Scan(&term.ID, &term.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment term: %w", err)
	}

	sliceQuery := `
		SELECT percentage, days, end_of_month
		FROM payment_term_slices WHERE payment_term_id = $1 ORDER BY days`
	rows, err := r.q.Query(ctx, sliceQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list payment term slices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s entity.PaymentTermSlice
		if err := rows.Scan(&s.Percentage, &s.Days, &s.EndOfMonth); err != nil {
			return nil, fmt.Errorf("scan payment term slice: %w", err)
		}
		term.Slices = append(term.Slices, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &term, nil
}
