package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/invoicing-pro/internal/domain"
	"github.com/tu-usuario/invoicing-pro/internal/domain/payments"
	"github.com/tu-usuario/invoicing-pro/internal/domain/repository"
)

// TermEngine implementa PaymentTermEngine sobre el repositorio de condiciones
// de pago y el servicio puro de dominio.
type TermEngine struct {
	termRepo repository.PaymentTermRepository
}

// NewTermEngine construye el motor.
func NewTermEngine(termRepo repository.PaymentTermRepository) *TermEngine {
	return &TermEngine{termRepo: termRepo}
}

// Compute carga la condición de pago y aplica sus tramos sobre (net, fecha).
func (e *TermEngine) Compute(ctx context.Context, paymentTermID string, net decimal.Decimal, issueDate time.Time) ([]ScheduleLine, error) {
	term, err := e.termRepo.GetByID(ctx, paymentTermID)
	if err != nil {
		return nil, fmt.Errorf("cargar condición de pago: %w", err)
	}
	if term == nil {
		return nil, domain.ErrNotFound
	}

	deadlines := payments.Compute(term, net, issueDate)
	lines := make([]ScheduleLine, len(deadlines))
	for i, d := range deadlines {
		lines[i] = ScheduleLine{DueDate: d.DueDate, Amount: d.Amount}
	}
	return lines, nil
}
