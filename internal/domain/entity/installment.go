package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de vencimiento (scadenza).
const (
	InstallmentKindInvoice        = "invoice"
	InstallmentKindWithholdingTax = "withholding-tax"
)

// Installment es un vencimiento del documento. Las scadenze de un documento
// se regeneran siempre como conjunto completo (delete + insert en una tx);
// nunca se actualizan campo a campo fuera de ese ciclo.
type Installment struct {
	ID         string
	DocumentID string
	IssueDate  time.Time
	DueDate    time.Time

	// AmountDue lleva el signo según la dirección: positivo para cobros
	// (outbound), negativo para pagos (inbound).
	AmountDue   decimal.Decimal
	AmountPaid  decimal.Decimal
	PaymentDate *time.Time // nil si no está pagado

	Kind      string
	CreatedAt time.Time
}
