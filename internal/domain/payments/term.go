// Package payments implementa el motor de condiciones de pago tradicionales:
// reparte un neto en cuotas (porcentaje + desplazamiento en días) y calcula
// sus vencimientos. Determinista: mismos inputs, mismas cuotas.
package payments

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
)

var oneHundred = decimal.NewFromInt(100)

// Deadline es un vencimiento calculado: fecha y cuota del neto.
type Deadline struct {
	DueDate time.Time
	Amount  decimal.Decimal
}

// Compute reparte net entre las cuotas de la condición de pago. Cada cuota se
// redondea a 2 decimales; el resto del redondeo se asigna a la última cuota
// para que la suma sea exactamente net. Una condición sin cuotas produce una
// lista vacía (resultado válido, no error).
func Compute(term *entity.PaymentTerm, net decimal.Decimal, issueDate time.Time) []Deadline {
	if term == nil || len(term.Slices) == 0 {
		return nil
	}

	deadlines := make([]Deadline, 0, len(term.Slices))
	assigned := decimal.Zero
	for i, slice := range term.Slices {
		var amount decimal.Decimal
		if i == len(term.Slices)-1 {
			amount = net.Sub(assigned)
		} else {
			amount = net.Mul(slice.Percentage).Div(oneHundred).Round(2)
			assigned = assigned.Add(amount)
		}
		deadlines = append(deadlines, Deadline{
			DueDate: dueDate(issueDate, slice),
			Amount:  amount,
		})
	}
	return deadlines
}

// dueDate calcula el vencimiento de una cuota: fecha de emisión + días, con
// desplazamiento opcional a fin de mes.
func dueDate(issueDate time.Time, slice entity.PaymentTermSlice) time.Time {
	due := issueDate.AddDate(0, 0, slice.Days)
	if slice.EndOfMonth {
		// Día 1 del mes siguiente menos un día.
		due = time.Date(due.Year(), due.Month()+1, 1, 0, 0, 0, 0, due.Location()).AddDate(0, 0, -1)
	}
	return due
}
