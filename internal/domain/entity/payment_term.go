package entity

import "github.com/shopspring/decimal"

// PaymentTerm es una condición de pago tradicional: una o más cuotas
// expresadas como porcentaje del neto con un desplazamiento en días.
type PaymentTerm struct {
	ID          string
	Description string
	Slices      []PaymentTermSlice
}

// PaymentTermSlice es una cuota de la condición de pago.
type PaymentTermSlice struct {
	Percentage decimal.Decimal // porcentaje del neto (la suma debería ser 100)
	Days       int             // días desde la fecha de emisión
	EndOfMonth bool            // desplazar el vencimiento a fin de mes
}
