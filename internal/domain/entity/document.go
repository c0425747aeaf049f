package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dirección del documento fiscal.
const (
	DirectionOutbound = "outbound" // emitido por nosotros (venta)
	DirectionInbound  = "inbound"  // recibido de un proveedor (compra)
)

// Estados del documento.
const (
	DocumentStatusDraft  = "DRAFT"  // guardado para reservar ID; aún editable
	DocumentStatusIssued = "ISSUED" // numerado y emitido
	DocumentStatusPaid   = "PAID"
)

// Document representa la cabecera de un documento fiscal (factura de venta o
// de compra). Los totales NO se almacenan: se derivan siempre de las filas
// (ver fiscal.Aggregate); sólo el bollo es un importe fijo de cabecera.
type Document struct {
	ID        string
	Direction string
	Date      time.Time
	SegmentID string

	// Number sólo se genera para documentos outbound; ExternalNumber sólo para
	// inbound. El campo no aplicable queda siempre en cadena vacía.
	Number         string
	ExternalNumber string

	SplitPayment bool
	StampDuty    decimal.Decimal // bollo: importe fijo sumado al neto

	PaymentTermID      string
	ContributionRuleID string // regla de ritenuta contributi a nivel documento ("" = sin regla)
	Status             string

	// FEReference identifica el XML de factura electrónica adjunto
	// ("" = el documento no tiene FE asociada).
	FEReference string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasElectronicInvoice indica si el documento tiene una FE adjunta.
func (d *Document) HasElectronicInvoice() bool {
	return d.FEReference != ""
}
