package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
	"github.com/tu-usuario/invoicing-pro/internal/domain/repository"
)

// BillingTxRunner ejecuta una función con repositorios atados a una misma
// transacción. Si fn retorna error se hace rollback; si no, commit.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		rowRepo repository.RowRepository,
		instRepo repository.InstallmentRepository,
		segmentRepo repository.SegmentRepository,
	) error) error
}

// ScheduleLine es un par (vencimiento, importe) de cualquiera de las dos
// fuentes de scadenze.
type ScheduleLine struct {
	DueDate time.Time
	Amount  decimal.Decimal
}

// PaymentTermEngine calcula los vencimientos tradicionales a partir de la
// condición de pago del documento. Determinista para los mismos inputs.
type PaymentTermEngine interface {
	Compute(ctx context.Context, paymentTermID string, net decimal.Decimal, issueDate time.Time) ([]ScheduleLine, error)
}

// ElectronicScheduleSource extrae el detalle de pago de la factura
// electrónica adjunta al documento. Devuelve lista vacía si el documento no
// tiene FE o si la FE no trae detalle de pago; los importes conservan el
// signo del XML (salida del pagador, positivo). Un detalle presente pero
// malformado produce domain.ErrMalformedSchedule.
type ElectronicScheduleSource interface {
	PaymentLines(ctx context.Context, doc *entity.Document) ([]ScheduleLine, error)
}

// DocumentPDFGenerator genera la representación gráfica del documento.
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, doc *entity.Document, rows []RowForPDF, totals TotalsForPDF) ([]byte, error)
}

// RowForPDF fila ya calculada para el render del PDF.
type RowForPDF struct {
	Description    string
	TaxableBase    decimal.Decimal
	VAT            decimal.Decimal
	Surcharge      decimal.Decimal
	WithholdingTax decimal.Decimal
	Total          decimal.Decimal
}

// TotalsForPDF totales del documento para el render del PDF.
type TotalsForPDF struct {
	Net                          decimal.Decimal
	VATTotal                     decimal.Decimal
	SurchargeTotal               decimal.Decimal
	WithholdingTaxTotal          decimal.Decimal
	ContributionWithholdingTotal decimal.Decimal
	StampDuty                    decimal.Decimal
}
