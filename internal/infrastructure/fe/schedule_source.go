package fe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/invoicing-pro/internal/application/billing"
	"github.com/tu-usuario/invoicing-pro/internal/domain"
	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
)

var _ billing.ElectronicScheduleSource = (*ScheduleSource)(nil)

// ScheduleSource extrae el detalle de pago (DatiPagamento/DettaglioPagamento)
// del XML de factura electrónica referenciado por el documento. Los importes
// se devuelven con el signo del XML (salida del pagador, positivo); el signo
// interno lo aplica el caso de uso.
type ScheduleSource struct {
	baseDir string
}

// NewScheduleSource construye la fuente. baseDir es el directorio donde viven
// los XML referenciados por Document.FEReference.
func NewScheduleSource(baseDir string) *ScheduleSource {
	return &ScheduleSource{baseDir: baseDir}
}

// PaymentLines lee el XML del documento y devuelve sus líneas de pago.
// Sin FE adjunta o sin detalle de pago devuelve nil, nil. Un detalle presente
// pero malformado (importe ausente o no numérico, fecha inválida) produce
// ErrMalformedSchedule.
func (s *ScheduleSource) PaymentLines(ctx context.Context, doc *entity.Document) ([]billing.ScheduleLine, error) {
	if !doc.HasElectronicInvoice() {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(s.baseDir, filepath.Clean("/"+doc.FEReference))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer FE %s: %w", doc.FEReference, err)
	}

	xml := etree.NewDocument()
	if err := xml.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("FE %s: %w: %v", doc.FEReference, domain.ErrMalformedSchedule, err)
	}

	// El trazado FatturaPA admite varios bloques DatiPagamento, cada uno con
	// uno o más DettaglioPagamento; se normalizan a una lista plana.
	details := xml.FindElements("//DatiPagamento/DettaglioPagamento")
	if len(details) == 0 {
		return nil, nil
	}

	lines := make([]billing.ScheduleLine, 0, len(details))
	for _, detail := range details {
		line, err := s.parseDetail(detail, doc)
		if err != nil {
			return nil, fmt.Errorf("FE %s: %w", doc.FEReference, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (s *ScheduleSource) parseDetail(detail *etree.Element, doc *entity.Document) (billing.ScheduleLine, error) {
	importo := detail.SelectElement("ImportoPagamento")
	if importo == nil {
		return billing.ScheduleLine{}, fmt.Errorf("%w: DettaglioPagamento sin ImportoPagamento", domain.ErrMalformedSchedule)
	}
	amount, err := decimal.NewFromString(importo.Text())
	if err != nil {
		return billing.ScheduleLine{}, fmt.Errorf("%w: ImportoPagamento %q no numérico", domain.ErrMalformedSchedule, importo.Text())
	}

	// DataScadenzaPagamento es opcional: sin fecha, vence en la fecha del documento.
	dueDate := doc.Date
	if scadenza := detail.SelectElement("DataScadenzaPagamento"); scadenza != nil && scadenza.Text() != "" {
		parsed, err := time.Parse("2006-01-02", scadenza.Text())
		if err != nil {
			return billing.ScheduleLine{}, fmt.Errorf("%w: DataScadenzaPagamento %q inválida", domain.ErrMalformedSchedule, scadenza.Text())
		}
		dueDate = parsed
	}

	return billing.ScheduleLine{DueDate: dueDate, Amount: amount}, nil
}
