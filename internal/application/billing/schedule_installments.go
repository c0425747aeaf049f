package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/invoicing-pro/internal/domain"
	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
	"github.com/tu-usuario/invoicing-pro/internal/domain/repository"
)

// ScheduleInstallmentsUseCase regenera el scadenzario de un documento como
// reemplazo completo: borra los vencimientos existentes y escribe el conjunto
// nuevo en la misma transacción (un fallo a mitad no deja estado parcial).
//
// Fuentes, en orden de preferencia:
//  1. Detalle de pago de la FE adjunta (sólo documentos inbound, salvo
//     ignoreElectronic). El XML lleva el signo de salida del pagador: los
//     importes se niegan a la convención interna.
//  2. Condición de pago tradicional sobre (neto, fecha): importe negado si
//     el documento es inbound, positivo si outbound.
//
// Si el documento es inbound y tiene ritenuta d'acconto, se añade un
// vencimiento extra el 15 del mes siguiente a la fecha del documento por el
// negativo del total de ritenuta.
//
// Cero vencimientos es un resultado válido, no un error.
type ScheduleInstallmentsUseCase struct {
	txRunner   BillingTxRunner
	totals     *ComputeTotalsUseCase
	feSource   ElectronicScheduleSource
	termEngine PaymentTermEngine

	// feFallback degrada un detalle FE malformado a "sin detalle" en lugar de
	// propagarlo. Por defecto el error se surfacea.
	feFallback bool
}

// NewScheduleInstallmentsUseCase construye el caso de uso.
func NewScheduleInstallmentsUseCase(
	txRunner BillingTxRunner,
	totals *ComputeTotalsUseCase,
	feSource ElectronicScheduleSource,
	termEngine PaymentTermEngine,
	feFallback bool,
) *ScheduleInstallmentsUseCase {
	return &ScheduleInstallmentsUseCase{
		txRunner:   txRunner,
		totals:     totals,
		feSource:   feSource,
		termEngine: termEngine,
		feFallback: feFallback,
	}
}

// Schedule regenera los vencimientos del documento y devuelve el conjunto
// insertado. Idempotente: misma entrada, mismo conjunto resultante.
func (uc *ScheduleInstallmentsUseCase) Schedule(ctx context.Context, documentID string, alreadyPaid, ignoreElectronic bool) ([]*entity.Installment, error) {
	doc, totals, _, err := uc.totals.ComputeByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	lines, err := uc.scheduleLines(ctx, doc, totals.Net, ignoreElectronic)
	if err != nil {
		return nil, err
	}

	installments := make([]*entity.Installment, 0, len(lines)+1)
	now := time.Now()
	for _, line := range lines {
		installments = append(installments, uc.buildInstallment(doc, line, entity.InstallmentKindInvoice, alreadyPaid, now))
	}

	// Ritenuta d'acconto de documentos inbound: vencimiento propio el 15 del
	// mes siguiente a la fecha del documento (ligado explícitamente a
	// doc.Date), por el negativo del total retenido.
	if doc.Direction == entity.DirectionInbound && totals.WithholdingTaxTotal.IsPositive() {
		line := ScheduleLine{
			DueDate: withholdingDueDate(doc.Date),
			Amount:  totals.WithholdingTaxTotal.Neg().Round(2),
		}
		installments = append(installments, uc.buildInstallment(doc, line, entity.InstallmentKindWithholdingTax, alreadyPaid, now))
	}

	err = uc.txRunner.RunBilling(ctx, func(
		_ repository.DocumentRepository,
		_ repository.RowRepository,
		instRepo repository.InstallmentRepository,
		_ repository.SegmentRepository,
	) error {
		if err := instRepo.DeleteByDocument(ctx, doc.ID); err != nil {
			return fmt.Errorf("borrar scadenzario: %w", err)
		}
		if len(installments) == 0 {
			return nil
		}
		if err := instRepo.InsertMany(ctx, installments); err != nil {
			return fmt.Errorf("insertar scadenzario: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return installments, nil
}

// scheduleLines decide la fuente de los vencimientos tipo "invoice".
func (uc *ScheduleInstallmentsUseCase) scheduleLines(ctx context.Context, doc *entity.Document, net decimal.Decimal, ignoreElectronic bool) ([]ScheduleLine, error) {
	if !ignoreElectronic && doc.Direction == entity.DirectionInbound && doc.HasElectronicInvoice() {
		feLines, err := uc.feSource.PaymentLines(ctx, doc)
		switch {
		case err == nil:
			if len(feLines) > 0 {
				// Convención interna: entrada positiva; el XML trae la salida
				// del pagador.
				negated := make([]ScheduleLine, len(feLines))
				for i, l := range feLines {
					negated[i] = ScheduleLine{DueDate: l.DueDate, Amount: l.Amount.Neg()}
				}
				return negated, nil
			}
		case errors.Is(err, domain.ErrMalformedSchedule) && uc.feFallback:
			// Degradación explícita por configuración: tratar como sin FE.
		default:
			return nil, err
		}
	}

	return uc.traditionalLines(ctx, doc, net)
}

// traditionalLines aplica la condición de pago y el signo por dirección.
func (uc *ScheduleInstallmentsUseCase) traditionalLines(ctx context.Context, doc *entity.Document, net decimal.Decimal) ([]ScheduleLine, error) {
	if doc.PaymentTermID == "" {
		return nil, nil
	}
	lines, err := uc.termEngine.Compute(ctx, doc.PaymentTermID, net, doc.Date)
	if err != nil {
		return nil, fmt.Errorf("condición de pago %s: %w", doc.PaymentTermID, err)
	}
	if doc.Direction == entity.DirectionInbound {
		for i := range lines {
			lines[i].Amount = lines[i].Amount.Neg()
		}
	}
	return lines, nil
}

// buildInstallment materializa un vencimiento con la semántica alreadyPaid.
func (uc *ScheduleInstallmentsUseCase) buildInstallment(
	doc *entity.Document,
	line ScheduleLine,
	kind string,
	alreadyPaid bool,
	now time.Time,
) *entity.Installment {
	inst := &entity.Installment{
		ID:         uuid.New().String(),
		DocumentID: doc.ID,
		IssueDate:  doc.Date,
		DueDate:    line.DueDate,
		AmountDue:  line.Amount,
		AmountPaid: decimal.Zero,
		Kind:       kind,
		CreatedAt:  now,
	}
	if alreadyPaid {
		inst.AmountPaid = line.Amount
		due := line.DueDate
		inst.PaymentDate = &due
	}
	return inst
}

// withholdingDueDate devuelve el 15 del mes siguiente a la fecha dada.
func withholdingDueDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month()+1, 15, 0, 0, 0, 0, date.Location())
}
