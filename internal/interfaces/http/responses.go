package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/invoicing-pro/internal/application/dto"
	"github.com/tu-usuario/invoicing-pro/internal/domain"
	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
	"github.com/tu-usuario/invoicing-pro/internal/domain/fiscal"
)

// billingError mapea los errores sentinela del dominio fiscal a respuestas
// HTTP. Los casos de uso envuelven con %w, por eso errors.Is.
func billingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrMissingRateReference):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MISSING_RATE", Message: "el documento referencia una tasa inexistente"})
	case errors.Is(err, domain.ErrNumberingConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NUMBERING_CONFLICT", Message: "conflicto de numeración, reintente"})
	case errors.Is(err, domain.ErrMalformedSchedule):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MALFORMED_SCHEDULE", Message: "detalle de pago de la FE malformado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toDocumentResponse(doc *entity.Document, totals fiscal.DocumentTotals, computations []fiscal.RowComputation) dto.DocumentResponse {
	out := dto.DocumentResponse{
		ID:                 doc.ID,
		Direction:          doc.Direction,
		Date:               doc.Date.Format("2006-01-02"),
		SegmentID:          doc.SegmentID,
		Number:             doc.Number,
		ExternalNumber:     doc.ExternalNumber,
		SplitPayment:       doc.SplitPayment,
		StampDuty:          doc.StampDuty,
		PaymentTermID:      doc.PaymentTermID,
		ContributionRuleID: doc.ContributionRuleID,
		Status:             doc.Status,

		Net:                          totals.Net,
		SurchargeTotal:               totals.SurchargeTotal,
		VATTotal:                     totals.VATTotal,
		VATOnSurchargeTotal:          totals.VATOnSurchargeTotal,
		WithholdingTaxTotal:          totals.WithholdingTaxTotal,
		ContributionWithholdingTotal: totals.ContributionWithholdingTotal,
	}
	for _, comp := range computations {
		out.Rows = append(out.Rows, dto.RowResponse{
			ID:                      comp.RowID,
			DocumentID:              doc.ID,
			Description:             comp.Description,
			TaxableBase:             comp.Input.TaxableBase,
			VAT:                     comp.Input.VAT,
			Surcharge:               comp.Result.Surcharge,
			VATOnSurcharge:          comp.Result.VATOnSurcharge,
			WithholdingTax:          comp.Result.WithholdingTax,
			ContributionWithholding: comp.Result.ContributionWithholding,
			Total:                   comp.Result.Total,
			Net:                     comp.Result.Net,
		})
	}
	return out
}

func toRowResponse(row *entity.Row, result fiscal.RowResult) dto.RowResponse {
	return dto.RowResponse{
		ID:                      row.ID,
		DocumentID:              row.DocumentID,
		Description:             row.Description,
		TaxableBase:             row.TaxableBase,
		VAT:                     row.VAT,
		Surcharge:               result.Surcharge,
		VATOnSurcharge:          result.VATOnSurcharge,
		WithholdingTax:          result.WithholdingTax,
		ContributionWithholding: result.ContributionWithholding,
		Total:                   result.Total,
		Net:                     result.Net,
	}
}

func toInstallmentResponses(installments []*entity.Installment) []dto.InstallmentResponse {
	out := make([]dto.InstallmentResponse, 0, len(installments))
	for _, inst := range installments {
		resp := dto.InstallmentResponse{
			ID:         inst.ID,
			DocumentID: inst.DocumentID,
			IssueDate:  inst.IssueDate.Format("2006-01-02"),
			DueDate:    inst.DueDate.Format("2006-01-02"),
			AmountDue:  inst.AmountDue,
			AmountPaid: inst.AmountPaid,
			Kind:       inst.Kind,
		}
		if inst.PaymentDate != nil {
			resp.PaymentDate = inst.PaymentDate.Format("2006-01-02")
		}
		out = append(out, resp)
	}
	return out
}
