package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/invoicing-pro/internal/application/billing"
	"github.com/tu-usuario/invoicing-pro/internal/application/dto"
)

// DocumentHandler maneja las peticiones HTTP de documentos fiscales (protegido).
type DocumentHandler struct {
	createUC   *billing.CreateDocumentUseCase
	totalsUC   *billing.ComputeTotalsUseCase
	segmentUC  *billing.AssignSegmentUseCase
	scheduleUC *billing.ScheduleInstallmentsUseCase
	pdfUC      *billing.DocumentPDFUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(
	createUC *billing.CreateDocumentUseCase,
	totalsUC *billing.ComputeTotalsUseCase,
	segmentUC *billing.AssignSegmentUseCase,
	scheduleUC *billing.ScheduleInstallmentsUseCase,
	pdfUC *billing.DocumentPDFUseCase,
) *DocumentHandler {
	return &DocumentHandler{
		createUC:   createUC,
		totalsUC:   totalsUC,
		segmentUC:  segmentUC,
		scheduleUC: scheduleUC,
		pdfUC:      pdfUC,
	}
}

// Create crea un documento en borrador y lo numera.
// POST /api/documents
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	doc, err := h.createUC.Create(c.Context(), in)
	if err != nil {
		return billingError(c, err)
	}
	totals, computations, err := h.totalsUC.Compute(c.Context(), doc)
	if err != nil {
		return billingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDocumentResponse(doc, totals, computations))
}

// GetByID devuelve la cabecera con totales derivados y filas calculadas.
// GET /api/documents/:id
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	doc, totals, computations, err := h.totalsUC.ComputeByID(c.Context(), id)
	if err != nil {
		return billingError(c, err)
	}
	return c.JSON(toDocumentResponse(doc, totals, computations))
}

// AssignSegment reasigna el sezionale y renumera.
// PUT /api/documents/:id/segment
func (h *DocumentHandler) AssignSegment(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.AssignSegmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	doc, err := h.segmentUC.Assign(c.Context(), id, in.SegmentID)
	if err != nil {
		return billingError(c, err)
	}
	totals, computations, err := h.totalsUC.Compute(c.Context(), doc)
	if err != nil {
		return billingError(c, err)
	}
	return c.JSON(toDocumentResponse(doc, totals, computations))
}

// ScheduleInstallments regenera el scadenzario del documento.
// POST /api/documents/:id/installments
func (h *DocumentHandler) ScheduleInstallments(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.ScheduleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	installments, err := h.scheduleUC.Schedule(c.Context(), id, in.AlreadyPaid, in.IgnoreElectronic)
	if err != nil {
		return billingError(c, err)
	}
	return c.JSON(toInstallmentResponses(installments))
}

// PDF devuelve la representación gráfica del documento.
// GET /api/documents/:id/pdf
func (h *DocumentHandler) PDF(c *fiber.Ctx) error {
	id := c.Params("id")
	pdfBytes, err := h.pdfUC.Generate(c.Context(), id)
	if err != nil {
		return billingError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="documento-`+id+`.pdf"`)
	return c.Send(pdfBytes)
}
