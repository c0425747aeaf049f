package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/invoicing-pro/internal/application/billing"
	"github.com/tu-usuario/invoicing-pro/internal/application/dto"
)

// RowHandler maneja las filas de documento (protegido).
type RowHandler struct {
	uc *billing.RowUseCase
}

// NewRowHandler construye el handler.
func NewRowHandler(uc *billing.RowUseCase) *RowHandler {
	return &RowHandler{uc: uc}
}

// Add añade una fila al documento.
// POST /api/documents/:id/rows
func (h *RowHandler) Add(c *fiber.Ctx) error {
	documentID := c.Params("id")
	var in dto.RowRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	row, err := h.uc.Add(c.Context(), documentID, in)
	if err != nil {
		return billingError(c, err)
	}
	row, result, err := h.uc.Compute(c.Context(), row.ID)
	if err != nil {
		return billingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRowResponse(row, result))
}

// Update modifica una fila existente.
// PUT /api/rows/:id
func (h *RowHandler) Update(c *fiber.Ctx) error {
	rowID := c.Params("id")
	var in dto.RowRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	row, err := h.uc.Update(c.Context(), rowID, in)
	if err != nil {
		return billingError(c, err)
	}
	row, result, err := h.uc.Compute(c.Context(), row.ID)
	if err != nil {
		return billingError(c, err)
	}
	return c.JSON(toRowResponse(row, result))
}

// AssignSurchargeRate ata una rivalsa a la fila y devuelve la tasa cargada.
// PUT /api/rows/:id/surcharge-rate
func (h *RowHandler) AssignSurchargeRate(c *fiber.Ctx) error {
	rowID := c.Params("id")
	var in dto.AssignRateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rate, err := h.uc.AssignSurchargeRate(c.Context(), rowID, in.RateID)
	if err != nil {
		return billingError(c, err)
	}
	return c.JSON(rate)
}

// AssignWithholdingRate ata una ritenuta a la fila y devuelve la tasa cargada.
// PUT /api/rows/:id/withholding-rate
func (h *RowHandler) AssignWithholdingRate(c *fiber.Ctx) error {
	rowID := c.Params("id")
	var in dto.AssignRateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rate, err := h.uc.AssignWithholdingRate(c.Context(), rowID, in.RateID)
	if err != nil {
		return billingError(c, err)
	}
	return c.JSON(rate)
}
