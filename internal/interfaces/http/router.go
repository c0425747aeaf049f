package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/invoicing-pro/internal/application/auth"
	"github.com/tu-usuario/invoicing-pro/internal/application/billing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CreateUC   *billing.CreateDocumentUseCase
	TotalsUC   *billing.ComputeTotalsUseCase
	SegmentUC  *billing.AssignSegmentUseCase
	ScheduleUC *billing.ScheduleInstallmentsUseCase
	RowUC      *billing.RowUseCase
	PDFUC      *billing.DocumentPDFUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Documents (protegido)
	documents := protected.Group("/documents")
	documentHandler := NewDocumentHandler(deps.CreateUC, deps.TotalsUC, deps.SegmentUC, deps.ScheduleUC, deps.PDFUC)
	documents.Post("/", documentHandler.Create)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Put("/:id/segment", documentHandler.AssignSegment)
	documents.Post("/:id/installments", documentHandler.ScheduleInstallments)
	documents.Get("/:id/pdf", documentHandler.PDF)

	// Rows (protegido)
	rowHandler := NewRowHandler(deps.RowUC)
	documents.Post("/:id/rows", rowHandler.Add)
	rows := protected.Group("/rows")
	rows.Put("/:id", rowHandler.Update)
	rows.Put("/:id/surcharge-rate", rowHandler.AssignSurchargeRate)
	rows.Put("/:id/withholding-rate", rowHandler.AssignWithholdingRate)
}
