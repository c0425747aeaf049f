package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrMissingRateReference: una fila o el documento referencian una tasa
	// (rivalsa, ritenuta, IVA o regla de contribuciones) cuyo registro no existe.
	// Aborta la agregación completa del documento; nunca se trata como cero.
	ErrMissingRateReference = errors.New("tasa referenciada inexistente")

	// ErrNumberingConflict: dos documentos compitieron por el mismo consecutivo
	// dentro del mismo ámbito (sezionale + año). El caller debe reintentar la
	// numeración completa, no aceptar el duplicado.
	ErrNumberingConflict = errors.New("conflicto de numeración en el ámbito")

	// ErrMalformedSchedule: el detalle de pago de la factura electrónica no
	// tiene la forma esperada (falta el importe, fecha inválida, etc.).
	ErrMalformedSchedule = errors.New("detalle de pago electrónico malformado")
)
