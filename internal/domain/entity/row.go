package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modo de cálculo de la ritenuta d'acconto de una fila.
const (
	WithholdingModeIMP    = "IMP"     // sólo sobre el imponible
	WithholdingModeIMPRIV = "IMP+RIV" // imponible + rivalsa
)

// Row es una fila del documento. Los importes derivados (rivalsa, IVA sobre
// rivalsa, ritenute, total, neto) no son campos: se calculan con
// fiscal.ComputeRow. Las dos excepciones son los snapshots, congelados al
// guardar para que lecturas históricas no cambien si alguien edita las tasas.
type Row struct {
	ID          string
	DocumentID  string
	Description string

	TaxableBase decimal.Decimal // imponible ya descontado
	VAT         decimal.Decimal // IVA sobre el imponible (calculada fuera de la cascada)

	VATRateID         string
	SurchargeRateID   string // "" = sin rivalsa
	WithholdingRateID string // "" = sin ritenuta d'acconto
	WithholdingMode   string
	ContributionFlag  bool // la regla se toma SIEMPRE del documento padre

	// Snapshots escritos al persistir la fila; autoritativos para lecturas
	// históricas frente al recálculo con tasas vigentes.
	WithholdingSnapshot decimal.Decimal
	SurchargeSnapshot   decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}
