package entity

import "github.com/shopspring/decimal"

// SurchargeRate es una tasa de rivalsa (ej. INPS 4%).
type SurchargeRate struct {
	ID          string
	Description string
	Percentage  decimal.Decimal
}

// WithholdingRate es una tasa de ritenuta d'acconto.
type WithholdingRate struct {
	ID          string
	Description string
	Percentage  decimal.Decimal
}

// VATRate es una alícuota de IVA.
type VATRate struct {
	ID          string
	Description string
	Percentage  decimal.Decimal
}

// ContributionRule es la regla de ritenuta contributi: primero se toma
// BasePercentage del imponible y sobre ese resultado se aplica Percentage.
type ContributionRule struct {
	ID             string
	Description    string
	BasePercentage decimal.Decimal // porcentaje del imponible sujeto a contribución
	Percentage     decimal.Decimal
}
