package dto

import (
	"github.com/shopspring/decimal"
)

// CreateDocumentRequest alta de un documento fiscal en borrador.
// Date en formato "2006-01-02".
type CreateDocumentRequest struct {
	Direction          string          `json:"direction"` // "outbound" | "inbound"
	Date               string          `json:"date"`
	SegmentID          string          `json:"segment_id"`
	PaymentTermID      string          `json:"payment_term_id"`
	SplitPayment       bool            `json:"split_payment"`
	StampDuty          decimal.Decimal `json:"stamp_duty"`
	ContributionRuleID string          `json:"contribution_rule_id"`
	FEReference        string          `json:"fe_reference"`
}

// AssignSegmentRequest reasignación de sezionale (dispara la renumeración).
type AssignSegmentRequest struct {
	SegmentID string `json:"segment_id"`
}

// ScheduleRequest parámetros de la generación de vencimientos.
type ScheduleRequest struct {
	AlreadyPaid      bool `json:"already_paid"`
	IgnoreElectronic bool `json:"ignore_electronic"`
}

// RowRequest alta/modificación de una fila del documento.
type RowRequest struct {
	Description       string          `json:"description"`
	TaxableBase       decimal.Decimal `json:"taxable_base"`
	VAT               decimal.Decimal `json:"vat"`
	VATRateID         string          `json:"vat_rate_id"`
	SurchargeRateID   string          `json:"surcharge_rate_id"`
	WithholdingRateID string          `json:"withholding_rate_id"`
	WithholdingMode   string          `json:"withholding_mode"` // "IMP" | "IMP+RIV"
	ContributionFlag  bool            `json:"contribution_flag"`
}

// AssignRateRequest asignación atómica de una tasa a la fila.
type AssignRateRequest struct {
	RateID string `json:"rate_id"`
}

// RowResponse fila con sus importes derivados.
type RowResponse struct {
	ID                      string          `json:"id"`
	DocumentID              string          `json:"document_id"`
	Description             string          `json:"description"`
	TaxableBase             decimal.Decimal `json:"taxable_base"`
	VAT                     decimal.Decimal `json:"vat"`
	Surcharge               decimal.Decimal `json:"surcharge"`
	VATOnSurcharge          decimal.Decimal `json:"vat_on_surcharge"`
	WithholdingTax          decimal.Decimal `json:"withholding_tax"`
	ContributionWithholding decimal.Decimal `json:"contribution_withholding"`
	Total                   decimal.Decimal `json:"total"`
	Net                     decimal.Decimal `json:"net"`
}

// DocumentResponse cabecera + totales derivados.
type DocumentResponse struct {
	ID                 string          `json:"id"`
	Direction          string          `json:"direction"`
	Date               string          `json:"date"`
	SegmentID          string          `json:"segment_id"`
	Number             string          `json:"number"`
	ExternalNumber     string          `json:"external_number"`
	SplitPayment       bool            `json:"split_payment"`
	StampDuty          decimal.Decimal `json:"stamp_duty"`
	PaymentTermID      string          `json:"payment_term_id"`
	ContributionRuleID string          `json:"contribution_rule_id,omitempty"`
	Status             string          `json:"status"`

	Net                          decimal.Decimal `json:"net"`
	SurchargeTotal               decimal.Decimal `json:"surcharge_total"`
	VATTotal                     decimal.Decimal `json:"vat_total"`
	VATOnSurchargeTotal          decimal.Decimal `json:"vat_on_surcharge_total"`
	WithholdingTaxTotal          decimal.Decimal `json:"withholding_tax_total"`
	ContributionWithholdingTotal decimal.Decimal `json:"contribution_withholding_total"`

	Rows []RowResponse `json:"rows,omitempty"`
}

// InstallmentResponse un vencimiento generado.
type InstallmentResponse struct {
	ID          string          `json:"id"`
	DocumentID  string          `json:"document_id"`
	IssueDate   string          `json:"issue_date"`
	DueDate     string          `json:"due_date"`
	AmountDue   decimal.Decimal `json:"amount_due"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	PaymentDate string          `json:"payment_date,omitempty"`
	Kind        string          `json:"kind"`
}
