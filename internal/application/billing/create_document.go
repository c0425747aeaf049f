package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/invoicing-pro/internal/application/dto"
	"github.com/tu-usuario/invoicing-pro/internal/domain"
	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
	"github.com/tu-usuario/invoicing-pro/internal/domain/repository"
)

// Defaults aplicados al crear documentos.
type DocumentDefaults struct {
	// ContributionRuleID se aplica a documentos outbound sin regla explícita
	// (los inbound nunca reciben regla por defecto).
	ContributionRuleID string
}

// CreateDocumentUseCase crea un documento en borrador y le asigna segmento y
// número en la misma operación.
type CreateDocumentUseCase struct {
	docRepo       repository.DocumentRepository
	termRepo      repository.PaymentTermRepository
	rateRepo      repository.RateRepository
	assignSegment *AssignSegmentUseCase
	defaults      DocumentDefaults
}

// NewCreateDocumentUseCase construye el caso de uso.
func NewCreateDocumentUseCase(
	docRepo repository.DocumentRepository,
	termRepo repository.PaymentTermRepository,
	rateRepo repository.RateRepository,
	assignSegment *AssignSegmentUseCase,
	defaults DocumentDefaults,
) *CreateDocumentUseCase {
	return &CreateDocumentUseCase{
		docRepo:       docRepo,
		termRepo:      termRepo,
		rateRepo:      rateRepo,
		assignSegment: assignSegment,
		defaults:      defaults,
	}
}

// Create valida la entrada, persiste el borrador y dispara la numeración.
func (uc *CreateDocumentUseCase) Create(ctx context.Context, in dto.CreateDocumentRequest) (*entity.Document, error) {
	if in.Direction != entity.DirectionOutbound && in.Direction != entity.DirectionInbound {
		return nil, domain.ErrInvalidInput
	}
	if in.SegmentID == "" {
		return nil, domain.ErrInvalidInput
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	if in.PaymentTermID != "" {
		term, err := uc.termRepo.GetByID(ctx, in.PaymentTermID)
		if err != nil {
			return nil, fmt.Errorf("condición de pago %s: %w", in.PaymentTermID, err)
		}
		if term == nil {
			return nil, domain.ErrNotFound
		}
	}

	contributionRuleID := in.ContributionRuleID
	if contributionRuleID == "" && in.Direction == entity.DirectionOutbound {
		contributionRuleID = uc.defaults.ContributionRuleID
	}
	if contributionRuleID != "" {
		rule, err := uc.rateRepo.GetContributionRule(ctx, contributionRuleID)
		if err != nil {
			return nil, fmt.Errorf("regla de contribuciones %s: %w", contributionRuleID, err)
		}
		if rule == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	doc := &entity.Document{
		ID:                 uuid.New().String(),
		Direction:          in.Direction,
		Date:               date,
		SplitPayment:       in.SplitPayment,
		StampDuty:          in.StampDuty,
		PaymentTermID:      in.PaymentTermID,
		ContributionRuleID: contributionRuleID,
		Status:             entity.DocumentStatusDraft,
		FEReference:        in.FEReference,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.docRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("crear documento: %w", err)
	}

	// La asignación de segmento corre en su propia tx con lock de ámbito y
	// reintento acotado ante conflicto de numeración.
	return uc.assignSegment.Assign(ctx, doc.ID, in.SegmentID)
}
