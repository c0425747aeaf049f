package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/invoicing-pro/internal/domain/entity"
	"github.com/tu-usuario/invoicing-pro/internal/domain/repository"
)

var _ repository.SegmentRepository = (*SegmentRepo)(nil)

// SegmentRepo acceso a los sezionali (usable con pool o tx).
type SegmentRepo struct {
	q Querier
}

// NewSegmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSegmentRepository(q Querier) *SegmentRepo {
	return &SegmentRepo{q: q}
}

const segmentColumns = `id, name, mask, predefined, created_at, updated_at`

// GetByID obtiene un segmento. nil, nil si no existe.
func (r *SegmentRepo) GetByID(ctx context.Context, id string) (*entity.Segment, error) {
	query := `SELECT ` + segmentColumns + ` FROM segments WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// Lock carga el segmento con SELECT ... FOR UPDATE. Serializa la asignación
// de números por ámbito mientras la transacción del Querier esté abierta.
func (r *SegmentRepo) Lock(ctx context.Context, id string) (*entity.Segment, error) {
	query := `SELECT ` + segmentColumns + ` FROM segments WHERE id = $1 FOR UPDATE`
	return r.scanOne(ctx, query, id)
}

func (r *SegmentRepo) scanOne(ctx context.Context, query, id string) (*entity.Segment, error) {
	var s entity.Segment
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Mask, &s.Predefined, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get segment: %w", err)
	}
	return &s, nil
}
