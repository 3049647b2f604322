package bolsa

import (
	"context"

	"github.com/google/uuid"
)

// BolsaRepository defines persistence operations for pools.
// Read operations used by the dashboard return sentinel absences
// (shared.ErrNotFound, empty slices) rather than distinguishing a missing
// pool from a pool without data.
type BolsaRepository interface {
	// FindByID returns the pool with the given tipo and id, or
	// shared.ErrNotFound.
	FindByID(ctx context.Context, tipo Tipo, id uuid.UUID) (*Bolsa, error)

	// ListYears returns the distinct years with a summary record for the
	// pool, ordered descending. An unknown pool yields an empty slice.
	ListYears(ctx context.Context, tipo Tipo, id uuid.UUID) ([]int, error)

	// GetResumen returns the year record for (tipo, id, anio), or
	// shared.ErrNotFound.
	GetResumen(ctx context.Context, tipo Tipo, id uuid.UUID, anio int) (*ResumenAnual, error)

	// IsMiembro reports whether the user appears in the pool's
	// membership table.
	IsMiembro(ctx context.Context, id, usuarioID uuid.UUID) (bool, error)
}
