package proveedor

import (
	"context"

	"github.com/google/uuid"
)

// ProveedorRepository defines read operations for suppliers.
type ProveedorRepository interface {
	// FindByID returns the supplier with the given id, or
	// shared.ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*Proveedor, error)

	// Search returns suppliers whose name matches q, accent- and
	// case-insensitively, up to limit rows ordered by name.
	Search(ctx context.Context, q string, limit int) ([]Proveedor, error)
}
