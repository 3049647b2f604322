// Package proveedor exposes the supplier lookups behind the auxiliary API.
package proveedor

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/compras/backend/internal/domain/proveedor"
	"github.com/compras/backend/internal/domain/shared"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// Service handles supplier lookups for the JSON API.
type Service struct {
	repo proveedor.ProveedorRepository
}

// NewService creates a new Service
func NewService(repo proveedor.ProveedorRepository) *Service {
	return &Service{repo: repo}
}

// View returns the supplier for a raw id from the request body. A missing
// or malformed id is a validation error; it never widens into a list-all
// query. An unknown id surfaces shared.ErrNotFound.
func (s *Service) View(ctx context.Context, rawID string) (*proveedor.Proveedor, error) {
	rawID = strings.TrimSpace(rawID)
	if rawID == "" {
		return nil, shared.NewDomainError("MISSING_ID", "Supplier id is required")
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_ID", "Supplier id must be a valid UUID")
	}
	return s.repo.FindByID(ctx, id)
}

// Buscar searches suppliers by name for the picker. Queries shorter than
// two characters answer an empty result instead of scanning the table.
func (s *Service) Buscar(ctx context.Context, q string, limit int) ([]proveedor.Proveedor, error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < 2 {
		return []proveedor.Proveedor{}, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	return s.repo.Search(ctx, q, limit)
}
