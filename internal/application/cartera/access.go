// Package cartera drives the pool dashboard pages: access checks, year
// resolution and the view model handed to the templates.
package cartera

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/compras/backend/internal/domain/bolsa"
	"github.com/compras/backend/internal/domain/shared"
)

// AccessService decides whether a session may view a pool.
type AccessService struct {
	bolsas bolsa.BolsaRepository
}

// NewAccessService creates a new AccessService
func NewAccessService(bolsas bolsa.BolsaRepository) *AccessService {
	return &AccessService{bolsas: bolsas}
}

// Resolve loads the pool and reports whether the session may view it.
// Admins, the pool's responsible and listed members may. A pool that does
// not exist answers (nil, false), the same as "not authorized", so the
// response never leaks which pool ids exist. Errors are infrastructure
// failures only.
// Returning the pool lets callers reuse the row the check already loaded.
func (s *AccessService) Resolve(ctx context.Context, sess *shared.Session, tipo bolsa.Tipo, id uuid.UUID) (*bolsa.Bolsa, bool, error) {
	if sess == nil {
		return nil, false, nil
	}

	b, err := s.bolsas.FindByID(ctx, tipo, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	if b.EsVisiblePara(sess) {
		return b, true, nil
	}
	ok, err := s.bolsas.IsMiembro(ctx, b.ID, sess.UserID)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	return b, true, nil
}

// CanView reports whether the session may view the pool.
func (s *AccessService) CanView(ctx context.Context, sess *shared.Session, tipo bolsa.Tipo, id uuid.UUID) (bool, error) {
	_, ok, err := s.Resolve(ctx, sess, tipo, id)
	return ok, err
}
