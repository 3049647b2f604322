package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/compras/backend/internal/domain/proveedor"
	"github.com/compras/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProveedorRepository implements ProveedorRepository using GORM
type GormProveedorRepository struct {
	db *gorm.DB
}

// NewGormProveedorRepository creates a new GormProveedorRepository
func NewGormProveedorRepository(db *gorm.DB) *GormProveedorRepository {
	return &GormProveedorRepository{db: db}
}

// FindByID finds a supplier by its ID
func (r *GormProveedorRepository) FindByID(ctx context.Context, id uuid.UUID) (*proveedor.Proveedor, error) {
	var p proveedor.Proveedor
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Search returns suppliers whose stored name matches q case-insensitively.
// Queries are matched against the nombre_busqueda column, which holds the
// accent-stripped lowercase name, so "Óptica" and "optica" find the same row.
// The ESCAPE clause is explicit so backslash escaping works the same on
// Postgres and the SQLite development driver.
func (r *GormProveedorRepository) Search(ctx context.Context, q string, limit int) ([]proveedor.Proveedor, error) {
	pattern := "%" + escapeLike(proveedor.NormalizarNombre(q)) + "%"
	proveedores := make([]proveedor.Proveedor, 0)
	if err := r.db.WithContext(ctx).
		Where(`nombre_busqueda LIKE ? ESCAPE '\'`, pattern).
		Order("nombre ASC").
		Limit(limit).
		Find(&proveedores).Error; err != nil {
		return nil, err
	}
	return proveedores, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
