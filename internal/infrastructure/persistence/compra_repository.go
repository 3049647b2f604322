package persistence

import (
	"context"

	"github.com/compras/backend/internal/domain/compra"
	"gorm.io/gorm"
)

// GormCompraRepository implements CompraRepository using GORM
type GormCompraRepository struct {
	db *gorm.DB
}

// NewGormCompraRepository creates a new GormCompraRepository
func NewGormCompraRepository(db *gorm.DB) *GormCompraRepository {
	return &GormCompraRepository{db: db}
}

// ListByYear returns all non-voided purchase rows for the fiscal year,
// ordered by date. Rows are scoped by year only.
func (r *GormCompraRepository) ListByYear(ctx context.Context, anio int) ([]compra.Compra, error) {
	compras := make([]compra.Compra, 0)
	if err := r.db.WithContext(ctx).
		Where("anio = ? AND estado <> ?", anio, compra.EstadoAnulada).
		Order("fecha ASC").
		Find(&compras).Error; err != nil {
		return nil, err
	}
	return compras, nil
}
