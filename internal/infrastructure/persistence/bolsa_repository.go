package persistence

import (
	"context"
	"errors"

	"github.com/compras/backend/internal/domain/bolsa"
	"github.com/compras/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBolsaRepository implements BolsaRepository using GORM
type GormBolsaRepository struct {
	db *gorm.DB
}

// NewGormBolsaRepository creates a new GormBolsaRepository
func NewGormBolsaRepository(db *gorm.DB) *GormBolsaRepository {
	return &GormBolsaRepository{db: db}
}

// FindByID finds a pool by tipo and ID
func (r *GormBolsaRepository) FindByID(ctx context.Context, tipo bolsa.Tipo, id uuid.UUID) (*bolsa.Bolsa, error) {
	var b bolsa.Bolsa
	if err := r.db.WithContext(ctx).
		Where("tipo = ? AND id = ?", tipo, id).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListYears returns the distinct summary years for a pool, newest first.
// An unknown pool yields an empty slice, not an error.
func (r *GormBolsaRepository) ListYears(ctx context.Context, tipo bolsa.Tipo, id uuid.UUID) ([]int, error) {
	years := make([]int, 0)
	if err := r.db.WithContext(ctx).
		Model(&bolsa.ResumenAnual{}).
		Joins("JOIN bolsas ON bolsas.id = bolsa_resumenes.bolsa_id").
		Where("bolsas.tipo = ? AND bolsa_resumenes.bolsa_id = ?", tipo, id).
		Distinct("bolsa_resumenes.anio").
		Order("bolsa_resumenes.anio DESC").
		Pluck("bolsa_resumenes.anio", &years).Error; err != nil {
		return nil, err
	}
	return years, nil
}

// GetResumen returns the year record for a pool
func (r *GormBolsaRepository) GetResumen(ctx context.Context, tipo bolsa.Tipo, id uuid.UUID, anio int) (*bolsa.ResumenAnual, error) {
	var resumen bolsa.ResumenAnual
	if err := r.db.WithContext(ctx).
		Joins("JOIN bolsas ON bolsas.id = bolsa_resumenes.bolsa_id").
		Where("bolsas.tipo = ? AND bolsa_resumenes.bolsa_id = ? AND bolsa_resumenes.anio = ?", tipo, id, anio).
		First(&resumen).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &resumen, nil
}

// IsMiembro reports whether the user is listed as a member of the pool
func (r *GormBolsaRepository) IsMiembro(ctx context.Context, id, usuarioID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&bolsa.Miembro{}).
		Where("bolsa_id = ? AND usuario_id = ?", id, usuarioID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
