package cartera

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/compras/backend/internal/domain/bolsa"
	"github.com/compras/backend/internal/domain/compra"
)

type mockBolsaRepository struct {
	mock.Mock
}

func (m *mockBolsaRepository) FindByID(ctx context.Context, tipo bolsa.Tipo, id uuid.UUID) (*bolsa.Bolsa, error) {
	args := m.Called(ctx, tipo, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bolsa.Bolsa), args.Error(1)
}

func (m *mockBolsaRepository) ListYears(ctx context.Context, tipo bolsa.Tipo, id uuid.UUID) ([]int, error) {
	args := m.Called(ctx, tipo, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *mockBolsaRepository) GetResumen(ctx context.Context, tipo bolsa.Tipo, id uuid.UUID, anio int) (*bolsa.ResumenAnual, error) {
	args := m.Called(ctx, tipo, id, anio)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bolsa.ResumenAnual), args.Error(1)
}

func (m *mockBolsaRepository) IsMiembro(ctx context.Context, id, usuarioID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, usuarioID)
	return args.Bool(0), args.Error(1)
}

type mockCompraRepository struct {
	mock.Mock
}

func (m *mockCompraRepository) ListByYear(ctx context.Context, anio int) ([]compra.Compra, error) {
	args := m.Called(ctx, anio)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]compra.Compra), args.Error(1)
}
