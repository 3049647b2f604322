package handler

import (
	"context"
	"io"

	"github.com/compras/backend/internal/domain/bolsa"
	"github.com/compras/backend/internal/domain/compra"
	"github.com/compras/backend/internal/domain/proveedor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
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

type mockProveedorRepository struct {
	mock.Mock
}

func (m *mockProveedorRepository) FindByID(ctx context.Context, id uuid.UUID) (*proveedor.Proveedor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*proveedor.Proveedor), args.Error(1)
}

func (m *mockProveedorRepository) Search(ctx context.Context, q string, limit int) ([]proveedor.Proveedor, error) {
	args := m.Called(ctx, q, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]proveedor.Proveedor), args.Error(1)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Save(ctx context.Context, filename string, r io.Reader, contentType string) error {
	args := m.Called(ctx, filename, r, contentType)
	return args.Error(0)
}

func (m *mockStore) Delete(ctx context.Context, filename string) error {
	args := m.Called(ctx, filename)
	return args.Error(0)
}

func (m *mockStore) Exists(ctx context.Context, filename string) (bool, error) {
	args := m.Called(ctx, filename)
	return args.Bool(0), args.Error(1)
}
