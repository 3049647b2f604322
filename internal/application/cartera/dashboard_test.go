package cartera

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/compras/backend/internal/domain/bolsa"
	"github.com/compras/backend/internal/domain/compra"
	"github.com/compras/backend/internal/domain/shared"
)

func newDashboardFixture(t *testing.T) (*DashboardService, *mockBolsaRepository, *mockCompraRepository, *bolsa.Bolsa, *shared.Session) {
	bolsas := new(mockBolsaRepository)
	compras := new(mockCompraRepository)
	svc := NewDashboardService(NewAccessService(bolsas), bolsas, compras)

	b := newTestBolsa(t, uuid.New())
	sess := &shared.Session{UserID: uuid.New(), Rol: shared.RolAdmin}
	return svc, bolsas, compras, b, sess
}

func newTestCompra(t *testing.T, bolsaID uuid.UUID, fecha time.Time, categoria string, importe int64) compra.Compra {
	c, err := compra.New(bolsaID, fecha, categoria, decimal.NewFromInt(importe))
	require.NoError(t, err)
	return *c
}

func TestDashboardService_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("nil session is denied before any query", func(t *testing.T) {
		svc, bolsas, _, b, _ := newDashboardFixture(t)

		page, err := svc.Load(ctx, nil, bolsa.TipoInversion, b.ID, "")

		require.NoError(t, err)
		assert.Equal(t, StateDenied, page.State)
		bolsas.AssertNotCalled(t, "FindByID")
	})

	t.Run("unauthorized user is denied", func(t *testing.T) {
		svc, bolsas, _, b, _ := newDashboardFixture(t)
		sess := &shared.Session{UserID: uuid.New(), Rol: shared.RolConsulta}

		bolsas.On("FindByID", ctx, bolsa.TipoInversion, b.ID).Return(b, nil)
		bolsas.On("IsMiembro", ctx, b.ID, sess.UserID).Return(false, nil)

		page, err := svc.Load(ctx, sess, bolsa.TipoInversion, b.ID, "")

		require.NoError(t, err)
		assert.Equal(t, StateDenied, page.State)
		bolsas.AssertNotCalled(t, "ListYears")
	})

	t.Run("unknown pool is denied, not distinguished", func(t *testing.T) {
		svc, bolsas, _, _, sess := newDashboardFixture(t)
		id := uuid.New()

		bolsas.On("FindByID", ctx, bolsa.TipoPresupuesto, id).Return(nil, shared.ErrNotFound)

		page, err := svc.Load(ctx, sess, bolsa.TipoPresupuesto, id, "")

		require.NoError(t, err)
		assert.Equal(t, StateDenied, page.State)
	})

	t.Run("pool without years renders the empty state", func(t *testing.T) {
		svc, bolsas, _, b, sess := newDashboardFixture(t)

		bolsas.On("FindByID", ctx, bolsa.TipoInversion, b.ID).Return(b, nil)
		bolsas.On("ListYears", ctx, bolsa.TipoInversion, b.ID).Return([]int{}, nil)

		page, err := svc.Load(ctx, sess, bolsa.TipoInversion, b.ID, "")

		require.NoError(t, err)
		assert.Equal(t, StateEmpty, page.State)
		assert.Equal(t, b, page.Bolsa)
	})

	t.Run("renders the most recent year by default", func(t *testing.T) {
		svc, bolsas, compras, b, sess := newDashboardFixture(t)

		resumen := &bolsa.ResumenAnual{BolsaID: b.ID, Anio: 2026, Dotacion: decimal.NewFromInt(50000)}
		rows := []compra.Compra{
			newTestCompra(t, b.ID, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "hardware", 1200),
			newTestCompra(t, b.ID, time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC), "software", 300),
		}

		bolsas.On("FindByID", ctx, bolsa.TipoInversion, b.ID).Return(b, nil)
		bolsas.On("ListYears", ctx, bolsa.TipoInversion, b.ID).Return([]int{2026, 2025}, nil)
		bolsas.On("GetResumen", mock.Anything, bolsa.TipoInversion, b.ID, 2026).Return(resumen, nil)
		compras.On("ListByYear", mock.Anything, 2026).Return(rows, nil)

		page, err := svc.Load(ctx, sess, bolsa.TipoInversion, b.ID, "")

		require.NoError(t, err)
		assert.Equal(t, StateRendered, page.State)
		assert.Equal(t, 2026, page.Anio)
		assert.Equal(t, []int{2026, 2025}, page.Anios)
		assert.Equal(t, resumen, page.Resumen)
		assert.Len(t, page.Compras, 2)
		assert.Len(t, page.PorCategoria, 2)
		assert.True(t, page.PorCategoria.Total().Equal(decimal.NewFromInt(1500)))
	})

	t.Run("fetches the pool once per request", func(t *testing.T) {
		svc, bolsas, compras, b, sess := newDashboardFixture(t)

		bolsas.On("FindByID", ctx, bolsa.TipoInversion, b.ID).Return(b, nil).Once()
		bolsas.On("ListYears", ctx, bolsa.TipoInversion, b.ID).Return([]int{2026}, nil)
		bolsas.On("GetResumen", mock.Anything, bolsa.TipoInversion, b.ID, 2026).Return(&bolsa.ResumenAnual{Anio: 2026}, nil)
		compras.On("ListByYear", mock.Anything, 2026).Return([]compra.Compra{}, nil)

		page, err := svc.Load(ctx, sess, bolsa.TipoInversion, b.ID, "")

		require.NoError(t, err)
		assert.Equal(t, StateRendered, page.State)
		assert.Equal(t, b, page.Bolsa)
		bolsas.AssertNumberOfCalls(t, "FindByID", 1)
	})

	t.Run("honors a year parameter that the pool has", func(t *testing.T) {
		svc, bolsas, compras, b, sess := newDashboardFixture(t)

		resumen := &bolsa.ResumenAnual{BolsaID: b.ID, Anio: 2025}

		bolsas.On("FindByID", ctx, bolsa.TipoInversion, b.ID).Return(b, nil)
		bolsas.On("ListYears", ctx, bolsa.TipoInversion, b.ID).Return([]int{2026, 2025}, nil)
		bolsas.On("GetResumen", mock.Anything, bolsa.TipoInversion, b.ID, 2025).Return(resumen, nil)
		compras.On("ListByYear", mock.Anything, 2025).Return([]compra.Compra{}, nil)

		page, err := svc.Load(ctx, sess, bolsa.TipoInversion, b.ID, "2025")

		require.NoError(t, err)
		assert.Equal(t, 2025, page.Anio)
	})

	t.Run("falls back to the most recent year for unknown or garbage parameters", func(t *testing.T) {
		for _, param := range []string{"1999", "not-a-year", "2025.5"} {
			svc, bolsas, compras, b, sess := newDashboardFixture(t)

			bolsas.On("FindByID", ctx, bolsa.TipoInversion, b.ID).Return(b, nil)
			bolsas.On("ListYears", ctx, bolsa.TipoInversion, b.ID).Return([]int{2026}, nil)
			bolsas.On("GetResumen", mock.Anything, bolsa.TipoInversion, b.ID, 2026).Return(&bolsa.ResumenAnual{Anio: 2026}, nil)
			compras.On("ListByYear", mock.Anything, 2026).Return([]compra.Compra{}, nil)

			page, err := svc.Load(ctx, sess, bolsa.TipoInversion, b.ID, param)

			require.NoError(t, err, "param %q", param)
			assert.Equal(t, 2026, page.Anio, "param %q", param)
		}
	})

	t.Run("summary record vanishing mid-request degrades to empty", func(t *testing.T) {
		svc, bolsas, compras, b, sess := newDashboardFixture(t)

		bolsas.On("FindByID", ctx, bolsa.TipoInversion, b.ID).Return(b, nil)
		bolsas.On("ListYears", ctx, bolsa.TipoInversion, b.ID).Return([]int{2026}, nil)
		bolsas.On("GetResumen", mock.Anything, bolsa.TipoInversion, b.ID, 2026).Return(nil, shared.ErrNotFound)
		compras.On("ListByYear", mock.Anything, 2026).Return([]compra.Compra{}, nil).Maybe()

		page, err := svc.Load(ctx, sess, bolsa.TipoInversion, b.ID, "")

		require.NoError(t, err)
		assert.Equal(t, StateEmpty, page.State)
	})

	t.Run("query failures propagate", func(t *testing.T) {
		svc, bolsas, compras, b, sess := newDashboardFixture(t)
		dbErr := errors.New("connection reset")

		bolsas.On("FindByID", ctx, bolsa.TipoInversion, b.ID).Return(b, nil)
		bolsas.On("ListYears", ctx, bolsa.TipoInversion, b.ID).Return([]int{2026}, nil)
		bolsas.On("GetResumen", mock.Anything, bolsa.TipoInversion, b.ID, 2026).Return(&bolsa.ResumenAnual{Anio: 2026}, nil).Maybe()
		compras.On("ListByYear", mock.Anything, 2026).Return(nil, dbErr)

		page, err := svc.Load(ctx, sess, bolsa.TipoInversion, b.ID, "")

		assert.Nil(t, page)
		assert.ErrorIs(t, err, dbErr)
	})
}
