package compra

import (
	"testing"
	"time"

	"github.com/compras/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	bolsaID := uuid.New()
	fecha := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	t.Run("creates row with year derived from date", func(t *testing.T) {
		c, err := New(bolsaID, fecha, "Material", decimal.NewFromInt(150))
		require.NoError(t, err)
		assert.Equal(t, 2024, c.Anio)
		assert.Equal(t, EstadoRegistrada, c.Estado)
	})

	t.Run("rejects nil bolsa", func(t *testing.T) {
		_, err := New(uuid.Nil, fecha, "Material", decimal.NewFromInt(1))
		assert.Error(t, err)
	})

	t.Run("rejects zero date", func(t *testing.T) {
		_, err := New(bolsaID, time.Time{}, "Material", decimal.NewFromInt(1))
		assert.Error(t, err)
	})

	t.Run("rejects blank category", func(t *testing.T) {
		_, err := New(bolsaID, fecha, "   ", decimal.NewFromInt(1))
		assert.Error(t, err)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := New(bolsaID, fecha, "Material", decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestCompra_AdjuntarFactura(t *testing.T) {
	newCompra := func(t *testing.T) *Compra {
		c, err := New(uuid.New(), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), "Material", decimal.NewFromInt(10))
		require.NoError(t, err)
		return c
	}

	t.Run("accepts flat filename and marks invoiced", func(t *testing.T) {
		c := newCompra(t)
		require.NoError(t, c.AdjuntarFactura("factura-0042.pdf"))
		assert.Equal(t, "factura-0042.pdf", c.FacturaPDF)
		assert.Equal(t, EstadoFacturada, c.Estado)
	})

	t.Run("rejects path traversal", func(t *testing.T) {
		c := newCompra(t)
		assert.Error(t, c.AdjuntarFactura("../../etc/passwd"))
		assert.Error(t, c.AdjuntarFactura("dir/factura.pdf"))
		assert.Error(t, c.AdjuntarFactura(`dir\factura.pdf`))
		assert.Error(t, c.AdjuntarFactura(""))
	})
}

func TestCompra_Anular(t *testing.T) {
	c, err := New(uuid.New(), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), "Material", decimal.NewFromInt(10))
	require.NoError(t, err)

	assert.NoError(t, c.Anular())
	assert.Equal(t, EstadoAnulada, c.Estado)
	assert.ErrorIs(t, c.Anular(), shared.ErrInvalidState)
}
