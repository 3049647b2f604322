package compra

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(categoria string, mes int, importe int64) Compra {
	return Compra{
		Anio:      2024,
		Fecha:     time.Date(2024, time.Month(mes), 10, 0, 0, 0, 0, time.UTC),
		Categoria: categoria,
		Importe:   decimal.NewFromInt(importe),
	}
}

func TestBuildChartSeries(t *testing.T) {
	t.Run("empty input yields empty series", func(t *testing.T) {
		series := BuildChartSeries(nil)
		assert.Empty(t, series)
		assert.True(t, series.Total().IsZero())
	})

	t.Run("groups by category and sums", func(t *testing.T) {
		rows := []Compra{
			row("Material", 1, 300),
			row("Servicios", 2, 1200),
			row("Material", 3, 700),
			row("Licencias", 4, 1200),
		}
		series := BuildChartSeries(rows)

		require.Len(t, series, 3)
		// Sorted by amount descending, ties broken by label.
		assert.Equal(t, "Licencias", series[0].Etiqueta)
		assert.Equal(t, "Servicios", series[1].Etiqueta)
		assert.Equal(t, "Material", series[2].Etiqueta)
		assert.True(t, series[2].Importe.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("total equals sum of input rows", func(t *testing.T) {
		rows := []Compra{
			row("Material", 1, 300),
			row("Servicios", 2, 1200),
			row("Material", 3, 700),
		}
		total := decimal.Zero
		for _, r := range rows {
			total = total.Add(r.Importe)
		}
		assert.True(t, BuildChartSeries(rows).Total().Equal(total))
	})

	t.Run("invariant under input permutation", func(t *testing.T) {
		rows := []Compra{
			row("Material", 1, 300),
			row("Servicios", 2, 1200),
			row("Material", 3, 700),
			row("Obras", 5, 90),
			row("Licencias", 6, 1200),
		}
		want := BuildChartSeries(rows)

		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 10; i++ {
			shuffled := make([]Compra, len(rows))
			copy(shuffled, rows)
			rng.Shuffle(len(shuffled), func(a, b int) {
				shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
			})
			assert.Equal(t, want, BuildChartSeries(shuffled))
		}
	})
}

func TestBuildMonthlySeries(t *testing.T) {
	t.Run("empty input yields empty series", func(t *testing.T) {
		assert.Empty(t, BuildMonthlySeries(nil))
	})

	t.Run("buckets by month in calendar order", func(t *testing.T) {
		rows := []Compra{
			row("Material", 11, 100),
			row("Servicios", 2, 250),
			row("Material", 2, 50),
		}
		series := BuildMonthlySeries(rows)

		require.Len(t, series, 2)
		assert.Equal(t, "02", series[0].Etiqueta)
		assert.True(t, series[0].Importe.Equal(decimal.NewFromInt(300)))
		assert.Equal(t, "11", series[1].Etiqueta)
	})

	t.Run("total equals sum of input rows", func(t *testing.T) {
		rows := []Compra{row("A", 1, 10), row("B", 1, 20), row("C", 12, 30)}
		assert.True(t, BuildMonthlySeries(rows).Total().Equal(decimal.NewFromInt(60)))
	})
}
