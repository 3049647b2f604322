package compra

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ChartPoint is one grouped-and-summed bucket of the chart series.
type ChartPoint struct {
	Etiqueta string          `json:"etiqueta"`
	Importe  decimal.Decimal `json:"importe"`
}

// ChartSeries is a derived, read-only aggregation of purchase rows.
type ChartSeries []ChartPoint

// Total returns the sum over the series; it equals the sum of the rows the
// series was built from.
func (s ChartSeries) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s {
		total = total.Add(p.Importe)
	}
	return total
}

// BuildChartSeries groups purchase rows by category and sums their
// amounts. The result is independent of the input order: points are sorted
// by amount descending, then by label. An empty input yields an empty
// series.
func BuildChartSeries(rows []Compra) ChartSeries {
	sums := make(map[string]decimal.Decimal)
	for _, r := range rows {
		sums[r.Categoria] = sums[r.Categoria].Add(r.Importe)
	}

	series := make(ChartSeries, 0, len(sums))
	for categoria, importe := range sums {
		series = append(series, ChartPoint{Etiqueta: categoria, Importe: importe})
	}
	sort.Slice(series, func(i, j int) bool {
		if !series[i].Importe.Equal(series[j].Importe) {
			return series[i].Importe.GreaterThan(series[j].Importe)
		}
		return series[i].Etiqueta < series[j].Etiqueta
	})
	return series
}

// BuildMonthlySeries groups purchase rows by calendar month for the trend
// chart. Labels are "01".."12"; months without purchases are omitted.
func BuildMonthlySeries(rows []Compra) ChartSeries {
	sums := make(map[int]decimal.Decimal)
	for _, r := range rows {
		m := int(r.Fecha.Month())
		sums[m] = sums[m].Add(r.Importe)
	}

	series := make(ChartSeries, 0, len(sums))
	for m, importe := range sums {
		series = append(series, ChartPoint{Etiqueta: fmt.Sprintf("%02d", m), Importe: importe})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Etiqueta < series[j].Etiqueta
	})
	return series
}
