package web

import (
	"html/template"

	"github.com/shopspring/decimal"
)

// Parse loads the embedded templates with their helper functions.
func Parse() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"barWidth": barWidth,
	}).ParseFS(Templates, "templates/*.html")
}

// barWidth sizes a chart bar as a percentage of the series total.
func barWidth(importe, total decimal.Decimal) string {
	if total.IsZero() {
		return "0"
	}
	return importe.Div(total).Mul(decimal.NewFromInt(100)).Round(1).String()
}
