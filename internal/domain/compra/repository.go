package compra

import "context"

// CompraRepository defines read operations for purchase rows.
type CompraRepository interface {
	// ListByYear returns all non-voided purchase rows for the fiscal
	// year, ordered by date. The result is scoped by year only; callers
	// must not assume rows are pre-filtered to a single pool.
	ListByYear(ctx context.Context, anio int) ([]Compra, error)
}
