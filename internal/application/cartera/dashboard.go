package cartera

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/compras/backend/internal/domain/bolsa"
	"github.com/compras/backend/internal/domain/compra"
	"github.com/compras/backend/internal/domain/shared"
)

// State is the terminal outcome of loading a dashboard page.
type State int

const (
	// StateDenied covers missing sessions, unknown pools and
	// unauthorized users alike.
	StateDenied State = iota
	// StateEmpty means the pool is viewable but has no summary years.
	StateEmpty
	// StateRendered means the page carries a full view model.
	StateRendered
)

// Page is the view model for the dashboard templates.
type Page struct {
	State        State
	Session      *shared.Session
	Bolsa        *bolsa.Bolsa
	Anios        []int
	Anio         int
	Resumen      *bolsa.ResumenAnual
	Compras      []compra.Compra
	PorCategoria compra.ChartSeries
	PorMes       compra.ChartSeries
}

// DashboardService loads everything one dashboard request needs.
type DashboardService struct {
	access  *AccessService
	bolsas  bolsa.BolsaRepository
	compras compra.CompraRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(access *AccessService, bolsas bolsa.BolsaRepository, compras compra.CompraRepository) *DashboardService {
	return &DashboardService{
		access:  access,
		bolsas:  bolsas,
		compras: compras,
	}
}

// Load resolves the page for a pool and an optional year parameter.
// The access check runs strictly before any pool-scoped query. anioParam
// is taken as-is from the query string; values outside the pool's year
// list fall back to the most recent year.
func (s *DashboardService) Load(ctx context.Context, sess *shared.Session, tipo bolsa.Tipo, id uuid.UUID, anioParam string) (*Page, error) {
	if sess == nil {
		return &Page{State: StateDenied}, nil
	}

	// The access check loads the pool; reuse it instead of a second fetch.
	b, ok, err := s.access.Resolve(ctx, sess, tipo, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Page{State: StateDenied, Session: sess}, nil
	}

	anios, err := s.bolsas.ListYears(ctx, tipo, id)
	if err != nil {
		return nil, err
	}
	if len(anios) == 0 {
		return &Page{State: StateEmpty, Session: sess, Bolsa: b}, nil
	}

	anio := resolveAnio(anioParam, anios)

	var (
		resumen *bolsa.ResumenAnual
		rows    []compra.Compra
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resumen, err = s.bolsas.GetResumen(gctx, tipo, id, anio)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.compras.ListByYear(gctx, anio)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// years come from the summary table, so a listed year
			// without a record means it was deleted mid-request
			return &Page{State: StateEmpty, Session: sess, Bolsa: b}, nil
		}
		return nil, err
	}

	return &Page{
		State:        StateRendered,
		Session:      sess,
		Bolsa:        b,
		Anios:        anios,
		Anio:         anio,
		Resumen:      resumen,
		Compras:      rows,
		PorCategoria: compra.BuildChartSeries(rows),
		PorMes:       compra.BuildMonthlySeries(rows),
	}, nil
}

// resolveAnio picks the effective year: the parameter when it names a year
// the pool actually has, otherwise the most recent one.
func resolveAnio(param string, anios []int) int {
	if param != "" {
		if anio, err := strconv.Atoi(param); err == nil {
			for _, a := range anios {
				if a == anio {
					return a
				}
			}
		}
	}
	return anios[0]
}
