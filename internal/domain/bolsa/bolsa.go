package bolsa

import (
	"strings"

	"github.com/compras/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipo distinguishes the two kinds of pool the application manages.
type Tipo string

const (
	TipoInversion   Tipo = "inversion"   // investment pool
	TipoPresupuesto Tipo = "presupuesto" // budget pool
)

// ParseTipo validates a tipo coming from a URL segment or request body.
func ParseTipo(s string) (Tipo, error) {
	switch Tipo(strings.ToLower(strings.TrimSpace(s))) {
	case TipoInversion:
		return TipoInversion, nil
	case TipoPresupuesto:
		return TipoPresupuesto, nil
	default:
		return "", shared.NewDomainError("INVALID_TIPO", "Tipo must be 'inversion' or 'presupuesto'")
	}
}

// Estado represents the lifecycle state of a pool
type Estado string

const (
	EstadoActiva  Estado = "activa"
	EstadoCerrada Estado = "cerrada"
)

// Bolsa is an investment or budget pool. It is the aggregate root for the
// per-year summaries and the membership list that gates who may view it.
type Bolsa struct {
	shared.BaseEntity
	Tipo          Tipo      `gorm:"type:varchar(20);not null;index"`
	Codigo        string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Nombre        string    `gorm:"type:varchar(200);not null"`
	Descripcion   string    `gorm:"type:text"`
	ResponsableID uuid.UUID `gorm:"type:uuid;not null;index"`
	Estado        Estado    `gorm:"type:varchar(20);not null;default:'activa'"`
}

// TableName returns the table name for GORM
func (Bolsa) TableName() string {
	return "bolsas"
}

// New creates a pool with required fields
func New(tipo Tipo, codigo, nombre string, responsableID uuid.UUID) (*Bolsa, error) {
	if _, err := ParseTipo(string(tipo)); err != nil {
		return nil, err
	}
	codigo = strings.ToUpper(strings.TrimSpace(codigo))
	if codigo == "" || len(codigo) > 50 {
		return nil, shared.NewDomainError("INVALID_CODIGO", "Codigo is required and must be at most 50 characters")
	}
	if strings.TrimSpace(nombre) == "" {
		return nil, shared.NewDomainError("INVALID_NOMBRE", "Nombre is required")
	}
	if responsableID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RESPONSABLE", "Responsable is required")
	}
	return &Bolsa{
		BaseEntity:    shared.NewBaseEntity(),
		Tipo:          tipo,
		Codigo:        codigo,
		Nombre:        nombre,
		ResponsableID: responsableID,
		Estado:        EstadoActiva,
	}, nil
}

// Cerrar closes the pool; closed pools remain visible but read-only.
func (b *Bolsa) Cerrar() error {
	if b.Estado == EstadoCerrada {
		return shared.ErrInvalidState
	}
	b.Estado = EstadoCerrada
	return nil
}

// EsVisiblePara reports whether the given user may view this pool without
// consulting the membership table: admins and the responsible always may.
func (b *Bolsa) EsVisiblePara(sess *shared.Session) bool {
	if sess == nil {
		return false
	}
	return sess.IsAdmin() || sess.UserID == b.ResponsableID
}

// ResumenAnual is the aggregate summary of one pool for one fiscal year.
// Rows are uniquely keyed by (bolsa_id, anio).
type ResumenAnual struct {
	shared.BaseEntity
	BolsaID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_resumen_bolsa_anio,priority:1"`
	Anio         int             `gorm:"not null;uniqueIndex:idx_resumen_bolsa_anio,priority:2"`
	Dotacion     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // allocated amount for the year
	Comprometido decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // committed but not yet executed
	Ejecutado    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // executed spend
}

// TableName returns the table name for GORM
func (ResumenAnual) TableName() string {
	return "bolsa_resumenes"
}

// Disponible returns the remaining amount for the year.
func (r *ResumenAnual) Disponible() decimal.Decimal {
	return r.Dotacion.Sub(r.Comprometido).Sub(r.Ejecutado)
}

// PorcentajeEjecutado returns executed spend as a percentage of the
// allocation, zero when nothing was allocated.
func (r *ResumenAnual) PorcentajeEjecutado() decimal.Decimal {
	if r.Dotacion.IsZero() {
		return decimal.Zero
	}
	return r.Ejecutado.Div(r.Dotacion).Mul(decimal.NewFromInt(100)).Round(2)
}

// Miembro grants a user visibility of a pool beyond the responsible.
type Miembro struct {
	BolsaID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UsuarioID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName returns the table name for GORM
func (Miembro) TableName() string {
	return "bolsa_miembros"
}
