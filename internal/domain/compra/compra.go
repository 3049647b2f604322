package compra

import (
	"strings"
	"time"

	"github.com/compras/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estado represents the lifecycle state of a purchase
type Estado string

const (
	EstadoRegistrada Estado = "registrada"
	EstadoFacturada  Estado = "facturada"
	EstadoPagada     Estado = "pagada"
	EstadoAnulada    Estado = "anulada"
)

// Compra is one itemized purchase row. Rows belong to a pool but the
// dashboard detail query scopes them by fiscal year only.
type Compra struct {
	shared.BaseEntity
	BolsaID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Anio        int             `gorm:"not null;index"`
	Fecha       time.Time       `gorm:"not null"`
	Categoria   string          `gorm:"type:varchar(100);not null;index"`
	Descripcion string          `gorm:"type:text"`
	ProveedorID *uuid.UUID      `gorm:"type:uuid;index"`
	Importe     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	FacturaPDF  string          `gorm:"type:varchar(255)"` // uploaded invoice filename, flat
	Estado      Estado          `gorm:"type:varchar(20);not null;default:'registrada'"`
}

// TableName returns the table name for GORM
func (Compra) TableName() string {
	return "compras"
}

// New creates a purchase row for the year of its date.
func New(bolsaID uuid.UUID, fecha time.Time, categoria string, importe decimal.Decimal) (*Compra, error) {
	if bolsaID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BOLSA", "Bolsa is required")
	}
	if fecha.IsZero() {
		return nil, shared.NewDomainError("INVALID_FECHA", "Fecha is required")
	}
	categoria = strings.TrimSpace(categoria)
	if categoria == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORIA", "Categoria is required")
	}
	if importe.IsNegative() {
		return nil, shared.NewDomainError("INVALID_IMPORTE", "Importe cannot be negative")
	}
	return &Compra{
		BaseEntity: shared.NewBaseEntity(),
		BolsaID:    bolsaID,
		Anio:       fecha.Year(),
		Fecha:      fecha,
		Categoria:  categoria,
		Importe:    importe,
		Estado:     EstadoRegistrada,
	}, nil
}

// AdjuntarFactura records the uploaded invoice filename. Filenames must be
// flat: no separators or parent references.
func (c *Compra) AdjuntarFactura(filename string) error {
	if filename == "" || strings.ContainsAny(filename, "/\\") || strings.Contains(filename, "..") {
		return shared.NewDomainError("INVALID_FILENAME", "Invoice filename must be a plain file name")
	}
	c.FacturaPDF = filename
	if c.Estado == EstadoRegistrada {
		c.Estado = EstadoFacturada
	}
	return nil
}

// Anular voids the purchase; voided rows keep their data but are excluded
// from new summaries.
func (c *Compra) Anular() error {
	if c.Estado == EstadoAnulada {
		return shared.ErrInvalidState
	}
	c.Estado = EstadoAnulada
	return nil
}
