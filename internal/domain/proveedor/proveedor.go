package proveedor

import (
	"strings"

	"github.com/compras/backend/internal/domain/shared"
)

// Proveedor is a supplier record. It is returned to the API verbatim,
// with no derived state.
type Proveedor struct {
	shared.BaseEntity
	Nombre string `gorm:"type:varchar(200);not null;index"`
	// NombreBusqueda holds the accent-stripped lowercase name. It is what
	// the search endpoint matches against, so lookups for "Óptica" and
	// "optica" return the same rows.
	NombreBusqueda string `gorm:"type:varchar(200);not null;index"`
	NIF            string `gorm:"type:varchar(20);uniqueIndex"`
	Email          string `gorm:"type:varchar(200)"`
	Telefono       string `gorm:"type:varchar(50)"`
	Direccion      string `gorm:"type:text"`
	Notas          string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Proveedor) TableName() string {
	return "proveedores"
}

// New creates a supplier with required fields
func New(nombre, nif string) (*Proveedor, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, shared.NewDomainError("INVALID_NOMBRE", "Nombre is required")
	}
	return &Proveedor{
		BaseEntity:     shared.NewBaseEntity(),
		Nombre:         nombre,
		NombreBusqueda: NormalizarNombre(nombre),
		NIF:            strings.ToUpper(strings.TrimSpace(nif)),
	}, nil
}
