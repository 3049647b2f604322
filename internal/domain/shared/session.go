package shared

import "github.com/google/uuid"

// Rol represents the application role carried in the session claims.
type Rol string

const (
	RolAdmin    Rol = "admin"
	RolGestor   Rol = "gestor"
	RolConsulta Rol = "consulta"
)

// Session is the authenticated identity resolved for a single request.
// It is built from claims issued by the external identity provider and is
// never persisted; a nil *Session means the request is unauthenticated.
type Session struct {
	UserID uuid.UUID
	Nombre string
	Email  string
	Rol    Rol
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Rol == RolAdmin
}

// PuedeEditar reports whether the session may use edit/delete affordances
// in the detail table.
func (s *Session) PuedeEditar() bool {
	return s != nil && (s.Rol == RolAdmin || s.Rol == RolGestor)
}
