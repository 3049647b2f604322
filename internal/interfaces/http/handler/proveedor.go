package handler

import (
	"net/http"
	"strconv"
	"time"

	appproveedor "github.com/compras/backend/internal/application/proveedor"
	"github.com/compras/backend/internal/domain/proveedor"
	"github.com/compras/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ProveedorHandler serves supplier lookups for the purchase form.
type ProveedorHandler struct {
	BaseHandler
	proveedores *appproveedor.Service
}

// NewProveedorHandler creates a new ProveedorHandler
func NewProveedorHandler(proveedores *appproveedor.Service) *ProveedorHandler {
	return &ProveedorHandler{proveedores: proveedores}
}

// ViewRequest is the payload for POST /api/proveedor/view.
type ViewRequest struct {
	ID string `json:"id"`
}

// ProveedorResponse is the supplier record returned by the API.
type ProveedorResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	NIF       string    `json:"nif"`
	Email     string    `json:"email,omitempty"`
	Telefono  string    `json:"telefono,omitempty"`
	Direccion string    `json:"direccion,omitempty"`
	Notas     string    `json:"notas,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toProveedorResponse(p *proveedor.Proveedor) ProveedorResponse {
	return ProveedorResponse{
		ID:        p.ID.String(),
		Nombre:    p.Nombre,
		NIF:       p.NIF,
		Email:     p.Email,
		Telefono:  p.Telefono,
		Direccion: p.Direccion,
		Notas:     p.Notas,
		CreatedAt: p.CreatedAt,
	}
}

// View returns a single supplier by id. A missing or malformed id is a
// validation error, an unknown id is 404.
func (h *ProveedorHandler) View(c *gin.Context) {
	var req ViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body")
		return
	}

	p, err := h.proveedores.View(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProveedorResponse(p))
}

// Buscar searches suppliers by name, folding case and accents.
func (h *ProveedorHandler) Buscar(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	results, err := h.proveedores.Buscar(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]ProveedorResponse, 0, len(results))
	for i := range results {
		out = append(out, toProveedorResponse(&results[i]))
	}

	h.Success(c, out)
}
