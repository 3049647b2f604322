package handler

import (
	"net/http"

	"github.com/compras/backend/internal/application/cartera"
	"github.com/compras/backend/internal/domain/bolsa"
	"github.com/compras/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PanelHandler renders the server-side dashboard pages.
type PanelHandler struct {
	BaseHandler
	dashboards  *cartera.DashboardService
	landingPath string
	logger      *zap.Logger
}

// NewPanelHandler creates a new PanelHandler
func NewPanelHandler(dashboards *cartera.DashboardService, landingPath string, logger *zap.Logger) *PanelHandler {
	return &PanelHandler{
		dashboards:  dashboards,
		landingPath: landingPath,
		logger:      logger,
	}
}

// Show renders the dashboard for one pool type. Authorization failures
// and data absence render dedicated views with status 200; only
// infrastructure failures produce a non-200 page.
func (h *PanelHandler) Show(tipo bolsa.Tipo) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.GetSession(c)

		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			// Malformed ids get the same view as unknown pools.
			c.HTML(http.StatusOK, "denegado.html", nil)
			return
		}

		page, err := h.dashboards.Load(c.Request.Context(), sess, tipo, id, c.Query("an"))
		if err != nil {
			h.logger.Error("failed to load dashboard",
				zap.String("tipo", string(tipo)),
				zap.String("bolsa_id", id.String()),
				zap.Error(err))
			c.HTML(http.StatusInternalServerError, "error.html", nil)
			return
		}

		switch page.State {
		case cartera.StateDenied:
			c.HTML(http.StatusOK, "denegado.html", nil)
		case cartera.StateEmpty:
			c.HTML(http.StatusOK, "sin_datos.html", page)
		default:
			c.HTML(http.StatusOK, "panel.html", page)
		}
	}
}

// Root redirects the bare path to the configured landing page.
func (h *PanelHandler) Root(c *gin.Context) {
	if h.landingPath == "" {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return
	}
	c.Redirect(http.StatusFound, h.landingPath)
}

// NotFoundPage renders the 404 view for unknown page routes.
func (h *PanelHandler) NotFoundPage(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", nil)
}
