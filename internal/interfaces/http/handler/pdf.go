package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/compras/backend/internal/application/archivo"
	"github.com/compras/backend/internal/domain/bolsa"
	"github.com/compras/backend/internal/infrastructure/printing"
	"github.com/compras/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// uploadFieldName is the multipart form field carrying the PDF.
const uploadFieldName = "archivo"

// PDFHandler manages uploaded purchase justification documents and the
// page-to-PDF export.
type PDFHandler struct {
	BaseHandler
	archivos   *archivo.Service
	exporter   *printing.Exporter
	cookieName string
	logger     *zap.Logger
}

// NewPDFHandler creates a new PDFHandler
func NewPDFHandler(archivos *archivo.Service, exporter *printing.Exporter, cookieName string, logger *zap.Logger) *PDFHandler {
	return &PDFHandler{
		archivos:   archivos,
		exporter:   exporter,
		cookieName: cookieName,
		logger:     logger,
	}
}

// DeleteRequest is the payload for POST /api/pdf/delete.
type DeleteRequest struct {
	Filename string `json:"filename"`
}

// Delete removes an uploaded PDF by filename. Deleting a file that is
// already absent answers 404 so callers can tell the two outcomes apart.
func (h *PDFHandler) Delete(c *gin.Context) {
	var req DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body")
		return
	}

	if err := h.archivos.Delete(c.Request.Context(), req.Filename); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, nil)
}

// Upload stores a multipart PDF and returns the server-assigned filename.
func (h *PDFHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile(uploadFieldName)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidationRequired,
			fmt.Sprintf("Multipart field %q is required", uploadFieldName))
		return
	}
	defer file.Close()

	filename, err := h.archivos.Upload(c.Request.Context(), file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"filename": filename})
}

// ExportRequest is the payload for POST /api/pdf/export. The page to
// render is named by its components, never by a raw URL.
type ExportRequest struct {
	Tipo string `json:"tipo" binding:"required,tipo_bolsa"`
	ID   string `json:"id" binding:"required,uuid"`
	Anio string `json:"an"`
}

// Export renders a dashboard page to PDF through headless Chromium,
// stores it alongside the uploads and returns the stored filename. The
// caller's own session token authenticates the render.
func (h *PDFHandler) Export(c *gin.Context) {
	if h.exporter == nil || !h.exporter.IsEnabled() {
		h.Unavailable(c, "PDF export is not enabled")
		return
	}

	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body")
		return
	}

	tipo, err := bolsa.ParseTipo(req.Tipo)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidationFormat, "Invalid id")
		return
	}

	path := fmt.Sprintf("/%s/%s", tipo, id)
	if req.Anio != "" {
		path += "?an=" + req.Anio
	}

	token := h.sessionToken(c)
	pdf, err := h.exporter.ExportPage(c.Request.Context(), path, h.cookieName, token)
	if err != nil {
		if errors.Is(err, printing.ErrDisabled) {
			h.Unavailable(c, "PDF export is not enabled")
			return
		}
		h.logger.Error("failed to export page", zap.String("path", path), zap.Error(err))
		h.InternalError(c, "Failed to export page")
		return
	}

	filename := uuid.New().String() + ".pdf"
	if err := h.archivos.Save(c.Request.Context(), filename, bytes.NewReader(pdf)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"filename": filename, "size": len(pdf)})
}

// sessionToken returns the raw token of the current request, from the
// session cookie or the Authorization header.
func (h *PDFHandler) sessionToken(c *gin.Context) string {
	if token, err := c.Cookie(h.cookieName); err == nil && token != "" {
		return token
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
