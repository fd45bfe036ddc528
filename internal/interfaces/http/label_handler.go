package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-scanner/internal/application/dto"
	"github.com/jhoicas/Inventario-scanner/internal/application/labels"
)

// LabelHandler pantalla de etiquetas: selección múltiple y exportación.
type LabelHandler struct {
	svc *labels.Service
}

// NewLabelHandler construye el handler.
func NewLabelHandler(svc *labels.Service) *LabelHandler {
	return &LabelHandler{svc: svc}
}

// Selection godoc
// @Summary      Cargar catálogo y ver la selección
// @Description  Recarga el catálogo (mismos filtros que /api/products) y poda la selección.
// @Tags         labels
// @Produce      json
// @Param        search     query  string  false  "Buscar por nombre o código"
// @Param        low_stock  query  bool    false  "Solo productos en o bajo el mínimo"
// @Success      200  {object}  dto.SelectionResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/labels [get]
func (h *LabelHandler) Selection(c *fiber.Ctx) error {
	out, err := h.svc.LoadCatalog(c.Context(), productFilterFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Toggle godoc
// @Summary      Marcar o desmarcar un producto
// @Tags         labels
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.SelectionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/labels/toggle/{id} [post]
func (h *LabelHandler) Toggle(c *fiber.Ctx) error {
	out, err := h.svc.Toggle(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SelectAll godoc
// @Summary      Seleccionar todo / deseleccionar todo
// @Description  Si todo el catálogo ya estaba seleccionado, limpia la selección.
// @Tags         labels
// @Produce      json
// @Success      200  {object}  dto.SelectionResponse
// @Router       /api/labels/select-all [post]
func (h *LabelHandler) SelectAll(c *fiber.Ctx) error {
	return c.JSON(h.svc.SelectAll())
}

// Clear godoc
// @Summary      Limpiar selección
// @Tags         labels
// @Produce      json
// @Success      200  {object}  dto.SelectionResponse
// @Router       /api/labels/clear [post]
func (h *LabelHandler) Clear(c *fiber.Ctx) error {
	return c.JSON(h.svc.Clear())
}

// Export godoc
// @Summary      Exportar etiquetas
// @Description  batch: un documento con todos los seleccionados (se devuelve el binario).
//
//	single: un documento por producto, en secuencia con 500 ms de pausa (JSON con base64).
//
// @Tags         labels
// @Produce      application/pdf
// @Produce      json
// @Param        mode  query  string  false  "single | batch (por defecto batch)"
// @Success      200  {object}  dto.ExportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ExportResponse  "documentos parciales y error"
// @Router       /api/labels/export [post]
func (h *LabelHandler) Export(c *fiber.Ctx) error {
	mode, err := labels.ParseMode(c.Query("mode"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.Export(c.Context(), mode)
	if err != nil {
		if len(out.Documents) == 0 {
			return writeError(c, err)
		}
		// Corte a mitad de la secuencia: se devuelven los documentos ya generados.
		resp := dto.ErrorResponseFrom(err)
		out.Error = &resp
		return c.Status(statusFor(resp.Code)).JSON(out)
	}
	if mode == labels.ModeBatch && len(out.Documents) == 1 {
		doc := out.Documents[0]
		if doc.ContentType != "" {
			c.Set(fiber.HeaderContentType, doc.ContentType)
		}
		c.Attachment(doc.Filename)
		return c.Send(doc.Content)
	}
	return c.JSON(out)
}

// Preview godoc
// @Summary      Vista previa local de la hoja de etiquetas
// @Tags         labels
// @Produce      application/pdf
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/labels/preview [get]
func (h *LabelHandler) Preview(c *fiber.Ctx) error {
	pdf, err := h.svc.Preview(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="etiquetas_preview.pdf"`)
	return c.Send(pdf)
}
