package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-scanner/internal/application/usecase"
)

// CatalogHandler tipos y colores para el formulario de alta.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListTypes godoc
// @Summary      Listar tipos de producto activos
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.RefListResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/types [get]
func (h *CatalogHandler) ListTypes(c *fiber.Ctx) error {
	out, err := h.uc.Types(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListColors godoc
// @Summary      Listar colores activos
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.RefListResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/colors [get]
func (h *CatalogHandler) ListColors(c *fiber.Ctx) error {
	out, err := h.uc.Colors(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
