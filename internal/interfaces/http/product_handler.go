package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-scanner/internal/application/dto"
	"github.com/jhoicas/Inventario-scanner/internal/application/usecase"
	"github.com/jhoicas/Inventario-scanner/internal/domain/repository"
)

// ProductHandler maneja las peticiones HTTP de productos.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Description  El servicio genera el código de barras. Reintenta hasta 3 veces ante fallos de red.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "name, type_id, color_id, initial_stock, minimum_stock, cost_price, sale_price"
// @Success      201   {object}  dto.CreateProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        search     query  string  false  "Buscar por nombre o código"
// @Param        type_id    query  string  false  "Filtrar por tipo"
// @Param        color_id   query  string  false  "Filtrar por color"
// @Param        low_stock  query  bool    false  "Solo productos en o bajo el mínimo"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), productFilterFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func productFilterFrom(c *fiber.Ctx) repository.ProductFilter {
	return repository.ProductFilter{
		Search:       c.Query("search"),
		TypeID:       c.Query("type_id"),
		ColorID:      c.Query("color_id"),
		LowStockOnly: c.QueryBool("low_stock", false),
	}
}
