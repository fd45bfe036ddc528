package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-scanner/internal/application/dto"
	"github.com/jhoicas/Inventario-scanner/internal/application/inventory"
)

// InventoryHandler consultas de movimientos recientes y reposición.
type InventoryHandler struct {
	movements     *inventory.MovementUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movements *inventory.MovementUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{movements: movements, replenishment: replenishment}
}

// RecentMovements godoc
// @Summary      Movimientos recientes
// @Tags         inventory
// @Produce      json
// @Param        hours  query  int  false  "Ventana en horas (24 por defecto, máx. 720)"
// @Success      200  {array}   dto.MovementResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/movements/recent [get]
func (h *InventoryHandler) RecentMovements(c *fiber.Ctx) error {
	list, err := h.movements.Recent(c.Context(), c.QueryInt("hours", 0))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		if m != nil {
			out = append(out, dto.ToMovementResponse(m))
		}
	}
	return c.JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos en o bajo su mínimo con la cantidad sugerida de pedido,
//
//	ordenados por margen bruto y déficit.
//
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}
