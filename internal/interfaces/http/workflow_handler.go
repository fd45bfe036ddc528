package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-scanner/internal/application/dto"
	"github.com/jhoicas/Inventario-scanner/internal/application/workflow"
	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
)

// WorkflowHandler expone el flujo de movimiento a la UI.
type WorkflowHandler struct {
	wf *workflow.MovementWorkflow
}

// NewWorkflowHandler construye el handler.
func NewWorkflowHandler(wf *workflow.MovementWorkflow) *WorkflowHandler {
	return &WorkflowHandler{wf: wf}
}

// Scan godoc
// @Summary      Lectura del escáner
// @Description  Aplica el antirrebote (2 s) y resuelve el producto. Una lectura suprimida devuelve suppressed=true.
// @Tags         workflow
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanRequest  true  "code, symbology (code128|qr|ean13|ean8)"
// @Success      200   {object}  dto.WorkflowResponse
// @Failure      400   {object}  dto.WorkflowResponse
// @Failure      404   {object}  dto.WorkflowResponse
// @Failure      502   {object}  dto.WorkflowResponse
// @Router       /api/workflow/scan [post]
func (h *WorkflowHandler) Scan(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	symbology := entity.Symbology(strings.ToLower(strings.TrimSpace(in.Symbology)))
	if symbology == "" {
		// lectores en modo teclado no informan simbología
		symbology = entity.SymbologyCode128
	}
	view, err := h.wf.HandleScan(c.Context(), entity.ScanEvent{Code: in.Code, Symbology: symbology})
	return respondView(c, view, err)
}

// Lookup godoc
// @Summary      Búsqueda manual por código de barras
// @Tags         workflow
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LookupRequest  true  "barcode"
// @Success      200   {object}  dto.WorkflowResponse
// @Failure      400   {object}  dto.WorkflowResponse
// @Failure      404   {object}  dto.WorkflowResponse
// @Failure      502   {object}  dto.WorkflowResponse
// @Router       /api/workflow/lookup [post]
func (h *WorkflowHandler) Lookup(c *fiber.Ctx) error {
	var in dto.LookupRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	view, err := h.wf.Lookup(c.Context(), in.Barcode)
	return respondView(c, view, err)
}

// SetMovement godoc
// @Summary      Indicar dirección y cantidad
// @Description  Devuelve la proyección de stock (solo informativa).
// @Tags         workflow
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementInputRequest  true  "direction (IN|OUT|ADJUST), quantity, note"
// @Success      200   {object}  dto.WorkflowResponse
// @Failure      400   {object}  dto.WorkflowResponse
// @Router       /api/workflow/movement [put]
func (h *WorkflowHandler) SetMovement(c *fiber.Ctx) error {
	var in dto.MovementInputRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	view, err := h.wf.SetMovement(entity.Direction(in.Direction), in.Quantity, in.Note)
	return respondView(c, view, err)
}

// Submit godoc
// @Summary      Registrar el movimiento
// @Description  Hasta 3 intentos con 2 s de espera; 502 solo tras agotar los intentos.
// @Tags         workflow
// @Produce      json
// @Success      200   {object}  dto.WorkflowResponse
// @Failure      400   {object}  dto.WorkflowResponse
// @Failure      502   {object}  dto.WorkflowResponse
// @Router       /api/workflow/submit [post]
func (h *WorkflowHandler) Submit(c *fiber.Ctx) error {
	view, err := h.wf.Submit(c.Context())
	return respondView(c, view, err)
}

// Reset godoc
// @Summary      Volver a idle y reabrir el lector
// @Tags         workflow
// @Produce      json
// @Success      200   {object}  dto.WorkflowResponse
// @Router       /api/workflow/reset [post]
func (h *WorkflowHandler) Reset(c *fiber.Ctx) error {
	return c.JSON(h.wf.Reset())
}

// View godoc
// @Summary      Estado actual del flujo
// @Tags         workflow
// @Produce      json
// @Success      200   {object}  dto.WorkflowResponse
// @Router       /api/workflow [get]
func (h *WorkflowHandler) View(c *fiber.Ctx) error {
	return c.JSON(h.wf.View())
}

// respondView devuelve siempre la vista; ante error fija el status y adjunta el error.
func respondView(c *fiber.Ctx, view dto.WorkflowResponse, err error) error {
	if err == nil {
		return c.JSON(view)
	}
	resp := dto.ErrorResponseFrom(err)
	if view.Error == nil {
		view.Error = &resp
	}
	return c.Status(statusFor(resp.Code)).JSON(view)
}
