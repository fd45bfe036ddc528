package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-scanner/internal/application/inventory"
	"github.com/jhoicas/Inventario-scanner/internal/application/labels"
	"github.com/jhoicas/Inventario-scanner/internal/application/usecase"
	"github.com/jhoicas/Inventario-scanner/internal/application/workflow"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Workflow      *workflow.MovementWorkflow
	ProductUC     *usecase.ProductUseCase
	CatalogUC     *usecase.CatalogUseCase
	MovementUC    *inventory.MovementUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Labels        *labels.Service
}

// Router registra las rutas de la API local que consume la UI.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Flujo escanear → resolver → proyectar → registrar
	wf := api.Group("/workflow")
	workflowHandler := NewWorkflowHandler(deps.Workflow)
	wf.Get("/", workflowHandler.View)
	wf.Post("/scan", workflowHandler.Scan)
	wf.Post("/lookup", workflowHandler.Lookup)
	wf.Put("/movement", workflowHandler.SetMovement)
	wf.Post("/submit", workflowHandler.Submit)
	wf.Post("/reset", workflowHandler.Reset)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Tipos y colores (alta de productos)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/types", catalogHandler.ListTypes)
	api.Get("/colors", catalogHandler.ListColors)

	// Movimientos e inventario
	inventoryHandler := NewInventoryHandler(deps.MovementUC, deps.Replenishment)
	api.Get("/movements/recent", inventoryHandler.RecentMovements)
	api.Get("/inventory/replenishment-list", inventoryHandler.GetReplenishmentList)

	// Etiquetas
	lbl := api.Group("/labels")
	labelHandler := NewLabelHandler(deps.Labels)
	lbl.Get("/", labelHandler.Selection)
	lbl.Post("/toggle/:id", labelHandler.Toggle)
	lbl.Post("/select-all", labelHandler.SelectAll)
	lbl.Post("/clear", labelHandler.Clear)
	lbl.Post("/export", labelHandler.Export)
	lbl.Get("/preview", labelHandler.Preview)
}
