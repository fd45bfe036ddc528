package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Inventario-scanner/internal/application/commit"
	"github.com/jhoicas/Inventario-scanner/internal/application/inventory"
	"github.com/jhoicas/Inventario-scanner/internal/application/labels"
	"github.com/jhoicas/Inventario-scanner/internal/application/usecase"
	"github.com/jhoicas/Inventario-scanner/internal/application/workflow"
	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
	"github.com/jhoicas/Inventario-scanner/internal/domain/scan"
	"github.com/jhoicas/Inventario-scanner/internal/infrastructure/inventoryapi"
	infrapdf "github.com/jhoicas/Inventario-scanner/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-scanner/internal/infrastructure/wedge"
	httpRouter "github.com/jhoicas/Inventario-scanner/internal/interfaces/http"
	"github.com/jhoicas/Inventario-scanner/pkg/config"
	"github.com/jhoicas/Inventario-scanner/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("inventory_api", cfg.Inventory.BaseURL).
		Msg("iniciando aplicación")

	// Servicio remoto de inventario: productos, movimientos y etiquetas
	client := inventoryapi.NewClient(cfg.Inventory.BaseURL, cfg.Inventory.Timeout, log.Zerolog())

	protocol := commit.NewProtocol(commit.Policy{
		MaxAttempts: cfg.Commit.MaxAttempts,
		Backoff:     cfg.Commit.Backoff,
	}, log.Zerolog())

	resolver := inventory.NewProductResolver(client, log.Zerolog())
	movementUC := inventory.NewMovementUseCase(client, protocol)
	replenishmentUC := inventory.NewReplenishmentUseCase(client)
	productUC := usecase.NewProductUseCase(client, protocol)
	catalogUC := usecase.NewCatalogUseCase(client)

	movementWorkflow := workflow.NewMovementWorkflow(
		scan.NewDebouncer(cfg.Scan.Cooldown),
		resolver, movementUC, log.Zerolog(),
	)

	planner := labels.NewPlanner(labels.NewSelectionSet())
	exporter := labels.NewExporter(planner, client, cfg.Labels.ExportPause, log.Zerolog())
	labelSvc := labels.NewService(client, planner, exporter, infrapdf.NewMarotoLabelGenerator(cfg.App.Name))

	// Lector tipo teclado por entrada estándar (opcional)
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	if cfg.Scan.Stdin {
		reader := wedge.NewReader(entity.SymbologyCode128, log.Zerolog())
		go func() {
			if err := movementWorkflow.Listen(ctx, reader.Events(ctx, os.Stdin)); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("lector por entrada estándar detenido")
			}
		}()
		log.Info().Msg("leyendo códigos desde la entrada estándar")
	}

	// submit puede tardar MaxAttempts × (timeout + backoff)
	policy := protocol.Policy()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Duration(policy.MaxAttempts)*(cfg.Inventory.Timeout+policy.Backoff) + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Inventario Scanner API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Workflow:      movementWorkflow,
		ProductUC:     productUC,
		CatalogUC:     catalogUC,
		MovementUC:    movementUC,
		Replenishment: replenishmentUC,
		Labels:        labelSvc,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
