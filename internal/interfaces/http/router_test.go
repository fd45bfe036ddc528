package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-scanner/internal/application/commit"
	"github.com/jhoicas/Inventario-scanner/internal/application/dto"
	"github.com/jhoicas/Inventario-scanner/internal/application/inventory"
	"github.com/jhoicas/Inventario-scanner/internal/application/labels"
	"github.com/jhoicas/Inventario-scanner/internal/application/usecase"
	"github.com/jhoicas/Inventario-scanner/internal/application/workflow"
	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
	"github.com/jhoicas/Inventario-scanner/internal/domain/scan"
	"github.com/jhoicas/Inventario-scanner/internal/infrastructure/inventoryapi"
	apphttp "github.com/jhoicas/Inventario-scanner/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servicio remoto simulado
// ──────────────────────────────────────────────────────────────────────────────

type remote struct {
	mu            sync.Mutex
	movementCalls int
	failMovements bool
	exportCalls   int
	labelCalls    int
	failCatalog   bool
}

func (r *remote) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		r.mu.Lock()
		defer r.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		switch {
		case req.URL.Path == "/products/barcode/7891234567890":
			_, _ = io.WriteString(w, `{"id":1,"barcode":"7891234567890","name":"Blusa","current_stock":10,"minimum_stock":5}`)
		case strings.HasPrefix(req.URL.Path, "/products/barcode/"):
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"detail":"not found"}`)
		case req.URL.Path == "/movements/in":
			r.movementCalls++
			if r.failMovements {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":100,"product_id":1,"type":"IN","quantity":3,"previous_stock":10,"current_stock":13}`)
		case req.URL.Path == "/products" && req.Method == http.MethodGet:
			_, _ = io.WriteString(w, `[{"id":1,"name":"A","barcode":"0001"},{"id":2,"name":"B","barcode":"0002"},{"id":3,"name":"C","barcode":"0003","current_stock":1,"minimum_stock":4,"cost_price":10,"sale_price":20}]`)
		case req.URL.Path == "/products" && req.Method == http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":9,"barcode":"00090101","name":"Nuevo"}`)
		case req.URL.Path == "/products/export-batch":
			r.exportCalls++
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", `attachment; filename="etiquetas_3_produtos.pdf"`)
			_, _ = io.WriteString(w, "%PDF-fake")
		case strings.HasSuffix(req.URL.Path, "/label"):
			r.labelCalls++
			if req.URL.Path == "/products/3/label" {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = io.WriteString(w, `{"detail":"falla al generar etiqueta"}`)
				return
			}
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = io.WriteString(w, "%PDF-single")
		case req.URL.Path == "/types":
			_, _ = io.WriteString(w, `[{"id":2,"name":"Vestido","code":"02"},{"id":1,"name":"Blusa","code":"01"},{"id":3,"name":"Viejo","code":"03","active":false}]`)
		case req.URL.Path == "/colors":
			if r.failCatalog {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = io.WriteString(w, `{"items":[{"id":5,"name":"Azul","code":"05"}]}`)
		case req.URL.Path == "/movements/recent":
			assert.Equal(t, "24", req.URL.Query().Get("hours"))
			_, _ = io.WriteString(w, `[]`)
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	}
}

type fakeRenderer struct{}

func (fakeRenderer) RenderLabels(context.Context, []*entity.Product) ([]byte, error) {
	return []byte("%PDF-preview"), nil
}

func buildApp(t *testing.T, r *remote) *fiber.App {
	t.Helper()
	srv := httptest.NewServer(r.handler(t))
	t.Cleanup(srv.Close)

	log := zerolog.Nop()
	client := inventoryapi.NewClient(srv.URL, time.Second, log)
	noWait := func(context.Context, time.Duration) error { return nil }
	protocol := commit.NewProtocol(commit.DefaultPolicy(), log, commit.WithSleeper(noWait))

	movementUC := inventory.NewMovementUseCase(client, protocol)
	wf := workflow.NewMovementWorkflow(scan.NewDebouncer(scan.DefaultCooldown),
		inventory.NewProductResolver(client, log), movementUC, log)
	planner := labels.NewPlanner(labels.NewSelectionSet())
	exporter := labels.NewExporter(planner, client, 0, log, labels.WithPauseSleeper(noWait))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Workflow:      wf,
		ProductUC:     usecase.NewProductUseCase(client, protocol),
		CatalogUC:     usecase.NewCatalogUseCase(client),
		MovementUC:    movementUC,
		Replenishment: inventory.NewReplenishmentUseCase(client),
		Labels:        labels.NewService(client, planner, exporter, fakeRenderer{}),
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeView(t *testing.T, raw []byte) dto.WorkflowResponse {
	t.Helper()
	var v dto.WorkflowResponse
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestWorkflow_EscanearMoverRegistrar(t *testing.T) {
	r := &remote{}
	app := buildApp(t, r)

	resp, raw := do(t, app, http.MethodPost, "/api/workflow/scan", `{"code":"7891234567890","symbology":"ean13"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decodeView(t, raw)
	assert.Equal(t, "resolved", view.State)
	assert.Equal(t, 10, view.Product.CurrentStock)

	resp, raw = do(t, app, http.MethodPut, "/api/workflow/movement", `{"direction":"in","quantity":3}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 13, decodeView(t, raw).Preview.Projected)

	resp, raw = do(t, app, http.MethodPost, "/api/workflow/submit", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view = decodeView(t, raw)
	assert.Equal(t, "success", view.State)
	assert.Equal(t, "100", view.Movement.ID)
	assert.Len(t, view.Attempts, 1)
}

func TestWorkflow_SegundaLecturaSuprimida(t *testing.T) {
	app := buildApp(t, &remote{})

	_, _ = do(t, app, http.MethodPost, "/api/workflow/scan", `{"code":"7891234567890","symbology":"ean13"}`)
	resp, raw := do(t, app, http.MethodPost, "/api/workflow/scan", `{"code":"0000","symbology":"ean13"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decodeView(t, raw)
	assert.True(t, view.Suppressed)
	assert.Equal(t, "7891234567890", view.Barcode)
}

func TestWorkflow_NoEncontrado404(t *testing.T) {
	app := buildApp(t, &remote{})

	resp, raw := do(t, app, http.MethodPost, "/api/workflow/lookup", `{"barcode":"123"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	view := decodeView(t, raw)
	assert.Equal(t, "not-found", view.State)
	assert.Equal(t, "NOT_FOUND", view.Error.Code)
}

func TestWorkflow_FallaTrasTresIntentos502(t *testing.T) {
	r := &remote{failMovements: true}
	app := buildApp(t, r)

	_, _ = do(t, app, http.MethodPost, "/api/workflow/lookup", `{"barcode":"7891234567890"}`)
	_, _ = do(t, app, http.MethodPut, "/api/workflow/movement", `{"direction":"IN","quantity":3}`)
	resp, raw := do(t, app, http.MethodPost, "/api/workflow/submit", "")

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	view := decodeView(t, raw)
	assert.Equal(t, "failed", view.State)
	assert.Len(t, view.Attempts, 3)
	assert.Equal(t, 3, r.movementCalls)
}

func TestWorkflow_CantidadCero400SinRed(t *testing.T) {
	r := &remote{}
	app := buildApp(t, r)

	_, _ = do(t, app, http.MethodPost, "/api/workflow/lookup", `{"barcode":"7891234567890"}`)
	_, _ = do(t, app, http.MethodPut, "/api/workflow/movement", `{"direction":"IN","quantity":0}`)
	resp, raw := do(t, app, http.MethodPost, "/api/workflow/submit", "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeView(t, raw).Error.Code)
	assert.Equal(t, 0, r.movementCalls)
}

func TestWorkflow_CuerpoInvalido(t *testing.T) {
	app := buildApp(t, &remote{})
	resp, _ := do(t, app, http.MethodPost, "/api/workflow/scan", `{`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProducts_Crear201(t *testing.T) {
	app := buildApp(t, &remote{})

	resp, raw := do(t, app, http.MethodPost, "/api/products", `{"name":"Nuevo","type_id":"1","color_id":"1","sale_price":"20","cost_price":"10"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.CreateProductResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "00090101", out.Product.Barcode)
	assert.Len(t, out.Attempts, 1)
}

func TestProducts_CrearValidacion400(t *testing.T) {
	app := buildApp(t, &remote{})
	resp, raw := do(t, app, http.MethodPost, "/api/products", `{"name":"","type_id":"1","color_id":"1"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "VALIDATION", out.Code)
}

func TestLabels_SeleccionYExportBatch(t *testing.T) {
	r := &remote{}
	app := buildApp(t, r)

	resp, raw := do(t, app, http.MethodGet, "/api/labels", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sel dto.SelectionResponse
	require.NoError(t, json.Unmarshal(raw, &sel))
	assert.Equal(t, 3, sel.Total)

	resp, _ = do(t, app, http.MethodPost, "/api/labels/export?mode=batch", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "selección vacía")
	assert.Equal(t, 0, r.exportCalls)

	_, raw = do(t, app, http.MethodPost, "/api/labels/select-all", "")
	require.NoError(t, json.Unmarshal(raw, &sel))
	assert.True(t, sel.AllSelected)

	resp, raw = do(t, app, http.MethodPost, "/api/labels/export", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "etiquetas_3_produtos.pdf")
	assert.Equal(t, "%PDF-fake", string(raw))

	_, raw = do(t, app, http.MethodPost, "/api/labels/select-all", "")
	require.NoError(t, json.Unmarshal(raw, &sel))
	assert.Equal(t, 0, sel.Count)
}

func TestLabels_ToggleFueraDeCatalogo(t *testing.T) {
	app := buildApp(t, &remote{})
	_, _ = do(t, app, http.MethodGet, "/api/labels", "")
	resp, _ := do(t, app, http.MethodPost, "/api/labels/toggle/99", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLabels_Preview(t *testing.T) {
	app := buildApp(t, &remote{})
	_, _ = do(t, app, http.MethodGet, "/api/labels", "")
	_, _ = do(t, app, http.MethodPost, "/api/labels/toggle/2", "")

	resp, raw := do(t, app, http.MethodGet, "/api/labels/preview", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "%PDF-preview", string(raw))
}

func TestInventory_ReposicionYRecientes(t *testing.T) {
	app := buildApp(t, &remote{})

	resp, raw := do(t, app, http.MethodGet, "/api/inventory/replenishment-list", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Total          int                              `json:"total"`
		Replenishments []dto.ReplenishmentSuggestionDTO `json:"replenishments"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	// A y B tienen stock 0 <= mínimo 0; C 1 <= 4
	assert.Equal(t, 3, out.Total)
	assert.Equal(t, "3", out.Replenishments[0].ProductID)

	resp, _ = do(t, app, http.MethodGet, "/api/movements/recent", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLabels_ExportSingleParcial(t *testing.T) {
	r := &remote{}
	app := buildApp(t, r)
	_, _ = do(t, app, http.MethodGet, "/api/labels", "")
	_, _ = do(t, app, http.MethodPost, "/api/labels/select-all", "")

	resp, raw := do(t, app, http.MethodPost, "/api/labels/export?mode=single", "")
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	var out dto.ExportResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "single", out.Mode)
	require.Len(t, out.Documents, 2, "los documentos de 1 y 2 se conservan")
	assert.Equal(t, []string{"1"}, out.Documents[0].ProductIDs)
	assert.Equal(t, "%PDF-single", string(out.Documents[1].Content))
	require.NotNil(t, out.Error)
	assert.Equal(t, dto.CodeUpstream, out.Error.Code)
	assert.Equal(t, 3, r.labelCalls)
}

func TestCatalog_TiposYColores(t *testing.T) {
	r := &remote{}
	app := buildApp(t, r)

	resp, raw := do(t, app, http.MethodGet, "/api/types", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var types dto.RefListResponse
	require.NoError(t, json.Unmarshal(raw, &types))
	assert.Equal(t, 2, types.Total)
	assert.Equal(t, dto.RefResponse{ID: "1", Name: "Blusa", Code: "01"}, types.Items[0])
	assert.Equal(t, "Vestido", types.Items[1].Name)

	resp, raw = do(t, app, http.MethodGet, "/api/colors", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var colors dto.RefListResponse
	require.NoError(t, json.Unmarshal(raw, &colors))
	assert.Equal(t, []dto.RefResponse{{ID: "5", Name: "Azul", Code: "05"}}, colors.Items)

	r.mu.Lock()
	r.failCatalog = true
	r.mu.Unlock()
	resp, raw = do(t, app, http.MethodGet, "/api/colors", "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &errResp))
	assert.Equal(t, dto.CodeUpstream, errResp.Code)
}
