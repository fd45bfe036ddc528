// Package inventoryapi adaptador HTTP hacia el servicio remoto de inventario.
// Implementa los puertos de productos, catálogos, movimientos y etiquetas.
package inventoryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-scanner/internal/application/commit"
	"github.com/jhoicas/Inventario-scanner/internal/domain"
	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
	"github.com/jhoicas/Inventario-scanner/internal/domain/repository"
)

// Verificar en tiempo de compilación que Client implementa los puertos.
var (
	_ repository.ProductRepository           = (*Client)(nil)
	_ repository.InventoryMovementRepository = (*Client)(nil)
	_ repository.LabelRepository             = (*Client)(nil)
	_ repository.CatalogRepository           = (*Client)(nil)
)

const (
	// DefaultTimeout timeout por solicitud; generoso porque la generación de PDF es lenta.
	DefaultTimeout = 120 * time.Second

	maxJSONBody     = 1 << 20
	maxDocumentBody = 32 << 20
	maxErrorDetail  = 300

	headerIdempotencyKey = "Idempotency-Key"
	headerRequestID      = "X-Request-ID"
)

var movementPaths = map[entity.Direction]string{
	entity.DirectionIN:     "/movements/in",
	entity.DirectionOUT:    "/movements/out",
	entity.DirectionADJUST: "/movements/adjust",
}

// Client cliente del servicio de inventario.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
	requestID  func() string
}

// Option configura el Client.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (tests o transportes personalizados).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient construye el cliente. timeout <= 0 usa DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With().Str("component", "inventoryapi").Logger(),
		requestID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Productos ────────────────────────────────────────────────────────────────

// GetByBarcode busca un producto por código de barras. 404 => domain.ErrNotFound.
func (c *Client) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	var out productWire
	path := "/products/barcode/" + url.PathEscape(barcode)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &out, true); err != nil {
		return nil, err
	}
	return out.toEntity(), nil
}

// GetByID obtiene un producto por ID. 404 => domain.ErrNotFound.
func (c *Client) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out productWire
	if err := c.doJSON(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, nil, &out, true); err != nil {
		return nil, err
	}
	return out.toEntity(), nil
}

// List lista productos con filtros opcionales.
func (c *Client) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	q := url.Values{}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.TypeID != "" {
		q.Set("type_id", filter.TypeID)
	}
	if filter.ColorID != "" {
		q.Set("color_id", filter.ColorID)
	}
	if filter.LowStockOnly {
		q.Set("low_stock", "true")
	}
	var out productListWire
	if err := c.doJSON(ctx, http.MethodGet, "/products", q, nil, &out, false); err != nil {
		return nil, err
	}
	products := make([]*entity.Product, 0, len(out))
	for _, w := range out {
		products = append(products, w.toEntity())
	}
	return products, nil
}

// ListTypes lista los tipos de producto activos.
func (c *Client) ListTypes(ctx context.Context) ([]entity.Ref, error) {
	return c.listRefs(ctx, "/types")
}

// ListColors lista los colores activos.
func (c *Client) ListColors(ctx context.Context) ([]entity.Ref, error) {
	return c.listRefs(ctx, "/colors")
}

func (c *Client) listRefs(ctx context.Context, path string) ([]entity.Ref, error) {
	var out refListWire
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &out, false); err != nil {
		return nil, err
	}
	return out.activeRefs(), nil
}

// Create da de alta un producto; el servicio genera el código de barras.
func (c *Client) Create(ctx context.Context, in entity.NewProduct) (*entity.Product, error) {
	var out productWire
	if err := c.doJSON(ctx, http.MethodPost, "/products", nil, newProductWireFrom(in), &out, false); err != nil {
		return nil, err
	}
	return out.toEntity(), nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

// Register envía un movimiento al endpoint de su dirección.
func (c *Client) Register(ctx context.Context, req entity.MovementRequest) (*entity.Movement, error) {
	path, ok := movementPaths[req.Direction]
	if !ok {
		return nil, domain.NewValidationError("direction", "debe ser IN, OUT o ADJUST")
	}
	body := movementRequestWire{
		ProductID: flexID(req.ProductID),
		Barcode:   req.Barcode,
		Quantity:  req.Quantity,
		Notes:     req.Note,
	}
	var out movementWire
	if err := c.doJSON(ctx, http.MethodPost, path, nil, body, &out, false); err != nil {
		return nil, err
	}
	return out.toEntity(req.Direction), nil
}

// Recent movimientos de las últimas hours horas.
func (c *Client) Recent(ctx context.Context, hours int) ([]*entity.Movement, error) {
	q := url.Values{"hours": []string{strconv.Itoa(hours)}}
	var out []movementWire
	if err := c.doJSON(ctx, http.MethodGet, "/movements/recent", q, nil, &out, false); err != nil {
		return nil, err
	}
	movements := make([]*entity.Movement, 0, len(out))
	for _, w := range out {
		movements = append(movements, w.toEntity(""))
	}
	return movements, nil
}

// ── Etiquetas ────────────────────────────────────────────────────────────────

// ExportBatch genera un único documento con las etiquetas de productIDs.
func (c *Client) ExportBatch(ctx context.Context, productIDs []string) (*repository.Document, error) {
	ids := make([]flexID, 0, len(productIDs))
	for _, id := range productIDs {
		ids = append(ids, flexID(id))
	}
	return c.doDocument(ctx, http.MethodPost, "/products/export-batch", exportBatchWire{ProductIDs: ids}, "etiquetas.pdf")
}

// Label genera la etiqueta de un producto.
func (c *Client) Label(ctx context.Context, productID string) (*repository.Document, error) {
	path := "/products/" + url.PathEscape(productID) + "/label"
	return c.doDocument(ctx, http.MethodGet, path, nil, "etiqueta_"+productID+".pdf")
}

// ── Transporte ───────────────────────────────────────────────────────────────

// doJSON ejecuta la solicitud y decodifica la respuesta en out.
// notFoundIsDomain convierte 404 en domain.ErrNotFound (búsquedas puntuales).
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any, notFoundIsDomain bool) error {
	op := method + " " + path
	resp, err := c.send(ctx, method, path, query, body, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxJSONBody))
	if err != nil {
		return &domain.TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("leer respuesta: %w", err)}
	}
	if err := c.statusError(op, resp.StatusCode, raw, notFoundIsDomain); err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("deserializar respuesta: %w", err)}
	}
	return nil
}

func (c *Client) doDocument(ctx context.Context, method, path string, body any, fallbackName string) (*repository.Document, error) {
	op := method + " " + path
	resp, err := c.send(ctx, method, path, nil, body, "*/*")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBody))
	if err != nil {
		return nil, &domain.TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("leer documento: %w", err)}
	}
	if err := c.statusError(op, resp.StatusCode, raw, false); err != nil {
		return nil, err
	}
	return &repository.Document{
		Filename:    filenameFrom(resp.Header.Get("Content-Disposition"), fallbackName),
		ContentType: resp.Header.Get("Content-Type"),
		Content:     raw,
	}, nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any, accept string) (*http.Response, error) {
	op := method + " " + path
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("inventoryapi: serializar request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("inventoryapi: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", accept)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := c.requestID()
	req.Header.Set(headerRequestID, requestID)
	if key, ok := commit.IdempotencyKeyFrom(ctx); ok {
		req.Header.Set(headerIdempotencyKey, key)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("timeout o cancelación: %w", ctx.Err())
		}
		c.log.Warn().Err(err).Str("op", op).Str("request_id", requestID).Msg("llamada HTTP fallida")
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	c.log.Debug().
		Str("op", op).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("respuesta del servicio")
	return resp, nil
}

func (c *Client) statusError(op string, status int, raw []byte, notFoundIsDomain bool) error {
	if status >= 200 && status < 300 {
		return nil
	}
	if status == http.StatusNotFound && notFoundIsDomain {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	detail := strings.TrimSpace(string(raw))
	var ew errorWire
	if err := json.Unmarshal(raw, &ew); err == nil {
		if msg := ew.message(); msg != "" {
			detail = msg
		}
	}
	var cause error
	if detail != "" {
		cause = errors.New(truncateDetail(detail, maxErrorDetail))
	}
	return &domain.TransportError{Op: op, StatusCode: status, Err: cause}
}

// truncateDetail corta a lo sumo max bytes sin partir un carácter multibyte.
func truncateDetail(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func filenameFrom(disposition, fallback string) string {
	if disposition == "" {
		return fallback
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil || params["filename"] == "" {
		return fallback
	}
	return params["filename"]
}
