// Package workflow coordina el flujo escanear, resolver, proyectar y registrar
// un movimiento de stock. Es el único estado que la UI consulta.
package workflow

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-scanner/internal/application/commit"
	"github.com/jhoicas/Inventario-scanner/internal/application/dto"
	appinventory "github.com/jhoicas/Inventario-scanner/internal/application/inventory"
	"github.com/jhoicas/Inventario-scanner/internal/domain"
	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
	"github.com/jhoicas/Inventario-scanner/internal/domain/inventory"
	"github.com/jhoicas/Inventario-scanner/internal/domain/scan"
)

// State estado visible del flujo.
type State string

const (
	StateIdle       State = "idle"
	StateResolving  State = "resolving"
	StateResolved   State = "resolved"
	StateNotFound   State = "not-found"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailed     State = "failed"
)

// Resolver resuelve un código de barras a producto.
type Resolver interface {
	Resolve(ctx context.Context, barcode string) (*entity.Product, error)
}

// Committer registra un movimiento con reintentos acotados.
type Committer interface {
	Commit(ctx context.Context, req entity.MovementRequest) (commit.Result[*entity.Movement], error)
}

// MovementWorkflow contexto explícito del flujo de movimiento.
// Un escaneo o envío nuevo invalida el resultado del anterior (contador de generación);
// la llamada en curso no se aborta, su resultado simplemente se descarta.
// El mutex nunca se mantiene durante llamadas de red.
type MovementWorkflow struct {
	debouncer *scan.Debouncer
	resolver  Resolver
	committer Committer
	log       zerolog.Logger

	mu        sync.Mutex
	gen       uint64
	state     State
	barcode   string
	product   *entity.Product
	direction entity.Direction
	quantity  int
	note      string
	movement  *entity.Movement
	attempts  []commit.Attempt
	err       error
}

// NewMovementWorkflow construye el flujo en estado idle.
func NewMovementWorkflow(debouncer *scan.Debouncer, resolver Resolver, committer Committer, log zerolog.Logger) *MovementWorkflow {
	return &MovementWorkflow{
		debouncer: debouncer,
		resolver:  resolver,
		committer: committer,
		log:       log.With().Str("component", "workflow").Logger(),
		state:     StateIdle,
		direction: entity.DirectionIN,
	}
}

// HandleScan aplica el antirrebote y, si la lectura pasa, resuelve el producto.
// Una lectura suprimida devuelve la vista actual marcada como Suppressed.
func (w *MovementWorkflow) HandleScan(ctx context.Context, ev entity.ScanEvent) (dto.WorkflowResponse, error) {
	code, ok := w.debouncer.OnScan(ev)
	if !ok {
		w.log.Debug().Str("code", ev.Code).Str("symbology", string(ev.Symbology)).Msg("lectura suprimida")
		view := w.View()
		view.Suppressed = true
		return view, nil
	}
	return w.Lookup(ctx, code)
}

// Listen consume lecturas de un canal (lector tipo teclado) con el mismo antirrebote
// que HandleScan y resuelve cada código emitido. Termina al cerrarse events (nil)
// o al cancelarse ctx.
func (w *MovementWorkflow) Listen(ctx context.Context, events <-chan entity.ScanEvent) error {
	codes := make(chan string)
	done := make(chan error, 1)
	go func() {
		done <- w.debouncer.Run(ctx, events, codes)
		close(codes)
	}()
	for code := range codes {
		if _, err := w.Lookup(ctx, code); err != nil {
			w.log.Warn().Err(err).Str("barcode", code).Msg("lectura sin resolver")
		}
	}
	return <-done
}

// Lookup resuelve code (escaneado o ingresado a mano) y deja el flujo en
// resolved, not-found o failed.
func (w *MovementWorkflow) Lookup(ctx context.Context, code string) (dto.WorkflowResponse, error) {
	code = appinventory.NormalizeBarcode(code)
	if code == "" {
		return w.View(), domain.NewValidationError("barcode", "es requerido")
	}

	w.mu.Lock()
	w.gen++
	gen := w.gen
	w.clearLocked()
	w.state = StateResolving
	w.barcode = code
	w.mu.Unlock()

	product, err := w.resolver.Resolve(ctx, code)

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.gen {
		w.log.Debug().Str("barcode", code).Msg("resultado de búsqueda obsoleto descartado")
		return w.viewLocked(), nil
	}
	switch {
	case err == nil:
		w.state = StateResolved
		w.product = product
	case errors.Is(err, domain.ErrNotFound):
		w.state = StateNotFound
		w.err = err
	default:
		w.state = StateFailed
		w.err = err
	}
	return w.viewLocked(), err
}

// SetMovement fija dirección, cantidad y nota sobre el producto resuelto.
// Se permite tras un éxito o fallo para registrar otro movimiento del mismo producto.
// Con un envío en curso, el cambio lo reemplaza: su resultado se descarta.
func (w *MovementWorkflow) SetMovement(direction entity.Direction, quantity int, note string) (dto.WorkflowResponse, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.product == nil {
		return w.viewLocked(), domain.NewValidationError("product", "escanee un producto antes de indicar el movimiento")
	}
	direction = entity.Direction(strings.ToUpper(strings.TrimSpace(string(direction))))
	if !direction.Valid() {
		return w.viewLocked(), domain.NewValidationError("direction", "debe ser IN, OUT o ADJUST")
	}
	if w.state == StateSubmitting {
		w.gen++
		w.log.Warn().Str("product_id", w.product.ID).Msg("movimiento modificado con un envío en curso; su resultado se descartará")
	}
	w.direction = direction
	w.quantity = quantity
	w.note = strings.TrimSpace(note)
	w.state = StateResolved
	w.movement = nil
	w.attempts = nil
	w.err = nil
	return w.viewLocked(), nil
}

// Submit registra el movimiento actual. La validación local falla sin tocar la red
// y sin cambiar de estado. Un envío nuevo reemplaza al que esté en curso: la llamada
// anterior no se aborta pero su resultado se descarta.
func (w *MovementWorkflow) Submit(ctx context.Context) (dto.WorkflowResponse, error) {
	w.mu.Lock()
	if w.product == nil {
		view := w.viewLocked()
		w.mu.Unlock()
		return view, domain.NewValidationError("product", "no hay un producto listo para registrar")
	}
	req := entity.MovementRequest{
		ProductID: w.product.ID,
		Barcode:   w.product.Barcode,
		Direction: w.direction,
		Quantity:  w.quantity,
		Note:      w.note,
	}
	if err := appinventory.ValidateMovement(req); err != nil {
		w.err = err
		view := w.viewLocked()
		w.mu.Unlock()
		return view, err
	}
	if w.state == StateSubmitting {
		w.log.Warn().Str("product_id", req.ProductID).Msg("envío reemplazado por uno nuevo")
	}
	w.gen++
	gen := w.gen
	w.state = StateSubmitting
	w.err = nil
	w.attempts = nil
	w.mu.Unlock()

	res, err := w.committer.Commit(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.gen {
		w.log.Debug().Str("product_id", req.ProductID).Msg("resultado de envío obsoleto descartado")
		return w.viewLocked(), nil
	}
	w.attempts = res.Attempts
	if err != nil {
		w.state = StateFailed
		w.err = err
		return w.viewLocked(), err
	}
	w.state = StateSuccess
	w.movement = res.Value
	w.log.Info().
		Str("product_id", req.ProductID).
		Str("direction", string(req.Direction)).
		Int("quantity", req.Quantity).
		Int("attempts", len(res.Attempts)).
		Msg("movimiento registrado")
	return w.viewLocked(), nil
}

// Reset vuelve a idle y reabre el lector.
func (w *MovementWorkflow) Reset() dto.WorkflowResponse {
	w.debouncer.Reset()
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gen++
	w.clearLocked()
	return w.viewLocked()
}

// View estado actual para la UI.
func (w *MovementWorkflow) View() dto.WorkflowResponse {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.viewLocked()
}

// State estado actual.
func (w *MovementWorkflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *MovementWorkflow) clearLocked() {
	w.state = StateIdle
	w.barcode = ""
	w.product = nil
	w.direction = entity.DirectionIN
	w.quantity = 0
	w.note = ""
	w.movement = nil
	w.attempts = nil
	w.err = nil
}

func (w *MovementWorkflow) viewLocked() dto.WorkflowResponse {
	view := dto.WorkflowResponse{
		State:     string(w.state),
		Barcode:   w.barcode,
		Direction: string(w.direction),
		Quantity:  w.quantity,
		Note:      w.note,
	}
	if w.product != nil {
		p := dto.ToProductResponse(w.product)
		view.Product = &p
		if w.quantity > 0 {
			preview := inventory.Preview(*w.product, w.direction, w.quantity)
			view.Preview = &preview
		}
	}
	if w.movement != nil {
		m := dto.ToMovementResponse(w.movement)
		view.Movement = &m
	}
	if len(w.attempts) > 0 {
		view.Attempts = dto.ToAttemptDTOs(w.attempts)
	}
	if w.err != nil {
		e := dto.ErrorResponseFrom(w.err)
		view.Error = &e
	}
	return view
}
