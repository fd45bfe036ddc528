// Package scan filtra el flujo crudo de lecturas de la cámara.
//
// Los decodificadores disparan varias veces por cada lectura física; el
// Debouncer deja pasar la primera y descarta el resto durante el periodo de
// enfriamiento:
//
//	Open --scan--> Locked --cooldown--> Open
//
// Las lecturas descartadas no se encolan.
package scan

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
)

// DefaultCooldown periodo de bloqueo tras emitir un código.
const DefaultCooldown = 2000 * time.Millisecond

// State estado del debouncer.
type State int

const (
	StateOpen State = iota
	StateLocked
)

func (s State) String() string {
	if s == StateLocked {
		return "locked"
	}
	return "open"
}

// Debouncer máquina de estados Open/Locked. Segura para uso concurrente.
type Debouncer struct {
	mu       sync.Mutex
	cooldown time.Duration
	now      func() time.Time
	locked   bool
	lockedAt time.Time
}

// Option configura el Debouncer.
type Option func(*Debouncer)

// WithClock reemplaza el reloj usado cuando el evento no trae marca de tiempo.
func WithClock(now func() time.Time) Option {
	return func(d *Debouncer) { d.now = now }
}

// NewDebouncer construye el debouncer en estado Open. cooldown <= 0 usa DefaultCooldown.
func NewDebouncer(cooldown time.Duration, opts ...Option) *Debouncer {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	d := &Debouncer{cooldown: cooldown, now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// OnScan decide si la lectura se emite. Devuelve el código normalizado y true
// si se emitió; "" y false si se descartó. Códigos vacíos o simbologías no
// habilitadas se descartan sin bloquear.
func (d *Debouncer) OnScan(ev entity.ScanEvent) (string, bool) {
	code := strings.TrimSpace(ev.Code)
	if code == "" || !ev.Symbology.Supported() {
		return "", false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	at := ev.At
	if at.IsZero() {
		at = d.now()
	}
	if d.locked && at.Sub(d.lockedAt) < d.cooldown {
		return "", false
	}
	d.locked = true
	d.lockedAt = at
	return code, true
}

// State estado actual según el reloj del debouncer.
func (d *Debouncer) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.locked && d.now().Sub(d.lockedAt) < d.cooldown {
		return StateLocked
	}
	return StateOpen
}

// Reset vuelve a Open de inmediato (p. ej. al cerrar el escáner).
func (d *Debouncer) Reset() {
	d.mu.Lock()
	d.locked = false
	d.lockedAt = time.Time{}
	d.mu.Unlock()
}

// Run consume eventos de in y publica en out los códigos emitidos.
// Termina cuando in se cierra (nil) o cuando ctx se cancela (ctx.Err()).
func (d *Debouncer) Run(ctx context.Context, in <-chan entity.ScanEvent, out chan<- string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-in:
			if !ok {
				return nil
			}
			code, emitted := d.OnScan(ev)
			if !emitted {
				continue
			}
			select {
			case out <- code:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
