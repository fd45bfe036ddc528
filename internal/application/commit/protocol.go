// Package commit implementa el envío con reintentos acotados usado al crear
// registros en el servicio de inventario (alta de producto y movimientos).
package commit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Sleeper espera d o hasta que ctx termine.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext Sleeper real basado en time.Timer.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Result resultado de una secuencia de commit.
type Result[T any] struct {
	Value          T
	Attempts       []Attempt
	IdempotencyKey string
}

// Protocol ejecuta secuencias de commit con la misma política.
type Protocol struct {
	policy Policy
	sleep  Sleeper
	newKey func() string
	log    zerolog.Logger
}

// Option configura el Protocol.
type Option func(*Protocol)

// WithSleeper reemplaza la espera entre intentos (tests).
func WithSleeper(s Sleeper) Option {
	return func(p *Protocol) { p.sleep = s }
}

// WithKeyGenerator reemplaza el generador de claves de idempotencia.
func WithKeyGenerator(fn func() string) Option {
	return func(p *Protocol) { p.newKey = fn }
}

// NewProtocol construye el protocolo.
func NewProtocol(policy Policy, log zerolog.Logger, opts ...Option) *Protocol {
	p := &Protocol{
		policy: policy.normalized(),
		sleep:  SleepContext,
		newKey: func() string { return uuid.New().String() },
		log:    log.With().Str("component", "commit").Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Policy política efectiva.
func (p *Protocol) Policy() Policy { return p.policy }

// Submit envía fn hasta MaxAttempts veces con espera fija entre fallos.
// Cada intento recibe el mismo payload (el cierre de fn) y la misma clave de
// idempotencia en ctx. Si se agotan los intentos devuelve la última causa tal cual.
func Submit[T any](ctx context.Context, p *Protocol, op string, fn func(ctx context.Context) (T, error)) (Result[T], error) {
	key := p.newKey()
	ctx = WithIdempotencyKey(ctx, key)
	m := NewMachine(p.policy)
	res := Result[T]{IdempotencyKey: key}

	for {
		ordinal, err := m.Begin()
		if err != nil {
			res.Attempts = m.Attempts()
			return res, m.LastErr()
		}
		p.log.Debug().
			Str("op", op).
			Int("attempt", ordinal).
			Int("max_attempts", p.policy.MaxAttempts).
			Str("idempotency_key", key).
			Msg("intento de envío")

		value, err := fn(ctx)
		step := m.Record(err)

		switch step.Phase {
		case PhaseSucceeded:
			res.Value = value
			res.Attempts = m.Attempts()
			if ordinal > 1 {
				p.log.Info().Str("op", op).Int("attempt", ordinal).Msg("envío completado tras reintento")
			}
			return res, nil
		case PhaseFailed:
			res.Attempts = m.Attempts()
			p.log.Error().Err(err).
				Str("op", op).
				Int("attempts", len(res.Attempts)).
				Msg("envío fallido, sin más intentos")
			return res, err
		}

		p.log.Warn().Err(err).
			Str("op", op).
			Int("attempt", ordinal).
			Dur("backoff", step.Wait).
			Msg("intento fallido, reintentando")

		if serr := p.sleep(ctx, step.Wait); serr != nil {
			m.Abort()
			res.Attempts = m.Attempts()
			p.log.Warn().Err(serr).Str("op", op).Msg("espera interrumpida, secuencia cancelada")
			return res, err
		}
	}
}

type idempotencyKeyCtx struct{}

// WithIdempotencyKey adjunta la clave de la secuencia al contexto.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKeyCtx{}, key)
}

// IdempotencyKeyFrom recupera la clave adjunta por Submit.
func IdempotencyKeyFrom(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(idempotencyKeyCtx{}).(string)
	return key, ok && key != ""
}
