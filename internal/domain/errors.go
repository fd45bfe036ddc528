package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrValidation     = errors.New("entrada inválida")
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrTransport      = errors.New("fallo de comunicación con el servicio de inventario")
	ErrEmptySelection = errors.New("seleccione al menos un producto")
)

// ValidationError describe una entrada local inválida. Nunca se reintenta.
type ValidationError struct {
	Field  string
	Reason string
	Err    error // causa concreta opcional (p. ej. ErrEmptySelection)
}

// NewValidationError construye el error para un campo concreto.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

// Is permite errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func (e *ValidationError) Unwrap() error { return e.Err }

// TransportError agrupa timeouts, fallos de conexión y respuestas no 2xx del servicio remoto.
// StatusCode es 0 cuando no hubo respuesta HTTP.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: HTTP %d: %v", e.Op, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": " + ErrTransport.Error()
	}
}

// Is permite errors.Is(err, ErrTransport).
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

func (e *TransportError) Unwrap() error { return e.Err }

// IsRetryable indica si el protocolo de commit puede reintentar ante err.
// Solo las validaciones locales son definitivas.
func IsRetryable(err error) bool {
	return err != nil && !errors.Is(err, ErrValidation)
}
