package dto

import (
	"errors"

	"github.com/jhoicas/Inventario-scanner/internal/application/commit"
	"github.com/jhoicas/Inventario-scanner/internal/domain"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AttemptDTO un intento de la secuencia de commit.
type AttemptDTO struct {
	Ordinal int    `json:"ordinal"`
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
}

// ToAttemptDTOs mapea los intentos de una secuencia de commit.
func ToAttemptDTOs(attempts []commit.Attempt) []AttemptDTO {
	out := make([]AttemptDTO, 0, len(attempts))
	for _, a := range attempts {
		d := AttemptDTO{Ordinal: a.Ordinal, Outcome: a.Outcome.String()}
		if a.Err != nil {
			d.Error = a.Err.Error()
		}
		out = append(out, d)
	}
	return out
}

// Códigos de error expuestos por la API local.
const (
	CodeValidation = "VALIDATION"
	CodeNotFound   = "NOT_FOUND"
	CodeUpstream   = "UPSTREAM"
	CodeInternal   = "INTERNAL"
)

// ErrorResponseFrom clasifica err según la taxonomía de dominio.
func ErrorResponseFrom(err error) ErrorResponse {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return ErrorResponse{Code: CodeValidation, Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return ErrorResponse{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, domain.ErrTransport):
		return ErrorResponse{Code: CodeUpstream, Message: "la operación no se completó: " + err.Error()}
	default:
		return ErrorResponse{Code: CodeInternal, Message: err.Error()}
	}
}
