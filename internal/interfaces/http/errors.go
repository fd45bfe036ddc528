package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-scanner/internal/application/dto"
)

// statusFor código HTTP para cada código de error de la API.
func statusFor(code string) int {
	switch code {
	case dto.CodeValidation:
		return fiber.StatusBadRequest
	case dto.CodeNotFound:
		return fiber.StatusNotFound
	case dto.CodeUpstream:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError responde con dto.ErrorResponse según la taxonomía de dominio.
func writeError(c *fiber.Ctx, err error) error {
	resp := dto.ErrorResponseFrom(err)
	return c.Status(statusFor(resp.Code)).JSON(resp)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
