package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// StatusFor mapea un error de dominio a código HTTP. El núcleo no conoce
// HTTP: la traducción vive solo en esta capa.
func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindPreconditionFailed, domain.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func codeFor(err error) string {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return "VALIDATION"
	case domain.KindNotFound:
		return "NOT_FOUND"
	case domain.KindPreconditionFailed:
		return "PRECONDITION_FAILED"
	case domain.KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL"
	}
}

// respondError serializa un error como ErrorResponse con el estado correcto.
func respondError(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		// No filtrar detalles de infraestructura al cliente.
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: codeFor(err), Message: msg})
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}
