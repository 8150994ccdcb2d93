package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	pkgjwt "github.com/jhoicas/almacen-api/pkg/jwt"
)

const (
	localUserID   = "user_id"
	localUsername = "username"
)

// AuthMiddleware valida el bearer token del proveedor de identidad externo y
// deja el usuario en los locals del contexto. Con secret vacío la validación
// se omite (solo desarrollo) y el actor de la bitácora queda en "system".
func AuthMiddleware(secret, issuer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Next()
		}
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "falta el token de autenticación"})
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato de autorización inválido"})
		}
		claims, err := pkgjwt.Parse(tokenString, secret, issuer)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(localUserID, claims.Subject)
		c.Locals(localUsername, claims.Username)
		return c.Next()
	}
}

// GetActor devuelve el username autenticado, o cadena vacía si no hay sesión
// (el motor aplica el actor por defecto "system").
func GetActor(c *fiber.Ctx) string {
	if v, ok := c.Locals(localUsername).(string); ok {
		return v
	}
	return ""
}

// GetUserID devuelve el id del usuario autenticado (claim sub), o vacío.
func GetUserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(localUserID).(string); ok {
		return v
	}
	return ""
}
