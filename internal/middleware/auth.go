package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/repository"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/service"
)

const RestauranteKey = "restaurante"

// RestauranteResolver resuelve el restaurante dueño de un token de API.
type RestauranteResolver interface {
	GetRestauranteByTokenHash(ctx context.Context, tokenHash string) (*model.Restaurante, error)
}

// StaffAuth autentica al personal con el token de API del restaurante
// (Authorization: Bearer <token>) y deja el restaurante en el contexto.
func StaffAuth(resolver RestauranteResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Necesitas autenticación",
			})
		}

		rest, err := resolver.GetRestauranteByTokenHash(c.Context(), service.HashToken(token))
		if err != nil {
			if errors.Is(err, repository.ErrRestauranteNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Token inválido",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error de autenticación",
			})
		}

		if rest.EstadoSuscripcion == model.SuscripcionSuspendida {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "La suscripción del restaurante está suspendida",
			})
		}

		c.Locals(RestauranteKey, rest)
		return c.Next()
	}
}

// SuperAdmin exige el token de superadmin configurado (X-Admin-Token).
func SuperAdmin(adminToken string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if adminToken == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "El panel de superadmin no está habilitado",
			})
		}
		token := c.Get("X-Admin-Token")
		if subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Necesitas autenticación de superadmin",
			})
		}
		return c.Next()
	}
}

// GetRestaurante devuelve el restaurante autenticado del contexto.
func GetRestaurante(c *fiber.Ctx) *model.Restaurante {
	rest, ok := c.Locals(RestauranteKey).(*model.Restaurante)
	if !ok {
		return nil
	}
	return rest
}
