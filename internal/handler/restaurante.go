package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/middleware"
)

// GetPerfil devuelve el restaurante autenticado tal como quedó en el
// middleware, sin ir de nuevo a la base.
func (h *Handler) GetPerfil(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"restaurante": middleware.GetRestaurante(c)})
}

type perfilRequest struct {
	Nombre         string  `json:"nombre"`
	RUC            *string `json:"ruc"`
	Direccion      *string `json:"direccion"`
	Telefono       *string `json:"telefono"`
	Correo         *string `json:"correo"`
	CorreoContacto *string `json:"correo_contacto"`
}

// UpdatePerfil actualiza los datos de contacto del restaurante. El slug y el
// token no se tocan por acá.
func (h *Handler) UpdatePerfil(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	var req perfilRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cuerpo de la petición inválido",
		})
	}
	if req.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "El nombre es obligatorio",
		})
	}

	actualizado := *rest
	actualizado.Nombre = req.Nombre
	actualizado.RUC = req.RUC
	actualizado.Direccion = req.Direccion
	actualizado.Telefono = req.Telefono
	actualizado.Correo = req.Correo
	actualizado.CorreoContacto = req.CorreoContacto

	if err := h.restauranteSvc.UpdateRestaurante(c.Context(), &actualizado); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al actualizar el restaurante",
		})
	}
	return c.JSON(fiber.Map{"restaurante": actualizado})
}

// GetStats arma los contadores del dashboard.
func (h *Handler) GetStats(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	stats, err := h.restauranteSvc.GetStats(c.Context(), rest.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al cargar las estadísticas",
		})
	}
	return c.JSON(fiber.Map{"stats": stats})
}
