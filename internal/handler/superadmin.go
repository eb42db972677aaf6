package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/service"
)

func (h *Handler) AdminPlatformStats(c *fiber.Ctx) error {
	stats, err := h.superadminSvc.GetPlatformStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al cargar las estadísticas",
		})
	}
	return c.JSON(fiber.Map{"stats": stats})
}

func (h *Handler) AdminListRestaurantes(c *fiber.Ctx) error {
	restaurantes, err := h.superadminSvc.ListRestaurantes(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al cargar los restaurantes",
		})
	}
	return c.JSON(fiber.Map{"restaurantes": restaurantes})
}

func (h *Handler) AdminGetRestaurante(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de restaurante inválido"})
	}

	rest, err := h.superadminSvc.GetRestaurante(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRestauranteNoExiste) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al cargar el restaurante",
		})
	}
	return c.JSON(fiber.Map{"restaurante": rest})
}

type suscripcionRequest struct {
	Estado string `json:"estado"`
}

// AdminSetSuscripcion suspende o reactiva la suscripción de un restaurante.
// Un restaurante suspendido pierde el acceso del personal pero conserva sus
// datos.
func (h *Handler) AdminSetSuscripcion(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de restaurante inválido"})
	}

	var req suscripcionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cuerpo de la petición inválido",
		})
	}

	estado := model.EstadoSuscripcion(req.Estado)
	switch estado {
	case model.SuscripcionActiva, model.SuscripcionSuspendida, model.SuscripcionVencida:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Estado de suscripción inválido",
		})
	}

	if err := h.superadminSvc.SetEstadoSuscripcion(c.Context(), id, estado); err != nil {
		if errors.Is(err, service.ErrRestauranteNoExiste) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al actualizar la suscripción",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) AdminListPlanes(c *fiber.Ctx) error {
	planes, err := h.superadminSvc.ListPlanes(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al cargar los planes",
		})
	}
	return c.JSON(fiber.Map{"planes": planes})
}

type planRequest struct {
	Nombre        string          `json:"nombre"`
	Descripcion   *string         `json:"descripcion"`
	PrecioMensual decimal.Decimal `json:"precio_mensual"`
	Moneda        string          `json:"moneda"`
	IsActive      *bool           `json:"is_active"`
}

func (h *Handler) AdminCreatePlan(c *fiber.Ctx) error {
	var req planRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cuerpo de la petición inválido",
		})
	}
	if req.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "El nombre del plan es obligatorio",
		})
	}

	plan := &model.Plan{
		Nombre:        req.Nombre,
		Descripcion:   req.Descripcion,
		PrecioMensual: req.PrecioMensual,
		Moneda:        req.Moneda,
		IsActive:      true,
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := h.superadminSvc.CreatePlan(c.Context(), plan); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al crear el plan",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"plan": plan})
}
