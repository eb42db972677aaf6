package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/middleware"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/service"
)

func (h *Handler) ListConversiones(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	conversiones, err := h.conversionSvc.ListConversiones(c.Context(), rest.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al cargar las conversiones",
		})
	}
	return c.JSON(fiber.Map{"conversiones": conversiones})
}

type conversionRequest struct {
	ClienteID        uuid.UUID  `json:"cliente_id"`
	CodigoReferente  *string    `json:"codigo_referente"`
	ReferidoID       *uuid.UUID `json:"referido_id"`
	DNIReferido      *string    `json:"dni_referido"`
	Estado           string     `json:"estado"`
	RegistrarConsumo bool       `json:"registrar_consumo"`
}

func (h *Handler) CreateConversion(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	var req conversionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cuerpo de la petición inválido",
		})
	}
	if req.ClienteID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "El cliente es obligatorio",
		})
	}

	conv := &model.Conversion{
		RestauranteID:    rest.ID,
		ClienteID:        req.ClienteID,
		CodigoReferente:  req.CodigoReferente,
		ReferidoID:       req.ReferidoID,
		DNIReferido:      req.DNIReferido,
		Estado:           model.EstadoConversion(req.Estado),
		RegistrarConsumo: req.RegistrarConsumo,
	}
	if err := h.conversionSvc.CreateConversion(c.Context(), conv); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al registrar la conversión",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"conversion": conv})
}

type conversionEstadoRequest struct {
	Estado string `json:"estado"`
}

// UpdateConversionEstado confirma o rechaza una conversión pendiente.
func (h *Handler) UpdateConversionEstado(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de conversión inválido"})
	}

	var req conversionEstadoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cuerpo de la petición inválido",
		})
	}

	estado := model.EstadoConversion(req.Estado)
	switch estado {
	case model.ConversionPendiente, model.ConversionConfirmada, model.ConversionRechazada:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Estado de conversión inválido",
		})
	}

	if err := h.conversionSvc.UpdateEstado(c.Context(), rest.ID, id, estado); err != nil {
		if errors.Is(err, service.ErrConversionNoExiste) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al actualizar la conversión",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}
