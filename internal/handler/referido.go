package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/middleware"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/service"
)

func (h *Handler) ListReferidos(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	referidos, err := h.referidoSvc.ListReferidos(c.Context(), rest.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al cargar los referidos",
		})
	}
	return c.JSON(fiber.Map{"referidos": referidos})
}

type referidoRequest struct {
	CodigoReferido    string     `json:"codigo_referido"`
	ClienteReferidoID *uuid.UUID `json:"cliente_referido_id"`
	DNIReferido       *string    `json:"dni_referido"`
	ConsumoRealizado  bool       `json:"consumo_realizado"`
}

// CreateReferido registra el uso del código de un cliente referente.
func (h *Handler) CreateReferido(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	var req referidoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cuerpo de la petición inválido",
		})
	}
	if req.CodigoReferido == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "El código de referido es obligatorio",
		})
	}

	ref := &model.Referido{
		RestauranteID:     rest.ID,
		CodigoReferido:    req.CodigoReferido,
		ClienteReferidoID: req.ClienteReferidoID,
		DNIReferido:       req.DNIReferido,
		ConsumoRealizado:  req.ConsumoRealizado,
	}
	if err := h.referidoSvc.CreateReferido(c.Context(), ref); err != nil {
		if errors.Is(err, service.ErrCodigoInvalido) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al crear el referido",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"referido": ref})
}

type consumoRequest struct {
	ConsumoRealizado bool `json:"consumo_realizado"`
}

// MarcarConsumo confirma (o revierte) el consumo de un referido. Solo los
// referidos con consumo confirmado cuentan para los umbrales de premios.
func (h *Handler) MarcarConsumo(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de referido inválido"})
	}

	req := consumoRequest{ConsumoRealizado: true}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Cuerpo de la petición inválido",
			})
		}
	}

	if err := h.referidoSvc.MarcarConsumo(c.Context(), rest.ID, id, req.ConsumoRealizado); err != nil {
		if errors.Is(err, service.ErrReferidoNoExiste) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al actualizar el referido",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}
