package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/middleware"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/repository"
)

func (h *Handler) ListClientes(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	clientes, err := h.clienteSvc.ListClientes(c.Context(), rest.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al cargar los clientes",
		})
	}
	return c.JSON(fiber.Map{"clientes": clientes})
}

func (h *Handler) GetCliente(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de cliente inválido"})
	}

	cliente, err := h.clienteSvc.GetCliente(c.Context(), rest.ID, id)
	if err != nil {
		if errors.Is(err, repository.ErrClienteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "El cliente no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al cargar el cliente",
		})
	}
	return c.JSON(fiber.Map{"cliente": cliente})
}

type clienteRequest struct {
	Nombre   string     `json:"nombre"`
	Telefono *string    `json:"telefono"`
	Correo   *string    `json:"correo"`
	DNI      *string    `json:"dni"`
	PremioID *uuid.UUID `json:"premio_id"`
	Estado   string     `json:"estado"`
}

func (h *Handler) CreateCliente(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	var req clienteRequest
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

	cliente := &model.Cliente{
		RestauranteID: rest.ID,
		Nombre:        req.Nombre,
		Telefono:      req.Telefono,
		Correo:        req.Correo,
		DNI:           req.DNI,
		PremioID:      req.PremioID,
		Estado:        model.EstadoCliente(req.Estado),
	}
	if err := h.clienteSvc.CreateCliente(c.Context(), cliente); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al crear el cliente",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"cliente": cliente})
}

func (h *Handler) UpdateCliente(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de cliente inválido"})
	}

	var req clienteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cuerpo de la petición inválido",
		})
	}

	cliente := &model.Cliente{
		ID:            id,
		RestauranteID: rest.ID,
		Nombre:        req.Nombre,
		Telefono:      req.Telefono,
		Correo:        req.Correo,
		DNI:           req.DNI,
		PremioID:      req.PremioID,
		Estado:        model.EstadoCliente(req.Estado),
	}
	if err := h.clienteSvc.UpdateCliente(c.Context(), rest.ID, cliente); err != nil {
		if errors.Is(err, repository.ErrClienteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "El cliente no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al actualizar el cliente",
		})
	}
	return c.JSON(fiber.Map{"cliente": cliente})
}

func (h *Handler) DeleteCliente(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de cliente inválido"})
	}

	if err := h.clienteSvc.DeleteCliente(c.Context(), rest.ID, id); err != nil {
		if errors.Is(err, repository.ErrClienteNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "El cliente no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al eliminar el cliente",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}
