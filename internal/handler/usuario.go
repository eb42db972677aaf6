package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/middleware"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/service"
)

func (h *Handler) ListUsuarios(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	usuarios, err := h.usuarioSvc.ListUsuarios(c.Context(), rest.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al cargar los usuarios",
		})
	}
	return c.JSON(fiber.Map{"usuarios": usuarios})
}

type usuarioRequest struct {
	Nombre   string  `json:"nombre"`
	Correo   *string `json:"correo"`
	Telefono *string `json:"telefono"`
	Rol      string  `json:"rol"`
	Estado   string  `json:"estado"`
}

func (h *Handler) CreateUsuario(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	var req usuarioRequest
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

	usuario := &model.Usuario{
		RestauranteID: rest.ID,
		Nombre:        req.Nombre,
		Correo:        req.Correo,
		Telefono:      req.Telefono,
		Rol:           model.RolUsuario(req.Rol),
		Estado:        req.Estado,
	}
	if err := h.usuarioSvc.CreateUsuario(c.Context(), usuario); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al crear el usuario",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"usuario": usuario})
}

func (h *Handler) UpdateUsuario(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuario inválido"})
	}

	var req usuarioRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cuerpo de la petición inválido",
		})
	}

	usuario := &model.Usuario{
		ID:            id,
		RestauranteID: rest.ID,
		Nombre:        req.Nombre,
		Correo:        req.Correo,
		Telefono:      req.Telefono,
		Rol:           model.RolUsuario(req.Rol),
		Estado:        req.Estado,
	}
	if err := h.usuarioSvc.UpdateUsuario(c.Context(), rest.ID, usuario); err != nil {
		if errors.Is(err, service.ErrUsuarioNoExiste) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al actualizar el usuario",
		})
	}
	return c.JSON(fiber.Map{"usuario": usuario})
}

func (h *Handler) DeleteUsuario(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de usuario inválido"})
	}

	if err := h.usuarioSvc.DeleteUsuario(c.Context(), rest.ID, id); err != nil {
		if errors.Is(err, service.ErrUsuarioNoExiste) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al eliminar el usuario",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}
