package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/service"
)

// GetRestaurantePublico pinta la página pública de registro de un restaurante.
func (h *Handler) GetRestaurantePublico(c *fiber.Ctx) error {
	rest, premios, err := h.registroSvc.GetRestauranteBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, service.ErrRestauranteNoExiste) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": service.ErrRestauranteNoExiste.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al cargar el restaurante",
		})
	}

	return c.JSON(fiber.Map{
		"restaurante": fiber.Map{
			"id":        rest.ID,
			"nombre":    rest.Nombre,
			"slug":      rest.Slug,
			"direccion": rest.Direccion,
			"telefono":  rest.Telefono,
		},
		"premios": premios,
	})
}

type registroRequest struct {
	Slug     string     `json:"slug"`
	Nombre   string     `json:"nombre"`
	Telefono string     `json:"telefono"`
	DNI      *string    `json:"dni"`
	Correo   *string    `json:"correo"`
	PremioID *uuid.UUID `json:"premio_id"`
}

// Registro es el alta pública de clientes desde el enlace del restaurante.
func (h *Handler) Registro(c *fiber.Ctx) error {
	var req registroRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cuerpo de la petición inválido",
		})
	}

	cliente, err := h.registroSvc.RegistrarCliente(c.Context(), service.RegistroInput{
		Slug:     req.Slug,
		Nombre:   req.Nombre,
		Telefono: req.Telefono,
		DNI:      req.DNI,
		Correo:   req.Correo,
		PremioID: req.PremioID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDatosIncompletos):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrRestauranteNoExiste):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al registrar el cliente",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"cliente": fiber.Map{
			"id":              cliente.ID,
			"nombre":          cliente.Nombre,
			"codigo_referido": cliente.CodigoReferido,
		},
	})
}

type signupRequest struct {
	Nombre         string  `json:"nombre"`
	RUC            *string `json:"ruc"`
	Direccion      *string `json:"direccion"`
	Telefono       *string `json:"telefono"`
	Correo         *string `json:"correo"`
	CorreoContacto *string `json:"correo_contacto"`
	AdminNombre    string  `json:"admin_nombre"`
	AdminCorreo    *string `json:"admin_correo"`
}

// Signup da de alta un restaurante. El token de API se devuelve en claro una
// sola vez; después solo existe su hash.
func (h *Handler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cuerpo de la petición inválido",
		})
	}

	result, err := h.restauranteSvc.Signup(c.Context(), service.SignupInput{
		Nombre:         req.Nombre,
		RUC:            req.RUC,
		Direccion:      req.Direccion,
		Telefono:       req.Telefono,
		Correo:         req.Correo,
		CorreoContacto: req.CorreoContacto,
		AdminNombre:    req.AdminNombre,
		AdminCorreo:    req.AdminCorreo,
	})
	if err != nil {
		if errors.Is(err, service.ErrNombreVacio) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al crear el restaurante",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"restaurante": result.Restaurante,
		"admin":       result.Admin,
		"token":       result.Token,
	})
}
