package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/middleware"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/service"
)

func (h *Handler) ListPremios(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	premios, err := h.premioSvc.ListPremios(c.Context(), rest.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al cargar los premios",
		})
	}
	return c.JSON(fiber.Map{"premios": premios})
}

type premioRequest struct {
	Orden              int              `json:"orden"`
	Descripcion        string           `json:"descripcion"`
	DetallePremio      *string          `json:"detalle_premio"`
	TipoPremio         string           `json:"tipo_premio"`
	Umbral             int              `json:"umbral"`
	MontoMinimoConsumo *decimal.Decimal `json:"monto_minimo_consumo"`
	ImagenURL          *string          `json:"imagen_url"`
	IsActive           *bool            `json:"is_active"`
}

func (h *Handler) CreatePremio(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	var req premioRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cuerpo de la petición inválido",
		})
	}

	premio := &model.Premio{
		RestauranteID:      rest.ID,
		Orden:              req.Orden,
		Descripcion:        req.Descripcion,
		DetallePremio:      req.DetallePremio,
		TipoPremio:         model.TipoPremio(req.TipoPremio),
		Umbral:             req.Umbral,
		MontoMinimoConsumo: req.MontoMinimoConsumo,
		ImagenURL:          req.ImagenURL,
		IsActive:           true,
	}
	if req.IsActive != nil {
		premio.IsActive = *req.IsActive
	}

	if err := h.premioSvc.CreatePremio(c.Context(), premio); err != nil {
		switch {
		case errors.Is(err, service.ErrDescripcionVacia), errors.Is(err, service.ErrUmbralInvalido):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al crear el premio",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"premio": premio})
}

func (h *Handler) UpdatePremio(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de premio inválido"})
	}

	var req premioRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cuerpo de la petición inválido",
		})
	}

	premio := &model.Premio{
		ID:                 id,
		RestauranteID:      rest.ID,
		Orden:              req.Orden,
		Descripcion:        req.Descripcion,
		DetallePremio:      req.DetallePremio,
		TipoPremio:         model.TipoPremio(req.TipoPremio),
		Umbral:             req.Umbral,
		MontoMinimoConsumo: req.MontoMinimoConsumo,
		ImagenURL:          req.ImagenURL,
		IsActive:           true,
	}
	if req.IsActive != nil {
		premio.IsActive = *req.IsActive
	}

	if err := h.premioSvc.UpdatePremio(c.Context(), rest.ID, premio); err != nil {
		switch {
		case errors.Is(err, service.ErrDescripcionVacia), errors.Is(err, service.ErrUmbralInvalido):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrPremioNoExiste):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al actualizar el premio",
		})
	}
	return c.JSON(fiber.Map{"premio": premio})
}

// TogglePremio activa o desactiva un premio del programa.
func (h *Handler) TogglePremio(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de premio inválido"})
	}

	activo, err := h.premioSvc.ToggleActivo(c.Context(), rest.ID, id)
	if err != nil {
		if errors.Is(err, service.ErrPremioNoExiste) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al actualizar el premio",
		})
	}
	return c.JSON(fiber.Map{"is_active": activo})
}

func (h *Handler) DeletePremio(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID de premio inválido"})
	}

	if err := h.premioSvc.DeletePremio(c.Context(), rest.ID, id); err != nil {
		if errors.Is(err, service.ErrPremioNoExiste) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al eliminar el premio",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}
