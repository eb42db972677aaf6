package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/middleware"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/service"
)

// validacionRow es la fila que consume la pantalla de validaciones: una por
// cliente. Las filas de solo progreso llevan un id sintético y fecha nula.
type validacionRow struct {
	ID                     string                  `json:"id"`
	ClienteID              uuid.UUID               `json:"cliente_id"`
	ClienteNombre          string                  `json:"cliente_nombre"`
	Premio                 *service.PremioObjetivo `json:"premio"`
	ConversionesRealizadas int                     `json:"conversiones_realizadas"`
	Validado               bool                    `json:"validado"`
	Motivo                 *string                 `json:"motivo,omitempty"`
	FechaValidacion        *time.Time              `json:"fecha_validacion"`
	EnProgreso             bool                    `json:"en_progreso"`
}

// ListValidaciones corre un pase del reconciliador y devuelve el avance de
// premios de todos los clientes del restaurante.
func (h *Handler) ListValidaciones(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	rows, _, err := h.progressSvc.Reconcile(c.Context(), rest.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al cargar las validaciones",
		})
	}

	out := make([]validacionRow, 0, len(rows))
	for _, row := range rows {
		fila := validacionRow{
			ID:                     "placeholder-" + row.ClienteID.String(),
			ClienteID:              row.ClienteID,
			ClienteNombre:          row.ClienteNombre,
			Premio:                 row.Premio,
			ConversionesRealizadas: row.Conversiones,
			EnProgreso:             row.EnProgreso(),
		}
		if row.Validacion != nil {
			fecha := row.Validacion.FechaValidacion
			fila.ID = row.Validacion.ID.String()
			fila.Validado = row.Validacion.Validado
			fila.Motivo = row.Validacion.Motivo
			fila.FechaValidacion = &fecha
		}
		out = append(out, fila)
	}

	return c.JSON(fiber.Map{"validaciones": out})
}

// AprobarValidacion marca el premio como entregado.
func (h *Handler) AprobarValidacion(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "ID de validación inválido",
		})
	}

	if err := h.progressSvc.Aprobar(c.Context(), rest.ID, id); err != nil {
		if errors.Is(err, service.ErrValidacionNoExiste) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al aprobar la validación",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// RechazarValidacion elimina la fila. Si el cliente sigue sobre el umbral, el
// siguiente pase del reconciliador la vuelve a crear como pendiente.
func (h *Handler) RechazarValidacion(c *fiber.Ctx) error {
	rest := middleware.GetRestaurante(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "ID de validación inválido",
		})
	}

	if err := h.progressSvc.Rechazar(c.Context(), rest.ID, id); err != nil {
		if errors.Is(err, service.ErrValidacionNoExiste) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error al rechazar la validación",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
