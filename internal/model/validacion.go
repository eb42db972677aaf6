package model

import (
	"time"

	"github.com/google/uuid"
)

// Validacion registra que un cliente alcanzó el umbral de un premio.
// La crea el reconciliador una sola vez por par (cliente, premio);
// ConversionesRealizadas es una foto del conteo al momento de crearla.
type Validacion struct {
	ID                     uuid.UUID `json:"id" db:"id"`
	ClienteID              uuid.UUID `json:"cliente_id" db:"cliente_id"`
	PremioID               uuid.UUID `json:"premio_id" db:"premio_id"`
	ConversionesRealizadas int       `json:"conversiones_realizadas" db:"conversiones_realizadas"`
	Validado               bool      `json:"validado" db:"validado"`
	Motivo                 *string   `json:"motivo,omitempty" db:"motivo"`
	FechaValidacion        time.Time `json:"fecha_validacion" db:"fecha_validacion"`
}

// ValidacionDetalle es la validación junto con los campos de presentación
// del cliente y del premio. ClienteRestauranteID viene del join y permite
// re-filtrar por restaurante aunque la consulta no venga acotada.
type ValidacionDetalle struct {
	Validacion
	ClienteNombre        string    `json:"cliente_nombre" db:"cliente_nombre"`
	ClienteRestauranteID uuid.UUID `json:"-" db:"cliente_restaurante_id"`
	PremioDescripcion    string    `json:"premio_descripcion" db:"premio_descripcion"`
	PremioUmbral         int       `json:"premio_umbral" db:"premio_umbral"`
	PremioDetalle        *string   `json:"premio_detalle,omitempty" db:"premio_detalle"`
}
