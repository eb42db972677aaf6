package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TipoPremio string

const (
	// PremioReferente premia al cliente que refiere; su umbral cuenta
	// referidos confirmados.
	PremioReferente TipoPremio = "referente"
	// PremioReferido premia a la persona referida en su primer consumo.
	PremioReferido TipoPremio = "referido"
)

type Premio struct {
	ID                 uuid.UUID        `json:"id" db:"id"`
	RestauranteID      uuid.UUID        `json:"restaurante_id" db:"restaurante_id"`
	Orden              int              `json:"orden" db:"orden"`
	Descripcion        string           `json:"descripcion" db:"descripcion"`
	DetallePremio      *string          `json:"detalle_premio,omitempty" db:"detalle_premio"`
	TipoPremio         TipoPremio       `json:"tipo_premio" db:"tipo_premio"`
	Umbral             int              `json:"umbral" db:"umbral"`
	MontoMinimoConsumo *decimal.Decimal `json:"monto_minimo_consumo,omitempty" db:"monto_minimo_consumo"`
	ImagenURL          *string          `json:"imagen_url,omitempty" db:"imagen_url"`
	IsActive           bool             `json:"is_active" db:"is_active"`
	CreatedAt          time.Time        `json:"created_at" db:"created_at"`
}
