package model

import (
	"time"

	"github.com/google/uuid"
)

// Referido registra que el código de un cliente fue usado por otra persona.
// ConsumoRealizado lo marca el personal cuando el referido consumió de verdad;
// solo los referidos confirmados cuentan para los umbrales de premios.
type Referido struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	RestauranteID     uuid.UUID  `json:"restaurante_id" db:"restaurante_id"`
	ClienteOwnerID    uuid.UUID  `json:"cliente_owner_id" db:"cliente_owner_id"`
	CodigoReferido    string     `json:"codigo_referido" db:"codigo_referido"`
	ClienteReferidoID *uuid.UUID `json:"cliente_referido_id,omitempty" db:"cliente_referido_id"`
	DNIReferido       *string    `json:"dni_referido,omitempty" db:"dni_referido"`
	ConsumoRealizado  bool       `json:"consumo_realizado" db:"consumo_realizado"`
	FechaRegistro     *time.Time `json:"fecha_registro,omitempty" db:"fecha_registro"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
}

type ReferidoDetalle struct {
	Referido
	ClienteOwnerNombre string `json:"cliente_owner_nombre" db:"cliente_owner_nombre"`
}
