package model

import (
	"time"

	"github.com/google/uuid"
)

type EstadoConversion string

const (
	ConversionPendiente  EstadoConversion = "pendiente"
	ConversionConfirmada EstadoConversion = "confirmado"
	ConversionRechazada  EstadoConversion = "rechazado"
)

// Conversion es un evento de consumo que cita el código de un referente.
type Conversion struct {
	ID               uuid.UUID        `json:"id" db:"id"`
	RestauranteID    uuid.UUID        `json:"restaurante_id" db:"restaurante_id"`
	ClienteID        uuid.UUID        `json:"cliente_id" db:"cliente_id"`
	CodigoReferente  *string          `json:"codigo_referente,omitempty" db:"codigo_referente"`
	ReferidoID       *uuid.UUID       `json:"referido_id,omitempty" db:"referido_id"`
	DNIReferido      *string          `json:"dni_referido,omitempty" db:"dni_referido"`
	Estado           EstadoConversion `json:"estado" db:"estado"`
	RegistrarConsumo bool             `json:"registrar_consumo" db:"registrar_consumo"`
	FechaConversion  time.Time        `json:"fecha_conversion" db:"fecha_conversion"`
}

type ConversionDetalle struct {
	Conversion
	ClienteNombre string `json:"cliente_nombre" db:"cliente_nombre"`
}
