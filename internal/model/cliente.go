package model

import (
	"time"

	"github.com/google/uuid"
)

type EstadoCliente string

const (
	ClienteActivo   EstadoCliente = "activo"
	ClienteInactivo EstadoCliente = "inactivo"
)

type Cliente struct {
	ID             uuid.UUID     `json:"id" db:"id"`
	RestauranteID  uuid.UUID     `json:"restaurante_id" db:"restaurante_id"`
	Nombre         string        `json:"nombre" db:"nombre"`
	Telefono       *string       `json:"telefono,omitempty" db:"telefono"`
	Correo         *string       `json:"correo,omitempty" db:"correo"`
	DNI            *string       `json:"dni,omitempty" db:"dni"`
	CodigoReferido string        `json:"codigo_referido" db:"codigo_referido"`
	PremioID       *uuid.UUID    `json:"premio_id,omitempty" db:"premio_id"`
	Estado         EstadoCliente `json:"estado" db:"estado"`
	FechaRegistro  time.Time     `json:"fecha_registro" db:"fecha_registro"`
}

// ClienteResumen son los campos que consume el reconciliador de premios.
type ClienteResumen struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Nombre        string    `json:"nombre" db:"nombre"`
	RestauranteID uuid.UUID `json:"restaurante_id" db:"restaurante_id"`
}
