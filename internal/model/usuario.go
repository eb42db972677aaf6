package model

import (
	"time"

	"github.com/google/uuid"
)

type RolUsuario string

const (
	RolAdmin RolUsuario = "admin"
	RolStaff RolUsuario = "staff"
)

// Usuario es un miembro del personal del restaurante.
type Usuario struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	RestauranteID uuid.UUID  `json:"restaurante_id" db:"restaurante_id"`
	Nombre        string     `json:"nombre" db:"nombre"`
	Correo        *string    `json:"correo,omitempty" db:"correo"`
	Telefono      *string    `json:"telefono,omitempty" db:"telefono"`
	Rol           RolUsuario `json:"rol" db:"rol"`
	Estado        string     `json:"estado" db:"estado"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}
