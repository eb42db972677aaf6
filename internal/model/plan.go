package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Plan es un plan de suscripción de la plataforma (lo administra el superadmin).
type Plan struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Nombre        string          `json:"nombre" db:"nombre"`
	Descripcion   *string         `json:"descripcion,omitempty" db:"descripcion"`
	PrecioMensual decimal.Decimal `json:"precio_mensual" db:"precio_mensual"`
	Moneda        string          `json:"moneda" db:"moneda"`
	IsActive      bool            `json:"is_active" db:"is_active"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}
