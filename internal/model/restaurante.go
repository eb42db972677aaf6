package model

import (
	"time"

	"github.com/google/uuid"
)

type EstadoSuscripcion string

const (
	SuscripcionActiva     EstadoSuscripcion = "activa"
	SuscripcionSuspendida EstadoSuscripcion = "suspendida"
	SuscripcionVencida    EstadoSuscripcion = "vencida"
)

type Restaurante struct {
	ID                uuid.UUID         `json:"id" db:"id"`
	Nombre            string            `json:"nombre" db:"nombre"`
	Slug              string            `json:"slug" db:"slug"`
	RUC               *string           `json:"ruc,omitempty" db:"ruc"`
	Direccion         *string           `json:"direccion,omitempty" db:"direccion"`
	Telefono          *string           `json:"telefono,omitempty" db:"telefono"`
	Correo            *string           `json:"correo,omitempty" db:"correo"`
	CorreoContacto    *string           `json:"correo_contacto,omitempty" db:"correo_contacto"`
	PlanActual        *string           `json:"plan_actual,omitempty" db:"plan_actual"`
	EstadoSuscripcion EstadoSuscripcion `json:"estado_suscripcion" db:"estado_suscripcion"`
	FechaInicio       *time.Time        `json:"fecha_inicio,omitempty" db:"fecha_inicio"`
	FechaFin          *time.Time        `json:"fecha_fin,omitempty" db:"fecha_fin"`
	TelegramChatID    *int64            `json:"-" db:"telegram_chat_id"`
	TokenHash         string            `json:"-" db:"token_hash"`
	CreatedAt         time.Time         `json:"created_at" db:"created_at"`
}

// RestauranteResumen es la vista del panel de superadmin: el restaurante
// junto con sus totales.
type RestauranteResumen struct {
	Restaurante
	TotalClientes     int `json:"total_clientes" db:"total_clientes"`
	TotalConversiones int `json:"total_conversiones" db:"total_conversiones"`
	TotalPremios      int `json:"total_premios" db:"total_premios"`
}

// PlatformStats son los totales de toda la plataforma.
type PlatformStats struct {
	TotalRestaurantes int `json:"total_restaurantes" db:"total_restaurantes"`
	TotalClientes     int `json:"total_clientes" db:"total_clientes"`
	TotalConversiones int `json:"total_conversiones" db:"total_conversiones"`
	TotalValidaciones int `json:"total_validaciones" db:"total_validaciones"`
}

// RestauranteStats son los contadores del dashboard de un restaurante.
type RestauranteStats struct {
	TotalClientes     int `json:"total_clientes"`
	TotalReferidos    int `json:"total_referidos"`
	TotalConversiones int `json:"total_conversiones"`
	PremiosActivos    int `json:"premios_activos"`
}
