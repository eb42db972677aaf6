package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
)

var ErrRestauranteNotFound = errors.New("restaurante not found")

func (r *Repository) GetRestaurante(ctx context.Context, id uuid.UUID) (*model.Restaurante, error) {
	var rest model.Restaurante
	err := r.db.GetContext(ctx, &rest, "SELECT * FROM restaurantes WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRestauranteNotFound
		}
		return nil, err
	}
	return &rest, nil
}

func (r *Repository) GetRestauranteBySlug(ctx context.Context, slug string) (*model.Restaurante, error) {
	var rest model.Restaurante
	err := r.db.GetContext(ctx, &rest, "SELECT * FROM restaurantes WHERE slug = $1", slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRestauranteNotFound
		}
		return nil, err
	}
	return &rest, nil
}

func (r *Repository) GetRestauranteByTokenHash(ctx context.Context, tokenHash string) (*model.Restaurante, error) {
	var rest model.Restaurante
	err := r.db.GetContext(ctx, &rest, "SELECT * FROM restaurantes WHERE token_hash = $1", tokenHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRestauranteNotFound
		}
		return nil, err
	}
	return &rest, nil
}

func (r *Repository) CreateRestaurante(ctx context.Context, rest *model.Restaurante) error {
	query := `
		INSERT INTO restaurantes (nombre, slug, ruc, direccion, telefono, correo, correo_contacto, plan_actual, estado_suscripcion, fecha_inicio, token_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		rest.Nombre,
		rest.Slug,
		rest.RUC,
		rest.Direccion,
		rest.Telefono,
		rest.Correo,
		rest.CorreoContacto,
		rest.PlanActual,
		rest.EstadoSuscripcion,
		rest.FechaInicio,
		rest.TokenHash,
	).Scan(&rest.ID, &rest.CreatedAt)
}

func (r *Repository) UpdateRestaurante(ctx context.Context, rest *model.Restaurante) error {
	query := `
		UPDATE restaurantes
		SET nombre = $2, ruc = $3, direccion = $4, telefono = $5, correo = $6, correo_contacto = $7
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		rest.ID,
		rest.Nombre,
		rest.RUC,
		rest.Direccion,
		rest.Telefono,
		rest.Correo,
		rest.CorreoContacto,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRestauranteNotFound
	}
	return nil
}

func (r *Repository) UpdateEstadoSuscripcion(ctx context.Context, id uuid.UUID, estado model.EstadoSuscripcion) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE restaurantes SET estado_suscripcion = $2 WHERE id = $1", id, estado)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRestauranteNotFound
	}
	return nil
}

func (r *Repository) SetRestauranteChatID(ctx context.Context, id uuid.UUID, chatID int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE restaurantes SET telegram_chat_id = $2 WHERE id = $1", id, chatID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRestauranteNotFound
	}
	return nil
}

func (r *Repository) ListRestaurantes(ctx context.Context) ([]model.Restaurante, error) {
	var rests []model.Restaurante
	err := r.db.SelectContext(ctx, &rests, "SELECT * FROM restaurantes ORDER BY created_at DESC")
	return rests, err
}

// ListRestaurantesResumen devuelve cada restaurante con sus totales, para el
// panel de superadmin.
func (r *Repository) ListRestaurantesResumen(ctx context.Context) ([]model.RestauranteResumen, error) {
	var rests []model.RestauranteResumen
	query := `
		SELECT r.*,
			(SELECT COUNT(*) FROM clientes c WHERE c.restaurante_id = r.id) AS total_clientes,
			(SELECT COUNT(*) FROM conversiones cv WHERE cv.restaurante_id = r.id) AS total_conversiones,
			(SELECT COUNT(*) FROM premios p WHERE p.restaurante_id = r.id) AS total_premios
		FROM restaurantes r
		ORDER BY r.created_at DESC`
	err := r.db.SelectContext(ctx, &rests, query)
	return rests, err
}

func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM restaurantes WHERE slug = $1)", slug)
	return exists, err
}
