package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
)

var ErrPremioNotFound = errors.New("premio not found")

func (r *Repository) GetPremio(ctx context.Context, id uuid.UUID) (*model.Premio, error) {
	var premio model.Premio
	err := r.db.GetContext(ctx, &premio, "SELECT * FROM premios WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPremioNotFound
		}
		return nil, err
	}
	return &premio, nil
}

func (r *Repository) CreatePremio(ctx context.Context, premio *model.Premio) error {
	query := `
		INSERT INTO premios (restaurante_id, orden, descripcion, detalle_premio, tipo_premio, umbral, monto_minimo_consumo, imagen_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		premio.RestauranteID,
		premio.Orden,
		premio.Descripcion,
		premio.DetallePremio,
		premio.TipoPremio,
		premio.Umbral,
		premio.MontoMinimoConsumo,
		premio.ImagenURL,
		premio.IsActive,
	).Scan(&premio.ID, &premio.CreatedAt)
}

func (r *Repository) UpdatePremio(ctx context.Context, premio *model.Premio) error {
	query := `
		UPDATE premios
		SET orden = $2, descripcion = $3, detalle_premio = $4, tipo_premio = $5, umbral = $6, monto_minimo_consumo = $7, imagen_url = $8
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		premio.ID,
		premio.Orden,
		premio.Descripcion,
		premio.DetallePremio,
		premio.TipoPremio,
		premio.Umbral,
		premio.MontoMinimoConsumo,
		premio.ImagenURL,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPremioNotFound
	}
	return nil
}

func (r *Repository) SetPremioActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE premios SET is_active = $2 WHERE id = $1", id, activo)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPremioNotFound
	}
	return nil
}

func (r *Repository) DeletePremio(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM premios WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPremioNotFound
	}
	return nil
}

func (r *Repository) ListPremios(ctx context.Context, restauranteID uuid.UUID) ([]model.Premio, error) {
	var premios []model.Premio
	query := "SELECT * FROM premios WHERE restaurante_id = $1 ORDER BY orden, umbral"
	err := r.db.SelectContext(ctx, &premios, query, restauranteID)
	return premios, err
}

// ListPremiosActivos devuelve los premios activos ordenados por umbral
// ascendente; el orden importa para elegir el "siguiente premio por alcanzar".
func (r *Repository) ListPremiosActivos(ctx context.Context, restauranteID uuid.UUID) ([]model.Premio, error) {
	var premios []model.Premio
	query := `
		SELECT * FROM premios
		WHERE restaurante_id = $1 AND is_active = TRUE
		ORDER BY umbral`
	err := r.db.SelectContext(ctx, &premios, query, restauranteID)
	return premios, err
}

func (r *Repository) CountPremiosActivos(ctx context.Context, restauranteID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM premios WHERE restaurante_id = $1 AND is_active = TRUE", restauranteID)
	return count, err
}
