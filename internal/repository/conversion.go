package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
)

var ErrConversionNotFound = errors.New("conversion not found")

func (r *Repository) GetConversion(ctx context.Context, id uuid.UUID) (*model.Conversion, error) {
	var conv model.Conversion
	err := r.db.GetContext(ctx, &conv, "SELECT * FROM conversiones WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConversionNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *Repository) CreateConversion(ctx context.Context, conv *model.Conversion) error {
	query := `
		INSERT INTO conversiones (restaurante_id, cliente_id, codigo_referente, referido_id, dni_referido, estado, registrar_consumo)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, fecha_conversion`

	return r.db.QueryRowContext(ctx, query,
		conv.RestauranteID,
		conv.ClienteID,
		conv.CodigoReferente,
		conv.ReferidoID,
		conv.DNIReferido,
		conv.Estado,
		conv.RegistrarConsumo,
	).Scan(&conv.ID, &conv.FechaConversion)
}

func (r *Repository) UpdateConversionEstado(ctx context.Context, id uuid.UUID, estado model.EstadoConversion) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE conversiones SET estado = $2 WHERE id = $1", id, estado)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConversionNotFound
	}
	return nil
}

func (r *Repository) ListConversiones(ctx context.Context, restauranteID uuid.UUID) ([]model.ConversionDetalle, error) {
	var convs []model.ConversionDetalle
	query := `
		SELECT cv.*, c.nombre AS cliente_nombre
		FROM conversiones cv
		INNER JOIN clientes c ON c.id = cv.cliente_id
		WHERE cv.restaurante_id = $1
		ORDER BY cv.fecha_conversion DESC`
	err := r.db.SelectContext(ctx, &convs, query, restauranteID)
	return convs, err
}

func (r *Repository) CountConversiones(ctx context.Context, restauranteID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM conversiones WHERE restaurante_id = $1", restauranteID)
	return count, err
}
