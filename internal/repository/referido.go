package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
)

var ErrReferidoNotFound = errors.New("referido not found")

func (r *Repository) GetReferido(ctx context.Context, id uuid.UUID) (*model.Referido, error) {
	var ref model.Referido
	err := r.db.GetContext(ctx, &ref, "SELECT * FROM referidos WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReferidoNotFound
		}
		return nil, err
	}
	return &ref, nil
}

func (r *Repository) CreateReferido(ctx context.Context, ref *model.Referido) error {
	query := `
		INSERT INTO referidos (restaurante_id, cliente_owner_id, codigo_referido, cliente_referido_id, dni_referido, consumo_realizado, fecha_registro)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		ref.RestauranteID,
		ref.ClienteOwnerID,
		ref.CodigoReferido,
		ref.ClienteReferidoID,
		ref.DNIReferido,
		ref.ConsumoRealizado,
		ref.FechaRegistro,
	).Scan(&ref.ID, &ref.CreatedAt)
}

func (r *Repository) UpdateReferidoConsumo(ctx context.Context, id uuid.UUID, realizado bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE referidos SET consumo_realizado = $2 WHERE id = $1", id, realizado)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReferidoNotFound
	}
	return nil
}

func (r *Repository) ListReferidos(ctx context.Context, restauranteID uuid.UUID) ([]model.ReferidoDetalle, error) {
	var refs []model.ReferidoDetalle
	query := `
		SELECT r.*, c.nombre AS cliente_owner_nombre
		FROM referidos r
		INNER JOIN clientes c ON c.id = r.cliente_owner_id
		WHERE r.restaurante_id = $1
		ORDER BY r.created_at DESC`
	err := r.db.SelectContext(ctx, &refs, query, restauranteID)
	return refs, err
}

// ListReferidosConfirmados devuelve los referidos del restaurante con consumo
// confirmado; de aquí salen los conteos por cliente del reconciliador.
func (r *Repository) ListReferidosConfirmados(ctx context.Context, restauranteID uuid.UUID) ([]model.Referido, error) {
	var refs []model.Referido
	query := `
		SELECT * FROM referidos
		WHERE restaurante_id = $1 AND consumo_realizado = TRUE`
	err := r.db.SelectContext(ctx, &refs, query, restauranteID)
	return refs, err
}

func (r *Repository) CountReferidos(ctx context.Context, restauranteID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM referidos WHERE restaurante_id = $1", restauranteID)
	return count, err
}
