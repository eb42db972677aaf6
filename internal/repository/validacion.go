package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
)

var ErrValidacionNotFound = errors.New("validacion not found")

const validacionDetalleSelect = `
	SELECT v.*,
		c.nombre AS cliente_nombre,
		c.restaurante_id AS cliente_restaurante_id,
		p.descripcion AS premio_descripcion,
		p.umbral AS premio_umbral,
		p.detalle_premio AS premio_detalle
	FROM validaciones v
	INNER JOIN clientes c ON c.id = v.cliente_id
	INNER JOIN premios p ON p.id = v.premio_id`

// ListValidacionesDetalle devuelve todas las validaciones con los campos de
// presentación del cliente y del premio. La consulta no acota por restaurante;
// el reconciliador re-filtra por cliente_restaurante_id.
func (r *Repository) ListValidacionesDetalle(ctx context.Context) ([]model.ValidacionDetalle, error) {
	var vals []model.ValidacionDetalle
	query := validacionDetalleSelect + `
	ORDER BY v.fecha_validacion DESC`
	err := r.db.SelectContext(ctx, &vals, query)
	return vals, err
}

// InsertValidaciones inserta el lote en una sola transacción: o entran todas
// o la operación falla completa y el pase se repite en la siguiente corrida.
func (r *Repository) InsertValidaciones(ctx context.Context, nuevas []model.Validacion) ([]model.ValidacionDetalle, error) {
	if len(nuevas) == 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	ids := make([]uuid.UUID, 0, len(nuevas))
	query := `
		INSERT INTO validaciones (cliente_id, premio_id, conversiones_realizadas, validado)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	for i := range nuevas {
		var id uuid.UUID
		if err := tx.QueryRowContext(ctx, query,
			nuevas[i].ClienteID,
			nuevas[i].PremioID,
			nuevas[i].ConversionesRealizadas,
			nuevas[i].Validado,
		).Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to insert validacion: %w", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	inserted, err := r.listValidacionesDetalleByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return inserted, nil
}

func (r *Repository) listValidacionesDetalleByIDs(ctx context.Context, ids []uuid.UUID) ([]model.ValidacionDetalle, error) {
	var vals []model.ValidacionDetalle
	query := validacionDetalleSelect + `
	WHERE v.id = ANY($1)
	ORDER BY v.fecha_validacion DESC`
	err := r.db.SelectContext(ctx, &vals, query, ids)
	return vals, err
}

// AprobarValidacion marca el premio como entregado.
func (r *Repository) AprobarValidacion(ctx context.Context, id uuid.UUID, motivo string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE validaciones SET validado = TRUE, motivo = $2 WHERE id = $1", id, motivo)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrValidacionNotFound
	}
	return nil
}

// DeleteValidacion elimina la fila. Si la condición de umbral sigue vigente,
// el reconciliador la vuelve a generar en el siguiente pase.
func (r *Repository) DeleteValidacion(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM validaciones WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrValidacionNotFound
	}
	return nil
}
