package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
)

var ErrClienteNotFound = errors.New("cliente not found")

func (r *Repository) GetCliente(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var cliente model.Cliente
	err := r.db.GetContext(ctx, &cliente, "SELECT * FROM clientes WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClienteNotFound
		}
		return nil, err
	}
	return &cliente, nil
}

func (r *Repository) GetClienteByCodigoReferido(ctx context.Context, restauranteID uuid.UUID, codigo string) (*model.Cliente, error) {
	var cliente model.Cliente
	query := "SELECT * FROM clientes WHERE restaurante_id = $1 AND codigo_referido = $2"
	err := r.db.GetContext(ctx, &cliente, query, restauranteID, codigo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClienteNotFound
		}
		return nil, err
	}
	return &cliente, nil
}

func (r *Repository) CreateCliente(ctx context.Context, cliente *model.Cliente) error {
	query := `
		INSERT INTO clientes (restaurante_id, nombre, telefono, correo, dni, codigo_referido, premio_id, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, fecha_registro`

	return r.db.QueryRowContext(ctx, query,
		cliente.RestauranteID,
		cliente.Nombre,
		cliente.Telefono,
		cliente.Correo,
		cliente.DNI,
		cliente.CodigoReferido,
		cliente.PremioID,
		cliente.Estado,
	).Scan(&cliente.ID, &cliente.FechaRegistro)
}

func (r *Repository) UpdateCliente(ctx context.Context, cliente *model.Cliente) error {
	query := `
		UPDATE clientes
		SET nombre = $2, telefono = $3, correo = $4, dni = $5, estado = $6
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		cliente.ID,
		cliente.Nombre,
		cliente.Telefono,
		cliente.Correo,
		cliente.DNI,
		cliente.Estado,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrClienteNotFound
	}
	return nil
}

func (r *Repository) DeleteCliente(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM clientes WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrClienteNotFound
	}
	return nil
}

func (r *Repository) ListClientes(ctx context.Context, restauranteID uuid.UUID) ([]model.Cliente, error) {
	var clientes []model.Cliente
	query := "SELECT * FROM clientes WHERE restaurante_id = $1 ORDER BY fecha_registro DESC"
	err := r.db.SelectContext(ctx, &clientes, query, restauranteID)
	return clientes, err
}

// ListClientesResumen devuelve id, nombre y restaurante de cada cliente,
// en orden estable de registro. Es la lectura que usa el reconciliador.
func (r *Repository) ListClientesResumen(ctx context.Context, restauranteID uuid.UUID) ([]model.ClienteResumen, error) {
	var clientes []model.ClienteResumen
	query := `
		SELECT id, nombre, restaurante_id FROM clientes
		WHERE restaurante_id = $1
		ORDER BY fecha_registro, id`
	err := r.db.SelectContext(ctx, &clientes, query, restauranteID)
	return clientes, err
}

func (r *Repository) CountClientes(ctx context.Context, restauranteID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM clientes WHERE restaurante_id = $1", restauranteID)
	return count, err
}
