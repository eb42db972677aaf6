package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
)

var ErrUsuarioNotFound = errors.New("usuario not found")

func (r *Repository) GetUsuario(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var usuario model.Usuario
	err := r.db.GetContext(ctx, &usuario, "SELECT * FROM usuarios WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUsuarioNotFound
		}
		return nil, err
	}
	return &usuario, nil
}

func (r *Repository) CreateUsuario(ctx context.Context, usuario *model.Usuario) error {
	query := `
		INSERT INTO usuarios (restaurante_id, nombre, correo, telefono, rol, estado)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		usuario.RestauranteID,
		usuario.Nombre,
		usuario.Correo,
		usuario.Telefono,
		usuario.Rol,
		usuario.Estado,
	).Scan(&usuario.ID, &usuario.CreatedAt)
}

func (r *Repository) UpdateUsuario(ctx context.Context, usuario *model.Usuario) error {
	query := `
		UPDATE usuarios
		SET nombre = $2, correo = $3, telefono = $4, rol = $5, estado = $6
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		usuario.ID,
		usuario.Nombre,
		usuario.Correo,
		usuario.Telefono,
		usuario.Rol,
		usuario.Estado,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUsuarioNotFound
	}
	return nil
}

func (r *Repository) DeleteUsuario(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM usuarios WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUsuarioNotFound
	}
	return nil
}

func (r *Repository) ListUsuarios(ctx context.Context, restauranteID uuid.UUID) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	query := "SELECT * FROM usuarios WHERE restaurante_id = $1 ORDER BY created_at DESC"
	err := r.db.SelectContext(ctx, &usuarios, query, restauranteID)
	return usuarios, err
}
