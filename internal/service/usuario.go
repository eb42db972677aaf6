package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/repository"
)

var ErrUsuarioNoExiste = errors.New("El usuario no existe")

type UsuarioService struct {
	repo *repository.Repository
}

func NewUsuarioService(repo *repository.Repository) *UsuarioService {
	return &UsuarioService{repo: repo}
}

func (s *UsuarioService) ListUsuarios(ctx context.Context, restauranteID uuid.UUID) ([]model.Usuario, error) {
	return s.repo.ListUsuarios(ctx, restauranteID)
}

func (s *UsuarioService) CreateUsuario(ctx context.Context, usuario *model.Usuario) error {
	if usuario.Rol == "" {
		usuario.Rol = model.RolStaff
	}
	if usuario.Estado == "" {
		usuario.Estado = "activo"
	}
	return s.repo.CreateUsuario(ctx, usuario)
}

func (s *UsuarioService) UpdateUsuario(ctx context.Context, restauranteID uuid.UUID, usuario *model.Usuario) error {
	if _, err := s.getPropio(ctx, restauranteID, usuario.ID); err != nil {
		return err
	}
	return s.repo.UpdateUsuario(ctx, usuario)
}

func (s *UsuarioService) DeleteUsuario(ctx context.Context, restauranteID, id uuid.UUID) error {
	if _, err := s.getPropio(ctx, restauranteID, id); err != nil {
		return err
	}
	return s.repo.DeleteUsuario(ctx, id)
}

func (s *UsuarioService) getPropio(ctx context.Context, restauranteID, id uuid.UUID) (*model.Usuario, error) {
	usuario, err := s.repo.GetUsuario(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUsuarioNotFound) {
			return nil, ErrUsuarioNoExiste
		}
		return nil, err
	}
	if usuario.RestauranteID != restauranteID {
		return nil, ErrUsuarioNoExiste
	}
	return usuario, nil
}
