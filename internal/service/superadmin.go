package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/repository"
)

type SuperAdminService struct {
	repo *repository.Repository
}

func NewSuperAdminService(repo *repository.Repository) *SuperAdminService {
	return &SuperAdminService{repo: repo}
}

func (s *SuperAdminService) GetPlatformStats(ctx context.Context) (*model.PlatformStats, error) {
	return s.repo.GetPlatformStats(ctx)
}

// ListRestaurantes devuelve todos los restaurantes con sus totales de
// clientes, conversiones y premios.
func (s *SuperAdminService) ListRestaurantes(ctx context.Context) ([]model.RestauranteResumen, error) {
	return s.repo.ListRestaurantesResumen(ctx)
}

func (s *SuperAdminService) GetRestaurante(ctx context.Context, id uuid.UUID) (*model.Restaurante, error) {
	rest, err := s.repo.GetRestaurante(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRestauranteNotFound) {
			return nil, ErrRestauranteNoExiste
		}
		return nil, err
	}
	return rest, nil
}

// SetEstadoSuscripcion suspende o reactiva un restaurante.
func (s *SuperAdminService) SetEstadoSuscripcion(ctx context.Context, id uuid.UUID, estado model.EstadoSuscripcion) error {
	if err := s.repo.UpdateEstadoSuscripcion(ctx, id, estado); err != nil {
		if errors.Is(err, repository.ErrRestauranteNotFound) {
			return ErrRestauranteNoExiste
		}
		return err
	}
	return nil
}

func (s *SuperAdminService) ListPlanes(ctx context.Context) ([]model.Plan, error) {
	return s.repo.ListPlanes(ctx)
}

func (s *SuperAdminService) CreatePlan(ctx context.Context, plan *model.Plan) error {
	if plan.Moneda == "" {
		plan.Moneda = "PEN"
	}
	return s.repo.CreatePlan(ctx, plan)
}
