package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/realtime"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/repository"
)

var (
	ErrPremioNoExiste   = errors.New("El premio no existe")
	ErrUmbralInvalido   = errors.New("El umbral debe ser mayor que cero")
	ErrDescripcionVacia = errors.New("La descripción es obligatoria")
)

type PremioService struct {
	repo *repository.Repository
	bus  realtime.Bus
}

func NewPremioService(repo *repository.Repository, bus realtime.Bus) *PremioService {
	return &PremioService{repo: repo, bus: bus}
}

func (s *PremioService) ListPremios(ctx context.Context, restauranteID uuid.UUID) ([]model.Premio, error) {
	return s.repo.ListPremios(ctx, restauranteID)
}

func (s *PremioService) ListPremiosActivos(ctx context.Context, restauranteID uuid.UUID) ([]model.Premio, error) {
	return s.repo.ListPremiosActivos(ctx, restauranteID)
}

func (s *PremioService) CreatePremio(ctx context.Context, premio *model.Premio) error {
	if err := validarPremio(premio); err != nil {
		return err
	}
	if premio.TipoPremio == "" {
		premio.TipoPremio = model.PremioReferente
	}
	if err := s.repo.CreatePremio(ctx, premio); err != nil {
		return err
	}
	s.publish(ctx, premio.RestauranteID)
	return nil
}

func (s *PremioService) UpdatePremio(ctx context.Context, restauranteID uuid.UUID, premio *model.Premio) error {
	if err := validarPremio(premio); err != nil {
		return err
	}
	if _, err := s.getPropio(ctx, restauranteID, premio.ID); err != nil {
		return err
	}
	if err := s.repo.UpdatePremio(ctx, premio); err != nil {
		return err
	}
	s.publish(ctx, restauranteID)
	return nil
}

// ToggleActivo activa o desactiva el premio. Un premio desactivado deja de
// contar para el reconciliador pero conserva sus validaciones ya creadas.
func (s *PremioService) ToggleActivo(ctx context.Context, restauranteID, id uuid.UUID) (bool, error) {
	premio, err := s.getPropio(ctx, restauranteID, id)
	if err != nil {
		return false, err
	}
	nuevo := !premio.IsActive
	if err := s.repo.SetPremioActivo(ctx, id, nuevo); err != nil {
		return false, err
	}
	s.publish(ctx, restauranteID)
	return nuevo, nil
}

func (s *PremioService) DeletePremio(ctx context.Context, restauranteID, id uuid.UUID) error {
	if _, err := s.getPropio(ctx, restauranteID, id); err != nil {
		return err
	}
	if err := s.repo.DeletePremio(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, restauranteID)
	return nil
}

func (s *PremioService) getPropio(ctx context.Context, restauranteID, id uuid.UUID) (*model.Premio, error) {
	premio, err := s.repo.GetPremio(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPremioNotFound) {
			return nil, ErrPremioNoExiste
		}
		return nil, err
	}
	if premio.RestauranteID != restauranteID {
		return nil, ErrPremioNoExiste
	}
	return premio, nil
}

func validarPremio(premio *model.Premio) error {
	if premio.Descripcion == "" {
		return ErrDescripcionVacia
	}
	if premio.Umbral <= 0 {
		return ErrUmbralInvalido
	}
	return nil
}

func (s *PremioService) publish(ctx context.Context, restauranteID uuid.UUID) {
	if s.bus == nil {
		return
	}
	_ = s.bus.Publish(ctx, realtime.Event{Tabla: realtime.TablaPremios, RestauranteID: restauranteID})
}
