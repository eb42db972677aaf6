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
	ErrCodigoInvalido   = errors.New("El código de referido no existe")
	ErrReferidoNoExiste = errors.New("El referido no existe")
)

type ReferidoService struct {
	repo *repository.Repository
	bus  realtime.Bus
}

func NewReferidoService(repo *repository.Repository, bus realtime.Bus) *ReferidoService {
	return &ReferidoService{repo: repo, bus: bus}
}

func (s *ReferidoService) ListReferidos(ctx context.Context, restauranteID uuid.UUID) ([]model.ReferidoDetalle, error) {
	return s.repo.ListReferidos(ctx, restauranteID)
}

// CreateReferido registra que el código de un cliente fue usado. El código
// debe pertenecer a un cliente del mismo restaurante.
func (s *ReferidoService) CreateReferido(ctx context.Context, ref *model.Referido) error {
	owner, err := s.repo.GetClienteByCodigoReferido(ctx, ref.RestauranteID, ref.CodigoReferido)
	if err != nil {
		if errors.Is(err, repository.ErrClienteNotFound) {
			return ErrCodigoInvalido
		}
		return err
	}
	ref.ClienteOwnerID = owner.ID

	if err := s.repo.CreateReferido(ctx, ref); err != nil {
		return err
	}
	s.publish(ctx, ref.RestauranteID)
	return nil
}

// MarcarConsumo marca que el referido consumió de verdad. A partir de ahí el
// referido cuenta para los umbrales de premios del referente.
func (s *ReferidoService) MarcarConsumo(ctx context.Context, restauranteID, id uuid.UUID, realizado bool) error {
	ref, err := s.repo.GetReferido(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReferidoNotFound) {
			return ErrReferidoNoExiste
		}
		return err
	}
	if ref.RestauranteID != restauranteID {
		return ErrReferidoNoExiste
	}

	if err := s.repo.UpdateReferidoConsumo(ctx, id, realizado); err != nil {
		return err
	}
	s.publish(ctx, restauranteID)
	return nil
}

func (s *ReferidoService) publish(ctx context.Context, restauranteID uuid.UUID) {
	if s.bus == nil {
		return
	}
	_ = s.bus.Publish(ctx, realtime.Event{Tabla: realtime.TablaReferidos, RestauranteID: restauranteID})
}
