package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/realtime"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/repository"
)

type ClienteService struct {
	repo *repository.Repository
	bus  realtime.Bus
}

func NewClienteService(repo *repository.Repository, bus realtime.Bus) *ClienteService {
	return &ClienteService{repo: repo, bus: bus}
}

func (s *ClienteService) ListClientes(ctx context.Context, restauranteID uuid.UUID) ([]model.Cliente, error) {
	return s.repo.ListClientes(ctx, restauranteID)
}

func (s *ClienteService) GetCliente(ctx context.Context, restauranteID, id uuid.UUID) (*model.Cliente, error) {
	cliente, err := s.repo.GetCliente(ctx, id)
	if err != nil {
		return nil, err
	}
	if cliente.RestauranteID != restauranteID {
		return nil, repository.ErrClienteNotFound
	}
	return cliente, nil
}

// CreateCliente da de alta un cliente ingresado por el personal. El código de
// referido se genera acá mismo, igual que en el registro público.
func (s *ClienteService) CreateCliente(ctx context.Context, cliente *model.Cliente) error {
	if cliente.CodigoReferido == "" {
		codigo, err := GenerateCodigoReferido()
		if err != nil {
			return fmt.Errorf("failed to generate codigo: %w", err)
		}
		cliente.CodigoReferido = codigo
	}
	if cliente.Estado == "" {
		cliente.Estado = model.ClienteActivo
	}
	if err := s.repo.CreateCliente(ctx, cliente); err != nil {
		return err
	}
	s.publish(ctx, cliente.RestauranteID)
	return nil
}

func (s *ClienteService) UpdateCliente(ctx context.Context, restauranteID uuid.UUID, cliente *model.Cliente) error {
	existing, err := s.GetCliente(ctx, restauranteID, cliente.ID)
	if err != nil {
		return err
	}
	// El código de referido es inmutable una vez emitido.
	cliente.CodigoReferido = existing.CodigoReferido
	if err := s.repo.UpdateCliente(ctx, cliente); err != nil {
		return err
	}
	s.publish(ctx, restauranteID)
	return nil
}

func (s *ClienteService) DeleteCliente(ctx context.Context, restauranteID, id uuid.UUID) error {
	if _, err := s.GetCliente(ctx, restauranteID, id); err != nil {
		return err
	}
	if err := s.repo.DeleteCliente(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, restauranteID)
	return nil
}

func (s *ClienteService) publish(ctx context.Context, restauranteID uuid.UUID) {
	if s.bus == nil {
		return
	}
	_ = s.bus.Publish(ctx, realtime.Event{Tabla: realtime.TablaClientes, RestauranteID: restauranteID})
}
