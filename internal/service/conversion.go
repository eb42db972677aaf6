package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/realtime"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/repository"
)

var ErrConversionNoExiste = errors.New("La conversión no existe")

// ConversionStore son las operaciones que necesita el registro de consumos,
// incluida la materialización del referido confirmado.
type ConversionStore interface {
	GetConversion(ctx context.Context, id uuid.UUID) (*model.Conversion, error)
	CreateConversion(ctx context.Context, conv *model.Conversion) error
	UpdateConversionEstado(ctx context.Context, id uuid.UUID, estado model.EstadoConversion) error
	ListConversiones(ctx context.Context, restauranteID uuid.UUID) ([]model.ConversionDetalle, error)
	GetClienteByCodigoReferido(ctx context.Context, restauranteID uuid.UUID, codigo string) (*model.Cliente, error)
	CreateReferido(ctx context.Context, ref *model.Referido) error
}

type ConversionService struct {
	repo ConversionStore
	bus  realtime.Bus
	log  *zap.Logger
}

func NewConversionService(repo ConversionStore, bus realtime.Bus, log *zap.Logger) *ConversionService {
	return &ConversionService{repo: repo, bus: bus, log: log}
}

func (s *ConversionService) ListConversiones(ctx context.Context, restauranteID uuid.UUID) ([]model.ConversionDetalle, error) {
	return s.repo.ListConversiones(ctx, restauranteID)
}

// CreateConversion registra un consumo que cita el código de un referente.
// Si entra ya confirmada y el código corresponde a un cliente del
// restaurante, además se materializa el referido confirmado que alimenta los
// umbrales de premios.
func (s *ConversionService) CreateConversion(ctx context.Context, conv *model.Conversion) error {
	if conv.Estado == "" {
		conv.Estado = model.ConversionPendiente
	}

	if err := s.repo.CreateConversion(ctx, conv); err != nil {
		return err
	}

	if conv.Estado == model.ConversionConfirmada && conv.CodigoReferente != nil && *conv.CodigoReferente != "" {
		if err := s.materializarReferido(ctx, conv); err != nil {
			// La conversión ya quedó registrada; el referido que no se pudo
			// crear solo queda en el log.
			s.log.Warn("no se pudo materializar el referido confirmado",
				zap.String("conversion_id", conv.ID.String()),
				zap.Error(err))
		}
	}

	s.publish(ctx, conv.RestauranteID)
	return nil
}

func (s *ConversionService) materializarReferido(ctx context.Context, conv *model.Conversion) error {
	owner, err := s.repo.GetClienteByCodigoReferido(ctx, conv.RestauranteID, *conv.CodigoReferente)
	if err != nil {
		return err
	}

	ref := &model.Referido{
		RestauranteID:     conv.RestauranteID,
		ClienteOwnerID:    owner.ID,
		CodigoReferido:    *conv.CodigoReferente,
		ClienteReferidoID: &conv.ClienteID,
		DNIReferido:       conv.DNIReferido,
		ConsumoRealizado:  true,
	}
	if err := s.repo.CreateReferido(ctx, ref); err != nil {
		return err
	}
	if s.bus != nil {
		_ = s.bus.Publish(ctx, realtime.Event{Tabla: realtime.TablaReferidos, RestauranteID: conv.RestauranteID})
	}
	return nil
}

func (s *ConversionService) UpdateEstado(ctx context.Context, restauranteID, id uuid.UUID, estado model.EstadoConversion) error {
	conv, err := s.repo.GetConversion(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrConversionNotFound) {
			return ErrConversionNoExiste
		}
		return err
	}
	if conv.RestauranteID != restauranteID {
		return ErrConversionNoExiste
	}

	if err := s.repo.UpdateConversionEstado(ctx, id, estado); err != nil {
		return err
	}

	// Confirmar una conversión pendiente también materializa el referido.
	if estado == model.ConversionConfirmada && conv.Estado != model.ConversionConfirmada &&
		conv.CodigoReferente != nil && *conv.CodigoReferente != "" {
		conv.Estado = estado
		if err := s.materializarReferido(ctx, conv); err != nil {
			s.log.Warn("no se pudo materializar el referido confirmado",
				zap.String("conversion_id", conv.ID.String()),
				zap.Error(err))
		}
	}

	s.publish(ctx, restauranteID)
	return nil
}

func (s *ConversionService) publish(ctx context.Context, restauranteID uuid.UUID) {
	if s.bus == nil {
		return
	}
	_ = s.bus.Publish(ctx, realtime.Event{Tabla: realtime.TablaConversiones, RestauranteID: restauranteID})
}
