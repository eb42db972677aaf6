package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/notify"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/realtime"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/repository"
)

var (
	ErrRestauranteNoExiste = errors.New("Restaurante no encontrado")
	ErrDatosIncompletos    = errors.New("Faltan datos requeridos: nombre y teléfono son obligatorios")
)

// RegistroStore son las operaciones que necesita el alta pública de clientes.
type RegistroStore interface {
	GetRestauranteBySlug(ctx context.Context, slug string) (*model.Restaurante, error)
	ListPremiosActivos(ctx context.Context, restauranteID uuid.UUID) ([]model.Premio, error)
	CreateCliente(ctx context.Context, cliente *model.Cliente) error
}

type RegistroService struct {
	store    RegistroStore
	notifier notify.Notifier
	bus      realtime.Bus
	log      *zap.Logger
}

func NewRegistroService(store RegistroStore, notifier notify.Notifier, bus realtime.Bus, log *zap.Logger) *RegistroService {
	return &RegistroService{store: store, notifier: notifier, bus: bus, log: log}
}

type RegistroInput struct {
	Slug     string
	Nombre   string
	Telefono string
	DNI      *string
	Correo   *string
	PremioID *uuid.UUID
}

// GetRestauranteBySlug resuelve el perfil público de un restaurante y sus
// premios activos, para pintar la página de registro.
func (s *RegistroService) GetRestauranteBySlug(ctx context.Context, slug string) (*model.Restaurante, []model.Premio, error) {
	rest, err := s.store.GetRestauranteBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrRestauranteNotFound) {
			return nil, nil, ErrRestauranteNoExiste
		}
		return nil, nil, err
	}
	premios, err := s.store.ListPremiosActivos(ctx, rest.ID)
	if err != nil {
		return nil, nil, err
	}
	return rest, premios, nil
}

// RegistrarCliente resuelve el slug, genera un código de referido único, crea
// el cliente y le envía el código por WhatsApp. El envío es al mejor esfuerzo:
// si falla solo queda en el log, nunca tumba el registro.
func (s *RegistroService) RegistrarCliente(ctx context.Context, in RegistroInput) (*model.Cliente, error) {
	if in.Slug == "" || in.Nombre == "" || in.Telefono == "" {
		return nil, ErrDatosIncompletos
	}

	rest, err := s.store.GetRestauranteBySlug(ctx, in.Slug)
	if err != nil {
		if errors.Is(err, repository.ErrRestauranteNotFound) {
			return nil, ErrRestauranteNoExiste
		}
		return nil, err
	}

	codigo, err := GenerateCodigoReferido()
	if err != nil {
		return nil, fmt.Errorf("failed to generate codigo: %w", err)
	}

	cliente := &model.Cliente{
		RestauranteID:  rest.ID,
		Nombre:         in.Nombre,
		Telefono:       &in.Telefono,
		Correo:         in.Correo,
		DNI:            in.DNI,
		CodigoReferido: codigo,
		PremioID:       in.PremioID,
		Estado:         model.ClienteActivo,
	}

	if err := s.store.CreateCliente(ctx, cliente); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.EnviarCodigoReferido(ctx, cliente, rest); err != nil {
			s.log.Warn("no se pudo enviar el código de referido",
				zap.String("cliente_id", cliente.ID.String()),
				zap.Error(err))
		}
	}

	if s.bus != nil {
		ev := realtime.Event{Tabla: realtime.TablaClientes, RestauranteID: rest.ID}
		if err := s.bus.Publish(ctx, ev); err != nil {
			s.log.Warn("no se pudo publicar el cambio", zap.Error(err))
		}
	}

	return cliente, nil
}

const sufijoChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCodigoReferido produce un código con el formato
// REF-<milisegundos unix>-<6 caracteres aleatorios>.
func GenerateCodigoReferido() (string, error) {
	sufijo := make([]byte, 6)
	max := big.NewInt(int64(len(sufijoChars)))
	for i := range sufijo {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sufijo[i] = sufijoChars[n.Int64()]
	}
	return fmt.Sprintf("REF-%d-%s", time.Now().UnixMilli(), sufijo), nil
}
