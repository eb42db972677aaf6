package service

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/repository"
)

type fakeRegistroStore struct {
	restaurante *model.Restaurante
	premios     []model.Premio
	creados     []*model.Cliente
}

func (f *fakeRegistroStore) GetRestauranteBySlug(_ context.Context, slug string) (*model.Restaurante, error) {
	if f.restaurante == nil || f.restaurante.Slug != slug {
		return nil, repository.ErrRestauranteNotFound
	}
	return f.restaurante, nil
}

func (f *fakeRegistroStore) ListPremiosActivos(_ context.Context, _ uuid.UUID) ([]model.Premio, error) {
	return f.premios, nil
}

func (f *fakeRegistroStore) CreateCliente(_ context.Context, cliente *model.Cliente) error {
	cliente.ID = uuid.New()
	f.creados = append(f.creados, cliente)
	return nil
}

type fallaNotifier struct {
	llamadas int
}

func (f *fallaNotifier) EnviarCodigoReferido(_ context.Context, _ *model.Cliente, _ *model.Restaurante) error {
	f.llamadas++
	return errors.New("twilio down")
}

func TestRegistrarCliente(t *testing.T) {
	store := &fakeRegistroStore{
		restaurante: &model.Restaurante{ID: uuid.New(), Nombre: "La Esquina", Slug: "la-esquina"},
	}
	svc := NewRegistroService(store, nil, nil, zap.NewNop())

	cliente, err := svc.RegistrarCliente(context.Background(), RegistroInput{
		Slug:     "la-esquina",
		Nombre:   "Ana",
		Telefono: "987654321",
	})
	if err != nil {
		t.Fatalf("RegistrarCliente: %v", err)
	}

	if cliente.RestauranteID != store.restaurante.ID {
		t.Error("cliente must belong to the resolved restaurante")
	}
	if cliente.Estado != model.ClienteActivo {
		t.Errorf("expected estado activo, got %s", cliente.Estado)
	}
	if len(store.creados) != 1 {
		t.Fatalf("expected 1 cliente created, got %d", len(store.creados))
	}
}

func TestRegistrarClienteDatosIncompletos(t *testing.T) {
	svc := NewRegistroService(&fakeRegistroStore{}, nil, nil, zap.NewNop())

	_, err := svc.RegistrarCliente(context.Background(), RegistroInput{Slug: "x", Nombre: "Ana"})
	if !errors.Is(err, ErrDatosIncompletos) {
		t.Errorf("expected ErrDatosIncompletos, got %v", err)
	}
}

func TestRegistrarClienteSlugInexistente(t *testing.T) {
	svc := NewRegistroService(&fakeRegistroStore{}, nil, nil, zap.NewNop())

	_, err := svc.RegistrarCliente(context.Background(), RegistroInput{
		Slug:     "no-existe",
		Nombre:   "Ana",
		Telefono: "987654321",
	})
	if !errors.Is(err, ErrRestauranteNoExiste) {
		t.Errorf("expected ErrRestauranteNoExiste, got %v", err)
	}
}

func TestRegistrarClienteNotifierFallaNoTumbaRegistro(t *testing.T) {
	store := &fakeRegistroStore{
		restaurante: &model.Restaurante{ID: uuid.New(), Nombre: "La Esquina", Slug: "la-esquina"},
	}
	notifier := &fallaNotifier{}
	svc := NewRegistroService(store, notifier, nil, zap.NewNop())

	cliente, err := svc.RegistrarCliente(context.Background(), RegistroInput{
		Slug:     "la-esquina",
		Nombre:   "Ana",
		Telefono: "987654321",
	})
	if err != nil {
		t.Fatalf("registration must survive a failing notifier: %v", err)
	}
	if notifier.llamadas != 1 {
		t.Errorf("expected notifier to be called once, got %d", notifier.llamadas)
	}
	if cliente.CodigoReferido == "" {
		t.Error("cliente must keep its código even when the send fails")
	}
}

func TestGenerateCodigoReferido(t *testing.T) {
	patron := regexp.MustCompile(`^REF-\d+-[A-Z0-9]{6}$`)

	vistos := make(map[string]bool)
	for i := 0; i < 50; i++ {
		codigo, err := GenerateCodigoReferido()
		if err != nil {
			t.Fatalf("GenerateCodigoReferido: %v", err)
		}
		if !patron.MatchString(codigo) {
			t.Fatalf("código %q does not match expected format", codigo)
		}
		if vistos[codigo] {
			t.Fatalf("duplicate código generated: %s", codigo)
		}
		vistos[codigo] = true
	}
}
