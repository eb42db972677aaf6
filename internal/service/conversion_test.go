package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/repository"
)

type fakeConversionStore struct {
	clientes     []model.Cliente
	conversiones []*model.Conversion
	referidos    []*model.Referido
}

func (f *fakeConversionStore) GetConversion(_ context.Context, id uuid.UUID) (*model.Conversion, error) {
	for _, c := range f.conversiones {
		if c.ID == id {
			copia := *c
			return &copia, nil
		}
	}
	return nil, repository.ErrConversionNotFound
}

func (f *fakeConversionStore) CreateConversion(_ context.Context, conv *model.Conversion) error {
	conv.ID = uuid.New()
	copia := *conv
	f.conversiones = append(f.conversiones, &copia)
	return nil
}

func (f *fakeConversionStore) UpdateConversionEstado(_ context.Context, id uuid.UUID, estado model.EstadoConversion) error {
	for _, c := range f.conversiones {
		if c.ID == id {
			c.Estado = estado
			return nil
		}
	}
	return repository.ErrConversionNotFound
}

func (f *fakeConversionStore) ListConversiones(_ context.Context, restauranteID uuid.UUID) ([]model.ConversionDetalle, error) {
	var out []model.ConversionDetalle
	for _, c := range f.conversiones {
		if c.RestauranteID == restauranteID {
			out = append(out, model.ConversionDetalle{Conversion: *c})
		}
	}
	return out, nil
}

func (f *fakeConversionStore) GetClienteByCodigoReferido(_ context.Context, restauranteID uuid.UUID, codigo string) (*model.Cliente, error) {
	for i := range f.clientes {
		if f.clientes[i].RestauranteID == restauranteID && f.clientes[i].CodigoReferido == codigo {
			return &f.clientes[i], nil
		}
	}
	return nil, repository.ErrClienteNotFound
}

func (f *fakeConversionStore) CreateReferido(_ context.Context, ref *model.Referido) error {
	ref.ID = uuid.New()
	f.referidos = append(f.referidos, ref)
	return nil
}

func storeConReferente(restauranteID uuid.UUID) (*fakeConversionStore, model.Cliente) {
	referente := model.Cliente{
		ID:             uuid.New(),
		RestauranteID:  restauranteID,
		Nombre:         "Ana",
		CodigoReferido: "REF-1700000000000-ABC123",
	}
	return &fakeConversionStore{clientes: []model.Cliente{referente}}, referente
}

func TestCreateConversionConfirmadaMaterializaReferido(t *testing.T) {
	restID := uuid.New()
	store, referente := storeConReferente(restID)
	svc := NewConversionService(store, nil, zap.NewNop())

	codigo := referente.CodigoReferido
	conv := &model.Conversion{
		RestauranteID:   restID,
		ClienteID:       uuid.New(),
		CodigoReferente: &codigo,
		Estado:          model.ConversionConfirmada,
	}
	if err := svc.CreateConversion(context.Background(), conv); err != nil {
		t.Fatalf("CreateConversion: %v", err)
	}

	if len(store.referidos) != 1 {
		t.Fatalf("expected 1 referido materialized, got %d", len(store.referidos))
	}
	ref := store.referidos[0]
	if ref.ClienteOwnerID != referente.ID {
		t.Error("referido must belong to the resolved referente")
	}
	if !ref.ConsumoRealizado {
		t.Error("materialized referido must count as confirmed consumption")
	}
	if ref.ClienteReferidoID == nil || *ref.ClienteReferidoID != conv.ClienteID {
		t.Error("referido must point back to the consuming cliente")
	}
}

func TestCreateConversionPendienteNoMaterializa(t *testing.T) {
	restID := uuid.New()
	store, referente := storeConReferente(restID)
	svc := NewConversionService(store, nil, zap.NewNop())

	codigo := referente.CodigoReferido
	conv := &model.Conversion{
		RestauranteID:   restID,
		ClienteID:       uuid.New(),
		CodigoReferente: &codigo,
	}
	if err := svc.CreateConversion(context.Background(), conv); err != nil {
		t.Fatalf("CreateConversion: %v", err)
	}

	if conv.Estado != model.ConversionPendiente {
		t.Errorf("expected default estado pendiente, got %s", conv.Estado)
	}
	if len(store.referidos) != 0 {
		t.Errorf("pending conversion must not materialize referidos, got %d", len(store.referidos))
	}
}

func TestCreateConversionCodigoDesconocidoNoTumbaRegistro(t *testing.T) {
	restID := uuid.New()
	store := &fakeConversionStore{}
	svc := NewConversionService(store, nil, zap.NewNop())

	codigo := "REF-0-NADIE1"
	conv := &model.Conversion{
		RestauranteID:   restID,
		ClienteID:       uuid.New(),
		CodigoReferente: &codigo,
		Estado:          model.ConversionConfirmada,
	}
	if err := svc.CreateConversion(context.Background(), conv); err != nil {
		t.Fatalf("conversion must be recorded even with an unknown código: %v", err)
	}
	if len(store.conversiones) != 1 {
		t.Fatalf("expected the conversion stored, got %d", len(store.conversiones))
	}
	if len(store.referidos) != 0 {
		t.Errorf("unknown código must not materialize referidos, got %d", len(store.referidos))
	}
}

func TestUpdateEstadoConfirmaYMaterializa(t *testing.T) {
	restID := uuid.New()
	store, referente := storeConReferente(restID)
	svc := NewConversionService(store, nil, zap.NewNop())

	codigo := referente.CodigoReferido
	conv := &model.Conversion{
		RestauranteID:   restID,
		ClienteID:       uuid.New(),
		CodigoReferente: &codigo,
	}
	if err := svc.CreateConversion(context.Background(), conv); err != nil {
		t.Fatalf("CreateConversion: %v", err)
	}
	if len(store.referidos) != 0 {
		t.Fatalf("no referido expected while pending, got %d", len(store.referidos))
	}

	if err := svc.UpdateEstado(context.Background(), restID, conv.ID, model.ConversionConfirmada); err != nil {
		t.Fatalf("UpdateEstado: %v", err)
	}
	if len(store.referidos) != 1 {
		t.Fatalf("confirming must materialize the referido, got %d", len(store.referidos))
	}

	// Re-confirmar una conversión ya confirmada no duplica el referido.
	if err := svc.UpdateEstado(context.Background(), restID, conv.ID, model.ConversionConfirmada); err != nil {
		t.Fatalf("second UpdateEstado: %v", err)
	}
	if len(store.referidos) != 1 {
		t.Errorf("already-confirmed conversion must not re-materialize, got %d referidos", len(store.referidos))
	}
}

func TestUpdateEstadoOtroRestaurante(t *testing.T) {
	restID := uuid.New()
	store, _ := storeConReferente(restID)
	svc := NewConversionService(store, nil, zap.NewNop())

	conv := &model.Conversion{RestauranteID: restID, ClienteID: uuid.New()}
	if err := svc.CreateConversion(context.Background(), conv); err != nil {
		t.Fatalf("CreateConversion: %v", err)
	}

	err := svc.UpdateEstado(context.Background(), uuid.New(), conv.ID, model.ConversionConfirmada)
	if !errors.Is(err, ErrConversionNoExiste) {
		t.Errorf("foreign restaurante must not see the conversion, got %v", err)
	}
}
