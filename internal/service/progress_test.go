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

type fakeProgressStore struct {
	premios      []model.Premio
	clientes     []model.ClienteResumen
	referidos    []model.Referido
	validaciones []model.ValidacionDetalle

	insertErr error
	inserts   int
}

func (f *fakeProgressStore) ListPremiosActivos(_ context.Context, restauranteID uuid.UUID) ([]model.Premio, error) {
	var out []model.Premio
	for _, p := range f.premios {
		if p.RestauranteID == restauranteID && p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProgressStore) ListClientesResumen(_ context.Context, restauranteID uuid.UUID) ([]model.ClienteResumen, error) {
	var out []model.ClienteResumen
	for _, c := range f.clientes {
		if c.RestauranteID == restauranteID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeProgressStore) ListReferidosConfirmados(_ context.Context, restauranteID uuid.UUID) ([]model.Referido, error) {
	var out []model.Referido
	for _, r := range f.referidos {
		if r.RestauranteID == restauranteID && r.ConsumoRealizado {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeProgressStore) ListValidacionesDetalle(_ context.Context) ([]model.ValidacionDetalle, error) {
	return append([]model.ValidacionDetalle(nil), f.validaciones...), nil
}

func (f *fakeProgressStore) InsertValidaciones(_ context.Context, nuevas []model.Validacion) ([]model.ValidacionDetalle, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.inserts++

	out := make([]model.ValidacionDetalle, 0, len(nuevas))
	for _, v := range nuevas {
		v.ID = uuid.New()
		det := model.ValidacionDetalle{Validacion: v}
		for _, c := range f.clientes {
			if c.ID == v.ClienteID {
				det.ClienteNombre = c.Nombre
				det.ClienteRestauranteID = c.RestauranteID
			}
		}
		for _, p := range f.premios {
			if p.ID == v.PremioID {
				det.PremioDescripcion = p.Descripcion
				det.PremioUmbral = p.Umbral
				det.PremioDetalle = p.DetallePremio
			}
		}
		f.validaciones = append(f.validaciones, det)
		out = append(out, det)
	}
	return out, nil
}

func (f *fakeProgressStore) AprobarValidacion(_ context.Context, id uuid.UUID, motivo string) error {
	for i := range f.validaciones {
		if f.validaciones[i].ID == id {
			f.validaciones[i].Validado = true
			f.validaciones[i].Motivo = &motivo
			return nil
		}
	}
	return repository.ErrValidacionNotFound
}

func (f *fakeProgressStore) DeleteValidacion(_ context.Context, id uuid.UUID) error {
	for i := range f.validaciones {
		if f.validaciones[i].ID == id {
			f.validaciones = append(f.validaciones[:i], f.validaciones[i+1:]...)
			return nil
		}
	}
	return repository.ErrValidacionNotFound
}

func nuevoPremio(restauranteID uuid.UUID, descripcion string, umbral int) model.Premio {
	return model.Premio{
		ID:            uuid.New(),
		RestauranteID: restauranteID,
		Descripcion:   descripcion,
		Umbral:        umbral,
		IsActive:      true,
	}
}

func agregarReferidos(store *fakeProgressStore, restauranteID, ownerID uuid.UUID, n int) {
	for i := 0; i < n; i++ {
		store.referidos = append(store.referidos, model.Referido{
			ID:               uuid.New(),
			RestauranteID:    restauranteID,
			ClienteOwnerID:   ownerID,
			ConsumoRealizado: true,
		})
	}
}

func TestReconcileMaterializaUmbralCruzado(t *testing.T) {
	restID := uuid.New()
	cliente := model.ClienteResumen{ID: uuid.New(), Nombre: "Ana", RestauranteID: restID}
	store := &fakeProgressStore{
		clientes: []model.ClienteResumen{cliente},
		premios: []model.Premio{
			nuevoPremio(restID, "Postre gratis", 3),
			nuevoPremio(restID, "Cena para dos", 5),
		},
	}
	agregarReferidos(store, restID, cliente.ID, 3)

	svc := NewProgressService(store, nil, zap.NewNop())
	rows, nuevas, err := svc.Reconcile(context.Background(), restID)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if len(nuevas) != 1 {
		t.Fatalf("expected 1 nueva validación, got %d", len(nuevas))
	}
	if nuevas[0].PremioDescripcion != "Postre gratis" {
		t.Errorf("expected validación for 'Postre gratis', got %q", nuevas[0].PremioDescripcion)
	}
	if nuevas[0].ConversionesRealizadas != 3 {
		t.Errorf("expected snapshot of 3 conversiones, got %d", nuevas[0].ConversionesRealizadas)
	}
	if nuevas[0].Validado {
		t.Error("new validación must start pending")
	}

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.EnProgreso() {
		t.Error("row with validación must not be en progreso")
	}
	if row.Premio == nil || row.Premio.Umbral != 3 {
		t.Errorf("expected premio umbral 3, got %+v", row.Premio)
	}
}

func TestReconcileIdempotente(t *testing.T) {
	restID := uuid.New()
	cliente := model.ClienteResumen{ID: uuid.New(), Nombre: "Ana", RestauranteID: restID}
	store := &fakeProgressStore{
		clientes: []model.ClienteResumen{cliente},
		premios:  []model.Premio{nuevoPremio(restID, "Postre gratis", 2)},
	}
	agregarReferidos(store, restID, cliente.ID, 2)

	svc := NewProgressService(store, nil, zap.NewNop())
	rows1, _, err := svc.Reconcile(context.Background(), restID)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	rows2, nuevas, err := svc.Reconcile(context.Background(), restID)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}

	if len(nuevas) != 0 {
		t.Errorf("second pass must not create validaciones, got %d", len(nuevas))
	}
	if store.inserts != 1 {
		t.Errorf("expected a single insert batch, got %d", store.inserts)
	}
	if len(rows1) != len(rows2) {
		t.Errorf("row count changed between passes: %d vs %d", len(rows1), len(rows2))
	}
}

func TestReconcileNoDuplicaPares(t *testing.T) {
	restID := uuid.New()
	cliente := model.ClienteResumen{ID: uuid.New(), Nombre: "Ana", RestauranteID: restID}
	premio := nuevoPremio(restID, "Postre gratis", 2)
	store := &fakeProgressStore{
		clientes: []model.ClienteResumen{cliente},
		premios:  []model.Premio{premio},
		validaciones: []model.ValidacionDetalle{{
			Validacion: model.Validacion{
				ID:                     uuid.New(),
				ClienteID:              cliente.ID,
				PremioID:               premio.ID,
				ConversionesRealizadas: 2,
				Validado:               true,
			},
			ClienteNombre:        cliente.Nombre,
			ClienteRestauranteID: restID,
			PremioDescripcion:    premio.Descripcion,
			PremioUmbral:         premio.Umbral,
		}},
	}
	// El conteo subió después de la validación; el par ya existe y no se
	// vuelve a crear.
	agregarReferidos(store, restID, cliente.ID, 4)

	svc := NewProgressService(store, nil, zap.NewNop())
	_, nuevas, err := svc.Reconcile(context.Background(), restID)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if len(nuevas) != 0 {
		t.Errorf("existing pair must not be recreated, got %d nuevas", len(nuevas))
	}
}

func TestReconcileFilaPorCliente(t *testing.T) {
	restID := uuid.New()
	conReferidos := model.ClienteResumen{ID: uuid.New(), Nombre: "Ana", RestauranteID: restID}
	sinReferidos := model.ClienteResumen{ID: uuid.New(), Nombre: "Beto", RestauranteID: restID}
	store := &fakeProgressStore{
		clientes: []model.ClienteResumen{conReferidos, sinReferidos},
		premios:  []model.Premio{nuevoPremio(restID, "Postre gratis", 3)},
	}
	agregarReferidos(store, restID, conReferidos.ID, 1)

	svc := NewProgressService(store, nil, zap.NewNop())
	rows, _, err := svc.Reconcile(context.Background(), restID)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected one row per cliente, got %d", len(rows))
	}
	for _, row := range rows {
		if !row.EnProgreso() {
			t.Errorf("cliente %s below umbral must be en progreso", row.ClienteNombre)
		}
		if row.Premio == nil || row.Premio.Umbral != 3 {
			t.Errorf("cliente %s: expected objetivo umbral 3, got %+v", row.ClienteNombre, row.Premio)
		}
	}
	if rows[1].Conversiones != 0 {
		t.Errorf("cliente sin referidos must count zero, got %d", rows[1].Conversiones)
	}
}

func TestBuildRowObjetivoSiguienteNivel(t *testing.T) {
	restID := uuid.New()
	cliente := model.ClienteResumen{ID: uuid.New(), Nombre: "Ana", RestauranteID: restID}
	premios := []model.Premio{
		nuevoPremio(restID, "Postre gratis", 3),
		nuevoPremio(restID, "Cena para dos", 5),
	}

	row := buildRow(cliente, 4, nil, premios)
	if row.Premio == nil || row.Premio.Umbral != 5 {
		t.Errorf("count 4 must target umbral 5, got %+v", row.Premio)
	}

	// Por encima de todos los umbrales y sin validación: se muestra el premio
	// de mayor umbral.
	row = buildRow(cliente, 10, nil, premios)
	if row.Premio == nil || row.Premio.Umbral != 5 {
		t.Errorf("count above all umbrales must fall back to highest, got %+v", row.Premio)
	}

	// Sin premios activos no hay objetivo que mostrar.
	row = buildRow(cliente, 2, nil, nil)
	if row.Premio != nil {
		t.Errorf("expected nil premio without active premios, got %+v", row.Premio)
	}
}

func TestRechazarPermiteRegenerar(t *testing.T) {
	restID := uuid.New()
	cliente := model.ClienteResumen{ID: uuid.New(), Nombre: "Ana", RestauranteID: restID}
	store := &fakeProgressStore{
		clientes: []model.ClienteResumen{cliente},
		premios:  []model.Premio{nuevoPremio(restID, "Postre gratis", 2)},
	}
	agregarReferidos(store, restID, cliente.ID, 2)

	svc := NewProgressService(store, nil, zap.NewNop())
	_, nuevas, err := svc.Reconcile(context.Background(), restID)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if len(nuevas) != 1 {
		t.Fatalf("expected 1 nueva validación, got %d", len(nuevas))
	}

	if err := svc.Rechazar(context.Background(), restID, nuevas[0].ID); err != nil {
		t.Fatalf("Rechazar: %v", err)
	}

	// El umbral sigue cruzado: el siguiente pase la vuelve a crear pendiente.
	_, regeneradas, err := svc.Reconcile(context.Background(), restID)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if len(regeneradas) != 1 {
		t.Fatalf("expected rejected validación to regenerate, got %d", len(regeneradas))
	}
	if regeneradas[0].ID == nuevas[0].ID {
		t.Error("regenerated validación must be a new row")
	}
	if regeneradas[0].Validado {
		t.Error("regenerated validación must start pending")
	}
}

func TestAprobarMarcaEntregado(t *testing.T) {
	restID := uuid.New()
	cliente := model.ClienteResumen{ID: uuid.New(), Nombre: "Ana", RestauranteID: restID}
	store := &fakeProgressStore{
		clientes: []model.ClienteResumen{cliente},
		premios:  []model.Premio{nuevoPremio(restID, "Postre gratis", 1)},
	}
	agregarReferidos(store, restID, cliente.ID, 1)

	svc := NewProgressService(store, nil, zap.NewNop())
	_, nuevas, err := svc.Reconcile(context.Background(), restID)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if err := svc.Aprobar(context.Background(), restID, nuevas[0].ID); err != nil {
		t.Fatalf("Aprobar: %v", err)
	}
	v := store.validaciones[0]
	if !v.Validado {
		t.Error("approved validación must be marked validado")
	}
	if v.Motivo == nil || *v.Motivo != MotivoEntregado {
		t.Errorf("expected motivo %q, got %v", MotivoEntregado, v.Motivo)
	}
}

func TestAprobarValidacionInexistente(t *testing.T) {
	store := &fakeProgressStore{}
	svc := NewProgressService(store, nil, zap.NewNop())

	err := svc.Aprobar(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrValidacionNoExiste) {
		t.Errorf("expected ErrValidacionNoExiste, got %v", err)
	}
	err = svc.Rechazar(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrValidacionNoExiste) {
		t.Errorf("expected ErrValidacionNoExiste, got %v", err)
	}
}

func TestReconcileFiltraOtrosRestaurantes(t *testing.T) {
	restID := uuid.New()
	otroRestID := uuid.New()
	cliente := model.ClienteResumen{ID: uuid.New(), Nombre: "Ana", RestauranteID: restID}
	ajeno := model.ClienteResumen{ID: uuid.New(), Nombre: "Zoe", RestauranteID: otroRestID}
	store := &fakeProgressStore{
		clientes: []model.ClienteResumen{cliente, ajeno},
		premios:  []model.Premio{nuevoPremio(restID, "Postre gratis", 5)},
		// Validación de otro restaurante presente en la consulta global.
		validaciones: []model.ValidacionDetalle{{
			Validacion: model.Validacion{
				ID:        uuid.New(),
				ClienteID: ajeno.ID,
				PremioID:  uuid.New(),
			},
			ClienteNombre:        ajeno.Nombre,
			ClienteRestauranteID: otroRestID,
		}},
	}

	svc := NewProgressService(store, nil, zap.NewNop())
	rows, _, err := svc.Reconcile(context.Background(), restID)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("expected only clientes of the restaurante, got %d rows", len(rows))
	}
	if rows[0].ClienteID != cliente.ID {
		t.Errorf("unexpected cliente in rows: %s", rows[0].ClienteNombre)
	}
	if rows[0].Validacion != nil {
		t.Error("foreign validación must not leak into the rows")
	}
}

func TestReconcileInsertFallidoAbortaPase(t *testing.T) {
	restID := uuid.New()
	cliente := model.ClienteResumen{ID: uuid.New(), Nombre: "Ana", RestauranteID: restID}
	store := &fakeProgressStore{
		clientes:  []model.ClienteResumen{cliente},
		premios:   []model.Premio{nuevoPremio(restID, "Postre gratis", 1)},
		insertErr: errors.New("db down"),
	}
	agregarReferidos(store, restID, cliente.ID, 1)

	svc := NewProgressService(store, nil, zap.NewNop())
	rows, nuevas, err := svc.Reconcile(context.Background(), restID)
	if err == nil {
		t.Fatal("expected error when insert fails")
	}
	if rows != nil || nuevas != nil {
		t.Error("failed pass must not return partial results")
	}
}
