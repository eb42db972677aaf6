package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/realtime"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/repository"
)

var ErrValidacionNoExiste = errors.New("La validación ya no existe")

// MotivoEntregado queda registrado al aprobar una validación.
const MotivoEntregado = "Premio entregado"

// ProgressStore son las operaciones que el reconciliador espera del almacén.
// ListValidacionesDetalle puede venir sin acotar por restaurante; el
// reconciliador re-filtra por el restaurante del cliente en todo caso.
type ProgressStore interface {
	ListPremiosActivos(ctx context.Context, restauranteID uuid.UUID) ([]model.Premio, error)
	ListClientesResumen(ctx context.Context, restauranteID uuid.UUID) ([]model.ClienteResumen, error)
	ListReferidosConfirmados(ctx context.Context, restauranteID uuid.UUID) ([]model.Referido, error)
	ListValidacionesDetalle(ctx context.Context) ([]model.ValidacionDetalle, error)
	InsertValidaciones(ctx context.Context, nuevas []model.Validacion) ([]model.ValidacionDetalle, error)
	AprobarValidacion(ctx context.Context, id uuid.UUID, motivo string) error
	DeleteValidacion(ctx context.Context, id uuid.UUID) error
}

// PremioObjetivo es el premio que se muestra en la fila de avance: el de la
// validación si existe, o el siguiente premio por alcanzar.
type PremioObjetivo struct {
	Descripcion string  `json:"descripcion"`
	Umbral      int     `json:"umbral"`
	Detalle     *string `json:"detalle_premio,omitempty"`
}

// ProgressRow es una fila de avance por cliente. Validacion == nil significa
// que el cliente todavía no cruzó ningún umbral: la fila es solo de progreso
// y no respalda ninguna fila persistida.
type ProgressRow struct {
	ClienteID     uuid.UUID                `json:"cliente_id"`
	ClienteNombre string                   `json:"cliente_nombre"`
	Premio        *PremioObjetivo          `json:"premio,omitempty"`
	Conversiones  int                      `json:"conversiones_realizadas"`
	Validacion    *model.ValidacionDetalle `json:"validacion,omitempty"`
}

// EnProgreso reporta si la fila es un marcador de avance sin validación real.
func (r ProgressRow) EnProgreso() bool {
	return r.Validacion == nil
}

type ProgressService struct {
	store ProgressStore
	bus   realtime.Bus
	log   *zap.Logger
}

func NewProgressService(store ProgressStore, bus realtime.Bus, log *zap.Logger) *ProgressService {
	return &ProgressService{store: store, bus: bus, log: log}
}

// Reconcile deriva el avance de premios de un restaurante: cuenta referidos
// confirmados por cliente, materializa las validaciones de umbrales recién
// cruzados (una sola vez por par cliente/premio) y arma una fila por cliente.
// Devuelve también las validaciones recién creadas, para quien quiera
// avisarle al personal.
//
// Correr el pase dos veces sin datos nuevos no inserta nada y produce las
// mismas filas. Cualquier fallo de lectura o del insert por lotes aborta el
// pase completo; no hay estado a medias que limpiar porque el lote entra en
// una sola transacción.
func (s *ProgressService) Reconcile(ctx context.Context, restauranteID uuid.UUID) ([]ProgressRow, []model.ValidacionDetalle, error) {
	validaciones, err := s.store.ListValidacionesDetalle(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list validaciones: %w", err)
	}

	clientes, err := s.store.ListClientesResumen(ctx, restauranteID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list clientes: %w", err)
	}

	premios, err := s.store.ListPremiosActivos(ctx, restauranteID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list premios: %w", err)
	}

	confirmados, err := s.store.ListReferidosConfirmados(ctx, restauranteID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list referidos: %w", err)
	}

	// Conteo de referidos confirmados por cliente referente. Un cliente que
	// no aparece tiene conteo cero.
	conteos := make(map[uuid.UUID]int, len(clientes))
	for _, ref := range confirmados {
		conteos[ref.ClienteOwnerID]++
	}

	// Pares (cliente, premio) con umbral cruzado y sin validación previa.
	existe := make(map[[2]uuid.UUID]bool, len(validaciones))
	for _, v := range validaciones {
		existe[[2]uuid.UUID{v.ClienteID, v.PremioID}] = true
	}

	var nuevas []model.Validacion
	for _, cliente := range clientes {
		conteo := conteos[cliente.ID]
		for _, premio := range premios {
			if conteo < premio.Umbral {
				continue
			}
			if existe[[2]uuid.UUID{cliente.ID, premio.ID}] {
				continue
			}
			nuevas = append(nuevas, model.Validacion{
				ClienteID:              cliente.ID,
				PremioID:               premio.ID,
				ConversionesRealizadas: conteo,
				Validado:               false,
			})
		}
	}

	var insertadas []model.ValidacionDetalle
	if len(nuevas) > 0 {
		insertadas, err = s.store.InsertValidaciones(ctx, nuevas)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to insert validaciones: %w", err)
		}
		validaciones = append(validaciones, insertadas...)

		s.log.Info("validaciones materializadas",
			zap.String("restaurante_id", restauranteID.String()),
			zap.Int("nuevas", len(insertadas)))
		s.publish(ctx, restauranteID)
	}

	// Defensa extra contra un join sin acotar: solo validaciones cuyo cliente
	// pertenece al restaurante.
	filtradas := validaciones[:0:0]
	for _, v := range validaciones {
		if v.ClienteRestauranteID == restauranteID {
			filtradas = append(filtradas, v)
		}
	}

	rows := make([]ProgressRow, 0, len(clientes))
	for _, cliente := range clientes {
		rows = append(rows, buildRow(cliente, conteos[cliente.ID], filtradas, premios))
	}
	return rows, insertadas, nil
}

// buildRow arma la fila de un cliente. La validación activa es la primera no
// entregada; si todas fueron entregadas se muestra cualquiera de ellas; si no
// hay ninguna, la fila queda en progreso.
func buildRow(cliente model.ClienteResumen, conteo int, validaciones []model.ValidacionDetalle, premios []model.Premio) ProgressRow {
	var activa *model.ValidacionDetalle
	for i := range validaciones {
		if validaciones[i].ClienteID == cliente.ID && !validaciones[i].Validado {
			activa = &validaciones[i]
			break
		}
	}
	if activa == nil {
		for i := range validaciones {
			if validaciones[i].ClienteID == cliente.ID {
				activa = &validaciones[i]
				break
			}
		}
	}

	row := ProgressRow{
		ClienteID:     cliente.ID,
		ClienteNombre: cliente.Nombre,
		Conversiones:  conteo,
		Validacion:    activa,
	}

	if activa != nil {
		row.Premio = &PremioObjetivo{
			Descripcion: activa.PremioDescripcion,
			Umbral:      activa.PremioUmbral,
			Detalle:     activa.PremioDetalle,
		}
		return row
	}

	// Sin validación: el objetivo es el siguiente premio por alcanzar, o el
	// de mayor umbral si el cliente ya los superó todos.
	var objetivo *model.Premio
	for i := range premios {
		if premios[i].Umbral >= conteo {
			objetivo = &premios[i]
			break
		}
	}
	if objetivo == nil && len(premios) > 0 {
		objetivo = &premios[len(premios)-1]
	}
	if objetivo != nil {
		row.Premio = &PremioObjetivo{
			Descripcion: objetivo.Descripcion,
			Umbral:      objetivo.Umbral,
			Detalle:     objetivo.DetallePremio,
		}
	}
	return row
}

// Aprobar marca la validación como entregada. Si la fila ya no existe la
// operación falla con un error visible para el usuario, sin tocar nada más.
func (s *ProgressService) Aprobar(ctx context.Context, restauranteID, id uuid.UUID) error {
	if err := s.store.AprobarValidacion(ctx, id, MotivoEntregado); err != nil {
		if errors.Is(err, repository.ErrValidacionNotFound) {
			return ErrValidacionNoExiste
		}
		return err
	}
	s.publish(ctx, restauranteID)
	return nil
}

// Rechazar elimina la fila. Si la condición de umbral sigue vigente, el
// siguiente pase la regenera como pendiente: el rechazo da otra oportunidad
// de revisión en lugar de quedar grabado.
func (s *ProgressService) Rechazar(ctx context.Context, restauranteID, id uuid.UUID) error {
	if err := s.store.DeleteValidacion(ctx, id); err != nil {
		if errors.Is(err, repository.ErrValidacionNotFound) {
			return ErrValidacionNoExiste
		}
		return err
	}
	s.publish(ctx, restauranteID)
	return nil
}

func (s *ProgressService) publish(ctx context.Context, restauranteID uuid.UUID) {
	if s.bus == nil {
		return
	}
	ev := realtime.Event{Tabla: realtime.TablaValidaciones, RestauranteID: restauranteID}
	if err := s.bus.Publish(ctx, ev); err != nil {
		s.log.Warn("no se pudo publicar el cambio", zap.Error(err))
	}
}
