package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/redfreska-cyber/redfreska-biz-boost/internal/model"
	"github.com/redfreska-cyber/redfreska-biz-boost/internal/realtime"
)

// StaffNotifier avisa al personal del restaurante de una validación recién
// materializada.
type StaffNotifier interface {
	NotificarValidacion(ctx context.Context, v model.ValidacionDetalle)
}

// Watcher escucha el feed de cambios y re-corre el reconciliador del
// restaurante afectado. No confía en el contenido del evento: cada pase
// relee todo del almacén. Los disparos solapados de un mismo restaurante se
// colapsan en un solo pase en vuelo (singleflight); el que llega tarde
// comparte el resultado del que ya corre.
type Watcher struct {
	bus      realtime.Bus
	progress *ProgressService
	staff    StaffNotifier
	log      *zap.Logger

	group singleflight.Group

	mu       sync.Mutex
	cancel   func()
	stopping bool
	wg       sync.WaitGroup
}

// Tablas cuyo cambio dispara un pase.
var tablasObservadas = map[string]bool{
	realtime.TablaClientes:     true,
	realtime.TablaReferidos:    true,
	realtime.TablaConversiones: true,
	realtime.TablaPremios:      true,
	realtime.TablaValidaciones: true,
}

func NewWatcher(bus realtime.Bus, progress *ProgressService, staff StaffNotifier, log *zap.Logger) *Watcher {
	return &Watcher{bus: bus, progress: progress, staff: staff, log: log}
}

func (w *Watcher) Start(ctx context.Context) error {
	cancel, err := w.bus.Subscribe(ctx, func(ev realtime.Event) {
		if !tablasObservadas[ev.Tabla] || ev.RestauranteID == uuid.Nil {
			return
		}
		// El bus puede entregar después de iniciado el apagado; no se
		// arrancan pases nuevos una vez que Stop está en marcha.
		w.mu.Lock()
		if w.stopping {
			w.mu.Unlock()
			return
		}
		w.wg.Add(1)
		w.mu.Unlock()
		go func() {
			defer w.wg.Done()
			w.run(ctx, ev.RestauranteID)
		}()
	})
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()

	go func() {
		<-ctx.Done()
		w.Stop()
	}()
	return nil
}

// Stop es seguro de llamar más de una vez y en paralelo; todos los llamadores
// esperan a que terminen los pases en vuelo.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.stopping {
		w.stopping = true
		if w.cancel != nil {
			w.cancel()
			w.cancel = nil
		}
	}
	w.mu.Unlock()
	w.wg.Wait()
}

func (w *Watcher) run(ctx context.Context, restauranteID uuid.UUID) {
	_, err, _ := w.group.Do(restauranteID.String(), func() (interface{}, error) {
		_, nuevas, err := w.progress.Reconcile(ctx, restauranteID)
		if err != nil {
			return nil, err
		}
		if w.staff != nil {
			for _, v := range nuevas {
				w.staff.NotificarValidacion(ctx, v)
			}
		}
		return nil, nil
	})
	if err != nil {
		w.log.Error("pase de reconciliación fallido",
			zap.String("restaurante_id", restauranteID.String()),
			zap.Error(err))
	}
}
