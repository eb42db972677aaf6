package realtime

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Tablas observadas por el feed de cambios.
const (
	TablaClientes     = "clientes"
	TablaReferidos    = "referidos"
	TablaConversiones = "conversiones"
	TablaPremios      = "premios"
	TablaValidaciones = "validaciones"
)

// Event señala que una tabla cambió para un restaurante. No lleva más carga
// que eso: quien reaccione debe releer todo desde el almacén.
type Event struct {
	Tabla         string    `json:"tabla"`
	RestauranteID uuid.UUID `json:"restaurante_id"`
}

// Bus publica y entrega eventos de cambio.
type Bus interface {
	Publish(ctx context.Context, ev Event) error
	// Subscribe registra fn para todo evento publicado y devuelve una función
	// para cancelar la suscripción.
	Subscribe(ctx context.Context, fn func(Event)) (func(), error)
}

// MemoryBus es un bus en proceso. Se usa cuando no hay Redis configurado y
// en los tests. La entrega es síncrona.
type MemoryBus struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(Event)
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[int]func(Event))}
}

func (b *MemoryBus) Publish(_ context.Context, ev Event) error {
	b.mu.RLock()
	fns := make([]func(Event), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
	return nil
}

func (b *MemoryBus) Subscribe(_ context.Context, fn func(Event)) (func(), error) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
	return cancel, nil
}
