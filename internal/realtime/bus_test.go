package realtime

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestMemoryBusEntregaATodos(t *testing.T) {
	bus := NewMemoryBus()
	ctx := context.Background()

	var a, b []Event
	cancelA, err := bus.Subscribe(ctx, func(ev Event) { a = append(a, ev) })
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if _, err := bus.Subscribe(ctx, func(ev Event) { b = append(b, ev) }); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	ev := Event{Tabla: TablaClientes, RestauranteID: uuid.New()}
	if err := bus.Publish(ctx, ev); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("expected both subscribers to receive the event, got %d and %d", len(a), len(b))
	}
	if a[0] != ev || b[0] != ev {
		t.Error("delivered event must match the published one")
	}

	cancelA()
	if err := bus.Publish(ctx, ev); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(a) != 1 {
		t.Error("cancelled subscriber must stop receiving events")
	}
	if len(b) != 2 {
		t.Errorf("active subscriber must keep receiving, got %d", len(b))
	}
}
