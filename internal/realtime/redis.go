package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const canalCambios = "bizboost:cambios"

// RedisBus transporta los eventos de cambio por Redis pub/sub, para que los
// pases de reconciliación se disparen en todas las réplicas del servidor.
type RedisBus struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisBus(client *redis.Client, log *zap.Logger) *RedisBus {
	return &RedisBus{client: client, log: log}
}

func (b *RedisBus) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return b.client.Publish(ctx, canalCambios, payload).Err()
}

func (b *RedisBus) Subscribe(ctx context.Context, fn func(Event)) (func(), error) {
	sub := b.client.Subscribe(ctx, canalCambios)
	if _, err := sub.Receive(ctx); err != nil {
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	go func() {
		for msg := range sub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				b.log.Warn("evento de cambio ilegible", zap.Error(err))
				continue
			}
			fn(ev)
		}
	}()

	cancel := func() { _ = sub.Close() }
	return cancel, nil
}
