// Package redisstore deduplicación de eventos de webhook sobre Redis.
package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tu-usuario/contable-pro/internal/application/integration"
	"github.com/tu-usuario/contable-pro/pkg/config"
)

// NewClient conecta a Redis y valida la conexión con un ping.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// EventDeduper implementa integration.ReplayGuard con SET NX: la primera
// escritura del event_id gana y las siguientes dentro del TTL se rechazan.
type EventDeduper struct {
	client *redis.Client
}

var _ integration.ReplayGuard = (*EventDeduper)(nil)

// NewEventDeduper construye el guard sobre un cliente ya conectado.
func NewEventDeduper(client *redis.Client) *EventDeduper {
	return &EventDeduper{client: client}
}

// MarkEvent devuelve true si el evento no se había visto en la ventana.
func (d *EventDeduper) MarkEvent(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	ok, err := d.client.SetNX(ctx, "webhook:event:"+eventID, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("setnx event %s: %w", eventID, err)
	}
	return ok, nil
}
