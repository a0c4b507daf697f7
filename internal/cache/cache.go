package cache

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/clinicore/admin-api/pkg/messaging"
)

// Admin list view cache keys.
const (
	KeyUsers   = "users"
	KeyClinics = "clinics"
	KeyAdmins  = "admins"
)

// InvalidateChannel is the broker channel carrying invalidation fan-out
// between instances.
const InvalidateChannel = "cache.invalidate"

// Invalidator drops cached list views after a mutation.
type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string)
}

type invalidateMessage struct {
	Keys []string `json:"keys"`
}

// Store is a per-instance list view cache. Invalidations are applied
// locally and broadcast over the broker so peer instances drop their
// copies too. The broker may be nil for single-instance deployments.
type Store struct {
	local  *gocache.Cache
	broker messaging.Broker
}

func NewStore(defaultTTL time.Duration, broker messaging.Broker) *Store {
	return &Store{
		local:  gocache.New(defaultTTL, 2*defaultTTL),
		broker: broker,
	}
}

func (s *Store) Get(key string) (interface{}, bool) {
	return s.local.Get(key)
}

func (s *Store) Set(key string, value interface{}) {
	s.local.SetDefault(key, value)
}

// Invalidate drops the given keys locally and broadcasts the drop. Broker
// failures are logged, never propagated; a stale peer cache expires on TTL.
func (s *Store) Invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		s.local.Delete(key)
	}

	if s.broker == nil {
		return
	}
	if err := s.broker.Publish(ctx, InvalidateChannel, invalidateMessage{Keys: keys}); err != nil {
		log.Error().Err(err).Strs("keys", keys).Msg("failed to broadcast cache invalidation")
	}
}

// Listen applies invalidations broadcast by peer instances. Blocks until
// ctx is cancelled; run it in its own goroutine.
func (s *Store) Listen(ctx context.Context) error {
	if s.broker == nil {
		return nil
	}

	msgs, err := s.broker.Subscribe(ctx, InvalidateChannel)
	if err != nil {
		return err
	}

	for payload := range msgs {
		var msg invalidateMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			log.Error().Err(err).Msg("failed to decode cache invalidation message")
			continue
		}
		for _, key := range msg.Keys {
			s.local.Delete(key)
		}
	}
	return nil
}
