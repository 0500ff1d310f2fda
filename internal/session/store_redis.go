package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"kaziid/internal/identity"
	"kaziid/pkg/platform/sentinel"
)

var snapshotLoadDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "kaziid_snapshot_load_duration_ms",
	Help:    "Latency of session snapshot loads in milliseconds",
	Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
})

const snapshotKey = "session:snapshot"

// RedisSnapshot keeps the slot under a single Redis key. Recommended when
// the session must survive instance restarts or be shared across replicas
// of the portal backend.
type RedisSnapshot struct {
	client    *redis.Client
	keyPrefix string
}

// RedisSnapshotOption configures a RedisSnapshot instance.
type RedisSnapshotOption func(*RedisSnapshot)

// WithKeyPrefix namespaces the slot key, letting several installations
// share one Redis.
func WithKeyPrefix(prefix string) RedisSnapshotOption {
	return func(s *RedisSnapshot) {
		s.keyPrefix = prefix
	}
}

func NewRedisSnapshot(client *redis.Client, opts ...RedisSnapshotOption) *RedisSnapshot {
	s := &RedisSnapshot{client: client}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *RedisSnapshot) Save(ctx context.Context, ident identity.Identity) error {
	blob, err := json.Marshal(ident)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	// No TTL: the slot lives until sign-out deletes it.
	if err := s.client.Set(ctx, s.key(), blob, 0).Err(); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (s *RedisSnapshot) Load(ctx context.Context) (identity.Identity, error) {
	start := time.Now()
	defer func() {
		snapshotLoadDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	blob, err := s.client.Get(ctx, s.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return identity.Identity{}, sentinel.ErrNotFound
	}
	if err != nil {
		return identity.Identity{}, fmt.Errorf("read snapshot: %w", err)
	}

	var ident identity.Identity
	if err := json.Unmarshal(blob, &ident); err != nil {
		return identity.Identity{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return ident, nil
}

func (s *RedisSnapshot) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

func (s *RedisSnapshot) key() string {
	if s.keyPrefix == "" {
		return snapshotKey
	}
	return s.keyPrefix + ":" + snapshotKey
}

// Compile-time assertion that RedisSnapshot implements SnapshotStore.
var _ SnapshotStore = (*RedisSnapshot)(nil)
