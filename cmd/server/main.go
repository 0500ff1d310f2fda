package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"kaziid/internal/audit"
	"kaziid/internal/auth"
	"kaziid/internal/identity/directory"
	"kaziid/internal/platform/config"
	"kaziid/internal/platform/httpserver"
	"kaziid/internal/platform/logger"
	"kaziid/internal/platform/metrics"
	platformredis "kaziid/internal/platform/redis"
	"kaziid/internal/session"
	"kaziid/internal/token"
	httptransport "kaziid/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	slogger := logger.NewStructured()
	m := metrics.New()

	snapshots, cleanup, err := buildSnapshotStore(cfg)
	if err != nil {
		log.Fatalf("snapshot store: %v", err)
	}
	defer cleanup()

	dir, err := buildDirectory(cfg, log)
	if err != nil {
		log.Fatalf("account directory: %v", err)
	}

	trail, closeTrail, err := buildAuditTrail(cfg)
	if err != nil {
		log.Fatalf("audit trail: %v", err)
	}
	defer closeTrail()

	backend := auth.NewDirectoryBackend(dir, auth.WithLatency(cfg.AuthLatency))
	sessions := session.NewService(snapshots, backend,
		session.WithAudit(audit.NewPublisher(trail, audit.WithLogger(slogger))),
		session.WithMetrics(m),
		session.WithLogger(slogger),
	)

	// Rehydrate once at process start; a missing or unreadable snapshot
	// just means the session starts anonymous.
	sessions.LoadIdentity(context.Background())

	tokens := token.NewService(cfg.JWTSigningKey, "kaziid", cfg.TokenTTL)
	router := httptransport.NewRouter(httptransport.NewSessionHandler(sessions, tokens))

	srv := httpserver.New(cfg.Addr, router)

	log.Printf("starting kaziid on %s (snapshot backend: %s)", cfg.Addr, cfg.SnapshotBackend)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
}

func buildSnapshotStore(cfg config.Server) (session.SnapshotStore, func(), error) {
	noop := func() {}
	switch cfg.SnapshotBackend {
	case "memory":
		return session.NewInMemorySnapshot(), noop, nil
	case "file":
		return session.NewFileSnapshot(cfg.SnapshotDir), noop, nil
	case "redis":
		client, err := platformredis.New(cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		if client == nil {
			return nil, noop, fmt.Errorf("redis backend selected but KAZIID_REDIS_URL is empty")
		}
		return session.NewRedisSnapshot(client.Client), func() { _ = client.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown snapshot backend %q", cfg.SnapshotBackend)
	}
}

func buildDirectory(cfg config.Server, log *stdlog.Logger) (directory.Directory, error) {
	if cfg.PostgresURL == "" {
		dir := directory.NewInMemory()
		seeded := directory.SeedDemoAccounts(dir)
		log.Printf("seeded %d demo accounts into in-memory directory", len(seeded))
		return dir, nil
	}

	pool, err := pgxpool.New(context.Background(), cfg.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	dir := directory.NewPostgres(pool)
	if err := dir.Schema(context.Background()); err != nil {
		return nil, err
	}
	return dir, nil
}

func buildAuditTrail(cfg config.Server) (audit.Store, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return audit.NewInMemoryStore(), func() {}, nil
	}
	store, err := audit.NewKafkaStore(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		return nil, func() {}, err
	}
	return store, store.Close, nil
}
