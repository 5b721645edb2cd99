//go:build integration

package sessionstore

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kozaktomas/album-editor/internal/config"
	"github.com/kozaktomas/album-editor/internal/editor"
)

func setupRedis(t *testing.T) (*RedisStore, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("Docker not available or container failed to start, skipping integration test: %v", err)
		return nil, func() {}
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	store, err := NewRedisStore(ctx, config.RedisConfig{Addr: host + ":" + port.Port(), SessionTTL: 2 * time.Second})
	if err != nil {
		container.Terminate(ctx)
		t.Fatalf("Failed to connect to redis: %v", err)
	}

	return store, func() {
		store.Close()
		container.Terminate(ctx)
	}
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store, cleanup := setupRedis(t)
	if store == nil {
		return
	}
	defer cleanup()

	storeRoundTrip(t, store)
}

func TestRedisStore_Expiry(t *testing.T) {
	store, cleanup := setupRedis(t)
	if store == nil {
		return
	}
	defer cleanup()

	ctx := context.Background()
	if err := store.Put(ctx, &editor.Document{ID: "short"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	time.Sleep(3 * time.Second)
	if doc, err := store.Get(ctx, "short"); err != nil || doc != nil {
		t.Errorf("expected expired session, got %v, %v", doc, err)
	}
}
