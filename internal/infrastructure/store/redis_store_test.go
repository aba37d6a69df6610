package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) (*redis.Client, func()) {
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor: wait.ForLog("Ready to accept connections").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start redis container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("Failed to ping redis: %v", err)
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			t.Logf("Failed to close redis client: %v", err)
		}
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return client, cleanup
}

func TestRedisStore(t *testing.T) {
	client, cleanup := setupRedis(t)
	defer cleanup()

	ctx := context.Background()
	s := NewRedisStore(client, "test:")

	_, err := s.Get(ctx, KeySession)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, KeyCheckoutOrderID, "o1", time.Hour))

	v, err := s.Get(ctx, KeyCheckoutOrderID)
	require.NoError(t, err)
	assert.Equal(t, "o1", v)

	raw, err := client.Get(ctx, "test:"+KeyCheckoutOrderID).Result()
	require.NoError(t, err)
	assert.Equal(t, "o1", raw)

	require.NoError(t, s.Delete(ctx, KeyCheckoutOrderID))
	_, err = s.Get(ctx, KeyCheckoutOrderID)
	assert.ErrorIs(t, err, ErrNotFound)
}
