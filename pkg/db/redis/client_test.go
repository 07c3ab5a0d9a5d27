package redis_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stickynotes/pkg/db/redis"
)

func TestNewClient(t *testing.T) {
	t.Run("connects to running server", func(t *testing.T) {
		srv := miniredis.RunT(t)
		host, portStr, _ := strings.Cut(srv.Addr(), ":")
		port, err := strconv.Atoi(portStr)
		require.NoError(t, err)

		cfg := redis.DefaultConfig()
		cfg.Host = host
		cfg.Port = port

		client, err := redis.NewClient(context.Background(), cfg)
		require.NoError(t, err)
		assert.NoError(t, client.Close())
	})

	t.Run("fails when server is unreachable", func(t *testing.T) {
		cfg := &redis.Config{Host: "127.0.0.1", Port: 1, Timeout: 100 * time.Millisecond}

		client, err := redis.NewClient(context.Background(), cfg)
		require.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), redis.ErrConnect)
	})
}

func TestConfig_Address(t *testing.T) {
	assert.Equal(t, "localhost:6379", redis.DefaultConfig().Address())
}
