package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stickynotes/internal/notes/adapters/kv/redis"
)

func mockRedisServer(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	return s, client
}

func TestKV_GetSet(t *testing.T) {
	ctx := context.Background()
	s, client := mockRedisServer(t)
	kv := redis.New(client, "stickynotes:")
	t.Cleanup(func() { _ = kv.Close() })

	_, found, err := kv.Get(ctx, "notes")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Set(ctx, "notes", `[]`))

	value, found, err := kv.Get(ctx, "notes")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, value)

	raw, err := s.Get("stickynotes:notes")
	require.NoError(t, err)
	assert.Equal(t, `[]`, raw)
	assert.Equal(t, time.Duration(0), s.TTL("stickynotes:notes"), "values must not expire")
}

func TestKV_ServerDown(t *testing.T) {
	ctx := context.Background()
	s, client := mockRedisServer(t)
	kv := redis.New(client, "")

	s.Close()

	err := kv.Set(ctx, "k", "v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), redis.ErrorFailedToSet)

	_, found, err := kv.Get(ctx, "k")
	require.Error(t, err)
	assert.False(t, found)
	assert.Contains(t, err.Error(), redis.ErrorFailedToGet)
}

func TestKV_WrongType(t *testing.T) {
	ctx := context.Background()
	s, client := mockRedisServer(t)
	kv := redis.New(client, "")

	_, err := s.Lpush("list", "x")
	require.NoError(t, err)

	_, _, err = kv.Get(ctx, "list")
	assert.Error(t, err)
}
