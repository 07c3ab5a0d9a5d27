package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stickynotes/internal/notes/adapters/kv/memory"
)

func TestKV(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()

	_, found, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Set(ctx, "k", "v1"))
	require.NoError(t, kv.Set(ctx, "k", "v2"))

	v, found, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v2", v)

	require.NoError(t, kv.Close())
	assert.ErrorIs(t, kv.Set(ctx, "k", "v3"), memory.ErrClosed)
	_, _, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, memory.ErrClosed)
}
