package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	setupCache(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	t.Run("round trip", func(t *testing.T) {
		SetJSON(ctx, "k1", payload{Name: "alice", Count: 3}, time.Minute)

		var got payload
		require.True(t, GetJSON(ctx, "k1", &got))
		assert.Equal(t, "alice", got.Name)
		assert.Equal(t, 3, got.Count)
	})

	t.Run("miss returns false", func(t *testing.T) {
		var got payload
		assert.False(t, GetJSON(ctx, "missing", &got))
	})

	t.Run("corrupt entry is dropped", func(t *testing.T) {
		mr := setupCache(t)
		require.NoError(t, mr.Set("bad", "{not json"))

		var got payload
		assert.False(t, GetJSON(ctx, "bad", &got))
		assert.False(t, mr.Exists("bad"))
	})
}

func TestGetSetInt(t *testing.T) {
	setupCache(t)
	ctx := context.Background()

	SetInt(ctx, "unread:7", 42, time.Minute)
	n, ok := GetInt(ctx, "unread:7")
	require.True(t, ok)
	assert.Equal(t, int64(42), n)

	_, ok = GetInt(ctx, "unread:8")
	assert.False(t, ok)
}

func TestInvalidate(t *testing.T) {
	mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(UserKey(5), "x"))
	require.NoError(t, mr.Set(LikesKey(9), "x"))

	InvalidateUser(ctx, 5)
	InvalidateLikes(ctx, 9)

	assert.False(t, mr.Exists(UserKey(5)))
	assert.False(t, mr.Exists(LikesKey(9)))
}

func TestNilClientIsSafe(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var got int
	assert.False(t, GetJSON(ctx, "k", &got))
	SetJSON(ctx, "k", 1, time.Minute)
	Invalidate(ctx, "k")
	_, ok := GetInt(ctx, "k")
	assert.False(t, ok)
}
