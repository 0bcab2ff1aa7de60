package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayCache_GetMiss(t *testing.T) {
	s := miniredis.RunT(t)
	cache := NewReplayCache(goredis.NewClient(&goredis.Options{Addr: s.Addr()}))

	val, err := cache.Get(context.Background(), "conversion:missing")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestReplayCache_SetThenGet(t *testing.T) {
	s := miniredis.RunT(t)
	cache := NewReplayCache(goredis.NewClient(&goredis.Options{Addr: s.Addr()}))
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "conversion:k1", []byte(`{"id":"c1"}`), 24*time.Hour))

	val, err := cache.Get(ctx, "conversion:k1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"c1"}`, string(val))
	assert.True(t, s.Exists("replay:conversion:k1"))
}

func TestReplayCache_Expires(t *testing.T) {
	s := miniredis.RunT(t)
	cache := NewReplayCache(goredis.NewClient(&goredis.Options{Addr: s.Addr()}))
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	s.FastForward(2 * time.Minute)

	val, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestReplayCache_RedisDown(t *testing.T) {
	s := miniredis.RunT(t)
	cache := NewReplayCache(goredis.NewClient(&goredis.Options{Addr: s.Addr()}))
	s.Close()

	_, err := cache.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, cache.Set(context.Background(), "k", []byte("v"), time.Minute))
}
