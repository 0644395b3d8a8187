//go:build integration

package wizard

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/domain"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/pricing"
)

func TestRedisStore_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.Ping(ctx).Err())

	store := NewRedisStore(client, time.Minute)
	line, _ := LookupProductLine(LineConfigurator)
	s := newSession("it-"+time.Now().Format("150405.000"), line, pricing.Snapshot{Table: pricing.Fallback(line.ID), Fallback: true}, time.Now().UTC())
	require.NoError(t, s.Update(domain.Patch{Width: ptr(domain.Advise())}))

	require.NoError(t, store.Save(ctx, s))
	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Config, got.Config)
	assert.Equal(t, s.Advice, got.Advice)
	assert.Equal(t, s.Price(), got.Price())

	ttl, err := client.TTL(ctx, sessionKeyPrefix+s.ID).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
