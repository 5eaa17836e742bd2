package sessions

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestBlacklist_AddContains(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	bl := NewBlacklist(redis.NewClient(&redis.Options{Addr: m.Addr()}))

	ctx := context.Background()
	token := "access-token-1"
	require.NoError(t, bl.Add(ctx, token, 2*time.Second))

	ok, err := bl.Contains(ctx, token)
	require.NoError(t, err)
	require.True(t, ok)

	// advance past TTL
	m.FastForward(3 * time.Second)

	ok2, err := bl.Contains(ctx, token)
	require.NoError(t, err)
	require.False(t, ok2)
}

func TestBlacklist_NoClient_Noop(t *testing.T) {
	ctx := context.Background()
	for _, bl := range []*Blacklist{nil, NewBlacklist(nil)} {
		require.NoError(t, bl.Add(ctx, "no-client-token", time.Second))
		ok, err := bl.Contains(ctx, "no-client-token")
		require.NoError(t, err)
		require.False(t, ok)
	}
}
