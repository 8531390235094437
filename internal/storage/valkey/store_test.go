package valkey

import (
	"context"
	"os"
	"testing"

	"github.com/jwulff/bptrack/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyPrefix(t *testing.T) {
	s := &Store{prefix: "home"}
	assert.Equal(t, "home:bp-readings", s.key(storage.KeyReadings))
}

func TestNewDefaultsPrefix(t *testing.T) {
	s := New(nil, "")
	assert.Equal(t, DefaultPrefix, s.prefix)
}

func TestClientOptions(t *testing.T) {
	opt, err := ClientOptions("localhost:6379")
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost:6379"}, opt.InitAddress)

	opt, err = ClientOptions("redis://localhost:6380/2")
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost:6380"}, opt.InitAddress)
	assert.Equal(t, 2, opt.SelectDB)

	_, err = ClientOptions("")
	assert.Error(t, err)
}

// TestRoundTrip runs against a live server when VALKEY_ADDR is set.
func TestRoundTrip(t *testing.T) {
	addr := os.Getenv("VALKEY_ADDR")
	if addr == "" {
		t.Skip("VALKEY_ADDR not set")
	}
	ctx := context.Background()

	store, err := Dial(ctx, addr, "bptrack-test")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(ctx, "key", "value"))
	value, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value", value)

	require.NoError(t, store.Delete(ctx, "key"))
	_, err = store.Get(ctx, "key")
	assert.True(t, storage.IsNotFound(err))
}
