package valkey

import (
	"context"
	"errors"
	"testing"

	"github.com/valkey-io/valkey-go/mock"
	"go.uber.org/mock/gomock"

	"github.com/jwulff/bptrack/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, *mock.Client) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	return New(client, "home"), client
}

func TestGetReturnsValue(t *testing.T) {
	store, client := newMockStore(t)
	ctx := context.Background()

	client.EXPECT().
		Do(ctx, mock.Match("GET", "home:bp-readings")).
		Return(mock.Result(mock.ValkeyString(`[]`)))

	value, err := store.Get(ctx, storage.KeyReadings)
	require.NoError(t, err)
	assert.Equal(t, `[]`, value)
}

func TestGetMissingKeyIsNotFound(t *testing.T) {
	store, client := newMockStore(t)
	ctx := context.Background()

	client.EXPECT().
		Do(ctx, mock.Match("GET", "home:dismissed-alerts")).
		Return(mock.Result(mock.ValkeyNil()))

	_, err := store.Get(ctx, storage.KeyDismissedAlerts)
	require.Error(t, err)
	assert.True(t, storage.IsNotFound(err))
	assert.Equal(t, "key not found: dismissed-alerts", err.Error())
}

func TestGetPassesThroughServerErrors(t *testing.T) {
	store, client := newMockStore(t)
	ctx := context.Background()
	boom := errors.New("connection reset")

	client.EXPECT().
		Do(ctx, mock.Match("GET", "home:bp-readings")).
		Return(mock.ErrorResult(boom))

	_, err := store.Get(ctx, storage.KeyReadings)
	assert.ErrorIs(t, err, boom)
	assert.False(t, storage.IsNotFound(err))
}

func TestSetUsesPrefixedKey(t *testing.T) {
	store, client := newMockStore(t)
	ctx := context.Background()

	client.EXPECT().
		Do(ctx, mock.Match("SET", "home:bp-readings", `[{"id":"a"}]`)).
		Return(mock.Result(mock.ValkeyString("OK")))

	require.NoError(t, store.Set(ctx, storage.KeyReadings, `[{"id":"a"}]`))
}

func TestSetError(t *testing.T) {
	store, client := newMockStore(t)
	ctx := context.Background()

	client.EXPECT().
		Do(ctx, mock.Match("SET", "home:bp-readings", "[]")).
		Return(mock.ErrorResult(errors.New("READONLY")))

	assert.Error(t, store.Set(ctx, storage.KeyReadings, "[]"))
}

func TestDeleteUsesPrefixedKey(t *testing.T) {
	store, client := newMockStore(t)
	ctx := context.Background()

	client.EXPECT().
		Do(ctx, mock.Match("DEL", "home:dismissed-alerts")).
		Return(mock.Result(mock.ValkeyInt64(1)))

	require.NoError(t, store.Delete(ctx, storage.KeyDismissedAlerts))
}
