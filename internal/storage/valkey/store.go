// Package valkey provides a Valkey (Redis compatible) implementation of the
// storage.KV interface.
package valkey

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/jwulff/bptrack/internal/storage"
)

// DefaultPrefix namespaces every key written by the tracker.
const DefaultPrefix = "bptrack"

// Store persists records in a Valkey-compatible database.
type Store struct {
	client valkey.Client
	prefix string
}

// New wraps an existing client.
func New(client valkey.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Dial connects to addr, which may be host:port or a redis:// URL, and
// verifies the server answers a PING.
func Dial(ctx context.Context, addr, prefix string) (*Store, error) {
	opt, err := ClientOptions(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid valkey address: %w", err)
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		return nil, fmt.Errorf("failed to create valkey client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping failed: %w", err)
	}

	return New(client, prefix), nil
}

// ClientOptions builds client options from an address or URL.
func ClientOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	if addr == "" {
		return valkey.ClientOption{}, fmt.Errorf("address is empty")
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	resp := s.client.Do(ctx, s.client.B().Get().Key(s.key(key)).Build())
	value, err := resp.ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", storage.ErrNotFound{Resource: "key", ID: key}
		}
		return "", err
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.client.Do(ctx, s.client.B().Set().Key(s.key(key)).Value(value).Build()).Error()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Do(ctx, s.client.B().Del().Key(s.key(key)).Build()).Error()
}

// Close releases the underlying client.
func (s *Store) Close() error {
	s.client.Close()
	return nil
}

func (s *Store) key(name string) string {
	return fmt.Sprintf("%s:%s", s.prefix, name)
}

var _ storage.KV = (*Store)(nil)
