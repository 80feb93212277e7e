// Package db defines the key-value storage contract the repositories build
// on. Drivers live in subpackages; consumers depend on narrow subsets of
// Store.
package db

import (
	"context"
	"time"
)

// Store is the database facade. The memory driver backs tests and
// single-process deployments; the redis driver backs durable ones.
type Store interface {
	Pinger
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides the key-value operations the record repository needs.
// SetNX is the linchpin: it must be atomic with the existence check, so
// that exactly one concurrent creator of a key wins.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetNX(ctx context.Context, key string, value []byte) (created bool, err error)
	Del(ctx context.Context, key string) (existed bool, err error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}
