// Package redis provides a kv.Store backed by a Redis instance, for
// deployments where the session must be shared across front instances.
// Concurrent writers race with last-write-wins semantics, same as the
// file backend.
package redis

import (
	"context"

	"github.com/kjunlab/authfront/internal/kv"
	rdb "github.com/redis/go-redis/v9"
)

type Redis struct {
	c      *rdb.Client
	prefix string
}

// New creates a Redis-backed store. prefix namespaces the session keys.
func New(addr string, db int, prefix string) kv.Store {
	return &Redis{
		c:      rdb.NewClient(&rdb.Options{Addr: addr, DB: db}),
		prefix: prefix,
	}
}

func (r *Redis) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

func (r *Redis) Get(k string) ([]byte, bool) {
	b, err := r.c.Get(context.Background(), r.key(k)).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (r *Redis) Set(k string, v []byte) error {
	// 0 TTL: sessions are cleared explicitly, never expired.
	return r.c.Set(context.Background(), r.key(k), v, 0).Err()
}

func (r *Redis) Delete(k string) error {
	return r.c.Del(context.Background(), r.key(k)).Err()
}
