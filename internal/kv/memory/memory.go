// Package memory provides an in-process kv.Store backed by go-cache.
// Intended for development and tests; nothing survives a restart.
package memory

import (
	"github.com/kjunlab/authfront/internal/kv"
	gocache "github.com/patrickmn/go-cache"
)

type Mem struct{ c *gocache.Cache }

// New creates an in-memory store. Entries never expire.
func New() kv.Store {
	return &Mem{c: gocache.New(gocache.NoExpiration, 0)}
}

func (m *Mem) Get(k string) ([]byte, bool) {
	v, ok := m.c.Get(k)
	if !ok {
		return nil, false
	}
	b, _ := v.([]byte)
	return b, true
}

func (m *Mem) Set(k string, v []byte) error {
	m.c.Set(k, v, gocache.NoExpiration)
	return nil
}

func (m *Mem) Delete(k string) error {
	m.c.Delete(k)
	return nil
}
