package ubjpath

import (
	"errors"
	"fmt"
	"sync"
)

// cache is a pull-through cache of parsed path segments, keyed by
// the raw path string.
type cache[K, V any] struct {
	m sync.Map
}

var errNotFound = errors.New("key not found in cache")

// Get returns the cached value for k, or errNotFound if absent.
func (c *cache[K, V]) Get(k K) (ret V, err error) {
	ent, ok := c.m.Load(k)
	if !ok {
		var zero V
		return zero, errNotFound
	}
	v, ok := ent.(V)
	if !ok {
		panic(fmt.Errorf("unexpected value %v (%T) stored in cache", ent, ent))
	}
	return v, nil
}

// Set stores v under k.
func (c *cache[K, V]) Set(k K, v V) {
	c.m.Store(k, v)
}
