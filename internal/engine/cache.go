// Released under an MIT license. See LICENSE.

package engine

import (
	"sync"

	"github.com/golang/groupcache/lru"
)

const compiled = 4096

// A cache holds compiled patterns keyed by the expression they were
// compiled from. Macro expansions create new expressions each time they
// are evaluated so the cache is bounded.
type cache struct {
	sync.Mutex
	entries *lru.Cache
}

func newCache() *cache {
	return &cache{entries: lru.New(compiled)}
}

func (c *cache) Load(k interface{}) (interface{}, bool) {
	c.Lock()
	defer c.Unlock()

	return c.entries.Get(k)
}

func (c *cache) Store(k, v interface{}) {
	c.Lock()
	defer c.Unlock()

	c.entries.Add(k, v)
}
