// Released under an MIT license. See LICENSE.

// Package hash provides ply's name to value mapping type.
package hash

import (
	"sort"
	"sync"

	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
)

// T (hash) maps names to values. Readers share the lock; writers hold it
// exclusively.
type T struct {
	sync.RWMutex
	m map[string]cell.I
}

type hash = T

// New creates a new hash.
func New() *hash {
	return &hash{m: map[string]cell.I{}}
}

// Get retrieves the value associated with the name k in the hash h.
func (h *hash) Get(k string) (cell.I, bool) {
	if h == nil {
		return nil, false
	}

	h.RLock()
	defer h.RUnlock()

	v, ok := h.m[k]

	return v, ok
}

// Names returns the sorted names in the hash h.
func (h *hash) Names() []string {
	h.RLock()
	defer h.RUnlock()

	names := make([]string, 0, len(h.m))
	for k := range h.m {
		names = append(names, k)
	}

	sort.Strings(names)

	return names
}

// Set associates the name k with the cell v in the hash h.
func (h *hash) Set(k string, v cell.I) {
	h.Lock()
	defer h.Unlock()

	h.m[k] = v
}

// Replace associates the name k with the cell v and returns the value it
// replaced, if any. The swap happens under a single write lock.
func (h *hash) Replace(k string, v cell.I) (cell.I, bool) {
	h.Lock()
	defer h.Unlock()

	prev, ok := h.m[k]
	h.m[k] = v

	return prev, ok
}
