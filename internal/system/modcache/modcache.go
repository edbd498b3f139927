// Released under an MIT license. See LICENSE.

// Package modcache caches parsed source files for load.
//
// Entries are keyed by path, modification time and size so an edited file
// is parsed again. Requests are served one at a time by a goroutine that
// owns the cache.
package modcache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/groupcache/lru"

	"github.com/michaelmacinnis/ply/internal/ast"
)

// DefaultSize is the number of modules kept when no size is configured.
const DefaultSize = 64

// Parser converts the text of the file named by path into expressions.
type Parser func(path, text string) ([]ast.Expr, error)

// T (modcache) is an LRU cache of parsed modules.
type T struct {
	entries  *lru.Cache
	requestq chan func()
}

type modcache = T

type key struct {
	path  string
	mtime int64
	size  int64
}

// New creates a cache holding at most size modules.
func New(size int) *T {
	if size <= 0 {
		size = DefaultSize
	}

	c := &modcache{
		entries:  lru.New(size),
		requestq: make(chan func(), 1),
	}

	go c.service()

	return c
}

// Len returns the number of cached modules.
func (c *modcache) Len() int {
	resultq := make(chan int)

	c.requestq <- func() {
		resultq <- c.entries.Len()
		close(resultq)
	}

	return <-resultq
}

// Load returns the expressions in the file at path, parsing it with parse
// unless an unchanged copy is already cached.
func (c *modcache) Load(path string, parse Parser) ([]ast.Expr, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	k := key{path: path, mtime: info.ModTime().UnixNano(), size: info.Size()}

	if es, ok := c.get(k); ok {
		return es, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	es, err := parse(path, string(b))
	if err != nil {
		return nil, err
	}

	c.requestq <- func() {
		c.entries.Add(k, es)
	}

	return es, nil
}

func (c *modcache) get(k key) ([]ast.Expr, bool) {
	resultq := make(chan []ast.Expr, 1)

	c.requestq <- func() {
		if v, ok := c.entries.Get(k); ok {
			resultq <- v.([]ast.Expr)
		}

		close(resultq)
	}

	es, ok := <-resultq

	return es, ok
}

func (c *modcache) service() {
	for {
		(<-c.requestq)()
	}
}
