// Released under an MIT license. See LICENSE.

// Package dict provides ply's map type.
package dict

import (
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/interface/literal"
)

const name = "map"

// T (dict) is an immutable map that remembers insertion order.
// Keys are compared by their literal representation.
type T struct {
	m *linkedhashmap.Map
}

type dict = T

type entry struct {
	k cell.I
	v cell.I
}

// New creates a dict from alternating keys and values.
// A trailing key without a value is associated with nil.
func New(kvs ...cell.I) *T {
	d := &dict{m: linkedhashmap.New()}

	for i := 0; i < len(kvs); i += 2 {
		var v cell.I
		if i+1 < len(kvs) {
			v = kvs[i+1]
		}

		d.put(kvs[i], v)
	}

	return d
}

// Assoc returns a new dict with k associated with v.
func (d *dict) Assoc(k, v cell.I) *T {
	c := d.copy()
	c.put(k, v)

	return c
}

// Dissoc returns a new dict without the key k.
func (d *dict) Dissoc(k cell.I) *T {
	c := d.copy()
	c.m.Remove(key(k))

	return c
}

// Each calls f with every key and value in insertion order.
func (d *dict) Each(f func(k, v cell.I)) {
	it := d.m.Iterator()
	for it.Next() {
		e := it.Value().(entry)
		f(e.k, e.v)
	}
}

// Equal returns true if c is a dict with the same associations as d.
func (d *dict) Equal(c cell.I) bool {
	o, ok := c.(*dict)
	if !ok || o.Len() != d.Len() {
		return false
	}

	equal := true

	d.Each(func(k, v cell.I) {
		if !equal {
			return
		}

		w, found := o.Get(k)
		equal = found && equalValues(v, w)
	})

	return equal
}

// Get returns the value associated with k.
func (d *dict) Get(k cell.I) (cell.I, bool) {
	v, ok := d.m.Get(key(k))
	if !ok {
		return nil, false
	}

	return v.(entry).v, true
}

// Keys returns the keys of d in insertion order.
func (d *dict) Keys() []cell.I {
	keys := make([]cell.I, 0, d.Len())

	d.Each(func(k, _ cell.I) {
		keys = append(keys, k)
	})

	return keys
}

// Len returns the number of associations in d.
func (d *dict) Len() int {
	return d.m.Size()
}

// Literal returns the literal representation of the dict d.
func (d *dict) Literal() string {
	var b strings.Builder

	b.WriteByte('{')

	first := true

	d.Each(func(k, v cell.I) {
		if !first {
			b.WriteByte(' ')
		}

		first = false

		b.WriteString(literal.String(k))
		b.WriteByte(' ')
		b.WriteString(literal.String(v))
	})

	b.WriteByte('}')

	return b.String()
}

// Name returns the name of the dict type.
func (*dict) Name() string {
	return name
}

func (d *dict) String() string {
	return d.Literal()
}

// Values returns the values of d in insertion order.
func (d *dict) Values() []cell.I {
	values := make([]cell.I, 0, d.Len())

	d.Each(func(_, v cell.I) {
		values = append(values, v)
	})

	return values
}

func (d *dict) copy() *dict {
	c := &dict{m: linkedhashmap.New()}

	d.Each(func(k, v cell.I) {
		c.put(k, v)
	})

	return c
}

func (d *dict) put(k, v cell.I) {
	d.m.Put(key(k), entry{k: k, v: v})
}

// Is returns true if c is a *T.
func Is(c cell.I) bool {
	_, ok := c.(*dict)

	return ok
}

// To returns a *T if c is a *T; Otherwise it panics.
func To(c cell.I) *T {
	if t, ok := c.(*dict); ok {
		return t
	}

	panic("not a " + name)
}

func equalValues(a, b cell.I) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Equal(b)
}

func key(k cell.I) string {
	if k == nil {
		return "nil"
	}

	return k.Name() + "\x00" + literal.String(k)
}
