// Released under an MIT license. See LICENSE.

// Package match compiles ply patterns and matches them against values.
//
// Matching is a deterministic recursive descent. No pattern kind is
// ambiguous so there is never any backtracking, except across the
// alternatives of an alternation, where the bindings made by a failed
// alternative are discarded.
package match

import (
	"sort"
	"strings"

	"github.com/michaelmacinnis/ply/internal/ast"
	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/interface/seq"
	"github.com/michaelmacinnis/ply/internal/common/type/dict"
	"github.com/michaelmacinnis/ply/internal/common/type/list"
)

// Binding associates a name with a matched value.
type Binding struct {
	Name  string
	Value cell.I
}

// Bindings are kept in the order they were made. Later bindings shadow
// earlier bindings for the same name.
type Bindings []Binding

// Context applies value transforms on behalf of a pattern.
type Context interface {
	Transform(fn ast.Expr, v cell.I) (cell.I, error)
}

// P is a compiled pattern.
type P interface {
	// Match returns true if v matches, appending any bindings to b.
	Match(ctx Context, v cell.I, b *Bindings) (bool, error)

	// Names returns the sorted names bound by a successful match.
	Names() []string
}

type (
	alternation struct{ alts []P }
	literal     struct{ value cell.I }
	transform   struct {
		inner P
		fns   []ast.Expr
	}
	variable struct{ name string }
	wildcard struct{}
)

type mapping struct {
	as   string
	keys []cell.I
	pats []P
}

// Vector matches lists and vectors element by element.
type Vector struct {
	as    string
	items []P
	rest  P // Nil when the pattern has a fixed length.
}

// Add appends the binding of name to v.
func (b *Bindings) Add(name string, v cell.I) {
	*b = append(*b, Binding{Name: name, Value: v})
}

// Lookup returns the most recent binding for name.
func (b Bindings) Lookup(name string) (cell.I, bool) {
	for i := len(b) - 1; i >= 0; i-- {
		if b[i].Name == name {
			return b[i].Value, true
		}
	}

	return nil, false
}

func (p *alternation) Match(ctx Context, v cell.I, b *Bindings) (bool, error) {
	mark := len(*b)

	for _, alt := range p.alts {
		ok, err := alt.Match(ctx, v, b)
		if err != nil || ok {
			return ok, err
		}

		*b = (*b)[:mark]
	}

	return false, nil
}

func (p *alternation) Names() []string {
	return p.alts[0].Names()
}

func (p *literal) Match(_ Context, v cell.I, _ *Bindings) (bool, error) {
	return p.value.Equal(v), nil
}

func (*literal) Names() []string {
	return nil
}

func (p *mapping) Match(ctx Context, v cell.I, b *Bindings) (bool, error) {
	d, ok := v.(*dict.T)
	if !ok {
		return false, nil
	}

	for i, k := range p.keys {
		e, ok := d.Get(k)
		if !ok {
			return false, nil
		}

		ok, err := p.pats[i].Match(ctx, e, b)
		if err != nil || !ok {
			return false, err
		}
	}

	if p.as != "" {
		b.Add(p.as, v)
	}

	return true, nil
}

func (p *mapping) Names() []string {
	return names(p.as, p.pats...)
}

func (p *transform) Match(ctx Context, v cell.I, b *Bindings) (bool, error) {
	for _, fn := range p.fns {
		var err error

		v, err = ctx.Transform(fn, v)
		if err != nil {
			return false, err
		}
	}

	return p.inner.Match(ctx, v, b)
}

func (p *transform) Names() []string {
	return p.inner.Names()
}

func (p *variable) Match(_ Context, v cell.I, b *Bindings) (bool, error) {
	b.Add(p.name, v)

	return true, nil
}

func (p *variable) Names() []string {
	return []string{p.name}
}

// Arity returns the minimum number of elements matched and whether more
// are allowed.
func (p *Vector) Arity() (int, bool) {
	return len(p.items), p.rest != nil
}

// Match returns true if v is a list or vector that matches p.
func (p *Vector) Match(ctx Context, v cell.I, b *Bindings) (bool, error) {
	items, ok := seq.Items(v)
	if !ok {
		return false, nil
	}

	return p.MatchItems(ctx, v, items, b)
}

// MatchItems matches the elements of whole, already extracted as items.
func (p *Vector) MatchItems(ctx Context, whole cell.I, items []cell.I, b *Bindings) (bool, error) {
	n := len(p.items)
	if len(items) < n || (p.rest == nil && len(items) != n) {
		return false, nil
	}

	for i, item := range p.items {
		ok, err := item.Match(ctx, items[i], b)
		if err != nil || !ok {
			return false, err
		}
	}

	if p.rest != nil {
		ok, err := p.rest.Match(ctx, list.New(items[n:]...), b)
		if err != nil || !ok {
			return false, err
		}
	}

	if p.as != "" {
		b.Add(p.as, whole)
	}

	return true, nil
}

// Names returns the sorted names bound by p.
func (p *Vector) Names() []string {
	all := p.items
	if p.rest != nil {
		all = append(all[:len(all):len(all)], p.rest)
	}

	return names(p.as, all...)
}

func (wildcard) Match(Context, cell.I, *Bindings) (bool, error) {
	return true, nil
}

func (wildcard) Names() []string {
	return nil
}

// Any returns a pattern matching any of ps. Every alternative must bind
// the same names.
func Any(at ast.Expr, ps ...P) (P, error) {
	if len(ps) == 1 {
		return ps[0], nil
	}

	want := strings.Join(ps[0].Names(), " ")

	for _, p := range ps[1:] {
		if got := strings.Join(p.Names(), " "); got != want {
			return nil, fault.At(fault.New(
				fault.KindMatch,
				"alternatives must bind the same names: [%s] and [%s]",
				want, got,
			), at.Where())
		}
	}

	return &alternation{alts: ps}, nil
}

func names(as string, ps ...P) []string {
	seen := map[string]bool{}
	if as != "" {
		seen[as] = true
	}

	for _, p := range ps {
		for _, n := range p.Names() {
			seen[n] = true
		}
	}

	all := make([]string, 0, len(seen))
	for n := range seen {
		all = append(all, n)
	}

	sort.Strings(all)

	return all
}
