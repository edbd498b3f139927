// Released under an MIT license. See LICENSE.

package match

import (
	"strings"

	"github.com/michaelmacinnis/ply/internal/ast"
	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/type/kw"
)

const (
	arrow    = "=>"
	bar      = "|"
	ellipsis = "..."
)

// Compile converts the expression e into a pattern.
func Compile(e ast.Expr) (P, error) {
	switch e := e.(type) {
	case *ast.Sym:
		switch {
		case e.Name == "_":
			return wildcard{}, nil
		case strings.HasPrefix(e.Name, ellipsis), e.Name == "&",
			e.Name == arrow, e.Name == bar:
			return nil, invalid(e, "misplaced "+e.Name)
		}

		return &variable{name: e.Name}, nil

	case *ast.Lit:
		return &literal{value: e.Value}, nil

	case *ast.Vec:
		return CompileVector(e.Items)

	case *ast.Map:
		return compileMap(e)

	case *ast.List:
		return compileList(e)
	}

	return nil, invalid(e, "invalid pattern")
}

// CompileVector compiles items as the elements of a vector pattern.
//
//	[p1 p2 ...rest]    [p1 p2 & rest]    [p1 p2 :as whole]
//
// Any element may be followed by one or more "=> f" transforms.
func CompileVector(items []ast.Expr) (*Vector, error) {
	v := &Vector{}

	for i := 0; i < len(items); {
		e := items[i]

		if isKeyword(e, "as") {
			if i+2 != len(items) {
				return nil, invalid(e, ":as must be followed by a name and end the pattern")
			}

			name, err := symbol(items[i+1])
			if err != nil {
				return nil, err
			}

			v.as = name

			break
		}

		if v.rest != nil {
			return nil, invalid(e, "nothing but :as may follow a rest pattern")
		}

		if s, ok := e.(*ast.Sym); ok && (s.Name == "&" || strings.HasPrefix(s.Name, ellipsis)) {
			var (
				p   P
				err error
			)

			if s.Name == "&" {
				if i+1 >= len(items) {
					return nil, invalid(e, "& must be followed by a pattern")
				}

				p, i, err = element(items, i+1)
			} else {
				p, i, err = transforms(rest(s), items, i+1)
			}

			if err != nil {
				return nil, err
			}

			v.rest = p

			continue
		}

		p, next, err := element(items, i)
		if err != nil {
			return nil, err
		}

		v.items = append(v.items, p)
		i = next
	}

	return v, nil
}

func compileList(e *ast.List) (P, error) {
	head, _ := e.Head()

	switch head {
	case "quote":
		if len(e.Items) == 2 { //nolint:gomnd
			return &literal{value: ast.ToValue(e.Items[1])}, nil
		}

	case bar:
		alts := make([]P, 0, len(e.Items)-1)

		for _, item := range e.Items[1:] {
			p, err := Compile(item)
			if err != nil {
				return nil, err
			}

			alts = append(alts, p)
		}

		if len(alts) == 0 {
			return nil, invalid(e, "empty alternation")
		}

		return Any(e, alts...)
	}

	return nil, invalid(e, "invalid pattern")
}

// {:k p ...} matches maps holding every listed key. Extra keys are ignored.
func compileMap(e *ast.Map) (P, error) {
	m := &mapping{}
	items := e.Items

	for i := 0; i < len(items); {
		k, ok := items[i].(*ast.Lit)
		if !ok {
			return nil, invalid(items[i], "map pattern keys must be literals")
		}

		if i+1 >= len(items) {
			return nil, invalid(k, "map pattern key without a pattern")
		}

		if kw.Named(k.Value, "as") {
			if name, err := symbol(items[i+1]); err == nil {
				m.as = name
				i += 2

				continue
			}
		}

		p, next, err := element(items, i+1)
		if err != nil {
			return nil, err
		}

		m.keys = append(m.keys, k.Value)
		m.pats = append(m.pats, p)
		i = next
	}

	return m, nil
}

// element compiles items[i] and any transforms that follow it, returning
// the index of the next unconsumed item.
func element(items []ast.Expr, i int) (P, int, error) {
	p, err := Compile(items[i])
	if err != nil {
		return nil, 0, err
	}

	return transforms(p, items, i+1)
}

// transforms wraps p in the "=> f" transforms starting at items[i].
func transforms(p P, items []ast.Expr, i int) (P, int, error) {
	var fns []ast.Expr

	for i < len(items) {
		s, ok := items[i].(*ast.Sym)
		if !ok || s.Name != arrow {
			break
		}

		if i+1 >= len(items) {
			return nil, 0, invalid(s, "=> must be followed by a function")
		}

		fns = append(fns, items[i+1])
		i += 2
	}

	if len(fns) > 0 {
		p = &transform{inner: p, fns: fns}
	}

	return p, i, nil
}

func invalid(e ast.Expr, msg string) error {
	return fault.At(fault.New(fault.KindMatch, "%s: %s", msg, e), e.Where())
}

func isKeyword(e ast.Expr, name string) bool {
	l, ok := e.(*ast.Lit)

	return ok && kw.Named(l.Value, name)
}

func rest(s *ast.Sym) P {
	name := strings.TrimPrefix(s.Name, ellipsis)
	if name == "" || name == "_" {
		return wildcard{}
	}

	return &variable{name: name}
}

func symbol(e ast.Expr) (string, error) {
	s, ok := e.(*ast.Sym)
	if !ok {
		return "", invalid(e, "expected a name")
	}

	return s.Name, nil
}
