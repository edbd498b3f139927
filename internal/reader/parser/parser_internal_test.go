// Released under an MIT license. See LICENSE.

package parser

import (
	"testing"

	"github.com/michaelmacinnis/ply/internal/ast"
	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/type/kw"
	"github.com/michaelmacinnis/ply/internal/common/type/num"
	"github.com/michaelmacinnis/ply/internal/common/type/str"
	"github.com/michaelmacinnis/ply/internal/reader/lexer"
)

func parse(t *testing.T, text string) ([]ast.Expr, error) {
	t.Helper()

	return New(lexer.New(t.Name(), text).Token).Parse()
}

func one(t *testing.T, text string) ast.Expr {
	t.Helper()

	es, err := parse(t, text)
	if err != nil {
		t.Fatalf("%q: %v", text, err)
	}

	if len(es) != 1 {
		t.Fatalf("%q: expected 1 expression, got %d", text, len(es))
	}

	return es[0]
}

func TestAtoms(t *testing.T) {
	if l, ok := one(t, "42").(*ast.Lit); !ok || !l.Value.Equal(num.NewInt(42)) {
		t.Fatal("expected integer literal")
	}

	if l, ok := one(t, ":name").(*ast.Lit); !ok || !kw.Named(l.Value, "name") {
		t.Fatal("expected keyword literal")
	}

	if l, ok := one(t, `"a\tb"`).(*ast.Lit); !ok || !l.Value.Equal(str.New("a\tb")) {
		t.Fatal("expected escapes to be processed")
	}

	if s, ok := one(t, "...rest").(*ast.Sym); !ok || s.Name != "...rest" {
		t.Fatal("expected symbol")
	}
}

func TestPrefixes(t *testing.T) {
	tests := map[string]string{
		"'x":      "(quote x)",
		"`(a ~b)": "(quasiquote (a (unquote b)))",
		"~@xs":    "(unquote-splice xs)",
		"@p":      "(deref p)",
	}

	for text, want := range tests {
		if got := one(t, text).String(); got != want {
			t.Errorf("%q: expected %s, got %s", text, want, got)
		}
	}
}

func TestPipeline(t *testing.T) {
	p, ok := one(t, "(-5 |>? validate |> (g 1))").(*ast.Pipeline)
	if !ok {
		t.Fatal("expected a pipeline")
	}

	if len(p.Stages) != 2 || p.Stages[0].Op != ast.Railway {
		t.Fatalf("unexpected stages %v", p.Stages)
	}
}

func TestIncomplete(t *testing.T) {
	for _, text := range []string{"(a", "[1 2", `"open`, "'"} {
		if _, err := parse(t, text); !Incomplete(err) {
			t.Errorf("%q: expected incomplete, got %v", text, err)
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	for _, text := range []string{")", "(a]", "[1 }"} {
		_, err := parse(t, text)
		if err == nil || Incomplete(err) {
			t.Errorf("%q: expected syntax error, got %v", text, err)

			continue
		}

		if f := fault.From(err); f.Kind != fault.KindSyntax || !f.Loc.Known() {
			t.Errorf("%q: unexpected fault %#v", text, f)
		}
	}
}
