// Released under an MIT license. See LICENSE.

package commands

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/interface/literal"
	"github.com/michaelmacinnis/ply/internal/common/type/boolean"
	"github.com/michaelmacinnis/ply/internal/common/type/dict"
	"github.com/michaelmacinnis/ply/internal/common/type/errmap"
	"github.com/michaelmacinnis/ply/internal/common/type/kw"
	"github.com/michaelmacinnis/ply/internal/common/type/list"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/null"
	"github.com/michaelmacinnis/ply/internal/common/type/num"
	"github.com/michaelmacinnis/ply/internal/common/type/str"
	"github.com/michaelmacinnis/ply/internal/common/type/vec"
)

type host struct {
	out bytes.Buffer
}

func (*host) Expand(_ context.Context, v cell.I, _ bool) (cell.I, error) {
	return v, nil
}

func (*host) Gensym(prefix string) string {
	return prefix + "1"
}

func (*host) Load(context.Context, string) (cell.I, error) {
	return null.Nil, nil
}

func (h *host) Output() io.Writer {
	return &h.out
}

func (*host) Value(_ context.Context, v cell.I) (cell.I, error) {
	return v, nil
}

type caller struct{}

func (caller) Background() native.Caller {
	return caller{}
}

func (caller) Call(fn cell.I, args ...cell.I) (cell.I, error) {
	return native.To(fn).Apply(caller{}, args)
}

func (caller) Context() context.Context {
	return context.Background()
}

type example struct {
	fn     string
	args   []cell.I
	result string
}

func call(t *testing.T, r *native.Registry, fn string, args ...cell.I) (cell.I, error) {
	t.Helper()

	n, ok := r.Lookup(fn)
	if !ok {
		t.Fatalf("%s is not registered", fn)
	}

	return n.Apply(caller{}, args)
}

func ints(ns ...int64) []cell.I {
	out := make([]cell.I, len(ns))
	for i, n := range ns {
		out[i] = num.NewInt(n)
	}

	return out
}

func registry(t *testing.T) (*native.Registry, *host) {
	t.Helper()

	h := &host{}
	r := native.NewRegistry()
	Register(r, h)

	return r, h
}

func run(t *testing.T, r *native.Registry, tests []example) {
	t.Helper()

	for _, tc := range tests {
		v, err := call(t, r, tc.fn, tc.args...)
		if err != nil {
			t.Errorf("(%s ...): unexpected error %v", tc.fn, err)

			continue
		}

		if got := literal.String(v); got != tc.result {
			t.Errorf("(%s ...): expected %s, got %s", tc.fn, tc.result, got)
		}
	}
}

func TestArithmetic(t *testing.T) {
	r, _ := registry(t)

	run(t, r, []example{
		{"+", nil, "0"},
		{"+", ints(1, 2, 3), "6"},
		{"+", []cell.I{num.NewInt(1), num.NewFloat(2.5)}, "3.5"},
		{"-", ints(5), "-5"},
		{"*", ints(2, 3, 4), "24"},
		{"/", ints(6, 3), "2"},
		{"/", ints(7, 2), "3.5"},
		{"mod", ints(-7, 3), "2"},
		{"quot", ints(-7, 2), "-3"},
		{"max", ints(3, 9, 1), "9"},
		{"min", ints(3, 9, 1), "1"},
		{"inc", ints(41), "42"},
	})
}

func TestDivisionByZero(t *testing.T) {
	r, _ := registry(t)

	_, err := call(t, r, "/", ints(1, 0)...)
	if err == nil || !strings.Contains(err.Error(), "division by zero") {
		t.Fatalf("expected division by zero, got %v", err)
	}
}

func TestTypeErrorNamesNative(t *testing.T) {
	r, _ := registry(t)

	_, err := call(t, r, "+", num.NewInt(1), str.New("a"))

	f := fault.From(err)
	if f.Kind != fault.KindType || f.Fn != "+" {
		t.Fatalf("expected a type fault naming +, got %v", err)
	}
}

func TestArityIsChecked(t *testing.T) {
	r, _ := registry(t)

	_, err := call(t, r, "cons", num.NewInt(1))
	if fault.From(err).Kind != fault.KindArity {
		t.Fatalf("expected an arity fault, got %v", err)
	}
}

func TestCollections(t *testing.T) {
	r, _ := registry(t)

	xs := list.New(ints(1, 2, 3)...)
	v := vec.New(ints(1, 2, 3)...)
	m := dict.New(kw.New("a"), num.NewInt(1))

	run(t, r, []example{
		{"first", []cell.I{xs}, "1"},
		{"rest", []cell.I{v}, "[2 3]"},
		{"take", []cell.I{num.NewInt(2), xs}, "(1 2)"},
		{"drop", []cell.I{num.NewInt(5), v}, "[]"},
		{"reverse", []cell.I{v}, "[3 2 1]"},
		{"count", []cell.I{m}, "1"},
		{"get", []cell.I{m, kw.New("b"), num.NewInt(0)}, "0"},
		{"assoc", []cell.I{m, kw.New("b"), num.NewInt(2)}, "{:a 1 :b 2}"},
		{"range", ints(3), "[0 1 2]"},
		{"empty?", []cell.I{str.New("")}, "true"},
		{"nth", []cell.I{v, num.NewInt(1)}, "2"},
		{"count", []cell.I{xs}, "3"},
		{"rest", []cell.I{xs}, "(2 3)"},
		{"drop", []cell.I{num.NewInt(2), xs}, "(3)"},
		{"drop", []cell.I{num.NewInt(9), xs}, "()"},
		{"reverse", []cell.I{xs}, "(3 2 1)"},
	})
}

func TestRelational(t *testing.T) {
	r, _ := registry(t)

	run(t, r, []example{
		{"<", ints(1, 2, 3), "true"},
		{"<", ints(1, 3, 2), "false"},
		{"=", []cell.I{num.NewInt(1), num.NewFloat(1)}, "true"},
		{"compare", []cell.I{str.New("a"), str.New("b")}, "-1"},
	})

	if _, err := call(t, r, "<", num.NewInt(1), str.New("a")); err == nil {
		t.Fatal("comparing a number and a string should fail")
	}
}

func TestText(t *testing.T) {
	r, _ := registry(t)

	run(t, r, []example{
		{"str", []cell.I{str.New("a"), num.NewInt(1), null.Nil, kw.New("k")}, `"a1:k"`},
		{"str/split", []cell.I{str.New("a,b"), str.New(",")}, `["a" "b"]`},
		{"str/join", []cell.I{str.New("-"), vec.New(ints(1, 2)...)}, `"1-2"`},
		{"str/upper", []cell.I{str.New("ply")}, `"PLY"`},
		{"str/glob-match?", []cell.I{str.New("*.ply"), str.New("boot.ply")}, "true"},
		{"str/unescape", []cell.I{str.New(`a\tb`)}, `"a\tb"`},
		{"str/index-of", []cell.I{str.New("héllo"), str.New("l")}, "2"},
		{"str/index-of", []cell.I{str.New("héllo"), str.New("z")}, "nil"},
	})
}

func TestHigherOrder(t *testing.T) {
	r, _ := registry(t)

	inc, _ := r.Lookup("inc")
	add, _ := r.Lookup("+")
	odd, _ := r.Lookup("odd?")

	run(t, r, []example{
		{"map", []cell.I{inc, vec.New(ints(1, 2)...)}, "[2 3]"},
		{"map", []cell.I{add, vec.New(ints(1, 2)...), vec.New(ints(10, 20, 30)...)}, "[11 22]"},
		{"filter", []cell.I{odd, list.New(ints(1, 2, 3)...)}, "[1 3]"},
		{"reduce", []cell.I{add, vec.New(ints(1, 2, 3)...)}, "6"},
		{"reduce", []cell.I{add, num.NewInt(10), vec.New()}, "10"},
		{"apply", []cell.I{add, num.NewInt(1), vec.New(ints(2, 3)...)}, "6"},
		{"sort", []cell.I{vec.New(ints(3, 1, 2)...)}, "[1 2 3]"},
	})
}

func TestFailures(t *testing.T) {
	r, _ := registry(t)

	_, err := call(t, r, "error", str.New("boom"), num.NewInt(7))

	f := fault.From(err)
	if f.Kind != fault.KindUser || f.Msg != "boom" || !num.NewInt(7).Equal(f.Payload) {
		t.Fatalf("expected a user fault with payload, got %#v", f)
	}

	v, err := call(t, r, "err", str.New("soft"))
	if err != nil || !errmap.Is(v) {
		t.Fatalf("expected an error map, got %v, %v", v, err)
	}

	if m, _ := call(t, r, "error-message", v); !str.New("soft").Equal(m) {
		t.Fatalf("expected soft, got %v", m)
	}

	if b, _ := call(t, r, "error?", v); !boolean.True.Equal(b) {
		t.Fatal("error? should recognize an error map")
	}
}

func TestPrint(t *testing.T) {
	r, h := registry(t)

	if _, err := call(t, r, "println", str.New("a"), num.NewInt(1)); err != nil {
		t.Fatal(err)
	}

	if _, err := call(t, r, "prn", str.New("a")); err != nil {
		t.Fatal(err)
	}

	if got := h.out.String(); got != "a 1\n\"a\"\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
