// Released under an MIT license. See LICENSE.

package dict

import (
	"testing"

	"github.com/michaelmacinnis/ply/internal/common/type/kw"
	"github.com/michaelmacinnis/ply/internal/common/type/num"
	"github.com/michaelmacinnis/ply/internal/common/type/str"
)

func TestAssocIsPersistent(t *testing.T) {
	d := New(kw.New("name"), str.New("Alice"))
	e := d.Assoc(kw.New("age"), num.NewInt(30))

	if d.Len() != 1 || e.Len() != 2 {
		t.Fatalf("unexpected sizes %d and %d", d.Len(), e.Len())
	}

	if _, ok := d.Get(kw.New("age")); ok {
		t.Fatal("original dict was modified")
	}
}

func TestInsertionOrderLiteral(t *testing.T) {
	d := New(kw.New("b"), num.NewInt(2), kw.New("a"), num.NewInt(1))

	if got := d.Literal(); got != "{:b 2 :a 1}" {
		t.Fatalf("unexpected literal %s", got)
	}
}

func TestKeysDistinguishTypes(t *testing.T) {
	d := New(str.New("1"), kw.New("string"), num.NewInt(1), kw.New("integer"))

	if d.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", d.Len())
	}

	v, _ := d.Get(num.NewInt(1))
	if !v.Equal(kw.New("integer")) {
		t.Fatalf("unexpected value %v", v)
	}
}

func TestEqualIgnoresOrder(t *testing.T) {
	a := New(kw.New("x"), num.NewInt(1), kw.New("y"), num.NewInt(2))
	b := New(kw.New("y"), num.NewInt(2), kw.New("x"), num.NewInt(1))

	if !a.Equal(b) {
		t.Fatal("dicts with the same associations should be equal")
	}

	if a.Equal(a.Dissoc(kw.New("x"))) {
		t.Fatal("dicts with different sizes should not be equal")
	}
}
