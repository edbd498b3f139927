// Released under an MIT license. See LICENSE.

package list

import (
	"testing"

	"github.com/michaelmacinnis/ply/internal/common/interface/literal"
	"github.com/michaelmacinnis/ply/internal/common/type/num"
	"github.com/michaelmacinnis/ply/internal/common/type/pair"
)

func TestAppendDoesNotModify(t *testing.T) {
	l := New(num.NewInt(1), num.NewInt(2))

	m := Append(l, num.NewInt(3))

	if Length(l) != 2 || Length(m) != 3 {
		t.Fatalf("unexpected lengths %d and %d", Length(l), Length(m))
	}

	if literal.String(m) != "(1 2 3)" {
		t.Fatalf("unexpected literal %s", literal.String(m))
	}
}

func TestEmptyList(t *testing.T) {
	if New() != pair.Null {
		t.Fatal("New() should be the empty list")
	}

	if literal.String(pair.Null) != "()" {
		t.Fatalf("unexpected literal %s", literal.String(pair.Null))
	}
}

func TestReverseAndTail(t *testing.T) {
	l := New(num.NewInt(1), num.NewInt(2), num.NewInt(3))

	if literal.String(Reverse(l)) != "(3 2 1)" {
		t.Fatalf("unexpected reverse %s", literal.String(Reverse(l)))
	}

	if literal.String(Tail(l, 1)) != "(2 3)" {
		t.Fatalf("unexpected tail %s", literal.String(Tail(l, 1)))
	}

	if Tail(l, 10) != pair.Null {
		t.Fatal("tail past the end should be empty")
	}
}
