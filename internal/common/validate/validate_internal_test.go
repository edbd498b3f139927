// Released under an MIT license. See LICENSE.

package validate

import (
	"testing"

	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/type/num"
	"github.com/michaelmacinnis/ply/internal/common/type/str"
	"github.com/michaelmacinnis/ply/internal/common/type/vec"
)

func TestArity(t *testing.T) {
	tests := []struct {
		n, min, max int
		msg         string
	}{
		{1, 1, 1, ""},
		{2, 1, 1, "f: expected 1 argument, passed 2"},
		{0, 2, 2, "f: expected 2 arguments, passed 0"},
		{0, 1, -1, "f: expected at least 1 argument, passed 0"},
		{5, 1, 3, "f: expected at most 3 arguments, passed 5"},
		{7, 0, -1, ""},
	}

	for _, tt := range tests {
		err := Arity("f", tt.n, tt.min, tt.max)

		if tt.msg == "" {
			if err != nil {
				t.Errorf("unexpected error %v", err)
			}

			continue
		}

		if err == nil || err.Error() != tt.msg {
			t.Errorf("expected %q, got %v", tt.msg, err)
		}
	}
}

func TestRecoverConvertsMismatch(t *testing.T) {
	run := func() (err error) {
		defer Recover("str/upper", &err)

		String(num.NewInt(1))

		return nil
	}

	err := run()
	if err == nil {
		t.Fatal("expected a type fault")
	}

	f := fault.From(err)
	if f.Kind != fault.KindType || f.Fn != "str/upper" {
		t.Fatalf("unexpected fault %#v", f)
	}
}

func TestAccessors(t *testing.T) {
	if String(str.New("x")) != "x" {
		t.Fatal("String")
	}

	if Float(num.NewInt(2)) != 2.0 {
		t.Fatal("Float should accept integers")
	}

	if n := len(Seq(vec.New(num.NewInt(1), num.NewInt(2)))); n != 2 {
		t.Fatalf("Seq returned %d items", n)
	}

	if len(Seq(nil)) != 0 {
		t.Fatal("Seq(nil) should be empty")
	}
}
