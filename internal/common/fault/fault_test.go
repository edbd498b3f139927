// Released under an MIT license. See LICENSE.

package fault

import (
	"errors"
	"strings"
	"testing"

	"github.com/michaelmacinnis/ply/internal/common/struct/loc"
)

func TestAtKeepsInnermostLocation(t *testing.T) {
	inner := loc.T{Name: "test", Line: 3, Char: 5}
	outer := loc.T{Name: "test", Line: 1, Char: 1}

	err := At(At(New(KindRuntime, "boom"), inner), outer)

	f := From(err)
	if f.Loc != inner {
		t.Fatalf("expected %v, got %v", inner, f.Loc)
	}

	if !strings.HasPrefix(err.Error(), "test:3:5: ") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestFromWrapsPlainErrors(t *testing.T) {
	f := From(errors.New("plain"))

	if f.Kind != KindRuntime || f.Msg != "plain" {
		t.Fatalf("unexpected fault %#v", f)
	}
}

func TestInNamesFunction(t *testing.T) {
	err := In(Arity("", "2 arguments", 3), "str/join")

	if got := err.Error(); got != "str/join: expected 2 arguments, passed 3" {
		t.Fatalf("unexpected message %q", got)
	}

	err = In(User("mine", nil), "error")
	if From(err).Fn != "" {
		t.Fatal("user faults should not be attributed to a native")
	}
}

func TestUndefinedSuggestions(t *testing.T) {
	err := Undefined("lenght", []string{"length"})

	if got := err.Error(); got != "undefined: lenght (did you mean length?)" {
		t.Fatalf("unexpected message %q", got)
	}
}
