// Released under an MIT license. See LICENSE.

package options

import (
	"reflect"
	"testing"
)

func TestScript(t *testing.T) {
	parse([]string{"-q", "run.ply", "a", "b"}, true)

	if Script() != "run.ply" || !Quiet() || Interactive() {
		t.Fatalf("unexpected options: %q %v %v", Script(), Quiet(), Interactive())
	}

	if !reflect.DeepEqual(Args(), []string{"a", "b"}) {
		t.Fatalf("unexpected arguments %q", Args())
	}
}

func TestCommand(t *testing.T) {
	parse([]string{"-c", "(+ 1 2)", "--config=ply.yaml"}, true)

	if Command() != "(+ 1 2)" || Config() != "ply.yaml" || Interactive() {
		t.Fatalf("unexpected options: %q %q %v", Command(), Config(), Interactive())
	}
}

func TestInteractive(t *testing.T) {
	parse(nil, true)

	if !Interactive() {
		t.Fatal("a terminal with no script should be interactive")
	}

	parse(nil, false)

	if Interactive() {
		t.Fatal("piped input should not be interactive")
	}

	parse([]string{"-i"}, false)

	if !Interactive() {
		t.Fatal("-i should force interactive mode")
	}
}
