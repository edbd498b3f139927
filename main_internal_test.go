// Released under an MIT license. See LICENSE.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func settings(t *testing.T, text string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestCommand(t *testing.T) {
	var out, errs bytes.Buffer

	status := run(invocation{
		args:    []string{"x", "y"},
		command: `(println (count *args*) (first *args*))`,
		config:  settings(t, ""),
	}, nil, &out, &errs)

	if status != 0 || out.String() != "2 x\n" {
		t.Fatalf("unexpected result %d %q %q", status, out.String(), errs.String())
	}
}

func TestScriptHaltsOnError(t *testing.T) {
	script := filepath.Join(t.TempDir(), "fail.ply")

	err := os.WriteFile(script, []byte("(println 1)\n(/ 1 0)\n(println 2)\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	var out, errs bytes.Buffer

	status := run(invocation{config: settings(t, ""), script: script}, nil, &out, &errs)
	if status != 1 {
		t.Fatalf("expected status 1, got %d", status)
	}

	if out.String() != "1\n" {
		t.Fatalf("evaluation should stop at the error, got %q", out.String())
	}

	if !strings.Contains(errs.String(), "fail.ply:2") {
		t.Fatalf("expected a located error, got %q", errs.String())
	}
}

func TestStdin(t *testing.T) {
	var out, errs bytes.Buffer

	in := strings.NewReader("(def x 1)\n(def x 2)\n(println x)\n")

	status := run(invocation{config: settings(t, "warnings: false\n")}, in, &out, &errs)
	if status != 0 || out.String() != "2\n" {
		t.Fatalf("unexpected result %d %q %q", status, out.String(), errs.String())
	}

	if strings.Contains(errs.String(), "redefines") {
		t.Fatalf("warnings were disabled, got %q", errs.String())
	}
}

func TestWarningsAreLogged(t *testing.T) {
	var out, errs bytes.Buffer

	status := run(invocation{
		command: `(def x 1) (def x 2)`,
		config:  settings(t, ""),
	}, nil, &out, &errs)

	log := errs.String()
	if status != 0 || !strings.Contains(log, "redefines variable") || !strings.Contains(log, "name=x") {
		t.Fatalf("expected a warning, got %d %q", status, log)
	}
}

func TestBadConfig(t *testing.T) {
	var out, errs bytes.Buffer

	if status := run(invocation{config: settings(t, "bogus: 1\n")}, nil, &out, &errs); status != 1 {
		t.Fatalf("expected status 1, got %d", status)
	}
}

func TestExamples(t *testing.T) {
	scripts, err := filepath.Glob(filepath.Join("examples", "*.ply"))
	if err != nil {
		t.Fatal(err)
	}

	if len(scripts) == 0 {
		t.Fatal("no examples found")
	}

	for _, script := range scripts {
		t.Run(filepath.Base(script), func(t *testing.T) {
			var out, errs bytes.Buffer

			status := run(invocation{config: settings(t, ""), script: script}, nil, &out, &errs)
			if status != 0 {
				t.Fatalf("exit status %d: %s", status, errs.String())
			}

			if out.Len() == 0 {
				t.Fatal("expected output")
			}
		})
	}
}
