// Released under an MIT license. See LICENSE.

/*
Ply is a small Lisp for building data pipelines.

	(defn square [x] (* x x))
	([1 2 3] ||> square |> (reduce +))

Code is read as s-expressions. Pipelines thread a value through stages
with |>, skip stages once a value is an error with |>?, and map a stage
over a collection in parallel with ||>. Tasks, promises, channels and
scopes provide structured concurrency.

Ply is released under an MIT-style license.
*/
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/type/str"
	"github.com/michaelmacinnis/ply/internal/common/type/vec"
	"github.com/michaelmacinnis/ply/internal/engine"
	"github.com/michaelmacinnis/ply/internal/system/config"
	"github.com/michaelmacinnis/ply/internal/system/options"
	"github.com/michaelmacinnis/ply/internal/ui"
)

type invocation struct {
	args        []string
	command     string
	config      string
	interactive bool
	quiet       bool
	script      string
}

func main() {
	options.Parse()

	os.Exit(run(invocation{
		args:        options.Args(),
		command:     options.Command(),
		config:      options.Config(),
		interactive: options.Interactive(),
		quiet:       options.Quiet(),
		script:      options.Script(),
	}, os.Stdin, os.Stdout, os.Stderr))
}

func run(inv invocation, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load(inv.config)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)

		return 1
	}

	level, _ := cfg.Level()
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	e, err := engine.New(engine.Options{
		Logger:    log,
		MaxDepth:  cfg.MaxExpansionDepth,
		NoPrelude: !*cfg.Prelude,
		Quiet:     inv.quiet || !*cfg.Warnings,
		Stdout:    stdout,
		Workers:   cfg.Workers,
	})
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)

		return 1
	}

	args := make([]cell.I, len(inv.args))
	for i, a := range inv.args {
		args[i] = str.New(a)
	}

	e.Global().Define("*args*", vec.New(args...))

	if inv.interactive {
		if err := ui.Run(e, cfg.History); err != nil {
			fmt.Fprintln(stderr, "error:", err)

			return 1
		}

		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	name, text := "command", inv.command

	switch {
	case inv.script != "":
		b, err := os.ReadFile(inv.script)
		if err != nil {
			fmt.Fprintln(stderr, "error:", err)

			return 1
		}

		name, text = inv.script, string(b)

	case inv.command == "":
		b, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintln(stderr, "error:", err)

			return 1
		}

		name, text = "stdin", string(b)
	}

	if _, err := e.EvalString(ctx, name, text); err != nil {
		fmt.Fprintln(stderr, "error:", err)

		return 1
	}

	return 0
}
