// Released under an MIT license. See LICENSE.

// Package commands provides ply's native standard library.
//
// Natives take an evaluated argument list and return a value or an error.
// Argument counts are checked by the registry; argument types are checked
// by the accessors in validate, whose failures the registry turns into
// type errors naming the native.
package commands

import (
	"context"
	"io"

	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
)

// Host is what the meta and I/O natives need from the interpreter.
type Host interface {
	Expand(ctx context.Context, v cell.I, all bool) (cell.I, error)
	Gensym(prefix string) string
	Load(ctx context.Context, path string) (cell.I, error)
	Output() io.Writer
	Value(ctx context.Context, v cell.I) (cell.I, error)
}

// Register adds every native in the standard library to r.
func Register(r *native.Registry, h Host) {
	arithmetic(r)
	atoms(r)
	collections(r)
	database(r)
	failures(r)
	higher(r)
	meta(r, h)
	predicates(r)
	relational(r)
	system(r)
	text(r)
}
