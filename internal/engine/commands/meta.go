// Released under an MIT license. See LICENSE.

package commands

import (
	"fmt"

	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/interface/literal"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/null"
	"github.com/michaelmacinnis/ply/internal/common/type/sym"
	"github.com/michaelmacinnis/ply/internal/common/validate"
)

func meta(r *native.Registry, h Host) {
	r.Aware("eval", 1, 1, func(c native.Caller, args []cell.I) (cell.I, error) {
		return h.Value(c.Context(), args[0])
	})
	r.Plain("gensym", 0, 1, func(args []cell.I) (cell.I, error) {
		prefix := ""
		if len(args) > 0 {
			prefix = validate.Name(args[0])
		}

		return sym.New(h.Gensym(prefix)), nil
	})
	r.Aware("load", 1, 1, func(c native.Caller, args []cell.I) (cell.I, error) {
		return h.Load(c.Context(), validate.String(args[0]))
	})
	r.Aware("macroexpand", 1, 1, func(c native.Caller, args []cell.I) (cell.I, error) {
		return h.Expand(c.Context(), args[0], false)
	})
	r.Aware("macroexpand-all", 1, 1, func(c native.Caller, args []cell.I) (cell.I, error) {
		return h.Expand(c.Context(), args[0], true)
	})

	r.Plain("print", 0, -1, func(args []cell.I) (cell.I, error) {
		_, err := fmt.Fprint(h.Output(), joined(args, " ", display))

		return null.Nil, err
	})
	r.Plain("println", 0, -1, func(args []cell.I) (cell.I, error) {
		_, err := fmt.Fprintln(h.Output(), joined(args, " ", display))

		return null.Nil, err
	})
	r.Plain("prn", 0, -1, func(args []cell.I) (cell.I, error) {
		_, err := fmt.Fprintln(h.Output(), joined(args, " ", literal.String))

		return null.Nil, err
	})
}

// display is how print shows a value: strings without quotes, everything
// else as it would be read.
func display(c cell.I) string {
	if null.Is(c) {
		return "nil"
	}

	return plain(c)
}
