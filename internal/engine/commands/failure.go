// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/type/boolean"
	"github.com/michaelmacinnis/ply/internal/common/type/errmap"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/null"
	"github.com/michaelmacinnis/ply/internal/common/type/str"
)

func failures(r *native.Registry) {
	r.Plain("err", 1, 2, structured)
	r.Plain("error", 1, 2, raise)
	r.Plain("error-message", 1, 1, func(args []cell.I) (cell.I, error) {
		if !errmap.Is(args[0]) {
			return null.Nil, nil
		}

		return str.New(errmap.Message(args[0])), nil
	})
	r.Plain("error?", 1, 1, func(args []cell.I) (cell.I, error) {
		return boolean.Bool(errmap.Is(args[0])), nil
	})
}

// raise fails with a user error. Raising a structured error reuses its
// message and carries the whole value.
//
//	(error "message")  (error "message" value)  (error structured-error)
func raise(args []cell.I) (cell.I, error) {
	if errmap.Is(args[0]) {
		return nil, fault.User(errmap.Message(args[0]), args[0])
	}

	var payload cell.I
	if len(args) > 1 {
		payload = args[1]
	}

	return nil, fault.User(plain(args[0]), payload)
}

// structured returns a structured error value without raising it.
func structured(args []cell.I) (cell.I, error) {
	e := errmap.New(plain(args[0]))
	if len(args) > 1 {
		e = e.Assoc(errmap.Value, args[1])
	}

	return e, nil
}
