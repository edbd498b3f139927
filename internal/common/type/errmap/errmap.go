// Released under an MIT license. See LICENSE.

// Package errmap provides ply's structured error values.
//
// A structured error is an ordinary map carrying the :error key. It is
// failure by convention only: nothing but error? and the |>? pipe treat it
// specially.
package errmap

import (
	"github.com/michaelmacinnis/ply/internal/common"
	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/type/dict"
	"github.com/michaelmacinnis/ply/internal/common/type/kw"
	"github.com/michaelmacinnis/ply/internal/common/type/num"
	"github.com/michaelmacinnis/ply/internal/common/type/str"
)

// Keys used in structured errors.
//
//nolint:gochecknoglobals
var (
	Key    = kw.New("error")
	Kind   = kw.New("kind")
	Fn     = kw.New("fn")
	Line   = kw.New("line")
	Column = kw.New("column")
	Source = kw.New("source")
	Value  = kw.New("value")
)

// New creates a structured error with the message msg.
func New(msg string) *dict.T {
	return dict.New(Key, str.New(msg))
}

// From converts err into a structured error.
func From(err error) *dict.T {
	f := fault.From(err)

	d := New(f.Message()).Assoc(Kind, kw.New(f.Kind.String()))

	if f.Fn != "" {
		d = d.Assoc(Fn, str.New(f.Fn))
	}

	if f.Loc.Known() {
		d = d.Assoc(Line, num.NewInt(int64(f.Loc.Line)))
		d = d.Assoc(Column, num.NewInt(int64(f.Loc.Char)))

		if f.Loc.Text != "" {
			d = d.Assoc(Source, str.New(f.Loc.Text))
		}
	}

	if f.Payload != nil {
		d = d.Assoc(Value, f.Payload)
	}

	return d
}

// Is returns true if c is a structured error.
func Is(c cell.I) bool {
	d, ok := c.(*dict.T)
	if !ok {
		return false
	}

	_, ok = d.Get(Key)

	return ok
}

// Message returns the message carried by the structured error c.
func Message(c cell.I) string {
	v, _ := dict.To(c).Get(Key)

	return common.String(v)
}
