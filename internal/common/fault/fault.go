// Released under an MIT license. See LICENSE.

// Package fault provides ply's fatal error type.
//
// A fault unwinds evaluation until it is intercepted by try, which turns it
// into an ordinary structured error value, or until it reaches the top level.
package fault

import (
	"errors"
	"fmt"
	"strings"

	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/struct/loc"
)

// Kind classifies a fault.
type Kind int

// Fault kinds.
const (
	KindRuntime Kind = iota
	KindUndefined
	KindType
	KindArity
	KindUser
	KindExpansion
	KindMatch
	KindSyntax
)

//nolint:gochecknoglobals
var kinds = [...]string{
	KindRuntime:   "runtime",
	KindUndefined: "undefined",
	KindType:      "type",
	KindArity:     "arity",
	KindUser:      "user",
	KindExpansion: "expansion",
	KindMatch:     "match",
	KindSyntax:    "syntax",
}

func (k Kind) String() string {
	if int(k) < len(kinds) {
		return kinds[k]
	}

	return "unknown"
}

// T (fault) is a fatal evaluation error.
type T struct {
	Kind        Kind
	Msg         string
	Fn          string   // Offending function, if known.
	Loc         loc.T    // Where the fault was raised.
	Suggestions []string // Likely names for undefined lookups.
	Payload     cell.I   // Value passed to error, if any.
}

type fault = T

// New creates a fault of kind k.
func New(k Kind, format string, args ...interface{}) *fault {
	return &fault{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// Arity creates an arity fault for the function fn.
func Arity(fn, expected string, passed int) *fault {
	return &fault{
		Kind: KindArity,
		Fn:   fn,
		Msg:  fmt.Sprintf("expected %s, passed %d", expected, passed),
	}
}

// Type creates a type fault for the function fn.
func Type(fn, expected string, actual cell.I) *fault {
	name := "nil"
	if actual != nil {
		name = actual.Name()
	}

	return &fault{
		Kind: KindType,
		Fn:   fn,
		Msg:  fmt.Sprintf("expected %s, got %s", expected, name),
	}
}

// Undefined creates an undefined-name fault.
func Undefined(name string, suggestions []string) *fault {
	return &fault{
		Kind:        KindUndefined,
		Msg:         "undefined: " + name,
		Suggestions: suggestions,
	}
}

// User creates a fault raised explicitly by ply code.
func User(msg string, payload cell.I) *fault {
	return &fault{Kind: KindUser, Msg: msg, Payload: payload}
}

// Error returns the text of the fault f.
func (f *fault) Error() string {
	if f.Loc.Known() {
		return f.Loc.String() + ": " + f.Message()
	}

	return f.Message()
}

// Message returns the text of the fault f without location information.
func (f *fault) Message() string {
	var b strings.Builder

	if f.Fn != "" {
		b.WriteString(f.Fn)
		b.WriteString(": ")
	}

	b.WriteString(f.Msg)

	if len(f.Suggestions) > 0 {
		b.WriteString(" (did you mean ")
		b.WriteString(strings.Join(f.Suggestions, ", "))
		b.WriteString("?)")
	}

	return b.String()
}

// At returns err as a fault located at l unless it already has a location.
// The innermost location wins. Faults are never modified in place as they
// may be shared by tasks awaiting the same promise.
func At(err error, l loc.T) error {
	if err == nil || !l.Known() {
		return err
	}

	f := From(err)
	if f.Loc.Known() {
		return f
	}

	c := *f
	c.Loc = l

	return &c
}

// From returns err as a fault, wrapping plain errors as runtime faults.
func From(err error) *fault {
	var f *fault
	if errors.As(err, &f) {
		return f
	}

	return &fault{Kind: KindRuntime, Msg: err.Error()}
}

// In returns err as a fault attributed to fn unless it already names one.
func In(err error, fn string) error {
	if err == nil {
		return nil
	}

	f := From(err)
	if f.Fn != "" || f.Kind == KindUndefined || f.Kind == KindUser {
		return f
	}

	c := *f
	c.Fn = fn

	return &c
}
