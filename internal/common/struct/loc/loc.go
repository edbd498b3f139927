// Released under an MIT license. See LICENSE.

// Package loc provides the type used to track the source of tokens and expressions.
// It is also used to report where an evaluation error occurred.
package loc

import (
	"strconv"
)

// T (loc) is a lexical location.
type T struct {
	Char int    // Character position (column).
	Line int    // Line number (row).
	Name string // Label for the source of this token.
	Text string // The source line at this location.
}

type loc = T

// Known returns true if l refers to an actual source position.
func (l loc) Known() bool {
	return l.Line > 0
}

func (l loc) String() string {
	if !l.Known() {
		return l.Name
	}

	return l.Name + ":" + strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Char)
}
