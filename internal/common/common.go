// Released under an MIT license. See LICENSE.

// Package common defines common interfaces.
package common

import (
	"fmt"

	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
)

type Stringer = fmt.Stringer

// String returns the string value for a cell. Cells that are not stringers
// are described by their type name.
func String(c cell.I) string {
	if c == nil {
		return "nil"
	}

	b, ok := c.(Stringer)
	if !ok {
		return "<" + c.Name() + ">"
	}

	return b.String()
}
