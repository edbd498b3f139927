// Released under an MIT license. See LICENSE.

//go:build !sqlite

package commands

import (
	"github.com/michaelmacinnis/ply/internal/common/type/native"
)

// The db natives require building with the sqlite tag.
func database(*native.Registry) {}
