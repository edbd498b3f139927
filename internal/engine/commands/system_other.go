// Released under an MIT license. See LICENSE.

//go:build !unix

package commands

import (
	"github.com/michaelmacinnis/ply/internal/common/type/native"
)

// The os natives are only available on unix systems.
func system(*native.Registry) {}
