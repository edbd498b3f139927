// Released under an MIT license. See LICENSE.

// Package boot provides the prelude evaluated by every new engine.
package boot

import _ "embed" // Blank import required by embed.

//go:embed boot.ply
var script string //nolint:gochecknoglobals

// Script returns the prelude for ply.
func Script() string {
	return script
}
