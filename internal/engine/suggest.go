// Released under an MIT license. See LICENSE.

package engine

import (
	"sort"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const suggestions = 3

// suggest returns up to three of the candidates closest to name by edit
// distance. Candidates further than two edits, or a third of the length
// of name if that is more, are never suggested.
func suggest(name string, candidates []string) []string {
	limit := max(2, len(name)/3) //nolint:gomnd

	type scored struct {
		name     string
		distance int
	}

	dmp := diffmatchpatch.New()
	found := []scored{}

	for _, c := range candidates {
		if c == name || abs(len(c)-len(name)) > limit {
			continue
		}

		d := dmp.DiffLevenshtein(dmp.DiffMain(name, c, false))
		if d <= limit {
			found = append(found, scored{c, d})
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].distance != found[j].distance {
			return found[i].distance < found[j].distance
		}

		return found[i].name < found[j].name
	})

	if len(found) > suggestions {
		found = found[:suggestions]
	}

	names := make([]string, len(found))
	for i, s := range found {
		names[i] = s.name
	}

	return names
}

func abs(n int) int {
	if n < 0 {
		return -n
	}

	return n
}
