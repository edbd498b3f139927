// Released under an MIT license. See LICENSE.

package commands

import (
	"sort"

	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/interface/truth"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/null"
	"github.com/michaelmacinnis/ply/internal/common/type/vec"
)

// The higher-order natives call back into the evaluator through the
// native.Caller they are given.

func higher(r *native.Registry) {
	r.Aware("apply", 2, -1, apply)
	r.Aware("each", 2, 2, each)
	r.Aware("filter", 2, 2, filter)
	r.Aware("map", 2, -1, transform)
	r.Aware("reduce", 2, 3, reduce)
	r.Aware("sort", 1, 1, func(c native.Caller, args []cell.I) (cell.I, error) {
		return sorted(c, nil, args[0])
	})
	r.Aware("sort-by", 2, 2, func(c native.Caller, args []cell.I) (cell.I, error) {
		return sorted(c, args[0], args[1])
	})
}

// apply calls f with the leading arguments followed by the elements of
// the final collection.
func apply(c native.Caller, args []cell.I) (cell.I, error) {
	last := len(args) - 1
	all := append(append([]cell.I{}, args[1:last]...), items(args[last])...)

	return c.Call(args[0], all...)
}

// each calls f for every element for its side effects.
func each(c native.Caller, args []cell.I) (cell.I, error) {
	for _, v := range items(args[1]) {
		if _, err := c.Call(args[0], v); err != nil {
			return nil, err
		}
	}

	return null.Nil, nil
}

func filter(c native.Caller, args []cell.I) (cell.I, error) {
	var kept []cell.I

	for _, v := range items(args[1]) {
		ok, err := c.Call(args[0], v)
		if err != nil {
			return nil, err
		}

		if truth.Value(ok) {
			kept = append(kept, v)
		}
	}

	return vec.New(kept...), nil
}

// reduce folds f over a collection. Without an initial value the first
// element is used; reducing an empty collection then calls f with no
// arguments.
func reduce(c native.Caller, args []cell.I) (cell.I, error) {
	f := args[0]

	var (
		acc cell.I
		all []cell.I
	)

	if len(args) == 3 { //nolint:gomnd
		acc, all = args[1], items(args[2])
	} else {
		all = items(args[1])
		if len(all) == 0 {
			return c.Call(f)
		}

		acc, all = all[0], all[1:]
	}

	for _, v := range all {
		var err error

		acc, err = c.Call(f, acc, v)
		if err != nil {
			return nil, err
		}
	}

	return acc, nil
}

// sorted returns the elements of a collection in ascending order of key,
// or of the elements themselves if key is nil. The sort is stable.
func sorted(c native.Caller, key, coll cell.I) (cell.I, error) {
	all := items(coll)
	keys := all

	if key != nil {
		keys = make([]cell.I, len(all))

		for i, e := range all {
			k, err := c.Call(key, e)
			if err != nil {
				return nil, err
			}

			keys[i] = k
		}
	}

	order := make([]int, len(all))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(i, j int) bool {
		return compare(keys[order[i]], keys[order[j]]) < 0
	})

	r := make([]cell.I, len(all))
	for i, n := range order {
		r[i] = all[n]
	}

	return vec.New(r...), nil
}

// transform maps f over one or more collections, stopping at the end of
// the shortest.
func transform(c native.Caller, args []cell.I) (cell.I, error) {
	f, colls := args[0], make([][]cell.I, len(args)-1)

	n := -1
	for i, coll := range args[1:] {
		colls[i] = items(coll)

		if n < 0 || len(colls[i]) < n {
			n = len(colls[i])
		}
	}

	r := make([]cell.I, n)

	for i := 0; i < n; i++ {
		row := make([]cell.I, len(colls))
		for j := range colls {
			row[j] = colls[j][i]
		}

		v, err := c.Call(f, row...)
		if err != nil {
			return nil, err
		}

		r[i] = v
	}

	return vec.New(r...), nil
}

