// Released under an MIT license. See LICENSE.

package commands

import (
	"unicode/utf8"

	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/type/boolean"
	"github.com/michaelmacinnis/ply/internal/common/type/dict"
	"github.com/michaelmacinnis/ply/internal/common/type/list"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/null"
	"github.com/michaelmacinnis/ply/internal/common/type/num"
	"github.com/michaelmacinnis/ply/internal/common/type/pair"
	"github.com/michaelmacinnis/ply/internal/common/type/set"
	"github.com/michaelmacinnis/ply/internal/common/type/str"
	"github.com/michaelmacinnis/ply/internal/common/type/vec"
	"github.com/michaelmacinnis/ply/internal/common/validate"
)

func collections(r *native.Registry) {
	r.Plain("assoc", 3, -1, assoc)
	r.Plain("concat", 0, -1, concat)
	r.Plain("conj", 1, -1, conj)
	r.Plain("cons", 2, 2, cons)
	r.Plain("contains?", 2, 2, contains)
	r.Plain("count", 1, 1, count)
	r.Plain("disj", 2, -1, disj)
	r.Plain("dissoc", 2, -1, dissoc)
	r.Plain("drop", 2, 2, drop)
	r.Plain("empty?", 1, 1, empty)
	r.Plain("first", 1, 1, first)
	r.Plain("get", 2, 3, get)
	r.Plain("hash-map", 0, -1, hashMap)
	r.Plain("hash-set", 0, -1, hashSet)
	r.Plain("keys", 1, 1, keys)
	r.Plain("last", 1, 1, last)
	r.Plain("list", 0, -1, func(args []cell.I) (cell.I, error) {
		return list.New(args...), nil
	})
	r.Plain("merge", 0, -1, merge)
	r.Plain("nth", 2, 3, nth)
	r.Plain("range", 1, 3, span)
	r.Plain("rest", 1, 1, rest)
	r.Plain("reverse", 1, 1, reverse)
	r.Plain("second", 1, 1, second)
	r.Plain("take", 2, 2, take)
	r.Plain("vals", 1, 1, vals)
	r.Plain("vec", 1, 1, func(args []cell.I) (cell.I, error) {
		return vec.New(items(args[0])...), nil
	})
	r.Plain("vector", 0, -1, func(args []cell.I) (cell.I, error) {
		return vec.New(args...), nil
	})
}

func assoc(args []cell.I) (cell.I, error) {
	if len(args)%2 == 0 {
		return nil, fault.New(fault.KindRuntime, "assoc needs key, value pairs")
	}

	if vec.Is(args[0]) {
		items := append([]cell.I{}, vec.To(args[0]).Slice()...)

		for i := 1; i < len(args); i += 2 {
			n := validate.Int(args[i])
			if n < 0 || n > int64(len(items)) {
				return nil, fault.New(fault.KindRuntime, "index %d out of range", n)
			}

			if n == int64(len(items)) {
				items = append(items, args[i+1])
			} else {
				items[n] = args[i+1]
			}
		}

		return vec.New(items...), nil
	}

	d := mapping(args[0])

	for i := 1; i < len(args); i += 2 {
		d = d.Assoc(args[i], args[i+1])
	}

	return d, nil
}

func concat(args []cell.I) (cell.I, error) {
	var all []cell.I

	for _, c := range args {
		all = append(all, items(c)...)
	}

	return list.New(all...), nil
}

// conj adds to a collection where it is cheapest: the front of a list,
// the end of a vector.
func conj(args []cell.I) (cell.I, error) {
	c, xs := args[0], args[1:]

	switch {
	case null.Is(c) || pair.Is(c):
		for _, x := range xs {
			c = pair.Cons(x, c)
		}

		return c, nil

	case vec.Is(c):
		return vec.To(c).Append(xs...), nil

	case set.Is(c):
		return set.To(c).Conj(xs...), nil

	case dict.Is(c):
		d := dict.To(c)

		for _, x := range xs {
			kv := validate.Seq(x)
			validate.Expect(len(kv) == 2, "[key value]", x) //nolint:gomnd

			d = d.Assoc(kv[0], kv[1])
		}

		return d, nil
	}

	validate.Expect(false, "collection", c)

	return nil, nil
}

func cons(args []cell.I) (cell.I, error) {
	return pair.Cons(args[0], list.New(items(args[1])...)), nil
}

func contains(args []cell.I) (cell.I, error) {
	c, k := args[0], args[1]

	switch {
	case dict.Is(c):
		_, ok := dict.To(c).Get(k)

		return boolean.Bool(ok), nil

	case set.Is(c):
		return boolean.Bool(set.To(c).Contains(k)), nil

	case str.Is(c):
		return boolean.Bool(contained(str.To(c).String(), validate.String(k))), nil
	}

	for _, v := range items(c) {
		if v.Equal(k) {
			return boolean.True, nil
		}
	}

	return boolean.False, nil
}

func count(args []cell.I) (cell.I, error) {
	switch {
	case str.Is(args[0]):
		return num.NewInt(int64(utf8.RuneCountInString(str.To(args[0]).String()))), nil
	case pair.Is(args[0]):
		return num.NewInt(list.Length(args[0])), nil
	}

	return num.NewInt(int64(len(items(args[0])))), nil
}

func disj(args []cell.I) (cell.I, error) {
	validate.Expect(set.Is(args[0]), "set", args[0])

	s := set.To(args[0])
	for _, k := range args[1:] {
		s = s.Disj(k)
	}

	return s, nil
}

func dissoc(args []cell.I) (cell.I, error) {
	d := mapping(args[0])
	for _, k := range args[1:] {
		d = d.Dissoc(k)
	}

	return d, nil
}

func drop(args []cell.I) (cell.I, error) {
	n := validate.Int(args[0])
	if pair.Is(args[1]) {
		return list.Tail(args[1], n), nil
	}

	all := items(args[1])

	return like(args[1], all[clamp(n, len(all)):]), nil
}

func empty(args []cell.I) (cell.I, error) {
	if str.Is(args[0]) {
		return boolean.Bool(str.To(args[0]).String() == ""), nil
	}

	return boolean.Bool(len(items(args[0])) == 0), nil
}

func first(args []cell.I) (cell.I, error) {
	return index(items(args[0]), 0), nil
}

func get(args []cell.I) (cell.I, error) {
	c, k := args[0], args[1]

	var fallback cell.I = null.Nil
	if len(args) == 3 { //nolint:gomnd
		fallback = args[2]
	}

	switch {
	case dict.Is(c):
		if v, ok := dict.To(c).Get(k); ok {
			return v, nil
		}

	case set.Is(c):
		if set.To(c).Contains(k) {
			return k, nil
		}

	case vec.Is(c):
		if v, ok := vec.To(c).Get(validate.Int(k)); ok {
			return v, nil
		}
	}

	return fallback, nil
}

func hashMap(args []cell.I) (cell.I, error) {
	if len(args)%2 != 0 {
		return nil, fault.New(fault.KindRuntime, "hash-map needs key, value pairs")
	}

	return dict.New(args...), nil
}

func hashSet(args []cell.I) (cell.I, error) {
	return set.New(args...), nil
}

func keys(args []cell.I) (cell.I, error) {
	return vec.New(mapping(args[0]).Keys()...), nil
}

func last(args []cell.I) (cell.I, error) {
	all := items(args[0])

	return index(all, len(all)-1), nil
}

func merge(args []cell.I) (cell.I, error) {
	d := dict.New()

	for _, c := range args {
		if null.Is(c) {
			continue
		}

		validate.Dict(c).Each(func(k, v cell.I) {
			d = d.Assoc(k, v)
		})
	}

	return d, nil
}

func nth(args []cell.I) (cell.I, error) {
	all, n := items(args[0]), validate.Int(args[1])
	if n >= 0 && n < int64(len(all)) {
		return all[n], nil
	}

	if len(args) == 3 { //nolint:gomnd
		return args[2], nil
	}

	return nil, fault.New(fault.KindRuntime, "index %d out of range", n)
}

func rest(args []cell.I) (cell.I, error) {
	if pair.Is(args[0]) {
		return list.Tail(args[0], 1), nil
	}

	all := items(args[0])
	if len(all) == 0 {
		return like(args[0], nil), nil
	}

	return like(args[0], all[1:]), nil
}

func reverse(args []cell.I) (cell.I, error) {
	if pair.Is(args[0]) {
		return list.Reverse(args[0]), nil
	}

	all := items(args[0])
	r := make([]cell.I, len(all))

	for i, v := range all {
		r[len(all)-1-i] = v
	}

	return like(args[0], r), nil
}

func second(args []cell.I) (cell.I, error) {
	return index(items(args[0]), 1), nil
}

// span implements range. The result is a vector.
//
//	(range end)  (range start end)  (range start end step)
func span(args []cell.I) (cell.I, error) {
	start, end, step := int64(0), int64(0), int64(1)

	switch len(args) {
	case 1:
		end = validate.Int(args[0])
	case 2: //nolint:gomnd
		start, end = validate.Int(args[0]), validate.Int(args[1])
	default:
		start, end, step = validate.Int(args[0]), validate.Int(args[1]), validate.Int(args[2])
	}

	if step == 0 {
		return nil, fault.New(fault.KindRuntime, "range step must not be zero")
	}

	var r []cell.I
	for i := start; (step > 0 && i < end) || (step < 0 && i > end); i += step {
		r = append(r, num.NewInt(i))
	}

	return vec.New(r...), nil
}

func take(args []cell.I) (cell.I, error) {
	n, all := validate.Int(args[0]), items(args[1])

	return like(args[1], all[:clamp(n, len(all))]), nil
}

func vals(args []cell.I) (cell.I, error) {
	return vec.New(mapping(args[0]).Values()...), nil
}

func clamp(n int64, length int) int {
	switch {
	case n < 0:
		return 0
	case n > int64(length):
		return length
	}

	return int(n)
}

func entry(k, v cell.I) cell.I {
	return vec.New(k, v)
}

func index(all []cell.I, i int) cell.I {
	if i < 0 || i >= len(all) {
		return null.Nil
	}

	return all[i]
}

// items returns the elements of any collection. Map entries are [k v].
func items(c cell.I) []cell.I {
	return validate.Items(c, entry)
}

// like returns elements as the same kind of sequence as c: a list for
// lists and nil, a vector for everything else.
func like(c cell.I, elements []cell.I) cell.I {
	if null.Is(c) || pair.Is(c) {
		return list.New(elements...)
	}

	return vec.New(elements...)
}

// mapping returns c as a map. Nil is the empty map.
func mapping(c cell.I) *dict.T {
	if null.Is(c) {
		return dict.New()
	}

	return validate.Dict(c)
}
