// Released under an MIT license. See LICENSE.

package commands

import (
	"strings"

	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/type/boolean"
	"github.com/michaelmacinnis/ply/internal/common/type/kw"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/num"
	"github.com/michaelmacinnis/ply/internal/common/type/str"
	"github.com/michaelmacinnis/ply/internal/common/validate"
)

func relational(r *native.Registry) {
	r.Plain("=", 1, -1, eq)
	r.Plain("not=", 1, -1, ne)
	r.Plain("<", 1, -1, ordered(func(c int) bool { return c < 0 }))
	r.Plain("<=", 1, -1, ordered(func(c int) bool { return c <= 0 }))
	r.Plain(">", 1, -1, ordered(func(c int) bool { return c > 0 }))
	r.Plain(">=", 1, -1, ordered(func(c int) bool { return c >= 0 }))
	r.Plain("compare", 2, 2, func(args []cell.I) (cell.I, error) {
		return num.NewInt(int64(compare(args[0], args[1]))), nil
	})
}

// compare orders numbers, strings and keywords. Values of different kinds
// cannot be compared.
func compare(a, b cell.I) int {
	switch {
	case num.Is(a):
		validate.Expect(num.Is(b), "number", b)

		if num.IsInt(a) && num.IsInt(b) {
			x, y := num.ToInt(a), num.ToInt(b)

			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}

			return 0
		}

		x, y := num.ToFloat(a), num.ToFloat(b)

		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}

		return 0

	case str.Is(a):
		return strings.Compare(str.To(a).String(), validate.String(b))

	case kw.Is(a):
		validate.Expect(kw.Is(b), "keyword", b)

		return strings.Compare(kw.To(a).Text(), kw.To(b).Text())
	}

	validate.Expect(false, "number, string or keyword", a)

	return 0
}

func eq(args []cell.I) (cell.I, error) {
	for _, v := range args[1:] {
		if !args[0].Equal(v) {
			return boolean.False, nil
		}
	}

	return boolean.True, nil
}

func ne(args []cell.I) (cell.I, error) {
	v, _ := eq(args)

	return boolean.Bool(v == boolean.False), nil
}

func ordered(holds func(int) bool) native.Simple {
	return func(args []cell.I) (cell.I, error) {
		for i := 1; i < len(args); i++ {
			if !holds(compare(args[i-1], args[i])) {
				return boolean.False, nil
			}
		}

		return boolean.True, nil
	}
}
