// Released under an MIT license. See LICENSE.

package commands

import (
	"math"

	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/num"
	"github.com/michaelmacinnis/ply/internal/common/validate"
)

// Integer arithmetic stays integral until a float is involved.

func arithmetic(r *native.Registry) {
	r.Plain("+", 0, -1, add)
	r.Plain("-", 1, -1, sub)
	r.Plain("*", 0, -1, mul)
	r.Plain("/", 1, -1, div)
	r.Plain("abs", 1, 1, abs)
	r.Plain("dec", 1, 1, dec)
	r.Plain("inc", 1, 1, inc)
	r.Plain("max", 1, -1, maximum)
	r.Plain("min", 1, -1, minimum)
	r.Plain("mod", 2, 2, mod)
	r.Plain("quot", 2, 2, quot)
}

func abs(args []cell.I) (cell.I, error) {
	v := validate.Number(args[0])
	if num.IsInt(v) {
		if i := num.ToInt(v); i < 0 {
			return num.NewInt(-i), nil
		}

		return v, nil
	}

	return num.NewFloat(math.Abs(num.ToFloat(v))), nil
}

func add(args []cell.I) (cell.I, error) {
	return fold(args, 0, func(a, b int64) int64 {
		return a + b
	}, func(a, b float64) float64 {
		return a + b
	})
}

func dec(args []cell.I) (cell.I, error) {
	return sub([]cell.I{args[0], num.NewInt(1)})
}

func div(args []cell.I) (cell.I, error) {
	if len(args) == 1 {
		args = []cell.I{num.NewInt(1), args[0]}
	}

	for _, v := range args[1:] {
		if validate.Float(v) == 0 {
			return nil, divisionByZero()
		}
	}

	integral := true
	for _, v := range args {
		integral = integral && num.IsInt(v)
	}

	if integral {
		q := num.ToInt(args[0])
		exact := true

		for _, v := range args[1:] {
			d := num.ToInt(v)
			if q%d != 0 {
				exact = false

				break
			}

			q /= d
		}

		if exact {
			return num.NewInt(q), nil
		}
	}

	q := num.ToFloat(args[0])
	for _, v := range args[1:] {
		q /= num.ToFloat(v)
	}

	return num.NewFloat(q), nil
}

func divisionByZero() error {
	return fault.New(fault.KindRuntime, "division by zero")
}

// fold combines numbers left to right starting with identity. Integers
// are combined with i until a float is seen; from then on f is used.
func fold(
	args []cell.I, identity int64,
	i func(a, b int64) int64, f func(a, b float64) float64,
) (cell.I, error) {
	acc := num.NewInt(identity)

	for n, v := range args {
		validate.Number(v)

		if n == 0 {
			acc = v

			continue
		}

		if num.IsInt(acc) && num.IsInt(v) {
			acc = num.NewInt(i(num.ToInt(acc), num.ToInt(v)))

			continue
		}

		acc = num.NewFloat(f(num.ToFloat(acc), num.ToFloat(v)))
	}

	return acc, nil
}

func inc(args []cell.I) (cell.I, error) {
	return add([]cell.I{args[0], num.NewInt(1)})
}

func maximum(args []cell.I) (cell.I, error) {
	return extreme(args, 1)
}

func minimum(args []cell.I) (cell.I, error) {
	return extreme(args, -1)
}

func extreme(args []cell.I, sign int) (cell.I, error) {
	best := validate.Number(args[0])

	for _, v := range args[1:] {
		if compare(validate.Number(v), best)*sign > 0 {
			best = v
		}
	}

	return best, nil
}

func mod(args []cell.I) (cell.I, error) {
	a, b := validate.Int(args[0]), validate.Int(args[1])
	if b == 0 {
		return nil, divisionByZero()
	}

	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}

	return num.NewInt(m), nil
}

func mul(args []cell.I) (cell.I, error) {
	if len(args) == 0 {
		return num.NewInt(1), nil
	}

	return fold(args, 1, func(a, b int64) int64 {
		return a * b
	}, func(a, b float64) float64 {
		return a * b
	})
}

func quot(args []cell.I) (cell.I, error) {
	a, b := validate.Int(args[0]), validate.Int(args[1])
	if b == 0 {
		return nil, divisionByZero()
	}

	return num.NewInt(a / b), nil
}

func sub(args []cell.I) (cell.I, error) {
	if len(args) == 1 {
		args = []cell.I{num.NewInt(0), args[0]}
	}

	return fold(args, 0, func(a, b int64) int64 {
		return a - b
	}, func(a, b float64) float64 {
		return a - b
	})
}
