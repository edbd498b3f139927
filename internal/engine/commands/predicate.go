// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/interface/truth"
	"github.com/michaelmacinnis/ply/internal/common/type/atom"
	"github.com/michaelmacinnis/ply/internal/common/type/boolean"
	"github.com/michaelmacinnis/ply/internal/common/type/chn"
	"github.com/michaelmacinnis/ply/internal/common/type/closure"
	"github.com/michaelmacinnis/ply/internal/common/type/dict"
	"github.com/michaelmacinnis/ply/internal/common/type/kw"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/null"
	"github.com/michaelmacinnis/ply/internal/common/type/num"
	"github.com/michaelmacinnis/ply/internal/common/type/pair"
	"github.com/michaelmacinnis/ply/internal/common/type/promise"
	"github.com/michaelmacinnis/ply/internal/common/type/scope"
	"github.com/michaelmacinnis/ply/internal/common/type/set"
	"github.com/michaelmacinnis/ply/internal/common/type/str"
	"github.com/michaelmacinnis/ply/internal/common/type/sym"
	"github.com/michaelmacinnis/ply/internal/common/type/vec"
	"github.com/michaelmacinnis/ply/internal/common/validate"
)

func predicates(r *native.Registry) {
	for name, is := range map[string]func(cell.I) bool{
		"atom?":    atom.Is,
		"boolean?": boolean.Is,
		"chan?":    chn.Is,
		"float?":   num.IsFloat,
		"fn?":      isFunction,
		"int?":     num.IsInt,
		"keyword?": kw.Is,
		"list?":    pair.Is,
		"macro?":   closure.IsMacro,
		"map?":     dict.Is,
		"nil?":     null.Is,
		"number?":  num.Is,
		"promise?": promise.Is,
		"scope?":   scope.Is,
		"set?":     set.Is,
		"some?":    func(c cell.I) bool { return !null.Is(c) },
		"string?":  str.Is,
		"symbol?":  sym.Is,
		"vector?":  vec.Is,
	} {
		r.Plain(name, 1, 1, test(is))
	}

	r.Plain("even?", 1, 1, test(func(c cell.I) bool { return validate.Int(c)%2 == 0 }))
	r.Plain("identical?", 2, 2, func(args []cell.I) (cell.I, error) {
		return boolean.Bool(args[0] == args[1]), nil
	})
	r.Plain("neg?", 1, 1, test(func(c cell.I) bool { return validate.Float(c) < 0 }))
	r.Plain("not", 1, 1, test(func(c cell.I) bool { return !truth.Value(c) }))
	r.Plain("odd?", 1, 1, test(func(c cell.I) bool { return validate.Int(c)%2 != 0 }))
	r.Plain("pos?", 1, 1, test(func(c cell.I) bool { return validate.Float(c) > 0 }))
	r.Plain("type", 1, 1, func(args []cell.I) (cell.I, error) {
		return kw.New(typeName(args[0])), nil
	})
	r.Plain("zero?", 1, 1, test(func(c cell.I) bool { return validate.Float(c) == 0 }))
}

func isFunction(c cell.I) bool {
	return closure.Is(c) || native.Is(c)
}

func test(is func(cell.I) bool) native.Simple {
	return func(args []cell.I) (cell.I, error) {
		return boolean.Bool(is(args[0])), nil
	}
}

func typeName(c cell.I) string {
	switch {
	case null.Is(c):
		return "nil"
	case pair.Is(c):
		return "list"
	case dict.Is(c):
		return "map"
	case isFunction(c):
		return "fn"
	}

	return c.Name()
}
