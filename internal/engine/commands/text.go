// Released under an MIT license. See LICENSE.

package commands

import (
	"strings"
	"unicode/utf8"

	"github.com/michaelmacinnis/adapted"

	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/interface/literal"
	"github.com/michaelmacinnis/ply/internal/common/type/boolean"
	"github.com/michaelmacinnis/ply/internal/common/type/kw"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/null"
	"github.com/michaelmacinnis/ply/internal/common/type/num"
	"github.com/michaelmacinnis/ply/internal/common/type/str"
	"github.com/michaelmacinnis/ply/internal/common/type/sym"
	"github.com/michaelmacinnis/ply/internal/common/type/vec"
	"github.com/michaelmacinnis/ply/internal/common/validate"
)

func text(r *native.Registry) {
	r.Plain("keyword", 1, 1, func(args []cell.I) (cell.I, error) {
		return kw.New(validate.Name(args[0])), nil
	})
	r.Plain("name", 1, 1, func(args []cell.I) (cell.I, error) {
		return str.New(validate.Name(args[0])), nil
	})
	r.Plain("pr-str", 0, -1, func(args []cell.I) (cell.I, error) {
		return str.New(joined(args, " ", literal.String)), nil
	})
	r.Plain("str", 0, -1, func(args []cell.I) (cell.I, error) {
		return str.New(joined(args, "", plain)), nil
	})
	r.Plain("symbol", 1, 1, func(args []cell.I) (cell.I, error) {
		return sym.New(validate.Name(args[0])), nil
	})

	r.Plain("str/blank?", 1, 1, predicate(func(s string) bool {
		return strings.TrimSpace(s) == ""
	}))
	r.Plain("str/contains?", 2, 2, binary(contained))
	r.Plain("str/ends-with?", 2, 2, binary(strings.HasSuffix))
	r.Plain("str/glob-match?", 2, 2, globMatch)
	r.Plain("str/index-of", 2, 2, indexOf)
	r.Plain("str/join", 1, 2, join)
	r.Plain("str/lower", 1, 1, unary(strings.ToLower))
	r.Plain("str/quote", 1, 1, unary(adapted.CanonicalString))
	r.Plain("str/replace", 3, 3, func(args []cell.I) (cell.I, error) {
		s, old, with := validate.String(args[0]), validate.String(args[1]), validate.String(args[2])

		return str.New(strings.ReplaceAll(s, old, with)), nil
	})
	r.Plain("str/split", 2, 2, split)
	r.Plain("str/starts-with?", 2, 2, binary(strings.HasPrefix))
	r.Plain("str/trim", 1, 1, unary(strings.TrimSpace))
	r.Plain("str/unescape", 1, 1, unescape)
	r.Plain("str/upper", 1, 1, unary(strings.ToUpper))
}

func binary(f func(s, t string) bool) native.Simple {
	return func(args []cell.I) (cell.I, error) {
		return boolean.Bool(f(validate.String(args[0]), validate.String(args[1]))), nil
	}
}

func contained(s, substr string) bool {
	return strings.Contains(s, substr)
}

// globMatch matches a string against a shell-style pattern.
func globMatch(args []cell.I) (cell.I, error) {
	ok, err := adapted.Match(validate.String(args[0]), validate.String(args[1]))
	if err != nil {
		return nil, err
	}

	return boolean.Bool(ok), nil
}

func join(args []cell.I) (cell.I, error) {
	sep, coll := "", args[0]
	if len(args) == 2 { //nolint:gomnd
		sep, coll = validate.String(args[0]), args[1]
	}

	return str.New(joined(items(coll), sep, plain)), nil
}

func joined(cs []cell.I, sep string, f func(cell.I) string) string {
	var b strings.Builder

	for i, c := range cs {
		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(f(c))
	}

	return b.String()
}

// plain returns the text of strings and the printed form of anything
// else. Nil is the empty string.
func plain(c cell.I) string {
	switch {
	case null.Is(c):
		return ""
	case str.Is(c):
		return str.To(c).String()
	}

	return literal.String(c)
}

func predicate(f func(s string) bool) native.Simple {
	return func(args []cell.I) (cell.I, error) {
		return boolean.Bool(f(validate.String(args[0]))), nil
	}
}

func split(args []cell.I) (cell.I, error) {
	parts := strings.Split(validate.String(args[0]), validate.String(args[1]))

	r := make([]cell.I, len(parts))
	for i, p := range parts {
		r[i] = str.New(p)
	}

	return vec.New(r...), nil
}

func unary(f func(s string) string) native.Simple {
	return func(args []cell.I) (cell.I, error) {
		return str.New(f(validate.String(args[0]))), nil
	}
}

// unescape interprets backslash escapes in a string.
func unescape(args []cell.I) (cell.I, error) {
	s, err := adapted.ActualBytes(validate.String(args[0]))
	if err != nil {
		return nil, err
	}

	return str.New(s), nil
}

// indexOf returns the position, in characters, of the first occurrence of
// the second string in the first, or nil.
func indexOf(args []cell.I) (cell.I, error) {
	s := validate.String(args[0])

	i := strings.Index(s, validate.String(args[1]))
	if i < 0 {
		return null.Nil, nil
	}

	return num.NewInt(int64(utf8.RuneCountInString(s[:i]))), nil
}
