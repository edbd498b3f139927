// Released under an MIT license. See LICENSE.

// Package num provides ply's integer and float types.
package num

import (
	"strconv"

	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
)

const (
	intName   = "integer"
	floatName = "float"
)

// Int (num) wraps Go's int64 type.
type Int int64

// Float (num) wraps Go's float64 type.
type Float float64

// NewInt creates a new integer cell.
func NewInt(i int64) cell.I {
	v := Int(i)

	return &v
}

// NewFloat creates a new float cell.
func NewFloat(f float64) cell.I {
	v := Float(f)

	return &v
}

// Parse converts the text s to an integer or float cell.
func Parse(s string) (cell.I, bool) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewInt(i), true
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return NewFloat(f), true
	}

	return nil, false
}

// Equal returns true if c is a number with the same value as i.
// Integers and floats with the same value are equal.
func (i *Int) Equal(c cell.I) bool {
	switch c := c.(type) {
	case *Int:
		return *i == *c
	case *Float:
		return float64(*i) == float64(*c)
	}

	return false
}

// Literal returns the literal representation of i.
func (i *Int) Literal() string {
	return i.String()
}

// Name returns the type name for integers.
func (*Int) Name() string {
	return intName
}

func (i *Int) String() string {
	return strconv.FormatInt(int64(*i), 10)
}

// Equal returns true if c is a number with the same value as f.
func (f *Float) Equal(c cell.I) bool {
	switch c := c.(type) {
	case *Int:
		return float64(*f) == float64(*c)
	case *Float:
		return *f == *c
	}

	return false
}

// Literal returns the literal representation of f.
func (f *Float) Literal() string {
	return f.String()
}

// Name returns the type name for floats.
func (*Float) Name() string {
	return floatName
}

func (f *Float) String() string {
	s := strconv.FormatFloat(float64(*f), 'g', -1, 64)

	for _, r := range s {
		if r == '.' || r == 'e' || r == 'N' || r == 'I' {
			return s
		}
	}

	return s + ".0"
}

// Is returns true if c is an integer or a float.
func Is(c cell.I) bool {
	switch c.(type) {
	case *Int, *Float:
		return true
	}

	return false
}

// IsInt returns true if c is an integer.
func IsInt(c cell.I) bool {
	_, ok := c.(*Int)

	return ok
}

// IsFloat returns true if c is a float.
func IsFloat(c cell.I) bool {
	_, ok := c.(*Float)

	return ok
}

// ToInt returns the integer value of c; Otherwise it panics.
func ToInt(c cell.I) int64 {
	switch c := c.(type) {
	case *Int:
		return int64(*c)
	case *Float:
		return int64(*c)
	}

	panic("not a number")
}

// ToFloat returns the float value of c; Otherwise it panics.
func ToFloat(c cell.I) float64 {
	switch c := c.(type) {
	case *Int:
		return float64(*c)
	case *Float:
		return float64(*c)
	}

	panic("not a number")
}
