// Released under an MIT license. See LICENSE.

package num

import (
	"testing"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		text    string
		literal string
		float   bool
	}{
		{"42", "42", false},
		{"-7", "-7", false},
		{"3.5", "3.5", true},
		{"2e3", "2000.0", true},
	} {
		c, ok := Parse(tc.text)
		if !ok {
			t.Fatalf("%s: not parsed", tc.text)
		}

		if IsFloat(c) != tc.float {
			t.Fatalf("%s: float mismatch", tc.text)
		}

		if got := c.(interface{ Literal() string }).Literal(); got != tc.literal {
			t.Fatalf("%s: expected %s, got %s", tc.text, tc.literal, got)
		}
	}

	if _, ok := Parse("abc"); ok {
		t.Fatal("abc should not parse as a number")
	}
}

func TestMixedEquality(t *testing.T) {
	if !NewInt(2).Equal(NewFloat(2)) {
		t.Fatal("2 should equal 2.0")
	}

	if NewInt(2).Equal(NewInt(3)) {
		t.Fatal("2 should not equal 3")
	}
}
