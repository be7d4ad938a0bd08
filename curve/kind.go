package curve

import (
	"strings"

	"github.com/npillmayer/simplygraph/expr"
)

// Kind selects the sampling strategy for a curve.
type Kind uint8

const (
	Explicit   Kind = iota // y = f(x)
	Implicit               // lhs(x,y) = rhs(x,y)
	Parametric             // (x(t), y(t))
	Polar                  // r = f(theta)
)

func (k Kind) String() string {
	switch k {
	case Explicit:
		return "explicit"
	case Implicit:
		return "implicit"
	case Parametric:
		return "parametric"
	case Polar:
		return "polar"
	}
	return "unknown"
}

// Classify derives the curve kind from function text. The rules are applied
// in order:
//
//  1. the whole text is "(A, B)": the first '(' is closed by the last ')' and
//     there is exactly one comma directly inside them, and no '=' → Parametric
//  2. there is an '=' and the left-hand side is "r" → Polar
//  3. there is an '=' and either the identifier y occurs or the left-hand
//     side is empty → Implicit
//  4. anything else → Explicit
//
// Classify never fails; malformed text is reported when the curve is compiled.
func Classify(text string) Kind {
	s := strings.TrimSpace(text)
	if _, ok := splitPair(s); ok {
		return Parametric
	}
	lhs, _, ok := strings.Cut(s, "=")
	if !ok {
		return Explicit
	}
	lhs = strings.TrimSpace(lhs)
	if lhs == "r" {
		return Polar
	}
	if lhs == "" {
		return Implicit
	}
	for _, name := range expr.Names(s) {
		if name == "y" {
			return Implicit
		}
	}
	return Explicit
}

// splitPair finds the separating comma of a parenthesized pair "(A, B)" and
// returns its byte offset within s.
func splitPair(s string) (int, bool) {
	if len(s) < 2 || strings.ContainsRune(s, '=') || !isOpen(s[0]) || !isClose(s[len(s)-1]) {
		return 0, false
	}
	depth, comma := 0, -1
	for i := 0; i < len(s); i++ {
		switch {
		case isOpen(s[i]):
			depth++
		case isClose(s[i]):
			depth--
			if depth == 0 && i != len(s)-1 {
				return 0, false // the outer '(' closes early: "(a)+(b, c)"
			}
			if depth < 0 {
				return 0, false
			}
		case s[i] == ',' && depth == 1:
			if comma >= 0 {
				return 0, false // more than two components
			}
			comma = i
		}
	}
	return comma, depth == 0 && comma > 0
}

func isOpen(c byte) bool  { return c == '(' || c == '[' }
func isClose(c byte) bool { return c == ')' || c == ']' }
