// Package expr parses infix arithmetic expressions into an immutable,
// evaluable form.
//
// An expression is parsed once for a fixed set of variable names and then
// evaluated for many variable assignments:
//
//	e, err := expr.Parse("x^2 + y^2", "x", "y")
//	...
//	v, err := e.Eval(3, 4) // 25
//
// Parsing reports malformed text with a *ParseError. Evaluation reports
// domain violations (division by zero, square root or logarithm of an
// illegal argument, overflow) and missing bindings with an *EvalError, which
// concerns that single evaluation only.
package expr

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'expr'
func tracer() tracing.Trace {
	return tracing.Select("expr")
}

// Expression is a parsed arithmetic formula. It is immutable and may be
// evaluated concurrently.
type Expression struct {
	text string
	vars []string
	used []bool // used[i]: vars[i] occurs in the formula
	root node
}

// Parse builds an Expression from text. Every identifier in text must be one
// of vars, a built-in constant (pi, tau, e, phi) or a built-in function
// followed by its argument list.
func Parse(text string, vars ...string) (*Expression, error) {
	slots := make(map[string]int, len(vars))
	for i, v := range vars {
		if !validName(v) || isReserved(v) {
			return nil, &ParseError{Input: text, Near: v, Msg: "illegal variable name"}
		}
		if _, dup := slots[v]; dup {
			return nil, &ParseError{Input: text, Near: v, Msg: "duplicate variable name"}
		}
		slots[v] = i
	}
	p := &parser{l: lexer{s: text}, slots: slots}
	root, err := p.parse()
	if err != nil {
		tracer().Debugf("cannot parse %q: %v", text, err)
		return nil, err
	}
	e := &Expression{
		text: text,
		vars: append([]string(nil), vars...),
		used: make([]bool, len(vars)),
		root: root,
	}
	markUsed(root, e.used)
	return e, nil
}

// MustParse is like Parse but panics on malformed text. It is meant for
// expressions known at compile time.
func MustParse(text string, vars ...string) *Expression {
	e, err := Parse(text, vars...)
	if err != nil {
		panic(err)
	}
	return e
}

// Constant parses and evaluates text as an expression without free
// variables, e.g. "2pi" or "-sqrt(2)/2".
func Constant(text string) (float64, error) {
	e, err := Parse(text)
	if err != nil {
		return 0, err
	}
	return e.Eval()
}

// Eval evaluates the expression with values bound positionally to the
// variable names given to Parse.
func (e *Expression) Eval(values ...float64) (float64, error) {
	return e.root.eval(values)
}

// Evaluate evaluates the expression with values taken from bindings. A
// variable that occurs in the formula but not in bindings yields an
// *EvalError wrapping ErrUnboundVariable; unused variables need no binding.
func (e *Expression) Evaluate(bindings map[string]float64) (float64, error) {
	vals := make([]float64, len(e.vars))
	for i, name := range e.vars {
		v, ok := bindings[name]
		if !ok && e.uses(name) {
			return 0, unboundError(name)
		}
		vals[i] = v
	}
	return e.root.eval(vals)
}

// Vars returns the variable names the expression was parsed with.
func (e *Expression) Vars() []string {
	return append([]string(nil), e.vars...)
}

// uses reports whether variable name occurs in the formula.
func (e *Expression) uses(name string) bool {
	for i, v := range e.vars {
		if v == name {
			return e.used[i]
		}
	}
	return false
}

// Text returns the source text of the expression.
func (e *Expression) Text() string {
	return e.text
}

// String returns a fully parenthesized rendition of the parsed formula.
func (e *Expression) String() string {
	var sb strings.Builder
	e.root.write(&sb)
	return sb.String()
}

// Split applies the splitting rule for relations: the text before the first
// '=' is the left-hand side, the text after it the right-hand side. An empty
// left-hand side defaults to "y". ok is false if text contains no '='.
func Split(text string) (lhs, rhs string, ok bool) {
	lhs, rhs, ok = strings.Cut(text, "=")
	if !ok {
		return "", text, false
	}
	if strings.TrimSpace(lhs) == "" {
		lhs = "y"
	}
	return lhs, rhs, true
}

// Names returns the identifiers occurring in text, in order of appearance,
// without parsing it. π and θ are reported as "pi" and "theta".
func Names(text string) []string {
	var names []string
	l := lexer{s: text}
	for tok := l.next(); tok.kind != tokEOF; tok = l.next() {
		if tok.kind == tokIdent {
			names = append(names, tok.text)
		}
	}
	return names
}

func markUsed(n node, used []bool) {
	switch n := n.(type) {
	case varNode:
		used[n.slot] = true
	case unaryNode:
		markUsed(n.x, used)
	case binaryNode:
		markUsed(n.left, used)
		markUsed(n.right, used)
	case callNode:
		for _, a := range n.args {
			markUsed(a, used)
		}
	}
}

func validName(s string) bool {
	l := lexer{s: s}
	tok := l.next()
	return tok.kind == tokIdent && tok.text == s && l.next().kind == tokEOF
}
