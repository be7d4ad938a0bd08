package expr

import (
	"math"
	"strconv"
	"strings"
)

// node is an element of the expression tree. Nodes are never modified after
// parsing; evaluation only reads them.
type node interface {
	eval(vals []float64) (float64, error)
	write(sb *strings.Builder)
}

type numberNode struct{ v float64 }

func (n numberNode) eval([]float64) (float64, error) { return n.v, nil }

func (n numberNode) write(sb *strings.Builder) {
	sb.WriteString(strconv.FormatFloat(n.v, 'g', -1, 64))
}

// constNode is a named constant; it evaluates like a number but prints by name.
type constNode struct {
	name string
	v    float64
}

func (n constNode) eval([]float64) (float64, error) { return n.v, nil }

func (n constNode) write(sb *strings.Builder) { sb.WriteString(n.name) }

// varNode refers to a variable by its slot in the positional value list.
type varNode struct {
	name string
	slot int
}

func (n varNode) eval(vals []float64) (float64, error) {
	if n.slot >= len(vals) {
		return 0, unboundError(n.name)
	}
	return vals[n.slot], nil
}

func (n varNode) write(sb *strings.Builder) { sb.WriteString(n.name) }

type unaryNode struct {
	op byte
	x  node
}

func (n unaryNode) eval(vals []float64) (float64, error) {
	v, err := n.x.eval(vals)
	if err != nil {
		return 0, err
	}
	if n.op == '-' {
		return -v, nil
	}
	return v, nil
}

func (n unaryNode) write(sb *strings.Builder) {
	sb.WriteByte('(')
	sb.WriteByte(n.op)
	n.x.write(sb)
	sb.WriteByte(')')
}

type binaryNode struct {
	op          byte
	left, right node
}

func (n binaryNode) eval(vals []float64) (float64, error) {
	a, err := n.left.eval(vals)
	if err != nil {
		return 0, err
	}
	b, err := n.right.eval(vals)
	if err != nil {
		return 0, err
	}
	var r float64
	switch n.op {
	case '+':
		r = a + b
	case '-':
		r = a - b
	case '*':
		r = a * b
	case '/':
		if b == 0 {
			return 0, domainError("/", "division by zero")
		}
		r = a / b
	case '^':
		if r, err = pow(a, b); err != nil {
			return 0, err
		}
	}
	return checked(string(n.op), r)
}

func (n binaryNode) write(sb *strings.Builder) {
	sb.WriteByte('(')
	n.left.write(sb)
	sb.WriteByte(' ')
	sb.WriteByte(n.op)
	sb.WriteByte(' ')
	n.right.write(sb)
	sb.WriteByte(')')
}

type callNode struct {
	fn   *builtin
	args []node
}

func (n callNode) eval(vals []float64) (float64, error) {
	var buf [2]float64
	args := buf[:0]
	for _, a := range n.args {
		v, err := a.eval(vals)
		if err != nil {
			return 0, err
		}
		args = append(args, v)
	}
	r, err := n.fn.fn(args)
	if err != nil {
		return 0, err
	}
	return checked(n.fn.name, r)
}

func (n callNode) write(sb *strings.Builder) {
	sb.WriteString(n.fn.name)
	sb.WriteByte('(')
	for i, a := range n.args {
		if i > 0 {
			sb.WriteString(", ")
		}
		a.write(sb)
	}
	sb.WriteByte(')')
}

// checked turns NaN and infinite results into evaluation errors.
func checked(op string, r float64) (float64, error) {
	if math.IsNaN(r) {
		return 0, domainError(op, "result is not a number")
	}
	if math.IsInf(r, 0) {
		return 0, domainError(op, "overflow")
	}
	return r, nil
}
