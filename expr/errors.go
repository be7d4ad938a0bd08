package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is wrapped by every *ParseError.
	ErrParse = errors.New("parse error")
	// ErrEval is wrapped by every *EvalError.
	ErrEval = errors.New("eval error")
	// ErrUnboundVariable indicates that evaluation needed a variable without a value.
	ErrUnboundVariable = errors.New("unbound variable")
)

// ParseError reports malformed expression text. Pos is the byte offset of
// the offending substring Near within Input.
type ParseError struct {
	Input string
	Pos   int
	Near  string
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("parse error at offset %d near %q: %s", e.Pos, e.Near, e.Msg)
}

// Unwrap makes errors.Is(err, ErrParse) hold.
func (e *ParseError) Unwrap() error {
	return ErrParse
}

// EvalError reports a failed evaluation: a domain violation of an operator or
// function, an overflow, or a missing variable binding. An EvalError concerns a
// single evaluation only; the expression itself stays usable.
type EvalError struct {
	Op     string // operator, function or variable name
	Reason string
	kind   error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("eval error: %s: %s", e.Op, e.Reason)
}

// Unwrap makes errors.Is(err, ErrEval) hold, and errors.Is(err, ErrUnboundVariable)
// for missing bindings.
func (e *EvalError) Unwrap() []error {
	if e.kind != nil {
		return []error{ErrEval, e.kind}
	}
	return []error{ErrEval}
}

func domainError(op, reason string) *EvalError {
	return &EvalError{Op: op, Reason: reason}
}

func unboundError(name string) *EvalError {
	return &EvalError{Op: name, Reason: "no value bound", kind: ErrUnboundVariable}
}
