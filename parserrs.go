package exactcalc

import "strconv"

// ParseError is an error indicating input with a malformed overall shape:
// unbalanced brackets, an unterminated string, or a number that cannot be
// converted. It implements InputError.
type ParseError struct {
	// Col is the 1-based rune column of the problem, or 0 if unknown.
	Col int
	// Msg describes the problem.
	Msg string
	// Err is the underlying cause, if any.
	Err error
}

func (err *ParseError) Error() string {
	msg := err.Msg
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return "parse error: " + errpos(err.Col, msg)
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

func (err *ParseError) Pos() int {
	return err.Col
}

// EvaluateError is an error indicating a well-formed expression that cannot
// be evaluated, e.g. an operator applied to incompatible types, a division by
// zero, or a missing operand. It implements InputError.
type EvaluateError struct {
	// Col is the 1-based rune column of the operator or value that failed, or
	// 0 if unknown.
	Col int
	// Msg describes the problem.
	Msg string
}

func (err *EvaluateError) Error() string {
	return "evaluation error: " + errpos(err.Col, err.Msg)
}

func (err *EvaluateError) Pos() int {
	return err.Col
}

// FuncCallError is an error indicating a call to an unknown function, a call
// with the wrong number of arguments, or an argument outside a function's
// domain.
type FuncCallError struct {
	// Func is the name of the function that was called.
	Func string
	// Msg describes the problem.
	Msg string
}

func (err *FuncCallError) Error() string {
	return "function call error: " + err.Func + ": " + err.Msg
}

// DepthError is an error indicating an expression nested too deeply to
// evaluate.
type DepthError struct {
	// Limit is the maximum recursion depth that was exceeded.
	Limit int
}

func (err *DepthError) Error() string {
	return "expression too deeply nested (limit " + strconv.Itoa(err.Limit) + ")"
}

// errpos is a shortcut to create an error message with a position. Positions
// less than 1 are omitted.
func errpos(pos int, msg string) string {
	if pos < 1 {
		return msg
	}
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the text that caused the error, or 0 if the
	// position is unknown.
	Pos() int
}

var (
	_ InputError = (*ParseError)(nil)
	_ InputError = (*EvaluateError)(nil)
)

// evalErr is a shortcut to create an EvaluateError without a position.
func evalErr(msg string) error {
	return &EvaluateError{Msg: msg}
}

// funcErr is a shortcut to create a FuncCallError.
func funcErr(name, msg string) error {
	return &FuncCallError{Func: name, Msg: msg}
}
