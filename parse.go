package exactcalc

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Expr is a view of part of the text of an expression. Evaluating an
// expression narrows the view recursively without copying the text.
type Expr struct {
	src    string
	lo, hi int
}

// NewExpr creates a view of the whole of src, with surrounding whitespace
// trimmed.
func NewExpr(src string) Expr {
	return Expr{src: src, hi: len(src)}.sub(0, len(src))
}

// String returns the text in view.
func (e Expr) String() string {
	return e.src[e.lo:e.hi]
}

// Empty returns whether the view contains no text.
func (e Expr) Empty() bool {
	return e.lo >= e.hi
}

// sub returns the view of the byte offsets [lo, hi) of the source text, with
// surrounding whitespace trimmed.
func (e Expr) sub(lo, hi int) Expr {
	s := e.src[lo:hi]
	t := strings.TrimLeftFunc(s, unicode.IsSpace)
	lo += len(s) - len(t)
	hi = lo + len(strings.TrimRightFunc(t, unicode.IsSpace))
	return Expr{src: e.src, lo: lo, hi: hi}
}

// col returns the 1-based rune column of a byte offset in the source text.
func (e Expr) col(off int) int {
	return utf8.RuneCountInString(e.src[:off]) + 1
}

// checkBalance checks that every bracket in src is matched and that every
// string is terminated.
func checkBalance(src string) error {
	var open []int
	quote := -1
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '"' {
			if quote < 0 {
				quote = i
			} else {
				quote = -1
			}
			continue
		}
		if quote >= 0 {
			continue
		}
		switch c {
		case '(':
			open = append(open, i)
		case ')':
			if len(open) == 0 {
				return &ParseError{Col: utf8.RuneCountInString(src[:i]) + 1, Msg: "unmatched )"}
			}
			open = open[:len(open)-1]
		}
	}
	if quote >= 0 {
		return &ParseError{Col: utf8.RuneCountInString(src[:quote]) + 1, Msg: "unterminated string"}
	}
	if len(open) != 0 {
		k := open[len(open)-1]
		return &ParseError{Col: utf8.RuneCountInString(src[:k]) + 1, Msg: "unmatched ("}
	}
	return nil
}

// balanced returns whether s has matched brackets and terminated strings.
func balanced(s string) bool {
	depth := 0
	quoted := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '"':
			quoted = !quoted
		case quoted:
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0 && !quoted
}

// trimBrackets removes brackets surrounding the entire view, as long as they
// are a pair.
func trimBrackets(e Expr) Expr {
	for {
		s := e.String()
		if len(s) <= 2 || s[0] != '(' || s[len(s)-1] != ')' || !balanced(s[1:len(s)-1]) {
			return e
		}
		e = e.sub(e.lo+1, e.hi-1)
	}
}

type operator struct {
	// prec is the precedence value. Lower is less binding.
	prec int8
	// sym is the canonical operator.
	sym rune
}

// binop gets a binary operator for a rune. If there is no such operator, then
// the result has a prec of 0.
func binop(r rune) operator {
	switch r {
	case '+':
		return operator{1, '+'}
	case '-':
		return operator{1, '-'}
	case '*', '×':
		return operator{2, '*'}
	case '/', '÷':
		return operator{2, '/'}
	case '^':
		return operator{3, '^'}
	default:
		return operator{}
	}
}

// findOperator locates the operator at which to split the view: the least
// binding operator outside brackets and strings, the rightmost among equals.
// at and end are the byte offsets of the start and end of the operator.
func findOperator(e Expr) (op operator, at, end int) {
	s := e.String()
	depth := 0
	quoted := false
	for i := len(s); i > 0; {
		r, sz := utf8.DecodeLastRuneInString(s[:i])
		i -= sz
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == ')':
			depth++
		case r == '(':
			depth--
		case depth == 0:
			if p := binop(r); p.prec != 0 && (op.prec == 0 || p.prec < op.prec) {
				op, at, end = p, e.lo+i, e.lo+i+sz
			}
		}
	}
	return op, at, end
}

// callShape matches a function call. The arguments must also be balanced.
var callShape = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_]*)\s*\((.*)\)$`)

// splitArgs splits a function argument list at commas outside brackets and
// strings. An empty list has no arguments.
func splitArgs(e Expr) []Expr {
	if e.Empty() {
		return nil
	}
	var args []Expr
	depth := 0
	quoted := false
	start := e.lo
	for i := e.lo; i < e.hi; i++ {
		switch c := e.src[i]; {
		case c == '"':
			quoted = !quoted
		case quoted:
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == ',' && depth == 0:
			args = append(args, e.sub(start, i))
			start = i + 1
		}
	}
	return append(args, e.sub(start, e.hi))
}

// Scanner is the default Strategy. It evaluates an expression by finding the
// operator to apply last, then evaluating the text on each side of it
// recursively. Scanner never builds a syntax tree.
type Scanner struct{}

// Parse creates a view of src.
func (Scanner) Parse(ctx *Context, src string) (Expr, error) {
	return NewExpr(src), nil
}

// Eval evaluates the expression in view.
func (Scanner) Eval(ctx *Context, e Expr) (Value, error) {
	return scan{ctx}.eval(e, 0)
}

// ParseCall parses a function call, evaluating its arguments. If e is not
// shaped like a call, the result is nil with no error.
func (Scanner) ParseCall(ctx *Context, e Expr) (*FuncCall, error) {
	return scan{ctx}.call(trimBrackets(e), 0)
}

type scan struct {
	ctx *Context
}

func (s scan) eval(e Expr, depth int) (Value, error) {
	if depth > s.ctx.maxdepth {
		return Value{}, &DepthError{Limit: s.ctx.maxdepth}
	}
	e = trimBrackets(e)
	if e.Empty() {
		return Value{}, &EvaluateError{Col: e.col(e.lo), Msg: "empty expression"}
	}
	op, at, end := findOperator(e)
	if op.prec == 0 {
		return s.atom(e, depth)
	}
	l, r := e.sub(e.lo, at), e.sub(end, e.hi)
	if l.Empty() && !r.Empty() {
		switch op.sym {
		case '-':
			y, err := s.eval(r, depth+1)
			if err != nil {
				return Value{}, err
			}
			v, err := y.Neg()
			return v, withCol(err, e.col(at))
		case '+':
			return s.eval(r, depth+1)
		}
	}
	if l.Empty() || r.Empty() {
		return Value{}, &EvaluateError{Col: e.col(at), Msg: "missing operand for " + string(op.sym)}
	}
	x, err := s.eval(l, depth+1)
	if err != nil {
		return Value{}, err
	}
	y, err := s.eval(r, depth+1)
	if err != nil {
		return Value{}, err
	}
	v, err := apply(op.sym, x, y)
	return v, withCol(err, e.col(at))
}

// atom evaluates a view containing no operators: a function call or a literal.
func (s scan) atom(e Expr, depth int) (Value, error) {
	c, err := s.call(e, depth)
	if err != nil {
		return Value{}, err
	}
	if c != nil {
		return c.Eval(s.ctx)
	}
	v, err := ParseValue(e.String(), s.ctx.warn)
	return v, withCol(err, e.col(e.lo))
}

// call parses and evaluates the arguments of a function call. If e is not
// shaped like a call, the result is nil with no error.
func (s scan) call(e Expr, depth int) (*FuncCall, error) {
	m := callShape.FindStringSubmatchIndex(e.String())
	if m == nil {
		return nil, nil
	}
	list := e.sub(e.lo+m[4], e.lo+m[5])
	if !balanced(list.String()) {
		return nil, nil
	}
	var args []Value
	for _, a := range splitArgs(list) {
		v, err := s.eval(a, depth+1)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return NewFuncCall(e.src[e.lo+m[2]:e.lo+m[3]], args), nil
}

// apply applies a binary operator.
func apply(op rune, x, y Value) (Value, error) {
	switch op {
	case '+':
		return x.Add(y)
	case '-':
		return x.Sub(y)
	case '*':
		return x.Mul(y)
	case '/':
		return x.Div(y)
	case '^':
		return x.Pow(y)
	default:
		panic("exactcalc: bad operator " + string(op))
	}
}

// withCol sets the position of a positionless error.
func withCol(err error, col int) error {
	switch err := err.(type) {
	case *EvaluateError:
		if err.Col == 0 {
			err.Col = col
		}
	case *ParseError:
		if err.Col == 0 {
			err.Col = col
		}
	}
	return err
}
