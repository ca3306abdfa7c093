package exactcalc

import (
	"math/big"
	"strconv"
	"strings"
)

// Func is a builtin function on values. Arguments are always evaluated and
// simplified before the function is called.
type Func interface {
	// Call evaluates the function. args has a length allowed by Arity.
	// Call must not modify the elements of args. If an argument is outside the
	// function's domain, Call should return a *FuncCallError.
	Call(ctx *Context, args []Value) (Value, error)

	// Arity returns the numbers of arguments the function accepts.
	Arity() Arity
}

// Arity is the range of argument counts a function accepts. A negative Max
// means there is no upper limit.
type Arity struct {
	Min, Max int
}

// Allows reports whether n arguments are acceptable.
func (a Arity) Allows(n int) bool {
	return n >= a.Min && (a.Max < 0 || n <= a.Max)
}

func (a Arity) String() string {
	switch {
	case a.Max < 0:
		return "at least " + plural(a.Min, "argument")
	case a.Min == a.Max:
		return plural(a.Min, "argument")
	case a.Max == a.Min+1:
		return strconv.Itoa(a.Min) + " or " + plural(a.Max, "argument")
	default:
		return strconv.Itoa(a.Min) + " to " + plural(a.Max, "argument")
	}
}

func plural(n int, what string) string {
	s := strconv.Itoa(n) + " " + what
	if n != 1 {
		s += "s"
	}
	return s
}

var globalfuncs = map[string]Func{
	"abs":   Monadic(absFunc),
	"ln":    Monadic(lnFunc),
	"log":   NewFunc(Arity{1, 2}, logFunc),
	"exp":   Monadic(expFunc),
	"sqrt":  Monadic(sqrtFunc),
	"sin":   Monadic(sinFunc),
	"cos":   Monadic(cosFunc),
	"sind":  Monadic(sindFunc),
	"cosd":  Monadic(cosdFunc),
	"sinpi": Monadic(sinpiFunc),
	"fact":  Monadic(factFunc),
	"nck":   NewFunc(Arity{2, 2}, nckFunc),
	"comb":  NewFunc(Arity{3, 3}, combFunc),
	"max":   NewFunc(Arity{1, -1}, maxFunc),
	"min":   NewFunc(Arity{1, -1}, minFunc),
}

// DefaultFuncs returns a copy of the builtin function table.
func DefaultFuncs() map[string]Func {
	m := make(map[string]Func, len(globalfuncs))
	for k, v := range globalfuncs {
		m[k] = v
	}
	return m
}

type fn struct {
	arity Arity
	f     func(ctx *Context, args []Value) (Value, error)
}

func (f fn) Call(ctx *Context, args []Value) (Value, error) {
	return f.f(ctx, args)
}

func (f fn) Arity() Arity {
	return f.arity
}

// NewFunc wraps a function of any number of arguments into a Func.
func NewFunc(arity Arity, f func(ctx *Context, args []Value) (Value, error)) Func {
	return fn{arity: arity, f: f}
}

type monadic struct {
	f func(ctx *Context, x Value) (Value, error)
}

func (m monadic) Call(ctx *Context, args []Value) (Value, error) {
	return m.f(ctx, args[0])
}

func (m monadic) Arity() Arity {
	return Arity{1, 1}
}

// Monadic wraps a function of one argument into a Func.
func Monadic(f func(ctx *Context, x Value) (Value, error)) Func {
	return monadic{f}
}

// FuncCall is a call of a named function with evaluated arguments.
type FuncCall struct {
	// Name is the trimmed, lower-case name of the function.
	Name string
	// Args are the evaluated arguments.
	Args []Value
}

// NewFuncCall creates a call, normalizing the function name.
func NewFuncCall(name string, args []Value) *FuncCall {
	return &FuncCall{Name: strings.ToLower(strings.TrimSpace(name)), Args: args}
}

// Eval looks up the function in ctx and calls it. The result is simplified.
func (c *FuncCall) Eval(ctx *Context) (r Value, err error) {
	f := ctx.funcs[c.Name]
	if f == nil {
		return Value{}, funcErr(c.Name, "no such function")
	}
	if a := f.Arity(); !a.Allows(len(c.Args)) {
		return Value{}, funcErr(c.Name, "expects "+a.String()+", got "+strconv.Itoa(len(c.Args)))
	}
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		nan, ok := p.(big.ErrNaN)
		if !ok {
			panic(p)
		}
		err = funcErr(c.Name, nan.Error())
	}()
	r, err = f.Call(ctx, c.Args)
	if err != nil {
		return Value{}, err
	}
	return r.Simplify(), nil
}

// needNumber returns an error if x is not a number.
func needNumber(name string, x Value) error {
	if x.kind.numeric() {
		return nil
	}
	return funcErr(name, "argument must be a number, not "+x.kind.String())
}
