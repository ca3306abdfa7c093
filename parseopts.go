package exactcalc

import (
	"log"
	"strings"
)

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	precopt  uint
	depthopt int
	factopt  int64
	funcopt  struct {
		name string
		fn   Func
	}
	funcsopt map[string]Func
	stratopt struct {
		s Strategy
	}
	warnopt func(string)
)

func (precopt) ctxOption()  {}
func (depthopt) ctxOption() {}
func (factopt) ctxOption()  {}
func (funcopt) ctxOption()  {}
func (funcsopt) ctxOption() {}
func (stratopt) ctxOption() {}
func (warnopt) ctxOption()  {}

// Prec sets the precision in bits of arbitrary-precision calculations, namely
// logarithms and exponentials of big values. Zero means the default.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// MaxDepth sets the limit on the recursion depth of an evaluation. Deeper
// expressions fail with a *DepthError. Non-positive values mean the default.
func MaxDepth(n int) ContextOption {
	return depthopt(n)
}

// FactorialLimit sets the greatest argument allowed to fact, which also
// bounds the smaller argument of nck and comb.
func FactorialLimit(n int64) ContextOption {
	return factopt(n)
}

// SetFunc sets a function in the context. Names are case-insensitive. To
// disable a function, pass nil for fn.
func SetFunc(name string, fn Func) ContextOption {
	return funcopt{strings.ToLower(strings.TrimSpace(name)), fn}
}

// SetFuncs sets a group of functions. To disable any function, set it to nil.
func SetFuncs(fns map[string]Func) ContextOption {
	m := make(funcsopt, len(fns))
	for k, v := range fns {
		m[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return m
}

// UseStrategy sets the algorithm used to evaluate expressions. The default
// is Scanner.
func UseStrategy(s Strategy) ContextOption {
	return stratopt{s}
}

// Warnings sends warnings about lost precision to a logger. A nil logger
// disables warnings, which is the default.
func Warnings(l *log.Logger) ContextOption {
	if l == nil {
		return warnopt(nil)
	}
	return warnopt(func(msg string) { l.Print(msg) })
}

// WarnFunc sends warnings about lost precision to f.
func WarnFunc(f func(msg string)) ContextOption {
	return warnopt(f)
}
