package exactcalc

// Default limits for contexts.
const (
	// DefaultMaxDepth is the default limit on the recursion depth of an
	// evaluation.
	DefaultMaxDepth = 1000
	// DefaultFactorialLimit is the default greatest argument to fact.
	DefaultFactorialLimit = 100
	// DefaultPrec is the default precision in bits of arbitrary-precision
	// calculations.
	DefaultPrec = 64
)

// Context is a context for evaluating expressions. A Context is immutable
// once created, so it is safe to use concurrently.
type Context struct {
	funcs    map[string]Func
	strategy Strategy
	warn     func(string)
	prec     uint
	maxdepth int
	factmax  int64
}

// Strategy is an algorithm for evaluating expressions.
type Strategy interface {
	// Parse prepares the text of an expression for evaluation. src has
	// balanced brackets and strings.
	Parse(ctx *Context, src string) (Expr, error)
	// Eval evaluates a parsed expression.
	Eval(ctx *Context, e Expr) (Value, error)
	// ParseCall parses a function call and evaluates its arguments. If e is
	// not a function call, the result is nil with no error.
	ParseCall(ctx *Context, e Expr) (*FuncCall, error)
}

// Fixed is a Strategy which evaluates every expression to V.
type Fixed struct {
	V Value
}

// Parse creates a view of src.
func (f Fixed) Parse(ctx *Context, src string) (Expr, error) {
	return NewExpr(src), nil
}

// Eval returns f.V.
func (f Fixed) Eval(ctx *Context, e Expr) (Value, error) {
	return f.V, nil
}

// ParseCall returns nil; Fixed recognizes no function calls.
func (f Fixed) ParseCall(ctx *Context, e Expr) (*FuncCall, error) {
	return nil, nil
}

// NewContext creates a new evaluation context. Without options, the context
// uses the builtin functions, the Scanner strategy, and the default limits.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{
		funcs:    globalfuncs,
		strategy: Scanner{},
		prec:     DefaultPrec,
		maxdepth: DefaultMaxDepth,
		factmax:  DefaultFactorialLimit,
	}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := *ctx
	copied := false
	setfunc := func(name string, fn Func) {
		if !copied {
			n.funcs = make(map[string]Func, len(ctx.funcs))
			for k, v := range ctx.funcs {
				n.funcs[k] = v
			}
			copied = true
		}
		if fn == nil {
			delete(n.funcs, name)
			return
		}
		n.funcs[name] = fn
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case precopt:
			n.prec = uint(opt)
			if n.prec == 0 {
				n.prec = DefaultPrec
			}
		case depthopt:
			n.maxdepth = int(opt)
			if n.maxdepth <= 0 {
				n.maxdepth = DefaultMaxDepth
			}
		case factopt:
			n.factmax = int64(opt)
			if n.factmax < 0 {
				n.factmax = 0
			}
		case funcopt:
			setfunc(opt.name, opt.fn)
		case funcsopt:
			for k, v := range opt {
				setfunc(k, v)
			}
		case stratopt:
			n.strategy = opt.s
			if n.strategy == nil {
				n.strategy = Scanner{}
			}
		case warnopt:
			n.warn = opt
		default:
			panic("exactcalc: unknown option type")
		}
	}
	return &n
}

// Eval evaluates an expression. Brackets and strings in src are checked for
// balance before anything is evaluated. The result is simplified.
func (ctx *Context) Eval(src string) (Value, error) {
	if err := checkBalance(src); err != nil {
		return Value{}, err
	}
	e, err := ctx.strategy.Parse(ctx, src)
	if err != nil {
		return Value{}, err
	}
	v, err := ctx.strategy.Eval(ctx, e)
	if err != nil {
		return Value{}, err
	}
	return v.Simplify(), nil
}

// Lookup returns the function with the given name, or nil if there is none.
func (ctx *Context) Lookup(name string) Func {
	return ctx.funcs[name]
}

// Prec returns the precision to which arbitrary-precision values are computed
// in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// MaxDepth returns the recursion limit of evaluations in the context.
func (ctx *Context) MaxDepth() int {
	return ctx.maxdepth
}

// FactorialLimit returns the greatest argument to fact in the context.
func (ctx *Context) FactorialLimit() int64 {
	return ctx.factmax
}

// Warn reports a warning through the context's warning hook, if it has one.
func (ctx *Context) Warn(msg string) {
	if ctx.warn != nil {
		ctx.warn(msg)
	}
}

// Evaluate is a shortcut to evaluate an expression in a new context.
func Evaluate(src string, opts ...ContextOption) (Value, error) {
	return NewContext(opts...).Eval(src)
}
