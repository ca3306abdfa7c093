package exactcalc

import (
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// domainErr creates an error for an argument outside a function's domain. arg
// is the 1-based index of the argument, or 0 for functions of one argument.
func domainErr(name string, x Value, arg int) error {
	msg := x.String() + " outside domain"
	if arg > 0 {
		msg += " (argument " + strconv.Itoa(arg) + ")"
	}
	return funcErr(name, msg)
}

// bigFloat converts a numeric value to a big.Float with the given precision.
func (v Value) bigFloat(prec uint) *big.Float {
	switch v.kind {
	case KindInteger:
		return new(big.Float).SetPrec(prec).SetInt64(v.i)
	case KindBigInteger:
		return new(big.Float).SetPrec(prec).SetInt(v.b)
	case KindRational:
		return v.r.bigFloat(prec)
	case KindReal:
		return new(big.Float).SetPrec(prec).SetFloat64(v.f)
	default:
		panic("exactcalc: bigFloat of " + v.kind.String())
	}
}

// floatResult rounds an arbitrary-precision result to a Real.
func floatResult(z *big.Float) (Value, error) {
	f, _ := z.Float64()
	return realResult(f)
}

func absFunc(ctx *Context, x Value) (Value, error) {
	if err := needNumber("abs", x); err != nil {
		return Value{}, err
	}
	if x.sign() >= 0 {
		return x, nil
	}
	return x.Neg()
}

func lnFunc(ctx *Context, x Value) (Value, error) {
	if err := needNumber("ln", x); err != nil {
		return Value{}, err
	}
	if x.sign() <= 0 {
		return Value{}, domainErr("ln", x, 0)
	}
	switch x.kind {
	case KindInteger, KindReal:
		f, _ := x.real()
		return realResult(math.Log(f))
	}
	// Big integers and rationals may not fit in a float64 even though their
	// logarithms do.
	z := new(big.Float).SetPrec(ctx.prec)
	bigfloat.Log(z, x.bigFloat(ctx.prec))
	return floatResult(z)
}

func logFunc(ctx *Context, args []Value) (Value, error) {
	x, b := args[0], IntValue(10)
	if len(args) > 1 {
		b = args[1]
	}
	for i, a := range []Value{x, b} {
		if err := needNumber("log", a); err != nil {
			return Value{}, err
		}
		if a.sign() <= 0 {
			return Value{}, domainErr("log", a, i+1)
		}
	}
	if c, _ := Compare(b, IntValue(1)); c == 0 {
		return Value{}, domainErr("log", b, 2)
	}
	lx := new(big.Float).SetPrec(ctx.prec)
	bigfloat.Log(lx, x.bigFloat(ctx.prec))
	lb := new(big.Float).SetPrec(ctx.prec)
	bigfloat.Log(lb, b.bigFloat(ctx.prec))
	return floatResult(lx.Quo(lx, lb))
}

// maxExpArg is the magnitude beyond which exp is computed in float64 to
// avoid long-running arbitrary-precision work on hopeless arguments.
const maxExpArg = 1000

func expFunc(ctx *Context, x Value) (Value, error) {
	if err := needNumber("exp", x); err != nil {
		return Value{}, err
	}
	if x.sign() == 0 {
		return IntValue(1), nil
	}
	f, err := x.real()
	if err != nil {
		return Value{}, err
	}
	if math.Abs(f) > maxExpArg {
		return realResult(math.Exp(f))
	}
	z := new(big.Float).SetPrec(ctx.prec)
	bigfloat.Exp(z, x.bigFloat(ctx.prec))
	return floatResult(z)
}

func sqrtFunc(ctx *Context, x Value) (Value, error) {
	if err := needNumber("sqrt", x); err != nil {
		return Value{}, err
	}
	if x.sign() < 0 {
		return Value{}, domainErr("sqrt", x, 0)
	}
	switch x.kind {
	case KindInteger, KindBigInteger:
		b, _ := x.BigInt()
		return sqrtBig(b, ctx.prec)
	case KindRational:
		n, err := sqrtBig(x.r.Num(), ctx.prec)
		if err != nil {
			return Value{}, err
		}
		d, err := sqrtBig(x.r.Denom(), ctx.prec)
		if err != nil {
			return Value{}, err
		}
		return n.Div(d)
	default:
		return realResult(math.Sqrt(x.f))
	}
}

// sqrtBig computes the square root of a non-negative integer, exactly if it is
// a perfect square. Takes ownership of x.
func sqrtBig(x *big.Int, prec uint) (Value, error) {
	r := new(big.Int).Sqrt(x)
	if new(big.Int).Mul(r, r).Cmp(x) == 0 {
		return bigValue(r).Simplify(), nil
	}
	if x.IsInt64() && x.Int64() < 1<<53 {
		return RealValue(math.Sqrt(float64(x.Int64()))), nil
	}
	f := new(big.Float).SetPrec(prec).SetInt(x)
	return floatResult(f.Sqrt(f))
}

func sinFunc(ctx *Context, x Value) (Value, error) {
	if err := needNumber("sin", x); err != nil {
		return Value{}, err
	}
	f, err := x.real()
	if err != nil {
		return Value{}, err
	}
	return realResult(math.Sin(f))
}

func cosFunc(ctx *Context, x Value) (Value, error) {
	if err := needNumber("cos", x); err != nil {
		return Value{}, err
	}
	if x.sign() == 0 {
		return IntValue(1), nil
	}
	f, err := x.real()
	if err != nil {
		return Value{}, err
	}
	return realResult(math.Cos(f))
}

// exactAngle is an angle at which a trigonometric function has a rational
// value.
type exactAngle struct {
	at  Rational
	val Value
}

func frac(n, d int64) Rational {
	r, err := NewRational(n, d)
	if err != nil {
		panic(err)
	}
	return r
}

var (
	half    = RatValue(frac(1, 2))
	negHalf = RatValue(frac(-1, 2))
)

var sinDegrees = []exactAngle{
	{frac(0, 1), IntValue(0)},
	{frac(30, 1), half},
	{frac(90, 1), IntValue(1)},
	{frac(150, 1), half},
	{frac(180, 1), IntValue(0)},
	{frac(210, 1), negHalf},
	{frac(270, 1), IntValue(-1)},
	{frac(330, 1), negHalf},
}

var cosDegrees = []exactAngle{
	{frac(0, 1), IntValue(1)},
	{frac(60, 1), half},
	{frac(90, 1), IntValue(0)},
	{frac(120, 1), negHalf},
	{frac(180, 1), IntValue(-1)},
	{frac(240, 1), negHalf},
	{frac(270, 1), IntValue(0)},
	{frac(300, 1), half},
}

// sinHalfTurns are the exact values of sin(πx) for x in [0, 2).
var sinHalfTurns = []exactAngle{
	{frac(0, 1), IntValue(0)},
	{frac(1, 6), half},
	{frac(1, 2), IntValue(1)},
	{frac(5, 6), half},
	{frac(1, 1), IntValue(0)},
	{frac(7, 6), negHalf},
	{frac(3, 2), IntValue(-1)},
	{frac(11, 6), negHalf},
}

// modRat returns r mod m in [0, m) for m > 0.
func modRat(r Rational, m int64) Rational {
	p := new(big.Int).Mul(big.NewInt(m), r.d())
	return ratio(new(big.Int).Mod(r.n(), p), new(big.Int).Set(r.d()))
}

// periodic evaluates f(x*scale) for a function with the given period in units
// of x. Exact arguments are reduced exactly and looked up in table first.
func periodic(name string, x Value, period int64, scale float64, table []exactAngle, f func(float64) float64) (Value, error) {
	if err := needNumber(name, x); err != nil {
		return Value{}, err
	}
	r, ok := x.Rat()
	if !ok {
		return realResult(f(math.Mod(x.f, float64(period)) * scale))
	}
	a := modRat(r, period)
	for _, e := range table {
		if a.Cmp(e.at) == 0 {
			return e.val, nil
		}
	}
	t, _ := a.Float64()
	return realResult(f(t * scale))
}

func sindFunc(ctx *Context, x Value) (Value, error) {
	return periodic("sind", x, 360, math.Pi/180, sinDegrees, math.Sin)
}

func cosdFunc(ctx *Context, x Value) (Value, error) {
	return periodic("cosd", x, 360, math.Pi/180, cosDegrees, math.Cos)
}

func sinpiFunc(ctx *Context, x Value) (Value, error) {
	return periodic("sinpi", x, 2, math.Pi, sinHalfTurns, math.Sin)
}

// natArg returns args[i] if it is a non-negative Integer.
func natArg(name string, args []Value, i int) (int64, error) {
	x := args[i]
	arg := 0
	if len(args) > 1 {
		arg = i + 1
	}
	switch x.kind {
	case KindInteger:
		if x.i < 0 {
			return 0, domainErr(name, x, arg)
		}
		return x.i, nil
	case KindBigInteger:
		return 0, funcErr(name, x.String()+" is too large")
	default:
		return 0, funcErr(name, "argument must be an integer, not "+x.kind.String())
	}
}

func factFunc(ctx *Context, x Value) (Value, error) {
	n, err := natArg("fact", []Value{x}, 0)
	if err != nil {
		return Value{}, err
	}
	if n > ctx.factmax {
		return Value{}, funcErr("fact", strconv.FormatInt(n, 10)+" exceeds the limit of "+strconv.FormatInt(ctx.factmax, 10))
	}
	return bigValue(new(big.Int).MulRange(1, n)).Simplify(), nil
}

// choose computes n choose k for 0 <= k <= n.
func choose(ctx *Context, name string, n, k int64) (Value, error) {
	if n-k < k {
		k = n - k
	}
	if k == 0 {
		return IntValue(1), nil
	}
	if k > ctx.factmax {
		return Value{}, funcErr(name, "cannot choose "+strconv.FormatInt(k, 10)+" items; the limit is "+strconv.FormatInt(ctx.factmax, 10))
	}
	num := bigValue(new(big.Int).MulRange(n-k+1, n)).Simplify()
	den := bigValue(new(big.Int).MulRange(1, k)).Simplify()
	return num.Div(den)
}

// chooseArgs checks the n and k arguments of nck and comb.
func chooseArgs(name string, args []Value) (n, k int64, err error) {
	if n, err = natArg(name, args, 0); err != nil {
		return 0, 0, err
	}
	if k, err = natArg(name, args, 1); err != nil {
		return 0, 0, err
	}
	if n < k {
		return 0, 0, funcErr(name, "n ("+strconv.FormatInt(n, 10)+") must be at least k ("+strconv.FormatInt(k, 10)+")")
	}
	return n, k, nil
}

func nckFunc(ctx *Context, args []Value) (Value, error) {
	n, k, err := chooseArgs("nck", args)
	if err != nil {
		return Value{}, err
	}
	return choose(ctx, "nck", n, k)
}

func combFunc(ctx *Context, args []Value) (Value, error) {
	n, k, err := chooseArgs("comb", args)
	if err != nil {
		return Value{}, err
	}
	rep, ok := args[2].Bool()
	if !ok {
		return Value{}, funcErr("comb", "repetition must be a bool, not "+args[2].kind.String())
	}
	if rep {
		var ok bool
		if n, ok = add64(n, k-1); !ok {
			return Value{}, funcErr("comb", "n+k-1 is too large")
		}
	}
	return choose(ctx, "comb", n, k)
}

func maxFunc(ctx *Context, args []Value) (Value, error) {
	return extreme("max", args, 1)
}

func minFunc(ctx *Context, args []Value) (Value, error) {
	return extreme("min", args, -1)
}

// extreme finds the first argument that is greatest when sign is 1 or least
// when sign is -1.
func extreme(name string, args []Value, sign int) (Value, error) {
	best := args[0]
	for i, x := range args {
		if !x.kind.numeric() {
			return Value{}, funcErr(name, "argument "+strconv.Itoa(i+1)+" must be a number, not "+x.kind.String())
		}
		c, err := Compare(x, best)
		if err != nil {
			return Value{}, err
		}
		if c == sign {
			best = x
		}
	}
	return best, nil
}
