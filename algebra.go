package exactcalc

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// maxPowBits bounds the size in bits of an exact power. Larger results are
// rejected rather than computed.
const maxPowBits = 1 << 20

// powPrec is the precision of arbitrary-precision powers.
const powPrec = 64

// Neg returns -v.
func (v Value) Neg() (Value, error) {
	switch v.kind {
	case KindNothing:
		return v, nil
	case KindInteger:
		if v.i == math.MinInt64 {
			return bigValue(new(big.Int).Neg(big.NewInt(v.i))), nil
		}
		return IntValue(-v.i), nil
	case KindBigInteger:
		return bigValue(new(big.Int).Neg(v.b)).Simplify(), nil
	case KindRational:
		return RatValue(v.r.Neg()).Simplify(), nil
	case KindReal:
		return RealValue(-v.f).Simplify(), nil
	default:
		return Value{}, evalErr("cannot negate " + v.kind.String() + " " + v.String())
	}
}

// Add returns v + w. Adding anything to Text concatenates the text forms. Two
// Bools add as logical or.
func (v Value) Add(w Value) (Value, error) {
	switch {
	case v.kind == KindNothing || w.kind == KindNothing:
		return Value{}, nil
	case v.kind == KindText || w.kind == KindText:
		return TextValue(v.String() + w.String()), nil
	case v.kind == KindBool && w.kind == KindBool:
		return BoolValue(v.t || w.t), nil
	}
	return arith(opAdd, v, w)
}

// Sub returns v - w.
func (v Value) Sub(w Value) (Value, error) {
	if v.kind == KindNothing || w.kind == KindNothing {
		return Value{}, nil
	}
	return arith(opSub, v, w)
}

// Mul returns v * w. Two Bools multiply as logical and.
func (v Value) Mul(w Value) (Value, error) {
	switch {
	case v.kind == KindNothing || w.kind == KindNothing:
		return Value{}, nil
	case v.kind == KindBool && w.kind == KindBool:
		return BoolValue(v.t && w.t), nil
	}
	return arith(opMul, v, w)
}

// Div returns v / w. Division of integers is exact: the result is an integer
// if the quotient is whole and a rational otherwise. Division by zero of any
// numeric kind is an error.
func (v Value) Div(w Value) (Value, error) {
	if v.kind == KindNothing || w.kind == KindNothing {
		return Value{}, nil
	}
	if w.kind.numeric() && w.sign() == 0 {
		return Value{}, evalErr("division by " + w.kind.String() + " zero")
	}
	return arith(opDiv, v, w)
}

type arithOp byte

const (
	opAdd arithOp = '+'
	opSub arithOp = '-'
	opMul arithOp = '*'
	opDiv arithOp = '/'
)

// arith applies an operator to two numbers, promoting both to the least exact
// kind of the two.
func arith(op arithOp, v, w Value) (Value, error) {
	if !v.kind.numeric() || !w.kind.numeric() {
		return Value{}, typeErr(string(op), v, w)
	}
	k := v.kind
	if w.kind > k {
		k = w.kind
	}
	switch k {
	case KindInteger:
		if r, ok := arithInt(op, v.i, w.i); ok {
			return r, nil
		}
		// Overflow. Redo with big integers.
		return arithBig(op, big.NewInt(v.i), big.NewInt(w.i)), nil
	case KindBigInteger:
		x, _ := v.BigInt()
		y, _ := w.BigInt()
		return arithBig(op, x, y), nil
	case KindRational:
		x, _ := v.Rat()
		y, _ := w.Rat()
		var r Rational
		switch op {
		case opAdd:
			r = x.Add(y)
		case opSub:
			r = x.Sub(y)
		case opMul:
			r = x.Mul(y)
		case opDiv:
			r = x.Quo(y)
		}
		return RatValue(r).Simplify(), nil
	case KindReal:
		x, err := v.real()
		if err != nil {
			return Value{}, err
		}
		y, err := w.real()
		if err != nil {
			return Value{}, err
		}
		var r float64
		switch op {
		case opAdd:
			r = x + y
		case opSub:
			r = x - y
		case opMul:
			r = x * y
		case opDiv:
			r = x / y
		}
		return realResult(r)
	default:
		panic("exactcalc: bad numeric kind " + k.String())
	}
}

// arithInt applies an operator to two int64s. The result is false if the
// operation overflows.
func arithInt(op arithOp, x, y int64) (Value, bool) {
	switch op {
	case opAdd:
		r, ok := add64(x, y)
		return IntValue(r), ok
	case opSub:
		r, ok := sub64(x, y)
		return IntValue(r), ok
	case opMul:
		r, ok := mul64(x, y)
		return IntValue(r), ok
	case opDiv:
		if x == math.MinInt64 && y == -1 {
			return Value{}, false
		}
		if x%y == 0 {
			return IntValue(x / y), true
		}
		r, _ := NewRational(x, y)
		return RatValue(r), true
	default:
		panic("exactcalc: bad operator " + string(op))
	}
}

// arithBig applies an operator to two big integers, taking ownership of x.
func arithBig(op arithOp, x, y *big.Int) Value {
	switch op {
	case opAdd:
		return bigValue(x.Add(x, y)).Simplify()
	case opSub:
		return bigValue(x.Sub(x, y)).Simplify()
	case opMul:
		return bigValue(x.Mul(x, y)).Simplify()
	case opDiv:
		q, m := new(big.Int).QuoRem(x, y, new(big.Int))
		if m.Sign() == 0 {
			return bigValue(q).Simplify()
		}
		return RatValue(ratio(x, new(big.Int).Set(y))).Simplify()
	default:
		panic("exactcalc: bad operator " + string(op))
	}
}

// Pow returns v raised to the power w. An integer or rational raised to an
// integer power is exact; negative powers invert. Big integers may be neither
// base nor exponent. Any other power is computed in floating point.
func (v Value) Pow(w Value) (Value, error) {
	if v.kind == KindNothing || w.kind == KindNothing {
		return Value{}, nil
	}
	if !v.kind.numeric() || !w.kind.numeric() {
		return Value{}, typeErr("^", v, w)
	}
	if v.kind == KindBigInteger || w.kind == KindBigInteger {
		return Value{}, evalErr("exponentiation of big integers is not allowed")
	}
	switch v.kind {
	case KindInteger:
		if w.kind == KindInteger {
			return powInt(v.i, w.i)
		}
	case KindRational:
		switch w.kind {
		case KindInteger:
			return powRat(v.r, w.i)
		case KindRational, KindReal:
			y, err := w.real()
			if err != nil {
				return Value{}, err
			}
			return powBigFloat(v.r, y)
		}
	}
	x, err := v.real()
	if err != nil {
		return Value{}, err
	}
	y, err := w.real()
	if err != nil {
		return Value{}, err
	}
	return realResult(math.Pow(x, y))
}

// powInt computes x^e exactly.
func powInt(x, e int64) (Value, error) {
	if e < 0 {
		if x == 0 {
			return Value{}, evalErr("division by integer zero")
		}
		d, err := powInt(x, -(e + 1))
		if err != nil {
			return Value{}, err
		}
		// x^e = 1 / (x^(-e-1) * x); splitting off one factor keeps -e in range.
		if d, err = d.Mul(IntValue(x)); err != nil {
			return Value{}, err
		}
		return IntValue(1).Div(d)
	}
	switch x {
	case 0, 1:
		if e == 0 {
			return IntValue(1), nil
		}
		return IntValue(x), nil
	case -1:
		if e%2 == 0 {
			return IntValue(1), nil
		}
		return IntValue(-1), nil
	}
	r, b := int64(1), x
	for n := e; n > 0; n >>= 1 {
		var ok bool
		if n&1 != 0 {
			if r, ok = mul64(r, b); !ok {
				return powBig(x, e)
			}
		}
		if n > 1 {
			if b, ok = mul64(b, b); !ok {
				return powBig(x, e)
			}
		}
	}
	return IntValue(r), nil
}

// powBig computes x^e as a big integer for e >= 0.
func powBig(x, e int64) (Value, error) {
	b := big.NewInt(x)
	if e > maxPowBits || int64(b.BitLen())*e > maxPowBits {
		return Value{}, evalErr("result of exponentiation is too large")
	}
	return bigValue(b.Exp(b, big.NewInt(e), nil)).Simplify(), nil
}

// powRat computes r^e exactly.
func powRat(r Rational, e int64) (Value, error) {
	if r.Sign() == 0 && e < 0 {
		return Value{}, evalErr("division by rational zero")
	}
	n := e
	if n < 0 {
		n = -n
	}
	bits := r.n().BitLen()
	if d := r.d().BitLen(); d > bits {
		bits = d
	}
	if n < 0 || n > maxPowBits || int64(bits)*n > maxPowBits {
		return Value{}, evalErr("result of exponentiation is too large")
	}
	return RatValue(r.PowInt(e)).Simplify(), nil
}

// powBigFloat computes r^y for a fractional exponent y. Positive bases are
// computed with arbitrary precision so that rationals too large for a float64
// can still be raised to small powers.
func powBigFloat(r Rational, y float64) (Value, error) {
	if r.Sign() <= 0 || math.IsInf(y, 0) || math.IsNaN(y) {
		x, ok := r.Float64()
		if !ok {
			return Value{}, evalErr("rational " + r.String() + " cannot be converted to a real number")
		}
		return realResult(math.Pow(x, y))
	}
	x := r.bigFloat(powPrec)
	z := new(big.Float).SetPrec(powPrec)
	if err := bigcall(func() { bigfloat.Pow(z, x, new(big.Float).SetPrec(powPrec).SetFloat64(y)) }); err != nil {
		return Value{}, evalErr("cannot raise " + r.String() + " to a real power: " + err.Error())
	}
	f, _ := z.Float64()
	return realResult(f)
}

// bigcall calls f, converting a big.ErrNaN panic to an error.
func bigcall(f func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		nan, ok := r.(big.ErrNaN)
		if !ok {
			panic(r)
		}
		err = nan
	}()
	f()
	return nil
}

// realResult checks that a floating-point result is a number.
func realResult(f float64) (Value, error) {
	switch {
	case math.IsNaN(f):
		return Value{}, evalErr("result is not a real number")
	case math.IsInf(f, 0):
		return Value{}, evalErr("result is too large for a real number")
	}
	return RealValue(f).Simplify(), nil
}

// typeErr creates an error for an operator applied to incompatible values.
func typeErr(op string, v, w Value) error {
	return evalErr("operator " + op + " cannot be applied to " + v.kind.String() + " " + v.String() + " and " + w.kind.String() + " " + w.String())
}

func add64(x, y int64) (int64, bool) {
	s := x + y
	return s, (s > x) == (y > 0)
}

func sub64(x, y int64) (int64, bool) {
	d := x - y
	return d, (d < x) == (y > 0)
}

func mul64(x, y int64) (int64, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}
	p := x * y
	if (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return p, false
	}
	return p, p/y == x
}

// Compare orders two numbers by their exact values, returning -1, 0, or 1.
// Reals are compared as the exact binary fractions they hold, so that e.g.
// 0.1 as a Real differs from the Rational 1/10.
func Compare(v, w Value) (int, error) {
	if !v.kind.numeric() || !w.kind.numeric() {
		return 0, evalErr("cannot compare " + v.kind.String() + " " + v.String() + " and " + w.kind.String() + " " + w.String())
	}
	if v.kind == KindInteger && w.kind == KindInteger {
		switch {
		case v.i < w.i:
			return -1, nil
		case v.i > w.i:
			return 1, nil
		}
		return 0, nil
	}
	return v.exact().Cmp(w.exact()), nil
}

// exact converts a numeric value to a Rational without loss.
func (v Value) exact() Rational {
	if r, ok := v.Rat(); ok {
		return r
	}
	q := new(big.Rat).SetFloat64(v.f)
	return Rational{num: new(big.Int).Set(q.Num()), den: new(big.Int).Set(q.Denom())}
}
