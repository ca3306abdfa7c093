package exactcalc

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Kind is the type of a Value. Numeric kinds are ordered from most to least
// exact, so that mixing two kinds in an operation promotes to the greater.
type Kind int8

const (
	KindNothing Kind = iota
	KindInteger
	KindBigInteger
	KindRational
	KindReal
	KindText
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNothing:
		return "nothing"
	case KindInteger:
		return "integer"
	case KindBigInteger:
		return "big integer"
	case KindRational:
		return "rational"
	case KindReal:
		return "real"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// numeric reports whether k is one of the number kinds.
func (k Kind) numeric() bool {
	return KindInteger <= k && k <= KindReal
}

// Value is the result of evaluating an expression or subexpression. The zero
// Value is Nothing, which propagates through every operator.
//
// Values are immutable. Operations return new values and never modify their
// operands, so Values may be shared freely.
type Value struct {
	kind Kind
	i    int64
	b    *big.Int
	r    Rational
	f    float64
	s    string
	t    bool
}

// IntValue creates an Integer value.
func IntValue(x int64) Value {
	return Value{kind: KindInteger, i: x}
}

// BigValue creates a BigInteger value. x is not retained.
func BigValue(x *big.Int) Value {
	return Value{kind: KindBigInteger, b: new(big.Int).Set(x)}
}

// bigValue creates a BigInteger value that owns x.
func bigValue(x *big.Int) Value {
	return Value{kind: KindBigInteger, b: x}
}

// RatValue creates a Rational value.
func RatValue(r Rational) Value {
	return Value{kind: KindRational, r: r}
}

// RealValue creates a Real value.
func RealValue(x float64) Value {
	return Value{kind: KindReal, f: x}
}

// TextValue creates a Text value.
func TextValue(s string) Value {
	return Value{kind: KindText, s: s}
}

// BoolValue creates a Bool value.
func BoolValue(t bool) Value {
	return Value{kind: KindBool, t: t}
}

// Kind returns the type of v.
func (v Value) Kind() Kind {
	return v.kind
}

// Int64 returns v's value if it is an Integer.
func (v Value) Int64() (int64, bool) {
	return v.i, v.kind == KindInteger
}

// BigInt returns a copy of v's value if it is an Integer or BigInteger.
func (v Value) BigInt() (*big.Int, bool) {
	switch v.kind {
	case KindInteger:
		return big.NewInt(v.i), true
	case KindBigInteger:
		return new(big.Int).Set(v.b), true
	default:
		return nil, false
	}
}

// Rat returns v's value as a Rational if it is an Integer, BigInteger, or
// Rational.
func (v Value) Rat() (Rational, bool) {
	switch v.kind {
	case KindInteger:
		return RationalFromInt(v.i), true
	case KindBigInteger:
		return RationalFromBig(v.b), true
	case KindRational:
		return v.r, true
	default:
		return Rational{}, false
	}
}

// Float64 returns v's value if it is a Real.
func (v Value) Float64() (float64, bool) {
	return v.f, v.kind == KindReal
}

// Text returns v's value if it is Text.
func (v Value) Text() (string, bool) {
	return v.s, v.kind == KindText
}

// Bool returns v's value if it is a Bool.
func (v Value) Bool() (bool, bool) {
	return v.t, v.kind == KindBool
}

// real converts any numeric value to the nearest float64.
func (v Value) real() (float64, error) {
	switch v.kind {
	case KindInteger:
		return float64(v.i), nil
	case KindBigInteger:
		f, _ := new(big.Float).SetInt(v.b).Float64()
		if math.IsInf(f, 0) {
			return 0, evalErr("big integer " + v.b.String() + " cannot be converted to a real number")
		}
		return f, nil
	case KindRational:
		f, ok := v.r.Float64()
		if !ok {
			return 0, evalErr("rational " + v.r.String() + " cannot be converted to a real number")
		}
		return f, nil
	case KindReal:
		return v.f, nil
	default:
		return 0, evalErr(v.kind.String() + " cannot be converted to a real number")
	}
}

// sign returns the sign of a numeric value.
func (v Value) sign() int {
	switch v.kind {
	case KindInteger:
		switch {
		case v.i < 0:
			return -1
		case v.i > 0:
			return 1
		}
	case KindBigInteger:
		return v.b.Sign()
	case KindRational:
		return v.r.Sign()
	case KindReal:
		switch {
		case v.f < 0:
			return -1
		case v.f > 0:
			return 1
		}
	}
	return 0
}

// Simplify converts v to the least general kind that represents it exactly.
// Integral Rationals become BigIntegers or Integers, BigIntegers that fit in
// 64 bits become Integers, and a Real zero becomes Integer 0.
func (v Value) Simplify() Value {
	switch v.kind {
	case KindReal:
		if v.f == 0 {
			return IntValue(0)
		}
	case KindBigInteger:
		if v.b.IsInt64() {
			return IntValue(v.b.Int64())
		}
	case KindRational:
		if b, ok := v.r.BigInt(); ok {
			return bigValue(b).Simplify()
		}
	}
	return v
}

// Equal reports whether v and w have the same kind and value.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindNothing:
		return true
	case KindInteger:
		return v.i == w.i
	case KindBigInteger:
		return v.b.Cmp(w.b) == 0
	case KindRational:
		return v.r.Cmp(w.r) == 0
	case KindReal:
		return v.f == w.f
	case KindText:
		return v.s == w.s
	case KindBool:
		return v.t == w.t
	default:
		panic("exactcalc: invalid value kind " + v.kind.String())
	}
}

// String returns the plain text form of v, which is also the text used when
// v is concatenated to Text.
func (v Value) String() string {
	switch v.kind {
	case KindNothing:
		return "{}"
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindBigInteger:
		return v.b.String()
	case KindRational:
		return v.r.String()
	case KindReal:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindText:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.t)
	default:
		panic("exactcalc: invalid value kind " + v.kind.String())
	}
}

// Tagged returns v formatted for display. Numbers are followed by a tab and
// their kind in parentheses, e.g. "7 / 3\t(rational)". Text is quoted.
func (v Value) Tagged() string {
	switch v.kind {
	case KindText:
		return `"` + v.s + `"`
	case KindNothing, KindBool:
		return v.String()
	default:
		return v.String() + "\t(" + v.kind.String() + ")"
	}
}

// Render formats a result for display. It is the same as v.Tagged, except
// that a Rational is followed by a second line showing its real value.
func Render(v Value) string {
	s := v.Tagged()
	if v.kind == KindRational {
		if f, ok := v.r.Float64(); ok {
			s += "\n" + RealValue(f).Tagged()
		}
	}
	return s
}

// constants are the named values recognized in expressions, keyed by their
// lower-case names.
var constants = map[string]Value{
	"pi":     RealValue(math.Pi),
	"e":      RealValue(math.E),
	"sqrt2":  RealValue(math.Sqrt2),
	"sqrt3":  RealValue(1.7320508075688772935274463415058723669428052538103806),
	"i64max": IntValue(math.MaxInt64),
	"i64min": IntValue(math.MinInt64),
}

// Constant returns the value of a named constant. Names are case-insensitive
// and surrounding whitespace is ignored.
func Constant(name string) (Value, bool) {
	v, ok := constants[strings.ToLower(strings.TrimSpace(name))]
	return v, ok
}

// hexFloat returns whether s is spelled with a hexadecimal prefix, which
// strconv.ParseFloat accepts but calculator input does not.
func hexFloat(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

// stringLiteral returns the content of s if s is exactly one double-quoted
// string.
func stringLiteral(s string) (string, bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}
	in := s[1 : len(s)-1]
	if strings.IndexByte(in, '"') >= 0 {
		return "", false
	}
	return in, true
}

// ParseValue parses the text of a single literal value. It tries, in order:
// a double-quoted string, a 64-bit integer, a big integer, a decimal number
// as an exact rational, a named constant, true or false, and finally a
// floating-point number. Since the last loses precision, warn is called with
// a message describing the loss if it is used; warn may be nil.
//
// The result is simplified. Text shaped like a decimal number whose digits
// cannot be converted gives a *ParseError.
func ParseValue(s string, warn func(string)) (Value, error) {
	s = strings.TrimSpace(s)
	if t, ok := stringLiteral(s); ok {
		return TextValue(t), nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntValue(i), nil
	}
	if b, ok := new(big.Int).SetString(s, 10); ok {
		return bigValue(b).Simplify(), nil
	}
	r, err := ParseDecimal(s)
	if err == nil {
		return RatValue(r).Simplify(), nil
	}
	if errors.Is(err, ErrDecimalDigits) {
		return Value{}, err
	}
	if c, ok := Constant(s); ok {
		return c, nil
	}
	switch s {
	case "true":
		return BoolValue(true), nil
	case "false":
		return BoolValue(false), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) && !hexFloat(s) {
		if warn != nil {
			warn("warning: " + strconv.Quote(s) + " was read as a real number; the result may be inexact")
		}
		return RealValue(f).Simplify(), nil
	}
	return Value{}, evalErr(strconv.Quote(s) + " is not a valid value")
}
