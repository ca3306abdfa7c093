package exactcalc

import (
	"errors"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// Rational is an exact fraction of arbitrary-precision integers. Every
// Rational obtained from this package is reduced to lowest terms and has a
// positive denominator. The zero value is 0/1.
//
// Rationals are immutable. Methods return new values and never modify their
// receivers or arguments.
type Rational struct {
	num, den *big.Int
}

var (
	// ErrDecimalShape is wrapped by errors from ParseDecimal when the text
	// does not look like a decimal number.
	ErrDecimalShape = errors.New("not a decimal number")
	// ErrDecimalDigits is wrapped by errors from ParseDecimal when the text
	// looks like a decimal number but its digits cannot be converted.
	ErrDecimalDigits = errors.New("invalid digits in decimal number")
	// ErrZeroDenominator is returned when constructing a Rational with a
	// denominator of zero.
	ErrZeroDenominator = errors.New("zero denominator")
)

var bigOne = big.NewInt(1)

// NewRational creates the reduced fraction n/d.
func NewRational(n, d int64) (Rational, error) {
	if d == 0 {
		return Rational{}, ErrZeroDenominator
	}
	return ratio(big.NewInt(n), big.NewInt(d)), nil
}

// NewBigRational creates the reduced fraction n/d. n and d are not retained.
func NewBigRational(n, d *big.Int) (Rational, error) {
	if d.Sign() == 0 {
		return Rational{}, ErrZeroDenominator
	}
	return ratio(new(big.Int).Set(n), new(big.Int).Set(d)), nil
}

// RationalFromInt creates the Rational i/1.
func RationalFromInt(i int64) Rational {
	return Rational{num: big.NewInt(i), den: big.NewInt(1)}
}

// RationalFromBig creates the Rational i/1. i is not retained.
func RationalFromBig(i *big.Int) Rational {
	return Rational{num: new(big.Int).Set(i), den: big.NewInt(1)}
}

// ratio reduces n/d, taking ownership of both. d must be nonzero.
func ratio(n, d *big.Int) Rational {
	g := new(big.Int).GCD(nil, nil, n, d)
	if g.Cmp(bigOne) > 0 {
		n.Quo(n, g)
		d.Quo(d, g)
	}
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	return Rational{num: n, den: d}
}

func (r Rational) n() *big.Int {
	if r.num == nil {
		return new(big.Int)
	}
	return r.num
}

func (r Rational) d() *big.Int {
	if r.den == nil {
		return bigOne
	}
	return r.den
}

// decimalRE matches a decimal number. \p{Nd} rather than [0-9] lets digits
// from other scripts through to conversion, which then fails with a more
// specific error.
var decimalRE = regexp.MustCompile(`^(\p{Nd}+)(?:\.(\p{Nd}+))?$`)

// ParseDecimal parses text of the form "123" or "123.456" into an exact
// Rational, e.g. "2.50" is 5/2. Signs are not accepted.
func ParseDecimal(s string) (Rational, error) {
	m := decimalRE.FindStringSubmatch(s)
	if m == nil {
		return Rational{}, &ParseError{Msg: "cannot read " + strconv.Quote(s) + " as a fraction", Err: ErrDecimalShape}
	}
	whole, frac := m[1], strings.TrimRight(m[2], "0")
	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return Rational{}, &ParseError{Msg: "cannot read " + strconv.Quote(whole), Err: ErrDecimalDigits}
	}
	if frac == "" {
		return Rational{num: n, den: big.NewInt(1)}, nil
	}
	f, ok := new(big.Int).SetString(frac, 10)
	if !ok {
		return Rational{}, &ParseError{Msg: "cannot read " + strconv.Quote(frac), Err: ErrDecimalDigits}
	}
	d := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(len(frac))), nil)
	n.Mul(n, d).Add(n, f)
	return ratio(n, d), nil
}

// Num returns a copy of the numerator.
func (r Rational) Num() *big.Int {
	return new(big.Int).Set(r.n())
}

// Denom returns a copy of the denominator, which is always positive.
func (r Rational) Denom() *big.Int {
	return new(big.Int).Set(r.d())
}

// Sign returns -1, 0, or 1 according to the sign of r.
func (r Rational) Sign() int {
	return r.n().Sign()
}

// IsInt reports whether r is an integer.
func (r Rational) IsInt() bool {
	return r.d().CmpAbs(bigOne) == 0
}

// Add returns r + s. The sum is formed over the least common multiple of the
// two denominators.
func (r Rational) Add(s Rational) Rational {
	if r.d().Cmp(s.d()) == 0 {
		n := new(big.Int).Add(r.n(), s.n())
		return ratio(n, new(big.Int).Set(r.d()))
	}
	g := new(big.Int).GCD(nil, nil, r.d(), s.d())
	lcm := new(big.Int).Quo(r.d(), g)
	lcm.Mul(lcm, s.d())
	a := new(big.Int).Quo(lcm, r.d())
	a.Mul(a, r.n())
	b := new(big.Int).Quo(lcm, s.d())
	b.Mul(b, s.n())
	return ratio(a.Add(a, b), lcm)
}

// Sub returns r - s.
func (r Rational) Sub(s Rational) Rational {
	return r.Add(s.Neg())
}

// Mul returns r * s.
func (r Rational) Mul(s Rational) Rational {
	n := new(big.Int).Mul(r.n(), s.n())
	d := new(big.Int).Mul(r.d(), s.d())
	return ratio(n, d)
}

// Quo returns r / s. Quo panics if s is zero.
func (r Rational) Quo(s Rational) Rational {
	return r.Mul(s.Inv())
}

// Neg returns -r.
func (r Rational) Neg() Rational {
	return Rational{num: new(big.Int).Neg(r.n()), den: new(big.Int).Set(r.d())}
}

// Abs returns |r|.
func (r Rational) Abs() Rational {
	return Rational{num: new(big.Int).Abs(r.n()), den: new(big.Int).Set(r.d())}
}

// Inv returns 1/r. Inv panics if r is zero.
func (r Rational) Inv() Rational {
	if r.Sign() == 0 {
		panic("exactcalc: inverse of zero")
	}
	return ratio(new(big.Int).Set(r.d()), new(big.Int).Set(r.n()))
}

// PowInt returns r raised to an integer power. Negative exponents invert r
// first. PowInt panics if r is zero and e is negative.
func (r Rational) PowInt(e int64) Rational {
	if e < 0 {
		r = r.Inv()
		e = -e // -MinInt64 stays negative; the conversion to uint64 below fixes it
	}
	x := new(big.Int).SetUint64(uint64(e))
	n := new(big.Int).Exp(r.n(), x, nil)
	d := new(big.Int).Exp(r.d(), x, nil)
	return ratio(n, d)
}

// Cmp compares r and s by cross-multiplication, returning -1, 0, or 1.
func (r Rational) Cmp(s Rational) int {
	a := new(big.Int).Mul(r.n(), s.d())
	b := new(big.Int).Mul(s.n(), r.d())
	return a.Cmp(b)
}

// BigInt returns the numerator if r is an integer.
func (r Rational) BigInt() (*big.Int, bool) {
	if !r.IsInt() {
		return nil, false
	}
	return r.Num(), true
}

// Float64 returns the nearest float64 to r. The result is false if r is too
// large in magnitude to be represented.
func (r Rational) Float64() (float64, bool) {
	f, _ := new(big.Rat).SetFrac(r.n(), r.d()).Float64()
	return f, !math.IsInf(f, 0)
}

// bigFloat converts r to a big.Float with the given precision.
func (r Rational) bigFloat(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec).SetRat(new(big.Rat).SetFrac(r.n(), r.d()))
}

// String formats r as "n / d".
func (r Rational) String() string {
	return r.n().String() + " / " + r.d().String()
}
