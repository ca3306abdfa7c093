package exactcalc_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/zephyrtronium/exactcalc"
)

func TestFuncs(t *testing.T) {
	var (
		i    = exactcalc.IntValue
		half = ratv(t, 1, 2)
	)
	cases := []struct {
		name string
		src  string
		want exactcalc.Value
	}{
		{"abs", "abs(-5)", i(5)},
		{"abs-pos", "abs(5)", i(5)},
		{"abs-min", "abs(i64min)", bigv(t, "9223372036854775808")},
		{"abs-rat", "abs(-1/2)", half},
		{"abs-real", "abs(0-1e3)", exactcalc.RealValue(1000)},
		{"sqrt", "sqrt(16)", i(4)},
		{"sqrt-zero", "sqrt(0)", i(0)},
		{"sqrt-irrational", "sqrt(2)", exactcalc.RealValue(1.4142135623730951)},
		{"sqrt-rat", "sqrt(1/4)", half},
		{"sqrt-rat-decimal", "sqrt(2.25)", ratv(t, 3, 2)},
		{"sqrt-big", "sqrt(10000000000000000000000000000000000000000)", bigv(t, "100000000000000000000")},
		{"ln-one", "ln(1)", i(0)},
		{"exp-zero", "exp(0)", i(1)},
		{"sin-zero", "sin(0)", i(0)},
		{"cos-zero", "cos(0)", i(1)},
		{"sind-30", "sind(30)", half},
		{"sind-90", "sind(90)", i(1)},
		{"sind-180", "sind(180)", i(0)},
		{"sind-390", "sind(390)", half},
		{"sind-neg", "sind(-30)", ratv(t, -1, 2)},
		{"sind-270", "sind(270)", i(-1)},
		{"sind-big", "sind(360000000000000000000030)", half},
		{"cosd-60", "cosd(60)", half},
		{"cosd-neg", "cosd(-60)", half},
		{"cosd-180", "cosd(180)", i(-1)},
		{"cosd-90", "cosd(90)", i(0)},
		{"sinpi-sixth", "sinpi(1/6)", half},
		{"sinpi-half", "sinpi(1/2)", i(1)},
		{"sinpi-three-halves", "sinpi(3/2)", i(-1)},
		{"sinpi-wrap", "sinpi(5/2)", i(1)},
		{"sinpi-neg", "sinpi(-1/2)", i(-1)},
		{"sinpi-int", "sinpi(7)", i(0)},
		{"sinpi-decimal", "sinpi(1.5)", i(-1)},
		{"fact-zero", "fact(0)", i(1)},
		{"fact", "fact(5)", i(120)},
		{"fact-20", "fact(20)", i(2432902008176640000)},
		{"fact-big", "fact(21)", bigv(t, "51090942171709440000")},
		{"fact-upper", "FACT(3)", i(6)},
		{"fact-space", "fact (3)", i(6)},
		{"nck", "nck(5,2)", i(10)},
		{"nck-zero", "nck(5, 0)", i(1)},
		{"nck-all", "nck(5, 5)", i(1)},
		{"nck-large", "nck(50, 25)", i(126410606437752)},
		{"nck-big", "nck(100, 50)", bigv(t, "100891344545564193334812497256")},
		{"comb", "comb(5, 2, false)", i(10)},
		{"comb-rep", "comb(5, 2, true)", i(15)},
		{"max", "max(1, 5/2, 2.4)", ratv(t, 5, 2)},
		{"max-one", "max(3)", i(3)},
		{"max-real", "max(1/3, 0.5e0)", exactcalc.RealValue(0.5)},
		{"max-tie", "max(2, 2e0)", i(2)},
		{"min", "min(1, 1/2, 0.75)", half},
		{"min-neg", "min(0, -1, -1/2)", i(-1)},
		{"nested", "sqrt(fact(4)+1)", i(5)},
		{"args", "max(1, nck(4,2), 2^2)", i(6)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := exactcalc.Evaluate(c.src)
			if err != nil {
				t.Fatalf("%q: %v", c.src, err)
			}
			if !v.Equal(c.want) {
				t.Errorf("%q: want %s, got %s", c.src, c.want.Tagged(), v.Tagged())
			}
		})
	}
}

func TestFuncsApprox(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"ln", "ln(2)", math.Ln2},
		{"ln-rat", "ln(1/2)", -math.Ln2},
		{"ln-big", "ln(100000000000000000000)", 20 * math.Ln10},
		{"log", "log(1000)", 3},
		{"log-base", "log(8, 2)", 3},
		{"log-rat", "log(1/100)", -2},
		{"exp", "exp(1)", math.E},
		{"exp-neg", "exp(-1)", 1 / math.E},
		{"sin", "sin(1)", math.Sin(1)},
		{"cos", "cos(pi)", -1},
		{"sind-45", "sind(45)", math.Sqrt2 / 2},
		{"sind-real", "sind(30e0)", 0.5},
		{"sinpi-quarter", "sinpi(1/4)", math.Sqrt2 / 2},
		{"sqrt-rat", "sqrt(1/2)", math.Sqrt2 / 2},
		{"sqrt-real", "sqrt(2e0)", math.Sqrt2},
		{"sqrt-big-nonsquare", "sqrt(10^40+1)", 1e20},
		{"sqrt-big-rat", "sqrt(2/10^40)", math.Sqrt2 / 1e20},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := exactcalc.Evaluate(c.src)
			if err != nil {
				t.Fatalf("%q: %v", c.src, err)
			}
			f, ok := v.Float64()
			if !ok {
				t.Fatalf("%q: result %s is not real", c.src, v.Tagged())
			}
			if math.Abs(f-c.want) > 1e-14*math.Max(1, math.Abs(c.want)) {
				t.Errorf("%q: want %g, got %g", c.src, c.want, f)
			}
		})
	}
}

func TestFuncErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		fn   string
		msg  string
	}{
		{"unknown", "nosuch(1)", "nosuch", "no such function"},
		{"fact-arity", "fact(1,2)", "fact", "1 argument"},
		{"nck-arity", "nck(1)", "nck", "2 arguments"},
		{"log-arity", "log(1, 2, 3)", "log", "1 or 2 arguments"},
		{"max-arity", "max()", "max", "at least 1 argument"},
		{"fact-neg", "fact(-1)", "fact", "outside domain"},
		{"fact-limit", "fact(101)", "fact", "limit"},
		{"fact-rat", "fact(5/2)", "fact", "integer"},
		{"fact-big", "fact(100000000000000000000)", "fact", "too large"},
		{"fact-text", `fact("a")`, "fact", "text"},
		{"nck-order", "nck(2, 5)", "nck", "at least"},
		{"nck-neg", "nck(5, -1)", "nck", "argument 2"},
		{"comb-bool", "comb(5, 2, 1)", "comb", "bool"},
		{"abs-text", `abs("a")`, "abs", "text"},
		{"abs-bool", "abs(true)", "abs", "bool"},
		{"sqrt-neg", "sqrt(-1)", "sqrt", "outside domain"},
		{"ln-zero", "ln(0)", "ln", "outside domain"},
		{"ln-neg", "ln(-1)", "ln", "outside domain"},
		{"log-neg", "log(-1)", "log", "outside domain"},
		{"log-base-one", "log(5, 1)", "log", "argument 2"},
		{"sind-text", `sind("a")`, "sind", "text"},
		{"sinpi-bool", "sinpi(false)", "sinpi", "bool"},
		{"max-text", `max(1, "a")`, "max", "argument 2"},
		{"min-bool", "min(true)", "min", "argument 1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := exactcalc.Evaluate(c.src)
			if err == nil {
				t.Fatalf("%q: no error, got %s", c.src, v.Tagged())
			}
			var ferr *exactcalc.FuncCallError
			if !errors.As(err, &ferr) {
				t.Fatalf("%q: error %#v is not a *FuncCallError", c.src, err)
			}
			if ferr.Func != c.fn {
				t.Errorf("%q: error names %q, not %q", c.src, ferr.Func, c.fn)
			}
			if !strings.Contains(err.Error(), c.msg) {
				t.Errorf("%q: message %q does not mention %q", c.src, err.Error(), c.msg)
			}
		})
	}
}

func TestFuncOverflow(t *testing.T) {
	cases := []string{
		"exp(100000)",
		"exp(1000)",
		"sqrt(10^700+1)",
		"sqrt(1/(10^700+1))",
		"sqrt(10^700+1)+1",
		`sqrt(10^700+1)*"x"`,
	}
	for _, src := range cases {
		v, err := exactcalc.Evaluate(src)
		if err == nil {
			t.Errorf("%q: no error, got %s", src, v.Tagged())
			continue
		}
		var eerr *exactcalc.EvaluateError
		if !errors.As(err, &eerr) {
			t.Errorf("%q: error %#v is not an *EvaluateError", src, err)
		}
	}
}

func TestFactorialLimit(t *testing.T) {
	ctx := exactcalc.NewContext(exactcalc.FactorialLimit(10))
	if v, err := ctx.Eval("fact(10)"); err != nil || !v.Equal(exactcalc.IntValue(3628800)) {
		t.Errorf("fact(10) gave %s, %v", v.Tagged(), err)
	}
	if v, err := ctx.Eval("fact(11)"); err == nil {
		t.Errorf("fact(11) gave %s", v.Tagged())
	}
	if v, err := ctx.Eval("nck(30, 11)"); err == nil {
		t.Errorf("nck(30, 11) gave %s", v.Tagged())
	}
	if v, err := ctx.Eval("nck(30, 25)"); err != nil || !v.Equal(exactcalc.IntValue(142506)) {
		t.Errorf("nck(30, 25) gave %s, %v", v.Tagged(), err)
	}
}

func TestSetFunc(t *testing.T) {
	twice := exactcalc.Monadic(func(ctx *exactcalc.Context, x exactcalc.Value) (exactcalc.Value, error) {
		return x.Add(x)
	})
	ctx := exactcalc.NewContext(exactcalc.SetFunc("Twice", twice), exactcalc.SetFunc("sqrt", nil))
	if v, err := ctx.Eval("twice(1/3)"); err != nil || !v.Equal(ratv(t, 2, 3)) {
		t.Errorf("twice(1/3) gave %s, %v", v.Tagged(), err)
	}
	if v, err := ctx.Eval("sqrt(4)"); err == nil {
		t.Errorf("disabled sqrt gave %s", v.Tagged())
	}
	if ctx.Lookup("sqrt") != nil {
		t.Error("disabled sqrt is still in the context")
	}
	// The default context must not see the changes.
	if v, err := exactcalc.Evaluate("sqrt(4)"); err != nil || !v.Equal(exactcalc.IntValue(2)) {
		t.Errorf("default sqrt(4) gave %s, %v", v.Tagged(), err)
	}
	if v, err := exactcalc.Evaluate("twice(1)"); err == nil {
		t.Errorf("default context has twice: %s", v.Tagged())
	}
}

func TestSetFuncs(t *testing.T) {
	zero := exactcalc.NewFunc(exactcalc.Arity{Min: 0, Max: 0}, func(ctx *exactcalc.Context, args []exactcalc.Value) (exactcalc.Value, error) {
		return exactcalc.IntValue(0), nil
	})
	ctx := exactcalc.NewContext(exactcalc.SetFuncs(map[string]exactcalc.Func{"zero": zero, "fact": nil}))
	if v, err := ctx.Eval("zero() + 1"); err != nil || !v.Equal(exactcalc.IntValue(1)) {
		t.Errorf("zero() + 1 gave %s, %v", v.Tagged(), err)
	}
	if v, err := ctx.Eval("fact(3)"); err == nil {
		t.Errorf("disabled fact gave %s", v.Tagged())
	}
}

func TestDefaultFuncs(t *testing.T) {
	m := exactcalc.DefaultFuncs()
	for _, name := range []string{"abs", "ln", "log", "exp", "sqrt", "sin", "cos", "sind", "cosd", "sinpi", "fact", "nck", "comb", "max", "min"} {
		if m[name] == nil {
			t.Errorf("missing %s", name)
		}
	}
	delete(m, "abs")
	if v, err := exactcalc.Evaluate("abs(-1)"); err != nil || !v.Equal(exactcalc.IntValue(1)) {
		t.Errorf("changing DefaultFuncs changed the builtins: %s, %v", v.Tagged(), err)
	}
}

func TestArity(t *testing.T) {
	cases := []struct {
		a   exactcalc.Arity
		s   string
		yes []int
		no  []int
	}{
		{exactcalc.Arity{Min: 1, Max: 1}, "1 argument", []int{1}, []int{0, 2}},
		{exactcalc.Arity{Min: 2, Max: 2}, "2 arguments", []int{2}, []int{1, 3}},
		{exactcalc.Arity{Min: 1, Max: 2}, "1 or 2 arguments", []int{1, 2}, []int{0, 3}},
		{exactcalc.Arity{Min: 0, Max: 3}, "0 to 3 arguments", []int{0, 3}, []int{4}},
		{exactcalc.Arity{Min: 1, Max: -1}, "at least 1 argument", []int{1, 100}, []int{0}},
		{exactcalc.Arity{Min: 0, Max: 0}, "0 arguments", []int{0}, []int{1}},
	}
	for _, c := range cases {
		if got := c.a.String(); got != c.s {
			t.Errorf("%+v: want %q, got %q", c.a, c.s, got)
		}
		for _, n := range c.yes {
			if !c.a.Allows(n) {
				t.Errorf("%+v does not allow %d", c.a, n)
			}
		}
		for _, n := range c.no {
			if c.a.Allows(n) {
				t.Errorf("%+v allows %d", c.a, n)
			}
		}
	}
}

func TestFuncCall(t *testing.T) {
	ctx := exactcalc.NewContext()
	c := exactcalc.NewFuncCall("  NCK ", []exactcalc.Value{exactcalc.IntValue(6), exactcalc.IntValue(3)})
	if c.Name != "nck" {
		t.Errorf("name not normalized: %q", c.Name)
	}
	v, err := c.Eval(ctx)
	if err != nil || !v.Equal(exactcalc.IntValue(20)) {
		t.Errorf("nck(6, 3) gave %s, %v", v.Tagged(), err)
	}
}
