package calc_test

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sync"
	"testing"

	"github.com/zephyrtronium/calc"
)

func TestEval(t *testing.T) {
	type vv struct {
		n string
		v float64
	}
	type vc struct {
		vars []vv
		r    float64
	}
	cases := []struct {
		name string
		src  string
		r    []vc
	}{
		{"num", "1", []vc{{nil, 1}}},
		{"ident", "x", []vc{
			{[]vv{{"x", 4}}, 4},
			{[]vv{{"x", 5}}, 5},
			{[]vv{{"x", 6}}, 6},
		}},
		{"plus", "+x", []vc{
			{[]vv{{"x", 4}}, 4},
			{[]vv{{"x", -5}}, -5},
		}},
		{"neg", "-x", []vc{
			{[]vv{{"x", 4}}, -4},
			{[]vv{{"x", -5}}, 5},
		}},
		{"neg-start", "-3+5", []vc{{nil, 2}}},
		{"neg-after-op", "2*-3", []vc{{nil, -6}}},
		{"neg-after-sub", "2--3", []vc{{nil, 5}}},
		{"neg-pow", "-2^2", []vc{{nil, -4}}},
		{"neg-bracket", "(-2)^2", []vc{{nil, 4}}},
		{"add", "4+5+6", []vc{{nil, 4 + 5 + 6}}},
		{"sub", "4-5-6", []vc{{nil, 4 - 5 - 6}}},
		{"mul", "4*5*6", []vc{{nil, 4 * 5 * 6}}},
		{"div", "4/5/6", []vc{{nil, 4.0 / 5.0 / 6.0}}},
		{"mod", "7%4", []vc{{nil, 3}}},
		{"mod-neg", "-7%4", []vc{{nil, -3}}},
		{"pow", "4^3^2", []vc{{nil, 262144}}},
		{"precedence", "1+2*3", []vc{{nil, 7}}},
		{"grouped", "(1+2)*3", []vc{{nil, 9}}},
		{"spaced", " 2 * ( 3 + 4 ) ", []vc{{nil, 14}}},
		{"symbols", "x*y", []vc{
			{[]vv{{"x", 3}, {"y", 4}}, 12},
			{[]vv{{"x", 0.5}, {"y", 4}}, 2},
		}},
		{"pi", "pi", []vc{{nil, math.Pi}}},
		{"e", "e", []vc{{nil, math.E}}},
		{"sqrt", "sqrt(16)", []vc{{nil, 4}}},
		{"sqrt-pow", "sqrt(4)^2", []vc{{nil, 4}}},
		{"sqrt-fact", "sqrt(9)!", []vc{{nil, 6}}},
		{"fact", "5!", []vc{{nil, 120}}},
		{"neg-fact", "-3!", []vc{{nil, -6}}},
		{"abs", "abs(-x)", []vc{
			{[]vv{{"x", 2}}, 2},
			{[]vv{{"x", -2}}, 2},
		}},
		{"floor", "floor(2.5)", []vc{{nil, 2}}},
		{"ceil", "ceil(2.5)", []vc{{nil, 3}}},
		{"trig", "sin(0)+cos(0)+tan(0)", []vc{{nil, 1}}},
		{"max", "max(3, x, 1)", []vc{
			{[]vv{{"x", 2}}, 3},
			{[]vv{{"x", 7}}, 7},
		}},
		{"min", "min(3, 1, 2)", []vc{{nil, 1}}},
		{"sum", "sum(1, 2, 3, 4)", []vc{{nil, 10}}},
		{"avg", "avg(1, 2, 3, 4)", []vc{{nil, 2.5}}},
		{"bare-sum", "sum-3", []vc{{nil, -3}}},
		{"nested", "max(min(1, 2), sum(3))", []vc{{nil, 3}}},
		{"overflow", "10^400", []vc{{nil, math.Inf(1)}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := calc.Parse(c.src)
			if err != nil {
				t.Fatal(c.src, "failed to parse:", err)
			}
			for _, v := range c.r {
				env := calc.NewEnv()
				for _, x := range v.vars {
					env.Set(x.n, x.v)
				}
				r, err := a.Eval(env)
				if err != nil {
					t.Error("evaluation error:", err)
				}
				if r != v.r {
					t.Errorf("wrong result: want %g, got %g", v.r, r)
				}
				if q, err := calc.EvalString(c.src, env); q != r || err != nil {
					t.Errorf("different results: Eval returned %g, EvalString returned %g, %v", r, q, err)
				}
			}
		})
	}
}

func TestEvalUndefNames(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    []string
	}{
		{"x", "x", []string{"x"}},
		{"plus", "+x", []string{"x"}},
		{"neg", "-x", []string{"x"}},
		{"add-lhs", "x+1", []string{"x"}},
		{"add-rhs", "1+x", []string{"x"}},
		{"sub-lhs", "x-1", []string{"x"}},
		{"sub-rhs", "1-x", []string{"x"}},
		{"mul-lhs", "x*1", []string{"x"}},
		{"mul-rhs", "1*x", []string{"x"}},
		{"div-lhs", "x/1", []string{"x"}},
		{"div-rhs", "1/x", []string{"x"}},
		{"pow-lhs", "x^1", []string{"x"}},
		{"pow-rhs", "1^x", []string{"x"}},
		{"fact", "x!", []string{"x"}},
		{"func", "exp(x)", []string{"x"}},
		{"call", "max(1, x)", []string{"x"}},
	}
	ure := regexp.MustCompile(`(?i)\bundefined`)
	vre := regexp.MustCompile(`(?i)\bvar`)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := calc.Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if v := a.Vars(); !reflect.DeepEqual(c.r, v) {
				t.Errorf("%q has wrong variables: want %q, got %q", c.src, c.r, v)
			}
			r, err := a.Eval(nil)
			if err == nil {
				t.Fatalf("%q evaluated to %g without variables", c.src, r)
			}
			var ne *calc.NameError
			if !errors.As(err, &ne) {
				t.Fatalf("%q gave wrong error: want *NameError, got %#v", c.src, err)
			}
			if ne.Name != "x" {
				t.Errorf("%q gave error for wrong name %q", c.src, ne.Name)
			}
			msg := err.Error()
			if !ure.MatchString(msg) || !vre.MatchString(msg) {
				t.Errorf("%q gave undescriptive error message %q", c.src, msg)
			}
		})
	}
}

func TestEvalApprox(t *testing.T) {
	cases := []struct {
		src string
		r   float64
	}{
		{"exp(1)", math.E},
		{"ln(e)", 1},
		{"log(1000)", 3},
		{"atan2(1, 1)*4", math.Pi},
		{"asin(1)*2", math.Pi},
		{"acos(-1)", math.Pi},
		{"atan(1)*4", math.Pi},
		{"sin(pi/6)", 0.5},
		{"cos(pi/3)", 0.5},
		{"tan(pi/4)", 1},
		{"e^2", math.E * math.E},
	}
	for _, c := range cases {
		r, err := calc.EvalString(c.src, nil)
		if err != nil {
			t.Errorf("%q failed: %v", c.src, err)
			continue
		}
		if math.Abs(r-c.r) > 1e-12*math.Max(1, math.Abs(c.r)) {
			t.Errorf("%q: want %g, got %g", c.src, c.r, r)
		}
	}
}

func TestEvalLeftFirst(t *testing.T) {
	// Operands are evaluated left to right, so the leftmost missing name is
	// the one reported.
	cases := []struct {
		src  string
		name string
	}{
		{"a+b", "a"},
		{"b+a", "b"},
		{"x*(y+z)", "y"},
		{"max(q, p)", "q"},
		{"-w/v", "w"},
	}
	env := calc.NewEnv(calc.SetVar("x", 1))
	for _, c := range cases {
		_, err := calc.EvalString(c.src, env)
		var ne *calc.NameError
		if !errors.As(err, &ne) {
			t.Errorf("%q gave wrong error %#v", c.src, err)
			continue
		}
		if ne.Name != c.name {
			t.Errorf("%q reported %q, want %q", c.src, ne.Name, c.name)
		}
	}
	_, err := calc.EvalString("1/0+y", env)
	var de *calc.DivisionByZeroError
	if !errors.As(err, &de) {
		t.Errorf("division before undefined name gave wrong error %#v", err)
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
	}{
		{"div-zero", "1/0", new(calc.DivisionByZeroError)},
		{"div-neg-zero", "1/-0", new(calc.DivisionByZeroError)},
		{"div-zero-expr", "1/(2-2)", new(calc.DivisionByZeroError)},
		{"mod-zero", "5%0", new(calc.DivisionByZeroError)},
		{"zero-div-zero", "0/0", new(calc.DivisionByZeroError)},
		{"sqrt-neg", "sqrt(-1)", new(calc.DomainError)},
		{"ln-neg", "ln(-1)", new(calc.DomainError)},
		{"asin", "asin(2)", new(calc.DomainError)},
		{"fact-frac", "0.5!", new(calc.DomainError)},
		{"fact-neg", "(-1)!", new(calc.DomainError)},
		{"pow-neg-frac", "(-8)^(1/3)", new(calc.DomainError)},
		{"inf-minus-inf", "10^400-10^400", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calc.EvalString(c.src, nil)
			if c.err == nil {
				if err != nil {
					t.Errorf("%q failed: %v", c.src, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("%q evaluated to %g", c.src, r)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Errorf("%q gave wrong error: want %T, got %#v", c.src, c.err, err)
			}
		})
	}
}

func TestDivisionByZeroMessage(t *testing.T) {
	_, err := calc.EvalString("6/(x-x)", calc.NewEnv(calc.SetVar("x", 2)))
	var de *calc.DivisionByZeroError
	if !errors.As(err, &de) {
		t.Fatalf("wrong error: %#v", err)
	}
	if de.X != 6 || de.Op != "/" {
		t.Errorf("wrong error contents: %#v", de)
	}
	if msg := err.Error(); msg != "division by zero: 6 / 0" {
		t.Errorf("wrong message %q", msg)
	}
}

func TestEvalWith(t *testing.T) {
	a, err := calc.Parse("x+y")
	if err != nil {
		t.Fatal(err)
	}
	env := calc.NewEnv(calc.SetVars(map[string]float64{"x": 1, "y": 2}))
	r, err := a.EvalWith(env, map[string]float64{"x": 10})
	if err != nil || r != 12 {
		t.Errorf("override x: want 12, got %g, %v", r, err)
	}
	r, err = a.EvalWith(env, map[string]float64{"z": 10})
	if err != nil || r != 3 {
		t.Errorf("unrelated override: want 3, got %g, %v", r, err)
	}
	r, err = a.EvalWith(nil, map[string]float64{"x": 5, "y": 6})
	if err != nil || r != 11 {
		t.Errorf("overrides only: want 11, got %g, %v", r, err)
	}
	r, err = a.EvalWith(env, nil)
	if err != nil || r != 3 {
		t.Errorf("no overrides: want 3, got %g, %v", r, err)
	}
	if v, _ := env.Lookup("x"); v != 1 {
		t.Errorf("override changed the environment: x = %g", v)
	}
}

func TestEvalIdempotent(t *testing.T) {
	a, err := calc.Parse("x^2 + max(x, 1) / 3 - sqrt(4)!")
	if err != nil {
		t.Fatal(err)
	}
	env := calc.NewEnv(calc.SetVar("x", 3))
	want, err := a.Eval(env)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		r, err := a.Eval(env)
		if err != nil || r != want {
			t.Errorf("evaluation %d gave %g, %v; want %g", i, r, err, want)
		}
	}
	// Failing doesn't affect later evaluations.
	if _, err := a.Eval(nil); err == nil {
		t.Error("evaluation without x succeeded")
	}
	if r, err := a.Eval(env); err != nil || r != want {
		t.Errorf("evaluation after failure gave %g, %v; want %g", r, err, want)
	}
	s := a.String()
	a.Eval(env)
	if a.String() != s {
		t.Errorf("evaluation changed the expression from %s to %s", s, a)
	}
}

func TestEvalConcurrent(t *testing.T) {
	a, err := calc.Parse("x*x + sum(x, 1, 2)")
	if err != nil {
		t.Fatal(err)
	}
	env := calc.NewEnv()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(x float64) {
			defer wg.Done()
			r, err := a.EvalWith(env, map[string]float64{"x": x})
			if want := x*x + x + 3; err != nil || r != want {
				t.Errorf("x=%g: want %g, got %g, %v", x, want, r, err)
			}
		}(float64(i))
	}
	wg.Wait()
}

func TestEvaluateTokens(t *testing.T) {
	toks, err := calc.Tokenize("1+2")
	if err != nil {
		t.Fatal(err)
	}
	want := []calc.Token{
		{Kind: calc.TokenNum, Num: 1, Text: "1", Pos: 1},
		{Kind: calc.TokenOp, Text: "+", Pos: 2},
		{Kind: calc.TokenNum, Num: 2, Text: "2", Pos: 3},
	}
	if !reflect.DeepEqual(toks, want) {
		t.Errorf("wrong tokens:\n\twant %v\n\tgot  %v", want, toks)
	}
	r, err := calc.Evaluate(toks, nil)
	if err != nil || r != 3 {
		t.Errorf("want 3, got %g, %v", r, err)
	}
	// Evaluate doesn't modify the tokens.
	if !reflect.DeepEqual(toks, want) {
		t.Errorf("tokens changed to %v", toks)
	}

	toks, err = calc.Tokenize("(1+2")
	if err != nil {
		t.Fatal(err)
	}
	_, err = calc.Evaluate(toks, nil)
	var be *calc.BracketError
	if !errors.As(err, &be) {
		t.Errorf("unbalanced brackets gave wrong error %#v", err)
	}
}

// TestRoundTrip checks that any expression which parses evaluates without
// error once every variable it uses is defined, unless the failure is an
// evaluation error.
func TestRoundTrip(t *testing.T) {
	srcs := []string{
		"1", "x", "-x", "x+y*z", "(x+1)/(y-1)", "x^y^z", "sqrt(x)!",
		"max(x, y, 3)", "atan2(y, x)", "-(-(-x))", "x%y", "[x]*{y}",
		"sum-x", "abs(x)-floor(y)+ceil(z)", "3!-x", "pi*e",
	}
	for _, src := range srcs {
		a, err := calc.Parse(src)
		if err != nil {
			t.Errorf("%q failed to parse: %v", src, err)
			continue
		}
		if _, err := a.Eval(ones(a)); !evalErr(err) {
			t.Errorf("%q failed with all variables defined: %v", src, err)
		}
	}
}

// ones creates an environment setting every variable of a to 1.
func ones(a *calc.Expr) *calc.Env {
	env := calc.NewEnv()
	for _, v := range a.Vars() {
		env.Set(v, 1)
	}
	return env
}

// evalErr reports whether err is nil or an error that only evaluation can
// detect.
func evalErr(err error) bool {
	if err == nil {
		return true
	}
	var (
		de *calc.DivisionByZeroError
		oe *calc.DomainError
	)
	return errors.As(err, &de) || errors.As(err, &oe)
}

func BenchmarkEval(b *testing.B) {
	vars := map[string]float64{
		"x": 2,
		"y": 3,
		"z": 4,
	}
	b.Run("nums", func(b *testing.B) {
		b.ReportAllocs()
		a, err := calc.Parse("2+3+4")
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			a.Eval(nil)
		}
	})
	b.Run("vars", func(b *testing.B) {
		b.ReportAllocs()
		env := calc.NewEnv(calc.SetVars(vars))
		a, err := calc.Parse("x+y+z")
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			a.Eval(env)
		}
	})
	b.Run("call", func(b *testing.B) {
		b.ReportAllocs()
		env := calc.NewEnv(calc.SetVars(vars))
		a, err := calc.Parse("max(x, y, z) + sqrt(x*y*z)")
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			a.Eval(env)
		}
	})
}

func Example() {
	a, _ := calc.Parse("x^3/2 - x")
	b, _ := calc.Parse("3*x^2/2 - 1")
	c, _ := calc.Parse("3*x")

	env := calc.NewEnv()
	for i := 0; i < 4; i++ {
		x := float64(i)
		env.Set("x", x)
		y, _ := a.Eval(env)
		yp, _ := b.Eval(env)
		ypp, _ := c.Eval(env)
		fmt.Printf("x = %g   y = %-4g  y' = %-4g  y'' = %g\n", x, y, yp, ypp)
	}

	// Output:
	// x = 0   y = 0     y' = -1    y'' = 0
	// x = 1   y = -0.5  y' = 0.5   y'' = 3
	// x = 2   y = 2     y' = 5     y'' = 6
	// x = 3   y = 10.5  y' = 12.5  y'' = 9
}

func ExampleExpr_EvalWith() {
	a, _ := calc.Parse("rate * time")
	env := calc.NewEnv(calc.SetVar("rate", 60))
	for _, time := range []float64{1, 1.5, 2} {
		d, _ := a.EvalWith(env, map[string]float64{"time": time})
		fmt.Println(d)
	}

	// Output:
	// 60
	// 90
	// 120
}

func ExampleEvalString() {
	r, err := calc.EvalString("-(1 + 2) * 3! % 5", nil)
	fmt.Println(r, err)
	_, err = calc.EvalString("1/(2-2)", nil)
	fmt.Println(err)
	_, err = calc.EvalString("(1 + 2", nil)
	fmt.Println(err)

	// Output:
	// -3 <nil>
	// division by zero: 1 / 0
	// 1: open bracket ( with no close bracket
}
