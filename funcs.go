package calc

import (
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Named constants are computed once with a few bits to spare and then
// rounded, so they are the nearest float64 to their true values.
var (
	constPi = constant(bigfloat.Pi)
	constE  = constant(func(out *big.Float) *big.Float {
		var one big.Float
		one.SetFloat64(1)
		return bigfloat.Exp(out, &one)
	})
)

func constant(f func(out *big.Float) *big.Float) float64 {
	r := new(big.Float).SetPrec(64)
	f(r)
	x, _ := r.Float64()
	return x
}

// unary applies a single-argument function by name.
func unary(name string, x float64) (float64, error) {
	var r float64
	switch name {
	case "sqrt":
		r = math.Sqrt(x)
	case "abs":
		r = math.Abs(x)
	case "floor":
		r = math.Floor(x)
	case "ceil":
		r = math.Ceil(x)
	case "exp":
		r = math.Exp(x)
	case "ln":
		r = math.Log(x)
	case "log":
		r = math.Log10(x)
	case "sin":
		r = math.Sin(x)
	case "cos":
		r = math.Cos(x)
	case "tan":
		r = math.Tan(x)
	case "asin":
		r = math.Asin(x)
	case "acos":
		r = math.Acos(x)
	case "atan":
		r = math.Atan(x)
	default:
		panic("calc: unknown function " + strconv.Quote(name))
	}
	return r, checkDomain(name, r, x)
}

// factorial computes x!. x must be a non-negative integer.
func factorial(x float64) (float64, error) {
	if x < 0 || x != math.Trunc(x) || math.IsInf(x, 0) || math.IsNaN(x) {
		return 0, &DomainError{X: x, Func: "!"}
	}
	// 171! overflows.
	if x > 170 {
		return math.Inf(1), nil
	}
	r := 1.0
	for i := 2.0; i <= x; i++ {
		r *= i
	}
	return r, nil
}

// pow computes x^y.
func pow(x, y float64) (float64, error) {
	r := math.Pow(x, y)
	return r, checkDomain("^", r, x, y)
}

// call applies a function of a bracketed argument list by name. The length of
// args must already be checked against the function's arity.
func call(name string, args []float64) (float64, error) {
	switch name {
	case "atan2":
		return math.Atan2(args[0], args[1]), nil
	case "sum":
		var r float64
		for _, x := range args {
			r += x
		}
		return r, nil
	case "avg":
		var r float64
		for _, x := range args {
			r += x
		}
		return r / float64(len(args)), nil
	case "min":
		r := args[0]
		for _, x := range args[1:] {
			r = math.Min(r, x)
		}
		return r, nil
	case "max":
		r := args[0]
		for _, x := range args[1:] {
			r = math.Max(r, x)
		}
		return r, nil
	default:
		panic("calc: unknown function " + strconv.Quote(name))
	}
}

// checkDomain returns a *DomainError for the first argument if r is NaN even
// though none of the arguments are.
func checkDomain(name string, r float64, args ...float64) error {
	if !math.IsNaN(r) {
		return nil
	}
	for _, x := range args {
		if math.IsNaN(x) {
			return nil
		}
	}
	return &DomainError{X: args[0], Func: name}
}
