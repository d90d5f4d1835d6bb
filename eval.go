package calc

import "math"

// Eval evaluates the expression with symbols taken from env. If a symbol is
// not defined, the error is a *NameError. Dividing by zero gives a
// *DivisionByZeroError, and a function applied outside its domain gives a
// *DomainError. Errors do not affect the expression, so it can be evaluated
// again with a corrected environment.
func (e *Expr) Eval(env *Env) (float64, error) {
	return e.n.eval(env, nil)
}

// EvalWith evaluates the expression like Eval, except that symbols in
// overrides take precedence over those in env.
func (e *Expr) EvalWith(env *Env, overrides map[string]float64) (float64, error) {
	return e.n.eval(env, overrides)
}

// eval computes the node's value, evaluating children left to right.
func (n *node) eval(env *Env, over map[string]float64) (float64, error) {
	switch n.kind {
	case nodeNum, nodeConst:
		return n.num, nil
	case nodeName:
		if v, ok := over[n.name]; ok {
			return v, nil
		}
		return env.Lookup(n.name)
	case nodePos, nodeNeg, nodeFact, nodeSqrt, nodeFunc:
		x, err := n.left.eval(env, over)
		if err != nil {
			return 0, err
		}
		switch n.kind {
		case nodePos:
			return x, nil
		case nodeNeg:
			return -x, nil
		case nodeFact:
			return factorial(x)
		case nodeSqrt:
			return unary("sqrt", x)
		default:
			return unary(n.name, x)
		}
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		x, err := n.left.eval(env, over)
		if err != nil {
			return 0, err
		}
		y, err := n.right.eval(env, over)
		if err != nil {
			return 0, err
		}
		switch n.kind {
		case nodeAdd:
			return x + y, nil
		case nodeSub:
			return x - y, nil
		case nodeMul:
			return x * y, nil
		case nodeDiv:
			// Exact comparison, so -0 is zero too but tiny values are not.
			if y == 0 {
				return 0, &DivisionByZeroError{X: x, Op: "/"}
			}
			return x / y, nil
		case nodeMod:
			if y == 0 {
				return 0, &DivisionByZeroError{X: x, Op: "%"}
			}
			return math.Mod(x, y), nil
		default:
			return pow(x, y)
		}
	case nodeCall:
		args := make([]float64, len(n.args))
		for i, arg := range n.args {
			x, err := arg.eval(env, over)
			if err != nil {
				return 0, err
			}
			args[i] = x
		}
		return call(n.name, args)
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
}

// Evaluate converts tokens from Tokenize to postfix order, builds the
// expression tree, and evaluates it with env.
func Evaluate(toks []Token, env *Env) (float64, error) {
	e, err := parseTokens(toks)
	if err != nil {
		return 0, err
	}
	return e.Eval(env)
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, env *Env) (float64, error) {
	e, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return e.Eval(env)
}
