package calc

import "strconv"

// Operator describes how an operator, function, or named constant is parsed.
type Operator struct {
	// Name is the name under which the operator is registered.
	Name string
	// Arity is the number of operands the operator takes, or Multinary.
	Arity int
	// Fixity is where the operator is written relative to its operands.
	Fixity Fixity
	// Prec is the precedence value. Higher is more binding.
	Prec int
	// Right indicates right-associativity.
	Right bool
}

// Multinary is the Arity of operators which take one or more arguments in
// brackets, e.g. max(1, 2, 3).
const Multinary = -1

// Fixity is the position of an operator relative to its operands.
type Fixity int8

const (
	Prefix Fixity = iota
	Infix
	Postfix
)

// Postfix reports whether the operator follows its operand, like !.
func (o Operator) Postfix() bool {
	return o.Fixity == Postfix
}

// function reports whether the operator is a named function like sqrt or max,
// whose arguments ToPostfix counts.
func (o Operator) function() bool {
	return o.Fixity == Prefix && o.Arity != 0 && isWord(o.Name)
}

// Precedence tiers, least binding first.
const (
	addPrec  = 10
	mulPrec  = 20
	signPrec = 30
	powPrec  = 40
	funcPrec = 45
	factPrec = 50
)

// operators is the operator table. It is never modified after
// initialization, so it is safe to read concurrently.
var operators = map[string]Operator{
	"pi": {Name: "pi", Arity: 0},
	"e":  {Name: "e", Arity: 0},

	"+": {Name: "+", Arity: 2, Fixity: Infix, Prec: addPrec},
	"-": {Name: "-", Arity: 2, Fixity: Infix, Prec: addPrec},
	"*": {Name: "*", Arity: 2, Fixity: Infix, Prec: mulPrec},
	"/": {Name: "/", Arity: 2, Fixity: Infix, Prec: mulPrec},
	"%": {Name: "%", Arity: 2, Fixity: Infix, Prec: mulPrec},
	"^": {Name: "^", Arity: 2, Fixity: Infix, Prec: powPrec, Right: true},

	// Signs. ToPostfix renames + and - to these when they have no left
	// operand; they cannot be written directly.
	"++": {Name: "++", Arity: 1, Fixity: Prefix, Prec: signPrec, Right: true},
	"--": {Name: "--", Arity: 1, Fixity: Prefix, Prec: signPrec, Right: true},

	"!": {Name: "!", Arity: 1, Fixity: Postfix, Prec: factPrec},

	"sqrt":  unaryFunc("sqrt"),
	"abs":   unaryFunc("abs"),
	"floor": unaryFunc("floor"),
	"ceil":  unaryFunc("ceil"),
	"exp":   unaryFunc("exp"),
	"ln":    unaryFunc("ln"),
	"log":   unaryFunc("log"),
	"sin":   unaryFunc("sin"),
	"cos":   unaryFunc("cos"),
	"tan":   unaryFunc("tan"),
	"asin":  unaryFunc("asin"),
	"acos":  unaryFunc("acos"),
	"atan":  unaryFunc("atan"),

	"atan2": {Name: "atan2", Arity: 2, Fixity: Prefix, Prec: funcPrec, Right: true},

	"sum": multiFunc("sum"),
	"avg": multiFunc("avg"),
	"min": multiFunc("min"),
	"max": multiFunc("max"),
}

func unaryFunc(name string) Operator {
	return Operator{Name: name, Arity: 1, Fixity: Prefix, Prec: funcPrec, Right: true}
}

func multiFunc(name string) Operator {
	return Operator{Name: name, Arity: Multinary, Fixity: Prefix, Prec: funcPrec, Right: true}
}

// Lookup returns the descriptor of a registered operator. If there is no
// operator with the given name, the error is an *OperatorError.
func Lookup(name string) (Operator, error) {
	op, ok := operators[name]
	if !ok {
		return Operator{}, &OperatorError{Operator: name}
	}
	return op, nil
}

// Contains reports whether name is a registered operator.
func Contains(name string) bool {
	_, ok := operators[name]
	return ok
}

// build creates the node for a registered operator applied to kids. The
// number of kids must already be checked against the operator's arity.
func build(name string, kids []*node) *node {
	switch name {
	case "pi":
		return &node{kind: nodeConst, name: name, num: constPi}
	case "e":
		return &node{kind: nodeConst, name: name, num: constE}
	case "++":
		return &node{kind: nodePos, left: kids[0]}
	case "--":
		return &node{kind: nodeNeg, left: kids[0]}
	case "+":
		return &node{kind: nodeAdd, left: kids[0], right: kids[1]}
	case "-":
		return &node{kind: nodeSub, left: kids[0], right: kids[1]}
	case "*":
		return &node{kind: nodeMul, left: kids[0], right: kids[1]}
	case "/":
		return &node{kind: nodeDiv, left: kids[0], right: kids[1]}
	case "%":
		return &node{kind: nodeMod, left: kids[0], right: kids[1]}
	case "^":
		return &node{kind: nodePow, left: kids[0], right: kids[1]}
	case "!":
		return &node{kind: nodeFact, left: kids[0]}
	case "sqrt":
		return &node{kind: nodeSqrt, left: kids[0]}
	case "abs", "floor", "ceil", "exp", "ln", "log", "sin", "cos", "tan", "asin", "acos", "atan":
		return &node{kind: nodeFunc, name: name, left: kids[0]}
	case "atan2", "sum", "avg", "min", "max":
		return &node{kind: nodeCall, name: name, args: kids}
	default:
		panic("calc: no node for operator " + strconv.Quote(name))
	}
}
