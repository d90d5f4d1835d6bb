package calc

import "strings"

// Expr is a parsed expression that can be evaluated with an environment. An
// Expr is never modified after it is built, so it is safe to evaluate
// concurrently.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the sorted list of symbol names used in the expression.
	names []string
}

// Parse parses an expression so it can be evaluated with an environment. It
// is the composition of Tokenize, ToPostfix, and Build.
func Parse(src string) (*Expr, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return parseTokens(toks)
}

func parseTokens(toks []Token) (*Expr, error) {
	post, err := ToPostfix(toks)
	if err != nil {
		return nil, err
	}
	return Build(post)
}

// Build creates an expression tree from tokens in postfix order, as returned
// by ToPostfix.
//
// Each operator takes as many operands as its arity, or as its Args if it is
// Multinary. If there are not enough, or if a named function such as sqrt or
// atan2 was given the wrong number of arguments, the error is an *ArityError. If the
// tokens do not reduce to exactly one value, the error is a *MalformedError.
func Build(postfix []Token) (*Expr, error) {
	stack := make([]*node, 0, len(postfix))
	names := make(map[string]bool)
	for _, tok := range postfix {
		switch tok.Kind {
		case TokenNum:
			stack = append(stack, &node{kind: nodeNum, num: tok.Num})
		case TokenSymbol:
			names[tok.Text] = true
			stack = append(stack, &node{kind: nodeName, name: tok.Text})
		case TokenOp:
			op, err := Lookup(tok.Text)
			if err != nil {
				return nil, &OperatorError{Col: tok.Pos, Operator: tok.Text}
			}
			k, err := operands(op, tok, len(stack))
			if err != nil {
				return nil, err
			}
			// Copy the operands so the node does not share the stack's array.
			kids := append([]*node(nil), stack[len(stack)-k:]...)
			stack = append(stack[:len(stack)-k], build(op.Name, kids))
		default:
			// Brackets and separators never reach the output of ToPostfix.
			return nil, &MalformedError{Col: tok.Pos, Have: len(stack)}
		}
	}
	if len(stack) != 1 {
		col := 1
		if len(postfix) != 0 {
			col = firstPos(postfix)
		}
		return nil, &MalformedError{Col: col, Have: len(stack)}
	}
	ex := Expr{
		n:     stack[0],
		names: make([]string, 0, len(names)),
	}
	for k := range names {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex, nil
}

// operands returns the number of operands the operator token takes, given
// that have are available.
func operands(op Operator, tok Token, have int) (int, error) {
	want := op.Arity
	switch {
	case op.Arity == Multinary:
		want = tok.Args
		if want < 1 {
			return 0, &ArityError{Col: tok.Pos, Operator: op.Name, Want: 1, Have: want}
		}
	case op.function() && tok.Args != op.Arity:
		return 0, &ArityError{Col: tok.Pos, Operator: op.Name, Want: op.Arity, Have: tok.Args}
	}
	if have < want {
		return 0, &ArityError{Col: tok.Pos, Operator: op.Name, Want: want, Have: have}
	}
	return want, nil
}

// firstPos returns the smallest position among toks.
func firstPos(toks []Token) int {
	p := toks[0].Pos
	for _, tok := range toks[1:] {
		if tok.Pos < p {
			p = tok.Pos
		}
	}
	return p
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// Vars returns the symbol names used in the expression, sorted.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String creates a string representation of the parsed expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, false)
	return b.String()
}
