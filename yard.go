package calc

import "strings"

// CheckBrackets checks that every bracket in toks is paired with a bracket of
// the same kind in properly nested order. The error is a *BracketError naming
// the first bracket that cannot be paired.
func CheckBrackets(toks []Token) error {
	var open []Token
	for _, tok := range toks {
		switch {
		case tok.isOpen():
			open = append(open, tok)
		case tok.isClose():
			if len(open) == 0 {
				return &BracketError{Col: tok.Pos, Right: tok.Text}
			}
			left := open[len(open)-1]
			if !pairs(left.Text, tok.Text) {
				return &BracketError{Col: tok.Pos, Left: left.Text, Right: tok.Text}
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) != 0 {
		left := open[len(open)-1]
		return &BracketError{Col: left.Pos, Left: left.Text}
	}
	return nil
}

// pairs reports whether left and right are matching brackets.
func pairs(left, right string) bool {
	l := strings.Index(OpenBrackets, left)
	return l >= 0 && l == strings.Index(CloseBrackets, right)
}

// ToPostfix reorders tokens from infix to postfix order using the
// shunting-yard algorithm. Brackets and separators do not appear in the
// result.
//
// A + or - with no left operand, i.e. at the start of the input or after an
// open bracket, a separator, or an operator other than a constant or !, is a
// sign, and its Text in the result
// is "++" or "--" respectively. Named functions such as sqrt and max have Args
// set to the number of arguments in the brackets following them, or 1 if they
// are applied to a bare operand.
//
// A function name directly followed by brackets applies to the whole
// bracketed group, so sqrt(4)! is the factorial of sqrt(4).
//
// Brackets are checked with CheckBrackets before anything else. A comma
// outside of any brackets or next to an empty argument gives a
// *SeparatorError, and an operator that is not registered gives an
// *OperatorError.
func ToPostfix(toks []Token) ([]Token, error) {
	if err := CheckBrackets(toks); err != nil {
		return nil, err
	}
	y := yard{out: make([]Token, 0, len(toks))}
	for i, tok := range toks {
		var prev *Token
		if i > 0 {
			prev = &toks[i-1]
		}
		var err error
		y, err = y.next(tok, prev)
		if err != nil {
			return nil, err
		}
	}
	return y.drain().out, nil
}

// yard is the state of the shunting-yard algorithm between tokens. Each
// transition returns the next state; it may reuse the arrays of the old one,
// so the old state must not be used again.
type yard struct {
	// out is the postfix output so far.
	out []Token
	// ops is the stack of pending operators and open brackets.
	ops []Token
	// calls holds a frame for each open bracket in ops, in the same order.
	calls []frame
}

// frame tracks what has appeared inside one pair of brackets.
type frame struct {
	// fn is whether the brackets hold the arguments of a named prefix
	// operator.
	fn bool
	// seps is the number of separators directly inside the brackets.
	seps int
	// seen is whether any token has appeared since the open bracket or the
	// last separator.
	seen bool
}

// next moves the yard past one token. prev is the token before it, or nil if
// tok is the first.
func (y yard) next(tok Token, prev *Token) (yard, error) {
	if tok.Kind != TokenSep && !tok.isClose() && len(y.calls) != 0 {
		y.calls[len(y.calls)-1].seen = true
	}
	switch tok.Kind {
	case TokenNum, TokenSymbol:
		return y.operand(tok), nil
	case TokenOp:
		return y.operator(tok, prev)
	case TokenBracket:
		if tok.isOpen() {
			return y.open(tok, prev), nil
		}
		return y.close(tok)
	case TokenSep:
		return y.separator(tok)
	default:
		panic("calc: unknown token: " + tok.String())
	}
}

// operand sends a number or symbol straight to the output.
func (y yard) operand(tok Token) yard {
	y.out = append(y.out, tok)
	return y
}

// operator handles an operator token according to its arity and fixity.
func (y yard) operator(tok Token, prev *Token) (yard, error) {
	name := tok.Text
	if (name == "+" || name == "-") && (prev == nil || !prev.isOperand()) {
		// Sign, not addition or subtraction.
		name += name
	}
	op, err := Lookup(name)
	if err != nil {
		return y, &OperatorError{Col: tok.Pos, Operator: tok.Text}
	}
	tok.Text = name
	switch {
	case op.Arity == 0:
		// Named constants are operands.
		y.out = append(y.out, tok)
	case op.Fixity == Prefix:
		if op.function() {
			// Applied without brackets, as in sqrt-4. A closing bracket
			// replaces this with the real count.
			tok.Args = 1
		}
		y.ops = append(y.ops, tok)
	case op.Fixity == Postfix:
		// Postfix operators already have their operand, so they never wait
		// on the stack.
		for y.topBinds(func(top Operator) bool { return top.Prec > op.Prec }) {
			y = y.pop()
		}
		y.out = append(y.out, tok)
	default:
		for y.topBinds(func(top Operator) bool {
			return top.Prec > op.Prec || top.Prec == op.Prec && !op.Right
		}) {
			y = y.pop()
		}
		y.ops = append(y.ops, tok)
	}
	return y, nil
}

// topBinds reports whether the top of the operator stack is an operator for
// which tighter returns true.
func (y yard) topBinds(tighter func(top Operator) bool) bool {
	if len(y.ops) == 0 {
		return false
	}
	top := y.ops[len(y.ops)-1]
	if top.Kind != TokenOp {
		return false
	}
	return tighter(operators[top.Text])
}

// open pushes an open bracket. If the previous token is a named prefix
// operator such as sqrt or max, the brackets hold its arguments.
func (y yard) open(tok Token, prev *Token) yard {
	fn := false
	if prev != nil && prev.Kind == TokenOp {
		op := operators[prev.Text]
		fn = op.function()
	}
	y.ops = append(y.ops, tok)
	y.calls = append(y.calls, frame{fn: fn})
	return y
}

// close pops operators to the output up to the matching open bracket, which
// is discarded. CheckBrackets guarantees that it exists. If the brackets held
// the arguments of a function, the function is complete and goes to the
// output as well.
func (y yard) close(tok Token) (yard, error) {
	for !y.ops[len(y.ops)-1].isOpen() {
		y = y.pop()
	}
	y.ops = y.ops[:len(y.ops)-1]
	f := y.calls[len(y.calls)-1]
	y.calls = y.calls[:len(y.calls)-1]
	if f.seps != 0 && !f.seen {
		// Trailing separator, as in max(1,).
		return y, &SeparatorError{Col: tok.Pos, Sep: ","}
	}
	if !f.fn {
		return y, nil
	}
	n := 0
	if f.seen {
		n = f.seps + 1
	}
	y.ops[len(y.ops)-1].Args = n
	return y.pop(), nil
}

// separator pops operators to the output up to the innermost open bracket.
func (y yard) separator(tok Token) (yard, error) {
	for len(y.ops) != 0 && !y.ops[len(y.ops)-1].isOpen() {
		y = y.pop()
	}
	if len(y.ops) == 0 {
		return y, &SeparatorError{Col: tok.Pos, Sep: tok.Text}
	}
	f := &y.calls[len(y.calls)-1]
	if !f.seen {
		// Empty argument, as in max(,1) or max(1,,2).
		return y, &SeparatorError{Col: tok.Pos, Sep: tok.Text}
	}
	f.seps++
	f.seen = false
	return y, nil
}

// drain pops every remaining operator to the output.
func (y yard) drain() yard {
	for len(y.ops) != 0 {
		y = y.pop()
	}
	return y
}

// pop moves the top of the operator stack to the output.
func (y yard) pop() yard {
	top := y.ops[len(y.ops)-1]
	y.ops = y.ops[:len(y.ops)-1]
	y.out = append(y.out, top)
	return y
}
