package calc

import (
	"strconv"
	"strings"
)

// Token is a single lexical element of an expression.
type Token struct {
	// Kind is the kind of token.
	Kind TokenKind
	// Num is the value of a TokenNum.
	Num float64
	// Text is the source text of the token. For operators produced by
	// ToPostfix, it is the name of the operator that was selected, which
	// may differ from the source, e.g. "--" for a negative sign.
	Text string
	// Args is the number of arguments given to a named function such as sqrt
	// or max: the count inside its brackets, or 1 when it is applied without
	// them. ToPostfix sets it; it is zero for every other token.
	Args int
	// Pos is the number of runes up to and including the start of the token
	// in the original input.
	Pos int
}

func (t Token) String() string {
	text := t.Text
	if t.Kind == TokenNum && text == "" {
		text = strconv.FormatFloat(t.Num, 'g', -1, 64)
	}
	return t.Kind.String() + ":" + text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the kind of a token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenNum is a numeral.
	TokenNum
	// TokenSymbol is a variable name.
	TokenSymbol
	// TokenOp is an operator, function, or named constant.
	TokenOp
	// TokenBracket is an open or close bracket.
	TokenBracket
	// TokenSep is a comma separating function arguments.
	TokenSep
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenNum:
		return "Num"
	case TokenSymbol:
		return "Symbol"
	case TokenOp:
		return "Op"
	case TokenBracket:
		return "Bracket"
	case TokenSep:
		return "Sep"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// OpenBrackets and CloseBrackets contain the runes which group expressions.
// A bracket in byte position k in OpenBrackets is matched with the bracket in
// byte position k in CloseBrackets.
const (
	OpenBrackets  = "([{"
	CloseBrackets = ")]}"
)

// isOpen reports whether tok is an opening bracket.
func (t Token) isOpen() bool {
	return t.Kind == TokenBracket && len(t.Text) == 1 && strings.IndexByte(OpenBrackets, t.Text[0]) >= 0
}

// isClose reports whether tok is a closing bracket.
func (t Token) isClose() bool {
	return t.Kind == TokenBracket && len(t.Text) == 1 && strings.IndexByte(CloseBrackets, t.Text[0]) >= 0
}

// isOperand reports whether the token is a value on its own, i.e. something
// after which + and - are binary.
func (t Token) isOperand() bool {
	switch t.Kind {
	case TokenNum, TokenSymbol:
		return true
	case TokenOp:
		op, ok := operators[t.Text]
		return ok && (op.Arity == 0 || op.Fixity == Postfix)
	case TokenBracket:
		return t.isClose()
	}
	return false
}
