package calc

import "strconv"

// NumberError is an error indicating a malformed numeral, e.g. one with two
// decimal points. It implements InputError.
type NumberError struct {
	// Col is the position of the start of the numeral.
	Col int
	// Text is the numeral as written, without whitespace.
	Text string
}

func (err *NumberError) Error() string {
	return errpos(err.Col, "invalid number "+strconv.Quote(err.Text))
}

func (err *NumberError) Pos() int {
	return err.Col
}

// OperatorError is an error indicating an operator that is not registered.
// It implements InputError.
type OperatorError struct {
	// Col is the position of the operator. It is zero for errors from Lookup.
	Col int
	// Operator is the name that was not understood.
	Operator string
}

func (err *OperatorError) Error() string {
	msg := "unknown operator " + strconv.Quote(err.Operator)
	if err.Col == 0 {
		return msg
	}
	return errpos(err.Col, msg)
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched brackets in the
// input. It implements InputError.
type BracketError struct {
	// Col is the position of the offending bracket.
	Col int
	// Left is the opening bracket.
	Left string
	// Right is the mismatched closing bracket.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	if err.Right == "" {
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "mismatched bracket: "+err.Left+"expr"+err.Right)
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating a comma outside of any brackets. It
// implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// ArityError is an error indicating an operator with the wrong number of
// operands. It implements InputError.
type ArityError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator name, as registered.
	Operator string
	// Want is the number of operands the operator takes.
	Want int
	// Have is the number of operands that were available.
	Have int
}

func (err *ArityError) Error() string {
	return errpos(err.Col, opname(err.Operator)+" needs "+strconv.Itoa(err.Want)+" operands but has "+strconv.Itoa(err.Have))
}

func (err *ArityError) Pos() int {
	return err.Col
}

// MalformedError is an error indicating an expression which does not reduce
// to a single value, e.g. "1 (2)" or "()". It implements InputError.
type MalformedError struct {
	// Col is the position of the first token, or 1 for an empty expression.
	Col int
	// Have is the number of values the expression left.
	Have int
}

func (err *MalformedError) Error() string {
	if err.Have == 0 {
		return errpos(err.Col, "expression has no value")
	}
	return errpos(err.Col, "expression has "+strconv.Itoa(err.Have)+" values instead of 1 (missing operator?)")
}

func (err *MalformedError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an input with nothing but
// whitespace. It implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the end of the input.
	Col int
}

func (err *EmptyExpressionError) Error() string {
	return errpos(err.Col, "no expression")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// opname gives the user-facing name of an operator.
func opname(name string) string {
	switch name {
	case "++":
		return "unary +"
	case "--":
		return "unary -"
	default:
		return strconv.Quote(name)
	}
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*NumberError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*ArityError)(nil)
	_ InputError = (*MalformedError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
)

// NameError is an error from a lookup for a variable that is missing from the
// evaluation environment.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// DivisionByZeroError is an error from dividing by exactly zero.
type DivisionByZeroError struct {
	// X is the dividend.
	X float64
	// Op is the operator, / or %.
	Op string
}

func (err *DivisionByZeroError) Error() string {
	return "division by zero: " + strconv.FormatFloat(err.X, 'g', -1, 64) + " " + err.Op + " 0"
}

// DomainError is an error returned when a function is called on arguments
// outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}
