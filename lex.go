package calc

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// Tokenize splits an expression into tokens.
//
// Whitespace is removed before anything else, so it never separates tokens.
// A digit or . starts a numeral that runs over digits and dots; a letter or _
// starts a word that runs over letters, digits, and underscores; any other
// rune is a token on its own. Then words and single runes are classified:
// brackets become TokenBracket, names in the operator table become TokenOp,
// commas become TokenSep, and other words become TokenSymbol.
//
// If the input contains only whitespace, the error is an
// *EmptyExpressionError. A numeral with more than one decimal point gives a
// *NumberError, and punctuation that is not an operator gives an
// *OperatorError. Only words can be symbols, so a rune like # or $ is
// rejected here instead of being read as an undefined variable.
func Tokenize(src string) ([]Token, error) {
	var (
		text []rune
		cols []int
	)
	col := 0
	for _, r := range src {
		col++
		if unicode.IsSpace(r) {
			continue
		}
		text = append(text, r)
		cols = append(cols, col)
	}
	if len(text) == 0 {
		return nil, &EmptyExpressionError{Col: col + 1}
	}

	toks := make([]Token, 0, len(text))
	for i := 0; i < len(text); {
		r := text[i]
		j := i + 1
		switch {
		case isDigit(r), r == '.':
			for j < len(text) && (isDigit(text[j]) || text[j] == '.') {
				j++
			}
			tok, err := scanNum(string(text[i:j]), cols[i])
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
		case isWordStart(r):
			for j < len(text) && isWordRune(text[j]) {
				j++
			}
			toks = append(toks, Token{Text: string(text[i:j]), Pos: cols[i]})
		default:
			toks = append(toks, Token{Text: string(r), Pos: cols[i]})
		}
		i = j
	}

	for i, tok := range toks {
		if tok.Kind != TokenNone {
			continue
		}
		c, err := classify(tok)
		if err != nil {
			return nil, err
		}
		toks[i] = c
	}
	return toks, nil
}

// scanNum converts the text of a numeral to a token.
func scanNum(text string, col int) (Token, error) {
	if strings.Count(text, ".") > 1 {
		return Token{}, &NumberError{Col: col, Text: text}
	}
	x, err := strconv.ParseFloat(text, 64)
	switch {
	case err == nil: // do nothing
	case errors.Is(err, strconv.ErrRange):
		// Too many digits. ParseFloat has already rounded to Inf or 0.
	default:
		return Token{}, &NumberError{Col: col, Text: text}
	}
	return Token{Kind: TokenNum, Num: x, Text: text, Pos: col}, nil
}

// classify decides the kind of a word or single-rune token.
func classify(tok Token) (Token, error) {
	switch {
	case len(tok.Text) == 1 && strings.Contains(OpenBrackets+CloseBrackets, tok.Text):
		tok.Kind = TokenBracket
	case Contains(tok.Text):
		tok.Kind = TokenOp
	case tok.Text == ",":
		tok.Kind = TokenSep
	case isWord(tok.Text):
		tok.Kind = TokenSymbol
	default:
		return Token{}, &OperatorError{Col: tok.Pos, Operator: tok.Text}
	}
	return tok, nil
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isWordStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isWord(s string) bool {
	for i, r := range s {
		if i == 0 && !isWordStart(r) || !isWordRune(r) {
			return false
		}
	}
	return s != ""
}
