// Package calc implements a double-precision calculator.
//
// An expression goes through three stages. Tokenize splits the text into
// numbers, symbols, operators, brackets, and commas; whitespace is dropped
// before anything else, so "1 2" is the number 12 and "sin x" is the symbol
// "sinx". ToPostfix reorders the tokens with the shunting-yard algorithm,
// deciding along the way whether a + or - is a sign or an operation. Build
// turns the postfix tokens into a tree that can be evaluated any number of
// times against an Env.
//
// "-2^2" is "-(2^2)", "3!" is a factorial, and a function applies to the
// bracketed group right after it, so "sqrt(16)!" is 24. Functions with several
// arguments separate them with commas: "atan2(1, 1)", "max[x, y, 3]".
//
// Parse runs all three stages, and EvalString evaluates the result right away.
// EvalWith takes values for symbols which shadow those in the Env.
package calc
