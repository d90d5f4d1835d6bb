package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"

	"github.com/zephyrtronium/calc"
)

const version = "calc version 0.1"

const usage = `usage: calc [options] [expr ...]

Evaluates arithmetic expressions. Expressions come from -e, then from the
remaining arguments. If there are none, they are read from standard input,
one per line.

options:
  -e expr        evaluate expr (any number of times)
  -s             statistics mode
  -t             number theory mode
  -D name=value  define a variable; value may be an expression (any number of times)
  -f verb        result formatting verb (default %g)
  -x             print parse trees before results
  -h             show this help
  -v             show the version
`

// options are the parsed command line.
type options struct {
	mode    Mode
	exprs   []string
	defs    [][2]string
	verb    string
	echo    bool
	help    bool
	version bool
}

func main() {
	log.SetFlags(0)
	opts, err := parseArgs(os.Args)
	if err != nil {
		log.Fatalf("%v\n\n%s", err, usage)
	}
	switch {
	case opts.help:
		help(os.Stdout)
		return
	case opts.version:
		fmt.Println(version)
		return
	}
	env, err := opts.env()
	if err != nil {
		log.Fatal(err)
	}
	s := newSession(env, opts.verb, opts.echo, os.Stdout, os.Stderr)
	for _, src := range opts.exprs {
		s.push(src)
	}
	if err := dispatch(opts.mode, s, os.Stdin); err != nil {
		log.Fatal(err)
	}
	if s.failed {
		os.Exit(1)
	}
}

// help writes the usage text exactly as written. It contains a formatting
// verb, so it must not pass through a Printf-style call.
func help(w io.Writer) {
	io.WriteString(w, usage)
}

// parseArgs parses the command line. args[0] is the program name. Arguments
// after the options are added to the expressions to evaluate.
func parseArgs(args []string) (*options, error) {
	o := options{verb: "%g"}
	opts, optind, err := getopt.Getopts(args, "e:stD:f:xhv")
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'e':
			o.exprs = append(o.exprs, opt.Value)
		case 's':
			o.mode = Statistics
		case 't':
			o.mode = NumberTheory
		case 'D':
			d := strings.SplitN(opt.Value, "=", 2)
			if len(d) != 2 {
				return nil, fmt.Errorf(`variable definitions must be "name=value", not %q`, opt.Value)
			}
			o.defs = append(o.defs, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		case 'f':
			o.verb = opt.Value
		case 'x':
			o.echo = true
		case 'h':
			o.help = true
		case 'v':
			o.version = true
		}
	}
	o.exprs = append(o.exprs, args[optind:]...)
	return &o, nil
}

// env creates the environment holding the variables defined with -D. Each
// value is evaluated with the variables defined before it.
func (o *options) env() (*calc.Env, error) {
	env := calc.NewEnv()
	for _, d := range o.defs {
		nm, vl := d[0], d[1]
		if err := checkName(nm); err != nil {
			return nil, err
		}
		r, err := calc.EvalString(vl, env)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", nm, err)
		}
		env.Set(nm, r)
	}
	return env, nil
}

// checkName verifies that a variable name would be read as a symbol.
func checkName(name string) error {
	toks, err := calc.Tokenize(name)
	if err != nil || len(toks) != 1 || toks[0].Kind != calc.TokenSymbol {
		return fmt.Errorf("%q can't be used as a variable name", name)
	}
	return nil
}

// caret writes a line pointing at the column of an input error.
func caret(w io.Writer, src string, err error) {
	var ie calc.InputError
	if !errors.As(err, &ie) {
		return
	}
	p := ie.Pos()
	if p < 1 || p > len([]rune(src))+1 {
		return
	}
	fmt.Fprintf(w, "  %s\n  %s^\n", src, strings.Repeat(" ", p-1))
}
