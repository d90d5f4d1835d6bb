package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/edwingeng/deque"
	"github.com/fatih/color"

	"github.com/zephyrtronium/calc"
)

// Mode selects what calc does with its input.
type Mode int

const (
	Evaluate Mode = iota
	Statistics
	NumberTheory
)

func (m Mode) String() string {
	switch m {
	case Evaluate:
		return "evaluate"
	case Statistics:
		return "statistics"
	case NumberTheory:
		return "number theory"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// dispatch runs the handler for a mode. Expressions already pushed to s are
// handled first; in is read only if there were none.
func dispatch(m Mode, s *session, in io.Reader) error {
	switch m {
	case Evaluate:
		return s.evaluate(in)
	case Statistics, NumberTheory:
		return fmt.Errorf("%v mode is not implemented", m)
	default:
		panic("calc: unknown mode " + m.String())
	}
}

// cacheSize is the number of parsed lines to remember.
const cacheSize = 256

// session holds the state for evaluating a sequence of expressions.
type session struct {
	env   *calc.Env
	cache *calc.Cache
	verb  string
	echo  bool

	// pending holds source text waiting to be evaluated.
	pending deque.Deque

	out  io.Writer
	errw io.Writer
	// failed is set once any expression fails to parse or evaluate.
	failed bool

	ans  func(a ...interface{}) string
	fail *color.Color
}

func newSession(env *calc.Env, verb string, echo bool, out, errw io.Writer) *session {
	return &session{
		env:     env,
		cache:   calc.NewCache(cacheSize),
		verb:    verb,
		echo:    echo,
		pending: deque.NewDeque(),
		out:     out,
		errw:    errw,
		ans:     color.New(color.Bold).SprintFunc(),
		fail:    color.New(color.FgRed),
	}
}

// push queues source text for evaluation.
func (s *session) push(src string) {
	s.pending.PushBack(src)
}

// evaluate evaluates all pending expressions. If there were none, it
// evaluates each line of in as it is read.
func (s *session) evaluate(in io.Reader) error {
	if !s.pending.Empty() {
		s.drain()
		return nil
	}
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		s.push(sc.Text())
		s.drain()
	}
	return sc.Err()
}

// drain evaluates and prints pending expressions in order. Blank lines are
// skipped.
func (s *session) drain() {
	for !s.pending.Empty() {
		src := s.pending.Front().(string)
		s.pending.PopFront()
		if strings.TrimSpace(src) == "" {
			continue
		}
		s.eval(src)
	}
}

func (s *session) eval(src string) {
	a, err := s.cache.Parse(src)
	if err != nil {
		s.report(src, err)
		return
	}
	if s.echo {
		fmt.Fprintf(s.out, "%v : ", a)
	}
	r, err := a.Eval(s.env)
	if err != nil {
		if s.echo {
			fmt.Fprintln(s.out)
		}
		s.report(src, err)
		return
	}
	fmt.Fprintf(s.out, "%s"+s.verb+"\n", s.ans("ans = "), r)
}

func (s *session) report(src string, err error) {
	s.failed = true
	s.fail.Fprintln(s.errw, err)
	caret(s.errw, src, err)
}
