package calc

// Env is a symbol environment for evaluating expressions. Evaluation never
// modifies an Env, so several expressions may be evaluated concurrently with
// the same Env as long as nothing calls Set meanwhile. A nil *Env is a valid
// empty environment for evaluation.
type Env struct {
	names map[string]float64
}

// EnvOption is an option used when creating an environment.
type EnvOption interface {
	envOption()
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt map[string]float64
)

func (varopt) envOption()  {}
func (varsopt) envOption() {}

// SetVar sets the value of a symbol in the environment.
func SetVar(name string, val float64) EnvOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of symbols in the environment.
func SetVars(vars map[string]float64) EnvOption {
	return varsopt(vars)
}

// NewEnv creates a new environment with options applied in order.
func NewEnv(opts ...EnvOption) *Env {
	var env *Env
	return env.Clone(opts...)
}

// Clone creates a copy of an environment and applies options to it.
func (env *Env) Clone(opts ...EnvOption) *Env {
	n := Env{names: make(map[string]float64, env.Len())}
	if env != nil {
		for k, v := range env.names {
			n.names[k] = v
		}
	}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil:
			// do nothing
		case varopt:
			n.names[opt.name] = opt.val
		case varsopt:
			for k, v := range opt {
				n.names[k] = v
			}
		default:
			panic("calc: unknown option type")
		}
	}
	return &n
}

// Set inserts or assigns the value of a symbol. Returns env for chaining.
func (env *Env) Set(name string, val float64) *Env {
	if env.names == nil {
		env.names = make(map[string]float64)
	}
	env.names[name] = val
	return env
}

// Has reports whether a symbol is defined in the environment.
func (env *Env) Has(name string) bool {
	if env == nil {
		return false
	}
	_, ok := env.names[name]
	return ok
}

// Lookup returns the value of a symbol. If it is not defined, the error is a
// *NameError.
func (env *Env) Lookup(name string) (float64, error) {
	if env != nil {
		if v, ok := env.names[name]; ok {
			return v, nil
		}
	}
	return 0, &NameError{Name: name}
}

// Len returns the number of symbols defined in the environment.
func (env *Env) Len() int {
	if env == nil {
		return 0
	}
	return len(env.names)
}

// Names returns the names of the symbols defined in the environment, sorted.
func (env *Env) Names() []string {
	if env.Len() == 0 {
		return nil
	}
	names := make([]string, 0, len(env.names))
	for k := range env.names {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}
