package interpreter

import "sort"

// Env is the variable store of one interpreter. Names are case-sensitive
// and there is a single global scope.
type Env struct {
	bindings map[string]int64
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{bindings: make(map[string]int64)}
}

// Get looks up a variable by name.
func (e *Env) Get(name string) (int64, bool) {
	v, ok := e.bindings[name]
	return v, ok
}

// Set binds a variable, replacing any previous value.
func (e *Env) Set(name string, val int64) {
	e.bindings[name] = val
}

// Has checks whether a variable is defined.
func (e *Env) Has(name string) bool {
	_, ok := e.bindings[name]
	return ok
}

// Names returns the defined variable names in sorted order.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.bindings))
	for n := range e.bindings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Snapshot copies the bindings.
func (e *Env) Snapshot() map[string]int64 {
	out := make(map[string]int64, len(e.bindings))
	for k, v := range e.bindings {
		out[k] = v
	}
	return out
}
