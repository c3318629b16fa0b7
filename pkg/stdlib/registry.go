// Package stdlib provides the badbasic built-in function registry.
package stdlib

import (
	"io"

	"github.com/thomasrohde/badbasic/pkg/ast"
)

// Env is what a built-in may touch while it runs.
type Env struct {
	Out io.Writer
}

// Fn represents a built-in function. Arity is the exact number of
// arguments it accepts; the caller checks it before Execute runs.
// Execute reports ok=false when the call yields no value.
type Fn struct {
	Builtin ast.Builtin
	Arity   int
	Execute func(env Env, args []int64) (value int64, ok bool, err error)
}

// Name returns the source name of the built-in.
func (f *Fn) Name() string {
	return f.Builtin.String()
}

// Registry holds registered built-in functions.
type Registry struct {
	fns map[ast.Builtin]*Fn
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		fns: make(map[ast.Builtin]*Fn),
	}
}

// Register adds a built-in to the registry, replacing any previous entry.
func (r *Registry) Register(fn Fn) {
	r.fns[fn.Builtin] = &fn
}

// Get retrieves a built-in, or nil if it is not registered.
func (r *Registry) Get(b ast.Builtin) *Fn {
	return r.fns[b]
}

// All returns every registered built-in in enumeration order.
func (r *Registry) All() []*Fn {
	var out []*Fn
	for _, b := range ast.Builtins() {
		if fn, ok := r.fns[b]; ok {
			out = append(out, fn)
		}
	}
	return out
}

// Missing returns the enumerated built-ins that have no implementation.
func (r *Registry) Missing() []ast.Builtin {
	var out []ast.Builtin
	for _, b := range ast.Builtins() {
		if _, ok := r.fns[b]; !ok {
			out = append(out, b)
		}
	}
	return out
}

// Defaults returns a registry holding every built-in.
func Defaults() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}
