package schemafile

import morph "github.com/gomorph/morph"

// Registry maps the function names used in schema documents to Go callables.
// A document's `fn` member can only reference names registered here; lookups
// on a nil registry simply find nothing.
type Registry struct {
	funcs   map[string]morph.Func
	selects map[string]morph.SelectFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		funcs:   map[string]morph.Func{},
		selects: map[string]morph.SelectFunc{},
	}
}

// Func registers a Function-action callable under name and returns the
// registry for chaining. Re-registering a name replaces it.
func (r *Registry) Func(name string, fn morph.Func) *Registry {
	r.funcs[name] = fn
	return r
}

// Select registers a Select-action transform under name and returns the
// registry for chaining. Re-registering a name replaces it.
func (r *Registry) Select(name string, fn morph.SelectFunc) *Registry {
	r.selects[name] = fn
	return r
}

func (r *Registry) lookupFunc(name string) (morph.Func, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.funcs[name]
	return fn, ok
}

func (r *Registry) lookupSelect(name string) (morph.SelectFunc, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.selects[name]
	return fn, ok
}
