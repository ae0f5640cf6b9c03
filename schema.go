package morph

import (
	"sort"
	"sync"
)

// Schema is an ordered mapping from destination field names to action
// declarations. Order matters: actions execute in declaration order, and
// callables may read destination fields assigned by earlier entries.
//
// A Schema is immutable once handed to Apply/ApplyAll/Transform: its plan is
// compiled at most once per Schema value, so later Set calls on an
// already-used schema do not change transformation behavior. Build a new
// Schema instead.
type Schema struct {
	entries []Entry
	index   map[string]int

	compileOnce sync.Once
	compiled    *plan
	compileErr  error
}

// Entry is one (destination key, action declaration) pair of a Schema.
type Entry struct {
	Key    string
	Action any
}

// New returns an empty schema.
func New() *Schema {
	return &Schema{index: map[string]int{}}
}

// Set declares the action for a destination key and returns the schema for
// chaining. Re-declaring a key replaces its action in place, preserving the
// key's original position.
func (s *Schema) Set(key string, action any) *Schema {
	if i, ok := s.index[key]; ok {
		s.entries[i].Action = action
		return s
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, Entry{Key: key, Action: action})
	return s
}

// FromMap builds a schema from a map literal. Go maps carry no declaration
// order, so keys are ordered lexically for deterministic plans; use New/Set
// when a specific execution order is required.
func FromMap(m map[string]any) *Schema {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s := New()
	for _, k := range keys {
		s.Set(k, m[k])
	}
	return s
}

// Entries returns the schema's declarations in order.
func (s *Schema) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len reports the number of declared destination fields.
func (s *Schema) Len() int { return len(s.entries) }

// compile builds the flattened plan for this schema at most once per Schema
// value, making the cache identity-keyed and safe for concurrent first use.
func (s *Schema) compile() (*plan, error) {
	s.compileOnce.Do(func() {
		s.compiled, s.compileErr = buildPlan(s)
	})
	return s.compiled, s.compileErr
}
