// Package less holds the source-side data model and the evaluation engine:
// stylesheets, rulesets with unprocessed statements, mixin definitions and
// calls, the processing context with its mixin call stack, closures, and the
// extend accumulator.
package less

import (
	"github.com/titpetric/lessc/tokens"
)

// VariableMap is an insertion-ordered name → token list mapping. Keys keep
// their @ prefix. Order matters for diagnostics and @arguments synthesis.
type VariableMap struct {
	keys   []string
	values map[string]*tokens.TokenList
}

// NewVariableMap returns an empty map.
func NewVariableMap() *VariableMap {
	return &VariableMap{values: make(map[string]*tokens.TokenList)}
}

// Put binds a name. The returned flag reports whether the name was already
// bound in this map; the new value wins either way.
func (m *VariableMap) Put(name string, value *tokens.TokenList) bool {
	_, rebound := m.values[name]
	if !rebound {
		m.keys = append(m.keys, name)
	}
	m.values[name] = value
	return rebound
}

// Get returns the binding or nil.
func (m *VariableMap) Get(name string) *tokens.TokenList {
	return m.values[name]
}

// Len returns the number of bindings.
func (m *VariableMap) Len() int {
	return len(m.keys)
}

// Keys returns the names in insertion order.
func (m *VariableMap) Keys() []string {
	return m.keys
}

// Overwrite merges other into m, later bindings winning.
func (m *VariableMap) Overwrite(other *VariableMap) {
	for _, k := range other.keys {
		m.Put(k, other.values[k])
	}
}
