package interp

import (
	"github.com/dolthub/swiss"
	"github.com/mna/tlox/lang/token"
)

// Environment is one link in the lexical scope chain: a set of name-value
// bindings plus a reference to the enclosing scope, rooted at globals. It
// is backed by a swiss.Map rather than a built-in map, matching how the
// teacher backs its own dynamically-keyed runtime maps.
type Environment struct {
	values    *swiss.Map[string, Value]
	enclosing *Environment
}

// NewEnvironment returns an environment nested inside enclosing, or a
// top-level (global) environment if enclosing is nil.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{values: swiss.NewMap[string, Value](8), enclosing: enclosing}
}

// Define binds name to v in this environment, overwriting any existing
// binding. Unlike Assign, Define never walks the enclosing chain: it always
// targets the current scope, which is what lets a block re-declare a name
// already bound in an outer scope.
func (e *Environment) Define(name string, v Value) {
	e.values.Put(name, v)
}

// Get looks up name, walking outward through enclosing scopes.
func (e *Environment) Get(name token.Token) (Value, error) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values.Get(name.Lexeme); ok {
			return v, nil
		}
	}
	return nil, newRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// Assign rebinds an already-declared name, walking outward through
// enclosing scopes; it is an error to assign to a name that was never
// declared.
func (e *Environment) Assign(name token.Token, v Value) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values.Get(name.Lexeme); ok {
			env.values.Put(name.Lexeme, v)
			return nil
		}
	}
	return newRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// ancestor returns the environment distance scopes outward from e. The
// resolver guarantees distance is always within the chain it resolved
// against, so no bounds checking is done here.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt reads name from the environment exactly distance scopes outward, as
// computed by the resolver. It bypasses the walk in Get since the distance
// is already known.
func (e *Environment) GetAt(distance int, name string) Value {
	v, _ := e.ancestor(distance).values.Get(name)
	return v
}

// AssignAt writes name in the environment exactly distance scopes outward.
func (e *Environment) AssignAt(distance int, name token.Token, v Value) {
	e.ancestor(distance).values.Put(name.Lexeme, v)
}
