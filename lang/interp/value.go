package interp

import "strconv"

// Value is the interface implemented by every value the interpreter can
// produce or operate on. The language's value set is small and closed:
// nil, bool, number, string, callable, class and instance (spec.md §5).
type Value interface {
	// String returns the value's print representation.
	String() string
	// Type returns a short name for the value's type. The runtime error
	// messages do not include it.
	Type() string
}

// Callable is implemented by any value that may appear as the callee of a
// call expression: user-defined functions, bound methods, classes
// (construction) and native functions.
type Callable interface {
	Value
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
}

// HasAttrs is implemented by values whose fields or methods may be read by
// a dot expression (obj.name). A return of (nil, false) means no such
// attribute exists.
type HasAttrs interface {
	Value
	Attr(name string) (Value, bool)
}

// HasSetField is implemented by values whose fields may be written by a dot
// expression (obj.name = value).
type HasSetField interface {
	HasAttrs
	SetField(name string, val Value)
}

// Nil is the value of the language's "nil" literal.
type Nil struct{}

func (Nil) String() string { return "nil" }
func (Nil) Type() string   { return "nil" }

// NilValue is the single Nil instance; there is no reason to allocate more
// than one since Nil carries no state.
var NilValue = Nil{}

// Bool wraps a boolean value.
type Bool bool

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (Bool) Type() string { return "boolean" }

// Number wraps a float64 value; the language has no separate integer type.
type Number float64

// String formats n the way the language's number literals look: an integral
// value like 3.0 prints as "3", not "3.0" (strconv's shortest round-trip
// representation in 'f' mode already omits the trailing ".0").
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}
func (Number) Type() string { return "number" }

// String wraps a string value.
type String string

func (s String) String() string { return string(s) }
func (String) Type() string     { return "string" }

// fromLiteral converts a scanner/parser literal (nil, bool, float64 or
// string, as stored on ast.LiteralExpr) into the interpreter's Value.
func fromLiteral(v interface{}) Value {
	switch lit := v.(type) {
	case nil:
		return NilValue
	case bool:
		return Bool(lit)
	case float64:
		return Number(lit)
	case string:
		return String(lit)
	default:
		panic("unreachable: unknown literal type")
	}
}

// isTruthy implements the language's truthiness rule: nil and false are
// falsey, everything else (including 0 and "") is truthy.
func isTruthy(v Value) bool {
	switch vv := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(vv)
	default:
		return true
	}
}

// isEqual implements the language's equality rule: values of different
// dynamic type are never equal, nil only equals nil.
func isEqual(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	default:
		return a == b
	}
}
