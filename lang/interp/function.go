package interp

import (
	"fmt"

	"github.com/mna/tlox/lang/ast"
)

// Function is a runtime closure: a function or method declaration paired
// with the environment active when it was declared.
type Function struct {
	declaration   *ast.FunctionDecl
	closure       *Environment
	isInitializer bool
}

var (
	_ Value    = (*Function)(nil)
	_ Callable = (*Function)(nil)
)

func (f *Function) String() string { return fmt.Sprintf("<fn %s>", f.declaration.Name.Lexeme) }
func (f *Function) Type() string   { return "function" }
func (f *Function) Arity() int     { return len(f.declaration.Params) }

// Bind returns a copy of f whose closure additionally binds "this" to
// instance, used when a method is looked up via a Get expression (or a
// super expression) rather than called directly.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return &Function{declaration: f.declaration, closure: env, isInitializer: f.isInitializer}
}

// Call runs the function body in a fresh environment nested in its
// closure, with parameters bound to args. A "return" statement unwinds here
// via a panicked returnSignal rather than an ordinary Go return, since the
// body is an arbitrary list of statements that may return from any depth.
func (f *Function) Call(in *Interpreter, args []Value) (v Value, err error) {
	env := NewEnvironment(f.closure)
	for i, p := range f.declaration.Params {
		env.Define(p.Lexeme, args[i])
	}

	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(returnSignal)
			if !ok {
				panic(r)
			}
			if f.isInitializer {
				v = f.closure.GetAt(0, "this")
			} else {
				v = sig.value
			}
			err = nil
		}
	}()

	if execErr := in.executeBlock(f.declaration.Body, env); execErr != nil {
		return nil, execErr
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return NilValue, nil
}

// NativeFunction wraps a Go function as a callable language value, used for
// built-ins like clock().
type NativeFunction struct {
	name  string
	arity int
	fn    func(in *Interpreter, args []Value) (Value, error)
}

var (
	_ Value    = (*NativeFunction)(nil)
	_ Callable = (*NativeFunction)(nil)
)

func (n *NativeFunction) String() string { return "<native fn>" }
func (n *NativeFunction) Type() string   { return "function" }
func (n *NativeFunction) Arity() int     { return n.arity }
func (n *NativeFunction) Call(in *Interpreter, args []Value) (Value, error) {
	return n.fn(in, args)
}
