// Package interp implements the tree-walking interpreter (spec.md §4.4):
// it evaluates a resolved *ast.Program directly against a chain of
// Environments, with no intermediate bytecode.
package interp

import (
	"fmt"
	"io"
	"time"

	"github.com/mna/tlox/lang/ast"
	"github.com/mna/tlox/lang/token"
)

// Interpreter walks a resolved program, executing statements for their
// effect and evaluating expressions to a Value.
type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  map[ast.ExprID]int

	stdout io.Writer
}

// New returns an Interpreter that writes "print" output to stdout and
// defines the language's built-in globals (currently just clock()).
func New(stdout io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	in := &Interpreter{globals: globals, env: globals, stdout: stdout}
	in.defineGlobals()
	return in
}

func (in *Interpreter) defineGlobals() {
	in.globals.Define("clock", &NativeFunction{
		name:  "clock",
		arity: 0,
		fn: func(*Interpreter, []Value) (Value, error) {
			return Number(float64(time.Now().UnixNano()) / 1e9), nil
		},
	})
}

// Interpret runs every statement of prog against the given resolver output.
// It stops at the first runtime error, matching the book's REPL/file
// execution model where a runtime error aborts the rest of the program.
func (in *Interpreter) Interpret(prog *ast.Program, locals map[ast.ExprID]int) error {
	in.locals = locals
	for _, stmt := range prog.Stmts {
		if stmt == nil {
			continue
		}
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		return in.executeBlock(s.Stmts, NewEnvironment(in.env))
	case *ast.ClassStmt:
		return in.executeClassStmt(s)
	case *ast.ExpressionStmt:
		_, err := in.evaluate(s.Expr)
		return err
	case *ast.FunctionDecl:
		fn := &Function{declaration: s, closure: in.env}
		in.env.Define(s.Name.Lexeme, fn)
		return nil
	case *ast.IfStmt:
		return in.executeIfStmt(s)
	case *ast.PrintStmt:
		v, err := in.evaluate(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.stdout, v.String())
		return nil
	case *ast.ReturnStmt:
		var v Value = NilValue
		if s.Value != nil {
			var err error
			v, err = in.evaluate(s.Value)
			if err != nil {
				return err
			}
		}
		panic(returnSignal{value: v})
	case *ast.VarStmt:
		return in.executeVarStmt(s)
	case *ast.WhileStmt:
		return in.executeWhileStmt(s)
	default:
		return nil
	}
}

// executeBlock runs stmts against env, restoring the interpreter's previous
// environment on return (including when unwinding via a returnSignal
// panic, so a return from deep inside nested blocks doesn't leak the
// block's environment into the enclosing function call).
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range stmts {
		if stmt == nil {
			continue
		}
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) executeClassStmt(s *ast.ClassStmt) error {
	var superclass *Class
	if s.Superclass != nil {
		v, err := in.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return newRuntimeError(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	in.env.Define(s.Name.Lexeme, NilValue)

	env := in.env
	if s.Superclass != nil {
		env = NewEnvironment(in.env)
		env.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &Function{
			declaration:   m,
			closure:       env,
			isInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	return in.env.Assign(s.Name, class)
}

func (in *Interpreter) executeIfStmt(s *ast.IfStmt) error {
	cond, err := in.evaluate(s.Cond)
	if err != nil {
		return err
	}
	if isTruthy(cond) {
		return in.execute(s.Then)
	}
	if s.Else != nil {
		return in.execute(s.Else)
	}
	return nil
}

func (in *Interpreter) executeVarStmt(s *ast.VarStmt) error {
	var v Value = NilValue
	if s.Initializer != nil {
		var err error
		v, err = in.evaluate(s.Initializer)
		if err != nil {
			return err
		}
	}
	in.env.Define(s.Name.Lexeme, v)
	return nil
}

func (in *Interpreter) executeWhileStmt(s *ast.WhileStmt) error {
	for {
		cond, err := in.evaluate(s.Cond)
		if err != nil {
			return err
		}
		if !isTruthy(cond) {
			return nil
		}
		if err := in.execute(s.Body); err != nil {
			return err
		}
	}
}

func (in *Interpreter) evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.AssignExpr:
		return in.evalAssignExpr(e)
	case *ast.BinaryExpr:
		return in.evalBinaryExpr(e)
	case *ast.CallExpr:
		return in.evalCallExpr(e)
	case *ast.GetExpr:
		return in.evalGetExpr(e)
	case *ast.GroupingExpr:
		return in.evaluate(e.Inner)
	case *ast.LiteralExpr:
		return fromLiteral(e.Value), nil
	case *ast.LogicalExpr:
		return in.evalLogicalExpr(e)
	case *ast.SetExpr:
		return in.evalSetExpr(e)
	case *ast.SuperExpr:
		return in.evalSuperExpr(e)
	case *ast.ThisExpr:
		return in.lookupVariable(e.Keyword, e)
	case *ast.UnaryExpr:
		return in.evalUnaryExpr(e)
	case *ast.VariableExpr:
		return in.lookupVariable(e.Name, e)
	default:
		panic(fmt.Sprintf("unreachable: unknown expression type %T", expr))
	}
}

func (in *Interpreter) evalAssignExpr(e *ast.AssignExpr) (Value, error) {
	v, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if distance, ok := in.locals[e.ID()]; ok {
		in.env.AssignAt(distance, e.Name, v)
	} else if err := in.globals.Assign(e.Name, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (in *Interpreter) evalBinaryExpr(e *ast.BinaryExpr) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case token.MINUS:
		return numberBinary(e.Op, left, right, func(a, b float64) float64 { return a - b })
	case token.SLASH:
		return numberBinary(e.Op, left, right, func(a, b float64) float64 { return a / b })
	case token.STAR:
		return numberBinary(e.Op, left, right, func(a, b float64) float64 { return a * b })
	case token.PLUS:
		return in.evalPlus(e.Op, left, right)
	case token.GREATER:
		return numberCompare(e.Op, left, right, func(a, b float64) bool { return a > b })
	case token.GREATER_EQUAL:
		return numberCompare(e.Op, left, right, func(a, b float64) bool { return a >= b })
	case token.LESS:
		return numberCompare(e.Op, left, right, func(a, b float64) bool { return a < b })
	case token.LESS_EQUAL:
		return numberCompare(e.Op, left, right, func(a, b float64) bool { return a <= b })
	case token.BANG_EQUAL:
		return Bool(!isEqual(left, right)), nil
	case token.EQUAL_EQUAL:
		return Bool(isEqual(left, right)), nil
	default:
		panic("unreachable: unknown binary operator " + e.Op.Type.String())
	}
}

func (in *Interpreter) evalPlus(op token.Token, left, right Value) (Value, error) {
	if ln, ok := left.(Number); ok {
		if rn, ok := right.(Number); ok {
			return ln + rn, nil
		}
	}
	if ls, ok := left.(String); ok {
		if rs, ok := right.(String); ok {
			return ls + rs, nil
		}
	}
	return nil, newRuntimeError(op, "Operands must be two numbers or two strings.")
}

func numberBinary(op token.Token, left, right Value, f func(a, b float64) float64) (Value, error) {
	a, b, err := checkNumberOperands(op, left, right)
	if err != nil {
		return nil, err
	}
	return Number(f(a, b)), nil
}

func numberCompare(op token.Token, left, right Value, f func(a, b float64) bool) (Value, error) {
	a, b, err := checkNumberOperands(op, left, right)
	if err != nil {
		return nil, err
	}
	return Bool(f(a, b)), nil
}

func checkNumberOperands(op token.Token, left, right Value) (float64, float64, error) {
	l, ok := left.(Number)
	if !ok {
		return 0, 0, newRuntimeError(op, "Operands must be numbers.")
	}
	r, ok := right.(Number)
	if !ok {
		return 0, 0, newRuntimeError(op, "Operands must be numbers.")
	}
	return float64(l), float64(r), nil
}

func (in *Interpreter) evalCallExpr(e *ast.CallExpr) (Value, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, newRuntimeError(e.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	return fn.Call(in, args)
}

func (in *Interpreter) evalGetExpr(e *ast.GetExpr) (Value, error) {
	obj, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	ha, ok := obj.(HasAttrs)
	if !ok {
		return nil, newRuntimeError(e.Name, "Only instances have properties.")
	}
	v, ok := ha.Attr(e.Name.Lexeme)
	if !ok {
		return nil, newRuntimeError(e.Name, "Undefined property '%s'.", e.Name.Lexeme)
	}
	return v, nil
}

func (in *Interpreter) evalLogicalExpr(e *ast.LogicalExpr) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op.Type == token.OR {
		if isTruthy(left) {
			return left, nil
		}
	} else if !isTruthy(left) {
		return left, nil
	}
	return in.evaluate(e.Right)
}

func (in *Interpreter) evalSetExpr(e *ast.SetExpr) (Value, error) {
	obj, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	hs, ok := obj.(HasSetField)
	if !ok {
		return nil, newRuntimeError(e.Name, "Only instances have fields.")
	}
	v, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	hs.SetField(e.Name.Lexeme, v)
	return v, nil
}

func (in *Interpreter) evalSuperExpr(e *ast.SuperExpr) (Value, error) {
	distance := in.locals[e.ID()]
	superclass := in.env.GetAt(distance, "super").(*Class)
	instance := in.env.GetAt(distance-1, "this").(*Instance)

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		return nil, newRuntimeError(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.Bind(instance), nil
}

func (in *Interpreter) evalUnaryExpr(e *ast.UnaryExpr) (Value, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Op.Type {
	case token.BANG:
		return Bool(!isTruthy(right)), nil
	case token.MINUS:
		n, ok := right.(Number)
		if !ok {
			return nil, newRuntimeError(e.Op, "Operand must be a number.")
		}
		return -n, nil
	default:
		panic("unreachable: unknown unary operator " + e.Op.Type.String())
	}
}

func (in *Interpreter) lookupVariable(name token.Token, expr ast.Expr) (Value, error) {
	if distance, ok := in.locals[expr.ID()]; ok {
		return in.env.GetAt(distance, name.Lexeme), nil
	}
	return in.globals.Get(name)
}
