// Package resolver performs the static resolution pass between parsing and
// interpretation (spec.md §4.3): it binds every variable reference to a
// lexical scope depth so the interpreter never has to search the
// environment chain by name at eval time, and catches a handful of
// compile-time-detectable misuses (self-referencing initializers, return
// outside a function, this/super outside a class).
package resolver

import (
	"github.com/mna/tlox/lang/ast"
	"github.com/mna/tlox/lang/diag"
	"github.com/mna/tlox/lang/token"
)

// functionType tracks the kind of function body currently being resolved,
// so "return" and "this" can be validated against their enclosing context.
type functionType int

const (
	noFunction functionType = iota
	typeFunction
	typeInitializer
	typeMethod
)

// classType tracks whether the resolver is currently inside a class body,
// and whether that class has a superclass, for "this"/"super" validation.
type classType int

const (
	noClass classType = iota
	typeClass
	typeSubclass
)

// Resolver walks a parsed program and produces a depth map keyed by
// expression identity (ast.Expr.ID), recording how many enclosing scopes
// separate a variable reference from the scope that declares it. An entry
// absent from the map means the variable is global and should be looked up
// by name directly in the outermost environment.
type Resolver struct {
	errs *diag.Diagnostics

	scopes []map[string]bool
	locals map[ast.ExprID]int

	currentFunction functionType
	currentClass    classType
}

// New returns a Resolver that reports errors on errs.
func New(errs *diag.Diagnostics) *Resolver {
	return &Resolver{errs: errs, locals: make(map[ast.ExprID]int)}
}

// Resolve resolves every statement in prog and returns the resulting depth
// map. Callers should check errs.HadError() before interpreting the result.
func (r *Resolver) Resolve(prog *ast.Program) map[ast.ExprID]int {
	r.resolveStmts(prog.Stmts)
	return r.locals
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, make(map[string]bool)) }
func (r *Resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	if stmt == nil {
		return
	}
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()
	case *ast.ClassStmt:
		r.resolveClassStmt(s)
	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expr)
	case *ast.FunctionDecl:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, typeFunction)
	case *ast.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.PrintStmt:
		r.resolveExpr(s.Expr)
	case *ast.ReturnStmt:
		r.resolveReturnStmt(s)
	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *ast.WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	}
}

func (r *Resolver) resolveClassStmt(s *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = typeClass

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.errs.ReportToken(s.Superclass.Name, "A class can't inherit from itself.")
		} else {
			r.currentClass = typeSubclass
			r.resolveExpr(s.Superclass)
		}
	}

	if s.Superclass != nil {
		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, m := range s.Methods {
		kind := typeMethod
		if m.Name.Lexeme == "init" {
			kind = typeInitializer
		}
		r.resolveFunction(m, kind)
	}

	r.endScope()
	if s.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
}

func (r *Resolver) resolveReturnStmt(s *ast.ReturnStmt) {
	if r.currentFunction == noFunction {
		r.errs.ReportToken(s.Keyword, "Cannot return from top-level code.")
	}
	if s.Value != nil {
		if r.currentFunction == typeInitializer {
			r.errs.ReportToken(s.Keyword, "Cannot return a value from an initializer.")
		}
		r.resolveExpr(s.Value)
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionDecl, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, p := range fn.Params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.AssignExpr:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.CallExpr:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *ast.GetExpr:
		r.resolveExpr(e.Object)
	case *ast.GroupingExpr:
		r.resolveExpr(e.Inner)
	case *ast.LiteralExpr:
		// nothing to resolve
	case *ast.LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.SetExpr:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.SuperExpr:
		r.resolveSuperExpr(e)
	case *ast.ThisExpr:
		if r.currentClass == noClass {
			r.errs.ReportToken(e.Keyword, "Cannot use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.UnaryExpr:
		r.resolveExpr(e.Right)
	case *ast.VariableExpr:
		r.resolveVariableExpr(e)
	}
}

func (r *Resolver) resolveSuperExpr(e *ast.SuperExpr) {
	switch r.currentClass {
	case noClass:
		r.errs.ReportToken(e.Keyword, "Cannot use 'super' outside of a class.")
		return
	case typeClass:
		r.errs.ReportToken(e.Keyword, "Cannot use 'super' in a class with no superclass.")
		return
	}
	r.resolveLocal(e, e.Keyword)
}

func (r *Resolver) resolveVariableExpr(e *ast.VariableExpr) {
	if len(r.scopes) > 0 {
		if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
			r.errs.ReportToken(e.Name, "Cannot read local variable in its own initializer.")
		}
	}
	r.resolveLocal(e, e.Name)
}

// declare marks name as declared but not yet defined in the innermost
// scope. A variable referenced in this state (e.g. in its own initializer)
// is a compile-time error. Declaring a name already present in the
// innermost scope is also an error: shadowing is only allowed across
// scopes, not within the same one.
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.errs.ReportToken(name, "Variable with this name already declared in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal walks the scope stack from innermost to outermost looking
// for name, and records the number of scopes between the use and the
// declaring scope. An unresolved name is left out of the map entirely: the
// interpreter treats that as a global lookup.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr.ID()] = len(r.scopes) - 1 - i
			return
		}
	}
}
