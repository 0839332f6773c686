package ast

import "github.com/mna/tlox/lang/token"

type (
	// BlockStmt represents a brace-delimited list of declarations, its own
	// lexical block.
	BlockStmt struct {
		stmtBase
		Stmts []Stmt
	}

	// ClassStmt represents a class declaration, with an optional superclass
	// (nil unless "<" was actually consumed by the parser — see spec.md §9's
	// open question) and its methods.
	ClassStmt struct {
		stmtBase
		Name       token.Token
		Superclass *VariableExpr // nil if no "< Ident" clause was parsed
		Methods    []*FunctionDecl
	}

	// ExpressionStmt represents an expression evaluated for its side effect.
	ExpressionStmt struct {
		stmtBase
		Expr Expr
	}

	// FunctionDecl represents a named function declaration (fun f(...) {...})
	// or a class method, which reuses the same node shape.
	FunctionDecl struct {
		stmtBase
		Name   token.Token
		Params []token.Token
		Body   []Stmt
	}

	// IfStmt represents an if/else statement; Else is nil if absent.
	IfStmt struct {
		stmtBase
		Cond Expr
		Then Stmt
		Else Stmt
	}

	// PrintStmt represents a print statement.
	PrintStmt struct {
		stmtBase
		Expr Expr
	}

	// ReturnStmt represents a return statement; Value is nil for a bare
	// return.
	ReturnStmt struct {
		stmtBase
		Keyword token.Token
		Value   Expr
	}

	// VarStmt represents a variable declaration; Initializer is nil if the
	// declaration has no "= expr" clause.
	VarStmt struct {
		stmtBase
		Name        token.Token
		Initializer Expr
	}

	// WhileStmt represents a while loop. The parser also uses this node, with
	// a synthesized Body, to desugar "for" loops (spec.md §4.2): there is no
	// dedicated for-loop AST node.
	WhileStmt struct {
		stmtBase
		Cond Expr
		Body Stmt
	}
)

func NewBlockStmt(stmts []Stmt) *BlockStmt { return &BlockStmt{Stmts: stmts} }
func NewClassStmt(name token.Token, superclass *VariableExpr, methods []*FunctionDecl) *ClassStmt {
	return &ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}
func NewExpressionStmt(expr Expr) *ExpressionStmt { return &ExpressionStmt{Expr: expr} }
func NewFunctionDecl(name token.Token, params []token.Token, body []Stmt) *FunctionDecl {
	return &FunctionDecl{Name: name, Params: params, Body: body}
}
func NewIfStmt(cond Expr, then, els Stmt) *IfStmt { return &IfStmt{Cond: cond, Then: then, Else: els} }
func NewPrintStmt(expr Expr) *PrintStmt           { return &PrintStmt{Expr: expr} }
func NewReturnStmt(keyword token.Token, value Expr) *ReturnStmt {
	return &ReturnStmt{Keyword: keyword, Value: value}
}
func NewVarStmt(name token.Token, initializer Expr) *VarStmt {
	return &VarStmt{Name: name, Initializer: initializer}
}
func NewWhileStmt(cond Expr, body Stmt) *WhileStmt { return &WhileStmt{Cond: cond, Body: body} }

func (n *BlockStmt) Walk(v Visitor) {
	for _, s := range n.Stmts {
		if s != nil {
			Walk(v, s)
		}
	}
}
func (n *ClassStmt) Walk(v Visitor) {
	if n.Superclass != nil {
		Walk(v, n.Superclass)
	}
	for _, m := range n.Methods {
		Walk(v, m)
	}
}
func (n *ExpressionStmt) Walk(v Visitor) { Walk(v, n.Expr) }
func (n *FunctionDecl) Walk(v Visitor) {
	for _, s := range n.Body {
		if s != nil {
			Walk(v, s)
		}
	}
}
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}
func (n *PrintStmt) Walk(v Visitor) { Walk(v, n.Expr) }
func (n *ReturnStmt) Walk(v Visitor) {
	if n.Value != nil {
		Walk(v, n.Value)
	}
}
func (n *VarStmt) Walk(v Visitor) {
	if n.Initializer != nil {
		Walk(v, n.Initializer)
	}
}
func (n *WhileStmt) Walk(v Visitor) { Walk(v, n.Cond); Walk(v, n.Body) }
