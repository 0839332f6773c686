package ast

import "github.com/mna/tlox/lang/token"

type (
	// AssignExpr represents a variable assignment, e.g. x = y.
	AssignExpr struct {
		exprBase
		Name  token.Token
		Value Expr
	}

	// BinaryExpr represents a binary operator expression, e.g. x + y.
	BinaryExpr struct {
		exprBase
		Left  Expr
		Op    token.Token
		Right Expr
	}

	// CallExpr represents a function or method call, e.g. f(x, y).
	CallExpr struct {
		exprBase
		Callee Expr
		Paren  token.Token // the closing ')', used to anchor runtime errors
		Args   []Expr
	}

	// GetExpr represents a property access, e.g. obj.name.
	GetExpr struct {
		exprBase
		Object Expr
		Name   token.Token
	}

	// GroupingExpr represents a parenthesized expression, e.g. (x).
	GroupingExpr struct {
		exprBase
		Inner Expr
	}

	// LiteralExpr represents a literal nil, boolean, number or string value.
	LiteralExpr struct {
		exprBase
		Value interface{} // nil, bool, float64 or string
	}

	// LogicalExpr represents a short-circuiting "and"/"or" expression.
	LogicalExpr struct {
		exprBase
		Left  Expr
		Op    token.Token
		Right Expr
	}

	// SetExpr represents a property assignment, e.g. obj.name = value.
	SetExpr struct {
		exprBase
		Object Expr
		Name   token.Token
		Value  Expr
	}

	// SuperExpr represents a super.method reference.
	SuperExpr struct {
		exprBase
		Keyword token.Token
		Method  token.Token
	}

	// ThisExpr represents a this reference.
	ThisExpr struct {
		exprBase
		Keyword token.Token
	}

	// UnaryExpr represents a unary operator expression, e.g. -x or !x.
	UnaryExpr struct {
		exprBase
		Op    token.Token
		Right Expr
	}

	// VariableExpr represents a variable reference by name.
	VariableExpr struct {
		exprBase
		Name token.Token
	}
)

func NewAssignExpr(name token.Token, value Expr) *AssignExpr {
	return &AssignExpr{exprBase: newExprBase(), Name: name, Value: value}
}
func NewBinaryExpr(left Expr, op token.Token, right Expr) *BinaryExpr {
	return &BinaryExpr{exprBase: newExprBase(), Left: left, Op: op, Right: right}
}
func NewCallExpr(callee Expr, paren token.Token, args []Expr) *CallExpr {
	return &CallExpr{exprBase: newExprBase(), Callee: callee, Paren: paren, Args: args}
}
func NewGetExpr(object Expr, name token.Token) *GetExpr {
	return &GetExpr{exprBase: newExprBase(), Object: object, Name: name}
}
func NewGroupingExpr(inner Expr) *GroupingExpr {
	return &GroupingExpr{exprBase: newExprBase(), Inner: inner}
}
func NewLiteralExpr(value interface{}) *LiteralExpr {
	return &LiteralExpr{exprBase: newExprBase(), Value: value}
}
func NewLogicalExpr(left Expr, op token.Token, right Expr) *LogicalExpr {
	return &LogicalExpr{exprBase: newExprBase(), Left: left, Op: op, Right: right}
}
func NewSetExpr(object Expr, name token.Token, value Expr) *SetExpr {
	return &SetExpr{exprBase: newExprBase(), Object: object, Name: name, Value: value}
}
func NewSuperExpr(keyword, method token.Token) *SuperExpr {
	return &SuperExpr{exprBase: newExprBase(), Keyword: keyword, Method: method}
}
func NewThisExpr(keyword token.Token) *ThisExpr {
	return &ThisExpr{exprBase: newExprBase(), Keyword: keyword}
}
func NewUnaryExpr(op token.Token, right Expr) *UnaryExpr {
	return &UnaryExpr{exprBase: newExprBase(), Op: op, Right: right}
}
func NewVariableExpr(name token.Token) *VariableExpr {
	return &VariableExpr{exprBase: newExprBase(), Name: name}
}

func (n *AssignExpr) Walk(v Visitor)   { Walk(v, n.Value) }
func (n *BinaryExpr) Walk(v Visitor)   { Walk(v, n.Left); Walk(v, n.Right) }
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Callee)
	for _, a := range n.Args {
		Walk(v, a)
	}
}
func (n *GetExpr) Walk(v Visitor)      { Walk(v, n.Object) }
func (n *GroupingExpr) Walk(v Visitor) { Walk(v, n.Inner) }
func (n *LiteralExpr) Walk(Visitor)    {}
func (n *LogicalExpr) Walk(v Visitor)  { Walk(v, n.Left); Walk(v, n.Right) }
func (n *SetExpr) Walk(v Visitor)      { Walk(v, n.Object); Walk(v, n.Value) }
func (n *SuperExpr) Walk(Visitor)      {}
func (n *ThisExpr) Walk(Visitor)       {}
func (n *UnaryExpr) Walk(v Visitor)    { Walk(v, n.Right) }
func (n *VariableExpr) Walk(Visitor)   {}
