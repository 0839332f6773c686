package ast

import (
	"fmt"
	"strings"
)

// Print renders a parenthesized, Lisp-like dump of node, in the style of the
// teacher's Formatter-driven node labels but collapsed to a single String
// function since tlox has no quasi-lossless reprint requirement.
func Print(node Node) string {
	var sb strings.Builder
	printNode(&sb, node)
	return sb.String()
}

func printNode(sb *strings.Builder, node Node) {
	switch n := node.(type) {
	case *Program:
		for i, s := range n.Stmts {
			if i > 0 {
				sb.WriteByte('\n')
			}
			if s == nil {
				sb.WriteString("<error>")
				continue
			}
			printNode(sb, s)
		}
	case *BlockStmt:
		sb.WriteString("(block")
		for _, s := range n.Stmts {
			sb.WriteByte(' ')
			printNode(sb, s)
		}
		sb.WriteByte(')')
	case *ClassStmt:
		fmt.Fprintf(sb, "(class %s", n.Name.Lexeme)
		if n.Superclass != nil {
			fmt.Fprintf(sb, " < %s", n.Superclass.Name.Lexeme)
		}
		for _, m := range n.Methods {
			sb.WriteByte(' ')
			printNode(sb, m)
		}
		sb.WriteByte(')')
	case *ExpressionStmt:
		sb.WriteString("(; ")
		printNode(sb, n.Expr)
		sb.WriteByte(')')
	case *FunctionDecl:
		fmt.Fprintf(sb, "(fun %s(", n.Name.Lexeme)
		for i, p := range n.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Lexeme)
		}
		sb.WriteString(") (block")
		for _, s := range n.Body {
			sb.WriteByte(' ')
			printNode(sb, s)
		}
		sb.WriteString("))")
	case *IfStmt:
		sb.WriteString("(if ")
		printNode(sb, n.Cond)
		sb.WriteByte(' ')
		printNode(sb, n.Then)
		if n.Else != nil {
			sb.WriteByte(' ')
			printNode(sb, n.Else)
		}
		sb.WriteByte(')')
	case *PrintStmt:
		sb.WriteString("(print ")
		printNode(sb, n.Expr)
		sb.WriteByte(')')
	case *ReturnStmt:
		sb.WriteString("(return")
		if n.Value != nil {
			sb.WriteByte(' ')
			printNode(sb, n.Value)
		}
		sb.WriteByte(')')
	case *VarStmt:
		fmt.Fprintf(sb, "(var %s", n.Name.Lexeme)
		if n.Initializer != nil {
			sb.WriteByte(' ')
			printNode(sb, n.Initializer)
		}
		sb.WriteByte(')')
	case *WhileStmt:
		sb.WriteString("(while ")
		printNode(sb, n.Cond)
		sb.WriteByte(' ')
		printNode(sb, n.Body)
		sb.WriteByte(')')

	case *AssignExpr:
		fmt.Fprintf(sb, "(= %s ", n.Name.Lexeme)
		printNode(sb, n.Value)
		sb.WriteByte(')')
	case *BinaryExpr:
		fmt.Fprintf(sb, "(%s ", n.Op.Lexeme)
		printNode(sb, n.Left)
		sb.WriteByte(' ')
		printNode(sb, n.Right)
		sb.WriteByte(')')
	case *CallExpr:
		sb.WriteString("(call ")
		printNode(sb, n.Callee)
		for _, a := range n.Args {
			sb.WriteByte(' ')
			printNode(sb, a)
		}
		sb.WriteByte(')')
	case *GetExpr:
		sb.WriteString("(. ")
		printNode(sb, n.Object)
		fmt.Fprintf(sb, " %s)", n.Name.Lexeme)
	case *GroupingExpr:
		sb.WriteString("(group ")
		printNode(sb, n.Inner)
		sb.WriteByte(')')
	case *LiteralExpr:
		if n.Value == nil {
			sb.WriteString("nil")
		} else {
			fmt.Fprintf(sb, "%v", n.Value)
		}
	case *LogicalExpr:
		fmt.Fprintf(sb, "(%s ", n.Op.Lexeme)
		printNode(sb, n.Left)
		sb.WriteByte(' ')
		printNode(sb, n.Right)
		sb.WriteByte(')')
	case *SetExpr:
		sb.WriteString("(set. ")
		printNode(sb, n.Object)
		fmt.Fprintf(sb, " %s ", n.Name.Lexeme)
		printNode(sb, n.Value)
		sb.WriteByte(')')
	case *SuperExpr:
		fmt.Fprintf(sb, "(super.%s)", n.Method.Lexeme)
	case *ThisExpr:
		sb.WriteString("this")
	case *UnaryExpr:
		fmt.Fprintf(sb, "(%s ", n.Op.Lexeme)
		printNode(sb, n.Right)
		sb.WriteByte(')')
	case *VariableExpr:
		sb.WriteString(n.Name.Lexeme)

	default:
		fmt.Fprintf(sb, "<unknown %T>", node)
	}
}
