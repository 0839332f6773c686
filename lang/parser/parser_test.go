package parser_test

import (
	"testing"

	"github.com/mna/tlox/lang/ast"
	"github.com/mna/tlox/lang/diag"
	"github.com/mna/tlox/lang/parser"
	"github.com/mna/tlox/lang/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) (*ast.Program, *diag.Diagnostics) {
	t.Helper()
	var errs diag.Diagnostics
	toks := scanner.New(src, &errs).ScanTokens()
	require.False(t, errs.HadError(), "unexpected scan errors: %v", errs.All())
	prog := parser.New(toks, &errs).Parse()
	return prog, &errs
}

func TestParseExpressionPrecedence(t *testing.T) {
	prog, errs := parse(t, "1 + 2 * 3 - -4;")
	require.False(t, errs.HadError())
	require.Len(t, prog.Stmts, 1)
	es := prog.Stmts[0].(*ast.ExpressionStmt)
	assert.Equal(t, "(- (+ 1 (* 2 3)) (- 4))", ast.Print(es.Expr))
}

func TestParseAssignmentTargets(t *testing.T) {
	prog, errs := parse(t, "x = 1; obj.field = 2;")
	require.False(t, errs.HadError())
	require.Len(t, prog.Stmts, 2)

	assign := prog.Stmts[0].(*ast.ExpressionStmt).Expr.(*ast.AssignExpr)
	assert.Equal(t, "x", assign.Name.Lexeme)

	set := prog.Stmts[1].(*ast.ExpressionStmt).Expr.(*ast.SetExpr)
	assert.Equal(t, "field", set.Name.Lexeme)
}

func TestInvalidAssignmentTargetReportsAndContinues(t *testing.T) {
	prog, errs := parse(t, "1 + 2 = 3; print \"after\";")
	require.True(t, errs.HadError())
	assert.Equal(t, "Invalid assignment target.", errs.All()[0].Message)
	// parsing is not aborted: the next statement is still present.
	require.Len(t, prog.Stmts, 2)
	assert.NotNil(t, prog.Stmts[1])
}

func TestForLoopDesugarsToWhile(t *testing.T) {
	prog, errs := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.False(t, errs.HadError())
	require.Len(t, prog.Stmts, 1)

	block, ok := prog.Stmts[0].(*ast.BlockStmt)
	require.True(t, ok, "for loop desugars into an outer block")
	require.Len(t, block.Stmts, 2)
	assert.IsType(t, &ast.VarStmt{}, block.Stmts[0])

	while, ok := block.Stmts[1].(*ast.WhileStmt)
	require.True(t, ok, "for loop body desugars into a WhileStmt")
	assert.Equal(t, "(< i 3)", ast.Print(while.Cond))

	whileBody, ok := while.Body.(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, whileBody.Stmts, 2)
}

func TestForLoopWithoutConditionDefaultsTrue(t *testing.T) {
	prog, errs := parse(t, "for (;;) print 1;")
	require.False(t, errs.HadError())
	// with no initializer there is no outer block: the WhileStmt is top-level.
	while := prog.Stmts[0].(*ast.WhileStmt)
	assert.Equal(t, "true", ast.Print(while.Cond))
}

func TestClassDeclarationWithSuperclass(t *testing.T) {
	prog, errs := parse(t, "class Cake < Pastry { bake() { print \"bake\"; } }")
	require.False(t, errs.HadError())
	cls := prog.Stmts[0].(*ast.ClassStmt)
	assert.Equal(t, "Cake", cls.Name.Lexeme)
	require.NotNil(t, cls.Superclass)
	assert.Equal(t, "Pastry", cls.Superclass.Name.Lexeme)
	require.Len(t, cls.Methods, 1)
	assert.Equal(t, "bake", cls.Methods[0].Name.Lexeme)
}

func TestClassDeclarationWithoutSuperclassIsNil(t *testing.T) {
	prog, errs := parse(t, "class Solo { }")
	require.False(t, errs.HadError())
	cls := prog.Stmts[0].(*ast.ClassStmt)
	assert.Nil(t, cls.Superclass)
}

func TestFunctionDeclaration(t *testing.T) {
	prog, errs := parse(t, "fun add(a, b) { return a + b; }")
	require.False(t, errs.HadError())
	fn := prog.Stmts[0].(*ast.FunctionDecl)
	assert.Equal(t, "add", fn.Name.Lexeme)
	require.Len(t, fn.Params, 2)
	require.Len(t, fn.Body, 1)
	assert.IsType(t, &ast.ReturnStmt{}, fn.Body[0])
}

func TestTooManyArgsReportsButDoesNotAbort(t *testing.T) {
	src := "f(1, 2, 3, 4, 5, 6, 7, 8, 9);"
	_, errs := parse(t, src)
	require.True(t, errs.HadError())
	assert.Contains(t, errs.All()[0].Message, "Can't have more than 8 arguments.")
}

func TestMissingSemicolonReportsErrorAtToken(t *testing.T) {
	_, errs := parse(t, "print 1")
	require.True(t, errs.HadError())
	d := errs.All()[0]
	assert.Equal(t, "at end", d.Where)
	assert.Equal(t, "Expect ';' after value.", d.Message)
}

func TestSynchronizeRecoversAtNextStatement(t *testing.T) {
	prog, errs := parse(t, "var = ; print \"ok\";")
	require.True(t, errs.HadError())
	require.Len(t, prog.Stmts, 2)
	assert.Nil(t, prog.Stmts[0]) // the broken var decl synchronized away
	ps, ok := prog.Stmts[1].(*ast.PrintStmt)
	require.True(t, ok)
	assert.Equal(t, "ok", ast.Print(ps.Expr))
}
