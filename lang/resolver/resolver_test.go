package resolver_test

import (
	"testing"

	"github.com/mna/tlox/lang/ast"
	"github.com/mna/tlox/lang/diag"
	"github.com/mna/tlox/lang/parser"
	"github.com/mna/tlox/lang/resolver"
	"github.com/mna/tlox/lang/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, src string) (*ast.Program, map[ast.ExprID]int, *diag.Diagnostics) {
	t.Helper()
	var errs diag.Diagnostics
	toks := scanner.New(src, &errs).ScanTokens()
	prog := parser.New(toks, &errs).Parse()
	require.False(t, errs.HadError(), "unexpected parse errors: %v", errs.All())
	locals := resolver.New(&errs).Resolve(prog)
	return prog, locals, &errs
}

func TestResolveLocalDepth(t *testing.T) {
	_, locals, errs := resolve(t, `
		var a = "global";
		{
			var a = "outer";
			{
				var a = "inner";
				print a;
			}
		}
	`)
	require.False(t, errs.HadError())
	// exactly one variable reference (the innermost "print a") needs
	// resolving; it refers to the scope it's declared in directly.
	require.Len(t, locals, 1)
	for _, depth := range locals {
		assert.Equal(t, 0, depth)
	}
}

func TestReadLocalVariableInOwnInitializerIsError(t *testing.T) {
	_, _, errs := resolve(t, `
		var a = "outer";
		{
			var a = a;
		}
	`)
	require.True(t, errs.HadError())
	assert.Equal(t, "Cannot read local variable in its own initializer.", errs.All()[0].Message)
}

func TestDuplicateDeclarationInSameScopeIsError(t *testing.T) {
	_, _, errs := resolve(t, `
		{
			var a = 1;
			var a = 2;
		}
	`)
	require.True(t, errs.HadError())
	assert.Equal(t, "Variable with this name already declared in this scope.", errs.All()[0].Message)
}

func TestShadowingAcrossScopesIsFine(t *testing.T) {
	_, _, errs := resolve(t, `
		var a = 1;
		fun f() {
			var a = 2;
			print a;
		}
	`)
	require.False(t, errs.HadError())
}

func TestReturnFromTopLevelIsError(t *testing.T) {
	_, _, errs := resolve(t, `return 1;`)
	require.True(t, errs.HadError())
	assert.Equal(t, "Cannot return from top-level code.", errs.All()[0].Message)
}

func TestReturnValueFromInitializerIsError(t *testing.T) {
	_, _, errs := resolve(t, `
		class Foo {
			init() {
				return 1;
			}
		}
	`)
	require.True(t, errs.HadError())
	assert.Equal(t, "Cannot return a value from an initializer.", errs.All()[0].Message)
}

func TestBareReturnFromInitializerIsFine(t *testing.T) {
	_, _, errs := resolve(t, `
		class Foo {
			init() {
				return;
			}
		}
	`)
	require.False(t, errs.HadError())
}

func TestClassCannotInheritFromItself(t *testing.T) {
	_, _, errs := resolve(t, `class Foo < Foo {}`)
	require.True(t, errs.HadError())
	assert.Equal(t, "A class can't inherit from itself.", errs.All()[0].Message)
}

func TestThisOutsideClassIsError(t *testing.T) {
	_, _, errs := resolve(t, `print this;`)
	require.True(t, errs.HadError())
	assert.Equal(t, "Cannot use 'this' outside of a class.", errs.All()[0].Message)
}

func TestThisInsideMethodResolves(t *testing.T) {
	_, _, errs := resolve(t, `
		class Foo {
			bar() {
				print this;
			}
		}
	`)
	require.False(t, errs.HadError())
}

func TestSuperOutsideClassIsError(t *testing.T) {
	_, _, errs := resolve(t, `print super.bar;`)
	require.True(t, errs.HadError())
	assert.Equal(t, "Cannot use 'super' outside of a class.", errs.All()[0].Message)
}

func TestSuperInClassWithNoSuperclassIsError(t *testing.T) {
	_, _, errs := resolve(t, `
		class Foo {
			bar() {
				super.bar();
			}
		}
	`)
	require.True(t, errs.HadError())
	assert.Equal(t, "Cannot use 'super' in a class with no superclass.", errs.All()[0].Message)
}

func TestSuperInSubclassResolves(t *testing.T) {
	_, _, errs := resolve(t, `
		class A { bar() { print "a"; } }
		class B < A {
			bar() {
				super.bar();
			}
		}
	`)
	require.False(t, errs.HadError())
}
