package interp_test

import (
	"strings"
	"testing"

	"github.com/mna/tlox/lang/diag"
	"github.com/mna/tlox/lang/interp"
	"github.com/mna/tlox/lang/parser"
	"github.com/mna/tlox/lang/resolver"
	"github.com/mna/tlox/lang/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run scans, parses, resolves and interprets src, returning everything
// printed to stdout and any runtime error.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	var errs diag.Diagnostics
	toks := scanner.New(src, &errs).ScanTokens()
	prog := parser.New(toks, &errs).Parse()
	require.False(t, errs.HadError(), "unexpected scan/parse errors: %v", errs.All())

	locals := resolver.New(&errs).Resolve(prog)
	require.False(t, errs.HadError(), "unexpected resolve errors: %v", errs.All())

	var out strings.Builder
	err := interp.New(&out).Interpret(prog, locals)
	return out.String(), err
}

func TestArithmeticAndPrint(t *testing.T) {
	out, err := run(t, `print 1 + 2 * 3;`)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, err := run(t, `print "foo" + "bar";`)
	require.NoError(t, err)
	assert.Equal(t, "foobar\n", out)
}

func TestNumberFormattingDropsTrailingZero(t *testing.T) {
	out, err := run(t, `print 6 / 2; print 1 / 4;`)
	require.NoError(t, err)
	assert.Equal(t, "3\n0.25\n", out)
}

func TestMixedOperandTypesIsRuntimeError(t *testing.T) {
	_, err := run(t, `print "a" + 1;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Operands must be two numbers or two strings.")
}

func TestVariableScopingAndShadowing(t *testing.T) {
	out, err := run(t, `
		var a = "global";
		{
			var a = "block";
			print a;
		}
		print a;
	`)
	require.NoError(t, err)
	assert.Equal(t, "block\nglobal\n", out)
}

func TestWhileLoop(t *testing.T) {
	out, err := run(t, `
		var i = 0;
		while (i < 3) {
			print i;
			i = i + 1;
		}
	`)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestForLoop(t *testing.T) {
	out, err := run(t, `
		for (var i = 0; i < 3; i = i + 1) print i;
	`)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestFunctionCallAndReturn(t *testing.T) {
	out, err := run(t, `
		fun add(a, b) { return a + b; }
		print add(2, 3);
	`)
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)
}

func TestClosureCapturesEnclosingVariable(t *testing.T) {
	out, err := run(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var counter = makeCounter();
		print counter();
		print counter();
	`)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", out)
}

func TestClassInstantiationFieldsAndMethods(t *testing.T) {
	out, err := run(t, `
		class Greeter {
			init(name) {
				this.name = name;
			}
			greet() {
				print "hi " + this.name;
			}
		}
		var g = Greeter("tlox");
		g.greet();
	`)
	require.NoError(t, err)
	assert.Equal(t, "hi tlox\n", out)
}

func TestInheritanceAndSuper(t *testing.T) {
	out, err := run(t, `
		class Animal {
			speak() {
				print "...";
			}
		}
		class Dog < Animal {
			speak() {
				super.speak();
				print "woof";
			}
		}
		Dog().speak();
	`)
	require.NoError(t, err)
	assert.Equal(t, "...\nwoof\n", out)
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	_, err := run(t, `
		var x = 1;
		x();
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can only call functions and classes.")
}

func TestWrongArityIsRuntimeError(t *testing.T) {
	_, err := run(t, `
		fun f(a) { return a; }
		f(1, 2);
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected 1 arguments but got 2.")
}

func TestUndefinedPropertyIsRuntimeError(t *testing.T) {
	_, err := run(t, `
		class Foo {}
		Foo().bar;
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined property 'bar'.")
}

func TestSuperclassMustBeClassIsRuntimeError(t *testing.T) {
	_, err := run(t, `
		var NotAClass = 1;
		class Foo < NotAClass {}
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Superclass must be a class.")
}
