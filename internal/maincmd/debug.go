package maincmd

import (
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/tlox/lang/ast"
	"github.com/mna/tlox/lang/diag"
	"github.com/mna/tlox/lang/parser"
	"github.com/mna/tlox/lang/resolver"
	"github.com/mna/tlox/lang/scanner"
)

// dumpFn renders one compilation phase of src to stdio.Stdout.
type dumpFn func(stdio mainer.Stdio, src string, errs *diag.Diagnostics)

// runDump reads path and renders the phase selected by fn instead of
// interpreting the script, for the --tokenize/--parse/--resolve flags.
func (c *Cmd) runDump(stdio mainer.Stdio, path string, fn dumpFn) mainer.ExitCode {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(stdio.Stderr, "%s: no such file\n", path)
			return mainer.ExitCode(127)
		}
		fmt.Fprintln(stdio.Stderr, err)
		return mainer.ExitCode(127)
	}

	var errs diag.Diagnostics
	fn(stdio, string(src), &errs)
	if errs.HadError() {
		printDiagnostics(stdio, &errs)
		return mainer.ExitCode(65)
	}
	return mainer.Success
}

func dumpTokens(stdio mainer.Stdio, src string, errs *diag.Diagnostics) {
	toks := scanner.New(src, errs).ScanTokens()
	for _, tok := range toks {
		fmt.Fprintln(stdio.Stdout, tok.String())
	}
}

func dumpParse(stdio mainer.Stdio, src string, errs *diag.Diagnostics) {
	toks := scanner.New(src, errs).ScanTokens()
	prog := parser.New(toks, errs).Parse()
	if errs.HadError() {
		return
	}
	fmt.Fprintln(stdio.Stdout, ast.Print(prog))
}

func dumpResolve(stdio mainer.Stdio, src string, errs *diag.Diagnostics) {
	toks := scanner.New(src, errs).ScanTokens()
	prog := parser.New(toks, errs).Parse()
	if errs.HadError() {
		return
	}
	locals := resolver.New(errs).Resolve(prog)
	if errs.HadError() {
		return
	}
	fmt.Fprintln(stdio.Stdout, ast.Print(prog))
	for id, depth := range locals {
		fmt.Fprintf(stdio.Stdout, "  expr#%d -> depth %d\n", id, depth)
	}
}
