package maincmd

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/tlox/lang/diag"
	"github.com/mna/tlox/lang/interp"
	"github.com/mna/tlox/lang/parser"
	"github.com/mna/tlox/lang/resolver"
	"github.com/mna/tlox/lang/scanner"
)

// runFile reads and runs a single script file, mapping the outcome to the
// exit codes spec.md §6 requires.
func (c *Cmd) runFile(stdio mainer.Stdio, path string) mainer.ExitCode {
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
	in := interp.New(stdio.Stdout)
	if runErr := run(string(src), &errs, in); runErr != nil {
		fmt.Fprintln(stdio.Stderr, runErr)
		return mainer.ExitCode(70)
	}
	if errs.HadError() {
		printDiagnostics(stdio, &errs)
		return mainer.ExitCode(65)
	}
	return mainer.Success
}

// runPrompt implements the REPL: each line is scanned, parsed, resolved and
// interpreted independently, against a persistent Interpreter so top-level
// variable and function declarations survive across lines. A compile or
// runtime error on one line is reported but does not end the session.
func (c *Cmd) runPrompt(ctx context.Context, stdio mainer.Stdio) mainer.ExitCode {
	in := interp.New(stdio.Stdout)
	scan := bufio.NewScanner(stdio.Stdin)

	for {
		fmt.Fprint(stdio.Stdout, "> ")
		select {
		case <-ctx.Done():
			return mainer.Success
		default:
		}
		if !scan.Scan() {
			return mainer.Success
		}

		var errs diag.Diagnostics
		if runErr := run(scan.Text(), &errs, in); runErr != nil {
			fmt.Fprintln(stdio.Stderr, runErr)
		} else if errs.HadError() {
			printDiagnostics(stdio, &errs)
		}
	}
}

// run scans, parses, resolves and interprets src against in, the pipeline
// shared by file execution and the REPL. The debug dump commands in
// debug.go run their own phases and do not go through run.
func run(src string, errs *diag.Diagnostics, in *interp.Interpreter) error {
	toks := scanner.New(src, errs).ScanTokens()
	prog := parser.New(toks, errs).Parse()
	if errs.HadError() {
		return nil
	}

	locals := resolver.New(errs).Resolve(prog)
	if errs.HadError() {
		return nil
	}

	return in.Interpret(prog, locals)
}

func printDiagnostics(stdio mainer.Stdio, errs *diag.Diagnostics) {
	for _, d := range errs.All() {
		fmt.Fprintln(stdio.Stderr, d.String())
	}
}
