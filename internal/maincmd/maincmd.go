// Package maincmd implements the tlox command-line entry point: argument
// parsing, REPL/file dispatch and the exit code contract of spec.md §6.
package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
)

const binName = "tlox"

var (
	shortUsage = fmt.Sprintf("usage: %s [script]\n", binName)

	longUsage = fmt.Sprintf(`usage: %[1]s [script]
       %[1]s -h|--help
       %[1]s -v|--version

Tree-walking interpreter for the tlox scripting language.

With no arguments, %[1]s starts an interactive REPL. With one argument, it
runs the given script file. Providing more than one argument is an error.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --tokenize                Print the token stream for the given
                                  script instead of running it.
       --parse                   Print the parsed syntax tree for the
                                  given script instead of running it.
       --resolve                 Print the parsed syntax tree along with
                                  variable resolution depths, instead of
                                  running it.
`, binName)
)

// Cmd is the tlox command; its exported fields are populated by mainer's
// flag parser from the process arguments.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	DumpTokens bool `flag:"tokenize"`
	DumpParse  bool `flag:"parse"`
	DumpLocals bool `flag:"resolve"`

	args  []string
	flags map[string]bool
}

func (c *Cmd) SetArgs(args []string)          { c.args = args }
func (c *Cmd) SetFlags(flags map[string]bool) { c.flags = flags }

// Validate enforces the argument-count and flag-combination rules that
// mainer.Parser can't express declaratively: at most one debug dump flag,
// and a dump flag requires exactly one script argument.
func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	dumpCount := 0
	for _, set := range []bool{c.DumpTokens, c.DumpParse, c.DumpLocals} {
		if set {
			dumpCount++
		}
	}
	if dumpCount > 1 {
		return fmt.Errorf("only one of --tokenize, --parse, --resolve may be given")
	}
	if dumpCount == 1 && len(c.args) != 1 {
		return fmt.Errorf("--tokenize, --parse and --resolve require exactly one script argument")
	}
	return nil
}

// Main runs the command and returns the process exit code, following
// spec.md §6 exactly: 0 on success, 64 on CLI usage error, 65 on a
// scan/parse/resolve error, 70 on an uncaught runtime error, 127 when the
// given script file does not exist.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false, EnvPrefix: binName + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.ExitCode(64)
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)

	switch {
	case c.DumpTokens:
		return c.runDump(stdio, c.args[0], dumpTokens)
	case c.DumpParse:
		return c.runDump(stdio, c.args[0], dumpParse)
	case c.DumpLocals:
		return c.runDump(stdio, c.args[0], dumpResolve)
	case len(c.args) == 0:
		return c.runPrompt(ctx, stdio)
	case len(c.args) == 1:
		return c.runFile(stdio, c.args[0])
	default:
		fmt.Fprint(stdio.Stderr, shortUsage)
		return mainer.ExitCode(64)
	}
}
