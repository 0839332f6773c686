// Package diag collects compile-time diagnostics (scan, parse and resolve
// errors) on a single driver-owned object, rather than through process-wide
// mutable flags.
package diag

import (
	"fmt"
	"sort"

	"github.com/mna/tlox/lang/token"
)

// A Diagnostic is a single compile-time error report, already anchored to a
// source line.
type Diagnostic struct {
	Line    int
	Where   string // empty for a line-only report, "at 'LEXEME'" or "at end" otherwise
	Message string
}

func (d Diagnostic) String() string {
	if d.Where == "" {
		return fmt.Sprintf("[line %d] Error: %s", d.Line, d.Message)
	}
	return fmt.Sprintf("[line %d] Error %s: %s", d.Line, d.Where, d.Message)
}

// Diagnostics accumulates Diagnostic values across the scan, parse and
// resolve phases of a single compilation. It replaces the hadCompileError
// process-wide flag with a field on this object: HadError reports whether
// any diagnostic has been recorded so far.
type Diagnostics struct {
	items []Diagnostic
}

// Report records a diagnostic anchored only to a source line.
func (d *Diagnostics) Report(line int, message string) {
	d.items = append(d.items, Diagnostic{Line: line, Message: message})
}

// ReportToken records a diagnostic anchored to a specific token, using the
// "at 'LEXEME'" / "at end" forms spec.md requires.
func (d *Diagnostics) ReportToken(tok token.Token, message string) {
	where := "at end"
	if tok.Type != token.EOF {
		where = fmt.Sprintf("at '%s'", tok.Lexeme)
	}
	d.items = append(d.items, Diagnostic{Line: tok.Line, Where: where, Message: message})
}

// HadError reports whether any diagnostic has been recorded.
func (d *Diagnostics) HadError() bool { return len(d.items) > 0 }

// All returns the recorded diagnostics, sorted by source line (stable, so
// diagnostics reported on the same line keep their relative phase order).
func (d *Diagnostics) All() []Diagnostic {
	sorted := make([]Diagnostic, len(d.items))
	copy(sorted, d.items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Line < sorted[j].Line })
	return sorted
}

// Reset clears all recorded diagnostics, allowing the same Diagnostics value
// to be reused across multiple REPL evaluations.
func (d *Diagnostics) Reset() { d.items = d.items[:0] }
