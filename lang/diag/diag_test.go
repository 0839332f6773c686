package diag_test

import (
	"testing"

	"github.com/mna/tlox/lang/diag"
	"github.com/mna/tlox/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	var d diag.Diagnostics
	require.False(t, d.HadError())

	d.Report(3, "Unterminated string.")
	require.True(t, d.HadError())
	require.Len(t, d.All(), 1)
	assert.Equal(t, "[line 3] Error: Unterminated string.", d.All()[0].String())
}

func TestReportToken(t *testing.T) {
	var d diag.Diagnostics
	d.ReportToken(token.Token{Type: token.PLUS, Lexeme: "+", Line: 5}, "Expect expression.")
	d.ReportToken(token.Token{Type: token.EOF, Line: 6}, "Expect ';' after value.")

	all := d.All()
	require.Len(t, all, 2)
	assert.Equal(t, "[line 5] Error at '+': Expect expression.", all[0].String())
	assert.Equal(t, "[line 6] Error at end: Expect ';' after value.", all[1].String())
}

func TestReset(t *testing.T) {
	var d diag.Diagnostics
	d.Report(1, "boom")
	d.Reset()
	assert.False(t, d.HadError())
	assert.Empty(t, d.All())
}
