package maincmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mna/mainer"
	"github.com/mna/tlox/internal/maincmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stdio(stdin string) (mainer.Stdio, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return mainer.Stdio{
		Stdin:  strings.NewReader(stdin),
		Stdout: &out,
		Stderr: &errOut,
	}, &out, &errOut
}

func writeScript(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "script.tlox")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

func TestRunFileSuccess(t *testing.T) {
	path := writeScript(t, `print 1 + 2;`)
	io, out, _ := stdio("")
	var c maincmd.Cmd
	code := c.Main([]string{"tlox", path}, io)
	assert.Equal(t, mainer.Success, code)
	assert.Equal(t, "3\n", out.String())
}

func TestRunFileNotFoundExits127(t *testing.T) {
	io, _, errOut := stdio("")
	var c maincmd.Cmd
	code := c.Main([]string{"tlox", "/no/such/file.tlox"}, io)
	assert.EqualValues(t, 127, code)
	assert.Contains(t, errOut.String(), "no such file")
}

func TestRunFileCompileErrorExits65(t *testing.T) {
	path := writeScript(t, `print ;`)
	io, _, errOut := stdio("")
	var c maincmd.Cmd
	code := c.Main([]string{"tlox", path}, io)
	assert.EqualValues(t, 65, code)
	assert.Contains(t, errOut.String(), "Error")
}

func TestRunFileRuntimeErrorExits70(t *testing.T) {
	path := writeScript(t, `print 1 + "a";`)
	io, _, errOut := stdio("")
	var c maincmd.Cmd
	code := c.Main([]string{"tlox", path}, io)
	assert.EqualValues(t, 70, code)
	assert.Contains(t, errOut.String(), "Operands must be two numbers or two strings.")
}

func TestTooManyArgsExits64(t *testing.T) {
	io, _, errOut := stdio("")
	var c maincmd.Cmd
	code := c.Main([]string{"tlox", "a.tlox", "b.tlox"}, io)
	assert.EqualValues(t, 64, code)
	assert.Contains(t, errOut.String(), "usage")
}

func TestDumpTokensFlag(t *testing.T) {
	path := writeScript(t, `1`)
	io, out, _ := stdio("")
	var c maincmd.Cmd
	code := c.Main([]string{"tlox", "--tokenize", path}, io)
	assert.Equal(t, mainer.Success, code)
	assert.Contains(t, out.String(), "number")
}
