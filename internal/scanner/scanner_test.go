package scanner_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midbel/roblint/internal/scanner"
	"github.com/midbel/roblint/internal/token"
)

func scanOne(t *testing.T, str string) token.Line {
	t.Helper()
	lines, err := scanner.Scan(strings.NewReader(str))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	return lines[0]
}

func TestScanCells(t *testing.T) {
	ln := scanOne(t, "Log  message")
	require.Len(t, ln.Cells, 2)
	assert.Equal(t, "Log", ln.Cells[0].Literal)
	assert.Equal(t, "message", ln.Cells[1].Literal)
	assert.False(t, ln.Indented)
}

func TestScanSingleSpaceKeepsCell(t *testing.T) {
	ln := scanOne(t, "Log message")
	require.Len(t, ln.Cells, 1)
	assert.Equal(t, "Log message", ln.Cells[0].Literal)
}

func TestScanTabSeparator(t *testing.T) {
	ln := scanOne(t, "Log\tmessage\textra")
	require.Len(t, ln.Cells, 3)
	assert.Equal(t, "message", ln.Cells[1].Literal)
}

func TestScanIndent(t *testing.T) {
	ln := scanOne(t, "    Log    message")
	assert.True(t, ln.Indented)
	require.Len(t, ln.Cells, 2)
	assert.Equal(t, token.Position{Line: 1, Column: 5}, ln.Cells[0].Position)
	assert.Equal(t, token.Position{Line: 1, Column: 12}, ln.Cells[1].Position)

	ln = scanOne(t, "\tLog\tmessage")
	assert.True(t, ln.Indented)
	require.Len(t, ln.Cells, 2)
}

func TestScanComment(t *testing.T) {
	ln := scanOne(t, "Log    message    # trailing note")
	require.Len(t, ln.Cells, 2)
	require.False(t, ln.Comment.Zero())
	assert.Equal(t, " trailing note", ln.Comment.Text)
	assert.Equal(t, 19, ln.Comment.Column)
}

func TestScanCommentOnly(t *testing.T) {
	ln := scanOne(t, "# roblint: disable=some-rule")
	assert.True(t, ln.CommentOnly())
	assert.Equal(t, " roblint: disable=some-rule", ln.Comment.Text)
}

func TestScanEscapedComment(t *testing.T) {
	ln := scanOne(t, "Log    a\\#b")
	require.Len(t, ln.Cells, 2)
	assert.Equal(t, "a#b", ln.Cells[1].Literal)
	assert.True(t, ln.Comment.Zero())
}

func TestScanContinuation(t *testing.T) {
	ln := scanOne(t, "...    more    args")
	require.Len(t, ln.Cells, 3)
	assert.True(t, ln.Cells[0].IsContinuation())
}

func TestScanBlankLinesKept(t *testing.T) {
	lines, err := scanner.Scan(strings.NewReader("First\n\n\nSecond\n"))
	require.NoError(t, err)
	require.Len(t, lines, 4)
	assert.True(t, lines[1].Blank())
	assert.True(t, lines[2].Blank())
	assert.Equal(t, 4, lines[3].Position.Line)
}

func TestScanBOM(t *testing.T) {
	ln := scanOne(t, "\xef\xbb\xbf*** Settings ***")
	require.Len(t, ln.Cells, 1)
	assert.Equal(t, "*** Settings ***", ln.Cells[0].Literal)
}

func TestScanInvalidEncoding(t *testing.T) {
	_, err := scanner.Scan(strings.NewReader("Log\n\xff\xfe message"))
	require.Error(t, err)
	assert.ErrorIs(t, err, scanner.ErrEncoding)

	var terr scanner.TokenizeError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, 2, terr.Position.Line)
}
