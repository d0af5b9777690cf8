package scanner

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/midbel/roblint/internal/token"
)

// ErrEncoding is returned (wrapped in a TokenizeError) when the input
// contains byte sequences that are not valid UTF-8.
var ErrEncoding = fmt.Errorf("invalid utf-8 sequence")

type TokenizeError struct {
	Position token.Position
	Err      error
}

func (e TokenizeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Err)
}

func (e TokenizeError) Unwrap() error {
	return e.Err
}

// Scan splits the raw input into lines and each line into cells. Cells
// are separated by a single tab or a run of two or more spaces; a
// single space never splits. Inline comments run from an unescaped #
// to the end of the line and are removed from the cell stream but kept
// with their text and column. Blank lines are preserved as lines with
// zero cells since they matter to the structural parser.
func Scan(r io.Reader) ([]token.Line, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	buf, _ = bytes.CutPrefix(buf, []byte{0xef, 0xbb, 0xbf})
	if !utf8.Valid(buf) {
		return nil, TokenizeError{
			Position: badPosition(buf),
			Err:      ErrEncoding,
		}
	}
	var list []token.Line
	for i, str := range splitLines(string(buf)) {
		list = append(list, scanLine(str, i+1))
	}
	return list, nil
}

func splitLines(str string) []string {
	str = strings.ReplaceAll(str, "\r\n", "\n")
	str = strings.TrimSuffix(str, "\n")
	return strings.Split(str, "\n")
}

func badPosition(buf []byte) token.Position {
	line := 1
	for len(buf) > 0 {
		r, n := utf8.DecodeRune(buf)
		if r == utf8.RuneError && n <= 1 {
			break
		}
		if r == nl {
			line++
		}
		buf = buf[n:]
	}
	return token.Position{Line: line, Column: 1}
}

type liner struct {
	input []rune
	curr  int
	line  int

	cells []token.Token
	str   strings.Builder
	start int
}

func scanLine(str string, lineno int) token.Line {
	s := liner{
		input: []rune(str),
		line:  lineno,
	}
	return s.scan()
}

func (s *liner) scan() token.Line {
	line := token.Line{
		Position: token.Position{Line: s.line, Column: 1},
		Indented: s.indented(),
	}
	for !s.done() {
		switch {
		case isSeparator(s.input, s.curr):
			s.flush()
			s.skipSeparator()
		case isEscapedComment(s.input, s.curr):
			s.write(pound)
			s.curr += 2
		case s.char() == pound:
			s.flush()
			line.Comment = token.Comment{
				Text:     string(s.input[s.curr+1:]),
				Position: token.Position{Line: s.line, Column: s.curr + 1},
			}
			s.curr = len(s.input)
		case s.char() == space:
			// single space: part of the current cell, never a separator
			if s.str.Len() > 0 {
				s.write(space)
			}
			s.curr++
		default:
			s.write(s.char())
			s.curr++
		}
	}
	s.flush()
	line.Cells = s.cells
	return line
}

func (s *liner) indented() bool {
	if len(s.input) == 0 {
		return false
	}
	return s.input[0] == tab || isSeparator(s.input, 0)
}

func (s *liner) flush() {
	str := strings.TrimRight(s.str.String(), " ")
	if str == "" {
		s.str.Reset()
		return
	}
	tok := token.Token{
		Literal:  str,
		Type:     token.Cell,
		Position: token.Position{Line: s.line, Column: s.start + 1},
	}
	if str == ellipsis {
		tok.Type = token.Continuation
	}
	s.cells = append(s.cells, tok)
	s.str.Reset()
}

func (s *liner) skipSeparator() {
	if s.char() == tab {
		s.curr++
		return
	}
	for !s.done() && s.char() == space {
		s.curr++
	}
}

func (s *liner) write(r rune) {
	if s.str.Len() == 0 {
		s.start = s.curr
	}
	s.str.WriteRune(r)
}

func (s *liner) char() rune {
	return s.input[s.curr]
}

func (s *liner) done() bool {
	return s.curr >= len(s.input)
}
