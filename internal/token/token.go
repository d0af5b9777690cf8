package token

import (
	"fmt"
)

type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

func (p Position) Less(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

type Token struct {
	Literal string
	Type    rune

	Position
}

func (t Token) IsContinuation() bool {
	return t.Type == Continuation
}

func (t Token) String() string {
	switch t.Type {
	case Cell:
		return fmt.Sprintf("cell(%s)", t.Literal)
	case Continuation:
		return "<continuation>"
	case Blank:
		return "<blank>"
	default:
		return "<unknown>"
	}
}

// Comment keeps the raw text of an inline comment together with the
// column of its leading # on the original line.
type Comment struct {
	Text string
	Position
}

func (c Comment) Zero() bool {
	return c.Text == "" && c.Line == 0
}

// Line is one physical line split into cells. Indented reports whether
// the line started with a cell separator, which is the structural
// signal telling header lines and body lines apart.
type Line struct {
	Cells    []Token
	Comment  Comment
	Indented bool

	Position
}

func (i Line) Blank() bool {
	return len(i.Cells) == 0 && i.Comment.Zero()
}

func (i Line) CommentOnly() bool {
	return len(i.Cells) == 0 && !i.Comment.Zero()
}

func (i Line) First() Token {
	if len(i.Cells) == 0 {
		return Token{Type: Blank, Position: i.Position}
	}
	return i.Cells[0]
}

func (i Line) Rest() []Token {
	if len(i.Cells) <= 1 {
		return nil
	}
	return i.Cells[1:]
}
