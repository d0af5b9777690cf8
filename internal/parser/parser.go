package parser

import (
	"fmt"
	"strings"

	"github.com/midbel/roblint/internal/ast"
	"github.com/midbel/roblint/internal/token"
)

// Parse builds the suite tree from the scanned lines. It never fails:
// malformed input degrades to a best effort tree and the problems are
// recorded as diagnostics on the returned file.
func Parse(name string, lines []token.Line) *ast.File {
	p := parser{
		file: &ast.File{Name: name},
	}
	for _, ln := range lines {
		p.parseLine(ln)
	}
	p.closeNode()
	p.flushPending()
	return p.file
}

const (
	lastNone = iota
	lastStatement
	lastDoc
	lastArgs
	lastSetting
)

type parser struct {
	file    *ast.File
	section *ast.Section
	test    *ast.TestCase
	keyword *ast.Keyword
	skip    bool

	pending []token.Comment
	last    int
}

func (p *parser) parseLine(ln token.Line) {
	switch {
	case ln.Blank():
	case ln.CommentOnly():
		p.pending = append(p.pending, ln.Comment)
	case isHeader(ln):
		p.openSection(ln)
	case ln.First().IsContinuation():
		p.continueLast(ln)
	case p.skip:
	case p.section == nil:
		p.diag(ast.Diagnostic{
			Kind:     ast.DiagDataBeforeSection,
			Message:  "data found before first section header",
			Subject:  ast.SubjectFile,
			Position: ln.Position,
		})
	default:
		p.parseBody(ln)
	}
}

func (p *parser) parseBody(ln token.Line) {
	p.section.End = ln.Position
	switch p.section.Kind {
	case ast.SectionSettings, ast.SectionVariables:
		p.parseSetting(ln)
	case ast.SectionTestCases, ast.SectionKeywords:
		if !ln.Indented {
			p.openNode(ln)
			return
		}
		p.parseStatement(ln)
	}
}

func (p *parser) parseSetting(ln token.Line) {
	set := ast.Setting{
		Name:     ln.First().Literal,
		Values:   ln.Rest(),
		Comment:  ln.Comment,
		Position: ln.First().Position,
	}
	p.section.Settings = append(p.section.Settings, &set)
	p.flushPending()
	p.last = lastSetting
}

func (p *parser) openNode(ln token.Line) {
	p.closeNode()
	first := ln.First()
	switch p.section.Kind {
	case ast.SectionTestCases:
		p.test = &ast.TestCase{
			Name:     first.Literal,
			Comment:  ln.Comment,
			Position: first.Position,
			End:      ln.Position,
		}
		p.section.Tests = append(p.section.Tests, p.test)
	case ast.SectionKeywords:
		p.keyword = &ast.Keyword{
			Name:     first.Literal,
			Comment:  ln.Comment,
			Position: first.Position,
			End:      ln.Position,
		}
		p.section.Keywords = append(p.section.Keywords, p.keyword)
	}
	p.last = lastNone
}

func (p *parser) parseStatement(ln token.Line) {
	if p.test == nil && p.keyword == nil {
		p.diag(ast.Diagnostic{
			Kind:     ast.DiagOrphanStatement,
			Message:  "statement outside any test case or keyword",
			Subject:  ast.SubjectStatement,
			Position: ln.Position,
		})
		return
	}
	p.touch(ln)
	first := ln.First()
	switch name := strings.ToLower(first.Literal); {
	case name == "[documentation]":
		p.parseDocumentation(ln)
	case name == "[arguments]" && p.keyword != nil:
		p.parseArguments(ln)
	default:
		stmt := ast.Statement{
			Name:     first.Literal,
			Args:     ln.Rest(),
			Comment:  ln.Comment,
			Leading:  p.pending,
			Position: first.Position,
		}
		p.pending = nil
		if p.test != nil {
			p.test.Statements = append(p.test.Statements, &stmt)
		} else {
			p.keyword.Statements = append(p.keyword.Statements, &stmt)
		}
		p.last = lastStatement
	}
}

func (p *parser) parseDocumentation(ln token.Line) {
	var (
		doc  *string
		pos  *token.Position
		kind = ast.SubjectTestCase
	)
	if p.test != nil {
		doc, pos = &p.test.Documentation, &p.test.DocPos
	} else {
		doc, pos = &p.keyword.Documentation, &p.keyword.DocPos
		kind = ast.SubjectKeyword
	}
	if *doc != "" {
		name := ""
		if p.test != nil {
			name = p.test.Name
		} else {
			name = p.keyword.Name
		}
		p.diag(ast.Diagnostic{
			Kind:        ast.DiagDuplicateDocumentation,
			Message:     "duplicated [Documentation] setting, only the first is kept",
			Subject:     kind,
			SubjectName: name,
			Position:    ln.First().Position,
		})
		p.last = lastNone
		return
	}
	*doc = joinCells(ln.Rest())
	*pos = ln.First().Position
	p.last = lastDoc
}

func (p *parser) parseArguments(ln token.Line) {
	p.keyword.Args = append(p.keyword.Args, parseArgs(ln.Rest())...)
	p.last = lastArgs
}

func (p *parser) continueLast(ln token.Line) {
	rest := ln.Rest()
	switch p.last {
	case lastStatement:
		stmt := p.lastStatement()
		stmt.Args = append(stmt.Args, rest...)
		if stmt.Comment.Zero() {
			stmt.Comment = ln.Comment
		}
	case lastDoc:
		doc := &p.test.Documentation
		if p.keyword != nil {
			doc = &p.keyword.Documentation
		}
		if str := joinCells(rest); str != "" {
			*doc = strings.TrimSpace(*doc + " " + str)
		}
	case lastArgs:
		p.keyword.Args = append(p.keyword.Args, parseArgs(rest)...)
	case lastSetting:
		set := p.section.Settings[len(p.section.Settings)-1]
		set.Values = append(set.Values, rest...)
	default:
		p.diag(ast.Diagnostic{
			Kind:     ast.DiagOrphanStatement,
			Message:  "continuation line without a statement to continue",
			Subject:  ast.SubjectStatement,
			Position: ln.Position,
		})
		return
	}
	p.touch(ln)
}

func (p *parser) lastStatement() *ast.Statement {
	if p.test != nil {
		return p.test.Statements[len(p.test.Statements)-1]
	}
	return p.keyword.Statements[len(p.keyword.Statements)-1]
}

func (p *parser) openSection(ln token.Line) {
	p.closeNode()
	p.flushPending()
	title := sectionTitle(joinCells(ln.Cells))
	kind := ast.SectionKindOf(title)
	if kind == ast.SectionUnknown {
		p.diag(ast.Diagnostic{
			Kind:     ast.DiagOrphanSection,
			Message:  fmt.Sprintf("unrecognized section %q", title),
			Subject:  ast.SubjectSection,
			Position: ln.Position,
		})
		p.section = nil
		p.skip = true
		return
	}
	p.section = &ast.Section{
		Kind:     kind,
		Title:    title,
		Comment:  ln.Comment,
		Position: ln.Position,
		End:      ln.Position,
	}
	p.file.Sections = append(p.file.Sections, p.section)
	p.skip = false
	p.last = lastNone
}

func (p *parser) closeNode() {
	if p.test != nil || p.keyword != nil {
		p.flushPending()
	}
	p.test = nil
	p.keyword = nil
	p.last = lastNone
}

// flushPending attaches buffered standalone comments to the current
// node when one is open, otherwise to the file. Statements take the
// buffer directly when they are created, so what reaches here had no
// following body line in its node.
func (p *parser) flushPending() {
	if len(p.pending) == 0 {
		return
	}
	switch {
	case p.test != nil:
		p.test.Comments = append(p.test.Comments, p.pending...)
	case p.keyword != nil:
		p.keyword.Comments = append(p.keyword.Comments, p.pending...)
	default:
		p.file.Comments = append(p.file.Comments, p.pending...)
	}
	p.pending = nil
}

func (p *parser) touch(ln token.Line) {
	if p.test != nil {
		p.test.End = ln.Position
	}
	if p.keyword != nil {
		p.keyword.End = ln.Position
	}
	if p.section != nil {
		p.section.End = ln.Position
	}
}

func (p *parser) diag(d ast.Diagnostic) {
	p.file.Diagnostics = append(p.file.Diagnostics, d)
}

func isHeader(ln token.Line) bool {
	if ln.Indented || len(ln.Cells) == 0 {
		return false
	}
	return strings.HasPrefix(ln.First().Literal, "*")
}

func sectionTitle(str string) string {
	str = strings.Trim(str, "*")
	return strings.TrimSpace(str)
}

func joinCells(cells []token.Token) string {
	var parts []string
	for _, c := range cells {
		parts = append(parts, c.Literal)
	}
	return strings.Join(parts, " ")
}

func parseArgs(cells []token.Token) []ast.Arg {
	var args []ast.Arg
	for _, c := range cells {
		arg := ast.Arg{
			Name:     c.Literal,
			Position: c.Position,
		}
		if name, value, ok := strings.Cut(c.Literal, "="); ok {
			arg.Name = name
			arg.Default = value
			arg.HasDefault = true
		}
		args = append(args, arg)
	}
	return args
}
