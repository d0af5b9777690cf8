package ast

import (
	"strings"

	"github.com/midbel/roblint/internal/token"
)

type SectionKind int

const (
	SectionUnknown SectionKind = iota
	SectionSettings
	SectionVariables
	SectionTestCases
	SectionKeywords
)

func (k SectionKind) String() string {
	switch k {
	case SectionSettings:
		return "settings"
	case SectionVariables:
		return "variables"
	case SectionTestCases:
		return "test cases"
	case SectionKeywords:
		return "keywords"
	default:
		return "unknown"
	}
}

// SectionKindOf normalizes a section title to its kind. Titles are
// matched case-insensitively and accept the singular/plural synonyms
// of the format.
func SectionKindOf(title string) SectionKind {
	name := strings.ToLower(title)
	name = strings.Join(strings.Fields(name), " ")
	switch name {
	case "setting", "settings":
		return SectionSettings
	case "variable", "variables":
		return SectionVariables
	case "test case", "test cases", "task", "tasks":
		return SectionTestCases
	case "keyword", "keywords", "user keyword", "user keywords":
		return SectionKeywords
	default:
		return SectionUnknown
	}
}

type SubjectKind int

const (
	SubjectFile SubjectKind = iota
	SubjectSection
	SubjectTestCase
	SubjectKeyword
	SubjectStatement
)

func (k SubjectKind) String() string {
	switch k {
	case SubjectSection:
		return "section"
	case SubjectTestCase:
		return "test case"
	case SubjectKeyword:
		return "keyword"
	case SubjectStatement:
		return "statement"
	default:
		return "file"
	}
}

type DiagKind int

const (
	DiagDataBeforeSection DiagKind = iota
	DiagOrphanStatement
	DiagOrphanSection
	DiagDuplicateDocumentation
)

// Diagnostic is a non fatal problem found while building the tree. The
// parser never fails, it records diagnostics and keeps going.
type Diagnostic struct {
	Kind        DiagKind
	Message     string
	Subject     SubjectKind
	SubjectName string

	token.Position
}

type File struct {
	Name     string
	Sections []*Section
	Comments []token.Comment

	Diagnostics []Diagnostic
}

func (f *File) Section(kind SectionKind) *Section {
	for _, s := range f.Sections {
		if s.Kind == kind {
			return s
		}
	}
	return nil
}

func (f *File) TestCases() []*TestCase {
	var list []*TestCase
	for _, s := range f.Sections {
		list = append(list, s.Tests...)
	}
	return list
}

func (f *File) Keywords() []*Keyword {
	var list []*Keyword
	for _, s := range f.Sections {
		list = append(list, s.Keywords...)
	}
	return list
}

type Section struct {
	Kind     SectionKind
	Title    string
	Comment  token.Comment
	Settings []*Setting
	Tests    []*TestCase
	Keywords []*Keyword

	token.Position
	End token.Position
}

// Setting is one entry of a settings or variables section: an import,
// a suite level option or a variable definition.
type Setting struct {
	Name    string
	Values  []token.Token
	Comment token.Comment

	token.Position
}

type TestCase struct {
	Name          string
	Documentation string
	DocPos        token.Position
	Statements    []*Statement
	Comment       token.Comment
	Comments      []token.Comment

	token.Position
	End token.Position
}

func (t *TestCase) Documented() bool {
	return strings.TrimSpace(t.Documentation) != ""
}

type Keyword struct {
	Name          string
	Documentation string
	DocPos        token.Position
	Args          []Arg
	Statements    []*Statement
	Comment       token.Comment
	Comments      []token.Comment

	token.Position
	End token.Position
}

func (k *Keyword) Documented() bool {
	return strings.TrimSpace(k.Documentation) != ""
}

// Arg is a declared keyword argument, with its default value when the
// declaration used the name=default form.
type Arg struct {
	Name       string
	Default    string
	HasDefault bool

	token.Position
}

type Statement struct {
	Name    string
	Args    []token.Token
	Comment token.Comment
	Leading []token.Comment

	token.Position
}
