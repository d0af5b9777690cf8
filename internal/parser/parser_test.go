package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midbel/roblint/internal/ast"
	"github.com/midbel/roblint/internal/parser"
	"github.com/midbel/roblint/internal/scanner"
)

func parseString(t *testing.T, str string) *ast.File {
	t.Helper()
	lines, err := scanner.Scan(strings.NewReader(str))
	require.NoError(t, err)
	return parser.Parse("test.robot", lines)
}

func TestSectionHeaderSpellings(t *testing.T) {
	headers := map[string]ast.SectionKind{
		"*** Test Cases ***":     ast.SectionTestCases,
		"*** test cases ***":     ast.SectionTestCases,
		"***Test Cases***":       ast.SectionTestCases,
		"***   Test Cases   ***": ast.SectionTestCases,
		"*** TEST CASES ***":     ast.SectionTestCases,
		"*** Test Case ***":      ast.SectionTestCases,
		"*** Tasks ***":          ast.SectionTestCases,
		"*** Settings ***":       ast.SectionSettings,
		"*** Setting ***":        ast.SectionSettings,
		"*** Variables ***":      ast.SectionVariables,
		"*** Keywords ***":       ast.SectionKeywords,
		"*** User Keywords ***":  ast.SectionKeywords,
	}
	for header, kind := range headers {
		file := parseString(t, header+"\n")
		require.Len(t, file.Sections, 1, "header %q", header)
		assert.Equal(t, kind, file.Sections[0].Kind, "header %q", header)
		assert.Empty(t, file.Diagnostics, "header %q", header)
	}
}

func TestUnknownSection(t *testing.T) {
	file := parseString(t, "*** Bogus ***\nSomething    here\n")
	assert.Empty(t, file.Sections)
	require.Len(t, file.Diagnostics, 1)
	assert.Equal(t, ast.DiagOrphanSection, file.Diagnostics[0].Kind)
}

func TestDataBeforeSection(t *testing.T) {
	file := parseString(t, "Log    message\n*** Test Cases ***\n")
	require.Len(t, file.Diagnostics, 1)
	assert.Equal(t, ast.DiagDataBeforeSection, file.Diagnostics[0].Kind)
	require.Len(t, file.Sections, 1)
}

func TestTestCases(t *testing.T) {
	file := parseString(t, `*** Test Cases ***
My First Test.
    Log    hello
    Sleep    1s

Second Test
    Log    world
`)
	tests := file.TestCases()
	require.Len(t, tests, 2)

	first := tests[0]
	assert.Equal(t, "My First Test.", first.Name)
	require.Len(t, first.Statements, 2)
	assert.Equal(t, "Log", first.Statements[0].Name)
	require.Len(t, first.Statements[0].Args, 1)
	assert.Equal(t, "hello", first.Statements[0].Args[0].Literal)
	assert.Equal(t, 2, first.Position.Line)
	assert.Equal(t, 4, first.End.Line)

	assert.Equal(t, "Second Test", tests[1].Name)
}

func TestTwoBlankLinesBetweenTests(t *testing.T) {
	file := parseString(t, `*** Test Cases ***
First
    Log    one


Second
    Log    two
`)
	tests := file.TestCases()
	require.Len(t, tests, 2)
	assert.Equal(t, "First", tests[0].Name)
	assert.Equal(t, "Second", tests[1].Name)
	require.Len(t, tests[0].Statements, 1)
	require.Len(t, tests[1].Statements, 1)
}

func TestDocumentation(t *testing.T) {
	file := parseString(t, `*** Keywords ***
Documented Keyword
    [Documentation]    Does something    useful.
    ...    And a bit more.
    No Operation
`)
	kws := file.Keywords()
	require.Len(t, kws, 1)
	kw := kws[0]
	assert.Equal(t, "Does something useful. And a bit more.", kw.Documentation)
	assert.Equal(t, 3, kw.DocPos.Line)
	require.Len(t, kw.Statements, 1)
	assert.Equal(t, "No Operation", kw.Statements[0].Name)
}

func TestDuplicateDocumentation(t *testing.T) {
	file := parseString(t, `*** Keywords ***
Twice Documented
    [Documentation]    first
    [Documentation]    second
    No Operation
`)
	kws := file.Keywords()
	require.Len(t, kws, 1)
	assert.Equal(t, "first", kws[0].Documentation)
	require.Len(t, file.Diagnostics, 1)
	d := file.Diagnostics[0]
	assert.Equal(t, ast.DiagDuplicateDocumentation, d.Kind)
	assert.Equal(t, ast.SubjectKeyword, d.Subject)
	assert.Equal(t, "Twice Documented", d.SubjectName)
	assert.Equal(t, 4, d.Position.Line)
}

func TestKeywordArguments(t *testing.T) {
	file := parseString(t, `*** Keywords ***
With Args
    [Arguments]    ${value}    ${prefix}=INFO
    ...    ${suffix}=
    Log    ${prefix} ${value}
`)
	kws := file.Keywords()
	require.Len(t, kws, 1)
	args := kws[0].Args
	require.Len(t, args, 3)
	assert.Equal(t, "${value}", args[0].Name)
	assert.False(t, args[0].HasDefault)
	assert.Equal(t, "${prefix}", args[1].Name)
	assert.Equal(t, "INFO", args[1].Default)
	assert.True(t, args[1].HasDefault)
	assert.Equal(t, "${suffix}", args[2].Name)
	assert.True(t, args[2].HasDefault)
	assert.Empty(t, args[2].Default)
}

func TestCallSiteEqualsKeptVerbatim(t *testing.T) {
	file := parseString(t, `*** Test Cases ***
Named Args
    Do Thing    value=42
`)
	tests := file.TestCases()
	require.Len(t, tests, 1)
	stmt := tests[0].Statements[0]
	require.Len(t, stmt.Args, 1)
	assert.Equal(t, "value=42", stmt.Args[0].Literal)
}

func TestStatementContinuation(t *testing.T) {
	file := parseString(t, `*** Test Cases ***
Long Call
    Do Thing    one    two
    ...    three    four
`)
	stmt := file.TestCases()[0].Statements[0]
	require.Len(t, stmt.Args, 4)
	assert.Equal(t, "three", stmt.Args[2].Literal)
}

func TestSettingsSection(t *testing.T) {
	file := parseString(t, `*** Settings ***
Documentation    Suite doc.
Library          Collections
Resource         common.resource
`)
	sec := file.Section(ast.SectionSettings)
	require.NotNil(t, sec)
	require.Len(t, sec.Settings, 3)
	assert.Equal(t, "Library", sec.Settings[1].Name)
	require.Len(t, sec.Settings[1].Values, 1)
	assert.Equal(t, "Collections", sec.Settings[1].Values[0].Literal)
}

func TestVariablesSection(t *testing.T) {
	file := parseString(t, `*** Variables ***
${NAME}    value
@{LIST}    a    b
`)
	sec := file.Section(ast.SectionVariables)
	require.NotNil(t, sec)
	require.Len(t, sec.Settings, 2)
	assert.Equal(t, "${NAME}", sec.Settings[0].Name)
	require.Len(t, sec.Settings[1].Values, 2)
}

func TestStandaloneCommentAttachment(t *testing.T) {
	file := parseString(t, `*** Test Cases ***
With Comment
    # explains the next line
    Log    message

Trailing Comment Node
    Log    message
    # closes the node
`)
	tests := file.TestCases()
	require.Len(t, tests, 2)
	require.Len(t, tests[0].Statements, 1)
	require.Len(t, tests[0].Statements[0].Leading, 1)
	assert.Contains(t, tests[0].Statements[0].Leading[0].Text, "explains")
	require.Len(t, tests[1].Comments, 1)
	assert.Contains(t, tests[1].Comments[0].Text, "closes")
}

func TestOrphanStatement(t *testing.T) {
	file := parseString(t, `*** Test Cases ***
    Log    orphan
`)
	require.Len(t, file.Diagnostics, 1)
	assert.Equal(t, ast.DiagOrphanStatement, file.Diagnostics[0].Kind)
	assert.Empty(t, file.TestCases())
}

func render(file *ast.File) string {
	var b strings.Builder
	for _, sec := range file.Sections {
		fmt.Fprintf(&b, "*** %s ***\n", sec.Title)
		for _, set := range sec.Settings {
			b.WriteString(set.Name)
			for _, v := range set.Values {
				b.WriteString("    " + v.Literal)
			}
			b.WriteString("\n")
		}
		for _, tc := range sec.Tests {
			b.WriteString(tc.Name + "\n")
			if tc.Documented() {
				fmt.Fprintf(&b, "    [Documentation]    %s\n", tc.Documentation)
			}
			renderStatements(&b, tc.Statements)
		}
		for _, kw := range sec.Keywords {
			b.WriteString(kw.Name + "\n")
			if kw.Documented() {
				fmt.Fprintf(&b, "    [Documentation]    %s\n", kw.Documentation)
			}
			if len(kw.Args) > 0 {
				b.WriteString("    [Arguments]")
				for _, a := range kw.Args {
					b.WriteString("    " + a.Name)
					if a.HasDefault {
						b.WriteString("=" + a.Default)
					}
				}
				b.WriteString("\n")
			}
			renderStatements(&b, kw.Statements)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderStatements(b *strings.Builder, list []*ast.Statement) {
	for _, stmt := range list {
		b.WriteString("    " + stmt.Name)
		for _, arg := range stmt.Args {
			b.WriteString("    " + arg.Literal)
		}
		b.WriteString("\n")
	}
}

func TestReparseSerializedTree(t *testing.T) {
	first := parseString(t, `*** Settings ***
Library    Collections

*** Test Cases ***
First Test
    [Documentation]    Checks the greeting.
    Log    hello
    Sleep    1s

*** Keywords ***
Helper Keyword
    [Documentation]    Does the    helping.
    [Arguments]    ${value}    ${prefix}=INFO
    Log    ${prefix}: ${value}
`)
	require.Empty(t, first.Diagnostics)

	second := parseString(t, render(first))
	require.Empty(t, second.Diagnostics)
	require.Len(t, second.Sections, len(first.Sections))

	tests, retests := first.TestCases(), second.TestCases()
	require.Len(t, retests, len(tests))
	for i := range tests {
		assert.Equal(t, tests[i].Name, retests[i].Name)
		assert.Equal(t, tests[i].Documentation, retests[i].Documentation)
		require.Len(t, retests[i].Statements, len(tests[i].Statements))
		for j := range tests[i].Statements {
			assert.Equal(t, tests[i].Statements[j].Name, retests[i].Statements[j].Name)
		}
	}

	kws, rekws := first.Keywords(), second.Keywords()
	require.Len(t, rekws, len(kws))
	for i := range kws {
		assert.Equal(t, kws[i].Name, rekws[i].Name)
		assert.Equal(t, kws[i].Documentation, rekws[i].Documentation)
		require.Len(t, rekws[i].Args, len(kws[i].Args))
		for j, a := range kws[i].Args {
			assert.Equal(t, a.Name, rekws[i].Args[j].Name)
			assert.Equal(t, a.Default, rekws[i].Args[j].Default)
			assert.Equal(t, a.HasDefault, rekws[i].Args[j].HasDefault)
		}
		for j := range kws[i].Statements {
			assert.Equal(t, kws[i].Statements[j].Name, rekws[i].Statements[j].Name)
		}
	}
}

func TestPositionsMonotonic(t *testing.T) {
	file := parseString(t, `*** Keywords ***
First
    One
    Two
Second
    Three
`)
	for _, kw := range file.Keywords() {
		last := kw.Position
		for _, stmt := range kw.Statements {
			assert.False(t, stmt.Position.Less(last))
			last = stmt.Position
		}
	}
}
