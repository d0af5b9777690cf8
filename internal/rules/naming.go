package rules

import (
	"fmt"
	"regexp"

	"github.com/midbel/roblint/internal/ast"
	"github.com/midbel/roblint/internal/token"
)

const ruleInvalidNameChar = "invalid-name-char"

const defaultAllowedChars = `[\p{L}\p{N}_\- ]`

type invalidNameChar struct {
	allowed *regexp.Regexp
}

func newInvalidNameChar() *invalidNameChar {
	return &invalidNameChar{
		allowed: regexp.MustCompile(defaultAllowedChars),
	}
}

func (r *invalidNameChar) Info() Info {
	return Info{
		ID:       ruleInvalidNameChar,
		Name:     "invalid name character",
		Severity: Error,
		Doc:      "test case or keyword name contains a character outside the allowed set",
	}
}

func (r *invalidNameChar) Configure(param, value string) error {
	if param != "allowedCharPattern" {
		return fmt.Errorf("%s: unknown parameter %s", ruleInvalidNameChar, param)
	}
	re, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("%s: %w", ruleInvalidNameChar, err)
	}
	r.allowed = re
	return nil
}

func (r *invalidNameChar) Check(file *ast.File) []Finding {
	var list []Finding
	for _, t := range file.TestCases() {
		if f, ok := r.check(t.Name, t.Position, ast.SubjectTestCase); ok {
			list = append(list, f)
		}
	}
	for _, k := range file.Keywords() {
		if f, ok := r.check(k.Name, k.Position, ast.SubjectKeyword); ok {
			list = append(list, f)
		}
	}
	return list
}

func (r *invalidNameChar) check(name string, pos token.Position, kind ast.SubjectKind) (Finding, bool) {
	offset := 0
	for _, c := range name {
		if !r.allowed.MatchString(string(c)) {
			at := token.Position{
				Line:   pos.Line,
				Column: pos.Column + offset,
			}
			return invalidCharInName(name, c, at, kind), true
		}
		offset++
	}
	return Finding{}, false
}

func invalidCharInName(name string, c rune, pos token.Position, kind ast.SubjectKind) Finding {
	return Finding{
		Rule:     ruleInvalidNameChar,
		Severity: Error,
		Message:  fmt.Sprintf("invalid character %q in %s name %q", c, kind, name),
		Position: pos,
		Subject: Subject{
			Kind: kind,
			Name: name,
		},
	}
}
