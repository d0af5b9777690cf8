package rules

import (
	"github.com/midbel/roblint/internal/ast"
)

const ruleParsingError = "parsing-error"

// parsingError surfaces the structural warnings collected while
// building the tree: data before the first section, statements outside
// any node, unrecognized sections.
type parsingError struct{}

func (parsingError) Info() Info {
	return Info{
		ID:       ruleParsingError,
		Name:     "parsing error",
		Severity: Warning,
		Doc:      "file structure could not be fully parsed",
	}
}

func (parsingError) Check(file *ast.File) []Finding {
	var list []Finding
	for _, d := range file.Diagnostics {
		if d.Kind == ast.DiagDuplicateDocumentation {
			continue
		}
		list = append(list, Finding{
			Rule:     ruleParsingError,
			Severity: Warning,
			Message:  d.Message,
			Position: d.Position,
			Subject: Subject{
				Kind: d.Subject,
				Name: d.SubjectName,
			},
		})
	}
	return list
}
