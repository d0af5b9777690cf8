package rules

import (
	"fmt"

	"github.com/midbel/roblint/internal/ast"
)

const (
	ruleMissingDocKeyword = "missing-doc-keyword"
	ruleDuplicateDoc      = "duplicate-documentation"
)

type missingDocKeyword struct{}

func (missingDocKeyword) Info() Info {
	return Info{
		ID:       ruleMissingDocKeyword,
		Name:     "missing keyword documentation",
		Severity: Warning,
		Doc:      "keyword has no [Documentation]",
	}
}

func (missingDocKeyword) Check(file *ast.File) []Finding {
	var list []Finding
	for _, kw := range file.Keywords() {
		if kw.Documented() {
			continue
		}
		list = append(list, keywordMissingDoc(kw))
	}
	return list
}

func keywordMissingDoc(kw *ast.Keyword) Finding {
	return Finding{
		Rule:     ruleMissingDocKeyword,
		Severity: Warning,
		Message:  fmt.Sprintf("keyword %q has no documentation", kw.Name),
		Position: kw.Position,
		Subject: Subject{
			Kind: ast.SubjectKeyword,
			Name: kw.Name,
		},
	}
}

// duplicateDocumentation re-surfaces the parser diagnostic so that it
// can be enabled, disabled or suppressed like any other rule.
type duplicateDocumentation struct{}

func (duplicateDocumentation) Info() Info {
	return Info{
		ID:       ruleDuplicateDoc,
		Name:     "duplicated documentation",
		Severity: Warning,
		Doc:      "node declares [Documentation] more than once",
	}
}

func (duplicateDocumentation) Check(file *ast.File) []Finding {
	var list []Finding
	for _, d := range file.Diagnostics {
		if d.Kind != ast.DiagDuplicateDocumentation {
			continue
		}
		list = append(list, Finding{
			Rule:     ruleDuplicateDoc,
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
