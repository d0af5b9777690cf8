package disablers

import (
	"regexp"
	"strings"

	"github.com/midbel/roblint/internal/ast"
	"github.com/midbel/roblint/internal/token"
)

// All is the rule identifier matched when a directive gives no
// explicit list of rules.
const All = "all"

var directive = regexp.MustCompile(`(?i)roblint\s*:\s*(disable|enable)(?:\s*=\s*([\w\- ,]*))?`)

type span struct {
	start int
	end   int
}

func (s span) contains(line int) bool {
	return s.start <= line && line <= s.end
}

type scopes struct {
	lines  map[int]struct{}
	nodes  []span
	blocks []span
	open   int
}

func newScopes() *scopes {
	return &scopes{
		lines: make(map[int]struct{}),
		open:  -1,
	}
}

func (s *scopes) startBlock(line int) {
	if s.open < 0 {
		s.open = line
	}
}

func (s *scopes) endBlock(line int) {
	if s.open < 0 {
		return
	}
	s.blocks = append(s.blocks, span{start: s.open, end: line})
	s.open = -1
}

// Set is the side table produced by Resolve: for each rule identifier
// the lines, node spans and blocks where its findings are suppressed.
// The suite tree itself is never modified.
type Set struct {
	rules map[string]*scopes
	last  int
}

// Resolve scans the comments of a file for suppression directives. A
// directive trailing a test case or keyword header suppresses the
// listed rules for every finding whose subject is that node. A
// directive trailing any other line suppresses findings on that line
// only. A directive on a standalone comment line opens a block closed
// by a matching enable directive or the end of the file.
func Resolve(file *ast.File, lines []token.Line) *Set {
	set := Set{
		rules: make(map[string]*scopes),
		last:  len(lines),
	}
	headers := headerSpans(file)
	for _, ln := range lines {
		if ln.Comment.Zero() {
			continue
		}
		for _, m := range directive.FindAllStringSubmatch(ln.Comment.Text, -1) {
			verb, ids := m[1], splitIDs(m[2])
			switch {
			case ln.CommentOnly():
				for _, id := range ids {
					if strings.EqualFold(verb, "disable") {
						set.scopesFor(id).startBlock(ln.Position.Line)
					} else {
						set.endBlocks(id, ln.Position.Line)
					}
				}
			case !strings.EqualFold(verb, "disable"):
			default:
				node, ok := headers[ln.Position.Line]
				for _, id := range ids {
					sc := set.scopesFor(id)
					if ok {
						sc.nodes = append(sc.nodes, node)
					} else {
						sc.lines[ln.Position.Line] = struct{}{}
					}
				}
			}
		}
	}
	for _, sc := range set.rules {
		sc.endBlock(set.last)
	}
	return &set
}

// endBlocks closes the open block of the named rule. Enabling all
// closes every rule's open block, not only the all scope's.
func (s *Set) endBlocks(id string, line int) {
	if id != All {
		s.scopesFor(id).endBlock(line)
		return
	}
	for _, sc := range s.rules {
		sc.endBlock(line)
	}
}

func (s *Set) scopesFor(id string) *scopes {
	sc, ok := s.rules[id]
	if !ok {
		sc = newScopes()
		s.rules[id] = sc
	}
	return sc
}

// FileDisabled reports whether a disable-all block opened on the very
// first line covers the whole file, which marks the file as excluded
// from analysis.
func (s *Set) FileDisabled() bool {
	sc, ok := s.rules[All]
	if !ok {
		return false
	}
	for _, b := range sc.blocks {
		if b.start == 1 && b.end == s.last {
			return true
		}
	}
	return false
}

// Suppressed reports whether a finding of the given rule, at the given
// position and with the given subject kind, is covered by a directive.
func (s *Set) Suppressed(rule string, pos token.Position, subject ast.SubjectKind) bool {
	return s.suppressed(All, pos, subject) || s.suppressed(strings.ToLower(rule), pos, subject)
}

func (s *Set) suppressed(id string, pos token.Position, subject ast.SubjectKind) bool {
	sc, ok := s.rules[id]
	if !ok {
		return false
	}
	if _, ok := sc.lines[pos.Line]; ok {
		return true
	}
	for _, b := range sc.blocks {
		if b.contains(pos.Line) {
			return true
		}
	}
	if subject != ast.SubjectTestCase && subject != ast.SubjectKeyword {
		return false
	}
	for _, n := range sc.nodes {
		if n.contains(pos.Line) {
			return true
		}
	}
	return false
}

func splitIDs(str string) []string {
	var ids []string
	for _, id := range strings.Split(str, ",") {
		id = strings.ToLower(strings.TrimSpace(id))
		if id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		ids = append(ids, All)
	}
	return ids
}

func headerSpans(file *ast.File) map[int]span {
	spans := make(map[int]span)
	for _, t := range file.TestCases() {
		spans[t.Position.Line] = span{start: t.Position.Line, end: t.End.Line}
	}
	for _, k := range file.Keywords() {
		spans[k.Position.Line] = span{start: k.Position.Line, end: k.End.Line}
	}
	return spans
}
