package rules

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/midbel/roblint/internal/ast"
	"github.com/midbel/roblint/internal/token"
)

// RuleInternalError identifies the meta finding emitted when a rule
// panics while checking a file. It cannot be disabled.
const RuleInternalError = "internal-rule-error"

type Subject struct {
	Kind ast.SubjectKind
	Name string
}

type Finding struct {
	Rule     string
	Severity Level
	Message  string
	File     string
	Subject  Subject

	token.Position
}

type Info struct {
	ID       string
	Name     string
	Severity Level
	Doc      string
}

// Rule checks one concern over a suite tree. Implementations must be
// side effect free: they may not depend on other rules or keep state
// between files, so distinct files can be checked in parallel.
type Rule interface {
	Info() Info
	Check(*ast.File) []Finding
}

// Configurable is implemented by rules accepting options through the
// rule:param:value configuration syntax.
type Configurable interface {
	Configure(param, value string) error
}

type Registry struct {
	list []Rule
	ids  map[string]int
}

func NewRegistry() *Registry {
	return &Registry{
		ids: make(map[string]int),
	}
}

// Default returns a registry with every built-in rule registered.
func Default() *Registry {
	reg := NewRegistry()
	reg.Register(missingDocKeyword{})
	reg.Register(newInvalidNameChar())
	reg.Register(duplicateDocumentation{})
	reg.Register(parsingError{})
	return reg
}

func (r *Registry) Register(rule Rule) error {
	id := rule.Info().ID
	if _, ok := r.ids[id]; ok {
		return fmt.Errorf("rule %s already registered", id)
	}
	r.ids[id] = len(r.list)
	r.list = append(r.list, rule)
	return nil
}

func (r *Registry) Get(id string) (Rule, bool) {
	ix, ok := r.ids[id]
	if !ok {
		return nil, false
	}
	return r.list[ix], true
}

// All returns the rules in registration order, which is the tie break
// order for findings at the same position.
func (r *Registry) All() []Rule {
	return r.list
}

// Configure applies one rule:param:value entry to the rule it names.
func (r *Registry) Configure(entry string) error {
	parts := strings.SplitN(entry, ":", 3)
	if len(parts) != 3 {
		return fmt.Errorf("invalid configuration %q (expected rule:param:value)", entry)
	}
	rule, ok := r.Get(parts[0])
	if !ok {
		return fmt.Errorf("rule %s does not exist", parts[0])
	}
	cfg, ok := rule.(Configurable)
	if !ok {
		return fmt.Errorf("rule %s accepts no configuration", parts[0])
	}
	return cfg.Configure(parts[1], parts[2])
}

// Suppressions is the view the engine needs from the directive
// resolver side table.
type Suppressions interface {
	Suppressed(rule string, pos token.Position, subject ast.SubjectKind) bool
}

type Engine struct {
	registry *Registry
	enabled  map[string]bool

	// suppressed counts the findings dropped by inline directives
	// since the engine was created. Atomic: one engine may check
	// several files in parallel.
	suppressed atomic.Int64
}

func NewEngine(reg *Registry) *Engine {
	return &Engine{
		registry: reg,
	}
}

// Enable restricts the set of rules the engine runs. An empty include
// list enables everything; exclude always wins over include.
func (e *Engine) Enable(include, exclude []string) {
	e.enabled = make(map[string]bool)
	for _, rule := range e.registry.All() {
		id := rule.Info().ID
		on := len(include) == 0 || contains(include, id)
		if contains(exclude, id) {
			on = false
		}
		e.enabled[id] = on
	}
}

// SuppressedCount returns how many findings inline directives dropped
// since the engine was created.
func (e *Engine) SuppressedCount() int {
	return int(e.suppressed.Load())
}

func (e *Engine) Enabled(id string) bool {
	if e.enabled == nil {
		return true
	}
	return e.enabled[id]
}

// Check runs every enabled rule over the file, drops suppressed
// findings and returns the rest ordered by position, ties broken by
// rule registration order. A panicking rule yields a meta finding and
// never aborts the other rules.
func (e *Engine) Check(file *ast.File, set Suppressions) []Finding {
	type entry struct {
		Finding
		rank int
	}
	var all []entry
	for i, rule := range e.registry.All() {
		if !e.Enabled(rule.Info().ID) {
			continue
		}
		for _, f := range e.run(rule, file) {
			f.File = file.Name
			if set != nil && set.Suppressed(f.Rule, f.Position, f.Subject.Kind) {
				e.suppressed.Add(1)
				continue
			}
			all = append(all, entry{Finding: f, rank: i})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Position != all[j].Position {
			return all[i].Position.Less(all[j].Position)
		}
		return all[i].rank < all[j].rank
	})
	list := make([]Finding, 0, len(all))
	for _, ent := range all {
		list = append(list, ent.Finding)
	}
	return list
}

func (e *Engine) run(rule Rule, file *ast.File) (list []Finding) {
	defer func() {
		if err := recover(); err != nil {
			list = []Finding{ruleFailed(rule.Info().ID, err)}
		}
	}()
	return rule.Check(file)
}

func ruleFailed(id string, cause any) Finding {
	return Finding{
		Rule:     RuleInternalError,
		Severity: Error,
		Message:  fmt.Sprintf("rule %s failed: %v", id, cause),
		Position: token.Position{Line: 1, Column: 1},
		Subject:  Subject{Kind: ast.SubjectFile},
	}
}

func contains(list []string, id string) bool {
	for i := range list {
		if strings.EqualFold(list[i], id) {
			return true
		}
	}
	return false
}
