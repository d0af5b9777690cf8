package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/midbel/roblint/internal/rules"
)

// Summary aggregates findings across a whole run and prints a short
// digest after the findings themselves.
type Summary interface {
	Name() string
	Add(rules.Finding)
	Write(io.Writer) error
}

func Summaries(names []string) []Summary {
	var list []Summary
	for _, n := range names {
		switch n {
		case "rules_by_id":
			list = append(list, &ByID{counts: make(map[string]int)})
		case "rules_by_severity":
			list = append(list, &BySeverity{counts: make(map[rules.Level]int)})
		}
	}
	return list
}

type ByID struct {
	counts map[string]int
}

func (*ByID) Name() string {
	return "rules_by_id"
}

func (r *ByID) Add(f rules.Finding) {
	r.counts[f.Rule]++
}

func (r *ByID) Write(w io.Writer) error {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Issues by ids:")
	if len(r.counts) == 0 {
		_, err := fmt.Fprintln(w, "No issues found")
		return err
	}
	type pair struct {
		id    string
		count int
	}
	var list []pair
	for id, n := range r.counts {
		list = append(list, pair{id: id, count: n})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return list[i].id < list[j].id
	})
	for _, p := range list {
		if _, err := fmt.Fprintf(w, "%s : %d\n", p.id, p.count); err != nil {
			return err
		}
	}
	return nil
}

type BySeverity struct {
	counts map[rules.Level]int
}

func (*BySeverity) Name() string {
	return "rules_by_severity"
}

func (r *BySeverity) Add(f rules.Finding) {
	r.counts[f.Severity]++
}

func (r *BySeverity) Write(w io.Writer) error {
	var total int
	for _, n := range r.counts {
		total += n
	}
	if total == 0 {
		_, err := fmt.Fprintln(w, "Found 0 issues")
		return err
	}
	fmt.Fprintf(w, "\nFound %d issues: ", total)
	var parts []string
	for _, lvl := range []rules.Level{rules.Error, rules.Warning, rules.LevelInfo} {
		if n := r.counts[lvl]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s(s)", n, lvl))
		}
	}
	for i, p := range parts {
		if i > 0 {
			fmt.Fprint(w, ", ")
		}
		fmt.Fprint(w, p)
	}
	_, err := fmt.Fprintln(w, ".")
	return err
}
