package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"

	"github.com/midbel/roblint/internal/rules"
)

// Reporter renders the ordered list of findings produced by the engine.
type Reporter interface {
	Report(io.Writer, []rules.Finding) error
}

type Text struct {
	Format string
	Color  bool
}

func NewText(format string) Text {
	return Text{
		Format: format,
	}
}

func (t Text) Report(w io.Writer, list []rules.Finding) error {
	for _, f := range list {
		if _, err := fmt.Fprintln(w, t.formatLine(f)); err != nil {
			return err
		}
	}
	return nil
}

func (t Text) formatLine(f rules.Finding) string {
	severity := f.Severity.String()
	if t.Color {
		severity = colorize(f.Severity)
	}
	r := strings.NewReplacer(
		"{source}", f.File,
		"{line}", strconv.Itoa(f.Line),
		"{col}", strconv.Itoa(f.Column),
		"{severity}", severity,
		"{rule_id}", f.Rule,
		"{desc}", f.Message,
	)
	return r.Replace(t.Format)
}

func colorize(level rules.Level) string {
	switch level {
	case rules.Error:
		return color.RedString(level.String())
	case rules.Warning:
		return color.YellowString(level.String())
	default:
		return level.String()
	}
}

type JSON struct{}

type record struct {
	File     string `json:"file"`
	RuleID   string `json:"rule_id"`
	Severity string `json:"severity"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
	Subject  string `json:"subject_kind"`
}

func (JSON) Report(w io.Writer, list []rules.Finding) error {
	records := make([]record, 0, len(list))
	for _, f := range list {
		records = append(records, record{
			File:     f.File,
			RuleID:   f.Rule,
			Severity: f.Severity.String(),
			Line:     f.Line,
			Column:   f.Column,
			Message:  f.Message,
			Subject:  f.Subject.Kind.String(),
		})
	}
	json := jsoniter.ConfigDefault
	buf, err := json.MarshalIndent(records, "", strings.Repeat(" ", 2))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(buf))
	return err
}

// ExitStatus maps the findings to the process exit code: non zero as
// soon as one error severity finding is present.
func ExitStatus(list []rules.Finding) int {
	for _, f := range list {
		if f.Severity == rules.Error {
			return 1
		}
	}
	return 0
}
