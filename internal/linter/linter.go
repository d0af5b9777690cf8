package linter

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/midbel/roblint/internal/ast"
	"github.com/midbel/roblint/internal/config"
	"github.com/midbel/roblint/internal/disablers"
	"github.com/midbel/roblint/internal/parser"
	"github.com/midbel/roblint/internal/rules"
	"github.com/midbel/roblint/internal/scanner"
	"github.com/midbel/roblint/internal/token"
)

// RuleFailedToParse identifies the single finding reported for a file
// whose raw bytes cannot be tokenized. Such a file never aborts the
// analysis of the others.
const RuleFailedToParse = "failed-to-parse"

type Linter struct {
	engine    *rules.Engine
	cfg       *config.Config
	threshold rules.Level
}

func New(cfg *config.Config, reg *rules.Registry) (*Linter, error) {
	for _, entry := range cfg.Configure {
		if err := reg.Configure(entry); err != nil {
			return nil, err
		}
	}
	threshold := rules.GetLevelFromName(cfg.Threshold)
	if threshold == rules.Unknown {
		return nil, fmt.Errorf("unknown severity threshold %q", cfg.Threshold)
	}
	engine := rules.NewEngine(reg)
	engine.Enable(cfg.Include, cfg.Exclude)
	return &Linter{
		engine:    engine,
		cfg:       cfg,
		threshold: threshold,
	}, nil
}

// SuppressedCount returns how many findings were dropped by inline
// directives since the linter was created.
func (l *Linter) SuppressedCount() int {
	return l.engine.SuppressedCount()
}

// Lint runs the whole pipeline over one input: tokenize, build the
// suite tree, resolve the suppression directives, run the rules.
func (l *Linter) Lint(r io.Reader, name string) []rules.Finding {
	lines, err := scanner.Scan(r)
	if err != nil {
		log.Warn("file can not be tokenized", "file", name, "err", err)
		return []rules.Finding{failedToParse(name, err)}
	}
	file := parser.Parse(name, lines)
	set := disablers.Resolve(file, lines)
	if set.FileDisabled() {
		log.Debug("file disabled by directive", "file", name)
		return nil
	}
	return l.atLeast(l.engine.Check(file, set))
}

// atLeast drops the findings below the configured severity threshold.
func (l *Linter) atLeast(list []rules.Finding) []rules.Finding {
	if l.threshold <= rules.LevelDefault {
		return list
	}
	kept := list[:0]
	for _, f := range list {
		if f.Severity >= l.threshold {
			kept = append(kept, f)
		}
	}
	return kept
}

func (l *Linter) LintFile(file string) []rules.Finding {
	r, err := os.Open(file)
	if err != nil {
		log.Warn("file can not be read", "file", file, "err", err)
		return []rules.Finding{failedToParse(file, err)}
	}
	defer r.Close()
	return l.Lint(r, file)
}

func failedToParse(file string, err error) rules.Finding {
	pos := token.Position{Line: 1, Column: 1}
	var terr scanner.TokenizeError
	if errors.As(err, &terr) {
		pos = terr.Position
	}
	return rules.Finding{
		Rule:     RuleFailedToParse,
		Severity: rules.Error,
		Message:  fmt.Sprintf("file can not be parsed: %s", err),
		File:     file,
		Position: pos,
		Subject:  rules.Subject{Kind: ast.SubjectFile},
	}
}
