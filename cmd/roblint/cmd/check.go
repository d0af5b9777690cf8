package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/midbel/roblint/internal/config"
	"github.com/midbel/roblint/internal/linter"
	"github.com/midbel/roblint/internal/report"
	"github.com/midbel/roblint/internal/rules"
)

var (
	include    []string
	exclude    []string
	configure  []string
	reports    []string
	output     string
	lineFormat string
	threshold  string
	jobs       int
)

var checkCmd = &cobra.Command{
	Use:     "check [paths...]",
	Aliases: []string{"lint"},
	Short:   "Analyze test data files and report findings",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringSliceVar(&include, "include", nil, "only run the listed rules")
	checkCmd.Flags().StringSliceVar(&exclude, "exclude", nil, "never run the listed rules")
	checkCmd.Flags().StringArrayVar(&configure, "configure", nil, "configure a rule (rule:param:value)")
	checkCmd.Flags().StringSliceVar(&reports, "reports", nil, "summary reports to print (rules_by_id, rules_by_severity)")
	checkCmd.Flags().StringVarP(&output, "output", "o", "", "output format (text or json)")
	checkCmd.Flags().StringVar(&lineFormat, "format", "", "line format of the text output")
	checkCmd.Flags().StringVarP(&threshold, "threshold", "t", "", "only report findings of this severity or higher")
	checkCmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "number of files analyzed in parallel (default: number of CPUs)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mergeFlags(cmd, cfg)

	lint, err := linter.New(cfg, rules.Default())
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	findings, err := lint.Run(ctx, args)
	if err != nil {
		return err
	}
	if err := reporterFor(cfg).Report(os.Stdout, findings); err != nil {
		return err
	}
	summaries := report.Summaries(cfg.Reports)
	for _, f := range findings {
		for _, s := range summaries {
			s.Add(f)
		}
	}
	for _, s := range summaries {
		if err := s.Write(os.Stdout); err != nil {
			return err
		}
	}
	status = report.ExitStatus(findings)
	return nil
}

func mergeFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("include") {
		cfg.Include = include
	}
	if cmd.Flags().Changed("exclude") {
		cfg.Exclude = exclude
	}
	if len(configure) > 0 {
		cfg.Configure = append(cfg.Configure, configure...)
	}
	if cmd.Flags().Changed("reports") {
		cfg.Reports = reports
	}
	if output != "" {
		cfg.Output = output
	}
	if lineFormat != "" {
		cfg.Format = lineFormat
	}
	if threshold != "" {
		cfg.Threshold = threshold
	}
	if jobs > 0 {
		cfg.Jobs = jobs
	}
}

func reporterFor(cfg *config.Config) report.Reporter {
	if cfg.Output == "json" {
		return report.JSON{}
	}
	text := report.NewText(cfg.Format)
	text.Color = true
	return text
}
