package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/midbel/roblint/internal/config"
)

var (
	cfgFile string
	verbose bool

	// exit status computed by the subcommands: 0 clean, 1 at least
	// one error severity finding, 2 the tool itself failed.
	status int
)

var rootCmd = &cobra.Command{
	Use:   "roblint",
	Short: "Static analysis for tabular keyword-driven test data",
	Long: `roblint analyzes test data files written in the tabular
keyword-driven format: it tokenizes the whitespace separated tables,
builds the suite tree and runs a set of rules over it, reporting
defects with their exact position. Test data is never executed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	return status
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration file (default: nearest .roblint.yml or roblint.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	if file := config.Discover("."); file != "" {
		log.Debug("using configuration", "file", file)
		return config.Load(file)
	}
	return config.Default(), nil
}
