package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/midbel/roblint/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the registered rules",
	RunE:  runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	var infos []rules.Info
	for _, r := range rules.Default().All() {
		infos = append(infos, r.Info())
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	for _, in := range infos {
		fmt.Printf("%s %q (%s): %s\n", in.ID, in.Name, in.Severity, in.Doc)
	}
	return nil
}
