package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/groblegark/beadscan/internal/store"
)

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Remove orphaned dependency edges",
	Long: `Fix scans all sources and removes dependency edges whose target no
longer exists, going through the bd CLI so the tracker stays the system
of record. Each removal asks for confirmation unless --yes is given.

Cycles are never auto-fixed: which edge to break is ambiguous, so they
are reported with the manual removal command instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		res, err := runScan(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		stdin := bufio.NewReader(os.Stdin)
		removed, skipped := 0, 0
		for _, report := range res.Reports() {
			for _, o := range report.Orphans {
				fmt.Printf("%s: %s depends on missing %s\n", report.Source.Name, o.ItemID, o.MissingTargetID)
				if !yes && !confirm(stdin, "  Remove this edge? [y/N]: ") {
					skipped++
					continue
				}
				if err := store.RemoveDependency(cmd.Context(), cfg.BDBin, report.Source, o.ItemID, o.MissingTargetID); err != nil {
					fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
					skipped++
					continue
				}
				fmt.Printf("  removed %s -> %s\n", o.ItemID, o.MissingTargetID)
				removed++
			}

			for _, c := range report.Cycles {
				fmt.Printf("%s: cycle %s requires manual resolution:\n", report.Source.Name, strings.Join(c.Path, " -> "))
				fmt.Printf("  %s dep remove <item-id> <depends-on-id>\n", cfg.BDBin)
			}
		}

		fmt.Printf("\n%d edges removed, %d skipped\n", removed, skipped)
		return nil
	},
}

func confirm(r *bufio.Reader, prompt string) bool {
	fmt.Print(prompt)
	line, err := r.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	fixCmd.Flags().BoolP("yes", "y", false, "remove all orphaned edges without prompting")
}
