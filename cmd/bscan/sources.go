package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/groblegark/beadscan/internal/model"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the sources a scan would cover",
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := resolveSources()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(sources)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTIER\tPATH")
		for _, src := range sources {
			tier := "root"
			if src.Tier == model.TierSub {
				tier = "sub"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", src.Name, tier, src.RootPath)
		}
		w.Flush()
		return nil
	},
}
