package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/beadscan/internal/engine"
)

var readyCmd = &cobra.Command{
	Use:   "ready",
	Short: "List unblocked open items in priority order",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		label, _ := cmd.Flags().GetString("label")

		res, err := runScan(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ranked := engine.Rank(res.Ready())
		if label != "" {
			var kept []engine.ReadyItem
			for _, ri := range ranked {
				if ri.Item.HasLabel(label) {
					kept = append(kept, ri)
				}
			}
			ranked = kept
		}
		if limit > 0 && len(ranked) > limit {
			ranked = ranked[:limit]
		}

		if jsonOutput {
			printJSON(ranked)
			return nil
		}
		if len(ranked) == 0 {
			fmt.Println("No items are ready.")
			return nil
		}
		printReadyTable(ranked)
		return nil
	},
}

func init() {
	readyCmd.Flags().Int("limit", 20, "maximum items to list (0 = all)")
	readyCmd.Flags().StringP("label", "l", "", "filter by label")
}
