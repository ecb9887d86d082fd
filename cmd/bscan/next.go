package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/beadscan/internal/engine"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the single highest-priority ready item",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := runScan(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		pick := engine.Next(res.Ready())
		if pick == nil {
			if jsonOutput {
				fmt.Println("null")
			} else {
				fmt.Println("No items are ready.")
			}
			return nil
		}

		if jsonOutput {
			printJSON(pick)
			return nil
		}
		fmt.Printf("%s [p%d] %s", pick.Item.ID, pick.Item.Priority, pick.Item.Title)
		if pick.Source.Name != "" {
			fmt.Printf("  (%s)", pick.Source.Name)
		}
		fmt.Println()
		return nil
	},
}
