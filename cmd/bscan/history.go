package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/groblegark/beadscan/internal/history"
)

func openHistory() (*history.Store, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("history requires BEADSCAN_DATABASE_URL")
	}
	return history.New(cfg.DatabaseURL)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect archived scan runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent scan runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns(cmd.Context(), limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(runs)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "RUN\tSTARTED\tSOURCES\tITEMS\tREADY\tFINDINGS")
		for _, r := range runs {
			sources := fmt.Sprintf("%d", r.SourceCount)
			if r.FailedCount > 0 {
				sources = fmt.Sprintf("%d (%d failed)", r.SourceCount, r.FailedCount)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
				r.ID,
				r.StartedAt.Format("2006-01-02 15:04:05"),
				sources,
				r.ItemCount,
				r.ReadyCount,
				r.FindingCount,
			)
		}
		w.Flush()
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one archived run and its findings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		run, findings, err := store.GetRun(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(map[string]any{"run": run, "findings": findings})
			return nil
		}

		fmt.Printf("Run:      %s\n", run.ID)
		fmt.Printf("Started:  %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Elapsed:  %dms\n", run.ElapsedMS)
		fmt.Printf("Sources:  %d (%d failed)\n", run.SourceCount, run.FailedCount)
		fmt.Printf("Items:    %d (%d ready)\n", run.ItemCount, run.ReadyCount)
		fmt.Printf("Findings: %d\n", run.FindingCount)

		if len(findings) > 0 {
			fmt.Println()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tSOURCE\tITEM\tDETAIL")
			for _, f := range findings {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Kind, f.Source, f.ItemID, string(f.Detail))
			}
			w.Flush()
		}
		return nil
	},
}

func init() {
	historyListCmd.Flags().Int("limit", 20, "maximum runs to list")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
}
