package main

import (
	"fmt"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/groblegark/beadscan/internal/engine"
	"github.com/groblegark/beadscan/internal/model"
	"github.com/groblegark/beadscan/internal/scan"
)

var validStates = map[string]model.EffectiveState{
	"ready":       model.StateReady,
	"in_progress": model.StateInProgress,
	"blocked":     model.StateBlocked,
	"closed":      model.StateClosed,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show per-source progress and state breakdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		label, _ := cmd.Flags().GetString("label")
		limit, _ := cmd.Flags().GetInt("limit")
		noSub, _ := cmd.Flags().GetBool("no-subprojects")
		only, _ := cmd.Flags().GetStringSlice("subprojects")

		var state model.EffectiveState
		if status != "" {
			var ok bool
			if state, ok = validStates[status]; !ok {
				return fmt.Errorf("unknown status %q (want ready, in_progress, blocked, or closed)", status)
			}
		}

		res, err := runScan(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		reports := res.Reports()
		if noSub {
			var kept []*engine.Report
			for _, r := range reports {
				if r.Source.Tier == model.TierRoot {
					kept = append(kept, r)
				}
			}
			reports = kept
		}
		if len(only) > 0 {
			// The root source always reports; --subprojects scopes the rest.
			var kept []*engine.Report
			for _, r := range reports {
				if r.Source.Tier == model.TierRoot || slices.Contains(only, r.Source.Name) {
					kept = append(kept, r)
				}
			}
			reports = kept
		}

		if jsonOutput {
			printJSON(summaryPayload(res, reports, state, label, limit))
			return nil
		}

		for i, report := range reports {
			if i > 0 {
				fmt.Println()
			}
			printSourceSummary(report)
			if status != "" {
				printItemsIn(report, state, label, limit)
			}
		}
		for _, f := range res.Failures() {
			fmt.Printf("\n%s: load failed: %s\n", f.Source, f.Message)
		}
		return nil
	},
}

func printItemsIn(report *engine.Report, state model.EffectiveState, label string, limit int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	n := 0
	for _, c := range report.InState(state) {
		if label != "" && !c.Item.HasLabel(label) {
			continue
		}
		if limit > 0 && n >= limit {
			break
		}
		fmt.Fprintf(w, "  %s\t%d\t%s\n", c.Item.ID, c.Item.Priority, truncate(c.Item.Title, 50))
		n++
	}
	w.Flush()
}

type summarySection struct {
	Source model.Source                 `json:"source"`
	Counts map[model.EffectiveState]int `json:"counts"`
	Items  []*engine.Classified         `json:"items,omitempty"`
}

func summaryPayload(res *scan.Result, reports []*engine.Report, state model.EffectiveState, label string, limit int) map[string]any {
	sections := make([]summarySection, 0, len(reports))
	for _, report := range reports {
		section := summarySection{Source: report.Source, Counts: report.Counts()}
		if state != "" {
			for _, c := range report.InState(state) {
				if label != "" && !c.Item.HasLabel(label) {
					continue
				}
				if limit > 0 && len(section.Items) >= limit {
					break
				}
				section.Items = append(section.Items, c)
			}
		}
		sections = append(sections, section)
	}
	return map[string]any{
		"run_id":   res.RunID,
		"sections": sections,
		"failures": res.Failures(),
	}
}

func init() {
	summaryCmd.Flags().StringP("status", "s", "", "list items in the given effective state")
	summaryCmd.Flags().StringP("label", "l", "", "filter listed items by label")
	summaryCmd.Flags().Int("limit", 0, "maximum items to list per source (0 = all)")
	summaryCmd.Flags().Bool("no-subprojects", false, "only report the root source")
	summaryCmd.Flags().StringSlice("subprojects", nil, "limit secondary sources to the named ones")
}
