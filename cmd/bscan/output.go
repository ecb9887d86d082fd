package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/groblegark/beadscan/internal/engine"
	"github.com/groblegark/beadscan/internal/model"
	"github.com/groblegark/beadscan/internal/scan"
	"github.com/groblegark/beadscan/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printScanReport(res *scan.Result) {
	for _, sr := range res.Sources {
		if sr.Failure != nil {
			fmt.Printf("%s %s: load failed: %s\n", ui.StateIcon(model.StateBlocked), sr.Source.Name, sr.Failure.Message)
			continue
		}
		printSourceFindings(sr.Report)
	}
	printResultSummary(res)
}

func printSourceFindings(report *engine.Report) {
	findings := len(report.Orphans) + len(report.Cycles) + len(report.Stale) + len(report.Malformed)
	if findings == 0 {
		fmt.Printf("%s %s: %d items, no findings\n", ui.StateIcon(model.StateReady), report.Source.Name, len(report.Items))
		return
	}

	fmt.Println(ui.RenderHeader(report.Source.Name))
	for _, o := range report.Orphans {
		fmt.Printf("  orphan: %s depends on missing %s\n", o.ItemID, o.MissingTargetID)
	}
	for _, c := range report.Cycles {
		fmt.Printf("  cycle: %s\n", strings.Join(c.Path, " -> "))
	}
	for _, s := range report.Stale {
		who := s.Assignee
		if who == "" {
			who = "unassigned"
		}
		fmt.Printf("  stale: %s claimed by %s for %dh\n", s.ItemID, who, s.AgeHours)
	}
	for _, m := range report.Malformed {
		loc := m.ItemID
		if loc == "" {
			loc = fmt.Sprintf("line %d", m.Line)
		}
		fmt.Printf("  malformed: %s: %s\n", loc, m.Reason)
	}
}

func printResultSummary(res *scan.Result) {
	counts := res.Counts()
	total := 0
	for _, n := range counts {
		total += n
	}
	fmt.Printf("\n%d items: %d ready, %d in progress, %d blocked, %d closed\n",
		total,
		counts[model.StateReady],
		counts[model.StateInProgress],
		counts[model.StateBlocked],
		counts[model.StateClosed],
	)
	if failures := res.Failures(); len(failures) > 0 {
		fmt.Printf("%d of %d sources failed to load\n", len(failures), len(res.Sources))
	}
	fmt.Println(ui.RenderMuted(fmt.Sprintf("run %s in %s", res.RunID, res.Elapsed.Round(time.Millisecond))))
}

func printSourceSummary(report *engine.Report) {
	counts := report.Counts()
	total := len(report.Items)
	closedPct := 0
	if total > 0 {
		closedPct = counts[model.StateClosed] * 100 / total
	}

	fmt.Println(ui.RenderHeader(report.Source.Name))
	fmt.Printf("  %s %d%% closed (%d/%d)\n", ui.ProgressBar(closedPct), closedPct, counts[model.StateClosed], total)
	fmt.Printf("  %s %d ready  %s %d in progress  %s %d blocked\n",
		ui.StateIcon(model.StateReady), counts[model.StateReady],
		ui.StateIcon(model.StateInProgress), counts[model.StateInProgress],
		ui.StateIcon(model.StateBlocked), counts[model.StateBlocked],
	)
	if n := len(report.Orphans) + len(report.Cycles); n > 0 {
		fmt.Printf("  %d structural findings\n", n)
	}
}

func printReadyTable(items []engine.ReadyItem) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRIORITY\tSOURCE\tTITLE")
	for _, ri := range items {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			ri.Item.ID,
			ri.Item.Priority,
			ri.Source.Name,
			truncate(ri.Item.Title, 50),
		)
	}
	w.Flush()
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}
