package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/beadscan/internal/engine"
	"github.com/groblegark/beadscan/internal/scan"
)

// runScan resolves sources and executes one scan with the configured options.
func runScan(ctx context.Context) (*scan.Result, error) {
	sources, err := resolveSources()
	if err != nil {
		return nil, err
	}

	opts := scan.Options{
		StaleThreshold: cfg.StaleThreshold,
		LoadTimeout:    cfg.LoadTimeout,
		Parallelism:    cfg.Parallelism,
		Engine:         engine.Options{EpicsGateChildren: cfg.EpicsGateChildren},
		BDBin:          cfg.BDBin,
		Logger:         logger,
	}
	return scan.Run(ctx, sources, opts)
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run all checks and report findings",
	Long: `Scan loads every configured source, classifies each item, and reports
orphaned dependencies, dependency cycles, and stale in-progress claims.

Exit status is 1 when any orphan or cycle is found (or, with --strict,
when any stale claim, malformed record, or source failure is found),
and 0 otherwise.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")
		check, _ := cmd.Flags().GetString("check")

		if check != "" && check != "orphans" && check != "cycles" && check != "stale" {
			return fmt.Errorf("unknown check %q (want orphans, cycles, or stale)", check)
		}

		res, err := runScan(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if check != "" {
			res = restrictTo(res, check)
		}

		if jsonOutput {
			printJSON(res)
		} else {
			printScanReport(res)
		}

		if res.HasStructuralFindings() || (strict && res.HasWarnings()) {
			os.Exit(1)
		}
		return nil
	},
}

// restrictTo narrows every report to a single check so the output and exit
// code reflect only that finding type. Reports are immutable, so this
// rebuilds them rather than clearing fields in place.
func restrictTo(res *scan.Result, check string) *scan.Result {
	narrowed := &scan.Result{
		RunID:     res.RunID,
		StartedAt: res.StartedAt,
		Elapsed:   res.Elapsed,
	}
	for _, sr := range res.Sources {
		if sr.Failure != nil {
			narrowed.Sources = append(narrowed.Sources, sr)
			continue
		}
		report := &engine.Report{Source: sr.Source, Items: sr.Report.Items}
		switch check {
		case "orphans":
			report.Orphans = sr.Report.Orphans
		case "cycles":
			report.Cycles = sr.Report.Cycles
		case "stale":
			report.Stale = sr.Report.Stale
		}
		narrowed.Sources = append(narrowed.Sources, &scan.SourceResult{Source: sr.Source, Report: report})
	}
	return narrowed
}

func init() {
	scanCmd.Flags().Bool("strict", false, "also fail on stale claims, malformed records, and load failures")
	scanCmd.Flags().String("check", "", "run a single check: orphans, cycles, or stale")
}
