package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/groblegark/beadscan/internal/events"
	"github.com/groblegark/beadscan/internal/export"
	"github.com/groblegark/beadscan/internal/history"
	"github.com/groblegark/beadscan/internal/scan"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rescan on an interval and ship snapshots",
	Long: `Watch rescans all sources on an interval. Each cycle writes the
JSONL snapshot to the configured destinations, publishes finding events
when BEADSCAN_NATS_URL is set, and archives the run when
BEADSCAN_DATABASE_URL is set. Runs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, _ := cmd.Flags().GetDuration("interval")
		outPath, _ := cmd.Flags().GetString("out")

		var destinations []export.Destination
		if outPath != "" {
			destinations = append(destinations, &export.FileDestination{Path: outPath})
		}
		if cfg.ExportS3Bucket != "" {
			dest, err := export.NewS3Destination(cmd.Context(), cfg.ExportS3Bucket, cfg.ExportS3Key, cfg.ExportS3Region, cfg.ExportS3Endpoint)
			if err != nil {
				return err
			}
			destinations = append(destinations, dest)
		}

		var pub events.Publisher = &events.NoopPublisher{}
		if cfg.NATSURL != "" {
			p, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				return fmt.Errorf("connect to NATS: %w", err)
			}
			defer p.Close()
			pub = p
		}

		var archive *history.Store
		if cfg.DatabaseURL != "" {
			var err error
			archive, err = history.New(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer archive.Close()
		}

		sched := export.NewScheduler(runScan, destinations, interval, logger)
		sched.OnResult = func(ctx context.Context, res *scan.Result) {
			if err := events.PublishResult(ctx, pub, res); err != nil {
				logger.Warn("publish events", "error", err)
			}
			if archive != nil {
				if err := archive.RecordRun(ctx, res); err != nil {
					logger.Warn("record run", "error", err)
				}
			}
			fmt.Printf("%s scanned %d sources\n", time.Now().Format("15:04:05"), len(res.Sources))
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		sched.Start()
		<-ctx.Done()
		sched.Stop()
		return nil
	},
}

func init() {
	watchCmd.Flags().Duration("interval", 5*time.Minute, "time between scans")
	watchCmd.Flags().StringP("out", "o", "", "write each snapshot to this file")
}
