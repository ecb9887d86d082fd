package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/beadscan/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSONL snapshot of the scan result",
	Long: `Export runs a scan and writes the result as one JSONL document:
a header line followed by one record per item, finding, and failure.
The snapshot goes to stdout by default, to a file with --out, or to the
configured S3 bucket with --s3.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")
		toS3, _ := cmd.Flags().GetBool("s3")

		res, err := runScan(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if !toS3 && outPath == "" {
			return export.WriteJSONL(res, os.Stdout)
		}

		var buf bytes.Buffer
		if err := export.WriteJSONL(res, &buf); err != nil {
			return err
		}

		if outPath != "" {
			dest := &export.FileDestination{Path: outPath}
			if err := dest.Write(cmd.Context(), buf.Bytes()); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "wrote %s\n", outPath)
		}

		if toS3 {
			if cfg.ExportS3Bucket == "" {
				return fmt.Errorf("--s3 requires BEADSCAN_EXPORT_S3_BUCKET")
			}
			dest, err := export.NewS3Destination(cmd.Context(), cfg.ExportS3Bucket, cfg.ExportS3Key, cfg.ExportS3Region, cfg.ExportS3Endpoint)
			if err != nil {
				return err
			}
			if err := dest.Write(cmd.Context(), buf.Bytes()); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "wrote s3://%s/%s\n", cfg.ExportS3Bucket, cfg.ExportS3Key)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "write the snapshot to a file instead of stdout")
	exportCmd.Flags().Bool("s3", false, "upload the snapshot to the configured S3 bucket")
}
