// Package config loads scanner settings from the environment and resolves
// the set of sources to scan, either from an explicit TOML file or by
// discovering initialized sub-projects under the root.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	StaleThreshold time.Duration // BEADSCAN_STALE_THRESHOLD (default 24h)
	LoadTimeout    time.Duration // BEADSCAN_LOAD_TIMEOUT (default 30s)
	Parallelism    int           // BEADSCAN_PARALLELISM (default 4)
	BDBin          string        // BEADSCAN_BD_BIN (default "bd")
	NATSURL        string        // BEADSCAN_NATS_URL (optional, empty = no events)
	DatabaseURL    string        // BEADSCAN_DATABASE_URL (optional, empty = no history)

	// Parent-child gating policy; see engine.Options.
	EpicsGateChildren bool // BEADSCAN_EPICS_GATE_CHILDREN

	// Export settings
	ExportS3Bucket   string // BEADSCAN_EXPORT_S3_BUCKET (enables S3 when set)
	ExportS3Endpoint string // BEADSCAN_EXPORT_S3_ENDPOINT (custom endpoint for MinIO)
	ExportS3Region   string // BEADSCAN_EXPORT_S3_REGION (default "us-east-1")
	ExportS3Key      string // BEADSCAN_EXPORT_S3_KEY (default "beadscan/snapshot.jsonl")
}

func Load() (*Config, error) {
	c := &Config{
		BDBin:            envOrDefault("BEADSCAN_BD_BIN", "bd"),
		NATSURL:          os.Getenv("BEADSCAN_NATS_URL"),
		DatabaseURL:      os.Getenv("BEADSCAN_DATABASE_URL"),
		ExportS3Bucket:   os.Getenv("BEADSCAN_EXPORT_S3_BUCKET"),
		ExportS3Endpoint: os.Getenv("BEADSCAN_EXPORT_S3_ENDPOINT"),
		ExportS3Region:   envOrDefault("BEADSCAN_EXPORT_S3_REGION", "us-east-1"),
		ExportS3Key:      envOrDefault("BEADSCAN_EXPORT_S3_KEY", "beadscan/snapshot.jsonl"),
	}

	var err error
	if c.StaleThreshold, err = envDuration("BEADSCAN_STALE_THRESHOLD", 24*time.Hour); err != nil {
		return nil, err
	}
	if c.LoadTimeout, err = envDuration("BEADSCAN_LOAD_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	parallelism := envOrDefault("BEADSCAN_PARALLELISM", "4")
	n, err := strconv.Atoi(parallelism)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("BEADSCAN_PARALLELISM: invalid value %q", parallelism)
	}
	c.Parallelism = n

	c.EpicsGateChildren = os.Getenv("BEADSCAN_EPICS_GATE_CHILDREN") == "1"

	return c, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
