package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.StaleThreshold != 24*time.Hour {
		t.Errorf("StaleThreshold = %v, want 24h", c.StaleThreshold)
	}
	if c.LoadTimeout != 30*time.Second {
		t.Errorf("LoadTimeout = %v, want 30s", c.LoadTimeout)
	}
	if c.Parallelism != 4 {
		t.Errorf("Parallelism = %d, want 4", c.Parallelism)
	}
	if c.BDBin != "bd" {
		t.Errorf("BDBin = %q, want bd", c.BDBin)
	}
	if c.ExportS3Region != "us-east-1" {
		t.Errorf("ExportS3Region = %q, want us-east-1", c.ExportS3Region)
	}
	if c.EpicsGateChildren {
		t.Error("EpicsGateChildren default = true, want false")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BEADSCAN_STALE_THRESHOLD", "48h")
	t.Setenv("BEADSCAN_PARALLELISM", "8")
	t.Setenv("BEADSCAN_EPICS_GATE_CHILDREN", "1")
	t.Setenv("BEADSCAN_BD_BIN", "/opt/bd")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.StaleThreshold != 48*time.Hour {
		t.Errorf("StaleThreshold = %v, want 48h", c.StaleThreshold)
	}
	if c.Parallelism != 8 {
		t.Errorf("Parallelism = %d, want 8", c.Parallelism)
	}
	if !c.EpicsGateChildren {
		t.Error("EpicsGateChildren = false, want true")
	}
	if c.BDBin != "/opt/bd" {
		t.Errorf("BDBin = %q, want /opt/bd", c.BDBin)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("BEADSCAN_STALE_THRESHOLD", "soon")
	if _, err := Load(); err == nil {
		t.Error("Load with bad duration: want error")
	}
	t.Setenv("BEADSCAN_STALE_THRESHOLD", "")

	t.Setenv("BEADSCAN_PARALLELISM", "zero")
	if _, err := Load(); err == nil {
		t.Error("Load with bad parallelism: want error")
	}
}
