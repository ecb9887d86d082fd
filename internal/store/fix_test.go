package store

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/groblegark/beadscan/internal/model"
)

func TestRemoveDependency(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub script requires a POSIX shell")
	}
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args.txt")
	bin := filepath.Join(dir, "bd")
	script := "#!/bin/sh\necho \"$@\" > " + argsFile + "\n"
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	src := model.Source{Name: "core", RootPath: dir}
	if err := RemoveDependency(context.Background(), bin, src, "bd-1", "bd-gone"); err != nil {
		t.Fatalf("RemoveDependency: %v", err)
	}

	raw, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("read args: %v", err)
	}
	if got := strings.TrimSpace(string(raw)); got != "dep remove bd-1 bd-gone" {
		t.Errorf("bd invoked with %q, want \"dep remove bd-1 bd-gone\"", got)
	}
}

func TestRemoveDependency_CommandError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub script requires a POSIX shell")
	}
	dir := t.TempDir()
	bin := filepath.Join(dir, "bd")
	script := "#!/bin/sh\necho 'no such dependency' >&2\nexit 1\n"
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	err := RemoveDependency(context.Background(), bin, model.Source{RootPath: dir}, "bd-1", "bd-gone")
	if err == nil {
		t.Fatal("RemoveDependency: want error")
	}
	if !strings.Contains(err.Error(), "no such dependency") {
		t.Errorf("error %q should surface stderr", err)
	}
}
