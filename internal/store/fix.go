package store

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/groblegark/beadscan/internal/model"
)

// RemoveDependency deletes a dependency edge through the bd CLI, running in
// the source's root path. This is the only write path in the package and it
// goes through the external system of record, never the JSONL log directly.
func RemoveDependency(ctx context.Context, bin string, src model.Source, itemID, dependsOnID string) error {
	if bin == "" {
		bin = "bd"
	}
	cmd := exec.CommandContext(ctx, bin, "dep", "remove", itemID, dependsOnID)
	if src.RootPath != "" {
		cmd.Dir = src.RootPath
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s dep remove %s %s: %w: %s", bin, itemID, dependsOnID, err, msg)
		}
		return fmt.Errorf("%s dep remove %s %s: %w", bin, itemID, dependsOnID, err)
	}
	return nil
}
