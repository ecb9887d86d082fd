package store

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/groblegark/beadscan/internal/model"
)

// ExecLoader shells out to the external bd CLI and parses its JSON output.
// The command runs with the source's root path as working directory so the
// CLI resolves that source's item database.
type ExecLoader struct {
	Bin string
}

// NewExecLoader creates an ExecLoader for the given bd binary path.
func NewExecLoader(bin string) *ExecLoader {
	if bin == "" {
		bin = "bd"
	}
	return &ExecLoader{Bin: bin}
}

func (l *ExecLoader) Load(ctx context.Context, src model.Source) ([]*model.Item, []model.MalformedRecord, error) {
	cmd := exec.CommandContext(ctx, l.Bin, "list", "--json")
	if src.RootPath != "" {
		cmd.Dir = src.RootPath
	}
	out, err := cmd.Output()
	if err != nil {
		var stderr string
		if ee, ok := err.(*exec.ExitError); ok {
			stderr = strings.TrimSpace(string(ee.Stderr))
		}
		if stderr != "" {
			return nil, nil, fmt.Errorf("%s list --json: %w: %s", l.Bin, err, stderr)
		}
		return nil, nil, fmt.Errorf("%s list --json: %w", l.Bin, err)
	}

	items, malformed, err := model.DecodeItems(out)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s output: %w", l.Bin, err)
	}
	return items, malformed, nil
}
