package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/groblegark/beadscan/internal/model"
)

// SourcesFileName is the optional per-repository sources file. When present
// it pins the scan's sources exactly; otherwise sources are discovered.
const SourcesFileName = ".beadscan.toml"

// sourcesFile is the TOML shape of an explicit sources file.
type sourcesFile struct {
	Sources []sourceEntry `toml:"sources"`
}

type sourceEntry struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
	Tier *int   `toml:"tier"`
}

// LoadSourcesFile reads an explicit sources file. Entries without a tier
// default by position: the first entry is the root, the rest are
// sub-projects.
func LoadSourcesFile(path string) ([]model.Source, error) {
	var sf sourcesFile
	if _, err := toml.DecodeFile(path, &sf); err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}
	if len(sf.Sources) == 0 {
		return nil, fmt.Errorf("sources file %s lists no sources", path)
	}

	sources := make([]model.Source, 0, len(sf.Sources))
	for i, e := range sf.Sources {
		if e.Path == "" {
			return nil, fmt.Errorf("sources file %s: entry %d has no path", path, i)
		}
		tier := model.TierSub
		if i == 0 {
			tier = model.TierRoot
		}
		if e.Tier != nil {
			tier = *e.Tier
		}
		name := e.Name
		if name == "" {
			name = filepath.Base(e.Path)
		}
		sources = append(sources, model.Source{Name: name, RootPath: e.Path, Tier: tier})
	}
	return sources, nil
}

// submoduleBlock matches one [submodule "name"] section of a .gitmodules
// file; comment lines are stripped before matching.
var submoduleBlock = regexp.MustCompile(`(?m)^\[submodule\s+"([^"]+)"\]\s*\n((?:[ \t]+\S.*\n?)*)`)

var submodulePath = regexp.MustCompile(`path\s*=\s*(.+)`)

// DiscoverSources builds the scan's source list for a repository root: the
// root itself is tier 0, and every configured git submodule with an
// initialized .beads/ directory becomes a tier-1 source. Submodules whose
// directory is missing (not initialized) are skipped with a warning;
// submodules without a .beads/ directory are skipped silently.
func DiscoverSources(root string, logger *slog.Logger) ([]model.Source, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	sources := []model.Source{{
		Name:     filepath.Base(abs),
		RootPath: root,
		Tier:     model.TierRoot,
	}}

	for _, sub := range parseGitmodules(filepath.Join(root, ".gitmodules")) {
		subRoot := filepath.Join(root, sub.path)
		if fi, err := os.Stat(subRoot); err != nil || !fi.IsDir() {
			logger.Warn("submodule directory not found (uninitialized?)",
				"submodule", sub.name, "path", sub.path)
			continue
		}
		if fi, err := os.Stat(filepath.Join(subRoot, ".beads")); err != nil || !fi.IsDir() {
			continue
		}
		sources = append(sources, model.Source{
			Name:     sub.name,
			RootPath: subRoot,
			Tier:     model.TierSub,
		})
	}

	return sources, nil
}

type submodule struct {
	name string
	path string
}

func parseGitmodules(path string) []submodule {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	// Drop comment lines before block matching.
	var clean []string
	for _, line := range strings.SplitAfter(string(content), "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), "#") {
			clean = append(clean, line)
		}
	}

	var subs []submodule
	for _, match := range submoduleBlock.FindAllStringSubmatch(strings.Join(clean, ""), -1) {
		name, body := match[1], match[2]
		pm := submodulePath.FindStringSubmatch(body)
		if pm == nil {
			continue
		}
		subs = append(subs, submodule{name: name, path: strings.TrimSpace(pm[1])})
	}
	return subs
}
