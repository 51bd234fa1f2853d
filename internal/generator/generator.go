// Package generator materializes manifest artifacts into
// target-specific file layouts. One generator exists per target kind;
// all of them satisfy the same contract so the reconciler can drive
// them uniformly.
package generator

import (
	"path/filepath"
	"sort"

	"github.com/agentscaffold/agent-scaffold/internal/manifest"
	"github.com/agentscaffold/agent-scaffold/internal/template"
)

// Generator produces the files that represent the manifest's artifacts
// for one target.
//
// ListDeclaredFiles and a dry-run Generate return the same path set,
// and Generate(false) returns that set again on every run while the
// manifest is unchanged. Paths are root-relative with forward slashes.
type Generator interface {
	// ListDeclaredFiles returns the files this generator would produce.
	ListDeclaredFiles() []string

	// Generate materializes the files and returns their paths. With
	// dryRun set it computes the same paths without touching storage.
	Generate(dryRun bool) ([]string, error)
}

// ForTarget returns the generator for a target configuration, or nil
// when no generator exists for the target's kind. Unknown kinds are
// the caller's signal to skip the target with a warning.
func ForTarget(targetName string, cfg manifest.TargetConfig, m *manifest.Manifest, root string, renderer template.Renderer) Generator {
	switch {
	case cfg.OpenCode != nil:
		return &openCodeGenerator{
			targetName: targetName,
			cfg:        *cfg.OpenCode,
			m:          m,
			root:       root,
			renderer:   renderer,
		}
	case cfg.Copilot != nil:
		return &copilotGenerator{
			targetName: targetName,
			cfg:        *cfg.Copilot,
			m:          m,
			root:       root,
			renderer:   renderer,
		}
	default:
		return nil
	}
}

// absPath converts a root-relative slash path to a platform path under
// root.
func absPath(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}

// sortedByID returns a copy of items ordered by id ascending, so
// emission order never depends on manifest insertion order.
func sortedByID[T any](items []T, id func(T) string) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.Slice(out, func(i, j int) bool { return id(out[i]) < id(out[j]) })
	return out
}
