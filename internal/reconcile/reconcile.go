// Package reconcile drives the generators for a sync run, diffs the
// produced file set against the tracking record, and prunes files that
// are no longer declared by the manifest.
package reconcile

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/agentscaffold/agent-scaffold/internal/fsutil"
	"github.com/agentscaffold/agent-scaffold/internal/generator"
	"github.com/agentscaffold/agent-scaffold/internal/manifest"
	"github.com/agentscaffold/agent-scaffold/internal/template"
	"github.com/agentscaffold/agent-scaffold/internal/tracking"
)

// ErrUnknownTarget indicates an explicitly requested target name is
// not declared in the manifest.
var ErrUnknownTarget = errors.New("sync: unknown target")

// Options selects what a sync run does.
type Options struct {
	// Targets restricts the run to the named targets. Empty means all
	// enabled targets.
	Targets []string

	// DryRun computes and reports the file sets without touching
	// storage.
	DryRun bool

	// Prune removes previously tracked files absent from this run.
	Prune bool
}

// Report summarizes a sync run.
type Report struct {
	// Generated lists the files produced this run, root-relative, in
	// emission order with duplicates removed.
	Generated []string

	// Pruned lists stale files that were removed (or, under dry run,
	// would be removed).
	Pruned []string

	// Skipped lists targets skipped because no generator exists for
	// their kind.
	Skipped []string
}

// Run executes one reconciliation pass. Files already written stay on
// an error mid-run; the tracking record is only replaced after the
// full sweep completes, so an interrupted run self-heals on the next
// pass.
func Run(m *manifest.Manifest, root string, renderer template.Renderer, opts Options) (*Report, error) {
	names, err := targetNames(m, opts.Targets)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	current := make(map[string]struct{})

	for _, name := range names {
		cfg := m.Targets[name]
		gen := generator.ForTarget(name, cfg, m, root, renderer)
		if gen == nil {
			slog.Warn("no generator for target kind, skipping", "target", name, "kind", string(cfg.Kind))
			report.Skipped = append(report.Skipped, name)
			continue
		}

		rels, err := gen.Generate(opts.DryRun)
		if err != nil {
			return nil, fmt.Errorf("generate target %q: %w", name, err)
		}
		for _, rel := range rels {
			norm := path.Clean(filepath.ToSlash(rel))
			if _, seen := current[norm]; seen {
				continue
			}
			current[norm] = struct{}{}
			report.Generated = append(report.Generated, norm)
		}
	}

	if opts.Prune {
		if err := prune(root, current, opts.DryRun, report); err != nil {
			return nil, err
		}
	}

	// The current set is persisted on every non-dry run, prune or not,
	// so a later prune always has an accurate baseline.
	if !opts.DryRun {
		if err := tracking.Save(root, current); err != nil {
			return nil, err
		}
	}

	return report, nil
}

// targetNames resolves which targets to process: the explicit list
// when given (unknown names are fatal), otherwise all enabled targets
// in sorted name order.
func targetNames(m *manifest.Manifest, requested []string) ([]string, error) {
	if len(requested) > 0 {
		for _, name := range requested {
			if _, ok := m.Targets[name]; !ok {
				available := slices.Sorted(maps.Keys(m.Targets))
				return nil, fmt.Errorf("%w: %q (available: %s)",
					ErrUnknownTarget, name, strings.Join(available, ", "))
			}
		}
		return requested, nil
	}

	var names []string
	for _, name := range slices.Sorted(maps.Keys(m.Targets)) {
		if m.Targets[name].Enabled() {
			names = append(names, name)
		}
	}
	return names, nil
}

// prune removes files recorded by the previous run that the current
// run no longer declares. Per-path failures are logged and skipped;
// a path in the current set can never be stale by construction.
func prune(root string, current map[string]struct{}, dryRun bool, report *Report) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve project root: %w", err)
	}

	previous := tracking.Load(root)
	for _, rel := range slices.Sorted(maps.Keys(previous)) {
		if _, declared := current[rel]; declared {
			continue
		}
		abs := filepath.Join(absRoot, filepath.FromSlash(rel))
		if !fsutil.PathExists(abs) {
			continue
		}
		report.Pruned = append(report.Pruned, rel)
		if dryRun {
			continue
		}
		if err := fsutil.DeleteFile(abs); err != nil {
			slog.Warn("could not delete stale file", "path", rel, "error", err)
			continue
		}
		cleanupEmptyDirs(filepath.Dir(abs), absRoot)
	}
	return nil
}

// cleanupEmptyDirs walks upward from dir, removing each directory left
// empty by pruning. It stops at the project root or at the first
// non-empty directory, and never inspects anything above the root.
func cleanupEmptyDirs(dir, root string) {
	for dir != root && strings.HasPrefix(dir, root+string(filepath.Separator)) {
		entries, err := fsutil.ListDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := fsutil.RemoveEmptyDir(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}
