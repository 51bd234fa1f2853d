// Package tracking persists the set of files written by the last
// successful sync run. The record is the baseline for pruning: files
// tracked previously but absent from the current run are stale.
package tracking

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/agentscaffold/agent-scaffold/internal/defs"
	"github.com/agentscaffold/agent-scaffold/internal/fsutil"
)

// recordVersion is the tracking record format version.
const recordVersion = 1

type record struct {
	Version int      `json:"version"`
	Files   []string `json:"files"`
}

func recordPath(root string) string {
	return filepath.Join(root, filepath.FromSlash(defs.TrackingJSON))
}

// Load reads the previous run's file set. A missing, unreadable, or
// malformed record resolves to an empty set, never an error: pruning
// against no baseline simply prunes nothing.
func Load(root string) map[string]struct{} {
	path := recordPath(root)
	set := make(map[string]struct{})

	data, err := os.ReadFile(path)
	if err != nil {
		return set
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		slog.Warn("tracking record unreadable, treating as empty", "path", path, "error", err)
		return set
	}
	for _, f := range rec.Files {
		set[f] = struct{}{}
	}
	return set
}

// Save atomically replaces the tracking record with the given file
// set, sorted for diff-stable output.
func Save(root string, files map[string]struct{}) error {
	rec := record{
		Version: recordVersion,
		Files:   slices.Sorted(maps.Keys(files)),
	}
	if rec.Files == nil {
		rec.Files = []string{}
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tracking record: %w", err)
	}
	data = append(data, '\n')

	if err := fsutil.WriteTextAtomic(recordPath(root), data); err != nil {
		return fmt.Errorf("save tracking record: %w", err)
	}
	return nil
}
