package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/agentscaffold/agent-scaffold/internal/defs"
	"github.com/agentscaffold/agent-scaffold/internal/fsutil"
)

// FindPath locates the manifest document under root, preferring the
// YAML form over the JSON form.
func FindPath(root string) (string, bool) {
	yamlPath := filepath.Join(root, filepath.FromSlash(defs.ManifestYAML))
	if fsutil.PathExists(yamlPath) {
		return yamlPath, true
	}
	jsonPath := filepath.Join(root, filepath.FromSlash(defs.ManifestJSON))
	if fsutil.PathExists(jsonPath) {
		return jsonPath, true
	}
	return "", false
}

// Load reads, decodes, and validates the manifest document under root.
// Both the YAML and JSON forms are decoded with the YAML parser; JSON
// is a subset of YAML, so one decode path covers both.
func Load(root string) (*Manifest, error) {
	path, ok := FindPath(root)
	if !ok {
		return nil, fmt.Errorf("%w: expected %s or %s, run 'agent-scaffold init' to create one",
			ErrNotFound, defs.ManifestYAML, defs.ManifestJSON)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %q: %w", path, err)
	}

	m, err := decode(data)
	if err != nil {
		return nil, err
	}

	if err := Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// decode unmarshals a manifest document and applies scalar defaults.
// Invariant violations raised by the custom unmarshalers (a mixed
// override variant) are validation failures, not syntax errors, and
// keep their sentinel observable through errors.Is.
func decode(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		if errors.Is(err, ErrMixedOverride) {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	m.applyDefaults()
	return &m, nil
}

// LoadRaw reads and decodes the manifest without validating it. Callers
// that diagnose a manifest rather than consume it use this to inspect a
// document that Load would reject.
func LoadRaw(root string) (*Manifest, error) {
	path, ok := FindPath(root)
	if !ok {
		return nil, fmt.Errorf("%w: expected %s or %s, run 'agent-scaffold init' to create one",
			ErrNotFound, defs.ManifestYAML, defs.ManifestJSON)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %q: %w", path, err)
	}
	return decode(data)
}

// Save writes the manifest back to its YAML path as a whole document.
// The write is atomic so an interrupted save never leaves a truncated
// manifest behind.
func Save(root string, m *Manifest) (string, error) {
	path := filepath.Join(root, filepath.FromSlash(defs.ManifestYAML))

	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}
	if err := fsutil.WriteTextAtomic(path, data); err != nil {
		return "", fmt.Errorf("save manifest: %w", err)
	}
	return path, nil
}

// applyDefaults fills scalar defaults the document may omit.
func (m *Manifest) applyDefaults() {
	if m.SchemaVersion == 0 {
		m.SchemaVersion = 1
	}
	if m.Paths.PromptsDir == "" {
		m.Paths.PromptsDir = defs.DefaultPromptsDir
	}
	if m.Paths.CommandsDir == "" {
		m.Paths.CommandsDir = defs.DefaultCommandsDir
	}
	if m.Paths.AgentsDir == "" {
		m.Paths.AgentsDir = defs.DefaultAgentsDir
	}
	if m.Paths.InstructionsDir == "" {
		m.Paths.InstructionsDir = defs.DefaultInstructionsDir
	}
	if m.Paths.SkillsDir == "" {
		m.Paths.SkillsDir = defs.DefaultSkillsDir
	}
	for i := range m.Artifacts.Commands {
		if m.Artifacts.Commands[i].UserInput == "" {
			m.Artifacts.Commands[i].UserInput = InputOptional
		}
	}
}
