package generator

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// RawValue is emitted into front matter verbatim, bypassing YAML
// serialization. Used for values that must keep explicit quoting,
// like applyTo globs.
type RawValue string

// Frontmatter assembles a front-matter mapping with a stable key
// order: base keys keep their insertion position, later writes to the
// same key replace the value in place, and keys contributed only by an
// override are appended in sorted order. This makes the rendered block
// deterministic regardless of manifest insertion order.
type Frontmatter struct {
	keys   []string
	values map[string]any
}

// NewFrontmatter creates an empty front-matter builder.
func NewFrontmatter() *Frontmatter {
	return &Frontmatter{values: make(map[string]any)}
}

// Set writes a key. A repeated key keeps its original position.
func (f *Frontmatter) Set(key string, value any) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Merge applies an override mapping on top of the base mapping.
// Override wins on key collision; new keys are appended sorted.
func (f *Frontmatter) Merge(overrides map[string]any) {
	added := make([]string, 0, len(overrides))
	for key, value := range overrides {
		if _, ok := f.values[key]; ok {
			f.values[key] = value
			continue
		}
		f.values[key] = value
		added = append(added, key)
	}
	sort.Strings(added)
	f.keys = append(f.keys, added...)
}

// Render serializes the mapping as YAML front-matter lines, one key
// per line, multi-line values in block form. The result ends with a
// newline so it can sit directly between the --- fences.
func (f *Frontmatter) Render() (string, error) {
	var b strings.Builder
	for _, key := range f.keys {
		value := f.values[key]
		if raw, ok := value.(RawValue); ok {
			fmt.Fprintf(&b, "%s: %s\n", key, string(raw))
			continue
		}
		out, err := yaml.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("frontmatter key %q: %w", key, err)
		}
		s := strings.TrimRight(string(out), "\n")
		if strings.Contains(s, "\n") {
			fmt.Fprintf(&b, "%s:\n%s\n", key, indent(s, "  "))
		} else {
			fmt.Fprintf(&b, "%s: %s\n", key, s)
		}
	}
	return b.String(), nil
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
