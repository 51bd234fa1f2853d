package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Stub modes for Copilot overrides.
const (
	StubModeLink   = "link"
	StubModeInline = "inline"
)

// OpenCodeOverride adjusts how an artifact is emitted into the
// OpenCode aggregated config.
type OpenCodeOverride struct {
	Enabled     *bool    `yaml:"enabled,omitempty"`
	Name        string   `yaml:"name,omitempty"`
	Mode        string   `yaml:"mode,omitempty"`
	Model       string   `yaml:"model,omitempty"`
	Temperature *float64 `yaml:"temperature,omitempty"`
	Permission  string   `yaml:"permission,omitempty"`
	Hidden      *bool    `yaml:"hidden,omitempty"`
	Steps       *int     `yaml:"steps,omitempty"`
}

// CopilotOverride adjusts how an artifact is emitted as a Copilot
// markdown file. Frontmatter keys win over the computed base mapping.
type CopilotOverride struct {
	Enabled     *bool          `yaml:"enabled,omitempty"`
	Frontmatter map[string]any `yaml:"frontmatter,omitempty"`
	OutFile     string         `yaml:"outFile,omitempty"`
	StubMode    string         `yaml:"stubMode,omitempty"`
}

// TargetOverride is the sum of the per-target override variants. The
// variant is inferred from the keys present in the document; a bare
// {enabled: x} override carries only the shared enablement capability.
type TargetOverride struct {
	opencode *OpenCodeOverride
	copilot  *CopilotOverride
	enabled  *bool // bare form
}

// NewOpenCodeOverride wraps an OpenCode-kind override.
func NewOpenCodeOverride(o OpenCodeOverride) TargetOverride {
	return TargetOverride{opencode: &o}
}

// NewCopilotOverride wraps a Copilot-kind override. An empty stub mode
// defaults to link.
func NewCopilotOverride(o CopilotOverride) TargetOverride {
	if o.StubMode == "" {
		o.StubMode = StubModeLink
	}
	return TargetOverride{copilot: &o}
}

// Enabled reports whether the artifact is emitted for the target this
// override belongs to. Absence of the flag means enabled.
func (o TargetOverride) Enabled() bool {
	var flag *bool
	switch {
	case o.opencode != nil:
		flag = o.opencode.Enabled
	case o.copilot != nil:
		flag = o.copilot.Enabled
	default:
		flag = o.enabled
	}
	if flag == nil {
		return true
	}
	return *flag
}

// Frontmatter returns the override front-matter mapping, or an empty
// map when the override is not of the front-matter-bearing variant.
func (o TargetOverride) Frontmatter() map[string]any {
	if o.copilot == nil || o.copilot.Frontmatter == nil {
		return map[string]any{}
	}
	return o.copilot.Frontmatter
}

// OpenCode returns the OpenCode-kind view of the override.
func (o TargetOverride) OpenCode() (OpenCodeOverride, bool) {
	if o.opencode == nil {
		return OpenCodeOverride{}, false
	}
	return *o.opencode, true
}

// Copilot returns the Copilot-kind view of the override.
func (o TargetOverride) Copilot() (CopilotOverride, bool) {
	if o.copilot == nil {
		return CopilotOverride{}, false
	}
	return *o.copilot, true
}

// Keys that identify each override variant in a manifest document.
var (
	opencodeOverrideKeys = map[string]bool{
		"name": true, "mode": true, "model": true, "temperature": true,
		"permission": true, "hidden": true, "steps": true,
	}
	copilotOverrideKeys = map[string]bool{
		"frontmatter": true, "outFile": true, "stubMode": true,
	}
)

// UnmarshalYAML classifies the override by its keys and decodes the
// matching variant. Mixing keys from both variants is rejected.
func (o *TargetOverride) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("decode override: expected mapping, got %v", node.Kind)
	}

	var hasOpenCode, hasCopilot bool
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if opencodeOverrideKeys[key] {
			hasOpenCode = true
		}
		if copilotOverrideKeys[key] {
			hasCopilot = true
		}
	}
	if hasOpenCode && hasCopilot {
		return ErrMixedOverride
	}

	switch {
	case hasCopilot:
		cp := CopilotOverride{StubMode: StubModeLink}
		if err := node.Decode(&cp); err != nil {
			return fmt.Errorf("decode copilot override: %w", err)
		}
		o.copilot = &cp
	case hasOpenCode:
		var oc OpenCodeOverride
		if err := node.Decode(&oc); err != nil {
			return fmt.Errorf("decode opencode override: %w", err)
		}
		o.opencode = &oc
	default:
		var bare struct {
			Enabled *bool `yaml:"enabled"`
		}
		if err := node.Decode(&bare); err != nil {
			return fmt.Errorf("decode override: %w", err)
		}
		o.enabled = bare.Enabled
	}
	return nil
}

// MarshalYAML emits the active variant.
func (o TargetOverride) MarshalYAML() (any, error) {
	switch {
	case o.opencode != nil:
		return *o.opencode, nil
	case o.copilot != nil:
		return *o.copilot, nil
	default:
		return struct {
			Enabled *bool `yaml:"enabled,omitempty"`
		}{o.enabled}, nil
	}
}
