package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/agentscaffold/agent-scaffold/internal/defs"
)

// OpenCodeTarget configures an OpenCode-kind target: one aggregated
// config document and one rules index document.
type OpenCodeTarget struct {
	Enabled        bool   `yaml:"enabled"`
	ConfigFile     string `yaml:"configFile"`
	RulesIndexFile string `yaml:"rulesIndexFile"`
}

// CopilotTarget configures a Copilot-kind target. PromptsDir is
// optional; when absent the target does not emit prompt files (the
// CLI flavor of Copilot).
type CopilotTarget struct {
	Enabled              bool   `yaml:"enabled"`
	PromptsDir           string `yaml:"promptsDir,omitempty"`
	AgentsDir            string `yaml:"agentsDir"`
	InstructionsDir      string `yaml:"instructionsDir"`
	RepoInstructionsFile string `yaml:"repoInstructionsFile"`
	SkillsDir            string `yaml:"skillsDir"`
}

// TargetConfig is the sum of the target configuration variants, keyed
// by the kind discriminator. Exactly one variant pointer is set for
// known kinds. Unknown kinds survive decoding with just the kind and
// enabled flag so the reconciler can skip them without failing.
type TargetConfig struct {
	Kind     TargetKind
	OpenCode *OpenCodeTarget
	Copilot  *CopilotTarget

	enabled bool // retained for unknown kinds
}

// Enabled reports whether the target participates in sync runs.
func (t TargetConfig) Enabled() bool {
	switch {
	case t.OpenCode != nil:
		return t.OpenCode.Enabled
	case t.Copilot != nil:
		return t.Copilot.Enabled
	default:
		return t.enabled
	}
}

func defaultOpenCodeTarget() OpenCodeTarget {
	return OpenCodeTarget{
		Enabled:        true,
		ConfigFile:     defs.DefaultOpenCodeConfigFile,
		RulesIndexFile: defs.DefaultRulesIndexFile,
	}
}

func defaultCopilotTarget() CopilotTarget {
	return CopilotTarget{
		Enabled:              true,
		AgentsDir:            defs.DefaultCopilotAgentsDir,
		InstructionsDir:      defs.DefaultCopilotInstructionsDir,
		RepoInstructionsFile: defs.DefaultRepoInstructionsFile,
		SkillsDir:            defs.DefaultCopilotSkillsDir,
	}
}

// UnmarshalYAML decodes a target configuration by dispatching on the
// kind discriminator. Fields absent from the document keep their
// variant defaults.
func (t *TargetConfig) UnmarshalYAML(node *yaml.Node) error {
	var probe struct {
		Kind    TargetKind `yaml:"kind"`
		Enabled *bool      `yaml:"enabled"`
	}
	if err := node.Decode(&probe); err != nil {
		return fmt.Errorf("decode target: %w", err)
	}
	if probe.Kind == "" {
		return fmt.Errorf("decode target: missing kind discriminator")
	}

	t.Kind = probe.Kind
	switch probe.Kind {
	case KindOpenCode:
		cfg := defaultOpenCodeTarget()
		if err := node.Decode(&cfg); err != nil {
			return fmt.Errorf("decode opencode target: %w", err)
		}
		t.OpenCode = &cfg
	case KindCopilot:
		cfg := defaultCopilotTarget()
		if err := node.Decode(&cfg); err != nil {
			return fmt.Errorf("decode copilot target: %w", err)
		}
		t.Copilot = &cfg
	default:
		t.enabled = true
		if probe.Enabled != nil {
			t.enabled = *probe.Enabled
		}
	}
	return nil
}

// MarshalYAML emits the active variant with its kind discriminator.
func (t TargetConfig) MarshalYAML() (any, error) {
	switch {
	case t.OpenCode != nil:
		return struct {
			Kind           TargetKind `yaml:"kind"`
			OpenCodeTarget `yaml:",inline"`
		}{KindOpenCode, *t.OpenCode}, nil
	case t.Copilot != nil:
		return struct {
			Kind          TargetKind `yaml:"kind"`
			CopilotTarget `yaml:",inline"`
		}{KindCopilot, *t.Copilot}, nil
	default:
		return struct {
			Kind    TargetKind `yaml:"kind"`
			Enabled bool       `yaml:"enabled"`
		}{t.Kind, t.enabled}, nil
	}
}
