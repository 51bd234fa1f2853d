// Package defs holds file and directory names shared across the project.
package defs

// Canonical layout under the project root.
const (
	// AgentsDir is the canonical configuration directory.
	AgentsDir = ".agents"

	// ManifestYAML is the primary manifest file. It takes precedence
	// over ManifestJSON when both exist.
	ManifestYAML = ".agents/manifest.yaml"

	// ManifestJSON is the JSON form of the manifest.
	ManifestJSON = ".agents/manifest.json"

	// TrackingJSON records the files written by the last sync run.
	TrackingJSON = ".agents/.generated.json"
)

// Default canonical artifact directories.
const (
	DefaultPromptsDir      = ".agents/prompts"
	DefaultCommandsDir     = ".agents/commands"
	DefaultAgentsDir       = ".agents/agents"
	DefaultInstructionsDir = ".agents/instructions"
	DefaultSkillsDir       = ".agents/skills"
)

// Default OpenCode target output files.
const (
	DefaultOpenCodeConfigFile = "opencode.json"
	DefaultRulesIndexFile     = "AGENTS.md"
)

// Default Copilot target output locations.
const (
	DefaultCopilotPromptsDir       = ".github/prompts"
	DefaultCopilotAgentsDir        = ".github/agents"
	DefaultCopilotInstructionsDir  = ".github/instructions"
	DefaultCopilotSkillsDir        = ".github/skills"
	DefaultRepoInstructionsFile    = ".github/copilot-instructions.md"
	DefaultOpenCodeTargetName      = "opencode"
	DefaultCopilotVSCodeTargetName = "copilot-vscode"
	DefaultCopilotCLITargetName    = "copilot-cli"
)
