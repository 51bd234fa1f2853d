package manifest

import (
	"fmt"

	"github.com/agentscaffold/agent-scaffold/internal/defs"
)

// CreateDefault builds a fresh manifest with the standard three
// targets: OpenCode, Copilot for VS Code (with prompt files), and
// Copilot CLI (without).
func CreateDefault(projectName string) *Manifest {
	opencode := defaultOpenCodeTarget()
	vscode := defaultCopilotTarget()
	vscode.PromptsDir = defs.DefaultCopilotPromptsDir
	cli := defaultCopilotTarget()

	return &Manifest{
		SchemaVersion: 1,
		Project: ProjectConfig{
			Name:        projectName,
			Description: fmt.Sprintf("Multi-agent configuration for %s", projectName),
			DefaultTargets: []string{
				defs.DefaultOpenCodeTargetName,
				defs.DefaultCopilotVSCodeTargetName,
				defs.DefaultCopilotCLITargetName,
			},
		},
		Paths: PathsConfig{
			PromptsDir:      defs.DefaultPromptsDir,
			CommandsDir:     defs.DefaultCommandsDir,
			AgentsDir:       defs.DefaultAgentsDir,
			InstructionsDir: defs.DefaultInstructionsDir,
			SkillsDir:       defs.DefaultSkillsDir,
		},
		Targets: map[string]TargetConfig{
			defs.DefaultOpenCodeTargetName: {
				Kind:     KindOpenCode,
				OpenCode: &opencode,
			},
			defs.DefaultCopilotVSCodeTargetName: {
				Kind:    KindCopilot,
				Copilot: &vscode,
			},
			defs.DefaultCopilotCLITargetName: {
				Kind:    KindCopilot,
				Copilot: &cli,
			},
		},
	}
}
