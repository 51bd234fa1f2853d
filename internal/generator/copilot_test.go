package generator

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/agentscaffold/agent-scaffold/internal/manifest"
	"github.com/agentscaffold/agent-scaffold/internal/template"
)

func copilotFixture() *manifest.Manifest {
	return &manifest.Manifest{
		SchemaVersion: 1,
		Project:       manifest.ProjectConfig{Name: "demo"},
		Paths: manifest.PathsConfig{
			PromptsDir:      ".agents/prompts",
			CommandsDir:     ".agents/commands",
			AgentsDir:       ".agents/agents",
			InstructionsDir: ".agents/instructions",
			SkillsDir:       ".agents/skills",
		},
		Targets: map[string]manifest.TargetConfig{
			"copilot-vscode": {
				Kind: manifest.KindCopilot,
				Copilot: &manifest.CopilotTarget{
					Enabled:              true,
					PromptsDir:           ".github/prompts",
					AgentsDir:            ".github/agents",
					InstructionsDir:      ".github/instructions",
					RepoInstructionsFile: ".github/copilot-instructions.md",
					SkillsDir:            ".github/skills",
				},
			},
			"copilot-cli": {
				Kind: manifest.KindCopilot,
				Copilot: &manifest.CopilotTarget{
					Enabled:              true,
					AgentsDir:            ".github/agents",
					InstructionsDir:      ".github/instructions",
					RepoInstructionsFile: ".github/copilot-instructions.md",
					SkillsDir:            ".github/skills",
				},
			},
		},
		Artifacts: manifest.ArtifactsConfig{
			Prompts: []manifest.PromptArtifact{
				{
					ID:            "refactor",
					Title:         "Refactor",
					CanonicalFile: ".agents/prompts/refactor.md",
					Description:   "Refactor safely",
					DefaultAgent:  "reviewer",
					Tools:         []string{"search", "edit"},
				},
			},
			Agents: []manifest.AgentArtifact{
				{
					ID:          "reviewer",
					Description: "Reviews changes",
					PromptFile:  ".agents/agents/reviewer.md",
				},
				{
					ID:          "inline",
					Description: "Inline persona",
					Prompt:      "You are terse.\n",
				},
			},
			Instructions: []manifest.InstructionArtifact{
				{
					ID:            "go-style",
					Scope:         manifest.ScopePath,
					CanonicalFile: ".agents/instructions/go-style.md",
					ApplyTo:       "**/*.go",
				},
				{
					ID:            "general",
					Scope:         manifest.ScopeRepo,
					CanonicalFile: ".agents/instructions/general.md",
				},
			},
			Skills: []manifest.SkillArtifact{
				{
					ID:           "profiling",
					CanonicalDir: ".agents/skills/profiling",
					SkillFile:    "SKILL.md",
					Name:         "Profiling",
					Description:  "CPU and memory profiling",
				},
			},
		},
	}
}

func generateCopilot(t *testing.T, m *manifest.Manifest, target string) (string, []string) {
	t.Helper()
	root := t.TempDir()
	gen := ForTarget(target, m.Targets[target], m, root, template.Default())
	if gen == nil {
		t.Fatalf("no generator for target %q", target)
	}
	rels, err := gen.Generate(false)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return root, rels
}

func readOut(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

func TestCopilotVSCodePlan(t *testing.T) {
	t.Parallel()
	_, rels := generateCopilot(t, copilotFixture(), "copilot-vscode")

	want := []string{
		".github/prompts/refactor.prompt.md",
		".github/agents/inline.agent.md",
		".github/agents/reviewer.agent.md",
		".github/instructions/go-style.instructions.md",
		".github/copilot-instructions.md",
		".github/skills/profiling/SKILL.md",
	}
	if !slices.Equal(rels, want) {
		t.Errorf("Generate = %v, want %v", rels, want)
	}
}

func TestCopilotCLISkipsPrompts(t *testing.T) {
	t.Parallel()
	_, rels := generateCopilot(t, copilotFixture(), "copilot-cli")

	for _, rel := range rels {
		if strings.Contains(rel, ".prompt.md") {
			t.Errorf("target without a prompts dir emitted prompt file %s", rel)
		}
	}
}

func TestCopilotDeclaredFilesMatchGenerate(t *testing.T) {
	t.Parallel()
	m := copilotFixture()
	gen := ForTarget("copilot-vscode", m.Targets["copilot-vscode"], m, t.TempDir(), template.Default())

	declared := gen.ListDeclaredFiles()
	produced, err := gen.Generate(true)
	if err != nil {
		t.Fatalf("Generate dry run: %v", err)
	}
	if !slices.Equal(declared, produced) {
		t.Errorf("declared %v, produced %v", declared, produced)
	}
}

func TestCopilotPromptFile(t *testing.T) {
	t.Parallel()
	root, _ := generateCopilot(t, copilotFixture(), "copilot-vscode")
	out := readOut(t, root, ".github/prompts/refactor.prompt.md")

	for _, want := range []string{
		"name: refactor\n",
		"description: Refactor safely\n",
		"agent: reviewer\n",
		"tools:\n  - search\n  - edit\n",
		"See [refactor.md](../../.agents/prompts/refactor.md).",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("prompt file missing %q:\n%s", want, out)
		}
	}
}

func TestCopilotAgentInlinePromptWins(t *testing.T) {
	t.Parallel()
	root, _ := generateCopilot(t, copilotFixture(), "copilot-vscode")

	inline := readOut(t, root, ".github/agents/inline.agent.md")
	if !strings.Contains(inline, "You are terse.") {
		t.Errorf("inline prompt body missing:\n%s", inline)
	}
	if strings.Contains(inline, "See [") {
		t.Errorf("inline agent should not fall back to a link stub:\n%s", inline)
	}

	linked := readOut(t, root, ".github/agents/reviewer.agent.md")
	if !strings.Contains(linked, "See [reviewer.md](../../.agents/agents/reviewer.md).") {
		t.Errorf("agent link stub missing:\n%s", linked)
	}
}

func TestCopilotInstructionApplyTo(t *testing.T) {
	t.Parallel()
	root, _ := generateCopilot(t, copilotFixture(), "copilot-vscode")
	out := readOut(t, root, ".github/instructions/go-style.instructions.md")

	if !strings.Contains(out, "applyTo: \"**/*.go\"\n") {
		t.Errorf("applyTo should keep explicit quoting:\n%s", out)
	}
}

func TestCopilotRepoInstructionsAggregate(t *testing.T) {
	t.Parallel()
	m := copilotFixture()
	root, _ := generateCopilot(t, m, "copilot-vscode")
	out := readOut(t, root, ".github/copilot-instructions.md")

	if !strings.Contains(out, "## general") {
		t.Errorf("repo-scoped section missing:\n%s", out)
	}
	if strings.Contains(out, "go-style") {
		t.Errorf("path-scoped instruction should not be aggregated:\n%s", out)
	}
}

func TestCopilotRepoInstructionsAbsentWithoutRepoScope(t *testing.T) {
	t.Parallel()
	m := copilotFixture()
	m.Artifacts.Instructions = m.Artifacts.Instructions[:1] // path-scoped only

	_, rels := generateCopilot(t, m, "copilot-vscode")
	if slices.Contains(rels, ".github/copilot-instructions.md") {
		t.Error("repo instructions file should not be planned without repo-scoped instructions")
	}
}

func TestCopilotDisabledArtifactSkipped(t *testing.T) {
	t.Parallel()
	m := copilotFixture()
	m.Artifacts.Agents[0].Targets = map[string]manifest.TargetOverride{
		"copilot-vscode": manifest.NewCopilotOverride(manifest.CopilotOverride{
			Enabled: boolPtr(false),
		}),
	}

	_, rels := generateCopilot(t, m, "copilot-vscode")
	if slices.Contains(rels, ".github/agents/reviewer.agent.md") {
		t.Error("disabled agent should not be planned")
	}
}

func TestCopilotOutFileOverride(t *testing.T) {
	t.Parallel()
	m := copilotFixture()
	m.Artifacts.Agents[0].Targets = map[string]manifest.TargetOverride{
		"copilot-vscode": manifest.NewCopilotOverride(manifest.CopilotOverride{
			OutFile: "docs/reviewer.md",
		}),
	}

	root, rels := generateCopilot(t, m, "copilot-vscode")
	if !slices.Contains(rels, "docs/reviewer.md") {
		t.Fatalf("outFile override not honored: %v", rels)
	}
	out := readOut(t, root, "docs/reviewer.md")
	// The link stub is relative to the overridden location.
	if !strings.Contains(out, "See [reviewer.md](../.agents/agents/reviewer.md).") {
		t.Errorf("stub link not adjusted for the override:\n%s", out)
	}
}

func TestCopilotOutFileOverrideCannotEscapeRoot(t *testing.T) {
	t.Parallel()

	for _, outFile := range []string{
		"../outside.md",
		"docs/../../outside.md",
		"/tmp/outside.md",
	} {
		m := copilotFixture()
		m.Artifacts.Agents[0].Targets = map[string]manifest.TargetOverride{
			"copilot-vscode": manifest.NewCopilotOverride(manifest.CopilotOverride{
				OutFile: outFile,
			}),
		}

		root, rels := generateCopilot(t, m, "copilot-vscode")
		if !slices.Contains(rels, ".github/agents/reviewer.agent.md") {
			t.Errorf("outFile %q: escaping override should fall back to the default path: %v", outFile, rels)
		}
		if _, err := os.Stat(filepath.Join(filepath.Dir(root), "outside.md")); err == nil {
			t.Errorf("outFile %q: file written outside the project root", outFile)
		}
	}
}

func TestCopilotStubModeInline(t *testing.T) {
	t.Parallel()
	m := copilotFixture()
	m.Artifacts.Agents[0].Targets = map[string]manifest.TargetOverride{
		"copilot-vscode": manifest.NewCopilotOverride(manifest.CopilotOverride{
			StubMode: manifest.StubModeInline,
		}),
	}

	root := t.TempDir()
	canonical := filepath.Join(root, ".agents", "agents", "reviewer.md")
	if err := os.MkdirAll(filepath.Dir(canonical), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(canonical, []byte("# Reviewer\n\nBe thorough.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	gen := ForTarget("copilot-vscode", m.Targets["copilot-vscode"], m, root, template.Default())
	if _, err := gen.Generate(false); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	out := readOut(t, root, ".github/agents/reviewer.agent.md")
	if !strings.Contains(out, "Be thorough.") {
		t.Errorf("inline stub should embed the canonical content:\n%s", out)
	}
	if strings.Contains(out, "See [") {
		t.Errorf("inline stub should not emit a link:\n%s", out)
	}
}

func TestCopilotStubModeInlineFallsBackToLink(t *testing.T) {
	t.Parallel()
	m := copilotFixture()
	m.Artifacts.Agents[0].Targets = map[string]manifest.TargetOverride{
		"copilot-vscode": manifest.NewCopilotOverride(manifest.CopilotOverride{
			StubMode: manifest.StubModeInline,
		}),
	}

	// Canonical file intentionally absent.
	root, _ := generateCopilot(t, m, "copilot-vscode")
	out := readOut(t, root, ".github/agents/reviewer.agent.md")
	if !strings.Contains(out, "See [reviewer.md](../../.agents/agents/reviewer.md).") {
		t.Errorf("unreadable canonical should degrade to a link:\n%s", out)
	}
}

func TestCopilotFrontmatterOverrideWins(t *testing.T) {
	t.Parallel()
	m := copilotFixture()
	m.Artifacts.Agents[0].Targets = map[string]manifest.TargetOverride{
		"copilot-vscode": manifest.NewCopilotOverride(manifest.CopilotOverride{
			Frontmatter: map[string]any{
				"description": "Overridden",
				"model":       "gpt-5",
			},
		}),
	}

	root, _ := generateCopilot(t, m, "copilot-vscode")
	out := readOut(t, root, ".github/agents/reviewer.agent.md")
	if !strings.Contains(out, "description: Overridden\n") {
		t.Errorf("override should replace the computed description:\n%s", out)
	}
	if !strings.Contains(out, "model: gpt-5\n") {
		t.Errorf("override-only keys should be appended:\n%s", out)
	}
}
