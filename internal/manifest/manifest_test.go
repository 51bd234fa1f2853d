package manifest

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

const sampleManifest = `
schemaVersion: 1
project:
  name: demo
  defaultTargets: [opencode, copilot-vscode]
paths:
  promptsDir: .agents/prompts
  commandsDir: .agents/commands
  agentsDir: .agents/agents
  instructionsDir: .agents/instructions
  skillsDir: .agents/skills
targets:
  opencode:
    kind: opencode
    configFile: opencode.json
    rulesIndexFile: AGENTS.md
  copilot-vscode:
    kind: copilot
    promptsDir: .github/prompts
  copilot-cli:
    kind: copilot
  future:
    kind: cursor
    enabled: false
artifacts:
  agents:
    - id: reviewer
      description: Reviews changes
      promptFile: .agents/agents/reviewer.md
      targets:
        opencode:
          model: gpt-5
          temperature: 0.2
        copilot-vscode:
          frontmatter:
            tools: [search]
  instructions:
    - id: go-style
      scope: path
      canonicalFile: .agents/instructions/go-style.md
      applyTo: "**/*.go"
      targets:
        copilot-cli:
          enabled: false
  commands:
    - id: release
      canonicalFile: .agents/commands/release.md
      description: Cut a release
      userInput: required
`

func decodeSample(t *testing.T) *Manifest {
	t.Helper()
	var m Manifest
	if err := yaml.Unmarshal([]byte(sampleManifest), &m); err != nil {
		t.Fatalf("unmarshal sample manifest: %v", err)
	}
	m.applyDefaults()
	return &m
}

func TestManifestDecodeTargets(t *testing.T) {
	t.Parallel()
	m := decodeSample(t)

	oc, ok := m.Targets["opencode"]
	if !ok || oc.OpenCode == nil {
		t.Fatalf("opencode target not decoded as opencode kind: %+v", oc)
	}
	if oc.OpenCode.ConfigFile != "opencode.json" {
		t.Errorf("ConfigFile = %q, want opencode.json", oc.OpenCode.ConfigFile)
	}
	if !oc.OpenCode.Enabled {
		t.Error("opencode target should default to enabled")
	}

	vscode := m.Targets["copilot-vscode"]
	if vscode.Copilot == nil {
		t.Fatal("copilot-vscode target not decoded as copilot kind")
	}
	if vscode.Copilot.PromptsDir != ".github/prompts" {
		t.Errorf("PromptsDir = %q, want .github/prompts", vscode.Copilot.PromptsDir)
	}
	if vscode.Copilot.AgentsDir != ".github/agents" {
		t.Errorf("AgentsDir default = %q, want .github/agents", vscode.Copilot.AgentsDir)
	}

	cli := m.Targets["copilot-cli"]
	if cli.Copilot == nil {
		t.Fatal("copilot-cli target not decoded as copilot kind")
	}
	if cli.Copilot.PromptsDir != "" {
		t.Errorf("copilot-cli PromptsDir = %q, want empty", cli.Copilot.PromptsDir)
	}

	future := m.Targets["future"]
	if future.Kind != "cursor" {
		t.Errorf("unknown target kind = %q, want cursor", future.Kind)
	}
	if future.OpenCode != nil || future.Copilot != nil {
		t.Error("unknown kind should not populate a known variant")
	}
	if future.Enabled() {
		t.Error("future target declares enabled: false")
	}
}

func TestManifestDecodeOverrides(t *testing.T) {
	t.Parallel()
	m := decodeSample(t)

	agent := m.Artifacts.Agents[0]
	oc, ok := OpenCodeOverrideFor(agent.Targets, "opencode")
	if !ok {
		t.Fatal("expected an opencode override for the reviewer agent")
	}
	if oc.Model != "gpt-5" {
		t.Errorf("Model = %q, want gpt-5", oc.Model)
	}
	if oc.Temperature == nil || *oc.Temperature != 0.2 {
		t.Errorf("Temperature = %v, want 0.2", oc.Temperature)
	}

	cp, ok := CopilotOverrideFor(agent.Targets, "copilot-vscode")
	if !ok {
		t.Fatal("expected a copilot override for copilot-vscode")
	}
	if cp.StubMode != StubModeLink {
		t.Errorf("StubMode = %q, want default %q", cp.StubMode, StubModeLink)
	}
	if _, ok := cp.Frontmatter["tools"]; !ok {
		t.Error("frontmatter tools key not decoded")
	}

	ins := m.Artifacts.Instructions[0]
	if IsEnabled(ins.Targets, "copilot-cli") {
		t.Error("bare {enabled: false} override should disable the artifact")
	}
	if !IsEnabled(ins.Targets, "copilot-vscode") {
		t.Error("absent override should default to enabled")
	}
}

func TestManifestDecodeMixedOverride(t *testing.T) {
	t.Parallel()
	doc := `
targets:
  opencode:
    model: gpt-5
    stubMode: inline
`
	var a AgentArtifact
	err := yaml.Unmarshal([]byte(doc), &a)
	if !errors.Is(err, ErrMixedOverride) {
		t.Fatalf("err = %v, want ErrMixedOverride", err)
	}
}

func TestManifestDecodeMissingKind(t *testing.T) {
	t.Parallel()
	doc := `
targets:
  broken:
    configFile: opencode.json
`
	var m Manifest
	if err := yaml.Unmarshal([]byte(doc), &m); err == nil {
		t.Fatal("expected an error for a target without a kind")
	}
}

func TestManifestRoundTrip(t *testing.T) {
	t.Parallel()
	m := decodeSample(t)

	data, err := yaml.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Manifest
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal round trip: %v", err)
	}

	if back.Targets["opencode"].OpenCode == nil {
		t.Error("opencode target lost in round trip")
	}
	agent := back.Artifacts.Agents[0]
	if oc, ok := OpenCodeOverrideFor(agent.Targets, "opencode"); !ok || oc.Model != "gpt-5" {
		t.Errorf("opencode override lost in round trip: %+v ok=%v", oc, ok)
	}
	if !IsEnabled(back.Artifacts.Instructions[0].Targets, "copilot-vscode") {
		t.Error("enablement default lost in round trip")
	}
	if IsEnabled(back.Artifacts.Instructions[0].Targets, "copilot-cli") {
		t.Error("bare disabled override lost in round trip")
	}
}

func TestManifestDecodeJSONDocument(t *testing.T) {
	t.Parallel()
	doc := `{"schemaVersion": 1, "project": {"name": "demo"},
  "targets": {"opencode": {"kind": "opencode"}}}`
	var m Manifest
	if err := yaml.Unmarshal([]byte(doc), &m); err != nil {
		t.Fatalf("JSON document should decode through the YAML parser: %v", err)
	}
	if m.Targets["opencode"].OpenCode == nil {
		t.Error("opencode target not decoded from JSON document")
	}
}

func TestApplyDefaults(t *testing.T) {
	t.Parallel()
	m := Manifest{
		Artifacts: ArtifactsConfig{
			Commands: []CommandArtifact{{ID: "deploy"}},
		},
	}
	m.applyDefaults()

	if m.SchemaVersion != 1 {
		t.Errorf("SchemaVersion = %d, want 1", m.SchemaVersion)
	}
	if m.Paths.PromptsDir != ".agents/prompts" {
		t.Errorf("PromptsDir = %q, want .agents/prompts", m.Paths.PromptsDir)
	}
	if m.Artifacts.Commands[0].UserInput != InputOptional {
		t.Errorf("UserInput = %q, want optional", m.Artifacts.Commands[0].UserInput)
	}
}
