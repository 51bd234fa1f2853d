package generator

import (
	"encoding/json"
	"fmt"

	"github.com/agentscaffold/agent-scaffold/internal/fsutil"
	"github.com/agentscaffold/agent-scaffold/internal/manifest"
	"github.com/agentscaffold/agent-scaffold/internal/template"
)

// openCodeSchemaURL is the $schema reference emitted into the
// aggregated config document.
const openCodeSchemaURL = "https://opencode.ai/config.json"

// rulesIndexTemplate renders the aggregated rules index document.
const rulesIndexTemplate = "opencode/agents-index.md.tmpl"

// openCodeGenerator emits exactly two aggregated documents: the
// OpenCode config JSON and the rules index.
type openCodeGenerator struct {
	targetName string
	cfg        manifest.OpenCodeTarget
	m          *manifest.Manifest
	root       string
	renderer   template.Renderer
}

// ListDeclaredFiles returns the two aggregated output documents.
func (g *openCodeGenerator) ListDeclaredFiles() []string {
	return []string{g.cfg.ConfigFile, g.cfg.RulesIndexFile}
}

// Generate builds both documents and, unless dryRun is set, writes them.
func (g *openCodeGenerator) Generate(dryRun bool) ([]string, error) {
	configDoc, err := g.buildConfig()
	if err != nil {
		return nil, err
	}
	indexDoc, err := g.buildRulesIndex()
	if err != nil {
		return nil, err
	}

	if !dryRun {
		if err := fsutil.WriteText(absPath(g.root, g.cfg.ConfigFile), configDoc); err != nil {
			return nil, err
		}
		if err := fsutil.WriteText(absPath(g.root, g.cfg.RulesIndexFile), indexDoc); err != nil {
			return nil, err
		}
	}
	return g.ListDeclaredFiles(), nil
}

// buildConfig assembles the aggregated config JSON: a fixed schema
// reference, the instructions glob, one entry per enabled command, and
// one entry per enabled agent with at least one populated field.
// Collections are sorted by id before emission.
func (g *openCodeGenerator) buildConfig() ([]byte, error) {
	doc := &jsonObject{}
	doc.set("$schema", openCodeSchemaURL)
	doc.set("instructions", []string{g.m.Paths.InstructionsDir + "/**/*.md"})

	commands := sortedByID(g.m.Artifacts.Commands,
		func(c manifest.CommandArtifact) string { return c.ID })
	for _, cmd := range commands {
		if !manifest.IsEnabled(cmd.Targets, g.targetName) {
			continue
		}
		entry := &jsonObject{}
		entry.set("description", cmd.Description)
		ref := &jsonObject{}
		ref.set("file", "./"+cmd.CanonicalFile)
		entry.set("template", ref)
		// The default user input requirement is omitted to keep the
		// document minimal.
		if cmd.UserInput != manifest.InputOptional {
			entry.set("userInput", string(cmd.UserInput))
		}
		doc.set("command."+cmd.ID, entry)
	}

	agents := sortedByID(g.m.Artifacts.Agents,
		func(a manifest.AgentArtifact) string { return a.ID })
	for _, agent := range agents {
		if !manifest.IsEnabled(agent.Targets, g.targetName) {
			continue
		}
		entry := &jsonObject{}
		if agent.PromptFile != "" {
			ref := &jsonObject{}
			ref.set("file", "./"+agent.PromptFile)
			entry.set("prompt", ref)
		}
		if oc, ok := manifest.OpenCodeOverrideFor(agent.Targets, g.targetName); ok {
			if oc.Model != "" {
				entry.set("model", oc.Model)
			}
			if oc.Mode != "" {
				entry.set("mode", oc.Mode)
			}
			if oc.Temperature != nil {
				entry.set("temperature", *oc.Temperature)
			}
			if oc.Steps != nil {
				entry.set("steps", *oc.Steps)
			}
		}
		if entry.len() > 0 {
			doc.set("agent."+agent.ID, entry)
		}
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal opencode config: %w", err)
	}
	return append(out, '\n'), nil
}

type indexInstruction struct {
	ID            string
	Scope         string
	CanonicalFile string
}

type indexAgent struct {
	ID          string
	Description string
}

type rulesIndexContext struct {
	Instructions []indexInstruction
	Agents       []indexAgent
}

// buildRulesIndex renders the rules index listing all enabled
// instructions and agents, sorted by id.
func (g *openCodeGenerator) buildRulesIndex() ([]byte, error) {
	ctx := rulesIndexContext{}

	instructions := sortedByID(g.m.Artifacts.Instructions,
		func(i manifest.InstructionArtifact) string { return i.ID })
	for _, ins := range instructions {
		if !manifest.IsEnabled(ins.Targets, g.targetName) {
			continue
		}
		ctx.Instructions = append(ctx.Instructions, indexInstruction{
			ID:            ins.ID,
			Scope:         string(ins.Scope),
			CanonicalFile: ins.CanonicalFile,
		})
	}

	agents := sortedByID(g.m.Artifacts.Agents,
		func(a manifest.AgentArtifact) string { return a.ID })
	for _, agent := range agents {
		if !manifest.IsEnabled(agent.Targets, g.targetName) {
			continue
		}
		ctx.Agents = append(ctx.Agents, indexAgent{
			ID:          agent.ID,
			Description: agent.Description,
		})
	}

	out, err := g.renderer.Render(rulesIndexTemplate, ctx)
	if err != nil {
		return nil, fmt.Errorf("render rules index: %w", err)
	}
	return out, nil
}
