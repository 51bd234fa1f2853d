package generator

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/agentscaffold/agent-scaffold/internal/fsutil"
	"github.com/agentscaffold/agent-scaffold/internal/manifest"
	"github.com/agentscaffold/agent-scaffold/internal/template"
)

// Template names for the Copilot file stubs.
const (
	promptTemplate           = "copilot/prompt.md.tmpl"
	agentTemplate            = "copilot/agent.md.tmpl"
	instructionTemplate      = "copilot/instruction.md.tmpl"
	repoInstructionsTemplate = "copilot/repo-instructions.md.tmpl"
	skillTemplate            = "copilot/skill.md.tmpl"
)

// copilotGenerator emits one file per enabled artifact. The target has
// two sub-variants: with a prompts directory (VS Code flavor) prompt
// artifacts are emitted, without one (CLI flavor) they are not.
type copilotGenerator struct {
	targetName string
	cfg        manifest.CopilotTarget
	m          *manifest.Manifest
	root       string
	renderer   template.Renderer
}

// plannedFile pairs an output path with a deferred content builder, so
// the declared file set and the generated file set come from the same
// plan and can never drift apart.
type plannedFile struct {
	rel    string
	render func() ([]byte, error)
}

func (g *copilotGenerator) emitsPrompts() bool {
	return g.cfg.PromptsDir != ""
}

// ListDeclaredFiles returns the files a generate run would produce.
func (g *copilotGenerator) ListDeclaredFiles() []string {
	plan := g.plan()
	rels := make([]string, len(plan))
	for i, pf := range plan {
		rels[i] = pf.rel
	}
	return rels
}

// Generate renders and writes every planned file. With dryRun set the
// plan is returned without rendering or touching storage.
func (g *copilotGenerator) Generate(dryRun bool) ([]string, error) {
	plan := g.plan()
	rels := make([]string, len(plan))
	for i, pf := range plan {
		rels[i] = pf.rel
		if dryRun {
			continue
		}
		content, err := pf.render()
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", pf.rel, err)
		}
		if err := fsutil.WriteText(absPath(g.root, pf.rel), content); err != nil {
			return nil, err
		}
	}
	return rels, nil
}

// plan enumerates the output files in stable order: prompts, agents,
// path-scoped instructions, the aggregated repo instructions file,
// then skills, each group sorted by id.
func (g *copilotGenerator) plan() []plannedFile {
	var plan []plannedFile

	if g.emitsPrompts() {
		prompts := sortedByID(g.m.Artifacts.Prompts,
			func(p manifest.PromptArtifact) string { return p.ID })
		for _, p := range prompts {
			if !manifest.IsEnabled(p.Targets, g.targetName) {
				continue
			}
			prompt := p
			rel := g.outPath(path.Join(g.cfg.PromptsDir, p.ID+".prompt.md"), p.Targets)
			plan = append(plan, plannedFile{rel, func() ([]byte, error) {
				return g.buildPrompt(prompt, rel)
			}})
		}
	}

	agents := sortedByID(g.m.Artifacts.Agents,
		func(a manifest.AgentArtifact) string { return a.ID })
	for _, a := range agents {
		if !manifest.IsEnabled(a.Targets, g.targetName) {
			continue
		}
		agent := a
		rel := g.outPath(path.Join(g.cfg.AgentsDir, a.ID+".agent.md"), a.Targets)
		plan = append(plan, plannedFile{rel, func() ([]byte, error) {
			return g.buildAgent(agent, rel)
		}})
	}

	instructions := sortedByID(g.m.Artifacts.Instructions,
		func(i manifest.InstructionArtifact) string { return i.ID })
	var repoScoped []manifest.InstructionArtifact
	for _, ins := range instructions {
		if !manifest.IsEnabled(ins.Targets, g.targetName) {
			continue
		}
		if ins.Scope == manifest.ScopeRepo {
			repoScoped = append(repoScoped, ins)
			continue
		}
		instruction := ins
		rel := g.outPath(path.Join(g.cfg.InstructionsDir, ins.ID+".instructions.md"), ins.Targets)
		plan = append(plan, plannedFile{rel, func() ([]byte, error) {
			return g.buildInstruction(instruction, rel)
		}})
	}
	if len(repoScoped) > 0 {
		plan = append(plan, plannedFile{g.cfg.RepoInstructionsFile, func() ([]byte, error) {
			return g.buildRepoInstructions(repoScoped)
		}})
	}

	skills := sortedByID(g.m.Artifacts.Skills,
		func(s manifest.SkillArtifact) string { return s.ID })
	for _, s := range skills {
		if !manifest.IsEnabled(s.Targets, g.targetName) {
			continue
		}
		skill := s
		rel := g.outPath(path.Join(g.cfg.SkillsDir, s.ID, "SKILL.md"), s.Targets)
		plan = append(plan, plannedFile{rel, func() ([]byte, error) {
			return g.buildSkill(skill, rel)
		}})
	}

	return plan
}

// outPath applies a per-artifact outFile override, when present. An
// override must stay inside the project root; one that escapes is
// ignored so sync can never write or prune outside the project.
func (g *copilotGenerator) outPath(defaultRel string, overrides map[string]manifest.TargetOverride) string {
	co, ok := manifest.CopilotOverrideFor(overrides, g.targetName)
	if !ok || co.OutFile == "" {
		return defaultRel
	}
	rel := path.Clean(co.OutFile)
	if path.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, "../") {
		slog.Warn("outFile override escapes the project root, using the default path",
			"target", g.targetName, "outFile", co.OutFile)
		return defaultRel
	}
	return rel
}

// stubBody produces the body of a generated file for a canonical
// source. In link mode (the default) that is a relative markdown link;
// in inline mode the canonical content is embedded. A failed read in
// inline mode degrades to the link form.
func (g *copilotGenerator) stubBody(outRel, canonical string, overrides map[string]manifest.TargetOverride) string {
	mode := manifest.StubModeLink
	if co, ok := manifest.CopilotOverrideFor(overrides, g.targetName); ok && co.StubMode != "" {
		mode = co.StubMode
	}
	if mode == manifest.StubModeInline {
		data, err := os.ReadFile(absPath(g.root, canonical))
		if err == nil {
			return strings.TrimRight(string(data), "\n")
		}
		slog.Warn("inline stub could not read canonical file, falling back to link",
			"target", g.targetName, "file", canonical, "error", err)
	}
	return fmt.Sprintf("See [%s](%s).", path.Base(canonical), relLink(outRel, canonical))
}

// relLink computes the slash-separated link from the directory of
// fromRel to toRel, both root-relative.
func relLink(fromRel, toRel string) string {
	rel, err := filepath.Rel(filepath.FromSlash(path.Dir(fromRel)), filepath.FromSlash(toRel))
	if err != nil {
		return toRel
	}
	return filepath.ToSlash(rel)
}

type stubContext struct {
	ID            string
	CanonicalFile string
	Frontmatter   string
	Body          string
}

func (g *copilotGenerator) buildPrompt(p manifest.PromptArtifact, outRel string) ([]byte, error) {
	fm := NewFrontmatter()
	fm.Set("name", p.ID)
	if p.Description != "" {
		fm.Set("description", p.Description)
	}
	if p.DefaultAgent != "" {
		fm.Set("agent", p.DefaultAgent)
	}
	if p.DefaultModel != "" {
		fm.Set("model", p.DefaultModel)
	}
	if len(p.Tools) > 0 {
		fm.Set("tools", p.Tools)
	}
	fm.Merge(manifest.OverrideFrontmatter(p.Targets, g.targetName))

	rendered, err := fm.Render()
	if err != nil {
		return nil, err
	}
	return g.renderer.Render(promptTemplate, stubContext{
		ID:            p.ID,
		CanonicalFile: p.CanonicalFile,
		Frontmatter:   rendered,
		Body:          g.stubBody(outRel, p.CanonicalFile, p.Targets),
	})
}

func (g *copilotGenerator) buildAgent(a manifest.AgentArtifact, outRel string) ([]byte, error) {
	fm := NewFrontmatter()
	fm.Set("name", a.ID)
	fm.Set("description", a.Description)
	fm.Merge(manifest.OverrideFrontmatter(a.Targets, g.targetName))

	rendered, err := fm.Render()
	if err != nil {
		return nil, err
	}

	// An inline prompt wins over the canonical prompt file.
	body := a.Prompt
	if body == "" && a.PromptFile != "" {
		body = g.stubBody(outRel, a.PromptFile, a.Targets)
	}
	if body == "" {
		body = a.Description
	}
	return g.renderer.Render(agentTemplate, stubContext{
		ID:            a.ID,
		CanonicalFile: a.PromptFile,
		Frontmatter:   rendered,
		Body:          strings.TrimRight(body, "\n"),
	})
}

func (g *copilotGenerator) buildInstruction(ins manifest.InstructionArtifact, outRel string) ([]byte, error) {
	fm := NewFrontmatter()
	if ins.ApplyTo != "" {
		fm.Set("applyTo", RawValue(fmt.Sprintf("%q", ins.ApplyTo)))
	}
	fm.Merge(manifest.OverrideFrontmatter(ins.Targets, g.targetName))

	rendered, err := fm.Render()
	if err != nil {
		return nil, err
	}
	return g.renderer.Render(instructionTemplate, stubContext{
		ID:            ins.ID,
		CanonicalFile: ins.CanonicalFile,
		Frontmatter:   rendered,
		Body:          g.stubBody(outRel, ins.CanonicalFile, ins.Targets),
	})
}

type repoInstructionSection struct {
	Title string
	Body  string
}

type repoInstructionsContext struct {
	Instructions []repoInstructionSection
}

// buildRepoInstructions aggregates all enabled repo-scoped
// instructions into the single repo-wide instructions file.
func (g *copilotGenerator) buildRepoInstructions(instructions []manifest.InstructionArtifact) ([]byte, error) {
	ctx := repoInstructionsContext{}
	for _, ins := range instructions {
		ctx.Instructions = append(ctx.Instructions, repoInstructionSection{
			Title: ins.ID,
			Body:  g.stubBody(g.cfg.RepoInstructionsFile, ins.CanonicalFile, ins.Targets),
		})
	}
	return g.renderer.Render(repoInstructionsTemplate, ctx)
}

type skillContext struct {
	ID          string
	SkillFile   string
	Frontmatter string
	Body        string
}

func (g *copilotGenerator) buildSkill(s manifest.SkillArtifact, outRel string) ([]byte, error) {
	name := s.Name
	if name == "" {
		name = s.ID
	}
	description := s.Description
	if description == "" {
		description = s.ID + " skill"
	}

	fm := NewFrontmatter()
	fm.Set("name", name)
	fm.Set("description", description)

	rendered, err := fm.Render()
	if err != nil {
		return nil, err
	}
	canonical := path.Join(s.CanonicalDir, s.SkillFile)
	return g.renderer.Render(skillTemplate, skillContext{
		ID:          s.ID,
		SkillFile:   s.SkillFile,
		Frontmatter: rendered,
		Body:        g.stubBody(outRel, canonical, s.Targets),
	})
}
