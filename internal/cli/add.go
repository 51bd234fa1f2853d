package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentscaffold/agent-scaffold/internal/fsutil"
	"github.com/agentscaffold/agent-scaffold/internal/manifest"
)

var addPromptCmd = &cobra.Command{
	Use:   "add-prompt <id>",
	Short: "Register a reusable prompt and scaffold its canonical file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddPrompt,
}

var addAgentCmd = &cobra.Command{
	Use:   "add-agent <id>",
	Short: "Register an agent persona and scaffold its prompt file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddAgent,
}

var addInstructionCmd = &cobra.Command{
	Use:   "add-instruction <id>",
	Short: "Register an instruction document and scaffold its canonical file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddInstruction,
}

var addSkillCmd = &cobra.Command{
	Use:   "add-skill <id>",
	Short: "Register a skill bundle and scaffold its directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddSkill,
}

var addCommandCmd = &cobra.Command{
	Use:   "add-command <id>",
	Short: "Register a slash command and scaffold its template file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddCommand,
}

func init() {
	addPromptCmd.Flags().String("description", "", "Short description of the prompt")
	addPromptCmd.Flags().String("title", "", "Display title (defaults to the id)")
	addAgentCmd.Flags().String("description", "", "Short description of the agent")
	addInstructionCmd.Flags().String("scope", string(manifest.ScopeRepo), "Instruction scope: repo or path")
	addInstructionCmd.Flags().String("apply-to", "", "Glob the instruction applies to (required for path scope)")
	addSkillCmd.Flags().String("description", "", "Short description of the skill")
	addSkillCmd.Flags().String("name", "", "Display name (defaults to the id)")
	addCommandCmd.Flags().String("description", "", "Short description of the command")
	addCommandCmd.Flags().String("user-input", string(manifest.InputOptional), "User input requirement: required, optional, or none")

	for _, cmd := range []*cobra.Command{addPromptCmd, addAgentCmd, addInstructionCmd, addSkillCmd, addCommandCmd} {
		cmd.Flags().Bool("opencode-only", false, "Disable the artifact for copilot targets")
		cmd.Flags().Bool("copilot-only", false, "Disable the artifact for opencode targets")
		rootCmd.AddCommand(cmd)
	}
}

// loadForAdd validates the id and loads the manifest for mutation.
func loadForAdd(cmd *cobra.Command, id string) (string, *manifest.Manifest, error) {
	if !manifest.IsKebabCase(id) {
		return "", nil, fmt.Errorf("%w: %q (want lowercase kebab-case, e.g. code-reviewer)", manifest.ErrInvalidID, id)
	}
	root, err := projectRoot(cmd)
	if err != nil {
		return "", nil, err
	}
	m, err := manifest.Load(root)
	if err != nil {
		return "", nil, err
	}
	return root, m, nil
}

// scopedTargets builds the per-target overrides implied by the
// --opencode-only and --copilot-only flags: every declared target of
// the other kind gets a disabling override. Returns nil when neither
// flag is set, so the artifact stays enabled everywhere by default.
func scopedTargets(cmd *cobra.Command, m *manifest.Manifest) (map[string]manifest.TargetOverride, error) {
	opencodeOnly := getBoolFlag(cmd, "opencode-only")
	copilotOnly := getBoolFlag(cmd, "copilot-only")
	if opencodeOnly && copilotOnly {
		return nil, fmt.Errorf("--opencode-only and --copilot-only are mutually exclusive")
	}
	if !opencodeOnly && !copilotOnly {
		return nil, nil
	}

	disabled := false
	overrides := make(map[string]manifest.TargetOverride)
	for name, cfg := range m.Targets {
		switch cfg.Kind {
		case manifest.KindOpenCode:
			if copilotOnly {
				overrides[name] = manifest.NewOpenCodeOverride(manifest.OpenCodeOverride{Enabled: &disabled})
			}
		case manifest.KindCopilot:
			if opencodeOnly {
				overrides[name] = manifest.NewCopilotOverride(manifest.CopilotOverride{Enabled: &disabled})
			}
		}
	}
	if len(overrides) == 0 {
		return nil, nil
	}
	return overrides, nil
}

// scaffoldFile writes a canonical file under root unless one exists.
func scaffoldFile(root, rel, content string) error {
	abs := filepath.Join(root, filepath.FromSlash(rel))
	if fsutil.PathExists(abs) {
		return nil
	}
	return fsutil.WriteText(abs, []byte(content))
}

// reportAdded prints the standard confirmation for an add command.
func reportAdded(cmd *cobra.Command, kind, id, rel string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styleSuccess.Render("Added ")+kind+" "+stylePrimary.Render(id))
	fmt.Fprintln(out, styleMuted.Render("  canonical: ")+rel)
	fmt.Fprintln(out, styleMuted.Render("  run 'agent-scaffold sync' to project it"))
}

func runAddPrompt(cmd *cobra.Command, args []string) error {
	id := args[0]
	root, m, err := loadForAdd(cmd, id)
	if err != nil {
		return err
	}
	for _, p := range m.Artifacts.Prompts {
		if p.ID == id {
			return fmt.Errorf("%w: prompt %q", manifest.ErrDuplicateID, id)
		}
	}

	title := getStringFlag(cmd, "title")
	if title == "" {
		title = titleize(id)
	}
	targets, err := scopedTargets(cmd, m)
	if err != nil {
		return err
	}
	rel := m.Paths.PromptsDir + "/" + id + ".md"
	body := fmt.Sprintf("# %s\n\nDescribe what this prompt asks the assistant to do.\n", title)
	if err := scaffoldFile(root, rel, body); err != nil {
		return err
	}

	m.Artifacts.Prompts = append(m.Artifacts.Prompts, manifest.PromptArtifact{
		ID:            id,
		Title:         title,
		CanonicalFile: rel,
		Description:   getStringFlag(cmd, "description"),
		Targets:       targets,
	})
	if _, err := manifest.Save(root, m); err != nil {
		return err
	}
	reportAdded(cmd, "prompt", id, rel)
	return nil
}

func runAddAgent(cmd *cobra.Command, args []string) error {
	id := args[0]
	root, m, err := loadForAdd(cmd, id)
	if err != nil {
		return err
	}
	for _, a := range m.Artifacts.Agents {
		if a.ID == id {
			return fmt.Errorf("%w: agent %q", manifest.ErrDuplicateID, id)
		}
	}

	desc := getStringFlag(cmd, "description")
	if desc == "" {
		desc = fmt.Sprintf("%s agent", titleize(id))
	}
	targets, err := scopedTargets(cmd, m)
	if err != nil {
		return err
	}
	rel := m.Paths.AgentsDir + "/" + id + ".md"
	body := fmt.Sprintf("# %s\n\nSystem prompt for the %s agent.\n", titleize(id), id)
	if err := scaffoldFile(root, rel, body); err != nil {
		return err
	}

	m.Artifacts.Agents = append(m.Artifacts.Agents, manifest.AgentArtifact{
		ID:          id,
		Description: desc,
		PromptFile:  rel,
		Targets:     targets,
	})
	if _, err := manifest.Save(root, m); err != nil {
		return err
	}
	reportAdded(cmd, "agent", id, rel)
	return nil
}

func runAddInstruction(cmd *cobra.Command, args []string) error {
	id := args[0]
	root, m, err := loadForAdd(cmd, id)
	if err != nil {
		return err
	}
	for _, ins := range m.Artifacts.Instructions {
		if ins.ID == id {
			return fmt.Errorf("%w: instruction %q", manifest.ErrDuplicateID, id)
		}
	}

	scope := manifest.InstructionScope(getStringFlag(cmd, "scope"))
	if !scope.IsValid() {
		return fmt.Errorf("invalid scope %q: want repo or path", scope)
	}
	applyTo := getStringFlag(cmd, "apply-to")
	if scope == manifest.ScopePath && applyTo == "" {
		return fmt.Errorf("path-scoped instructions require --apply-to")
	}
	targets, err := scopedTargets(cmd, m)
	if err != nil {
		return err
	}

	rel := m.Paths.InstructionsDir + "/" + id + ".md"
	body := fmt.Sprintf("# %s\n\nGuidelines the assistant should follow.\n", titleize(id))
	if err := scaffoldFile(root, rel, body); err != nil {
		return err
	}

	m.Artifacts.Instructions = append(m.Artifacts.Instructions, manifest.InstructionArtifact{
		ID:            id,
		Scope:         scope,
		CanonicalFile: rel,
		ApplyTo:       applyTo,
		Targets:       targets,
	})
	if _, err := manifest.Save(root, m); err != nil {
		return err
	}
	reportAdded(cmd, "instruction", id, rel)
	return nil
}

func runAddSkill(cmd *cobra.Command, args []string) error {
	id := args[0]
	root, m, err := loadForAdd(cmd, id)
	if err != nil {
		return err
	}
	for _, s := range m.Artifacts.Skills {
		if s.ID == id {
			return fmt.Errorf("%w: skill %q", manifest.ErrDuplicateID, id)
		}
	}

	desc := getStringFlag(cmd, "description")
	if desc == "" {
		desc = fmt.Sprintf("%s skill", id)
	}
	name := getStringFlag(cmd, "name")
	if name == "" {
		name = titleize(id)
	}
	targets, err := scopedTargets(cmd, m)
	if err != nil {
		return err
	}
	dir := m.Paths.SkillsDir + "/" + id
	skillFile := "SKILL.md"
	body := fmt.Sprintf("# %s\n\nDescribe the capability this skill provides and how to use it.\n", name)
	if err := scaffoldFile(root, dir+"/"+skillFile, body); err != nil {
		return err
	}

	m.Artifacts.Skills = append(m.Artifacts.Skills, manifest.SkillArtifact{
		ID:           id,
		CanonicalDir: dir,
		SkillFile:    skillFile,
		Name:         name,
		Description:  desc,
		Targets:      targets,
	})
	if _, err := manifest.Save(root, m); err != nil {
		return err
	}
	reportAdded(cmd, "skill", id, dir+"/"+skillFile)
	return nil
}

func runAddCommand(cmd *cobra.Command, args []string) error {
	id := args[0]
	root, m, err := loadForAdd(cmd, id)
	if err != nil {
		return err
	}
	for _, c := range m.Artifacts.Commands {
		if c.ID == id {
			return fmt.Errorf("%w: command %q", manifest.ErrDuplicateID, id)
		}
	}

	userInput := manifest.UserInput(getStringFlag(cmd, "user-input"))
	if !userInput.IsValid() {
		return fmt.Errorf("invalid user input %q: want required, optional, or none", userInput)
	}
	targets, err := scopedTargets(cmd, m)
	if err != nil {
		return err
	}

	rel := m.Paths.CommandsDir + "/" + id + ".md"
	body := fmt.Sprintf("Run the %s command.\n\n$ARGUMENTS\n", id)
	if err := scaffoldFile(root, rel, body); err != nil {
		return err
	}

	m.Artifacts.Commands = append(m.Artifacts.Commands, manifest.CommandArtifact{
		ID:            id,
		CanonicalFile: rel,
		Description:   getStringFlag(cmd, "description"),
		UserInput:     userInput,
		Targets:       targets,
	})
	if _, err := manifest.Save(root, m); err != nil {
		return err
	}
	reportAdded(cmd, "command", id, rel)
	return nil
}

// titleize turns a kebab-case id into a display title.
func titleize(id string) string {
	words := strings.ReplaceAll(id, "-", " ")
	return cases.Title(language.English).String(words)
}
