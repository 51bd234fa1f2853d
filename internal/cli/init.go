package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/agentscaffold/agent-scaffold/internal/fsutil"
	"github.com/agentscaffold/agent-scaffold/internal/manifest"
)

const sampleInstructionID = "repo-default"

const sampleInstruction = `# Repository guidelines

Describe the conventions every assistant should follow when working in
this repository: build commands, code style, review expectations.
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the .agents/ manifest and canonical directories",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().String("name", "", "Project name (defaults to the root directory name)")
	initCmd.Flags().Bool("force", false, "Overwrite an existing manifest")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}

	if path, ok := manifest.FindPath(root); ok && !getBoolFlag(cmd, "force") {
		return fmt.Errorf("manifest already exists at %s (use --force to overwrite)", path)
	}

	name := getStringFlag(cmd, "name")
	if name == "" {
		name = filepath.Base(root)
		if isatty.IsTerminal(os.Stdin.Fd()) {
			input := huh.NewInput().
				Title("Project name").
				Placeholder(name).
				Value(&name)
			if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
				return fmt.Errorf("read project name: %w", err)
			}
			if name == "" {
				name = filepath.Base(root)
			}
		}
	}

	m := manifest.CreateDefault(name)

	for _, dir := range []string{
		m.Paths.PromptsDir,
		m.Paths.CommandsDir,
		m.Paths.AgentsDir,
		m.Paths.InstructionsDir,
		m.Paths.SkillsDir,
	} {
		if err := fsutil.EnsureDir(filepath.Join(root, filepath.FromSlash(dir))); err != nil {
			return err
		}
	}

	samplePath := filepath.Join(root, filepath.FromSlash(m.Paths.InstructionsDir), sampleInstructionID+".md")
	if err := fsutil.WriteText(samplePath, []byte(sampleInstruction)); err != nil {
		return err
	}
	m.Artifacts.Instructions = append(m.Artifacts.Instructions, manifest.InstructionArtifact{
		ID:            sampleInstructionID,
		Scope:         manifest.ScopeRepo,
		CanonicalFile: m.Paths.InstructionsDir + "/" + sampleInstructionID + ".md",
	})

	path, err := manifest.Save(root, m)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styleSuccess.Render("Initialized ")+stylePrimary.Render(name))
	fmt.Fprintln(out, styleMuted.Render("  manifest: ")+relOrSelf(root, path))
	fmt.Fprintln(out, styleMuted.Render("  sample:   ")+relOrSelf(root, samplePath))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  agent-scaffold add-agent <id>")
	fmt.Fprintln(out, "  agent-scaffold sync")
	return nil
}

// relOrSelf shows path relative to root when possible.
func relOrSelf(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
