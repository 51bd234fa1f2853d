package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentscaffold/agent-scaffold/internal/fsutil"
	"github.com/agentscaffold/agent-scaffold/internal/manifest"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the manifest and its canonical sources",
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// check is one doctor diagnostic: a name plus the problems it found.
type check struct {
	name     string
	problems []string
}

func runDoctor(cmd *cobra.Command, args []string) error {
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	existsCheck := check{name: "manifest exists"}
	path, ok := manifest.FindPath(root)
	if !ok {
		existsCheck.problems = append(existsCheck.problems,
			"no manifest found, run 'agent-scaffold init'")
		reportChecks(cmd, []check{existsCheck})
		return fmt.Errorf("1 check failed")
	}
	fmt.Fprintln(out, styleMuted.Render("Checking ")+relOrSelf(root, path))

	m, err := manifest.LoadRaw(root)
	if err != nil {
		existsCheck.problems = append(existsCheck.problems, err.Error())
		reportChecks(cmd, []check{existsCheck})
		return fmt.Errorf("1 check failed")
	}

	checks := []check{
		existsCheck,
		validCheck(m),
		idsUniqueCheck(m),
		idsKebabCheck(m),
		pathScopeCheck(m),
		canonicalFilesCheck(root, m),
	}

	failed := reportChecks(cmd, checks)
	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	fmt.Fprintln(out, styleSuccess.Render("All checks passed"))
	return nil
}

// reportChecks prints each check's verdict and returns the fail count.
func reportChecks(cmd *cobra.Command, checks []check) int {
	out := cmd.OutOrStdout()
	failed := 0
	for _, c := range checks {
		if len(c.problems) == 0 {
			fmt.Fprintln(out, styleSuccess.Render("PASS ")+c.name)
			continue
		}
		failed++
		fmt.Fprintln(out, styleError.Render("FAIL ")+c.name)
		for _, p := range c.problems {
			fmt.Fprintln(out, styleMuted.Render("     - ")+p)
		}
	}
	return failed
}

func validCheck(m *manifest.Manifest) check {
	c := check{name: "manifest validates"}
	if err := manifest.Validate(m); err != nil {
		c.problems = append(c.problems, err.Error())
	}
	return c
}

func idsUniqueCheck(m *manifest.Manifest) check {
	// Ids are scoped to their artifact kind; a prompt and an agent may
	// share one.
	c := check{name: "artifact ids are unique within their kind"}
	seen := map[string]map[string]bool{}
	for kind, id := range allArtifactIDs(m) {
		if seen[kind] == nil {
			seen[kind] = map[string]bool{}
		}
		if seen[kind][id] {
			c.problems = append(c.problems, fmt.Sprintf("%s %q declared more than once", kind, id))
			continue
		}
		seen[kind][id] = true
	}
	return c
}

func idsKebabCheck(m *manifest.Manifest) check {
	c := check{name: "artifact ids are kebab-case"}
	for kind, id := range allArtifactIDs(m) {
		if !manifest.IsKebabCase(id) {
			c.problems = append(c.problems, fmt.Sprintf("%s %q", kind, id))
		}
	}
	return c
}

func pathScopeCheck(m *manifest.Manifest) check {
	c := check{name: "path-scoped instructions declare applyTo"}
	for _, ins := range m.Artifacts.Instructions {
		if ins.Scope == manifest.ScopePath && ins.ApplyTo == "" {
			c.problems = append(c.problems, fmt.Sprintf("instruction %q", ins.ID))
		}
	}
	return c
}

func canonicalFilesCheck(root string, m *manifest.Manifest) check {
	c := check{name: "canonical files exist"}
	missing := func(kind, id, rel string) {
		c.problems = append(c.problems, fmt.Sprintf("%s %q: %s", kind, id, rel))
	}
	exists := func(rel string) bool {
		return fsutil.PathExists(filepath.Join(root, filepath.FromSlash(rel)))
	}

	for _, p := range m.Artifacts.Prompts {
		if !exists(p.CanonicalFile) {
			missing("prompt", p.ID, p.CanonicalFile)
		}
	}
	for _, a := range m.Artifacts.Agents {
		if a.PromptFile != "" && !exists(a.PromptFile) {
			missing("agent", a.ID, a.PromptFile)
		}
	}
	for _, ins := range m.Artifacts.Instructions {
		if !exists(ins.CanonicalFile) {
			missing("instruction", ins.ID, ins.CanonicalFile)
		}
	}
	for _, s := range m.Artifacts.Skills {
		rel := s.CanonicalDir + "/" + s.SkillFile
		if !exists(rel) {
			missing("skill", s.ID, rel)
		}
	}
	for _, cmd := range m.Artifacts.Commands {
		if !exists(cmd.CanonicalFile) {
			missing("command", cmd.ID, cmd.CanonicalFile)
		}
	}
	return c
}

// allArtifactIDs yields (kind, id) for every declared artifact, in
// declaration order within each kind.
func allArtifactIDs(m *manifest.Manifest) func(yield func(string, string) bool) {
	return func(yield func(string, string) bool) {
		for _, p := range m.Artifacts.Prompts {
			if !yield("prompt", p.ID) {
				return
			}
		}
		for _, a := range m.Artifacts.Agents {
			if !yield("agent", a.ID) {
				return
			}
		}
		for _, ins := range m.Artifacts.Instructions {
			if !yield("instruction", ins.ID) {
				return
			}
		}
		for _, s := range m.Artifacts.Skills {
			if !yield("skill", s.ID) {
				return
			}
		}
		for _, c := range m.Artifacts.Commands {
			if !yield("command", c.ID) {
				return
			}
		}
	}
}
