// Package cli wires the agent-scaffold commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentscaffold/agent-scaffold/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "agent-scaffold",
	Short: "Single-manifest scaffolding for AI assistant configurations",
	Long: `agent-scaffold maintains one declarative manifest of AI assistant
configuration artifacts (prompts, agents, instructions, skills, and
commands) under .agents/, and projects it into target-specific file
layouts for OpenCode and GitHub Copilot.

Quick start:
  agent-scaffold init
  agent-scaffold add-agent reviewer
  agent-scaffold sync`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render("Error: ")+err.Error())
		return err
	}
	return nil
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("agent-scaffold %s\n", version.GetVersion()))
	rootCmd.PersistentFlags().StringP("root", "r", ".", "Project root directory")
}

// projectRoot resolves the --root flag to an absolute directory path.
func projectRoot(cmd *cobra.Command) (string, error) {
	root, err := cmd.Flags().GetString("root")
	if err != nil || root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve project root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("project root %q does not exist", root)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("project root %q is not a directory", root)
	}
	return abs, nil
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}
