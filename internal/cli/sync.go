package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentscaffold/agent-scaffold/internal/manifest"
	"github.com/agentscaffold/agent-scaffold/internal/reconcile"
	"github.com/agentscaffold/agent-scaffold/internal/template"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Project the manifest into target-specific files",
	Long: `sync regenerates every target's files from the canonical sources,
records what it wrote, and with --prune removes files a previous run
produced that this run no longer does.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringSliceP("target", "t", nil, "Sync only the named targets (repeatable)")
	syncCmd.Flags().Bool("dry-run", false, "Report what would change without writing")
	syncCmd.Flags().Bool("prune", false, "Remove files from previous runs that are no longer produced")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}
	m, err := manifest.Load(root)
	if err != nil {
		return err
	}

	targets, err := cmd.Flags().GetStringSlice("target")
	if err != nil {
		return err
	}
	dryRun := getBoolFlag(cmd, "dry-run")

	report, err := reconcile.Run(m, root, template.Default(), reconcile.Options{
		Targets: targets,
		DryRun:  dryRun,
		Prune:   getBoolFlag(cmd, "prune"),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	createdVerb, removedVerb := "Created", "Removed"
	if dryRun {
		createdVerb, removedVerb = "Would create", "Would remove"
	}
	for _, path := range report.Generated {
		fmt.Fprintln(out, styleSuccess.Render(createdVerb+" ")+path)
	}
	for _, path := range report.Pruned {
		fmt.Fprintln(out, styleWarn.Render(removedVerb+" ")+path)
	}
	for _, name := range report.Skipped {
		fmt.Fprintln(out, styleMuted.Render("Skipped ")+name)
	}

	summary := fmt.Sprintf("%d generated, %d pruned", len(report.Generated), len(report.Pruned))
	if dryRun {
		summary += " (dry run)"
	}
	fmt.Fprintln(out, styleMuted.Render(summary))
	return nil
}
