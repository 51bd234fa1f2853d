// Command agent-scaffold projects a single .agents/ manifest into
// per-assistant configuration files.
package main

import (
	"os"

	"github.com/agentscaffold/agent-scaffold/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
