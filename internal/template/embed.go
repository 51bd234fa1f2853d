package template

import (
	"embed"
	"io/fs"
)

//go:embed templates
var templateFS embed.FS

// Files returns the embedded template set rooted at the templates
// directory, so template names are addressed as "copilot/agent.md.tmpl".
func Files() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		// The templates directory is embedded at build time; failure
		// here means a broken build.
		panic(err)
	}
	return sub
}
