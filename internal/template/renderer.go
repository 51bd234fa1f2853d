// Package template renders the embedded output templates. The renderer
// is a pure collaborator: generators hand it a template name and a
// flat context and receive text back.
package template

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

// Sentinel errors for template rendering.
var (
	// ErrTemplateNotFound indicates the named template does not exist.
	ErrTemplateNotFound = errors.New("template: not found")

	// ErrRenderFailed indicates template execution failed, typically a
	// missing context key in strict mode.
	ErrRenderFailed = errors.New("template: render failed")
)

// templateFuncMap provides helpers available in all templates.
var templateFuncMap = template.FuncMap{
	// posixPath converts Windows backslash paths to forward slashes.
	"posixPath": func(s string) string {
		return strings.ReplaceAll(s, "\\", "/")
	},
}

// Renderer renders named templates with strict missing-key handling.
type Renderer interface {
	// Render parses the named template and executes it with data.
	Render(name string, data any) ([]byte, error)
}

type renderer struct {
	fsys fs.FS
}

// NewRenderer creates a Renderer backed by the given filesystem. The
// production filesystem comes from go:embed; tests may substitute a
// fstest.MapFS.
func NewRenderer(fsys fs.FS) Renderer {
	return &renderer{fsys: fsys}
}

// Default returns a Renderer over the embedded template set.
func Default() Renderer {
	return NewRenderer(Files())
}

// Render parses and executes a template with missingkey=error.
func (r *renderer) Render(name string, data any) ([]byte, error) {
	content, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	tmpl, err := template.New(name).
		Funcs(templateFuncMap).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("template parse %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}
