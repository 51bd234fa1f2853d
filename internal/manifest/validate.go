package manifest

import (
	"fmt"
	"regexp"
)

// kebabCasePattern matches lowercase ids: letters and digits separated
// by single hyphens, no leading or trailing hyphen.
var kebabCasePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// IsKebabCase reports whether id satisfies the artifact id convention.
func IsKebabCase(id string) bool {
	return kebabCasePattern.MatchString(id)
}

// Validate checks the manifest against its structural invariants:
// supported schema version, kebab-case ids unique within each artifact
// kind, valid enum values, and path-scoped instructions carrying an
// applyTo glob. Returns a *ValidationErrors matching ErrInvalid via
// errors.Is, or nil when the manifest is valid.
func Validate(m *Manifest) error {
	var errs []ValidationError

	if m.SchemaVersion != 1 {
		errs = append(errs, ValidationError{
			Field:   "schemaVersion",
			Message: "unsupported schema version, expected 1",
			Value:   m.SchemaVersion,
			Wrapped: ErrInvalid,
		})
	}

	errs = append(errs, validateIDs(&m.Artifacts)...)
	errs = append(errs, validateInstructions(m.Artifacts.Instructions)...)
	errs = append(errs, validateCommands(m.Artifacts.Commands)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// idCollection pairs an artifact kind with its ids, in declaration
// order. An explicit enumeration, so adding an artifact kind forces a
// decision here rather than relying on reflective lookup.
type idCollection struct {
	kind string
	ids  []string
}

func idCollections(a *ArtifactsConfig) []idCollection {
	collect := func(n int, id func(int) string) []string {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = id(i)
		}
		return ids
	}
	return []idCollection{
		{"prompts", collect(len(a.Prompts), func(i int) string { return a.Prompts[i].ID })},
		{"agents", collect(len(a.Agents), func(i int) string { return a.Agents[i].ID })},
		{"instructions", collect(len(a.Instructions), func(i int) string { return a.Instructions[i].ID })},
		{"skills", collect(len(a.Skills), func(i int) string { return a.Skills[i].ID })},
		{"commands", collect(len(a.Commands), func(i int) string { return a.Commands[i].ID })},
	}
}

// validateIDs checks the kebab-case convention and per-kind uniqueness.
func validateIDs(a *ArtifactsConfig) []ValidationError {
	var errs []ValidationError

	for _, coll := range idCollections(a) {
		seen := make(map[string]bool, len(coll.ids))
		for i, id := range coll.ids {
			field := fmt.Sprintf("artifacts.%s[%d].id", coll.kind, i)
			if !IsKebabCase(id) {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: "must be kebab-case (lowercase letters, digits, hyphens)",
					Value:   id,
					Wrapped: ErrInvalidID,
				})
			}
			if seen[id] {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("duplicate id within %s", coll.kind),
					Value:   id,
					Wrapped: ErrDuplicateID,
				})
			}
			seen[id] = true
		}
	}
	return errs
}

func validateInstructions(instructions []InstructionArtifact) []ValidationError {
	var errs []ValidationError
	for i, ins := range instructions {
		if !ins.Scope.IsValid() {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("artifacts.instructions[%d].scope", i),
				Message: "must be repo or path",
				Value:   string(ins.Scope),
				Wrapped: ErrInvalid,
			})
			continue
		}
		if ins.Scope == ScopePath && ins.ApplyTo == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("artifacts.instructions[%d].applyTo", i),
				Message: "path-scoped instruction requires an applyTo glob",
				Value:   ins.ID,
				Wrapped: ErrInvalid,
			})
		}
	}
	return errs
}

func validateCommands(commands []CommandArtifact) []ValidationError {
	var errs []ValidationError
	for i, cmd := range commands {
		if !cmd.UserInput.IsValid() {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("artifacts.commands[%d].userInput", i),
				Message: "must be required, optional, or none",
				Value:   string(cmd.UserInput),
				Wrapped: ErrInvalid,
			})
		}
	}
	return errs
}
