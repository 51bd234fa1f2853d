package manifest

// Enablement and override resolution. These are pure, total functions:
// absence of data degrades to a permissive default, never an error.

// IsEnabled reports whether an artifact is emitted for the named
// target. An artifact with no override entry for the target defaults
// to enabled.
func IsEnabled(overrides map[string]TargetOverride, target string) bool {
	o, ok := overrides[target]
	if !ok {
		return true
	}
	return o.Enabled()
}

// OverrideFrontmatter returns the front-matter mapping the named
// target contributes for an artifact, or an empty map when no override
// exists or the override carries no front matter.
func OverrideFrontmatter(overrides map[string]TargetOverride, target string) map[string]any {
	o, ok := overrides[target]
	if !ok {
		return map[string]any{}
	}
	return o.Frontmatter()
}

// OpenCodeOverrideFor returns the OpenCode-kind override for the named
// target, if one exists.
func OpenCodeOverrideFor(overrides map[string]TargetOverride, target string) (OpenCodeOverride, bool) {
	o, ok := overrides[target]
	if !ok {
		return OpenCodeOverride{}, false
	}
	return o.OpenCode()
}

// CopilotOverrideFor returns the Copilot-kind override for the named
// target, if one exists.
func CopilotOverrideFor(overrides map[string]TargetOverride, target string) (CopilotOverride, bool) {
	o, ok := overrides[target]
	if !ok {
		return CopilotOverride{}, false
	}
	return o.Copilot()
}
