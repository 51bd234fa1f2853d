package manifest

// TargetKind discriminates the target configuration variants.
type TargetKind string

// Supported target kinds.
const (
	KindOpenCode TargetKind = "opencode"
	KindCopilot  TargetKind = "copilot"
)

// InstructionScope says where an instruction applies.
type InstructionScope string

// Instruction scopes.
const (
	ScopeRepo InstructionScope = "repo"
	ScopePath InstructionScope = "path"
)

// IsValid reports whether the scope is a recognized value.
func (s InstructionScope) IsValid() bool {
	return s == ScopeRepo || s == ScopePath
}

// UserInput says whether a command expects input from the user.
type UserInput string

// User input requirements for commands.
const (
	InputRequired UserInput = "required"
	InputOptional UserInput = "optional"
	InputNone     UserInput = "none"
)

// IsValid reports whether the user input value is recognized.
func (u UserInput) IsValid() bool {
	return u == InputRequired || u == InputOptional || u == InputNone
}

// Manifest is the root aggregate, loaded fresh for each command
// invocation and saved back as a whole document.
type Manifest struct {
	SchemaVersion int                     `yaml:"schemaVersion"`
	Project       ProjectConfig           `yaml:"project"`
	Paths         PathsConfig             `yaml:"paths"`
	Targets       map[string]TargetConfig `yaml:"targets"`
	Artifacts     ArtifactsConfig         `yaml:"artifacts"`
}

// ProjectConfig carries project-level metadata.
type ProjectConfig struct {
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description,omitempty"`
	DefaultTargets []string `yaml:"defaultTargets,omitempty"`
}

// PathsConfig names the canonical directory for each artifact kind.
type PathsConfig struct {
	PromptsDir      string `yaml:"promptsDir"`
	CommandsDir     string `yaml:"commandsDir"`
	AgentsDir       string `yaml:"agentsDir"`
	InstructionsDir string `yaml:"instructionsDir"`
	SkillsDir       string `yaml:"skillsDir"`
}

// ArtifactsConfig holds the five ordered artifact collections.
type ArtifactsConfig struct {
	Prompts      []PromptArtifact      `yaml:"prompts,omitempty"`
	Agents       []AgentArtifact       `yaml:"agents,omitempty"`
	Instructions []InstructionArtifact `yaml:"instructions,omitempty"`
	Skills       []SkillArtifact       `yaml:"skills,omitempty"`
	Commands     []CommandArtifact     `yaml:"commands,omitempty"`
}

// PromptArtifact is a reusable prompt, emitted as a prompt file by
// Copilot targets that declare a prompts directory.
type PromptArtifact struct {
	ID            string                    `yaml:"id"`
	Title         string                    `yaml:"title"`
	CanonicalFile string                    `yaml:"canonicalFile"`
	Description   string                    `yaml:"description,omitempty"`
	DefaultAgent  string                    `yaml:"defaultAgent,omitempty"`
	DefaultModel  string                    `yaml:"defaultModel,omitempty"`
	Tools         []string                  `yaml:"tools,omitempty"`
	Targets       map[string]TargetOverride `yaml:"targets,omitempty"`
}

// AgentArtifact describes an assistant persona. The prompt lives either
// in a canonical file or inline in the manifest.
type AgentArtifact struct {
	ID          string                    `yaml:"id"`
	Description string                    `yaml:"description"`
	PromptFile  string                    `yaml:"promptFile,omitempty"`
	Prompt      string                    `yaml:"prompt,omitempty"`
	Targets     map[string]TargetOverride `yaml:"targets,omitempty"`
}

// InstructionArtifact is a repo-wide or path-scoped instruction file.
// Path-scoped instructions must carry an applyTo glob.
type InstructionArtifact struct {
	ID            string                    `yaml:"id"`
	Scope         InstructionScope          `yaml:"scope"`
	CanonicalFile string                    `yaml:"canonicalFile"`
	ApplyTo       string                    `yaml:"applyTo,omitempty"`
	Targets       map[string]TargetOverride `yaml:"targets,omitempty"`
}

// SkillArtifact is a skill bundle rooted at a canonical directory with
// a SKILL file and optional assets.
type SkillArtifact struct {
	ID           string                    `yaml:"id"`
	CanonicalDir string                    `yaml:"canonicalDir"`
	SkillFile    string                    `yaml:"skillFile"`
	Name         string                    `yaml:"name,omitempty"`
	Description  string                    `yaml:"description,omitempty"`
	Assets       []string                  `yaml:"assets,omitempty"`
	Targets      map[string]TargetOverride `yaml:"targets,omitempty"`
}

// CommandArtifact is an OpenCode slash command.
type CommandArtifact struct {
	ID            string                    `yaml:"id"`
	CanonicalFile string                    `yaml:"canonicalFile"`
	Description   string                    `yaml:"description"`
	UserInput     UserInput                 `yaml:"userInput"`
	Targets       map[string]TargetOverride `yaml:"targets,omitempty"`
}
