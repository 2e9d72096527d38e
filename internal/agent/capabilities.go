package agent

// Capabilities is the static feature matrix for one agent.
type Capabilities struct {
	// HasSandbox is true when the agent executes commands in a restricted sandbox.
	HasSandbox bool `json:"hasSandbox"`

	// SupportsMultiFileRules is true when the agent reads a directory of rule
	// documents instead of one consolidated file.
	SupportsMultiFileRules bool `json:"supportsMultiFileRules"`

	// SupportsSlashCommands is true when the agent supports /command invocation.
	SupportsSlashCommands bool `json:"supportsSlashCommands"`

	// SupportsAgentsMd is true when the agent reads the cross-agent AGENTS.md file.
	SupportsAgentsMd bool `json:"supportsAgentsMd"`
}

var capabilities = map[Agent]Capabilities{
	Claude:   {HasSandbox: true, SupportsMultiFileRules: true, SupportsSlashCommands: true},
	Cursor:   {SupportsMultiFileRules: true, SupportsAgentsMd: true},
	Factory:  {HasSandbox: true, SupportsMultiFileRules: true, SupportsSlashCommands: true, SupportsAgentsMd: true},
	Copilot:  {SupportsAgentsMd: true},
	Windsurf: {SupportsMultiFileRules: true},
	Cline:    {SupportsMultiFileRules: true},
	Aider:    {SupportsMultiFileRules: true},
	AgentsMd: {SupportsMultiFileRules: true, SupportsAgentsMd: true},
}

// CapabilitiesFor returns the capability set of a. Unknown agents get the
// zero value.
func CapabilitiesFor(a Agent) Capabilities {
	return capabilities[a]
}

// Format is the output-format class of an agent.
type Format string

const (
	// FormatMultiFile stores each rule as its own document in a rules directory.
	FormatMultiFile Format = "multi-file"
	// FormatSingleFile consolidates every rule into one instructions file.
	FormatSingleFile Format = "single-file"
	// FormatAgentsMd stores rules under StandardRulesDir, linked from AGENTS.md.
	FormatAgentsMd Format = "agents-md"
)

// StandardRulesDir is where the AGENTS.md convention keeps rule documents,
// independent of any agent-specific directory.
const StandardRulesDir = ".plaited/rules"

// Profile describes where an agent keeps its rules.
type Profile struct {
	// RulesPath is the project-relative rules location.
	RulesPath string `json:"rulesPath"`
	// Format is the output-format class.
	Format Format `json:"format"`
}

// profiles maps agents to their project-relative rules location.
var profiles = map[Agent]Profile{
	Claude:   {RulesPath: ".claude/rules", Format: FormatMultiFile},
	Cursor:   {RulesPath: ".cursor/rules", Format: FormatMultiFile},
	Factory:  {RulesPath: ".factory/rules", Format: FormatMultiFile},
	Copilot:  {RulesPath: ".github/copilot-instructions.md", Format: FormatSingleFile},
	Windsurf: {RulesPath: ".windsurf/rules", Format: FormatMultiFile},
	Cline:    {RulesPath: ".clinerules", Format: FormatMultiFile},
	Aider:    {RulesPath: ".", Format: FormatMultiFile},
	AgentsMd: {RulesPath: StandardRulesDir, Format: FormatAgentsMd},
}

// ProfileFor returns the rules profile of a. Unknown agents get the zero value.
func ProfileFor(a Agent) Profile {
	return profiles[a]
}
