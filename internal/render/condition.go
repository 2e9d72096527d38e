package render

import (
	"strings"

	"github.com/thoreinstein/airules/internal/agent"
)

// Condition names understood by Evaluate.
const (
	CondDevelopmentSkills      = "development-skills"
	CondHasSandbox             = "has-sandbox"
	CondSupportsMultiFileRules = "supports-multi-file-rules"
	CondSupportsSlashCommands  = "supports-slash-commands"
	CondSupportsAgentsMd       = "supports-agents-md"

	// agentPrefix introduces an agent identity condition, e.g. "agent:cursor".
	agentPrefix = "agent:"
)

// Evaluate reports whether cond holds under c. Names must match exactly;
// anything unrecognized is false.
func Evaluate(cond string, c Context) bool {
	switch cond {
	case CondDevelopmentSkills:
		return c.HasDevelopmentSkills
	case CondHasSandbox:
		return c.Capabilities.HasSandbox
	case CondSupportsMultiFileRules:
		return c.Capabilities.SupportsMultiFileRules
	case CondSupportsSlashCommands:
		return c.Capabilities.SupportsSlashCommands
	case CondSupportsAgentsMd:
		return c.Capabilities.SupportsAgentsMd
	}

	if name, ok := strings.CutPrefix(cond, agentPrefix); ok {
		return name == string(c.Agent)
	}
	return false
}

// KnownCondition reports whether Evaluate recognizes cond, either as a
// capability name or as agent:<name> for a supported agent.
func KnownCondition(cond string) bool {
	switch cond {
	case CondDevelopmentSkills, CondHasSandbox, CondSupportsMultiFileRules,
		CondSupportsSlashCommands, CondSupportsAgentsMd:
		return true
	}
	name, ok := strings.CutPrefix(cond, agentPrefix)
	return ok && agent.Valid(name)
}
