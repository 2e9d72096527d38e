package render

import "github.com/thoreinstein/airules/internal/agent"

// Context is the read-only input shared by every render in one invocation.
type Context struct {
	Agent                agent.Agent
	Capabilities         agent.Capabilities
	HasDevelopmentSkills bool
	RulesPath            string
}

// NewContext builds the Context for a. An empty rulesPath falls back to the
// agent's default profile.
func NewContext(a agent.Agent, hasDevelopmentSkills bool, rulesPath string) Context {
	if rulesPath == "" {
		rulesPath = agent.ProfileFor(a).RulesPath
	}
	return Context{
		Agent:                a,
		Capabilities:         agent.CapabilitiesFor(a),
		HasDevelopmentSkills: hasDevelopmentSkills,
		RulesPath:            rulesPath,
	}
}
