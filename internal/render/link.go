package render

import "github.com/thoreinstein/airules/internal/agent"

// linkDirs holds the dot-directory of agents that reference rules by plain
// relative path.
var linkDirs = map[agent.Agent]string{
	agent.Cursor:   ".cursor",
	agent.Factory:  ".factory",
	agent.Windsurf: ".windsurf",
}

// Link returns how c.Agent should reference the rule ruleID from inside
// another rule document.
func Link(ruleID string, c Context) string {
	switch c.Agent {
	case agent.Claude:
		return "@" + c.RulesPath + "/" + ruleID + ".md"
	case agent.AgentsMd:
		return agent.StandardRulesDir + "/" + ruleID + ".md"
	case agent.Copilot:
		// Single consolidated file: there is no document to point at.
		return `See "` + ruleID + `" section`
	}

	if dir, ok := linkDirs[c.Agent]; ok {
		return dir + "/rules/" + ruleID + ".md"
	}
	return ruleID + ".md"
}
