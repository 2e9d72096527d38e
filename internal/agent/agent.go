// Package agent defines the closed set of coding agents airules renders for,
// together with their static capability flags and rules-storage profile.
package agent

import (
	"slices"
	"strings"

	"github.com/thoreinstein/airules/internal/errors"
)

// Agent identifies a supported AI coding assistant.
type Agent string

// Supported agents.
const (
	Claude   Agent = "claude"
	Cursor   Agent = "cursor"
	Factory  Agent = "factory"
	Copilot  Agent = "copilot"
	Windsurf Agent = "windsurf"
	Cline    Agent = "cline"
	Aider    Agent = "aider"
	AgentsMd Agent = "agents-md"
)

// Default is the agent used when none is selected.
const Default = Claude

// ErrUnknownAgent is returned by Parse for names outside the supported set.
var ErrUnknownAgent = errors.New("unknown agent")

// all lists agents in display order.
var all = []Agent{Claude, Cursor, Factory, Copilot, Windsurf, Cline, Aider, AgentsMd}

// All returns every supported agent in display order.
func All() []Agent {
	return slices.Clone(all)
}

// Names returns the string form of every supported agent.
func Names() []string {
	names := make([]string, len(all))
	for i, a := range all {
		names[i] = string(a)
	}
	return names
}

// Valid reports whether name is a supported agent. Matching is exact.
func Valid(name string) bool {
	return slices.Contains(all, Agent(name))
}

// Parse converts name into an Agent.
// The returned error names the invalid value and the valid set.
func Parse(name string) (Agent, error) {
	if !Valid(name) {
		return "", errors.Wrapf(ErrUnknownAgent, "%q (valid: %s)", name, strings.Join(Names(), ", "))
	}
	return Agent(name), nil
}

func (a Agent) String() string {
	return string(a)
}
