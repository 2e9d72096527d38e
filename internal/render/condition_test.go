package render

import (
	"testing"

	"github.com/thoreinstein/airules/internal/agent"
)

func TestEvaluate(t *testing.T) {
	claude := NewContext(agent.Claude, true, "")
	cursor := NewContext(agent.Cursor, false, "")

	tests := []struct {
		name string
		cond string
		ctx  Context
		want bool
	}{
		{"development skills present", "development-skills", claude, true},
		{"development skills absent", "development-skills", cursor, false},
		{"sandbox on claude", "has-sandbox", claude, true},
		{"sandbox on cursor", "has-sandbox", cursor, false},
		{"multi-file rules", "supports-multi-file-rules", cursor, true},
		{"slash commands on claude", "supports-slash-commands", claude, true},
		{"slash commands on cursor", "supports-slash-commands", cursor, false},
		{"agents-md on cursor", "supports-agents-md", cursor, true},
		{"agents-md on claude", "supports-agents-md", claude, false},
		{"agent match", "agent:claude", claude, true},
		{"agent mismatch", "agent:cursor", claude, false},
		{"agent match is case sensitive", "agent:Claude", claude, false},
		{"agent prefix without name", "agent:", claude, false},
		{"no partial capability match", "has-sandbox-extra", claude, false},
		{"no partial prefix match", "has-sand", claude, false},
		{"unknown condition", "nonsense", claude, false},
		{"empty condition", "", claude, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.cond, tt.ctx); got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.cond, got, tt.want)
			}
		})
	}
}

func TestNewContext(t *testing.T) {
	c := NewContext(agent.Factory, true, "")
	if c.RulesPath != ".factory/rules" {
		t.Errorf("RulesPath = %q, want default profile path", c.RulesPath)
	}
	if !c.Capabilities.HasSandbox {
		t.Error("factory should have the sandbox capability")
	}

	c = NewContext(agent.Claude, false, "custom/rules")
	if c.RulesPath != "custom/rules" {
		t.Errorf("RulesPath = %q, want override", c.RulesPath)
	}
}

func TestKnownCondition(t *testing.T) {
	tests := []struct {
		cond string
		want bool
	}{
		{"has-sandbox", true},
		{"development-skills", true},
		{"supports-agents-md", true},
		{"agent:cursor", true},
		{"agent:agents-md", true},
		{"agent:vim", false},
		{"agent:", false},
		{"Has-Sandbox", false},
		{"sandbox", false},
	}
	for _, tt := range tests {
		if got := KnownCondition(tt.cond); got != tt.want {
			t.Errorf("KnownCondition(%q) = %v, want %v", tt.cond, got, tt.want)
		}
	}
}
