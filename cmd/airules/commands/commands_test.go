package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/airules/internal/config"
	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/logging"
)

func TestAgents_Table(t *testing.T) {
	origJSON, origCfg := agentsJSON, cfg
	defer func() { agentsJSON, cfg = origJSON, origCfg }()
	agentsJSON, cfg = false, nil

	var buf bytes.Buffer
	if err := runAgentsWithWriter(&buf); err != nil {
		t.Fatalf("runAgentsWithWriter() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"AGENT", "RULES PATH",
		".github/copilot-instructions.md",
		"has-sandbox,supports-multi-file-rules,supports-slash-commands",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAgents_JSON(t *testing.T) {
	origJSON, origCfg := agentsJSON, cfg
	defer func() { agentsJSON, cfg = origJSON, origCfg }()
	agentsJSON = true
	cfg = &config.Config{Version: 1, Agents: map[string]config.AgentOverride{
		"cline": {RulesPath: "rules/cline"},
	}}

	var buf bytes.Buffer
	if err := runAgentsWithWriter(&buf); err != nil {
		t.Fatalf("runAgentsWithWriter() error = %v", err)
	}

	var infos []agentInfoJSON
	if err := json.Unmarshal(buf.Bytes(), &infos); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(infos) != 8 {
		t.Fatalf("got %d agents, want 8", len(infos))
	}
	byName := make(map[string]agentInfoJSON, len(infos))
	for _, info := range infos {
		byName[info.Name] = info
	}
	if got := byName["cline"].RulesPath; got != "rules/cline" {
		t.Errorf("cline rulesPath = %q, want override", got)
	}
	if !byName["factory"].Capabilities.HasSandbox {
		t.Error("factory should report has-sandbox")
	}
}

func TestRules_List(t *testing.T) {
	origJSON, origDir := rulesJSON, rulesRulesDir
	defer func() { rulesJSON, rulesRulesDir = origJSON, origDir }()

	dir := t.TempDir()
	files := map[string]string{
		"alpha.md": "# Alpha\n\nFirst rule.\n",
		"beta.md":  "---\ndescription: From frontmatter\n---\n# Beta\n\nIgnored.\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	rulesRulesDir = dir

	rulesJSON = true
	var buf bytes.Buffer
	if err := runRulesWithWriter(t.Context(), &buf); err != nil {
		t.Fatalf("runRulesWithWriter() error = %v", err)
	}
	var infos []ruleInfoJSON
	if err := json.Unmarshal(buf.Bytes(), &infos); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	want := []ruleInfoJSON{
		{ID: "alpha", Filename: "alpha.md", Description: "First rule."},
		{ID: "beta", Filename: "beta.md", Description: "From frontmatter"},
	}
	if len(infos) != len(want) {
		t.Fatalf("got %+v, want %+v", infos, want)
	}
	for i := range want {
		if infos[i] != want[i] {
			t.Errorf("infos[%d] = %+v, want %+v", i, infos[i], want[i])
		}
	}

	rulesJSON = false
	buf.Reset()
	if err := runRulesWithWriter(t.Context(), &buf); err != nil {
		t.Fatalf("runRulesWithWriter() error = %v", err)
	}
	if !strings.Contains(buf.String(), "alpha") || !strings.Contains(buf.String(), "First rule.") {
		t.Errorf("unexpected table:\n%s", buf.String())
	}
}

func TestRules_MissingDir(t *testing.T) {
	origDir := rulesRulesDir
	defer func() { rulesRulesDir = origDir }()
	rulesRulesDir = filepath.Join(t.TempDir(), "nope")

	err := runRulesWithWriter(t.Context(), &bytes.Buffer{})
	if errors.ExitCode(err) != errors.ExitSystem {
		t.Errorf("error = %v, want system error", err)
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"/abs/rules", "/abs/rules"},
		{"./rules", filepath.Join(cwd, "rules")},
		{"src/rules.md", filepath.Join(cwd, "src", "rules.md")},
		{"@plaited/missing", filepath.Join(cwd, "@plaited", "missing")},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := runResolveWithWriter(&buf, tt.in); err != nil {
			t.Fatalf("runResolveWithWriter(%q) error = %v", tt.in, err)
		}
		if got := strings.TrimSpace(buf.String()); got != tt.want {
			t.Errorf("resolve %q = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDetectDevelopmentSkills(t *testing.T) {
	origCfg := cfg
	defer func() { cfg = origCfg }()
	cfg = nil

	without := t.TempDir()
	with := t.TempDir()
	pkg := filepath.Join(with, "node_modules", "@plaited", "development-skills")
	if err := os.MkdirAll(pkg, 0o700); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		mode string
		cwd  string
		want bool
	}{
		{"auto without package", "auto", without, false},
		{"auto with package", "auto", with, true},
		{"empty uses config auto", "", with, true},
		{"forced on", "true", without, true},
		{"forced off", "false", with, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := detectDevelopmentSkills(tt.mode, tt.cwd, logging.NewDiscard())
			if err != nil {
				t.Fatalf("detectDevelopmentSkills() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("detectDevelopmentSkills(%q) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)

	if !strings.HasPrefix(buf.String(), "airules version ") || !strings.Contains(buf.String(), "commit:") {
		t.Errorf("unexpected version output:\n%s", buf.String())
	}
}

func TestGenDoc(t *testing.T) {
	dir := t.TempDir()
	if err := genDocCmd.Flags().Set("dir", dir); err != nil {
		t.Fatal(err)
	}
	genDocCmd.SetErr(&bytes.Buffer{})
	defer genDocCmd.SetErr(nil)

	if err := genDocCmd.RunE(genDocCmd, nil); err != nil {
		t.Fatalf("gen-doc error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "airules_render.md"))
	if err != nil {
		t.Fatalf("expected render page: %v", err)
	}
	if !strings.HasPrefix(string(data), "---\ntitle: \"airules render\"\n") {
		t.Errorf("missing frontmatter:\n%s", data[:min(len(data), 200)])
	}
}
