package bundle

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/catalog"
	catalogmocks "github.com/thoreinstein/airules/internal/catalog/mocks"
	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/logging"
	"github.com/thoreinstein/airules/internal/render"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	return logging.NewContext(t.Context(), logging.ForTest(t))
}

func TestAssemble_FilterSelectsExactlyRequestedRules(t *testing.T) {
	ctx := testContext(t)
	rc := render.NewContext(agent.Claude, false, "")

	b, err := Assemble(ctx, catalog.NewEmbedded(), rc, Options{Rules: []string{"testing", "bun-apis"}})
	require.NoError(t, err)

	require.Len(t, b.Templates, 2)
	require.Contains(t, b.Templates, "testing")
	require.Contains(t, b.Templates, "bun-apis")
}

func TestAssemble_UnknownFilterEntriesIgnored(t *testing.T) {
	ctx := testContext(t)
	rc := render.NewContext(agent.Cursor, false, "")

	b, err := Assemble(ctx, catalog.NewEmbedded(), rc, Options{Rules: []string{"testing", "does-not-exist"}})
	require.NoError(t, err)
	require.Len(t, b.Templates, 1)
	require.Equal(t, "testing.md", b.Templates["testing"].Filename)

	b, err = Assemble(ctx, catalog.NewEmbedded(), rc, Options{Rules: []string{"nope"}})
	require.NoError(t, err)
	require.Empty(t, b.Templates)
}

func TestAssemble_AllRulesForEveryAgent(t *testing.T) {
	ctx := testContext(t)
	ids, err := catalog.NewEmbedded().List(ctx)
	require.NoError(t, err)
	require.Len(t, ids, 6)

	for _, a := range agent.All() {
		for _, dev := range []bool{true, false} {
			rc := render.NewContext(a, dev, "")
			b, err := Assemble(ctx, catalog.NewEmbedded(), rc, Options{})
			require.NoError(t, err)
			require.Len(t, b.Templates, len(ids), "agent %s", a)

			for id, doc := range b.Templates {
				require.NotContains(t, doc.Content, "{{", "agent %s rule %s", a, id)
				require.NotContains(t, doc.Content, "}}", "agent %s rule %s", a, id)
				require.NotContains(t, doc.Content, "\n\n\n", "agent %s rule %s", a, id)
				require.NotContains(t, doc.Content, "<!--", "agent %s rule %s", a, id)
				require.NotEmpty(t, doc.Description)
				require.Equal(t, doc.Content, render.Render(doc.Content, rc), "re-render changed %s/%s", a, id)
			}
		}
	}
}

func TestAssemble_Metadata(t *testing.T) {
	ctx := testContext(t)

	tests := []struct {
		agent        agent.Agent
		rulesPath    string
		format       agent.Format
		agentsMd     bool
		wantManifest bool
	}{
		{agent.Claude, ".claude/rules", agent.FormatMultiFile, false, false},
		{agent.Cursor, ".cursor/rules", agent.FormatMultiFile, true, false},
		{agent.Copilot, ".github/copilot-instructions.md", agent.FormatSingleFile, true, false},
		{agent.AgentsMd, ".plaited/rules", agent.FormatAgentsMd, true, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.agent), func(t *testing.T) {
			b, err := Assemble(ctx, catalog.NewEmbedded(), render.NewContext(tt.agent, false, ""), Options{})
			require.NoError(t, err)
			require.Equal(t, tt.agent, b.Agent)
			require.Equal(t, tt.rulesPath, b.RulesPath)
			require.Equal(t, tt.format, b.Format)
			require.Equal(t, tt.agentsMd, b.SupportsAgentsMd)
			require.Equal(t, tt.wantManifest, b.AgentsMdContent != "")
		})
	}
}

func TestAssemble_RenderedContentFollowsAgent(t *testing.T) {
	ctx := testContext(t)

	claude, err := Assemble(ctx, catalog.NewEmbedded(), render.NewContext(agent.Claude, true, ""), Options{Rules: []string{"testing"}})
	require.NoError(t, err)
	content := claude.Templates["testing"].Content
	require.Contains(t, content, "Running Tests in the Sandbox")
	require.Contains(t, content, "Run `/validate-tests`")
	require.Contains(t, content, "@.claude/rules/bun-apis.md")
	require.True(t, strings.HasPrefix(content, "# Testing\n"))

	copilot, err := Assemble(ctx, catalog.NewEmbedded(), render.NewContext(agent.Copilot, false, ""), Options{Rules: []string{"testing"}})
	require.NoError(t, err)
	content = copilot.Templates["testing"].Content
	require.NotContains(t, content, "Sandbox")
	require.NotContains(t, content, "## Skills")
	require.Contains(t, content, `See "bun-apis" section`)
}

func TestAssemble_WithMockCatalog(t *testing.T) {
	ctx := testContext(t)
	cat := catalogmocks.NewMockCatalog(t)
	cat.EXPECT().List(mock.Anything).Return([]string{"alpha", "beta"}, nil)
	cat.EXPECT().Get(mock.Anything, "alpha").Return(&catalog.Template{
		ID:       "alpha",
		Filename: "alpha.md",
		Content:  "# Alpha\n\n{{#if agent:windsurf}}Only windsurf.{{/if}}{{^if agent:windsurf}}Everyone else.{{/if}}\n",
	}, nil)
	cat.EXPECT().Get(mock.Anything, "beta").Return(&catalog.Template{
		ID:          "beta",
		Filename:    "beta.md",
		Content:     "# Beta\n\n## Only headings\n",
		Description: "Set in frontmatter",
	}, nil)

	b, err := Assemble(ctx, cat, render.NewContext(agent.Windsurf, false, ""), Options{})
	require.NoError(t, err)
	require.Equal(t, "# Alpha\n\nOnly windsurf.\n", b.Templates["alpha"].Content)
	require.Equal(t, "Only windsurf.", b.Templates["alpha"].Description)
	require.Equal(t, "Set in frontmatter", b.Templates["beta"].Description)
}

func TestAssemble_DescriptionFallback(t *testing.T) {
	ctx := testContext(t)
	cat := catalogmocks.NewMockCatalog(t)
	cat.EXPECT().List(mock.Anything).Return([]string{"bare"}, nil)
	cat.EXPECT().Get(mock.Anything, "bare").Return(&catalog.Template{
		ID:       "bare",
		Filename: "bare.md",
		Content:  "# Bare\n\n## Heading\n\n**Bold**\n",
	}, nil)

	b, err := Assemble(ctx, cat, render.NewContext(agent.Claude, false, ""), Options{})
	require.NoError(t, err)
	require.Equal(t, render.DefaultDescription, b.Templates["bare"].Description)
}

func TestAssemble_LeadingHorizontalRuleDoesNotFailBundle(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	files := map[string]string{
		"good.md": "---\ndescription: Good rule\n---\n# Good\n\nBody.\n",
		"hr.md":   "---\n# Title\n\nA rule starting with a horizontal rule.\n",
		"hr2.md":  "---\nIntro text\n---\n# Rule\n\nBody for {{AGENT_NAME}}.\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}

	b, err := Assemble(ctx, catalog.NewDir(dir, logging.ForTest(t)), render.NewContext(agent.Claude, false, ""), Options{})
	require.NoError(t, err)
	require.Len(t, b.Templates, 3)

	require.Equal(t, "# Good\n\nBody.\n", b.Templates["good"].Content)
	require.Equal(t, "Good rule", b.Templates["good"].Description)
	require.Equal(t, files["hr.md"], b.Templates["hr"].Content)
	require.Equal(t, "A rule starting with a horizontal rule.", b.Templates["hr"].Description)
	require.Equal(t, "---\nIntro text\n---\n# Rule\n\nBody for claude.\n", b.Templates["hr2"].Content)
	require.Equal(t, "Intro text", b.Templates["hr2"].Description)
}

func TestAssemble_CatalogErrors(t *testing.T) {
	ctx := testContext(t)

	t.Run("list failure", func(t *testing.T) {
		cat := catalogmocks.NewMockCatalog(t)
		cat.EXPECT().List(mock.Anything).Return(nil, catalog.ErrCatalogUnavailable)

		_, err := Assemble(ctx, cat, render.NewContext(agent.Claude, false, ""), Options{})
		require.ErrorIs(t, err, catalog.ErrCatalogUnavailable)
	})

	t.Run("get failure", func(t *testing.T) {
		cat := catalogmocks.NewMockCatalog(t)
		cat.EXPECT().List(mock.Anything).Return([]string{"alpha"}, nil)
		cat.EXPECT().Get(mock.Anything, "alpha").Return(nil, errors.ErrNotFound)

		_, err := Assemble(ctx, cat, render.NewContext(agent.Claude, false, ""), Options{})
		require.ErrorIs(t, err, errors.ErrNotFound)
		require.Contains(t, err.Error(), `"alpha"`)
	})

	t.Run("filtered rules are never fetched", func(t *testing.T) {
		cat := catalogmocks.NewMockCatalog(t)
		cat.EXPECT().List(mock.Anything).Return([]string{"alpha", "beta"}, nil)
		cat.EXPECT().Get(mock.Anything, "beta").Return(&catalog.Template{ID: "beta", Filename: "beta.md", Content: "# Beta\nText\n"}, nil)

		b, err := Assemble(ctx, cat, render.NewContext(agent.Claude, false, ""), Options{Rules: []string{"beta"}})
		require.NoError(t, err)
		require.Len(t, b.Templates, 1)
	})
}

func TestManifest(t *testing.T) {
	got := Manifest(map[string]Document{
		"testing":  {Filename: "testing.md", Description: "Use bun test."},
		"accuracy": {Filename: "accuracy.md", Description: "Verify first."},
	})

	require.True(t, strings.HasPrefix(got, "# AGENTS.md\n"))
	require.Contains(t, got, "- [accuracy](.plaited/rules/accuracy.md): Verify first.\n- [testing](.plaited/rules/testing.md): Use bun test.\n")
	require.True(t, strings.HasSuffix(got, "regenerate\nthem instead of editing the output by hand.\n"))
	require.NotContains(t, got, "\n\n\n")
}
