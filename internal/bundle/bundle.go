// Package bundle renders a selection of rule templates for one agent and
// packages the results, with agent metadata, into a single response.
package bundle

import (
	"context"
	"log/slog"

	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/catalog"
	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/logging"
	"github.com/thoreinstein/airules/internal/render"
)

// Document is one rendered rule.
type Document struct {
	Filename    string `json:"filename"`
	Content     string `json:"content"`
	Description string `json:"description"`
}

// Bundle is the complete output of one invocation.
type Bundle struct {
	Agent            agent.Agent         `json:"agent"`
	RulesPath        string              `json:"rulesPath"`
	Format           agent.Format        `json:"format"`
	SupportsAgentsMd bool                `json:"supportsAgentsMd"`
	AgentsMdContent  string              `json:"agentsMdContent,omitempty"`
	Templates        map[string]Document `json:"templates"`
}

// Options controls which rules are assembled.
type Options struct {
	// Rules restricts output to these rule ids. Empty means every rule.
	// Ids that are not in the catalog are ignored.
	Rules []string
}

// Assemble renders the selected templates from cat under rc.
// Catalog failures are returned; template content never causes an error.
func Assemble(ctx context.Context, cat catalog.Catalog, rc render.Context, opts Options) (*Bundle, error) {
	logger := logging.FromContext(ctx).With("agent", string(rc.Agent))

	ids, err := cat.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing rule templates")
	}
	ids = selectRules(ids, opts.Rules)

	b := &Bundle{
		Agent:            rc.Agent,
		RulesPath:        rc.RulesPath,
		Format:           agent.ProfileFor(rc.Agent).Format,
		SupportsAgentsMd: rc.Capabilities.SupportsAgentsMd,
		Templates:        make(map[string]Document, len(ids)),
	}

	for _, id := range ids {
		tmpl, err := cat.Get(ctx, id)
		if err != nil {
			return nil, errors.Wrapf(err, "loading rule %q", id)
		}

		content := render.Render(tmpl.Content, rc)
		desc := tmpl.Description
		if desc == "" {
			desc = render.ExtractDescription(content)
		}

		b.Templates[id] = Document{
			Filename:    tmpl.Filename,
			Content:     content,
			Description: desc,
		}
		logger.Log(ctx, logging.LevelTrace, "rendered rule",
			"rule", id,
			"in_bytes", len(tmpl.Content),
			"out_bytes", len(content))
	}

	if b.Format == agent.FormatAgentsMd {
		b.AgentsMdContent = Manifest(b.Templates)
	}

	logger.Debug("assembled rule bundle",
		slog.Int("rules", len(b.Templates)),
		slog.String("format", string(b.Format)))

	return b, nil
}

// selectRules keeps the ids present in filter, preserving the order of ids.
func selectRules(ids, filter []string) []string {
	if len(filter) == 0 {
		return ids
	}
	wanted := make(map[string]struct{}, len(filter))
	for _, f := range filter {
		wanted[f] = struct{}{}
	}
	selected := make([]string, 0, len(filter))
	for _, id := range ids {
		if _, ok := wanted[id]; ok {
			selected = append(selected, id)
		}
	}
	return selected
}
