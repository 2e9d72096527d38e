package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/bundle"
	"github.com/thoreinstein/airules/internal/cli/prompt"
	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/logging"
	"github.com/thoreinstein/airules/internal/render"
)

// FormatJSON is the only output format.
const FormatJSON = "json"

var (
	renderAgent       string
	renderFormat      string
	renderRulesDir    string
	renderDevSkills   string
	renderInteractive bool
)

// agentSelector is replaced in tests.
var agentSelector interface {
	SelectAgent([]agent.Agent) (agent.Agent, error)
} = prompt.NewSelector()

func init() {
	renderCmd.Flags().StringVarP(&renderAgent, "agent", "a", "",
		"target agent (default: config default_agent, else claude)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", FormatJSON,
		"output format: json")
	renderCmd.Flags().StringVar(&renderRulesDir, "rules-dir", "",
		"template directory or package specifier (default: built-in rules)")
	renderCmd.Flags().StringVar(&renderDevSkills, "dev-skills", "",
		"render development-skills blocks: auto, true, false (default: config, else auto)")
	renderCmd.Flags().BoolVarP(&renderInteractive, "interactive", "i", false,
		"choose the agent interactively")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [rule...]",
	Short: "Render rule templates for an agent",
	Long: `Render rule templates for one agent and print the bundle as JSON.

With no arguments every rule in the catalog is rendered. Rule ids that are
not in the catalog are ignored.

The bundle holds the agent name, its rules path and file format, whether it
reads AGENTS.md, the rendered templates keyed by rule id, and for agents
using the AGENTS.md layout, the generated AGENTS.md manifest.

Examples:
  # Render every rule for Claude
  airules render

  # Render selected rules for Windsurf
  airules render accuracy testing --agent windsurf

  # Render templates from a local directory
  airules render --rules-dir ./rules --agent agents-md`,
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	return runRenderWithWriter(cmd.Context(), cmd.OutOrStdout(), args)
}

// runRenderWithWriter allows injecting a writer for testing. Nothing is
// written to w unless rendering succeeds.
func runRenderWithWriter(ctx context.Context, w io.Writer, rules []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	if renderFormat != FormatJSON {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrInvalidFormat, "%q (valid: %s)", renderFormat, FormatJSON),
			"Use --format json")
	}

	a, err := resolveAgent()
	if err != nil {
		return err
	}

	cwd, err := workingDir()
	if err != nil {
		return err
	}

	devSkills, err := detectDevelopmentSkills(renderDevSkills, cwd, logger)
	if err != nil {
		return err
	}

	rc := render.NewContext(a, devSkills, currentConfig().RulesPath(a))
	cat := openCatalog(renderRulesDir, cwd, logger)

	b, err := bundle.Assemble(ctx, cat, rc, bundle.Options{Rules: rules})
	if err != nil {
		return errors.NewSystemError(err, "Check --rules-dir or the rules_dir config key")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "encoding bundle"), "")
	}

	_, err = buf.WriteTo(w)
	return errors.Wrap(err, "writing bundle")
}

// resolveAgent picks the target agent from --interactive, --agent, the
// default_agent config key, or the built-in default.
func resolveAgent() (agent.Agent, error) {
	if renderInteractive {
		a, err := agentSelector.SelectAgent(agent.All())
		if err != nil {
			return "", errors.NewUserError(err, "Pass --agent instead of --interactive")
		}
		return a, nil
	}

	name := renderAgent
	if name == "" {
		name = currentConfig().DefaultAgent
	}
	if name == "" {
		return agent.Default, nil
	}

	a, err := agent.Parse(name)
	if err != nil {
		return "", errors.NewUserError(err, "Run 'airules agents' to list supported agents")
	}
	return a, nil
}
