package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/errors"
)

var agentsJSON bool

func init() {
	agentsCmd.Flags().BoolVar(&agentsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(agentsCmd)
}

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List supported agents",
	Long: `List every supported agent with its rules path, file format and
capabilities.

Capabilities double as template conditions, e.g. {{#if has-sandbox}}.

Examples:
  # Show a table
  airules agents

  # Output as JSON
  airules agents --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runAgentsWithWriter(cmd.OutOrStdout())
	},
}

// agentInfoJSON represents an agent in JSON output format.
type agentInfoJSON struct {
	Name         string             `json:"name"`
	RulesPath    string             `json:"rulesPath"`
	Format       agent.Format       `json:"format"`
	Capabilities agent.Capabilities `json:"capabilities"`
}

// runAgentsWithWriter allows injecting a writer for testing.
func runAgentsWithWriter(w io.Writer) error {
	all := agent.All()
	infos := make([]agentInfoJSON, len(all))
	for i, a := range all {
		p := agent.ProfileFor(a)
		if override := currentConfig().RulesPath(a); override != "" {
			p.RulesPath = override
		}
		infos[i] = agentInfoJSON{
			Name:         a.String(),
			RulesPath:    p.RulesPath,
			Format:       p.Format,
			Capabilities: agent.CapabilitiesFor(a),
		}
	}

	if agentsJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(infos), "encoding agents")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "AGENT\tRULES PATH\tFORMAT\tCAPABILITIES")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Name, info.RulesPath, info.Format, capabilityList(info.Capabilities))
	}
	return errors.Wrap(tw.Flush(), "writing agents")
}

// capabilityList renders the enabled capabilities as condition names.
func capabilityList(c agent.Capabilities) string {
	var s string
	add := func(on bool, name string) {
		if !on {
			return
		}
		if s != "" {
			s += ","
		}
		s += name
	}
	add(c.HasSandbox, "has-sandbox")
	add(c.SupportsMultiFileRules, "supports-multi-file-rules")
	add(c.SupportsSlashCommands, "supports-slash-commands")
	add(c.SupportsAgentsMd, "supports-agents-md")
	if s == "" {
		return "-"
	}
	return s
}
