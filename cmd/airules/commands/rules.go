package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/bundle"
	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/logging"
	"github.com/thoreinstein/airules/internal/render"
)

var (
	rulesJSON     bool
	rulesRulesDir string
)

func init() {
	rulesCmd.Flags().BoolVar(&rulesJSON, "json", false, "Output in JSON format")
	rulesCmd.Flags().StringVar(&rulesRulesDir, "rules-dir", "",
		"template directory or package specifier (default: built-in rules)")
	rootCmd.AddCommand(rulesCmd)
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List rule templates in the catalog",
	Long: `List the rule ids in the catalog with their descriptions.

Descriptions are taken from the rendered default (claude) document.

Examples:
  airules rules
  airules rules --rules-dir ./rules --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRulesWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

// ruleInfoJSON represents a rule in JSON output format.
type ruleInfoJSON struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	Description string `json:"description"`
}

// runRulesWithWriter allows injecting a writer for testing.
func runRulesWithWriter(ctx context.Context, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	cwd, err := workingDir()
	if err != nil {
		return err
	}

	cat := openCatalog(rulesRulesDir, cwd, logger)
	b, err := bundle.Assemble(ctx, cat, render.NewContext(agent.Default, false, ""), bundle.Options{})
	if err != nil {
		return errors.NewSystemError(err, "Check --rules-dir or the rules_dir config key")
	}

	infos := make([]ruleInfoJSON, 0, len(b.Templates))
	for _, id := range slices.Sorted(maps.Keys(b.Templates)) {
		doc := b.Templates[id]
		infos = append(infos, ruleInfoJSON{ID: id, Filename: doc.Filename, Description: doc.Description})
	}

	if rulesJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(infos), "encoding rules")
	}

	if len(infos) == 0 {
		fmt.Fprintln(w, "No rules found.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tDESCRIPTION")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\n", info.ID, info.Description)
	}
	return errors.Wrap(tw.Flush(), "writing rules")
}
