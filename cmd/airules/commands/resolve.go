package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/airules/internal/paths"
)

func init() {
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <path-or-specifier>",
	Short: "Resolve a path or package specifier to an absolute path",
	Long: `Resolve a path the way --rules-dir does and print the result.

Absolute paths are printed unchanged. Relative paths ("./x", "../x" and
"dir/file.ts" style paths) are joined to the current directory. Anything
else is looked up as a package in node_modules, honoring package.json
exports, and falls back to the current directory when not found.

Examples:
  airules resolve ./rules
  airules resolve @plaited/development-skills/rules`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResolveWithWriter(cmd.OutOrStdout(), args[0])
	},
}

// runResolveWithWriter allows injecting a writer for testing.
func runResolveWithWriter(w io.Writer, p string) error {
	cwd, err := workingDir()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, paths.Resolve(p, cwd))
	return nil
}
