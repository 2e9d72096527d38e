package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/airules/internal/config"
	"github.com/thoreinstein/airules/internal/doctor"
	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/logging"
	"github.com/thoreinstein/airules/internal/paths"
)

var (
	doctorJSON     bool
	doctorAll      bool
	doctorRulesDir string
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorAll, "all", false,
		"show every check, including passed ones")
	doctorCmd.Flags().StringVar(&doctorRulesDir, "rules-dir", "",
		"template directory or package specifier to check (default: built-in rules)")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and rule template issues",
	Long: `Run diagnostic checks on the airules configuration and rule catalog.

Checks config file syntax (YAML, TOML or JSON), file permissions, every
rule template for unknown conditions, dangling links and unbalanced blocks,
and whether the development skills package is installed.

Exit codes:
  0 - No errors or warnings
  1 - Warnings present, no errors
  2 - Errors present`,
	Args: cobra.NoArgs,
	// Config errors are reported as check results instead of aborting.
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDoctorWithWriter(cmd.Context(), cmd.OutOrStdout())
	},
}

// errDoctorWarnings is a sentinel error for exit code 1.
var errDoctorWarnings = errors.New("warnings found")

// errDoctorErrors is a sentinel error for exit code 2.
var errDoctorErrors = errors.New("errors found")

// configCandidates returns the config files doctor inspects.
func configCandidates() []string {
	if configFile != "" {
		return []string{configFile}
	}
	dirs := config.SearchDirs()
	files := make([]string, len(dirs))
	for i, dir := range dirs {
		files[i] = filepath.Join(dir, "config.yaml")
	}
	return files
}

// runDoctorWithWriter allows injecting a writer for testing.
func runDoctorWithWriter(ctx context.Context, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	cwd, err := workingDir()
	if err != nil {
		return err
	}

	cat := openCatalog(doctorRulesDir, cwd, logger)
	candidates := configCandidates()
	permPaths := slices.Concat(candidates, []string{paths.ConfigDir()})

	runner := doctor.NewRunner(
		doctor.NewConfigSyntaxCheck(candidates...),
		doctor.NewPermissionCheck(permPaths...),
		doctor.NewCatalogCheck(cat),
		doctor.NewDevSkillsCheck(cwd),
	)
	report := runner.Run(ctx)

	if configLoadErr != nil {
		report.Results = append(report.Results, &doctor.CheckResult{
			Name:     "config-values",
			Category: "config",
			Status:   doctor.SeverityError,
			Message:  configLoadErr.Error(),
			FixHint:  "Check your airules config.yaml",
		})
		report.Summary.Errors++
	}

	if err := outputDoctorReport(w, report); err != nil {
		return err
	}

	switch {
	case report.HasErrors():
		return errors.NewSystemError(errDoctorErrors, "")
	case report.HasWarnings():
		return errors.NewUserError(errDoctorWarnings, "")
	}
	return nil
}

func outputDoctorReport(w io.Writer, report *doctor.Report) error {
	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(report), "encoding JSON")
	}

	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !doctorAll && !problem {
			continue
		}

		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)
		if problems, ok := result.Details["problems"].([]string); ok {
			for _, p := range problems {
				fmt.Fprintf(w, "    %s\n", p)
			}
		}
		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
	return nil
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}
