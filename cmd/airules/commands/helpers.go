package commands

import (
	"log/slog"
	"os"

	"github.com/thoreinstein/airules/internal/catalog"
	"github.com/thoreinstein/airules/internal/config"
	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/paths"
)

// workingDir returns the current directory for path resolution.
func workingDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.NewSystemError(errors.Wrap(err, "getting working directory"), "")
	}
	return wd, nil
}

// openCatalog returns the catalog named by dir (a path or package
// specifier), falling back to the rules_dir config key and then to the
// built-in templates.
func openCatalog(dir, cwd string, logger *slog.Logger) catalog.Catalog {
	if dir == "" {
		dir = currentConfig().RulesDir
	}
	if dir == "" {
		logger.Debug("using built-in rule catalog")
		return catalog.NewEmbedded()
	}
	root := paths.Resolve(dir, cwd)
	logger.Debug("using rule catalog directory", "dir", dir, "resolved", root)
	return catalog.NewDir(root, logger)
}

// detectDevelopmentSkills reports whether development-skills blocks are
// rendered. mode is auto, true or false; empty falls back to config.
func detectDevelopmentSkills(mode, cwd string, logger *slog.Logger) (bool, error) {
	if mode == "" {
		mode = currentConfig().DevelopmentSkills
	}
	switch mode {
	case config.DevSkillsTrue:
		return true, nil
	case config.DevSkillsFalse:
		return false, nil
	case config.DevSkillsAuto, "":
		found := paths.HasDevelopmentSkills(cwd)
		logger.Debug("detected development skills", "package", paths.DevelopmentSkillsPackage, "found", found)
		return found, nil
	default:
		return false, errors.NewUserError(
			errors.Newf("invalid --dev-skills value %q (valid: auto, true, false)", mode),
			"Use --dev-skills auto, true or false")
	}
}
