package config

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates a version this build cannot read.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidAgent indicates an unrecognized agent name.
	ErrInvalidAgent = errors.New("invalid agent")

	// ErrInvalidDevSkills indicates a development_skills value other than
	// auto, true or false.
	ErrInvalidDevSkills = errors.New("invalid development_skills mode")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != 1 {
		errs = append(errs, &FieldError{Field: "version", Value: strconv.Itoa(cfg.Version), Err: ErrUnsupportedVersion})
	}

	if cfg.DefaultAgent != "" && !agent.Valid(cfg.DefaultAgent) {
		errs = append(errs, &FieldError{Field: "default_agent", Value: cfg.DefaultAgent, Err: ErrInvalidAgent})
	}

	switch cfg.DevelopmentSkills {
	case "", DevSkillsAuto, DevSkillsTrue, DevSkillsFalse:
	default:
		errs = append(errs, &FieldError{Field: "development_skills", Value: cfg.DevelopmentSkills, Err: ErrInvalidDevSkills})
	}

	if err := validatePath(cfg.RulesDir); err != nil {
		errs = append(errs, &FieldError{Field: "rules_dir", Value: cfg.RulesDir, Err: err})
	}

	for name, override := range cfg.Agents {
		if !agent.Valid(name) {
			errs = append(errs, &FieldError{Field: "agents", Value: name, Err: ErrInvalidAgent})
			continue
		}
		if err := validatePath(override.RulesPath); err != nil {
			errs = append(errs, &FieldError{Field: "agents." + name + ".rules_path", Value: override.RulesPath, Err: err})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// FieldError represents an error for a specific config field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
