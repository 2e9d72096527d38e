package doctor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/pkg/fileutil"
)

// ConfigSyntaxCheck parses each airules config file that exists and
// reports syntax errors with their position.
type ConfigSyntaxCheck struct {
	paths []string
}

var _ Check = (*ConfigSyntaxCheck)(nil)

// NewConfigSyntaxCheck creates a syntax check over the candidate config
// files. Missing files are skipped.
func NewConfigSyntaxCheck(paths ...string) *ConfigSyntaxCheck {
	return &ConfigSyntaxCheck{paths: paths}
}

func (c *ConfigSyntaxCheck) Name() string {
	return "config-syntax"
}

func (c *ConfigSyntaxCheck) Category() string {
	return "config"
}

type syntaxFileResult struct {
	Path    string `json:"path"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (c *ConfigSyntaxCheck) Run(_ context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  make(map[string]any),
	}

	var files []syntaxFileResult
	var errorCount, passCount int
	for _, p := range c.paths {
		fr, ok := validateFile(p)
		if !ok {
			continue
		}
		files = append(files, fr)
		if fr.Status == "error" {
			errorCount++
		} else {
			passCount++
		}
	}
	result.Details["files"] = files

	switch {
	case errorCount > 0:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d config file(s) have syntax errors", errorCount)
		result.FixHint = "review the error details and fix the syntax in each file"
	case passCount > 0:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d config file(s) validated successfully", passCount)
	default:
		result.Status = SeverityInfo
		result.Message = "no config file found, using defaults"
	}
	return result
}

// validateFile parses path by extension. ok is false when the file does
// not exist.
func validateFile(path string) (fr syntaxFileResult, ok bool) {
	fr = syntaxFileResult{Path: path}

	data, err := fileutil.ReadFileWithLimit(path, 0)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fr, false
		}
		fr.Status = "error"
		fr.Message = err.Error()
		return fr, true
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		fr.Status = "pass"
		fr.Message = "empty file"
		return fr, true
	}

	var v any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &v)
		if err != nil {
			err = errors.Newf("YAML syntax error: %v", strings.TrimPrefix(err.Error(), "yaml: "))
		}
	case ".toml":
		err = formatTOMLError(toml.Unmarshal(data, &v))
	case ".json":
		err = formatJSONError(json.Unmarshal(data, &v), data)
	default:
		err = errors.Newf("unsupported config format %q", ext)
	}

	if err != nil {
		fr.Status = "error"
		fr.Message = err.Error()
		return fr, true
	}
	fr.Status = "pass"
	return fr, true
}

// formatJSONError adds line and column to JSON syntax errors.
func formatJSONError(err error, data []byte) error {
	if err == nil {
		return nil
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := offsetToLineCol(data, int(syntaxErr.Offset))
		return errors.Newf("JSON syntax error at line %d, column %d: %s", line, col, syntaxErr.Error())
	}
	return errors.Wrap(err, "JSON error")
}

// formatTOMLError adds line and column to TOML decode errors.
func formatTOMLError(err error) error {
	if err == nil {
		return nil
	}
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return errors.Newf("TOML syntax error at line %d, column %d: %s", row, col, decodeErr.Error())
	}
	return errors.Wrap(err, "TOML error")
}

// offsetToLineCol converts a byte offset to 1-indexed line and column.
func offsetToLineCol(data []byte, offset int) (line, col int) {
	offset = max(0, min(offset, len(data)))

	line = 1
	lineStart := 0
	for i := range offset {
		if data[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, offset - lineStart + 1
}
