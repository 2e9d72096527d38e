package paths

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/pkg/fileutil"
)

// Sentinel errors for package resolution.
var (
	// ErrInvalidSpecifier indicates a string that cannot name a package.
	ErrInvalidSpecifier = errors.New("invalid package specifier")

	// ErrPackageNotFound indicates no node_modules directory holds the package.
	ErrPackageNotFound = errors.New("package not found")

	// ErrExportNotFound indicates the package does not expose the subpath.
	ErrExportNotFound = errors.New("package export not found")
)

// DevelopmentSkillsPackage is the package whose presence enables
// development-skills blocks when detection is automatic.
const DevelopmentSkillsPackage = "@plaited/development-skills"

// HasDevelopmentSkills reports whether DevelopmentSkillsPackage resolves
// from cwd.
func HasDevelopmentSkills(cwd string) bool {
	_, err := ResolvePackage(DevelopmentSkillsPackage, cwd)
	return err == nil
}

// sourceExts are extensions that mark a bare "dir/file.ext" string as a path.
var sourceExts = map[string]struct{}{
	".ts": {}, ".tsx": {}, ".mts": {}, ".cts": {},
	".js": {}, ".jsx": {}, ".mjs": {}, ".cjs": {},
	".json": {}, ".md": {}, ".go": {},
}

// exportConditions are tried in order when an export target is a
// conditional object.
var exportConditions = []string{"bun", "import", "default", "require"}

// Resolve turns p into an absolute path.
//
//   - absolute paths are returned unchanged
//   - "./" and "../" paths are joined to cwd
//   - "dir/file.ts" style paths (a separator plus a source extension, not
//     starting with "@") are joined to cwd
//   - anything else is resolved as a package specifier from cwd, falling
//     back to joining cwd when resolution fails
func Resolve(p, cwd string) string {
	switch {
	case strings.HasPrefix(p, "/") || filepath.IsAbs(p):
		return p
	case p == "." || p == ".." || strings.HasPrefix(p, "./") || strings.HasPrefix(p, "../"):
		return filepath.Join(cwd, p)
	case looksLikeFile(p):
		return filepath.Join(cwd, p)
	}

	if resolved, err := ResolvePackage(p, cwd); err == nil {
		return resolved
	}
	return filepath.Join(cwd, p)
}

func looksLikeFile(p string) bool {
	if strings.HasPrefix(p, "@") || !strings.ContainsAny(p, `/\`) {
		return false
	}
	_, ok := sourceExts[strings.ToLower(filepath.Ext(p))]
	return ok
}

// SplitSpecifier splits "pkg/sub/path" or "@scope/pkg/sub/path" into the
// package name and the subpath ("" for the package root).
func SplitSpecifier(spec string) (pkg, subpath string, err error) {
	parts := strings.Split(spec, "/")
	n := 1
	if strings.HasPrefix(spec, "@") {
		n = 2
	}
	if len(parts) < n {
		return "", "", errors.Wrapf(ErrInvalidSpecifier, "%q", spec)
	}
	for _, part := range parts[:n] {
		if part == "" || part == "@" || part == "." || part == ".." {
			return "", "", errors.Wrapf(ErrInvalidSpecifier, "%q", spec)
		}
	}
	return strings.Join(parts[:n], "/"), strings.Join(parts[n:], "/"), nil
}

// ResolvePackage resolves a package specifier the way a node_modules based
// runtime would: it walks up from cwd looking for node_modules/<pkg>, then
// maps the subpath through the package.json "exports" field when present.
// The resolved path must exist.
func ResolvePackage(spec, cwd string) (string, error) {
	pkg, subpath, err := SplitSpecifier(spec)
	if err != nil {
		return "", err
	}

	pkgDir, err := findPackageDir(pkg, cwd)
	if err != nil {
		return "", err
	}

	target, err := packageTarget(pkgDir, subpath)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %q", spec)
	}
	if _, err := os.Stat(target); err != nil {
		return "", errors.Wrapf(ErrExportNotFound, "%q: %v", spec, err)
	}
	return target, nil
}

func findPackageDir(pkg, cwd string) (string, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", errors.Wrap(err, "resolving working directory")
	}
	for {
		candidate := filepath.Join(dir, "node_modules", filepath.FromSlash(pkg))
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Wrapf(ErrPackageNotFound, "%s (from %s)", pkg, cwd)
		}
		dir = parent
	}
}

type packageJSON struct {
	Main    string          `json:"main"`
	Exports json.RawMessage `json:"exports"`
}

func packageTarget(pkgDir, subpath string) (string, error) {
	var manifest packageJSON
	data, err := fileutil.ReadFileWithLimit(filepath.Join(pkgDir, "package.json"), 0)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &manifest); err != nil {
			return "", errors.Wrap(err, "parsing package.json")
		}
	case errors.Is(err, os.ErrNotExist):
		// Packages without a manifest resolve by plain path.
	default:
		return "", err
	}

	key := "."
	if subpath != "" {
		key = "./" + subpath
	}

	if len(manifest.Exports) > 0 {
		rel, ok := matchExport(manifest.Exports, key)
		if !ok {
			return "", errors.Wrapf(ErrExportNotFound, "%s not exported", key)
		}
		return filepath.Join(pkgDir, filepath.FromSlash(rel)), nil
	}

	if subpath != "" {
		return filepath.Join(pkgDir, filepath.FromSlash(subpath)), nil
	}
	if manifest.Main != "" {
		return filepath.Join(pkgDir, filepath.FromSlash(manifest.Main)), nil
	}
	return pkgDir, nil
}

// matchExport looks key up in a package.json "exports" value. It supports
// the string shorthand, exact subpath keys, single "*" patterns and
// conditional targets.
func matchExport(raw json.RawMessage, key string) (string, bool) {
	var shorthand string
	if json.Unmarshal(raw, &shorthand) == nil {
		return shorthand, key == "."
	}

	var exports map[string]json.RawMessage
	if json.Unmarshal(raw, &exports) != nil {
		return "", false
	}

	// An object without "./" keys is a conditional target for ".".
	subpathKeys := false
	for k := range exports {
		if strings.HasPrefix(k, ".") {
			subpathKeys = true
			break
		}
	}
	if !subpathKeys {
		if key != "." {
			return "", false
		}
		return exportTarget(raw)
	}

	if target, ok := exports[key]; ok {
		return exportTarget(target)
	}

	// The pattern with the longest prefix wins.
	best, bestPrefix := "", -1
	for pattern, target := range exports {
		prefix, suffix, ok := strings.Cut(pattern, "*")
		if !ok || len(prefix) <= bestPrefix || len(key) < len(prefix)+len(suffix) ||
			!strings.HasPrefix(key, prefix) || !strings.HasSuffix(key, suffix) {
			continue
		}
		if rel, ok := exportTarget(target); ok {
			best = strings.ReplaceAll(rel, "*", key[len(prefix):len(key)-len(suffix)])
			bestPrefix = len(prefix)
		}
	}
	return best, bestPrefix >= 0
}

func exportTarget(raw json.RawMessage) (string, bool) {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s, s != ""
	}
	var conditions map[string]json.RawMessage
	if json.Unmarshal(raw, &conditions) != nil {
		return "", false
	}
	for _, cond := range exportConditions {
		if next, ok := conditions[cond]; ok {
			if rel, ok := exportTarget(next); ok {
				return rel, true
			}
		}
	}
	return "", false
}
