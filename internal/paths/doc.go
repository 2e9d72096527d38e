// Package paths resolves filesystem locations for airules.
//
// It wraps github.com/adrg/xdg for the config directory and implements the
// path-or-package resolution used by --rules-dir and the `resolve` command:
//
//	paths.Resolve("./rules", cwd)                        // <cwd>/rules
//	paths.Resolve("docs/rules/testing.md", cwd)          // <cwd>/docs/rules/testing.md
//	paths.Resolve("@plaited/development-skills", cwd)    // node_modules lookup
//
// Package specifiers are resolved by walking up from the working directory
// looking for node_modules/<package>, honoring the package.json "exports"
// map. When resolution fails the specifier is joined to the working directory.
package paths
