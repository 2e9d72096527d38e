package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/airules/internal/errors"
)

func TestConfigDir(t *testing.T) {
	got := ConfigDir()
	if !filepath.IsAbs(got) {
		t.Errorf("ConfigDir() = %q, want absolute path", got)
	}
	if filepath.Base(got) != AppName {
		t.Errorf("ConfigDir() = %q, want it to end in %q", got, AppName)
	}
	if filepath.Dir(got) != ConfigHome() {
		t.Errorf("ConfigDir() parent = %q, want %q", filepath.Dir(got), ConfigHome())
	}
}

// writeFile creates path (and parents) under root with content.
func writeFile(t *testing.T, root, path, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	cwd := filepath.Join(root, "project", "app")
	if err := os.MkdirAll(cwd, 0o700); err != nil {
		t.Fatal(err)
	}
	writeFile(t, root, "project/node_modules/@plaited/development-skills/package.json",
		`{"exports": {".": "./index.ts", "./rules": "./rules"}}`)
	writeFile(t, root, "project/node_modules/@plaited/development-skills/index.ts", "")
	writeFile(t, root, "project/node_modules/@plaited/development-skills/rules/testing.md", "")
	pkgDir := filepath.Join(root, "project", "node_modules", "@plaited", "development-skills")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"absolute unchanged", "/etc/rules", "/etc/rules"},
		{"dot slash", "./rules", filepath.Join(cwd, "rules")},
		{"dot dot slash", "../shared", filepath.Join(root, "project", "shared")},
		{"implicit relative source file", "src/rules/testing.md", filepath.Join(cwd, "src", "rules", "testing.md")},
		{"implicit relative ts file", "scripts/gen.ts", filepath.Join(cwd, "scripts", "gen.ts")},
		{"package root from parent node_modules", "@plaited/development-skills", filepath.Join(pkgDir, "index.ts")},
		{"package subpath export", "@plaited/development-skills/rules", filepath.Join(pkgDir, "rules")},
		{"unexported scoped subpath falls back to cwd", "@plaited/development-skills/rules/testing.md", filepath.Join(cwd, "@plaited", "development-skills", "rules", "testing.md")},
		{"unresolvable falls back to cwd", "no-such-package", filepath.Join(cwd, "no-such-package")},
		{"bare name without separator", "rules.md", filepath.Join(cwd, "rules.md")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.in, cwd); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitSpecifier(t *testing.T) {
	tests := []struct {
		in      string
		pkg     string
		sub     string
		wantErr bool
	}{
		{"lodash", "lodash", "", false},
		{"lodash/fp", "lodash", "fp", false},
		{"@plaited/development-skills", "@plaited/development-skills", "", false},
		{"@plaited/development-skills/rules/x", "@plaited/development-skills", "rules/x", false},
		{"@plaited", "", "", true},
		{"@/x", "", "", true},
		{"", "", "", true},
	}
	for _, tt := range tests {
		pkg, sub, err := SplitSpecifier(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("SplitSpecifier(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if pkg != tt.pkg || sub != tt.sub {
			t.Errorf("SplitSpecifier(%q) = (%q, %q), want (%q, %q)", tt.in, pkg, sub, tt.pkg, tt.sub)
		}
	}
}

func TestResolvePackage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "node_modules/plain/lib/main.js", "")
	writeFile(t, root, "node_modules/plain/package.json", `{"main": "lib/main.js"}`)
	writeFile(t, root, "node_modules/nomanifest/docs/a.md", "")
	writeFile(t, root, "node_modules/conditional/package.json",
		`{"exports": {"import": "./esm/index.js", "require": "./cjs/index.js"}}`)
	writeFile(t, root, "node_modules/conditional/esm/index.js", "")
	writeFile(t, root, "node_modules/pattern/package.json",
		`{"exports": {"./*": "./src/*.ts", "./rules/*": {"bun": "./rules/*.md"}}}`)
	writeFile(t, root, "node_modules/pattern/src/util.ts", "")
	writeFile(t, root, "node_modules/pattern/rules/testing.md", "")
	writeFile(t, root, "node_modules/shorthand/package.json", `{"exports": "./only.js"}`)
	writeFile(t, root, "node_modules/shorthand/only.js", "")

	nm := filepath.Join(root, "node_modules")

	tests := []struct {
		spec    string
		want    string
		wantErr error
	}{
		{"plain", filepath.Join(nm, "plain", "lib", "main.js"), nil},
		{"plain/lib", filepath.Join(nm, "plain", "lib"), nil},
		{"nomanifest/docs/a.md", filepath.Join(nm, "nomanifest", "docs", "a.md"), nil},
		{"conditional", filepath.Join(nm, "conditional", "esm", "index.js"), nil},
		{"conditional/extra", "", ErrExportNotFound},
		{"pattern/util", filepath.Join(nm, "pattern", "src", "util.ts"), nil},
		{"pattern/rules/testing", filepath.Join(nm, "pattern", "rules", "testing.md"), nil},
		{"pattern/missing", "", ErrExportNotFound},
		{"shorthand", filepath.Join(nm, "shorthand", "only.js"), nil},
		{"shorthand/x", "", ErrExportNotFound},
		{"absent", "", ErrPackageNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ResolvePackage(tt.spec, root)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolvePackage(%q) error = %v, want %v", tt.spec, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolvePackage(%q) error = %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("ResolvePackage(%q) = %q, want %q", tt.spec, got, tt.want)
			}
		})
	}
}

func TestResolvePackage_InvalidManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "node_modules/broken/package.json", "{not json")

	_, err := ResolvePackage("broken", root)
	if err == nil || !strings.Contains(err.Error(), "package.json") {
		t.Errorf("ResolvePackage() error = %v, want package.json parse error", err)
	}
}
