// Package catalog supplies the rule templates airules renders.
//
// Templates are markdown files named <rule-id>.md. The built-in catalog is
// compiled into the binary; a directory on disk can replace it with
// --rules-dir or the rules_dir config key.
package catalog

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/pkg/fileutil"
	"github.com/thoreinstein/airules/pkg/frontmatter"
)

// TemplateExt is the file extension of rule templates.
const TemplateExt = ".md"

// ErrCatalogUnavailable indicates the template catalog could not be listed.
var ErrCatalogUnavailable = errors.New("rule catalog unavailable")

//go:embed rules/*.md
var embedded embed.FS

// Template is one raw rule template.
type Template struct {
	// ID is the rule identifier, the filename without extension.
	ID string
	// Filename is the template's base filename.
	Filename string
	// Content is the raw template text with any frontmatter removed.
	Content string
	// Description is an optional summary from frontmatter. When empty the
	// description is extracted from the rendered document.
	Description string
}

// Catalog lists and fetches rule templates.
type Catalog interface {
	// List returns every available rule identifier, sorted.
	List(ctx context.Context) ([]string, error)
	// Get returns the template for id. Unknown ids wrap errors.ErrNotFound.
	Get(ctx context.Context, id string) (*Template, error)
}

type templateMatter struct {
	Description string `yaml:"description"`
}

// parseTemplate strips optional frontmatter from data. A leading "---" that
// does not open valid frontmatter is a markdown rule, so the file is kept
// whole.
func parseTemplate(ctx context.Context, logger *slog.Logger, id, filename string, data []byte) *Template {
	tmpl := &Template{ID: id, Filename: filename}

	var matter templateMatter
	body, err := frontmatter.Split(data, &matter)
	if err != nil {
		logger.WarnContext(ctx, "ignoring unparsable frontmatter", "rule", id, "file", filename, "error", err)
		tmpl.Content = string(data)
		return tmpl
	}
	tmpl.Content = string(body)
	tmpl.Description = strings.TrimSpace(matter.Description)
	return tmpl
}

// unavailable marks err as ErrCatalogUnavailable while keeping it in the chain.
func unavailable(err error) error {
	return errors.Wrap(errors.Mark(err, ErrCatalogUnavailable), ErrCatalogUnavailable.Error())
}

// ruleIDs converts directory entries into sorted rule ids.
func ruleIDs(entries []fs.DirEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if id, ok := strings.CutSuffix(e.Name(), TemplateExt); ok && id != "" {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// validID rejects ids that could escape the catalog directory.
func validID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}

// Embedded is the catalog compiled into the binary.
type Embedded struct{}

// NewEmbedded returns the built-in catalog.
func NewEmbedded() *Embedded {
	return &Embedded{}
}

func (*Embedded) List(_ context.Context) ([]string, error) {
	entries, err := fs.ReadDir(embedded, "rules")
	if err != nil {
		return nil, unavailable(err)
	}
	return ruleIDs(entries), nil
}

func (*Embedded) Get(ctx context.Context, id string) (*Template, error) {
	if !validID(id) {
		return nil, errors.Wrapf(errors.ErrNotFound, "rule %q", id)
	}
	filename := id + TemplateExt
	data, err := fs.ReadFile(embedded, path.Join("rules", filename))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "rule %q", id)
	}
	return parseTemplate(ctx, slog.Default(), id, filename, data), nil
}

// Dir is a catalog backed by a directory of template files.
type Dir struct {
	root   string
	logger *slog.Logger
}

// NewDir returns a catalog over the templates in root. The directory is not
// read until List or Get is called.
func NewDir(root string, logger *slog.Logger) *Dir {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dir{root: root, logger: logger}
}

// Root returns the catalog directory.
func (d *Dir) Root() string {
	return d.root
}

func (d *Dir) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, unavailable(err)
	}
	ids := ruleIDs(entries)
	d.logger.DebugContext(ctx, "listed rule catalog", "dir", d.root, "rules", len(ids))
	return ids, nil
}

func (d *Dir) Get(ctx context.Context, id string) (*Template, error) {
	if !validID(id) {
		return nil, errors.Wrapf(errors.ErrNotFound, "rule %q", id)
	}
	filename := id + TemplateExt
	p := filepath.Join(d.root, filename)

	data, err := fileutil.ReadFileWithLimit(p, 0)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(errors.ErrNotFound, "rule %q", id)
		}
		return nil, errors.Wrapf(err, "reading rule %q", id)
	}
	d.logger.DebugContext(ctx, "loaded rule template", "rule", id, "path", p, "bytes", len(data))
	return parseTemplate(ctx, d.logger, id, filename, data), nil
}
