package doctor

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/catalog"
	"github.com/thoreinstein/airules/internal/paths"
	"github.com/thoreinstein/airules/internal/render"
)

var (
	conditionPattern = regexp.MustCompile(`\{\{[#^]if[ \t]+([A-Za-z0-9_:-]+)\}\}`)
	linkPattern      = regexp.MustCompile(`\{\{LINK:([A-Za-z0-9_-]+)\}\}`)
	blockTagPattern  = regexp.MustCompile(`\{\{(?:[#^]if[ \t]+[A-Za-z0-9_:-]+|/if)\}\}`)
)

// CatalogCheck loads every template in a catalog and reports problems that
// would render as literal text: unknown conditions, links to rules the
// catalog does not have, and unbalanced conditional blocks.
type CatalogCheck struct {
	cat catalog.Catalog
}

var _ Check = (*CatalogCheck)(nil)

// NewCatalogCheck creates a check over cat.
func NewCatalogCheck(cat catalog.Catalog) *CatalogCheck {
	return &CatalogCheck{cat: cat}
}

func (c *CatalogCheck) Name() string {
	return "rule-templates"
}

func (c *CatalogCheck) Category() string {
	return "catalog"
}

func (c *CatalogCheck) Run(ctx context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	ids, err := c.cat.List(ctx)
	if err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = "check --rules-dir or the rules_dir config key"
		return result
	}
	if len(ids) == 0 {
		result.Status = SeverityWarning
		result.Message = "catalog has no rule templates"
		return result
	}

	var problems []string
	for _, id := range ids {
		tmpl, err := c.cat.Get(ctx, id)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		problems = append(problems, templateProblems(id, tmpl.Content, ids)...)
	}

	if len(problems) == 0 {
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d rule template(s) render cleanly for every agent", len(ids))
		return result
	}
	result.Status = SeverityWarning
	result.Message = fmt.Sprintf("%d problem(s) in %d rule template(s)", len(problems), len(ids))
	result.Details = map[string]any{"problems": problems}
	result.FixHint = "problem tokens are kept as literal text in rendered rules"
	return result
}

func templateProblems(id, content string, ids []string) []string {
	var problems []string
	body := render.StripComments(content)

	for _, m := range conditionPattern.FindAllStringSubmatch(body, -1) {
		if !render.KnownCondition(m[1]) {
			problems = append(problems, fmt.Sprintf("%s: unknown condition %q", id, m[1]))
		}
	}
	for _, m := range linkPattern.FindAllStringSubmatch(body, -1) {
		if !slices.Contains(ids, m[1]) {
			problems = append(problems, fmt.Sprintf("%s: link to unknown rule %q", id, m[1]))
		}
	}

	for _, a := range agent.All() {
		out := render.Render(content, render.NewContext(a, true, ""))
		if tag := blockTagPattern.FindString(out); tag != "" {
			problems = append(problems, fmt.Sprintf("%s: unbalanced %s for %s", id, strings.Trim(tag, "{}"), a))
			break
		}
	}
	return problems
}

// DevSkillsCheck reports whether the development skills package is
// installed where automatic detection would find it.
type DevSkillsCheck struct {
	cwd string
}

var _ Check = (*DevSkillsCheck)(nil)

// NewDevSkillsCheck creates a detection check rooted at cwd.
func NewDevSkillsCheck(cwd string) *DevSkillsCheck {
	return &DevSkillsCheck{cwd: cwd}
}

func (c *DevSkillsCheck) Name() string {
	return "development-skills"
}

func (c *DevSkillsCheck) Category() string {
	return "environment"
}

func (c *DevSkillsCheck) Run(_ context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityInfo,
	}
	if paths.HasDevelopmentSkills(c.cwd) {
		result.Message = paths.DevelopmentSkillsPackage + " found, development-skills blocks render"
	} else {
		result.Message = paths.DevelopmentSkillsPackage + " not found, development-skills blocks are omitted"
		result.FixHint = "install the package or pass --dev-skills=true"
	}
	return result
}
