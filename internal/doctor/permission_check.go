package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// PermissionCheck warns about world-writable config files and rule
// directories, which would let other users change rendered rules.
type PermissionCheck struct {
	paths []string
}

var _ Check = (*PermissionCheck)(nil)

// NewPermissionCheck creates a permission check over paths. Missing paths
// are skipped.
func NewPermissionCheck(paths ...string) *PermissionCheck {
	return &PermissionCheck{paths: paths}
}

func (c *PermissionCheck) Name() string {
	return "path-permissions"
}

func (c *PermissionCheck) Category() string {
	return "filesystem"
}

func (c *PermissionCheck) Run(_ context.Context) *CheckResult {
	var issues []map[string]any
	var hints []string
	checked := 0

	for _, p := range c.paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		checked++
		perm := info.Mode().Perm()
		if perm&0o002 == 0 {
			continue
		}
		want := "644"
		if info.IsDir() {
			want = "755"
		}
		issues = append(issues, map[string]any{
			"path":        p,
			"permissions": fmt.Sprintf("%04o", perm),
		})
		hints = append(hints, "chmod "+want+" "+p)
	}

	if len(issues) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  fmt.Sprintf("all %d paths have safe permissions", checked),
		}
	}
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityWarning,
		Message:  fmt.Sprintf("%d of %d paths are world-writable", len(issues), checked),
		Details:  map[string]any{"issues": issues},
		FixHint:  strings.Join(hints, "; "),
	}
}
