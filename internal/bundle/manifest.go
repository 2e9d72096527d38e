package bundle

import (
	"maps"
	"slices"
	"strings"

	"github.com/thoreinstein/airules/internal/agent"
)

const manifestPreamble = `# AGENTS.md

This project follows the development rules listed below. Each rule lives in
its own file under ` + "`" + agent.StandardRulesDir + "/`" + `. Read the relevant rule before
working in that area.

## Rules

`

const manifestClosing = `
## Updating Rules

These files are generated by airules. Edit the rule templates and regenerate
them instead of editing the output by hand.
`

// Manifest builds the AGENTS.md body linking to every document, ordered by
// rule id.
func Manifest(docs map[string]Document) string {
	var sb strings.Builder
	sb.WriteString(manifestPreamble)
	for _, id := range slices.Sorted(maps.Keys(docs)) {
		doc := docs[id]
		sb.WriteString("- [")
		sb.WriteString(id)
		sb.WriteString("](")
		sb.WriteString(agent.StandardRulesDir + "/" + doc.Filename)
		sb.WriteString("): ")
		sb.WriteString(doc.Description)
		sb.WriteByte('\n')
	}
	sb.WriteString(manifestClosing)
	return sb.String()
}
