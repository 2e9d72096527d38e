package render

import (
	"regexp"
	"strings"
)

var (
	commentPattern   = regexp.MustCompile(`(?s)<!--.*?-->\n*`)
	variablePattern  = regexp.MustCompile(`\{\{(?:LINK:[A-Za-z0-9_-]+|AGENT_NAME|RULES_PATH)\}\}`)
	blankRunsPattern = regexp.MustCompile(`\n{3,}`)
)

const linkPrefix = "{{LINK:"

// Render converts a raw rule template into the document seen by c.Agent.
// It is a pure function of its inputs and never fails.
func Render(raw string, c Context) string {
	out := StripComments(raw)
	out = ResolveBlocks(out, c)
	out = SubstituteVariables(out, c)
	return NormalizeBlankLines(out)
}

// StripComments removes every <!-- ... --> block together with the newlines
// that immediately follow it.
func StripComments(s string) string {
	return commentPattern.ReplaceAllString(s, "")
}

// SubstituteVariables replaces LINK, AGENT_NAME and RULES_PATH tokens.
// Replacement text is not scanned again, and unknown tokens are kept.
func SubstituteVariables(s string, c Context) string {
	return variablePattern.ReplaceAllStringFunc(s, func(tok string) string {
		switch tok {
		case "{{AGENT_NAME}}":
			return string(c.Agent)
		case "{{RULES_PATH}}":
			return c.RulesPath
		}
		return Link(strings.TrimSuffix(strings.TrimPrefix(tok, linkPrefix), "}}"), c)
	})
}

// NormalizeBlankLines collapses three or more consecutive newlines into two.
func NormalizeBlankLines(s string) string {
	return blankRunsPattern.ReplaceAllString(s, "\n\n")
}
