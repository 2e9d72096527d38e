// Package render turns a rule template into an agent-specific markdown
// document.
//
// A template may contain four kinds of tokens:
//
//	{{#if CONDITION}}...{{/if}}   kept when CONDITION is true
//	{{^if CONDITION}}...{{/if}}   kept when CONDITION is false
//	{{LINK:rule-id}}              agent-appropriate reference to another rule
//	{{AGENT_NAME}} {{RULES_PATH}} values from the render Context
//
// [Render] applies a fixed pipeline: strip HTML comments, resolve conditional
// blocks innermost-first, substitute variables in a single pass, then collapse
// runs of blank lines. Blocks may nest to any depth and positive and inverse
// blocks may be mixed freely.
//
// Template problems are never errors. Unknown conditions evaluate to false,
// unknown variables and unbalanced markers are left as literal text.
package render
