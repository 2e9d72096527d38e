package render

import "strings"

const (
	openPositive = "{{#if"
	openInverse  = "{{^if"
	closeTag     = "{{/if}}"
	tagEnd       = "}}"
)

type tagKind int

const (
	tagNone tagKind = iota
	tagOpen
	tagClose
)

// block is an open conditional waiting for its {{/if}}.
type block struct {
	inverse bool
	cond    string
	opener  string
	body    strings.Builder
}

func (b *block) keep(c Context) bool {
	return Evaluate(b.cond, c) != b.inverse
}

// ResolveBlocks evaluates every {{#if}} and {{^if}} block in s.
//
// Blocks are resolved by a single left-to-right pass over a stack of open
// blocks, so the innermost block is always decided first and siblings never
// merge. A {{/if}} with no open block is kept literally, and a block that is
// still open at the end of input is emitted literally with its opener.
func ResolveBlocks(s string, c Context) string {
	var root strings.Builder
	root.Grow(len(s))
	var stack []*block

	out := func() *strings.Builder {
		if len(stack) == 0 {
			return &root
		}
		return &stack[len(stack)-1].body
	}

	for len(s) > 0 {
		i := strings.Index(s, "{{")
		if i < 0 {
			out().WriteString(s)
			break
		}
		out().WriteString(s[:i])
		s = s[i:]

		kind, inverse, cond, n := scanTag(s)
		switch kind {
		case tagOpen:
			stack = append(stack, &block{inverse: inverse, cond: cond, opener: s[:n]})
		case tagClose:
			if len(stack) == 0 {
				out().WriteString(s[:n])
				break
			}
			b := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if b.keep(c) {
				out().WriteString(b.body.String())
			}
		default:
			// Not a block marker. Advance one byte so "{{{#if" still matches.
			n = 1
			out().WriteString(s[:n])
		}
		s = s[n:]
	}

	for len(stack) > 0 {
		b := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		w := out()
		w.WriteString(b.opener)
		w.WriteString(b.body.String())
	}

	return root.String()
}

// scanTag recognizes a block marker at the start of s and returns its kind,
// whether an opener is inverse, the condition name and the marker length.
func scanTag(s string) (kind tagKind, inverse bool, cond string, n int) {
	if strings.HasPrefix(s, closeTag) {
		return tagClose, false, "", len(closeTag)
	}

	switch {
	case strings.HasPrefix(s, openPositive):
	case strings.HasPrefix(s, openInverse):
		inverse = true
	default:
		return tagNone, false, "", 0
	}

	i := len(openPositive)
	start := i
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if i == start {
		return tagNone, false, "", 0
	}

	nameStart := i
	for i < len(s) && isCondChar(s[i]) {
		i++
	}
	if i == nameStart || !strings.HasPrefix(s[i:], tagEnd) {
		return tagNone, false, "", 0
	}

	return tagOpen, inverse, s[nameStart:i], i + len(tagEnd)
}

func isCondChar(b byte) bool {
	switch {
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z', '0' <= b && b <= '9':
		return true
	case b == '_', b == ':', b == '-':
		return true
	}
	return false
}
