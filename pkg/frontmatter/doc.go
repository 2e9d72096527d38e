// Package frontmatter separates optional YAML frontmatter from markdown rule
// templates.
//
// Frontmatter is delimited by lines containing only "---" at the start of the
// file. The YAML between the delimiters is decoded into the caller's type and
// the remaining content is returned as the body:
//
//	type ruleMeta struct {
//		Description string `yaml:"description"`
//	}
//
//	var meta ruleMeta
//	body, err := frontmatter.Split(data, &meta)
//
// Both LF and CRLF line endings are handled.
package frontmatter
