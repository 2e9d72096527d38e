package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrUnterminated is returned when an opening "---" has no closing delimiter.
var ErrUnterminated = errors.New("missing closing frontmatter delimiter")

// Split separates leading YAML frontmatter from content and decodes it into
// matter. Content without an opening "---" line is returned unchanged and
// matter is left untouched.
func Split[T any](content []byte, matter *T) (body []byte, err error) {
	rest, ok := cutDelimiter(content)
	if !ok {
		return content, nil
	}

	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return nil, ErrUnterminated
	}

	fm := rest[:end+1]
	body, ok = cutDelimiter(rest[end+1:])
	if !ok {
		// "---" followed by more text on the same line is not a delimiter.
		return nil, ErrUnterminated
	}

	if err := yaml.Unmarshal(fm, matter); err != nil {
		return nil, err
	}
	return body, nil
}

// cutDelimiter strips a "---" line (LF or CRLF terminated, or at EOF) from
// the start of b.
func cutDelimiter(b []byte) ([]byte, bool) {
	rest, ok := bytes.CutPrefix(b, []byte("---"))
	if !ok {
		return b, false
	}
	switch {
	case len(rest) == 0:
		return rest, true
	case rest[0] == '\n':
		return rest[1:], true
	case bytes.HasPrefix(rest, []byte("\r\n")):
		return rest[2:], true
	}
	return b, false
}
