package render

import "strings"

// DefaultDescription is returned when a document has no usable summary line.
const DefaultDescription = "Development rule"

// ExtractDescription returns the first plain line after the title of a
// rendered document. Headings and bold lines are skipped.
func ExtractDescription(text string) string {
	lines := strings.Split(text, "\n")
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "**") {
			continue
		}
		return line
	}
	return DefaultDescription
}
