package frontmatter

import (
	"errors"
	"testing"
)

type ruleMeta struct {
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantBody string
		wantMeta ruleMeta
		wantErr  error
	}{
		{
			name:     "no frontmatter",
			input:    "<!-- header -->\n# Title\n",
			wantBody: "<!-- header -->\n# Title\n",
		},
		{
			name:     "frontmatter and body",
			input:    "---\ndescription: Testing conventions\ntags: [bun, test]\n---\n# Testing\n",
			wantBody: "# Testing\n",
			wantMeta: ruleMeta{Description: "Testing conventions", Tags: []string{"bun", "test"}},
		},
		{
			name:     "CRLF line endings",
			input:    "---\r\ndescription: x\r\n---\r\nbody",
			wantBody: "body",
			wantMeta: ruleMeta{Description: "x"},
		},
		{
			name:     "empty body",
			input:    "---\ndescription: only\n---",
			wantBody: "",
			wantMeta: ruleMeta{Description: "only"},
		},
		{
			name:     "horizontal rule is not frontmatter",
			input:    "--- not yaml\n",
			wantBody: "--- not yaml\n",
		},
		{
			name:    "unterminated",
			input:   "---\ndescription: x\n# Title\n",
			wantErr: ErrUnterminated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var meta ruleMeta
			body, err := Split([]byte(tt.input), &meta)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Split() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Split() unexpected error: %v", err)
			}
			if string(body) != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
			if meta.Description != tt.wantMeta.Description || len(meta.Tags) != len(tt.wantMeta.Tags) {
				t.Errorf("meta = %+v, want %+v", meta, tt.wantMeta)
			}
		})
	}
}

func TestSplit_InvalidYAML(t *testing.T) {
	var meta ruleMeta
	if _, err := Split([]byte("---\ndescription: [unclosed\n---\nbody"), &meta); err == nil {
		t.Error("Split() should fail on invalid YAML")
	}
}
