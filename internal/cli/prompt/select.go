// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/logging"
)

// Sentinel errors for agent selection.
var (
	ErrNoAgents           = errors.New("no agents to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// FindFunc picks an index from n labelled items, with a preview for the
// highlighted item. It matches the shape of fuzzyfinder.Find.
type FindFunc func(n int, label func(i int) string, preview func(i int) string) (int, error)

// Selector handles interactive agent selection prompts.
//
// When a FindFunc is set the fuzzy finder is used; otherwise the selector
// falls back to a numbered prompt on reader/writer.
type Selector struct {
	reader io.Reader
	writer io.Writer
	find   FindFunc
}

// NewSelector creates a Selector on stdin and stderr. The fuzzy finder is
// used when stdin is a terminal. Prompts go to stderr so stdout stays
// reserved for command output.
func NewSelector() *Selector {
	s := &Selector{
		reader: os.Stdin,
		writer: os.Stderr,
	}
	if logging.IsTTY(os.Stdin) {
		s.find = fuzzyFind
	}
	return s
}

// NewSelectorWithIO creates a Selector with custom IO for testing. find may
// be nil to force the numbered prompt.
func NewSelectorWithIO(r io.Reader, w io.Writer, find FindFunc) *Selector {
	return &Selector{
		reader: r,
		writer: w,
		find:   find,
	}
}

// SelectAgent prompts the user to choose from agents.
//
// Returns:
//   - ErrNoAgents if the list is empty
//   - The agent if only one exists (auto-selects without prompting)
//   - The selected agent based on user input
//   - ErrInvalidSelection if the selection is out of range
//   - ErrSelectionCancelled on EOF or when the finder is aborted
func (s *Selector) SelectAgent(agents []agent.Agent) (agent.Agent, error) {
	if len(agents) == 0 {
		return "", ErrNoAgents
	}

	if len(agents) == 1 {
		return agents[0], nil
	}

	if s.find != nil {
		idx, err := s.find(len(agents),
			func(i int) string { return agents[i].String() },
			func(i int) string { return Preview(agents[i]) },
		)
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(agents) {
			return "", errors.Wrapf(ErrInvalidSelection, "%d is out of range [0-%d]", idx, len(agents)-1)
		}
		return agents[idx], nil
	}

	return s.selectNumbered(agents)
}

func (s *Selector) selectNumbered(agents []agent.Agent) (agent.Agent, error) {
	fmt.Fprintln(s.writer, "Select an agent:")
	for i, a := range agents {
		fmt.Fprintf(s.writer, "  [%d] %s (%s)\n", i+1, a, agent.ProfileFor(a).RulesPath)
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)

	// EOF with nothing typed (e.g., Ctrl+D); a last line without a newline
	// is still an answer.
	if err != nil && input == "" {
		return "", ErrSelectionCancelled
	}

	// Default to first option if empty
	if input == "" {
		return agents[0], nil
	}

	// Accept agent names as well as numbers.
	for _, a := range agents {
		if strings.EqualFold(input, a.String()) {
			return a, nil
		}
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidSelection, "%q is not a number or agent name", input)
	}

	// Validate range (1-indexed)
	if selection < 1 || selection > len(agents) {
		return "", errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(agents))
	}

	return agents[selection-1], nil
}

// Preview describes an agent's rules location and capabilities for the
// finder's preview window.
func Preview(a agent.Agent) string {
	p := agent.ProfileFor(a)
	c := agent.CapabilitiesFor(a)
	return fmt.Sprintf("Agent: %s\nRules path: %s\nFormat: %s\n\nCapabilities:\n  has-sandbox: %t\n  supports-multi-file-rules: %t\n  supports-slash-commands: %t\n  supports-agents-md: %t\n",
		a, p.RulesPath, p.Format,
		c.HasSandbox, c.SupportsMultiFileRules, c.SupportsSlashCommands, c.SupportsAgentsMd)
}

func fuzzyFind(n int, label func(int) string, preview func(int) string) (int, error) {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	idx, err := fuzzyfinder.Find(
		items,
		label,
		fuzzyfinder.WithPromptString("agent> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return preview(i)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return -1, ErrSelectionCancelled
		}
		return -1, errors.Wrap(err, "interactive agent selection failed")
	}
	return idx, nil
}
