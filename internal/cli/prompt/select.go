// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/rsscheck/internal/errors"
	"github.com/thoreinstein/rsscheck/internal/logging"
	"github.com/thoreinstein/rsscheck/internal/source"
)

// Sentinel errors for source selection.
var (
	ErrNoSources          = errors.New("no sources to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// FindFunc picks indices out of sources interactively.
type FindFunc func(sources []source.FeedSource) ([]int, error)

// Selector handles interactive source selection prompts.
type Selector struct {
	reader io.Reader
	writer io.Writer
	find   FindFunc
}

// NewSelector creates a Selector using stdin and stdout. When stdin is a
// terminal the fuzzy finder is used, otherwise a numbered prompt.
func NewSelector() *Selector {
	s := &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
	}
	if logging.IsTTY(os.Stdin) {
		s.find = fuzzyFind
	}
	return s
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// WithFinder returns a copy of s that uses find instead of the numbered
// prompt.
func (s *Selector) WithFinder(find FindFunc) *Selector {
	c := *s
	c.find = find
	return &c
}

// SelectSources asks the user which of sources to validate.
//
// Returns:
//   - ErrNoSources if the list is empty
//   - The list unchanged if it holds one source (no prompt)
//   - The chosen sources, in their original order
//   - ErrInvalidSelection if a choice is out of range
//   - ErrSelectionCancelled if the user aborts (EOF, Esc, Ctrl+C)
func (s *Selector) SelectSources(sources []source.FeedSource) ([]source.FeedSource, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	if len(sources) == 1 {
		return sources, nil
	}

	var idxs []int
	var err error
	if s.find != nil {
		idxs, err = s.find(sources)
	} else {
		idxs, err = s.promptNumbers(sources)
	}
	if err != nil {
		return nil, err
	}
	if len(idxs) == 0 {
		return nil, ErrSelectionCancelled
	}

	sort.Ints(idxs)
	chosen := make([]source.FeedSource, 0, len(idxs))
	prev := -1
	for _, i := range idxs {
		if i < 0 || i >= len(sources) {
			return nil, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", i+1, len(sources))
		}
		if i == prev {
			continue
		}
		prev = i
		chosen = append(chosen, sources[i])
	}
	return chosen, nil
}

// promptNumbers reads a comma separated list of 1-based choices. An empty
// answer selects everything.
func (s *Selector) promptNumbers(sources []source.FeedSource) ([]int, error) {
	fmt.Fprintf(s.writer, "Found %d feeds:\n", len(sources))
	for i, src := range sources {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, src)
	}
	fmt.Fprintf(s.writer, "Select (e.g. 1,3) [all]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		if errors.Is(err, io.EOF) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "all") {
		all := make([]int, len(sources))
		for i := range all {
			all[i] = i
		}
		return all, nil
	}

	var idxs []int
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number", part)
		}
		idxs = append(idxs, n-1)
	}
	return idxs, nil
}

func fuzzyFind(sources []source.FeedSource) ([]int, error) {
	idxs, err := fuzzyfinder.FindMulti(
		sources,
		func(i int) string {
			return sources[i].String()
		},
		fuzzyfinder.WithPromptString("feeds> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return fmt.Sprintf("Kind: %s\nLocation: %s\n\nTab to mark, Enter to validate the marked feeds.",
				sources[i].Kind, sources[i].Location)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}
	return idxs, nil
}
