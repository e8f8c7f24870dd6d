// Package ui implements the line-oriented selection surface: an
// ELN-numbered listing and free-form index selection parsing.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/suteru/suteru/internal/trash"
)

// LineReader supplies one line of user input per prompt. The interactive
// implementation reads stdin; tests substitute their own.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

type stdinReader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineReader returns a LineReader over the given streams.
func NewLineReader(in io.Reader, out io.Writer) LineReader {
	return &stdinReader{in: bufio.NewReader(in), out: out}
}

// ReadLine prompts until a non-empty line arrives.
func (r *stdinReader) ReadLine(prompt string) (string, error) {
	for {
		fmt.Fprint(r.out, prompt)
		line, err := r.in.ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
		if err != nil {
			return "", err
		}
	}
}

// Selection is the parsed form of one input batch.
type Selection struct {
	// Quit means leave the loop without mutating anything.
	Quit bool

	// All selects every listed item.
	All bool

	// Indices are the requested ELNs, 1-based, deduplicated, possibly
	// out of range: range errors are per-item, not batch errors.
	Indices []int
}

// ParseSelection parses a whitespace-separated batch of tokens: `q`, `*`,
// positive integers, and n-m ranges. Any other token invalidates the
// whole batch; nothing may be mutated for it.
func ParseSelection(line string) (Selection, error) {
	var sel Selection
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return sel, fmt.Errorf("%w: empty input", trash.ErrInvalidSelection)
	}

	var indices []int
	for _, tok := range fields {
		switch {
		case tok == "q":
			sel.Quit = true
		case tok == "*":
			sel.All = true
		default:
			parsed, err := parseIndexToken(tok)
			if err != nil {
				return Selection{}, err
			}
			indices = append(indices, parsed...)
		}
	}

	if len(indices) > 0 {
		sel.Indices = lo.Uniq(indices)
	}
	return sel, nil
}

func parseIndexToken(tok string) ([]int, error) {
	if lowRaw, highRaw, ok := strings.Cut(tok, "-"); ok && lowRaw != "" {
		low, err1 := strconv.Atoi(lowRaw)
		high, err2 := strconv.Atoi(highRaw)
		if err1 != nil || err2 != nil || low <= 0 || high < low {
			return nil, fmt.Errorf("%w: %q is not a valid range", trash.ErrInvalidSelection, tok)
		}
		indices := make([]int, 0, high-low+1)
		for i := low; i <= high; i++ {
			indices = append(indices, i)
		}
		return indices, nil
	}

	n, err := strconv.Atoi(tok)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("%w: %q is not a valid ELN", trash.ErrInvalidSelection, tok)
	}
	return []int{n}, nil
}
