package cli

import (
	"errors"
	"fmt"
	"strings"
)

// formatErrors collapses per-item failures into one numbered summary so
// a batch reports every failure instead of just the first.
func formatErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	lines := []string{fmt.Sprintf("%d errors occurred:", len(errs))}
	for _, err := range errs {
		lines = append(lines, fmt.Sprintf("\t* %s", err))
	}
	return errors.New(strings.Join(lines, "\n"))
}
