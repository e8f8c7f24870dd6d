package cli

import (
	"errors"
	"fmt"
	"log/slog"
)

// Put trashes each named path in order, continuing past per-path
// failures so one bad argument does not abandon the rest.
func (c *CLI) Put(args []string) error {
	slog.Debug("cli.put started")
	defer slog.Debug("cli.put finished")

	if len(args) == 0 {
		return errors.New("too few arguments")
	}

	var trashed int
	var errs []error
	for _, arg := range args {
		name, err := c.storage.Put(arg)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to trash %s: %w", arg, err))
			continue
		}
		slog.Debug("cli.put trashed", "path", arg, "name", name)
		trashed++
		if c.config.Core.Verbose {
			fmt.Printf("trashed '%s'\n", arg)
		}
	}

	if trashed > 0 {
		total, err := c.storage.Count()
		if err == nil {
			fmt.Printf("%d file(s) trashed (%d total)\n", trashed, total)
		} else {
			fmt.Printf("%d file(s) trashed\n", trashed)
		}
	}
	return formatErrors(errs)
}
