package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/suteru/suteru/internal/trash"
	"github.com/suteru/suteru/internal/ui"
)

// Restore moves trashed items back to their original locations. Named
// arguments restore those items directly and `a`, `all` or `*` restores
// everything. With no arguments an interactive selection loop runs
// until the trash is empty or the user quits.
func (c *CLI) Restore(args []string) error {
	slog.Debug("cli.restore started")
	defer slog.Debug("cli.restore finished")

	if len(args) > 0 {
		switch args[0] {
		case "a", "all", "*":
			return c.restoreAll()
		}
		var errs []error
		for _, name := range args {
			if err := c.restoreOne(name); err != nil {
				errs = append(errs, err)
			}
		}
		return formatErrors(errs)
	}

	for {
		items, err := c.storage.List()
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println(c.version.AppName + ": No trashed files")
			return nil
		}

		ui.RenderList(os.Stdout, items, c.option.Long)
		ui.PromptHelp(os.Stdout, "restored")

		sel, err := c.readSelection()
		if err != nil {
			return err
		}
		if sel.Quit {
			return nil
		}

		restored := 0
		for _, item := range selectItems(items, sel) {
			if err := c.restoreOne(item.Name); err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			restored++
		}
		if restored > 0 {
			c.reportMutation("restored", restored)
		}
	}
}

func (c *CLI) restoreAll() error {
	items, err := c.storage.List()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println(c.version.AppName + ": No trashed files")
		return nil
	}

	restored := 0
	var errs []error
	for _, item := range items {
		if err := c.restoreOne(item.Name); err != nil {
			errs = append(errs, err)
			continue
		}
		restored++
	}
	if restored > 0 {
		c.reportMutation("restored", restored)
	}
	return formatErrors(errs)
}

// restoreOne restores a single item. A sidecar cleanup failure means
// the payload is already back in place, so it is reported as a warning
// rather than a restore failure.
func (c *CLI) restoreOne(name string) error {
	err := c.storage.Restore(name)
	if err != nil && errors.Is(err, trash.ErrSidecarCleanup) {
		slog.Warn("restored but metadata record left behind", "name", name, "error", err)
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return nil
	}
	return err
}
