package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/suteru/suteru/internal/trash"
	"github.com/suteru/suteru/internal/ui"
)

// Del permanently erases trashed items. Named arguments erase those
// items directly; with no arguments an interactive selection pass runs
// over the current listing.
func (c *CLI) Del(args []string) error {
	slog.Debug("cli.del started")
	defer slog.Debug("cli.del finished")

	if len(args) == 1 && args[0] == "*" {
		return c.Clear()
	}
	if len(args) > 0 {
		var errs []error
		for _, name := range args {
			if err := c.storage.Erase(name); err != nil {
				errs = append(errs, err)
			}
		}
		return formatErrors(errs)
	}

	items, err := c.storage.List()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println(c.version.AppName + ": No trashed files")
		return nil
	}

	ui.RenderList(os.Stdout, items, c.option.Long)
	ui.PromptHelp(os.Stdout, "deleted")

	sel, err := c.readSelection()
	if err != nil {
		return err
	}
	if sel.Quit {
		return nil
	}

	targets := selectItems(items, sel)
	erased := 0
	for _, item := range targets {
		if err := c.storage.Erase(item.Name); err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		erased++
	}
	if erased > 0 {
		c.reportMutation("erased", erased)
	}
	return nil
}

// reportMutation prints the per-batch count plus the new trash total.
func (c *CLI) reportMutation(verb string, n int) {
	if total, err := c.storage.Count(); err == nil {
		fmt.Printf("%d file(s) %s (%d left)\n", n, verb, total)
		return
	}
	fmt.Printf("%d file(s) %s\n", n, verb)
}

// Clear empties the whole holding area after confirmation.
func (c *CLI) Clear() error {
	slog.Debug("cli.clear started")
	defer slog.Debug("cli.clear finished")

	count, err := c.storage.Count()
	if err != nil {
		return err
	}
	if count == 0 {
		fmt.Println(c.version.AppName + ": No trashed files")
		return nil
	}

	line, err := c.reader.ReadLine(fmt.Sprintf("Empty the trash (%d file(s))? [y/N] ", count))
	if err != nil {
		return err
	}
	if line != "y" && line != "Y" && line != "yes" {
		fmt.Println("Canceled.")
		return nil
	}

	erased, err := c.storage.EraseAll()
	if erased > 0 {
		c.reportMutation("erased", erased)
	}
	return err
}

// readSelection reads one selection batch, re-prompting while the batch
// is invalid. An invalid batch never selects anything.
func (c *CLI) readSelection() (ui.Selection, error) {
	for {
		line, err := c.reader.ReadLine(ui.Prompt)
		if err != nil {
			return ui.Selection{}, err
		}
		sel, err := ui.ParseSelection(line)
		if err != nil {
			if errors.Is(err, trash.ErrInvalidSelection) {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			return ui.Selection{}, err
		}
		return sel, nil
	}
}

// selectItems resolves a parsed selection against the listed items.
// Out-of-range ELNs are reported individually and skipped.
func selectItems(items []trash.Item, sel ui.Selection) []trash.Item {
	if sel.All {
		return items
	}
	var picked []trash.Item
	for _, eln := range sel.Indices {
		if eln < 1 || eln > len(items) {
			fmt.Fprintf(os.Stderr, "%d: no such ELN\n", eln)
			continue
		}
		picked = append(picked, items[eln-1])
	}
	return picked
}
