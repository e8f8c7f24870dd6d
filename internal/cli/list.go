package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/suteru/suteru/internal/ui"
)

// List prints the current trash contents with their ELNs.
func (c *CLI) List() error {
	slog.Debug("cli.list started")
	defer slog.Debug("cli.list finished")

	items, err := c.storage.List()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println(c.version.AppName + ": No trashed files")
		return nil
	}

	ui.RenderList(os.Stdout, items, c.option.Long)
	return nil
}
