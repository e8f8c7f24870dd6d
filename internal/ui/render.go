package ui

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/suteru/suteru/internal/trash"
)

var (
	bold    = color.New(color.Bold)
	dirName = color.New(color.FgBlue, color.Bold)
	lnkName = color.New(color.FgCyan)
	elnNum  = color.New(color.FgYellow)
)

func init() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

// RenderList prints the ELN-numbered listing of trashed items in their
// snapshot order. The long form adds size, deletion time and origin.
func RenderList(w io.Writer, items []trash.Item, long bool) {
	bold.Fprintln(w, "Trashed files")
	fmt.Fprintln(w)

	if long {
		renderTable(w, items)
		return
	}

	pad := len(strconv.Itoa(len(items)))
	for i, item := range items {
		elnNum.Fprintf(w, "%*d", pad, i+1)
		fmt.Fprint(w, " ")
		printName(w, item)
		fmt.Fprintln(w)
	}
}

func printName(w io.Writer, item trash.Item) {
	switch {
	case item.Entry.IsDir:
		dirName.Fprint(w, item.Name)
	case isSymlink(item.TrashPath):
		lnkName.Fprint(w, item.Name)
	default:
		fmt.Fprint(w, item.Name)
	}
}

func isSymlink(path string) bool {
	fi, err := os.Lstat(path)
	return err == nil && fi.Mode()&os.ModeSymlink != 0
}

func renderTable(w io.Writer, items []trash.Item) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ELN", "Name", "Size", "Deleted", "Original Path"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)

	for i, item := range items {
		deleted := ""
		if !item.DeletedAt.IsZero() {
			deleted = humanize.Time(item.DeletedAt)
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			item.Name,
			humanize.Bytes(uint64(item.Entry.Size)),
			deleted,
			item.OriginalPath,
		})
	}
	table.Render()
}

// Prompt is the line shown before reading a selection batch.
const Prompt = "> "

// PromptHelp explains the accepted selection syntax.
func PromptHelp(w io.Writer, verb string) {
	fmt.Fprintf(w, "\nEnter 'q' to quit\nFile(s) to be %s (ex: 1 2-6, or *):\n", verb)
}
