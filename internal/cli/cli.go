// Package cli wires the command surface: trashing files, listing them
// with ELNs, interactive deletion and restoration, and emptying the
// holding area.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jessevdk/go-flags"
	"github.com/rs/xid"
	"github.com/suteru/suteru/internal/config"
	"github.com/suteru/suteru/internal/debug"
	"github.com/suteru/suteru/internal/env"
	"github.com/suteru/suteru/internal/ordering"
	"github.com/suteru/suteru/internal/trash"
	"github.com/suteru/suteru/internal/ui"
)

type Option struct {
	Restore bool   `short:"b" long:"restore" description:"Restore trashed files"`
	Long    bool   `short:"l" long:"long" description:"Use the long listing format"`
	Config  string `long:"config" description:"Path to config file" default:""`

	Meta MetaOption `group:"Meta Options"`
}

type MetaOption struct {
	Version bool   `short:"V" long:"version" description:"Show version"`
	Debug   string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
}

type CLI struct {
	version Version
	option  Option
	config  config.Config
	runID   string
	storage *trash.Storage
	reader  ui.LineReader
}

var runID = sync.OnceValue(func() string {
	return xid.New().String()
})

func Run(v Version) error {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = v.AppName
	parser.Usage = "[ls | del | clear | files...] | -b [a|all|*]"
	args, err := parser.Parse()
	if err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	logDir := filepath.Dir(env.SUTERU_LOG_PATH)
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return err
		}
	}

	var w io.Writer
	if file, err := os.OpenFile(env.SUTERU_LOG_PATH, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
		w = file
	} else {
		w = os.Stderr
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           log.DebugLevel,
	})
	logger.SetOutput(w)
	logger.With("run_id", runID())
	slog.SetDefault(slog.New(logger))

	defer slog.Debug("main function finished\n\n\n")
	slog.Debug("main function started", "version", v.Version, "revision", v.Revision, "buildDate", v.BuildDate)

	cfg, err := config.Parse(opt.Config)
	if err != nil {
		return err
	}

	storage, err := newStorage(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize trash storage: %w", err)
	}

	cli := CLI{
		version: v,
		option:  opt,
		config:  cfg,
		runID:   runID(),
		storage: storage,
		reader:  ui.NewLineReader(os.Stdin, os.Stdout),
	}

	if err := cli.Run(args); err != nil {
		slog.Error("exit", "error", fmt.Errorf("cli.run failed: %w", err))
		return err
	}
	return nil
}

func newStorage(cfg config.Config) (*trash.Storage, error) {
	root := cfg.Core.TrashDir
	if root == "" {
		root = env.SUTERU_TRASH_DIR
	}

	key, err := ordering.ParseKey(cfg.Listing.Sort)
	if err != nil {
		return nil, err
	}

	filter := trash.ScanFilter{
		ShowHidden:      cfg.Listing.ShowHidden,
		ExcludeFiles:    cfg.Filter.Exclude.Files,
		ExcludeGlobs:    cfg.Filter.Exclude.Globs,
		ExcludePatterns: cfg.Filter.Exclude.Patterns,
		MinSize:         cfg.Filter.Exclude.Size.Min,
		MaxSize:         cfg.Filter.Exclude.Size.Max,
		WithinDays:      cfg.Filter.Include.Period,
	}

	return trash.NewStorage(trash.Config{
		Dirs: trash.NewDirs(root),
		Ordering: ordering.Options{
			Key:           key,
			Reverse:       cfg.Listing.Reverse,
			DirsFirst:     cfg.Listing.DirsFirst,
			CaseSensitive: cfg.Listing.CaseSensitive,
			Unicode:       cfg.Listing.Unicode,
			LightMode:     cfg.Listing.LightMode,
		},
		Filter: filter,
	})
}

func (c CLI) Run(args []string) error {
	switch {
	case c.option.Meta.Version:
		fmt.Fprint(os.Stdout, c.version.Print())
		return nil

	case c.option.Restore:
		return c.Restore(args)
	}

	switch c.option.Meta.Debug {
	case "live":
		return debug.Logs(os.Stdout, true)
	case "full":
		return debug.Logs(os.Stdout, false)
	}

	if len(args) == 0 {
		return c.List()
	}

	switch args[0] {
	case "ls", "list":
		return c.List()
	case "del":
		return c.Del(args[1:])
	case "clear", "empty":
		return c.Clear()
	case "restore", "undel":
		return c.Restore(args[1:])
	}

	return c.Put(args)
}
