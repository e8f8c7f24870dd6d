package env

import (
	"os"
	"path/filepath"
)

const (
	defaultXDGConfigDirname = ".config"
	defaultXDGDataDirname   = ".local/share"
)

var (
	// SUTERU_CONFIG_PATH is the YAML config file location.
	SUTERU_CONFIG_PATH string

	// SUTERU_LOG_PATH is the debug log location.
	SUTERU_LOG_PATH string

	// SUTERU_TRASH_DIR is the trash holding area root, containing the
	// files/ and info/ subdirectories.
	SUTERU_TRASH_DIR string
)

func init() {
	// https://github.com/charmbracelet/log/issues/35
	os.Setenv("CLICOLOR_FORCE", "1")

	// Follow https://specifications.freedesktop.org/basedir-spec/latest/
	if SUTERU_CONFIG_PATH = os.Getenv("SUTERU_CONFIG_PATH"); SUTERU_CONFIG_PATH == "" {
		configDir := os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			configDir = filepath.Join(mustHomeDir(), defaultXDGConfigDirname)
		}
		SUTERU_CONFIG_PATH = filepath.Join(configDir, "suteru", "config.yaml")
	}

	if SUTERU_LOG_PATH = os.Getenv("SUTERU_LOG_PATH"); SUTERU_LOG_PATH == "" {
		SUTERU_LOG_PATH = filepath.Join(dataDir(), "suteru", "debug.log")
	}

	if SUTERU_TRASH_DIR = os.Getenv("SUTERU_TRASH_DIR"); SUTERU_TRASH_DIR == "" {
		SUTERU_TRASH_DIR = filepath.Join(dataDir(), "suteru", "trash")
	}
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(mustHomeDir(), defaultXDGDataDirname)
}

func mustHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return home
}
