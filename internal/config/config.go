package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/go-playground/validator/v10"
	"github.com/muesli/reflow/indent"
	"github.com/suteru/suteru/internal/env"
	"gopkg.in/yaml.v2"
)

var validate *validator.Validate

type Config struct {
	Core    Core    `yaml:"core"`
	Listing Listing `yaml:"listing"`
	Filter  Filter  `yaml:"filter"`
}

type Core struct {
	// TrashDir overrides the default trash holding area root.
	TrashDir string `yaml:"trash_dir"`
	Verbose  bool   `yaml:"verbose"`
}

type Listing struct {
	Sort          string `yaml:"sort" validate:"required,oneof=none name size atime btime ctime mtime version extension inode owner group"`
	Reverse       bool   `yaml:"reverse"`
	DirsFirst     bool   `yaml:"dirs_first"`
	CaseSensitive bool   `yaml:"case_sensitive"`
	Unicode       bool   `yaml:"unicode"`
	ShowHidden    bool   `yaml:"show_hidden"`
	LightMode     bool   `yaml:"light_mode"`
}

type Filter struct {
	Include IncludeConfig `yaml:"include"`
	Exclude ExcludeConfig `yaml:"exclude"`
}

type IncludeConfig struct {
	Period int `yaml:"within_days"`
}

type ExcludeConfig struct {
	Files    []string   `yaml:"files"`
	Globs    []string   `yaml:"globs"`
	Patterns []string   `yaml:"patterns"`
	Size     SizeConfig `yaml:"size"`
}

type SizeConfig struct {
	Min string `yaml:"min" validate:"validSize"`
	Max string `yaml:"max" validate:"validSize"`
}

type configError struct {
	configPath string
	parser     parser
	err        error
}

type parser struct{}

func validSize(fl validator.FieldLevel) bool {
	value := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	if value == "" {
		return true // unbounded
	}
	re := regexp.MustCompile(`^\d+(B|KB|MB|GB|TB|PB)$`)
	return re.MatchString(value)
}

func (p parser) getDefaultConfigContents() string {
	content, _ := yaml.Marshal(defaultConfig())
	return string(content)
}

func (e configError) Error() string {
	return heredoc.Docf(`
		Couldn't find the "%s" config file.
		Please try again after creating it or specifying a valid config path.
		The recommended config path is %s (default).
		Example YAML file contents:
		---
		%s
		---
		Original error:
		%s
		`,
		e.configPath,
		env.SUTERU_CONFIG_PATH,
		e.parser.getDefaultConfigContents(),
		indent.String(e.err.Error(), 2),
	)
}

func (p parser) ensureDirExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		slog.Warn("creating directory as it does not exist", "dir", dirPath)
		if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
			return err
		}
	}
	return nil
}

func (p parser) createConfigFile(path string) error {
	if err := p.ensureDirExists(filepath.Dir(path)); err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Warn("creating config file as it does not exist", "config-file", path)
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0666)
		if err != nil {
			return err
		}
		defer f.Close()

		if _, err := f.WriteString(p.getDefaultConfigContents()); err != nil {
			return err
		}
	}
	return nil
}

func (p parser) ensureConfigFile() (string, error) {
	path := env.SUTERU_CONFIG_PATH
	if err := p.createConfigFile(path); err != nil {
		return "", configError{configPath: path, parser: p, err: err}
	}
	return path, nil
}

// Parse loads the config from path, falling back to the default location
// (creating it with defaults on first run). The result is validated.
func Parse(path string) (Config, error) {
	var p parser

	if path == "" {
		resolved, err := p.ensureConfigFile()
		if err != nil {
			return Config{}, err
		}
		path = resolved
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, configError{configPath: path, parser: p, err: err}
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	validate = validator.New()
	if err := validate.RegisterValidation("validSize", validSize); err != nil {
		return Config{}, err
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}
