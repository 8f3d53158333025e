package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"

	"github.com/pez-cli/pez/pkg/logger"
)

type BuilderConfig struct {
	// ID is the attribute that identifies Expression, Expressions, Argument and
	// Command elements.
	ID       string   `yaml:"id" koanf:"id"`
	Recurse  string   `yaml:"recurse" koanf:"recurse"`
	Discards []string `yaml:"discards" koanf:"discards"`
}

type RegexConfig struct {
	Options      []string      `yaml:"options" koanf:"options"`
	MatchTimeout time.Duration `yaml:"match_timeout" koanf:"match_timeout"`
}

type LoggingConfig struct {
	Level      string `yaml:"level" koanf:"level"`
	File       string `yaml:"file" koanf:"file"`
	MaxSize    int    `yaml:"max_size" koanf:"max_size"`
	MaxBackups int    `yaml:"max_backups" koanf:"max_backups"`
	MaxAge     int    `yaml:"max_age" koanf:"max_age"`
}

type Configuration struct {
	Builder BuilderConfig `yaml:"builder" koanf:"builder"`
	Regex   RegexConfig   `yaml:"regex" koanf:"regex"`
	Logging LoggingConfig `yaml:"logging" koanf:"logging"`
}

/* Vars */

var (
	cfgPath = ""

	Delimiter = "."
	EnvPrefix = "PEZ__"

	// Config is only populated by Init and is meant for the command layer.
	Config *Configuration

	// Internal
	log = logger.GetLogger("cfg")
)

/* Public */

func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"builder.id":          "name",
		"builder.recurse":     "inherits",
		"builder.discards":    []string{"inherits", "abstract"},
		"regex.options":       []string{},
		"regex.match_timeout": "0s",
		"logging.level":       "info",
		"logging.max_size":    5,
		"logging.max_backups": 3,
		"logging.max_age":     28,
	}
}

// Load builds an independent Configuration from defaults, the optional file at
// configFilePath and PEZ__ prefixed environment variables, in that order.
func Load(configFilePath string) (*Configuration, error) {
	k := koanf.New(Delimiter)

	if err := k.Load(confmap.Provider(Defaults(), Delimiter), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load file: %w", err)
		}
	}

	// PEZ__REGEX__MATCH_TIMEOUT -> regex.match_timeout
	if err := k.Load(env.Provider(EnvPrefix, Delimiter, func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, EnvPrefix)), "__", Delimiter)
	}), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := new(Configuration)
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func Init(configFilePath string) error {
	cfg, err := Load(configFilePath)
	if err != nil {
		return err
	}

	cfgPath = configFilePath
	Config = cfg

	log.Debugf("Parsed builder config: %+v", cfg.Builder)
	return nil
}

func (c *Configuration) Validate() error {
	if strings.TrimSpace(c.Builder.ID) == "" {
		return fmt.Errorf("validate: builder.id must not be empty")
	}
	if c.Regex.MatchTimeout < 0 {
		return fmt.Errorf("validate: regex.match_timeout must not be negative")
	}
	return nil
}

func ShowUsing() {
	if cfgPath == "" {
		log.Debug("Using built-in configuration defaults")
		return
	}
	log.Infof("Using %-10s = %q", "CONFIG", cfgPath)
}
