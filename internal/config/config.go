// Package config loads the optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-katexpdf/internal/fileutil"
)

// Sentinel errors for configuration loading.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
)

// NotFoundError lists the paths searched for a config file.
// It matches ErrConfigNotFound with errors.Is.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: tried %s", ErrConfigNotFound, strings.Join(e.Tried, ", "))
}

// Is reports whether target is ErrConfigNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrConfigNotFound
}

// AppDirName is the directory under the user config dir searched by name.
const AppDirName = "go-katexpdf"

// MaxPathLength bounds path-valued fields.
const MaxPathLength = 4096

// Config is the YAML configuration. Zero values mean "not set": flags and
// environment variables still apply on top.
type Config struct {
	Input     string       `yaml:"input"`     // file or directory, default "."
	Refresh   bool         `yaml:"refresh"`   // regenerate existing PDFs
	Header    bool         `yaml:"header"`    // title header and page footer
	Workers   *int         `yaml:"workers"`   // nil = unset, 0 = auto
	KeepGoing bool         `yaml:"keepGoing"` // continue past failed files
	Timeout   string       `yaml:"timeout"`   // Go duration, e.g. "90s"
	Assets    AssetsConfig `yaml:"assets"`
}

// AssetsConfig points at a directory overriding the embedded template and style.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// Validate checks field ranges and formats.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Input, validation.Length(0, MaxPathLength)),
		validation.Field(&c.Workers, validation.Min(0)),
		validation.Field(&c.Timeout, validation.By(positiveDuration)),
		validation.Field(&c.Assets),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Validate checks the asset path length.
func (a AssetsConfig) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.BasePath, validation.Length(0, MaxPathLength)),
	)
}

// WorkerCount returns the configured worker count and whether it was set.
func (c *Config) WorkerCount() (int, bool) {
	if c.Workers == nil {
		return 0, false
	}
	return *c.Workers, true
}

// TimeoutDuration returns the parsed timeout, or 0 when unset.
// Call after Validate.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

func positiveDuration(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return errors.New("must be a duration such as 90s or 2m")
	}
	if d <= 0 {
		return errors.New("must be positive")
	}
	return nil
}

// LoadConfig loads a config by name or path.
// A value containing a path separator is read as-is; a bare name is looked
// up as name.yaml or name.yml in the current directory, then in the user
// config directory (~/.config/go-katexpdf/ on Linux).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Tried: []string{configPath}}
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := unmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Tried: triedPaths}
}
