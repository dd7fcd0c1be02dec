// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Default locations following the numbered USER-FILES layout.
const (
	DefaultConfigPath = "USER-FILES/01.CONFIG/b2mirror.yml"
	DefaultInputDir   = "USER-FILES/04.INPUT"
	DefaultOutputDir  = "USER-FILES/05.OUTPUT"
)

const envPrefix = "B2MIRROR"

type B2Config struct {
	BucketName    string `mapstructure:"bucket_name" yaml:"bucket_name" validate:"required"`
	SyncThreads   int    `mapstructure:"sync_threads" yaml:"sync_threads" validate:"min=1"`
	RetryAttempts int    `mapstructure:"retry_attempts" yaml:"retry_attempts" validate:"min=0"`
	SyncTimeout   int    `mapstructure:"sync_timeout" yaml:"sync_timeout" validate:"min=1"`
	MaxFileSizeGB int    `mapstructure:"max_file_size_gb" yaml:"max_file_size_gb" validate:"min=1"`
}

type OnePasswordConfig struct {
	ItemName string `mapstructure:"item_name" yaml:"item_name" validate:"required"`
}

type ProcessingConfig struct {
	SupportedFormats []string `mapstructure:"supported_formats" yaml:"supported_formats"`
	ExcludePatterns  []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns"`
}

type PathsConfig struct {
	InputDir  string `mapstructure:"input_dir" yaml:"input_dir" validate:"required"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir" validate:"required"`
}

type Config struct {
	B2          B2Config          `mapstructure:"b2" yaml:"b2"`
	OnePassword OnePasswordConfig `mapstructure:"1password" yaml:"1password"`
	Processing  ProcessingConfig  `mapstructure:"processing" yaml:"processing"`
	Paths       PathsConfig       `mapstructure:"paths" yaml:"paths"`
}

// Default returns the built-in configuration, the base layer every load
// starts from.
func Default() *Config {
	return &Config{
		B2: B2Config{
			BucketName:    "fal-bucket",
			SyncThreads:   4,
			RetryAttempts: 3,
			SyncTimeout:   1800,
			MaxFileSizeGB: 5,
		},
		OnePassword: OnePasswordConfig{
			ItemName: "B2 Application Key",
		},
		Processing: ProcessingConfig{
			SupportedFormats: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".webp"},
			ExcludePatterns:  []string{`.*\.DS_Store`, `.*Thumbs\.db`},
		},
		Paths: PathsConfig{
			InputDir:  DefaultInputDir,
			OutputDir: DefaultOutputDir,
		},
	}
}

// Load reads configuration in three layers: built-in defaults, then the
// YAML file at path, then B2MIRROR_* environment variables. explicit marks
// a path the user passed on the command line; a problem with that file is
// an error, while an absent file at the default path just means defaults.
func Load(path string, explicit bool) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
		slog.Debug("No config file found, using defaults", "path", path)
	}

	var config Config
	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := v.Unmarshal(&config, viper.DecodeHook(hook)); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Checks struct constraints and that every exclusion pattern compiles.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	for _, pattern := range c.Processing.ExcludePatterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}

	return nil
}

// SyncTimeout returns the time budget for the sync subprocess.
func (c *Config) SyncTimeout() time.Duration {
	return time.Duration(c.B2.SyncTimeout) * time.Second
}

// WriteDefault writes the built-in configuration to path as YAML, creating
// parent directories. Refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("b2.bucket_name", def.B2.BucketName)
	v.SetDefault("b2.sync_threads", def.B2.SyncThreads)
	v.SetDefault("b2.retry_attempts", def.B2.RetryAttempts)
	v.SetDefault("b2.sync_timeout", def.B2.SyncTimeout)
	v.SetDefault("b2.max_file_size_gb", def.B2.MaxFileSizeGB)
	v.SetDefault("1password.item_name", def.OnePassword.ItemName)
	v.SetDefault("processing.supported_formats", def.Processing.SupportedFormats)
	v.SetDefault("processing.exclude_patterns", def.Processing.ExcludePatterns)
	v.SetDefault("paths.input_dir", def.Paths.InputDir)
	v.SetDefault("paths.output_dir", def.Paths.OutputDir)
}
