package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Chart output
	OutputDir   string  `mapstructure:"output_dir" yaml:"output_dir"`
	ImageFormat string  `mapstructure:"image_format" yaml:"image_format"`
	FigWidth    float64 `mapstructure:"fig_width" yaml:"fig_width"`
	FigHeight   float64 `mapstructure:"fig_height" yaml:"fig_height"`
	OpenCommand string  `mapstructure:"open_command" yaml:"open_command"`

	// Plot defaults
	Bins      int    `mapstructure:"bins" yaml:"bins"`
	Color     string `mapstructure:"color" yaml:"color"`
	EdgeColor string `mapstructure:"edge_color" yaml:"edge_color"`
	Palette   string `mapstructure:"palette" yaml:"palette"`

	// Loading
	MissingTokens []string `mapstructure:"missing_tokens" yaml:"missing_tokens"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Dir returns ~/.edakit.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".edakit"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.edakit/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("EDAKIT")
	v.AutomaticEnv()

	v.SetDefault("output_dir", ".")
	v.SetDefault("image_format", "png")
	v.SetDefault("fig_width", 10.0)
	v.SetDefault("fig_height", 6.0)
	v.SetDefault("open_command", "")
	v.SetDefault("bins", 50)
	v.SetDefault("color", "skyblue")
	v.SetDefault("edge_color", "black")
	v.SetDefault("palette", "default")
	v.SetDefault("missing_tokens", []string{})
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// A missing file is fine; one that exists must parse.
	if err := v.ReadInConfig(); err != nil && !configNotFound(err) {
		return nil, fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.ImageFormat = strings.ToLower(c.ImageFormat)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func configNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}

// Validate rejects values no command could use.
func (c *Global) Validate() error {
	switch c.ImageFormat {
	case "png", "jpg", "jpeg", "svg":
	default:
		return fmt.Errorf("invalid image_format: %s (use png, jpg or svg)", c.ImageFormat)
	}
	if c.Bins < 1 {
		return fmt.Errorf("invalid bins: %d (must be at least 1)", c.Bins)
	}
	if c.FigWidth <= 0 || c.FigHeight <= 0 {
		return fmt.Errorf("invalid figure size: %gx%g", c.FigWidth, c.FigHeight)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", c.LogLevel)
	}
	return nil
}
