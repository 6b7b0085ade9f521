package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Audio  AudioConfig  `mapstructure:"audio" yaml:"audio"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
}

type AudioConfig struct {
	SampleRate int    `mapstructure:"sample_rate" yaml:"sample_rate"`
	Backend    string `mapstructure:"backend" yaml:"backend"` // "alsa", "auto"
	Device     string `mapstructure:"device" yaml:"device"`   // backend device name, empty for default
}

type OutputConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory"`
}

var defaultConfig = Config{
	Audio: AudioConfig{
		SampleRate: 44100,
		Backend:    "auto",
		Device:     "",
	},
	Output: OutputConfig{
		Directory: os.ExpandEnv("$HOME/Music/wavebox"),
	},
}

// Default returns a copy of the built-in configuration.
func Default() *Config {
	cfg := defaultConfig
	return &cfg
}

// Load reads the configuration from the given yaml file, falling back to
// defaults for missing keys. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("audio.sample_rate", defaultConfig.Audio.SampleRate)
	v.SetDefault("audio.backend", defaultConfig.Audio.Backend)
	v.SetDefault("audio.device", defaultConfig.Audio.Device)
	v.SetDefault("output.directory", defaultConfig.Output.Directory)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Output.Directory = os.ExpandEnv(cfg.Output.Directory)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the recorder cannot work with.
func (c *Config) Validate() error {
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", c.Audio.SampleRate)
	}
	switch c.Audio.Backend {
	case "", "auto", "alsa":
	default:
		return fmt.Errorf("unknown audio backend: %s", c.Audio.Backend)
	}
	if c.Output.Directory == "" {
		return fmt.Errorf("output directory is required")
	}
	return nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(os.ExpandEnv("$HOME"), ".config", "wavebox.yaml")
}
