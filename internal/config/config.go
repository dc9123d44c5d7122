package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/coptic/envgen/internal/envfile"
)

// Config represents the root configuration structure
type Config struct {
	Output       string       `mapstructure:"output"`
	Name         string       `mapstructure:"name"`
	User         string       `mapstructure:"user"`
	MaskPassword bool         `mapstructure:"mask_password"`
	Target       TargetConfig `mapstructure:"target"`
	Check        CheckConfig  `mapstructure:"check"`
	LogFile      string       `mapstructure:"log_file"`
	Debug        bool         `mapstructure:"debug"`
}

// TargetConfig is the host and port written into DATABASE_URL
type TargetConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// CheckConfig holds settings for the connectivity check
type CheckConfig struct {
	// Host overrides the .env host, since host.docker.internal usually
	// only resolves from inside a container.
	Host    string        `mapstructure:"host"`
	SSLMode string        `mapstructure:"sslmode"`
	Timeout time.Duration `mapstructure:"timeout"`
}

var validSSLModes = []string{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"}

// Seed returns the preset database name and username. Empty fields are
// prompted for.
func (c *Config) Seed() envfile.Values {
	return envfile.Values{Name: c.Name, User: c.User}
}

// EnvTarget converts the target section for the envfile package.
func (c *Config) EnvTarget() envfile.Target {
	return envfile.Target{Host: c.Target.Host, Port: c.Target.Port}
}

// LoadConfig loads configuration from ~/.config/envgen/config.yaml,
// environment variables and any flags bound to v. The working directory is
// not searched so a project's own config.yaml is never picked up.
func LoadConfig(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.config/envgen")
	return load(v, true)
}

// LoadConfigFromPath loads configuration from an explicit file, which must exist.
func LoadConfigFromPath(v *viper.Viper, path string) (*Config, error) {
	v.SetConfigFile(path)
	return load(v, false)
}

func load(v *viper.Viper, optional bool) (*Config, error) {
	// Environment variable support
	v.SetEnvPrefix("ENVGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !optional || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidateConfig validates the configuration values
func ValidateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.Output) == "" {
		return fmt.Errorf("output cannot be empty")
	}
	if cfg.Target.Host == "" {
		return fmt.Errorf("target.host cannot be empty")
	}
	if cfg.Target.Port < 1 || cfg.Target.Port > 65535 {
		return fmt.Errorf("target.port must be between 1 and 65535, got %d", cfg.Target.Port)
	}
	if !slices.Contains(validSSLModes, cfg.Check.SSLMode) {
		return fmt.Errorf("check.sslmode must be one of: %v, got %s", validSSLModes, cfg.Check.SSLMode)
	}
	if cfg.Check.Timeout <= 0 {
		return fmt.Errorf("check.timeout must be positive, got %v", cfg.Check.Timeout)
	}
	return nil
}

// applyDefaults sets default configuration values
func applyDefaults(v *viper.Viper) {
	v.SetDefault("output", envfile.DefaultPath)
	v.SetDefault("name", "")
	v.SetDefault("user", "")
	v.SetDefault("mask_password", false)

	v.SetDefault("target.host", envfile.DefaultHost)
	v.SetDefault("target.port", envfile.DefaultPort)

	v.SetDefault("check.host", "")
	v.SetDefault("check.sslmode", "disable")
	v.SetDefault("check.timeout", "10s")

	v.SetDefault("log_file", "")
	v.SetDefault("debug", false)
}
