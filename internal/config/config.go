// Package config loads server and pipeline configuration from an optional
// YAML file plus environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Validation ValidationConfig `mapstructure:"validation"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Debug        bool          `mapstructure:"debug"`
}

// Address returns the listen address
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ValidationConfig holds validation defaults
type ValidationConfig struct {
	DefaultProfile string `mapstructure:"default_profile"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from the given file (optional) merged over
// defaults, with environment variables taking precedence.
func Load(configPath string) (*Config, error) {
	setDefaults()

	viper.SetEnvPrefix("EINVOICE")
	viper.AutomaticEnv()

	if configPath != "" {
		viper.SetConfigFile(configPath)
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.debug", false)

	viper.SetDefault("validation.default_profile", "en16931")

	viper.SetDefault("log.level", "info")
}
