// Package config loads soractl settings from defaults, an optional YAML
// file and SORA_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// SORA_SERVER_PORT.
const EnvPrefix = "SORA"

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Store  StoreConfig  `mapstructure:"store"`
	Cache  CacheConfig  `mapstructure:"cache"`
}

type ServerConfig struct {
	Port int `mapstructure:"port" validate:"min=1,max=65535"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode" validate:"oneof=dev prod development production"`
}

// StoreConfig selects the badger directory. InMemory ignores Path.
type StoreConfig struct {
	Path     string `mapstructure:"path" validate:"required_unless=InMemory true"`
	InMemory bool   `mapstructure:"in_memory"`
}

type CacheConfig struct {
	MaxEntries int `mapstructure:"max_entries" validate:"min=1"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.mode", "dev")
	v.SetDefault("store.path", "data/sora")
	v.SetDefault("store.in_memory", false)
	v.SetDefault("cache.max_entries", 1024)
}

// Load reads configuration. An empty path skips the file; a named file that
// does not exist is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges after all sources are merged.
func (c *Config) Validate() error {
	v := validator.New()
	// Report keys as they are written in files and env names, e.g. log.mode.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		return name
	})
	err := v.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		key := strings.TrimPrefix(fe.Namespace(), "Config.")
		msgs[i] = fmt.Sprintf("%s (%s=%v)", key, fe.Tag(), fe.Value())
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Addr is the listen address for the API server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
