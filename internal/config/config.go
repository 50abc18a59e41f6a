// Package config loads the runtime configuration: file first, then
// ZENA_* environment overrides, with working defaults for local runs.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EmbeddingConfig selects and parameterizes the embedding provider.
type EmbeddingConfig struct {
	// Offline switches to the deterministic local embedder (no API key
	// needed). Intended for development and CI.
	Offline   bool   `mapstructure:"offline"`
	Model     string `mapstructure:"model"`
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`
	CacheSize int    `mapstructure:"cache_size"`
}

// Config is the full runtime configuration.
type Config struct {
	ListenAddr   string `mapstructure:"listen_addr"`
	Debug        bool   `mapstructure:"debug"`
	DatabasePath string `mapstructure:"database_path"`

	// Declarative routing inputs, loaded once at startup.
	ProfilesPath string `mapstructure:"profiles_path"`
	RoutingPath  string `mapstructure:"routing_path"`

	Embedding EmbeddingConfig `mapstructure:"embedding"`
}

// Load reads the configuration. path may be empty, in which case only
// defaults and environment variables apply.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("listen_addr", ":8090")
	v.SetDefault("debug", false)
	v.SetDefault("database_path", "zena.db")
	v.SetDefault("profiles_path", "configs/profiles.yaml")
	v.SetDefault("routing_path", "configs/routing.yaml")
	v.SetDefault("embedding.offline", false)
	v.SetDefault("embedding.model", "text-embedding-3-small")
	v.SetDefault("embedding.api_key", "")
	v.SetDefault("embedding.base_url", "https://api.openai.com/v1")
	v.SetDefault("embedding.cache_size", 10000)

	v.SetEnvPrefix("ZENA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
