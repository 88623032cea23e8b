package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime configuration, read from an optional YAML file
// with environment-variable overrides (prefix CATALOG_, dots become
// underscores).
type Config struct {
	HTTPAddr        string        `mapstructure:"http_addr"`
	Mode            string        `mapstructure:"mode"` // debug | release | test
	CatalogPrefix   string        `mapstructure:"catalog_prefix"`
	SiteID          string        `mapstructure:"site_id"`
	DatasetPath     string        `mapstructure:"dataset_path"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

// Load reads configuration from path. An empty path falls back to
// configs/config.yaml; a missing file is not an error, defaults and
// environment variables still apply.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("mode", "release")
	v.SetDefault("catalog_prefix", "MLA")
	v.SetDefault("site_id", "MLA")
	v.SetDefault("dataset_path", "")
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("cors_origins", []string{"*"})

	if path == "" {
		path = "configs/config.yaml"
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
