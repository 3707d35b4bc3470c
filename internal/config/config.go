package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kyle-1207/components-plat-sub002/internal/logger"
	"github.com/kyle-1207/components-plat-sub002/internal/utils"
)

type ServerConfig struct {
	Port         int      `yaml:"port"`
	AllowOrigins []string `yaml:"allow_origins"`
}

type PagingConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
}

type CacheConfig struct {
	KeyPrefix      string   `yaml:"key_prefix"`
	WarmCategories []string `yaml:"warm_categories"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Paging PagingConfig `yaml:"paging"`
	Cache  CacheConfig  `yaml:"cache"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			AllowOrigins: []string{
				"http://localhost:3000",
				"http://localhost:5173",
			},
		},
		Paging: PagingConfig{
			DefaultPageSize: 20,
			MaxPageSize:     200,
		},
		Cache: CacheConfig{
			KeyPrefix: "catalog",
		},
	}
}

// Load reads the optional YAML config file and applies environment overrides
// on top. A missing file is not an error; a malformed one is.
func Load(path string, log *logger.Logger) (*Config, error) {
	cfg := defaults()

	if path == "" {
		path = utils.GetEnv("CONFIG_PATH", "config.yaml", log)
	}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		if log != nil {
			log.Info("Loaded config file", "path", path)
		}
	case os.IsNotExist(err):
		if log != nil {
			log.Debug("No config file, using defaults", "path", path)
		}
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.Server.Port = utils.GetEnvAsInt("PORT", cfg.Server.Port, log)
	cfg.Paging.DefaultPageSize = utils.GetEnvAsInt("DEFAULT_PAGE_SIZE", cfg.Paging.DefaultPageSize, log)
	cfg.Paging.MaxPageSize = utils.GetEnvAsInt("MAX_PAGE_SIZE", cfg.Paging.MaxPageSize, log)

	if cfg.Paging.DefaultPageSize <= 0 {
		cfg.Paging.DefaultPageSize = 20
	}
	if cfg.Paging.MaxPageSize < cfg.Paging.DefaultPageSize {
		cfg.Paging.MaxPageSize = cfg.Paging.DefaultPageSize
	}
	return cfg, nil
}
