package cli

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"

	"github.com/matzehuels/libpanel/pkg/cache"
	"github.com/matzehuels/libpanel/pkg/detail"
	"github.com/matzehuels/libpanel/pkg/errors"
	"github.com/matzehuels/libpanel/pkg/library"
	"github.com/matzehuels/libpanel/pkg/registry"
)

// Cache backends.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the contents of config.toml. Missing keys keep their defaults.
type Config struct {
	RegistryURL string       `toml:"registry_url"`
	ScoringURL  string       `toml:"scoring_url"`
	PackageURL  string       `toml:"package_url"`
	Application string       `toml:"application"`
	Locale      string       `toml:"locale"`
	Cache       CacheConfig  `toml:"cache"`
	Server      ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the registry cache.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	TTL           time.Duration `toml:"ttl"`
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
}

// ServerConfig configures "libpanel serve".
type ServerConfig struct {
	Addr string `toml:"addr"`
}

func defaultConfig() Config {
	return Config{
		RegistryURL: registry.DefaultBaseURL,
		ScoringURL:  detail.DefaultScoringURL,
		PackageURL:  detail.DefaultPackageURL,
		Application: detail.DefaultApplication,
		Locale:      "en",
		Cache: CacheConfig{
			Backend:   backendFile,
			TTL:       registry.DefaultCacheTTL,
			RedisAddr: "localhost:6379",
		},
		Server: ServerConfig{Addr: "127.0.0.1:8080"},
	}
}

// loadConfig reads the config file at path. An empty path means the default
// location, which may be absent; an explicit path must exist.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	for name, raw := range map[string]string{
		"registry_url": c.RegistryURL,
		"scoring_url":  c.ScoringURL,
		"package_url":  c.PackageURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be an absolute URL, got %q", name, raw)
		}
	}
	switch c.Cache.Backend {
	case backendFile, backendRedis, backendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid locale %q", c.Locale)
	}
	return nil
}

// detailOptions maps the config onto renderer options.
func (c Config) detailOptions() detail.Options {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		tag = language.English
	}
	return detail.Options{
		ScoringURL:  c.ScoringURL,
		PackageURL:  c.PackageURL,
		Application: c.Application,
		Numbers:     library.NewNumberFormatter(tag),
	}
}

// cacheDirectory returns the file cache directory, honoring cache.dir.
func (c Config) cacheDirectory() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return cacheDir()
}

// newCache builds the configured cache backend. noCache forces the null
// cache. A file cache that cannot be created degrades to no caching.
func newCache(ctx context.Context, cfg Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "connect to redis at %s", cfg.Cache.RedisAddr)
		}
		return rc, nil
	default:
		dir, err := cfg.cacheDirectory()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open cache %s", dir)
		}
		return fc, nil
	}
}

// configDir returns the config directory using XDG standard (~/.config/libpanel/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
