package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultListen      = "127.0.0.1:8080"
	defaultTimezone    = "UTC"
	defaultDataSource  = "./data/programs.json"
	defaultCacheDir    = "./cache/programs"
	defaultRefreshCron = "0 * * * *"
	defaultHorizonDays = 365
	defaultLogLevel    = "info"
)

// BasicAuthConfig holds HTTP Basic Auth credentials for the Web UI/API.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the catalog page and API.
	Listen string `yaml:"listen" json:"listen"`

	// Timezone is the IANA zone used to decide what "today" is when
	// inferring deadlines (e.g. "Asia/Seoul").
	Timezone string `yaml:"timezone" json:"timezone"`

	// DataSource is the programs.json location: a local path or an
	// http(s) URL. When it cannot be loaded the embedded fallback
	// catalog is served.
	DataSource string `yaml:"data_source" json:"data_source"`

	// CacheDir stores the last fetched body and its ETag/Last-Modified
	// for remote data sources.
	CacheDir string `yaml:"cache_dir" json:"cache_dir"`

	// RefreshCron is a cron-style schedule (e.g. "0 * * * *") for
	// reloading the catalog. "off" disables periodic reloads.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	// Watch reloads a local data file as soon as it changes on disk.
	Watch bool `yaml:"watch" json:"watch"`

	// HorizonDays bounds the upcoming-deadlines listing.
	HorizonDays int `yaml:"horizon_days" json:"horizon_days"`

	// LogLevel is one of "debug", "info", "error".
	LogLevel string `yaml:"log_level" json:"log_level"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all endpoints
	// except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:      defaultListen,
		Timezone:    defaultTimezone,
		DataSource:  defaultDataSource,
		CacheDir:    defaultCacheDir,
		RefreshCron: defaultRefreshCron,
		Watch:       true,
		HorizonDays: defaultHorizonDays,
		LogLevel:    defaultLogLevel,
	}
}

// Normalize fills in missing/zero values with defaults so that partially
// filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if c.Timezone == "" {
		c.Timezone = defaultTimezone
	}
	if c.DataSource == "" {
		c.DataSource = defaultDataSource
	}
	if c.CacheDir == "" {
		c.CacheDir = defaultCacheDir
	}
	if c.RefreshCron == "" {
		c.RefreshCron = defaultRefreshCron
	}
	if c.HorizonDays <= 0 {
		c.HorizonDays = defaultHorizonDays
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		c.LogLevel = defaultLogLevel
	}
}

// RefreshEnabled reports whether periodic catalog reloads are configured.
func (c *Config) RefreshEnabled() bool {
	return c.RefreshCron != "" && !strings.EqualFold(c.RefreshCron, "off")
}

// RemoteSource reports whether DataSource is an http(s) URL.
func (c *Config) RemoteSource() bool {
	return strings.HasPrefix(c.DataSource, "http://") || strings.HasPrefix(c.DataSource, "https://")
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Caller decides whether running without a saved file is fine.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return cfg, nil
}

// Save writes cfg to path atomically (temp file + rename) with 0600 perms,
// creating the parent directory (0700) when needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".compass-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save is a convenience method that delegates to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
