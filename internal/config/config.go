package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the bizfaq service configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
	Source    SourceConfig    `yaml:"source"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// Source drivers.
const (
	DriverFile  = "file"
	DriverRedis = "redis"
	DriverHTTP  = "http"
)

// SourceConfig says where the tables live. Locations are file paths, Redis
// keys or URLs depending on Driver.
type SourceConfig struct {
	Driver          string            `yaml:"driver"` // file, redis, http (default: file)
	Business        string            `yaml:"business"`
	FAQ             string            `yaml:"faq"`
	Extra           map[string]string `yaml:"extra"` // kind -> location
	Watch           bool              `yaml:"watch"`
	WatchDebounceMS int               `yaml:"watch_debounce_ms"`
	Redis           RedisConfig       `yaml:"redis"`
	HTTPTimeoutSec  int               `yaml:"http_timeout_sec"`
}

// RedisConfig holds connection settings for the redis driver.
type RedisConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// RetrievalConfig holds ranking settings.
type RetrievalConfig struct {
	DefaultTopK    int      `yaml:"default_top_k"`
	MaxTopK        int      `yaml:"max_top_k"`
	MinScore       *float64 `yaml:"min_score"` // nil = 0.08; 0 is a valid floor
	MaxQueryLength int      `yaml:"max_query_length"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Source.Driver == "" {
		c.Source.Driver = DriverFile
	}
	if c.Source.WatchDebounceMS <= 0 {
		c.Source.WatchDebounceMS = 250
	}
	if c.Source.HTTPTimeoutSec <= 0 {
		c.Source.HTTPTimeoutSec = 10
	}
	if c.Source.Redis.ReadinessTimeout <= 0 {
		c.Source.Redis.ReadinessTimeout = 10
	}
	if c.Retrieval.DefaultTopK <= 0 {
		c.Retrieval.DefaultTopK = 3
	}
	if c.Retrieval.MaxTopK <= 0 {
		c.Retrieval.MaxTopK = 20
	}
	if c.Retrieval.MinScore == nil {
		v := 0.08
		c.Retrieval.MinScore = &v
	}
	if c.Retrieval.MaxQueryLength <= 0 {
		c.Retrieval.MaxQueryLength = 1024
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Source.Driver {
	case DriverFile, DriverHTTP:
	case DriverRedis:
		if len(c.Source.Redis.Addrs) == 0 {
			return fmt.Errorf("source.redis.addrs is required for the redis driver")
		}
	default:
		return fmt.Errorf("source.driver must be one of file, redis, http, got %q", c.Source.Driver)
	}
	if c.Source.Business == "" {
		return fmt.Errorf("source.business is required")
	}
	if c.Source.FAQ == "" {
		return fmt.Errorf("source.faq is required")
	}
	for kind, loc := range c.Source.Extra {
		if kind == "" || loc == "" {
			return fmt.Errorf("source.extra entries need a kind and a location, got %q: %q", kind, loc)
		}
	}
	if c.Source.Watch && c.Source.Driver != DriverFile {
		return fmt.Errorf("source.watch is only supported by the file driver")
	}
	if c.Retrieval.MinScore != nil && (*c.Retrieval.MinScore < 0 || *c.Retrieval.MinScore >= 1) {
		return fmt.Errorf("retrieval.min_score must be in [0, 1), got %g", *c.Retrieval.MinScore)
	}
	if c.Retrieval.MaxTopK < c.Retrieval.DefaultTopK {
		return fmt.Errorf("retrieval.max_top_k (%d) must be >= default_top_k (%d)",
			c.Retrieval.MaxTopK, c.Retrieval.DefaultTopK)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
