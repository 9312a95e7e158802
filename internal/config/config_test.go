package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:   HTTPConfig{Port: 8080},
		Source: SourceConfig{Business: "data/business.csv", FAQ: "data/faq_kb.csv"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func ptr(v float64) *float64 { return &v }

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"invalid port", func(c *Config) { c.HTTP.Port = 0 }, "http.port"},
		{"port too large", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"unknown driver", func(c *Config) { c.Source.Driver = "s3" }, "source.driver"},
		{"redis without addrs", func(c *Config) { c.Source.Driver = DriverRedis }, "source.redis.addrs"},
		{"redis with addrs", func(c *Config) {
			c.Source.Driver = DriverRedis
			c.Source.Redis.Addrs = []string{"localhost:6379"}
		}, ""},
		{"http driver", func(c *Config) { c.Source.Driver = DriverHTTP }, ""},
		{"missing business", func(c *Config) { c.Source.Business = "" }, "source.business"},
		{"missing faq", func(c *Config) { c.Source.FAQ = "" }, "source.faq"},
		{"extra without location", func(c *Config) { c.Source.Extra = map[string]string{"menu": ""} }, "source.extra"},
		{"watch on http", func(c *Config) {
			c.Source.Driver = DriverHTTP
			c.Source.Watch = true
		}, "source.watch"},
		{"negative min score", func(c *Config) { c.Retrieval.MinScore = ptr(-0.1) }, "retrieval.min_score"},
		{"min score one", func(c *Config) { c.Retrieval.MinScore = ptr(1) }, "retrieval.min_score"},
		{"zero min score", func(c *Config) { c.Retrieval.MinScore = ptr(0) }, ""},
		{"max below default", func(c *Config) {
			c.Retrieval.DefaultTopK = 5
			c.Retrieval.MaxTopK = 2
		}, "retrieval.max_top_k"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Source.Driver != DriverFile {
		t.Errorf("expected Driver=file, got %q", cfg.Source.Driver)
	}
	if cfg.Source.WatchDebounceMS != 250 {
		t.Errorf("expected WatchDebounceMS=250, got %d", cfg.Source.WatchDebounceMS)
	}
	if cfg.Source.HTTPTimeoutSec != 10 {
		t.Errorf("expected HTTPTimeoutSec=10, got %d", cfg.Source.HTTPTimeoutSec)
	}
	if cfg.Source.Redis.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Source.Redis.ReadinessTimeout)
	}
	if cfg.Retrieval.DefaultTopK != 3 {
		t.Errorf("expected DefaultTopK=3, got %d", cfg.Retrieval.DefaultTopK)
	}
	if cfg.Retrieval.MaxTopK != 20 {
		t.Errorf("expected MaxTopK=20, got %d", cfg.Retrieval.MaxTopK)
	}
	if cfg.Retrieval.MinScore == nil || *cfg.Retrieval.MinScore != 0.08 {
		t.Errorf("expected MinScore=0.08, got %v", cfg.Retrieval.MinScore)
	}
	if cfg.Retrieval.MaxQueryLength != 1024 {
		t.Errorf("expected MaxQueryLength=1024, got %d", cfg.Retrieval.MaxQueryLength)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Source:    SourceConfig{Driver: DriverRedis, WatchDebounceMS: 1000},
		Retrieval: RetrievalConfig{DefaultTopK: 5, MaxTopK: 10, MinScore: ptr(0)},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Source.Driver != DriverRedis {
		t.Errorf("expected Driver=redis, got %q", cfg.Source.Driver)
	}
	if cfg.Source.WatchDebounceMS != 1000 {
		t.Errorf("expected WatchDebounceMS=1000, got %d", cfg.Source.WatchDebounceMS)
	}
	if cfg.Retrieval.DefaultTopK != 5 || cfg.Retrieval.MaxTopK != 10 {
		t.Errorf("top k overridden: %+v", cfg.Retrieval)
	}
	if *cfg.Retrieval.MinScore != 0 {
		t.Errorf("explicit zero min score must survive, got %v", *cfg.Retrieval.MinScore)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("BIZFAQ_TEST_PORT", "9090")
	t.Setenv("BIZFAQ_TEST_EMPTY", "")

	tests := []struct {
		in, want string
	}{
		{"port: ${BIZFAQ_TEST_PORT}", "port: 9090"},
		{"port: ${BIZFAQ_TEST_EMPTY:-8080}", "port: 8080"},
		{"port: ${BIZFAQ_TEST_PORT:-8080}", "port: 9090"},
		{"key: ${BIZFAQ_TEST_UNSET}", "key: "},
		{"plain: value", "plain: value"},
	}
	for _, tc := range tests {
		if got := string(expandEnvVars([]byte(tc.in))); got != tc.want {
			t.Errorf("expandEnvVars(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("BIZFAQ_TEST_FAQ", "kb/faq.csv")
	path := filepath.Join(t.TempDir(), "test.yaml")
	yaml := `
http:
  port: 8081
auth:
  api_keys: ["k1"]
source:
  business: data/business.csv
  faq: ${BIZFAQ_TEST_FAQ:-data/faq_kb.csv}
  extra:
    menu: data/menu.csv
retrieval:
  min_score: 0
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 8081 || cfg.Auth.APIKeys[0] != "k1" {
		t.Errorf("unexpected http/auth: %+v %+v", cfg.HTTP, cfg.Auth)
	}
	if cfg.Source.FAQ != "kb/faq.csv" {
		t.Errorf("env expansion failed: %q", cfg.Source.FAQ)
	}
	if cfg.Source.Extra["menu"] != "data/menu.csv" {
		t.Errorf("extra = %v", cfg.Source.Extra)
	}
	if *cfg.Retrieval.MinScore != 0 || cfg.Retrieval.DefaultTopK != 3 {
		t.Errorf("retrieval = %+v", cfg.Retrieval)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("http:\n  port: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("expected invalid config error, got %v", err)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected read error")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}
