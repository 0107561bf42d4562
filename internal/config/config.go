package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/unisearch/internal/domain/content"
	"github.com/kailas-cloud/unisearch/internal/domain/score"
	"github.com/kailas-cloud/unisearch/internal/domain/search/policy"
	"github.com/kailas-cloud/unisearch/internal/domain/search/request"
)

// Config holds the unisearch configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Cache      CacheConfig      `yaml:"cache"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Search     SearchConfig     `yaml:"search"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	// RankingOverrides is the raw ranking section; Ranking is the effective
	// table after ApplyDefaults.
	RankingOverrides policy.Overrides `yaml:"ranking"`
	Ranking          policy.Ranking   `yaml:"-"`
	QueryLog         QueryLogConfig   `yaml:"querylog"`
	Auth             AuthConfig       `yaml:"auth"`
	Logging          LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds admin API authentication settings.
type AuthConfig struct {
	AdminAPIKeys []string `yaml:"admin_api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN              string `yaml:"dsn"`
	MaxConns         int32  `yaml:"max_conns"`
	ReadinessTimeout int    `yaml:"readiness_timeout_sec"`
	MigrateOnStart   bool   `yaml:"migrate_on_start"`
}

// CacheConfig holds the optional Redis intent cache settings.
type CacheConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addrs    []string      `yaml:"addrs"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// ClassifierConfig holds the LLM intent classifier settings.
type ClassifierConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Provider string        `yaml:"provider"`
	BaseURL  string        `yaml:"base_url"`
	APIKey   string        `yaml:"api_key"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
}

// SearchConfig holds orchestration limits.
type SearchConfig struct {
	CandidateLimit int     `yaml:"candidate_limit"`
	FuzzyFloor     float64 `yaml:"fuzzy_floor"`
}

// ScoringConfig overrides score model constants. Zero values keep defaults.
type ScoringConfig struct {
	GradePoints     map[content.Grade]float64 `yaml:"grade_points"`
	TrustWeight     *float64                  `yaml:"trust_weight"`
	RelevanceWeight *float64                  `yaml:"relevance_weight"`
	AccuracyWeight  *float64                  `yaml:"accuracy_weight"`
	RecencyWindow   *time.Duration            `yaml:"recency_window"`
	RecencyBonus    *float64                  `yaml:"recency_bonus"`
	PopularityScale *float64                  `yaml:"popularity_scale"`
	PopularityCap   *float64                  `yaml:"popularity_cap"`
}

// QueryLogConfig holds query analytics settings.
type QueryLogConfig struct {
	Enabled    bool `yaml:"enabled"`
	BufferSize int  `yaml:"buffer_size"`
}

// Defaults used by ApplyDefaults.
const (
	DefaultClassifierModel = "gpt-4o-mini"
	DefaultCacheTTL        = 10 * time.Minute
	DefaultFuzzyFloor      = 0.1
	DefaultQueryLogBuffer  = 1024
)

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse expands ${VAR} references, decodes YAML, applies defaults and validates.
func Parse(data []byte) (Config, error) {
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
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.MaxConns <= 0 {
		c.Database.MaxConns = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Classifier.Provider == "" {
		c.Classifier.Provider = "openai"
	}
	if c.Classifier.Model == "" {
		c.Classifier.Model = DefaultClassifierModel
	}
	if c.Classifier.Timeout <= 0 {
		c.Classifier.Timeout = 3 * time.Second
	}
	if c.Search.CandidateLimit <= 0 {
		c.Search.CandidateLimit = 50
	}
	if c.Search.FuzzyFloor <= 0 {
		c.Search.FuzzyFloor = DefaultFuzzyFloor
	}
	c.Ranking = policy.Default().Apply(c.RankingOverrides)
	if c.QueryLog.BufferSize <= 0 {
		c.QueryLog.BufferSize = DefaultQueryLogBuffer
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Cache.Enabled && len(c.Cache.Addrs) == 0 {
		return fmt.Errorf("cache.addrs is required when cache.enabled is true")
	}
	if c.Cache.TTL < time.Second {
		return fmt.Errorf("cache.ttl must be at least 1s, got %s", c.Cache.TTL)
	}
	if c.Classifier.Enabled && c.Classifier.APIKey == "" {
		return fmt.Errorf("classifier.api_key is required when classifier.enabled is true")
	}
	if c.Search.CandidateLimit < request.MaxLimit {
		return fmt.Errorf("search.candidate_limit must be at least %d, got %d",
			request.MaxLimit, c.Search.CandidateLimit)
	}
	if c.Search.FuzzyFloor >= 1 {
		return fmt.Errorf("search.fuzzy_floor must be below 1, got %v", c.Search.FuzzyFloor)
	}
	if err := c.ScorePolicy().Validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := c.Ranking.Validate(); err != nil {
		return fmt.Errorf("ranking: %w", err)
	}
	return nil
}

// ScorePolicy returns the built-in score policy with configured overrides applied.
func (c *Config) ScorePolicy() score.Policy {
	p := score.DefaultPolicy()
	s := c.Scoring
	if len(s.GradePoints) > 0 {
		merged := make(map[content.Grade]float64, len(p.GradePoints))
		for g, v := range p.GradePoints {
			merged[g] = v
		}
		for g, v := range s.GradePoints {
			merged[content.ParseGrade(string(g))] = v
		}
		p.GradePoints = merged
	}
	setIfSet(&p.TrustWeight, s.TrustWeight)
	setIfSet(&p.RelevanceWeight, s.RelevanceWeight)
	setIfSet(&p.AccuracyWeight, s.AccuracyWeight)
	setIfSet(&p.RecencyWindow, s.RecencyWindow)
	setIfSet(&p.RecencyBonus, s.RecencyBonus)
	setIfSet(&p.PopularityScale, s.PopularityScale)
	setIfSet(&p.PopularityCap, s.PopularityCap)
	return p
}

func setIfSet[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// Relative to the source file, for tests run from package directories.
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// envVarRegex matches ${VAR} and ${VAR:-default}.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
