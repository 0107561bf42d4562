package config

import (
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/unisearch/internal/domain/content"
	"github.com/kailas-cloud/unisearch/internal/domain/search/policy"
)

func ptr[T any](v T) *T { return &v }

func validConfig() Config {
	cfg := Config{Database: DatabaseConfig{DSN: "postgres://localhost/unisearch"}}
	cfg.ApplyDefaults()
	return cfg
}

func TestParse_DefaultsAndEnvExpansion(t *testing.T) {
	t.Setenv("UNISEARCH_TEST_DSN", "postgres://db/test")
	t.Setenv("UNISEARCH_TEST_KEY", "")

	cfg, err := Parse([]byte(`
database:
  dsn: ${UNISEARCH_TEST_DSN}
classifier:
  api_key: ${UNISEARCH_TEST_KEY:-fallback-key}
  enabled: true
  timeout: 1500ms
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Database.DSN != "postgres://db/test" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
	if cfg.Classifier.APIKey != "fallback-key" {
		t.Errorf("api key = %q, want default", cfg.Classifier.APIKey)
	}
	if cfg.Classifier.Timeout != 1500*time.Millisecond {
		t.Errorf("timeout = %s", cfg.Classifier.Timeout)
	}
	if cfg.HTTP.Port != 8080 || cfg.Search.CandidateLimit != 50 || cfg.Search.FuzzyFloor != DefaultFuzzyFloor {
		t.Errorf("defaults not applied: %+v %+v", cfg.HTTP, cfg.Search)
	}
	if cfg.Cache.TTL != DefaultCacheTTL || cfg.Cache.Enabled {
		t.Errorf("cache defaults: %+v", cfg.Cache)
	}
	if cfg.Ranking.Version != policy.DefaultVersion || cfg.Ranking.FuzzyScale != 300 {
		t.Errorf("ranking defaults: %+v", cfg.Ranking)
	}
}

func TestParse_RankingOverrideKeepsOtherDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
database:
  dsn: postgres://x
ranking:
  version: exp-7
  sub_category_bonus: 175
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Ranking.Version != "exp-7" || cfg.Ranking.SubCategoryBonus != 175 {
		t.Errorf("overrides lost: %+v", cfg.Ranking)
	}
	if cfg.Ranking.KeywordMatchBonus != 100 || len(cfg.Ranking.CategoryBonuses) != 4 {
		t.Errorf("defaults lost: %+v", cfg.Ranking)
	}
}

func TestParse_ZeroOverridesApply(t *testing.T) {
	cfg, err := Parse([]byte(`
database:
  dsn: postgres://x
scoring:
  recency_bonus: 0
ranking:
  fuzzy_threshold: 0
  sub_category_bonus: 0
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Ranking.FuzzyThreshold != 0 || cfg.Ranking.SubCategoryBonus != 0 {
		t.Errorf("zero ranking overrides ignored: %+v", cfg.Ranking)
	}
	if cfg.Ranking.FuzzyScale != 300 {
		t.Errorf("fuzzy scale = %v, want default", cfg.Ranking.FuzzyScale)
	}
	if p := cfg.ScorePolicy(); p.RecencyBonus != 0 || p.PopularityCap != 100 {
		t.Errorf("score policy = %+v", p)
	}
}

func TestScorePolicy_Overrides(t *testing.T) {
	cfg := validConfig()
	cfg.Scoring = ScoringConfig{
		GradePoints:   map[content.Grade]float64{"a": 80},
		RecencyWindow: ptr(72 * time.Hour),
		RecencyBonus:  ptr(30.0),
	}

	p := cfg.ScorePolicy()
	if p.GradePoints[content.GradeA] != 80 || p.GradePoints[content.GradeS] != 100 {
		t.Errorf("grade points = %v", p.GradePoints)
	}
	if p.RecencyWindow != 72*time.Hour || p.RecencyBonus != 30 || p.TrustWeight != 2 {
		t.Errorf("unexpected policy %+v", p)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"missing dsn", func(c *Config) { c.Database.DSN = "" }, "database.dsn"},
		{"cache without addrs", func(c *Config) { c.Cache.Enabled = true }, "cache.addrs"},
		{"sub-second cache ttl", func(c *Config) { c.Cache.TTL = time.Millisecond }, "cache.ttl"},
		{"classifier without key", func(c *Config) { c.Classifier.Enabled = true }, "classifier.api_key"},
		{"candidate limit below page size", func(c *Config) { c.Search.CandidateLimit = 10 }, "candidate_limit"},
		{"fuzzy floor", func(c *Config) { c.Search.FuzzyFloor = 1 }, "fuzzy_floor"},
		{"weights out of order", func(c *Config) { c.Scoring.AccuracyWeight = ptr(5.0) }, "scoring"},
		{"grade order", func(c *Config) {
			c.Scoring.GradePoints = map[content.Grade]float64{content.GradeC: 90}
		}, "scoring"},
		{"fuzzy threshold", func(c *Config) { c.Ranking.FuzzyThreshold = 2 }, "ranking"},
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
				t.Fatalf("error = %v, want mention of %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://ci/unisearch")
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load(local): %v", err)
	}
	if cfg.Database.DSN != "postgres://ci/unisearch" || !cfg.Database.MigrateOnStart {
		t.Errorf("unexpected database config %+v", cfg.Database)
	}
	if cfg.Classifier.Enabled {
		t.Errorf("classifier should be disabled locally by default")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("UNISEARCH_SET", "v")
	got := string(expandEnvVars([]byte("a=${UNISEARCH_SET} b=${UNISEARCH_UNSET:-d} c=${UNISEARCH_UNSET}")))
	if got != "a=v b=d c=" {
		t.Errorf("expandEnvVars = %q", got)
	}
}
