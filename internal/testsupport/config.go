package testsupport

import (
	"path/filepath"
	"testing"

	"promptcast/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithMatching overrides the similarity knobs on the test config.
func WithMatching(minSimilarity, similarLimit int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Matching.MinSimilarity = minSimilarity
		cfg.Matching.SimilarLimit = similarLimit
	}
}

// WithExtraBanned adds banned phrases on top of the built-in list.
func WithExtraBanned(phrases ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Pipeline.ExtraBannedPhrases = append(cfg.Pipeline.ExtraBannedPhrases, phrases...)
	}
}
