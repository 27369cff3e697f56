package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.APIBind == "" {
		return errors.New("paths.api_bind must be set")
	}
	if c.Matching.MinSimilarity < 0 || c.Matching.MinSimilarity >= 100 {
		return fmt.Errorf("matching.min_similarity must be between 0 and 99, got %d", c.Matching.MinSimilarity)
	}
	if c.Matching.SimilarLimit < 1 || c.Matching.SimilarLimit > 20 {
		return fmt.Errorf("matching.similar_limit must be between 1 and 20, got %d", c.Matching.SimilarLimit)
	}
	if c.Notifications.RequestTimeout < 0 {
		return errors.New("notifications.request_timeout must not be negative")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format must be console or json, got %q", c.LogFormat)
	}
	return nil
}
