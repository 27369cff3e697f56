package store

import (
	"context"
	"fmt"
)

// Counts aggregates table sizes for diagnostic output.
type Counts struct {
	Bags        int `json:"bags"`
	Scripts     int `json:"scripts"`
	ActiveRules int `json:"active_rules"`
	OpenMissing int `json:"open_missing"`
}

// Stats returns row counts across the catalog tables.
func (s *Store) Stats(ctx context.Context) (Counts, error) {
	var counts Counts
	checks := []struct {
		name  string
		query string
		dest  *int
	}{
		{"bags", `SELECT COUNT(1) FROM bags`, &counts.Bags},
		{"scripts", `SELECT COUNT(1) FROM scripts`, &counts.Scripts},
		{"active rules", `SELECT COUNT(1) FROM phrase_rules WHERE active = 1`, &counts.ActiveRules},
		{"open missing", `SELECT COUNT(1) FROM missing_products WHERE resolved = 0`, &counts.OpenMissing},
	}
	for _, check := range checks {
		if err := s.db.QueryRowContext(ctx, check.query).Scan(check.dest); err != nil {
			return Counts{}, fmt.Errorf("count %s: %w", check.name, err)
		}
	}
	return counts, nil
}
