package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"promptcast/internal/pipeline"
)

// ErrInvalidRule wraps validation failures when adding a phrase rule.
var ErrInvalidRule = errors.New("invalid phrase rule")

// AddRule validates and persists a phrase rule for an account.
func (s *Store) AddRule(ctx context.Context, accountID int64, find, replace string) (*pipeline.Rule, error) {
	if violations := pipeline.ValidateRule(find, replace); len(violations) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRule, strings.Join(violations, "; "))
	}
	now := time.Now().UTC()

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO phrase_rules (account_id, find_phrase, replace_phrase, active, created_at)
         VALUES (?, ?, ?, 1, ?)`,
		accountID,
		find,
		replace,
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert phrase rule: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return &pipeline.Rule{
		ID:        id,
		AccountID: accountID,
		Find:      find,
		Replace:   replace,
		Active:    true,
		CreatedAt: now,
	}, nil
}

// ActiveRules returns an account's active rules in creation order, the order
// the replacement pass applies them in.
func (s *Store) ActiveRules(ctx context.Context, accountID int64) ([]pipeline.Rule, error) {
	return s.queryRules(ctx,
		`SELECT `+ruleColumns+` FROM phrase_rules WHERE account_id = ? AND active = 1 ORDER BY id`,
		accountID,
	)
}

// ListRules returns every rule for an account, active or not.
func (s *Store) ListRules(ctx context.Context, accountID int64) ([]pipeline.Rule, error) {
	return s.queryRules(ctx,
		`SELECT `+ruleColumns+` FROM phrase_rules WHERE account_id = ? ORDER BY id`,
		accountID,
	)
}

// SetRuleActive toggles a rule without deleting its history. Unknown IDs
// report false.
func (s *Store) SetRuleActive(ctx context.Context, id int64, active bool) (bool, error) {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE phrase_rules SET active = ? WHERE id = ?`,
		boolToInt(active),
		id,
	)
	if err != nil {
		return false, fmt.Errorf("set rule active: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

const ruleColumns = "id, account_id, find_phrase, replace_phrase, active, created_at"

func (s *Store) queryRules(ctx context.Context, query string, args ...any) ([]pipeline.Rule, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query phrase rules: %w", err)
	}
	defer rows.Close()

	var rules []pipeline.Rule
	for rows.Next() {
		var (
			rule       pipeline.Rule
			active     int
			createdRaw string
		)
		if err := rows.Scan(&rule.ID, &rule.AccountID, &rule.Find, &rule.Replace, &active, &createdRaw); err != nil {
			return nil, err
		}
		rule.Active = active != 0
		if created, err := parseTimeString(createdRaw); err == nil {
			rule.CreatedAt = created
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}
