package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"promptcast/internal/catalog"
)

// AddBag inserts a new catalog entry and returns it with its assigned ID.
func (s *Store) AddBag(ctx context.Context, entry catalog.Entry) (*catalog.Entry, error) {
	if strings.TrimSpace(entry.Brand) == "" || strings.TrimSpace(entry.Model) == "" {
		return nil, errors.New("bag requires a brand and a model")
	}
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO bags (account_id, brand, model, color, condition, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.AccountID,
		entry.Brand,
		entry.Model,
		entry.Color,
		entry.Condition,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert bag: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetBag(ctx, id)
}

// GetBag fetches a catalog entry by identifier. A nil entry means no row.
func (s *Store) GetBag(ctx context.Context, id int64) (*catalog.Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+bagColumns+` FROM bags WHERE id = ?`, id)
	entry, err := scanBag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bag: %w", err)
	}
	return entry, nil
}

// ListEntries returns every catalog entry in insertion order.
func (s *Store) ListEntries(ctx context.Context) ([]catalog.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+bagColumns+` FROM bags ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list bags: %w", err)
	}
	defer rows.Close()

	var entries []catalog.Entry
	for rows.Next() {
		entry, err := scanBag(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// AddScript attaches a script variant to a bag.
func (s *Store) AddScript(ctx context.Context, script catalog.Script) (*catalog.Script, error) {
	if !script.Category.Valid() {
		return nil, fmt.Errorf("unknown script category %q", script.Category)
	}
	if strings.TrimSpace(script.Content) == "" {
		return nil, errors.New("script content must not be empty")
	}
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO scripts (bag_id, category, content, used_count, like_count, created_at, updated_at)
         VALUES (?, ?, ?, 0, 0, ?, ?)`,
		script.BagID,
		string(script.Category),
		script.Content,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert script: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+scriptColumns+` FROM scripts WHERE id = ?`, id)
	inserted, err := scanScript(row)
	if err != nil {
		return nil, fmt.Errorf("get script: %w", err)
	}
	return inserted, nil
}

// ScriptsForBag returns a bag's scripts ordered by creation so variant
// grouping stays stable across reads.
func (s *Store) ScriptsForBag(ctx context.Context, bagID int64) ([]catalog.Script, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+scriptColumns+` FROM scripts WHERE bag_id = ? ORDER BY id`, bagID)
	if err != nil {
		return nil, fmt.Errorf("query scripts: %w", err)
	}
	defer rows.Close()

	var scripts []catalog.Script
	for rows.Next() {
		script, err := scanScript(rows)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, *script)
	}
	return scripts, rows.Err()
}

// IncrementUsage bumps a script's used counter. Unknown IDs report false.
func (s *Store) IncrementUsage(ctx context.Context, scriptID int64) (bool, error) {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE scripts SET used_count = used_count + 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		scriptID,
	)
	if err != nil {
		return false, fmt.Errorf("increment usage: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

const bagColumns = "id, account_id, brand, model, color, condition, created_at, updated_at"

const scriptColumns = "id, bag_id, category, content, used_count, like_count, created_at, updated_at"

func scanBag(scanner interface{ Scan(dest ...any) error }) (*catalog.Entry, error) {
	var (
		entry      catalog.Entry
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(
		&entry.ID,
		&entry.AccountID,
		&entry.Brand,
		&entry.Model,
		&entry.Color,
		&entry.Condition,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		entry.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		entry.UpdatedAt = updated
	}
	return &entry, nil
}

func scanScript(scanner interface{ Scan(dest ...any) error }) (*catalog.Script, error) {
	var (
		script     catalog.Script
		category   string
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(
		&script.ID,
		&script.BagID,
		&category,
		&script.Content,
		&script.UsedCount,
		&script.LikeCount,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}
	script.Category = catalog.Category(category)
	if created, err := parseTimeString(createdRaw); err == nil {
		script.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		script.UpdatedAt = updated
	}
	return &script, nil
}
