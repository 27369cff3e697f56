package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"promptcast/internal/textutil"
)

// MissingProduct is one unresolved product title reported during a stream.
// Rows are deduplicated on the normalized title; repeat reports bump the hit
// counter instead of inserting again.
type MissingProduct struct {
	ID              int64
	Title           string
	NormalizedTitle string
	HitCount        int64
	FirstSeen       time.Time
	LastSeen        time.Time
	Resolved        bool
	ResolvedAt      *time.Time
}

// RecordMissing stores a missed title. The returned flag is true only when
// this title had no prior unresolved report, which is when a new alert should
// go out.
func (s *Store) RecordMissing(ctx context.Context, title string, at time.Time) (bool, error) {
	normalized := textutil.Normalize(title)
	if normalized == "" {
		return false, errors.New("missing title must not be empty")
	}
	timestamp := at.UTC().Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO missing_products (title, normalized_title, hit_count, first_seen, last_seen)
         VALUES (?, ?, 1, ?, ?)`,
		title,
		normalized,
		timestamp,
		timestamp,
	)
	if err != nil {
		return false, fmt.Errorf("insert missing product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if affected > 0 {
		return true, nil
	}

	_, err = s.db.ExecContext(
		ctx,
		`UPDATE missing_products SET hit_count = hit_count + 1, last_seen = ? WHERE normalized_title = ?`,
		timestamp,
		normalized,
	)
	if err != nil {
		return false, fmt.Errorf("bump missing product: %w", err)
	}
	return false, nil
}

// ListMissing returns missing product reports, newest first. Resolved rows are
// included only when requested.
func (s *Store) ListMissing(ctx context.Context, includeResolved bool) ([]MissingProduct, error) {
	query := `SELECT ` + missingColumns + ` FROM missing_products`
	if !includeResolved {
		query += ` WHERE resolved = 0`
	}
	query += ` ORDER BY last_seen DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list missing products: %w", err)
	}
	defer rows.Close()

	var items []MissingProduct
	for rows.Next() {
		item, err := scanMissing(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// GetMissing fetches one report by identifier. A nil item means no row.
func (s *Store) GetMissing(ctx context.Context, id int64) (*MissingProduct, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+missingColumns+` FROM missing_products WHERE id = ?`, id)
	item, err := scanMissing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get missing product: %w", err)
	}
	return item, nil
}

// ResolveMissing marks a report handled. Unknown IDs report false.
func (s *Store) ResolveMissing(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE missing_products SET resolved = 1, resolved_at = ? WHERE id = ? AND resolved = 0`,
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return false, fmt.Errorf("resolve missing product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

const missingColumns = "id, title, normalized_title, hit_count, first_seen, last_seen, resolved, resolved_at"

func scanMissing(scanner interface{ Scan(dest ...any) error }) (*MissingProduct, error) {
	var (
		item        MissingProduct
		firstRaw    string
		lastRaw     string
		resolved    int
		resolvedRaw sql.NullString
	)
	if err := scanner.Scan(
		&item.ID,
		&item.Title,
		&item.NormalizedTitle,
		&item.HitCount,
		&firstRaw,
		&lastRaw,
		&resolved,
		&resolvedRaw,
	); err != nil {
		return nil, err
	}
	item.Resolved = resolved != 0
	if first, err := parseTimeString(firstRaw); err == nil {
		item.FirstSeen = first
	}
	if last, err := parseTimeString(lastRaw); err == nil {
		item.LastSeen = last
	}
	if resolvedRaw.Valid {
		if at, err := parseTimeString(resolvedRaw.String); err == nil {
			item.ResolvedAt = &at
		}
	}
	return &item, nil
}
