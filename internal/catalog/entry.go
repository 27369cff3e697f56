package catalog

import (
	"strings"
	"time"

	"promptcast/internal/textutil"
)

// Entry is one bag in the seller's inventory.
type Entry struct {
	ID        int64
	AccountID int64
	Brand     string
	Model     string
	Color     string
	Condition string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SearchStrings derives the normalized title variants an entry is matched
// under, most specific first. Empty components are skipped so an entry with
// no color never produces a variant with a dangling gap.
func (e Entry) SearchStrings() []string {
	brand := textutil.Normalize(e.Brand)
	model := textutil.Normalize(e.Model)
	color := textutil.Normalize(e.Color)

	candidates := []string{
		join(brand, model),
		join(brand, model, color),
		join(brand, color, model),
		join(model, brand),
		brand,
		model,
	}

	variants := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, v := range candidates {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		variants = append(variants, v)
	}
	return variants
}

func join(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) < len(parts) {
		// A variant missing one of its components collapses into a shorter
		// variant that is already generated; drop it instead.
		return ""
	}
	return strings.Join(kept, " ")
}

// Index is an immutable snapshot of catalog entries with their search
// variants precomputed. Entry order is preserved so that score ties resolve
// to the first indexed entry.
type Index struct {
	entries  []Entry
	variants [][]string
}

// NewIndex snapshots the given entries. The slice is copied; later mutations
// by the caller do not affect the index.
func NewIndex(entries []Entry) *Index {
	idx := &Index{
		entries:  make([]Entry, len(entries)),
		variants: make([][]string, len(entries)),
	}
	copy(idx.entries, entries)
	for i, entry := range idx.entries {
		idx.variants[i] = entry.SearchStrings()
	}
	return idx
}

// Len returns the number of indexed entries.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// Entry returns the entry at position i in insertion order.
func (idx *Index) Entry(i int) Entry { return idx.entries[i] }

// Variants returns the precomputed search strings for the entry at position i.
func (idx *Index) Variants(i int) []string { return idx.variants[i] }
