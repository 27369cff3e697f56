package match

import (
	"errors"
	"sort"
	"strings"

	"promptcast/internal/catalog"
	"promptcast/internal/textutil"
)

// ErrEmptyTitle is returned when the input title is empty or whitespace-only.
var ErrEmptyTitle = errors.New("title must not be empty")

// Strength buckets a similarity score for manual review displays.
type Strength string

const (
	StrengthStrong Strength = "strong"
	StrengthMedium Strength = "medium"
	StrengthWeak   Strength = "weak"
)

// StrengthFor maps a similarity score onto its qualitative bucket.
func StrengthFor(score int) Strength {
	switch {
	case score >= 80:
		return StrengthStrong
	case score >= 60:
		return StrengthMedium
	default:
		return StrengthWeak
	}
}

// Policy centralizes matcher thresholds.
type Policy struct {
	// MinSimilarity is the exclusive lower bound for a variant score to
	// survive; a candidate scoring exactly MinSimilarity is discarded.
	MinSimilarity int
	// SimilarLimit caps the ranked-candidate list returned by Rank.
	SimilarLimit int
}

// DefaultPolicy returns the thresholds used in production.
func DefaultPolicy() Policy {
	return Policy{MinSimilarity: 70, SimilarLimit: 5}
}

func (p Policy) normalized() Policy {
	d := DefaultPolicy()
	if p.MinSimilarity <= 0 || p.MinSimilarity >= 100 {
		p.MinSimilarity = d.MinSimilarity
	}
	if p.SimilarLimit <= 0 {
		p.SimilarLimit = d.SimilarLimit
	}
	return p
}

// Match is a successful resolution: the winning entry and its best score.
type Match struct {
	Entry catalog.Entry
	Score int
}

// Candidate is one ranked entry from Rank, annotated for operator review.
type Candidate struct {
	Entry    catalog.Entry
	Score    int
	Strength Strength
}

// Resolver scores titles against a catalog index snapshot.
type Resolver struct {
	policy Policy
}

// NewResolver builds a resolver with the given policy; zero or out-of-range
// fields fall back to defaults.
func NewResolver(policy Policy) *Resolver {
	return &Resolver{policy: policy.normalized()}
}

// Resolve returns the best-matching entry for the title, or nil when no
// variant of any entry scores above the similarity threshold. An empty
// catalog resolves to nil without error.
func (r *Resolver) Resolve(title string, idx *catalog.Index) (*Match, error) {
	normalized, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}

	best := (*Match)(nil)
	for i := 0; i < idx.Len(); i++ {
		score := bestVariantScore(normalized, idx.Variants(i))
		if score <= r.policy.MinSimilarity {
			continue
		}
		// Strictly greater keeps the first indexed entry on ties.
		if best == nil || score > best.Score {
			best = &Match{Entry: idx.Entry(i), Score: score}
		}
	}
	return best, nil
}

// Rank returns up to limit entries ordered by descending score, each tagged
// with a strength bucket. Unlike Resolve it does not apply the minimum
// similarity threshold; weak candidates are part of the review surface.
// A non-positive limit falls back to the policy default.
func (r *Resolver) Rank(title string, idx *catalog.Index, limit int) ([]Candidate, error) {
	normalized, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = r.policy.SimilarLimit
	}

	candidates := make([]Candidate, 0, idx.Len())
	for i := 0; i < idx.Len(); i++ {
		score := bestVariantScore(normalized, idx.Variants(i))
		candidates = append(candidates, Candidate{
			Entry:    idx.Entry(i),
			Score:    score,
			Strength: StrengthFor(score),
		})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Score > candidates[b].Score
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func normalizeTitle(title string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", ErrEmptyTitle
	}
	return textutil.Normalize(title), nil
}

func bestVariantScore(normalizedTitle string, variants []string) int {
	best := 0
	for _, variant := range variants {
		if score := textutil.PartialRatio(normalizedTitle, variant); score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}
