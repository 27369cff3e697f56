package api

import (
	"promptcast/internal/catalog"
	"promptcast/internal/match"
	"promptcast/internal/store"
)

// FromEntry converts a catalog entry into its transport form.
func FromEntry(entry catalog.Entry) BagSummary {
	return BagSummary{
		ID:        entry.ID,
		AccountID: entry.AccountID,
		Brand:     entry.Brand,
		Model:     entry.Model,
		Color:     entry.Color,
		Condition: entry.Condition,
	}
}

// FromMatch converts a resolution outcome. A nil match reports Matched false.
func FromMatch(title string, m *match.Match) MatchResponse {
	resp := MatchResponse{Title: title}
	if m == nil {
		return resp
	}
	bag := FromEntry(m.Entry)
	resp.Matched = true
	resp.Bag = &bag
	resp.Score = m.Score
	return resp
}

// FromCandidates converts ranked candidates into the review payload.
func FromCandidates(title string, candidates []match.Candidate) SimilarResponse {
	resp := SimilarResponse{Title: title}
	for _, c := range candidates {
		resp.Candidates = append(resp.Candidates, SimilarCandidate{
			Bag:      FromEntry(c.Entry),
			Score:    c.Score,
			Strength: string(c.Strength),
		})
	}
	return resp
}

// FromMissing converts one missing-product row.
func FromMissing(item store.MissingProduct) MissingItem {
	out := MissingItem{
		ID:       item.ID,
		Title:    item.Title,
		HitCount: item.HitCount,
		Resolved: item.Resolved,
	}
	if !item.FirstSeen.IsZero() {
		out.FirstSeen = item.FirstSeen.Format(dateTimeFormat)
	}
	if !item.LastSeen.IsZero() {
		out.LastSeen = item.LastSeen.Format(dateTimeFormat)
	}
	if item.ResolvedAt != nil {
		out.ResolvedAt = item.ResolvedAt.Format(dateTimeFormat)
	}
	return out
}

// FromCounts converts store counts into the status payload form.
func FromCounts(counts store.Counts) CatalogCounts {
	return CatalogCounts{
		Bags:        counts.Bags,
		Scripts:     counts.Scripts,
		ActiveRules: counts.ActiveRules,
		OpenMissing: counts.OpenMissing,
	}
}
