package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// BagSummary describes a catalog entry in a transport-friendly format.
type BagSummary struct {
	ID        int64  `json:"id"`
	AccountID int64  `json:"accountId"`
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	Color     string `json:"color,omitempty"`
	Condition string `json:"condition,omitempty"`
}

// MatchResponse reports the outcome of resolving an observed title.
type MatchResponse struct {
	Title   string      `json:"title"`
	Matched bool        `json:"matched"`
	Bag     *BagSummary `json:"bag,omitempty"`
	Score   int         `json:"score,omitempty"`
}

// SimilarCandidate is one ranked entry for operator review.
type SimilarCandidate struct {
	Bag      BagSummary `json:"bag"`
	Score    int        `json:"score"`
	Strength string     `json:"strength"`
}

// SimilarResponse wraps the ranked candidates for a title.
type SimilarResponse struct {
	Title      string             `json:"title"`
	Candidates []SimilarCandidate `json:"candidates"`
}

// MissingItem describes one missing-product report.
type MissingItem struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	HitCount   int64  `json:"hitCount"`
	FirstSeen  string `json:"firstSeen,omitempty"`
	LastSeen   string `json:"lastSeen,omitempty"`
	Resolved   bool   `json:"resolved"`
	ResolvedAt string `json:"resolvedAt,omitempty"`
}

// MissingListResponse wraps a collection of missing-product reports.
type MissingListResponse struct {
	Items []MissingItem `json:"items"`
}

// ResolveResponse reports whether a missing-product row was resolved.
type ResolveResponse struct {
	Resolved bool `json:"resolved"`
}

// CatalogCounts aggregates table sizes for the status payload.
type CatalogCounts struct {
	Bags        int `json:"bags"`
	Scripts     int `json:"scripts"`
	ActiveRules int `json:"activeRules"`
	OpenMissing int `json:"openMissing"`
}

// DaemonStatus aggregates daemon runtime information for API consumers.
type DaemonStatus struct {
	Running      bool          `json:"running"`
	PID          int           `json:"pid"`
	Bind         string        `json:"bind"`
	StartedAt    string        `json:"startedAt,omitempty"`
	DatabasePath string        `json:"databasePath"`
	LockFilePath string        `json:"lockFilePath"`
	Connections  int           `json:"connections"`
	Topics       int           `json:"topics"`
	Catalog      CatalogCounts `json:"catalog"`
}
