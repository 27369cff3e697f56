package pipeline

import (
	"fmt"
	"strings"

	"promptcast/internal/textutil"
)

// bannedSimilarity is the exclusive lower bound above which a word is flagged
// as resembling a banned phrase.
const bannedSimilarity = 80

// defaultBannedPhrases lists known too-good-to-be-true phrasing that tends to
// get live-commerce accounts flagged.
var defaultBannedPhrases = []string{
	"very fashion",
	"much luxury",
	"super beauty",
	"best quality",
	"top grade",
	"aaa quality",
	"perfect replica",
	"same as original",
	"1:1 copy",
	"mirror quality",
}

// scanBanned compares every word of the text against the banned phrase list
// and returns one advisory warning per offending word.
func scanBanned(text string, phrases []string) []string {
	var warnings []string
	for _, word := range strings.Fields(text) {
		clean := textutil.StripPunct(strings.ToLower(word))
		if clean == "" {
			continue
		}
		for _, phrase := range phrases {
			if textutil.Ratio(clean, phrase) > bannedSimilarity {
				warnings = append(warnings, fmt.Sprintf("over-promotional phrasing: %q resembles %q", word, phrase))
			}
		}
	}
	return warnings
}
