package pipeline

import (
	"strings"

	"promptcast/internal/catalog"
)

// energyMarkers are the characters whose presence satisfies the hook
// heuristic: an exclamation mark or one of a small emoji allow-list.
const energyMarkers = "!💥🔥💎✨"

// actionVerbs satisfy the call-to-action heuristic.
var actionVerbs = []string{"buy", "get", "dm", "message", "link", "shop", "order", "purchase"}

// Transformer applies replacement rules and advisory scans to script text.
type Transformer struct {
	banned []string
}

// NewTransformer builds a transformer. Extra banned phrases from
// configuration are scanned in addition to the built-in list.
func NewTransformer(extraBanned []string) *Transformer {
	phrases := make([]string, 0, len(defaultBannedPhrases)+len(extraBanned))
	phrases = append(phrases, defaultBannedPhrases...)
	for _, p := range extraBanned {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			phrases = append(phrases, p)
		}
	}
	return &Transformer{banned: phrases}
}

// Apply runs the replacement pass followed by the banned-phrasing scan.
// The returned warnings are advisory; the transformed text is always usable.
func (t *Transformer) Apply(text string, rules []Rule) (string, []string) {
	transformed := applyRules(text, rules)
	return transformed, t.scan(transformed)
}

// ApplyScript is Apply plus category-specific advisories for hook and
// call-to-action scripts.
func (t *Transformer) ApplyScript(content string, category catalog.Category, rules []Rule) (string, []string) {
	transformed, warnings := t.Apply(content, rules)

	switch category {
	case catalog.CategoryHook:
		if !strings.ContainsAny(transformed, energyMarkers) {
			warnings = append(warnings, "hook has no energy markers; consider an exclamation mark or emoji")
		}
	case catalog.CategoryCTA:
		if !containsActionVerb(transformed) {
			warnings = append(warnings, "call-to-action has no action verb")
		}
	}
	return transformed, warnings
}

func (t *Transformer) scan(text string) []string {
	return scanBanned(text, t.banned)
}

func containsActionVerb(text string) bool {
	lowered := strings.ToLower(text)
	for _, verb := range actionVerbs {
		if strings.Contains(lowered, verb) {
			return true
		}
	}
	return false
}
