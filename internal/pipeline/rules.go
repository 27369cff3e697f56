package pipeline

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Rule is one operator-defined literal phrase replacement. Rules are scoped
// to the account that owns the catalog and apply in creation order.
type Rule struct {
	ID        int64
	AccountID int64
	Find      string
	Replace   string
	Active    bool
	CreatedAt time.Time
}

// ruleMetachars are the characters rejected in find phrases so rules stay
// literal phrases rather than patterns.
const ruleMetachars = `[]{}()+*?^$|\.`

// ValidateRule checks a proposed rule and returns human-readable violations.
// An empty slice means the rule is acceptable.
func ValidateRule(find, replace string) []string {
	var violations []string
	if strings.TrimSpace(find) == "" {
		violations = append(violations, "find phrase must not be empty")
	}
	if strings.TrimSpace(replace) == "" {
		violations = append(violations, "replace phrase must not be empty")
	}
	if find == replace {
		violations = append(violations, "find and replace phrases must differ")
	}
	if strings.ContainsAny(find, ruleMetachars) {
		violations = append(violations, "find phrase must not contain pattern metacharacters")
	}
	return violations
}

// applyRules performs the replacement pass: each active rule's find phrase is
// substituted case-insensitively on whole-word boundaries. Later rules see
// the output of earlier rules, so rules may compound.
func applyRules(text string, rules []Rule) string {
	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		pattern, err := regexp.Compile(fmt.Sprintf(`(?i)\b%s\b`, regexp.QuoteMeta(rule.Find)))
		if err != nil {
			// Validation rejects metacharacters up front; a rule that still
			// fails to compile is skipped rather than aborting the pass.
			continue
		}
		text = pattern.ReplaceAllLiteralString(text, rule.Replace)
	}
	return text
}
