package pipeline

import (
	"strings"
	"testing"

	"promptcast/internal/catalog"
)

func activeRules(pairs ...[2]string) []Rule {
	rules := make([]Rule, 0, len(pairs))
	for i, pair := range pairs {
		rules = append(rules, Rule{ID: int64(i + 1), Find: pair[0], Replace: pair[1], Active: true})
	}
	return rules
}

func TestApplyRulesCompound(t *testing.T) {
	tr := NewTransformer(nil)
	rules := activeRules([2]string{"fake", "pre-loved"}, [2]string{"pre-loved", "gently used"})

	got, _ := tr.Apply("this is a fake bag", rules)
	if got != "this is a gently used bag" {
		t.Errorf("Apply() = %q, want %q", got, "this is a gently used bag")
	}
}

func TestApplyWholeWordOnly(t *testing.T) {
	tr := NewTransformer(nil)
	rules := activeRules([2]string{"fake", "real"})

	got, _ := tr.Apply("fakery is not the word fake", rules)
	if got != "fakery is not the word real" {
		t.Errorf("Apply() = %q, want substitution on whole words only", got)
	}
}

func TestApplyCaseInsensitive(t *testing.T) {
	tr := NewTransformer(nil)
	rules := activeRules([2]string{"Fake", "pre-loved"})

	got, _ := tr.Apply("FAKE bag, fake strap", rules)
	if got != "pre-loved bag, pre-loved strap" {
		t.Errorf("Apply() = %q, want case-insensitive replacement", got)
	}
}

func TestApplySkipsInactiveRules(t *testing.T) {
	tr := NewTransformer(nil)
	rules := []Rule{{ID: 1, Find: "fake", Replace: "real", Active: false}}

	got, _ := tr.Apply("a fake bag", rules)
	if got != "a fake bag" {
		t.Errorf("inactive rule applied: %q", got)
	}
}

func TestApplyEmptyRuleSet(t *testing.T) {
	tr := NewTransformer(nil)
	text := "Hermes Birkin, excellent condition."
	got, warnings := tr.Apply(text, nil)
	if got != text {
		t.Errorf("Apply() changed text with no rules: %q", got)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestApplyIdempotentWhenNoRuleMatchesOutput(t *testing.T) {
	tr := NewTransformer(nil)
	rules := activeRules([2]string{"fake", "gently used"})

	once, _ := tr.Apply("this fake bag", rules)
	twice, _ := tr.Apply(once, rules)
	if once != twice {
		t.Errorf("second pass changed output: %q -> %q", once, twice)
	}
}

func TestBannedScanFlagsNearMatches(t *testing.T) {
	tr := NewTransformer(nil)
	_, warnings := tr.Apply("this is top-grade leather", nil)
	if len(warnings) == 0 {
		t.Fatal("expected a warning for top-grade")
	}
	if !strings.Contains(warnings[0], "top grade") {
		t.Errorf("warning should name the banned phrase: %q", warnings[0])
	}
}

func TestBannedScanIgnoresCleanText(t *testing.T) {
	tr := NewTransformer(nil)
	_, warnings := tr.Apply("lovely bag in great condition", nil)
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestBannedScanExtraPhrases(t *testing.T) {
	tr := NewTransformer([]string{"museum piece"})
	_, warnings := tr.Apply("a true museum-piece find", nil)
	if len(warnings) == 0 {
		t.Error("expected warning for configured extra phrase")
	}
}

func TestHookHeuristic(t *testing.T) {
	tr := NewTransformer(nil)

	_, warnings := tr.ApplyScript("you will not believe this bag", catalog.CategoryHook, nil)
	if len(warnings) != 1 {
		t.Fatalf("flat hook should warn once, got %v", warnings)
	}

	_, warnings = tr.ApplyScript("you will not believe this bag!", catalog.CategoryHook, nil)
	if len(warnings) != 0 {
		t.Errorf("energetic hook should not warn, got %v", warnings)
	}
}

func TestCTAHeuristic(t *testing.T) {
	tr := NewTransformer(nil)

	_, warnings := tr.ApplyScript("available while it lasts", catalog.CategoryCTA, nil)
	if len(warnings) != 1 {
		t.Fatalf("passive cta should warn once, got %v", warnings)
	}

	_, warnings = tr.ApplyScript("DM me now to order yours", catalog.CategoryCTA, nil)
	if len(warnings) != 0 {
		t.Errorf("cta with action verbs should not warn, got %v", warnings)
	}
}

func TestHeuristicsOnlyForOwnCategory(t *testing.T) {
	tr := NewTransformer(nil)
	_, warnings := tr.ApplyScript("a quiet story about this bag", catalog.CategoryStory, nil)
	if len(warnings) != 0 {
		t.Errorf("story category should not trigger hook/cta advisories: %v", warnings)
	}
}

func TestValidateRule(t *testing.T) {
	tests := []struct {
		name       string
		find       string
		replace    string
		violations int
	}{
		{"valid", "fake", "pre-loved", 0},
		{"empty find", "  ", "x", 1},
		{"empty replace", "fake", "", 1},
		{"identical", "same", "same", 1},
		{"metacharacters", "fa.ke*", "clean", 1},
		{"everything wrong", " ", " ", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateRule(tt.find, tt.replace)
			if len(got) != tt.violations {
				t.Errorf("ValidateRule(%q, %q) = %v, want %d violations", tt.find, tt.replace, got, tt.violations)
			}
		})
	}
}
