package catalog

import (
	"reflect"
	"testing"
)

func TestSearchStringsFullEntry(t *testing.T) {
	entry := Entry{Brand: "Hermès", Model: "Birkin", Color: "Black"}
	want := []string{
		"hermes birkin",
		"hermes birkin black",
		"hermes black birkin",
		"birkin hermes",
		"hermes",
		"birkin",
	}
	if got := entry.SearchStrings(); !reflect.DeepEqual(got, want) {
		t.Errorf("SearchStrings() = %v, want %v", got, want)
	}
}

func TestSearchStringsMissingColor(t *testing.T) {
	entry := Entry{Brand: "Gucci", Model: "Marmont"}
	want := []string{
		"gucci marmont",
		"marmont gucci",
		"gucci",
		"marmont",
	}
	if got := entry.SearchStrings(); !reflect.DeepEqual(got, want) {
		t.Errorf("SearchStrings() = %v, want %v", got, want)
	}
}

func TestSearchStringsDeduplicates(t *testing.T) {
	entry := Entry{Brand: "Polene", Model: "Polene"}
	got := entry.SearchStrings()
	seen := make(map[string]int)
	for _, v := range got {
		seen[v]++
		if seen[v] > 1 {
			t.Errorf("duplicate variant %q in %v", v, got)
		}
	}
}

func TestIndexPreservesOrder(t *testing.T) {
	entries := []Entry{
		{ID: 10, Brand: "Hermès", Model: "Birkin"},
		{ID: 20, Brand: "Chanel", Model: "Classic Flap"},
	}
	idx := NewIndex(entries)
	if idx.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", idx.Len())
	}
	if idx.Entry(0).ID != 10 || idx.Entry(1).ID != 20 {
		t.Error("index did not preserve insertion order")
	}
	if len(idx.Variants(0)) == 0 {
		t.Error("expected precomputed variants for first entry")
	}
}

func TestBlocksZipsCategories(t *testing.T) {
	scripts := []Script{
		{ID: 1, Category: CategoryHook, Content: "hook one"},
		{ID: 2, Category: CategoryHook, Content: "hook two"},
		{ID: 3, Category: CategoryCTA, Content: "cta one"},
		{ID: 4, Category: CategoryStory, Content: "story one"},
	}

	blocks := Blocks(scripts)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}

	first := blocks[0]
	if first.ID != 1 || first.Hook != "hook one" || first.CTA != "cta one" || first.Story != "story one" {
		t.Errorf("unexpected first block: %+v", first)
	}
	if first.Look != "" || first.Value != "" {
		t.Errorf("expected empty look/value in first block: %+v", first)
	}

	second := blocks[1]
	if second.ID != 2 || second.Hook != "hook two" {
		t.Errorf("unexpected second block: %+v", second)
	}
	if second.CTA != "" || second.Story != "" {
		t.Errorf("expected exhausted categories to be empty: %+v", second)
	}
}

func TestBlocksEmpty(t *testing.T) {
	if blocks := Blocks(nil); len(blocks) != 0 {
		t.Errorf("Blocks(nil) = %v, want empty", blocks)
	}
}
