package testsupport

import (
	"context"
	"testing"

	"promptcast/internal/catalog"
	"promptcast/internal/config"
	"promptcast/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// AddBag inserts a catalog entry for tests using the provided store.
func AddBag(t testing.TB, st *store.Store, accountID int64, brand, model, color string) *catalog.Entry {
	t.Helper()

	entry, err := st.AddBag(context.Background(), catalog.Entry{
		AccountID: accountID,
		Brand:     brand,
		Model:     model,
		Color:     color,
	})
	if err != nil {
		t.Fatalf("store.AddBag: %v", err)
	}
	return entry
}

// AddScript inserts a script variant for tests using the provided store.
func AddScript(t testing.TB, st *store.Store, bagID int64, category catalog.Category, content string) *catalog.Script {
	t.Helper()

	script, err := st.AddScript(context.Background(), catalog.Script{
		BagID:    bagID,
		Category: category,
		Content:  content,
	})
	if err != nil {
		t.Fatalf("store.AddScript: %v", err)
	}
	return script
}
