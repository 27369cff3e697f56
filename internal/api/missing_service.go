package api

import (
	"context"
	"errors"

	"promptcast/internal/store"
)

// MissingService exposes the missing-product review surface in transport form.
type MissingService struct {
	store *store.Store
}

// NewMissingService wraps the store for API consumption.
func NewMissingService(st *store.Store) *MissingService {
	return &MissingService{store: st}
}

// List returns missing-product reports, newest first.
func (s *MissingService) List(ctx context.Context, includeResolved bool) ([]MissingItem, error) {
	if s == nil || s.store == nil {
		return nil, errors.New("store unavailable")
	}
	rows, err := s.store.ListMissing(ctx, includeResolved)
	if err != nil {
		return nil, err
	}
	items := make([]MissingItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, FromMissing(row))
	}
	return items, nil
}

// Resolve marks one report handled. The bool reports whether a row changed.
func (s *MissingService) Resolve(ctx context.Context, id int64) (bool, error) {
	if s == nil || s.store == nil {
		return false, errors.New("store unavailable")
	}
	return s.store.ResolveMissing(ctx, id)
}
