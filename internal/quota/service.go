package quota

import (
	"context"

	"itinerary/internal/geocode"
	"itinerary/internal/geocore"
)

// Service wraps a geocode.Resolver behind a per-uid monthly lookup quota.
type Service struct {
	store    *Store
	resolver geocode.Resolver
}

// NewService builds a Service backed by store, delegating successful quota
// checks to resolver.
func NewService(store *Store, resolver geocode.Resolver) *Service {
	return &Service{store: store, resolver: resolver}
}

// Resolve deducts one lookup from uid's monthly allowance and resolves
// name. Returns ErrInsufficientTokens before any lookup is attempted if the
// quota is exhausted.
func (s *Service) Resolve(ctx context.Context, uid, name string) (geocore.Coordinate, error) {
	if err := s.useLookup(ctx, uid); err != nil {
		return geocore.Coordinate{}, err
	}
	return s.resolver.Resolve(ctx, name)
}

func (s *Service) useLookup(ctx context.Context, uid string) error {
	err := s.store.UseLookup(ctx, uid)
	if err != ErrInsufficientTokens {
		return err
	}

	// RowsAffected == 0 from UseLookup means either the row is missing or
	// the quota is genuinely exhausted; only a freshly inserted row should
	// retry the deduction.
	created, initErr := s.store.EnsureUser(ctx, uid)
	if initErr != nil {
		return initErr
	}
	if !created {
		return ErrInsufficientTokens
	}
	return s.store.UseLookup(ctx, uid)
}
